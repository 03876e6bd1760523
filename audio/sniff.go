package audio

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Sniff detects the container of data from its leading bytes.
func Sniff(data []byte) *mimetype.MIME {
	return mimetype.Detect(data)
}

// mediaType is m without parameters ("text/plain; charset=utf-8" -> "text/plain").
func mediaType(m *mimetype.MIME) string {
	s := m.String()
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return s
}

func isMedia(m *mimetype.MIME) bool {
	t := mediaType(m)
	return strings.HasPrefix(t, "audio/") || strings.HasPrefix(t, "video/")
}

// sniffedAs reports whether m is a media type whose canonical extension is ext.
func sniffedAs(m *mimetype.MIME, ext string) bool {
	for ; m != nil; m = m.Parent() {
		if strings.EqualFold(strings.TrimPrefix(m.Extension(), "."), ext) {
			return true
		}
	}
	return false
}
