package audio

import (
	"encoding/base64"
	"net/url"
	"strings"

	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
)

const (
	msgNoSource    = "Provide one of: audio_base64, audio_url, or audio_path"
	msgManySources = "Provide only one of: audio_base64, audio_url, or audio_path"
)

// Source is where the audio comes from: PathSource, URLSource or
// InlineSource.
type Source interface {
	// Kind is "path", "url" or "base64".
	Kind() string
	// FilenameOverride is the caller-supplied filename, if any.
	FilenameOverride() string
}

// PathSource is a key in the media store.
type PathSource struct {
	Path     string
	Filename string
}

// URLSource is an http or https URL to download.
type URLSource struct {
	URL      string
	Filename string
}

// InlineSource is decoded base64 audio. Filename is required.
type InlineSource struct {
	Data     []byte
	Filename string
}

func (PathSource) Kind() string   { return "path" }
func (URLSource) Kind() string    { return "url" }
func (InlineSource) Kind() string { return "base64" }

func (s PathSource) FilenameOverride() string   { return s.Filename }
func (s URLSource) FilenameOverride() string    { return s.Filename }
func (s InlineSource) FilenameOverride() string { return s.Filename }

// NewSource builds a Source from the raw arguments. Exactly one of path,
// rawURL and b64 must be non-blank.
func NewSource(path, rawURL, b64, filename string) (Source, error) {
	path = strings.TrimSpace(path)
	rawURL = strings.TrimSpace(rawURL)
	filename = strings.TrimSpace(filename)

	n := 0
	for _, v := range []string{path, rawURL, strings.TrimSpace(b64)} {
		if v != "" {
			n++
		}
	}
	switch {
	case n == 0:
		return nil, apperrors.Validation(msgNoSource)
	case n > 1:
		return nil, apperrors.Validation(msgManySources)
	}

	switch {
	case path != "":
		return PathSource{Path: path, Filename: filename}, nil
	case rawURL != "":
		if !isHTTPURL(rawURL) {
			return nil, apperrors.InvalidInput("audio_url", "audio_url must be an http or https URL")
		}
		return URLSource{URL: rawURL, Filename: filename}, nil
	default:
		if filename == "" {
			return nil, apperrors.InvalidInput("filename", "filename is required with audio_base64")
		}
		data, err := decodeBase64(b64)
		if err != nil {
			return nil, apperrors.InvalidInput("audio_base64", "audio_base64 is not valid base64").WithCause(err)
		}
		return InlineSource{Data: data, Filename: filename}, nil
	}
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// decodeBase64 accepts padded or unpadded standard or URL-safe base64,
// with or without a data: URI prefix and embedded whitespace.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	for _, enc := range []*base64.Encoding{base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if alt, altErr := enc.DecodeString(s); altErr == nil {
			return alt, nil
		}
	}
	return nil, err
}
