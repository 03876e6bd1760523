// Package conversion defines the audio conversion backend contract. The
// ffmpeg subpackage implements it over an ffmpeg-api service.
package conversion

import (
	"path/filepath"
	"strings"

	"github.com/kbukum/whisper-asr-mcp/provider"
)

// Request asks for Data to be re-encoded into the Target container.
type Request struct {
	Data        []byte
	Filename    string
	ContentType string
	// Target is the container extension without a dot ("mp3").
	Target string
}

// Result is the converted audio.
type Result struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Converter is a conversion backend.
type Converter = provider.RequestResponse[Request, *Result]

// RenameExt replaces the extension of filename with ext, or appends it when
// there is none: clip.wav -> clip.mp3, audio -> audio.mp3.
func RenameExt(filename, ext string) string {
	if filename == "" {
		filename = "audio"
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "audio"
	}
	return base + "." + strings.TrimPrefix(ext, ".")
}
