package transcribe

import "strings"

// Args are the transcribe tool arguments. The REST mirror binds the same
// JSON body.
type Args struct {
	AudioPath    string `json:"audio_path,omitempty" validate:"omitempty,max=4096"`
	AudioURL     string `json:"audio_url,omitempty" validate:"omitempty,url"`
	AudioBase64  string `json:"audio_base64,omitempty"`
	Filename     string `json:"filename,omitempty" validate:"omitempty,max=255"`
	OutputFormat string `json:"output_format,omitempty"`
}

// trimmed returns a copy with surrounding whitespace removed from the
// path, URL, filename and format. Base64 is left to the decoder.
func (a Args) trimmed() Args {
	a.AudioPath = strings.TrimSpace(a.AudioPath)
	a.AudioURL = strings.TrimSpace(a.AudioURL)
	a.Filename = strings.TrimSpace(a.Filename)
	a.OutputFormat = strings.TrimSpace(a.OutputFormat)
	return a
}
