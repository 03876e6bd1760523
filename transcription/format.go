package transcription

import (
	"fmt"
	"strings"

	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
)

// OutputFormat is the caller-facing transcript format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatSRT  OutputFormat = "srt"
	FormatVTT  OutputFormat = "vtt"
	FormatTSV  OutputFormat = "tsv"
)

// Formats lists the accepted formats in display order.
var Formats = []OutputFormat{FormatText, FormatJSON, FormatSRT, FormatVTT, FormatTSV}

// FormatNames returns Formats as strings.
func FormatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return names
}

// ParseOutputFormat parses s case-insensitively. Empty means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", apperrors.Validation(fmt.Sprintf("Invalid output_format. Choose from: %s", strings.Join(FormatNames(), ", "))).
		WithDetail("field", "output_format").
		WithDetail("value", s)
}

// BackendValue is the value of the ASR "output" query parameter.
func (f OutputFormat) BackendValue() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// IsStructured reports whether the backend answers with a JSON document.
func (f OutputFormat) IsStructured() bool { return f == FormatJSON }

func (f OutputFormat) String() string { return string(f) }
