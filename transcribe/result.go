package transcribe

import (
	"fmt"

	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
	"github.com/kbukum/whisper-asr-mcp/transcription"
	"github.com/kbukum/whisper-asr-mcp/util"
)

// Result is the envelope returned for every output format.
type Result struct {
	Transcription    string  `json:"transcription"`
	DetectedLanguage *string `json:"detected_language"`
	OutputFormat     string  `json:"output_format"`
	// Segments is only set for json output.
	Segments []transcription.Segment `json:"segments,omitempty"`
}

// normalize maps a backend response onto the Result envelope.
func normalize(format transcription.OutputFormat, resp *transcription.Response) (*Result, error) {
	if resp == nil {
		return nil, apperrors.Internal(fmt.Errorf("transcription backend returned no response"))
	}

	res := &Result{OutputFormat: string(format)}
	lang := resp.Language
	switch out := resp.Output.(type) {
	case transcription.PlainOutput:
		res.Transcription = out.Body
	case transcription.StructuredOutput:
		res.Transcription = out.Text
		res.Segments = out.Segments
		if out.Language != "" {
			lang = out.Language
		}
	default:
		return nil, apperrors.Internal(fmt.Errorf("unexpected transcription output %T", resp.Output))
	}
	res.DetectedLanguage = util.NonEmpty(lang)
	return res, nil
}
