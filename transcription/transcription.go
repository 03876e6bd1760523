// Package transcription defines the speech-to-text backend contract and its
// output variants. The whisper subpackage implements it over a
// whisper-asr-webservice deployment.
package transcription

import (
	"github.com/kbukum/whisper-asr-mcp/provider"
)

// Request is one transcription call.
type Request struct {
	Data        []byte
	Filename    string
	ContentType string
	Format      OutputFormat
	// DetectLanguage runs language detection before transcribing. The
	// backend config may still disable it.
	DetectLanguage bool
}

// Output is the backend answer. It is either PlainOutput or
// StructuredOutput.
type Output interface {
	output()
}

// PlainOutput carries text, srt, vtt and tsv bodies verbatim.
type PlainOutput struct {
	Body string
}

// StructuredOutput is the decoded json answer.
type StructuredOutput struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

func (PlainOutput) output()      {}
func (StructuredOutput) output() {}

// Segment is one timed span of a json transcript.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Word is present when word timestamps were requested.
type Word struct {
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Word        string  `json:"word"`
	Probability float64 `json:"probability"`
}

// Response pairs the output with the detected language code. Language is
// empty when detection was skipped or failed.
type Response struct {
	Output   Output
	Language string
}

// Provider is a transcription backend.
type Provider = provider.RequestResponse[Request, *Response]
