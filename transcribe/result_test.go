package transcribe

import (
	"encoding/json"
	"testing"

	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
	"github.com/kbukum/whisper-asr-mcp/transcription"
)

func TestNormalize(t *testing.T) {
	segs := []transcription.Segment{{ID: 0, Start: 0, End: 2.5, Text: "hi"}}
	tests := []struct {
		name     string
		format   transcription.OutputFormat
		resp     *transcription.Response
		wantText string
		wantLang string
		wantSegs int
	}{
		{"text", transcription.FormatText, &transcription.Response{Output: transcription.PlainOutput{Body: "hi"}, Language: "en"}, "hi", "en", 0},
		{"srt without language", transcription.FormatSRT, &transcription.Response{Output: transcription.PlainOutput{Body: "1\n"}}, "1\n", "", 0},
		{"json body language", transcription.FormatJSON, &transcription.Response{Output: transcription.StructuredOutput{Text: "hi", Language: "fr", Segments: segs}, Language: "en"}, "hi", "fr", 1},
		{"json detected fallback", transcription.FormatJSON, &transcription.Response{Output: transcription.StructuredOutput{Text: "hi"}, Language: "en"}, "hi", "en", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := normalize(tt.format, tt.resp)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if res.Transcription != tt.wantText || res.OutputFormat != string(tt.format) || len(res.Segments) != tt.wantSegs {
				t.Errorf("unexpected result %+v", res)
			}
			switch {
			case tt.wantLang == "" && res.DetectedLanguage != nil:
				t.Errorf("language = %q, want null", *res.DetectedLanguage)
			case tt.wantLang != "" && (res.DetectedLanguage == nil || *res.DetectedLanguage != tt.wantLang):
				t.Errorf("language = %v, want %q", res.DetectedLanguage, tt.wantLang)
			}
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	if _, err := normalize(transcription.FormatText, nil); apperrors.CodeOf(err) != apperrors.ErrCodeInternal {
		t.Errorf("nil response: %v", err)
	}
	if _, err := normalize(transcription.FormatText, &transcription.Response{}); apperrors.CodeOf(err) != apperrors.ErrCodeInternal {
		t.Errorf("nil output: %v", err)
	}
}

func TestResult_JSONShape(t *testing.T) {
	data, err := json.Marshal(Result{Transcription: "hi", OutputFormat: "text"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"transcription":"hi","detected_language":null,"output_format":"text"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
