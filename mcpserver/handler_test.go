package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/transcribe"
)

type fakeTranscriber struct {
	got []transcribe.Args
	res *transcribe.Result
	err error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, args transcribe.Args) (*transcribe.Result, error) {
	f.got = append(f.got, args)
	return f.res, f.err
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = ToolName
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content blocks = %d, want 1", len(res.Content))
	}
	tc, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("content is %T, want text", res.Content[0])
	}
	return tc.Text
}

func TestHandle_Success(t *testing.T) {
	lang := "en"
	fake := &fakeTranscriber{res: &transcribe.Result{Transcription: "hello", DetectedLanguage: &lang, OutputFormat: "srt"}}
	h := &toolHandler{svc: fake, log: logger.NewNop()}

	res, err := h.handle(context.Background(), callRequest(map[string]any{
		ArgAudioPath:    "/media/inbound/call.m4a",
		ArgFilename:     "call.m4a",
		ArgOutputFormat: "SRT",
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", textOf(t, res))
	}

	want := transcribe.Args{AudioPath: "/media/inbound/call.m4a", Filename: "call.m4a", OutputFormat: "SRT"}
	if len(fake.got) != 1 || fake.got[0] != want {
		t.Errorf("args = %+v, want %+v", fake.got, want)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(textOf(t, res)), &body); err != nil {
		t.Fatalf("text is not JSON: %v", err)
	}
	if body["transcription"] != "hello" || body["detected_language"] != "en" || body["output_format"] != "srt" {
		t.Errorf("body = %v", body)
	}
	if res.StructuredContent == nil {
		t.Error("expected structured content")
	}
}

func TestHandle_NullLanguage(t *testing.T) {
	fake := &fakeTranscriber{res: &transcribe.Result{Transcription: "x", OutputFormat: "text"}}
	h := &toolHandler{svc: fake, log: logger.NewNop()}

	res, _ := h.handle(context.Background(), callRequest(map[string]any{ArgAudioURL: "https://example.com/a.mp3"}))
	var body map[string]any
	if err := json.Unmarshal([]byte(textOf(t, res)), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	v, present := body["detected_language"]
	if !present || v != nil {
		t.Errorf("detected_language should be present and null, got %v (present=%v)", v, present)
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		svcErr   error
		wantCode string
		called   bool
	}{
		{
			name:     "non-string argument",
			args:     map[string]any{ArgAudioPath: 42},
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "service invalid input",
			args:     map[string]any{},
			svcErr:   apperrors.Validation("Provide one of: audio_base64, audio_url, or audio_path"),
			wantCode: "INVALID_INPUT",
			called:   true,
		},
		{
			name:     "not found",
			args:     map[string]any{ArgAudioPath: "/media/none.mp3"},
			svcErr:   apperrors.NotFound("file", "/media/none.mp3"),
			wantCode: "NOT_FOUND",
			called:   true,
		},
		{
			name:     "transcription error",
			args:     map[string]any{ArgAudioPath: "/media/a.mp3"},
			svcErr:   apperrors.TranscriptionError(errors.New("status 500")),
			wantCode: "TRANSCRIPTION_ERROR",
			called:   true,
		},
		{
			name:     "plain error",
			args:     map[string]any{ArgAudioPath: "/media/a.mp3"},
			svcErr:   errors.New("unexpected"),
			wantCode: "INTERNAL_ERROR",
			called:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTranscriber{err: tt.svcErr}
			h := &toolHandler{svc: fake, log: logger.NewNop()}

			res, err := h.handle(context.Background(), callRequest(tt.args))
			if err != nil {
				t.Fatalf("handler must report failures in the result, got %v", err)
			}
			if !res.IsError {
				t.Fatal("expected isError result")
			}
			if (len(fake.got) == 1) != tt.called {
				t.Errorf("service called = %v, want %v", len(fake.got) == 1, tt.called)
			}

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal([]byte(textOf(t, res)), &body); err != nil {
				t.Fatalf("error text is not JSON: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.wantCode)
			}
			if body.Error.Message == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestTranscribeTool_Schema(t *testing.T) {
	tool := TranscribeTool()
	if tool.Name != ToolName {
		t.Errorf("name = %s", tool.Name)
	}
	for _, arg := range stringArgs {
		if _, ok := tool.InputSchema.Properties[arg]; !ok {
			t.Errorf("schema missing %s", arg)
		}
	}
	if len(tool.InputSchema.Required) != 0 {
		t.Errorf("no argument is individually required, got %v", tool.InputSchema.Required)
	}

	format, _ := tool.InputSchema.Properties[ArgOutputFormat].(map[string]any)
	if format["default"] != "text" {
		t.Errorf("output_format default = %v", format["default"])
	}
	enum, _ := format["enum"].([]string)
	if len(enum) != 5 {
		t.Errorf("output_format enum = %v", format["enum"])
	}
}
