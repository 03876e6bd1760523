package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/transcribe"
)

func rpc(t *testing.T, url, body string) map[string]any {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestNew_ListsTool(t *testing.T) {
	s := New(&fakeTranscriber{}, "test", WithLogger(logger.NewNop()))

	msg := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Result.Tools) != 1 || out.Result.Tools[0].Name != ToolName {
		t.Errorf("tools = %+v", out.Result.Tools)
	}
}

func TestNew_Instructions(t *testing.T) {
	s := New(&fakeTranscriber{}, "1.0.0", WithLogger(logger.NewNop()))

	msg := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"initialize",`+
		`"params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`))
	data, _ := json.Marshal(msg)
	var out struct {
		Result struct {
			Instructions string `json:"instructions"`
			ServerInfo   struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(out.Result.Instructions, "output_format") {
		t.Error("instructions should describe output_format")
	}
	if out.Result.ServerInfo.Name != ServerName || out.Result.ServerInfo.Version != "1.0.0" {
		t.Errorf("server info = %+v", out.Result.ServerInfo)
	}
}

func TestHTTPHandler_ToolCall(t *testing.T) {
	fake := &fakeTranscriber{res: &transcribe.Result{Transcription: "WEBVTT\n\nhi", OutputFormat: "vtt"}}
	ts := httptest.NewServer(HTTPHandler(New(fake, "test", WithLogger(logger.NewNop()))))
	defer ts.Close()

	out := rpc(t, ts.URL+EndpointPath, `{"jsonrpc":"2.0","id":7,"method":"tools/call",`+
		`"params":{"name":"transcribe","arguments":{"audio_url":"https://example.com/a.wav","output_format":"vtt"}}}`)

	result, ok := out["result"].(map[string]any)
	if !ok {
		t.Fatalf("no result in %v", out)
	}
	if isErr, _ := result["isError"].(bool); isErr {
		t.Fatalf("unexpected error result %v", result)
	}
	content := result["content"].([]any)
	text := content[0].(map[string]any)["text"].(string)
	if !strings.Contains(text, `"output_format":"vtt"`) {
		t.Errorf("text = %s", text)
	}
	if len(fake.got) != 1 || fake.got[0].AudioURL != "https://example.com/a.wav" {
		t.Errorf("service args = %+v", fake.got)
	}
}
