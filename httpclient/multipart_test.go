package httpclient

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"
)

func readParts(t *testing.T, r io.Reader, contentType string) map[string]*multipart.Part {
	t.Helper()
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	mr := multipart.NewReader(r, params["boundary"])
	parts := map[string]*multipart.Part{}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		parts[p.FormName()] = p
		data, _ := io.ReadAll(p)
		p.Header.Set("X-Test-Body", string(data))
	}
	return parts
}

func TestMultipartBody_FileUpload(t *testing.T) {
	body := NewFileUpload("audio_file", "clip.mp3", "audio/mpeg", []byte("ID3data"))
	r, ct, err := body.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
		t.Fatalf("content type = %q", ct)
	}

	parts := readParts(t, r, ct)
	p, ok := parts["audio_file"]
	if !ok {
		t.Fatal("audio_file part missing")
	}
	if p.FileName() != "clip.mp3" {
		t.Errorf("filename = %q", p.FileName())
	}
	if got := p.Header.Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("part content type = %q", got)
	}
	if got := p.Header.Get("X-Test-Body"); got != "ID3data" {
		t.Errorf("part body = %q", got)
	}
}

func TestMultipartBody_DefaultContentType(t *testing.T) {
	body := NewFileUpload("file", "clip.wav", "", []byte("RIFF"))
	r, ct, err := body.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	parts := readParts(t, r, ct)
	if got := parts["file"].Header.Get("Content-Type"); got != "application/octet-stream" {
		t.Errorf("part content type = %q", got)
	}
}

func TestMultipartBody_FieldsAndFiles(t *testing.T) {
	body := &MultipartBody{
		Fields: map[string]string{"task": "transcribe"},
		Files:  []FileField{{FieldName: "audio_file", FileName: "a.mp3", Data: []byte("x")}},
	}
	r, ct, err := body.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	parts := readParts(t, r, ct)
	if got := parts["task"].Header.Get("X-Test-Body"); got != "transcribe" {
		t.Errorf("field = %q", got)
	}
	if _, ok := parts["audio_file"]; !ok {
		t.Error("file part missing")
	}
}

func TestMultipartBody_MissingFieldName(t *testing.T) {
	body := &MultipartBody{Files: []FileField{{FileName: "a.mp3"}}}
	if _, _, err := body.encode(); err == nil {
		t.Error("expected error for file part without field name")
	}
}

func TestEscapeQuotes(t *testing.T) {
	if got := escapeQuotes(`my "file".mp3`); got != `my \"file\".mp3` {
		t.Errorf("escapeQuotes = %q", got)
	}
	if got := escapeQuotes(`a\b`); got != `a\\b` {
		t.Errorf("escapeQuotes = %q", got)
	}
}
