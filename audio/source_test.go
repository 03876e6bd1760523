package audio

import (
	"encoding/base64"
	"testing"

	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
)

func TestNewSource_Cardinality(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString([]byte("ID3"))
	tests := []struct {
		name            string
		path, url, data string
		wantMsg         string
	}{
		{"none", "", "", "", msgNoSource},
		{"blank only", "  ", "", "\n", msgNoSource},
		{"path and url", "/a.mp3", "http://x/a.mp3", "", msgManySources},
		{"url and base64", "", "http://x/a.mp3", b64, msgManySources},
		{"all three", "/a.mp3", "http://x/a.mp3", b64, msgManySources},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSource(tt.path, tt.url, tt.data, "a.mp3")
			appErr, ok := apperrors.AsAppError(err)
			if !ok || appErr.Code != apperrors.ErrCodeInvalidInput {
				t.Fatalf("expected INVALID_INPUT, got %v", err)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", appErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestNewSource_Variants(t *testing.T) {
	src, err := NewSource(" /media/clip.wav ", "", "", "")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if p, ok := src.(PathSource); !ok || p.Path != "/media/clip.wav" || src.Kind() != "path" {
		t.Errorf("unexpected source %#v", src)
	}

	src, err = NewSource("", "https://cdn.example.com/a.ogg?sig=1", "", "talk.ogg")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if u, ok := src.(URLSource); !ok || u.Filename != "talk.ogg" || src.Kind() != "url" {
		t.Errorf("unexpected source %#v", src)
	}

	src, err = NewSource("", "", base64.StdEncoding.EncodeToString([]byte("RIFF")), "memo.wav")
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	in, ok := src.(InlineSource)
	if !ok || string(in.Data) != "RIFF" || in.Filename != "memo.wav" || src.Kind() != "base64" {
		t.Errorf("unexpected source %#v", src)
	}
}

func TestNewSource_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		url, data string
		filename  string
		field     string
	}{
		{"base64 without filename", "", "SUQz", "", "filename"},
		{"malformed base64", "", "!!not base64!!", "a.mp3", "audio_base64"},
		{"file url", "file:///etc/passwd", "", "", "audio_url"},
		{"relative url", "clips/a.mp3", "", "", "audio_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSource("", tt.url, tt.data, tt.filename)
			appErr, ok := apperrors.AsAppError(err)
			if !ok || appErr.Code != apperrors.ErrCodeInvalidInput {
				t.Fatalf("expected INVALID_INPUT, got %v", err)
			}
			if appErr.Details["field"] != tt.field {
				t.Errorf("field = %v, want %s", appErr.Details["field"], tt.field)
			}
		})
	}
}

func TestDecodeBase64(t *testing.T) {
	want := "ID3\x04audio"
	std := base64.StdEncoding.EncodeToString([]byte(want))
	tests := map[string]string{
		"padded":    std,
		"unpadded":  base64.RawStdEncoding.EncodeToString([]byte(want)),
		"data uri":  "data:audio/mpeg;base64," + std,
		"wrapped":   std[:4] + "\n" + std[4:],
		"surrounds": "  " + std + "\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := decodeBase64(in)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if string(got) != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestDecodeBase64_URLAlphabet(t *testing.T) {
	want := []byte{0xfb, 0xff, 0xbf, 0x01}
	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.RawURLEncoding} {
		in := enc.EncodeToString(want)
		got, err := decodeBase64(in)
		if err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
		if string(got) != string(want) {
			t.Errorf("decode %q = %x, want %x", in, got, want)
		}
	}
	if _, err := decodeBase64("not*base64"); err == nil {
		t.Error("expected error for characters outside both alphabets")
	}
}

func TestResolved_Ext(t *testing.T) {
	tests := map[string]string{
		"clip.MP3":    "mp3",
		"a.b.wav":     "wav",
		"audio":       "",
		"dir.d/audio": "",
	}
	for name, want := range tests {
		r := &Resolved{Filename: name}
		if got := r.Ext(); got != want {
			t.Errorf("Ext(%q) = %q, want %q", name, got, want)
		}
	}
}
