package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/kbukum/whisper-asr-mcp/storage"
)

// fakeS3 serves path-style GET and HEAD for one bucket.
func fakeS3(t *testing.T, bucket string, objects map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/"+bucket+"/")
		body, ok := objects[key]
		if !ok {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestStorage(t *testing.T, endpoint, prefix string) *Storage {
	t.Helper()
	s, err := NewStorage(context.Background(), storage.S3Config{
		Bucket:    "media",
		Region:    "us-east-1",
		Prefix:    prefix,
		Endpoint:  endpoint,
		AccessKey: "test",
		SecretKey: "test",
	})
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	return s
}

func TestStorage_Download(t *testing.T) {
	srv := fakeS3(t, "media", map[string]string{"uploads/clip.mp3": "ID3audio"})
	s := newTestStorage(t, srv.URL, "uploads")

	data, err := storage.ReadFile(context.Background(), s, "/clip.mp3", 0)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "ID3audio" {
		t.Errorf("data = %q", data)
	}
}

func TestStorage_DownloadMissing(t *testing.T) {
	srv := fakeS3(t, "media", nil)
	s := newTestStorage(t, srv.URL, "")

	_, err := s.Download(context.Background(), "missing.wav")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStorage_Stat(t *testing.T) {
	srv := fakeS3(t, "media", map[string]string{"clip.mp3": "12345"})
	s := newTestStorage(t, srv.URL, "")
	ctx := context.Background()

	fi, err := s.Stat(ctx, "clip.mp3")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if fi.Size != 5 || fi.ContentType != "audio/mpeg" {
		t.Errorf("unexpected info: %+v", fi)
	}

	if _, err := s.Stat(ctx, "nope.mp3"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Stat(nope.mp3) = %v, want ErrNotFound", err)
	}
}

func TestStorage_Key(t *testing.T) {
	s := &Storage{prefix: "audio"}
	k, err := s.key("/a/b.wav")
	if err != nil || k != "audio/a/b.wav" {
		t.Errorf("key = %q, %v", k, err)
	}
	if _, err := s.key("/"); !errors.Is(err, storage.ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
}
