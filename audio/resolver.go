package audio

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
	"github.com/kbukum/whisper-asr-mcp/httpclient"
	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/storage"
	"github.com/kbukum/whisper-asr-mcp/util"
)

const defaultFilename = "audio"

// Resolver reads any Source into a Resolved buffer.
type Resolver struct {
	store        storage.Storage
	fetcher      *httpclient.Adapter
	maxFileBytes int64
	log          *logger.Logger
}

// NewResolver creates a resolver over store. maxFileBytes caps audio_path
// reads (<= 0 for no cap); fetch configures audio_url downloads.
func NewResolver(store storage.Storage, maxFileBytes int64, fetch FetchConfig, log *logger.Logger, opts ...httpclient.Option) (*Resolver, error) {
	fetch.ApplyDefaults()
	a, err := httpclient.New(fetch.httpConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("audio fetcher: %w", err)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{
		store:        store,
		fetcher:      a,
		maxFileBytes: maxFileBytes,
		log:          log.WithComponent("audio"),
	}, nil
}

// Resolve loads src. A caller-supplied filename wins over the name derived
// from the path, URL or Content-Disposition header.
func (r *Resolver) Resolve(ctx context.Context, src Source) (*Resolved, error) {
	var (
		data []byte
		hint string
		err  error
	)
	switch s := src.(type) {
	case PathSource:
		data, err = r.readPath(ctx, s.Path)
		hint = filepath.Base(s.Path)
	case URLSource:
		data, hint, err = r.fetch(ctx, s.URL)
	case InlineSource:
		data, hint = s.Data, s.Filename
	default:
		return nil, apperrors.Internal(fmt.Errorf("unsupported audio source %T", src))
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperrors.InvalidInput("audio", "audio is empty")
	}

	filename := src.FilenameOverride()
	if filename == "" {
		filename = hint
	}
	if filename == "" || filename == "." || filename == "/" {
		filename = defaultFilename
	}

	r.log.Debug("audio resolved", logger.Fields(
		logger.FieldSource, src.Kind(),
		logger.FieldFilename, filename,
		logger.FieldBytes, len(data),
	))
	return &Resolved{Data: data, Filename: filename}, nil
}

func (r *Resolver) readPath(ctx context.Context, path string) ([]byte, error) {
	data, err := storage.ReadFile(ctx, r.store, path, r.maxFileBytes)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, storage.ErrTooLarge):
		return nil, apperrors.InvalidInput("audio_path",
			fmt.Sprintf("file exceeds %s", util.FormatSize(r.maxFileBytes))).WithCause(err)
	default:
		r.log.Debug("audio path unreadable", logger.ErrorFields("read_path", err))
		return nil, apperrors.NotFound("file", path).WithCause(err)
	}
}

func (r *Resolver) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	resp, err := r.fetcher.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: rawURL})
	if err != nil {
		appErr := apperrors.FetchError(rawURL, err)
		if status := httpclient.StatusCode(err); status > 0 {
			appErr.WithDetail("status", status)
		}
		return nil, "", appErr
	}

	hint := urlFilename(rawURL)
	if name := dispositionFilename(resp.Header.Get("Content-Disposition")); name != "" {
		hint = name
	}
	return resp.Body, hint, nil
}

// urlFilename is the last path segment of rawURL, ignoring the query.
func urlFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultFilename
	}
	seg := u.Path[strings.LastIndex(u.Path, "/")+1:]
	if seg == "" {
		return defaultFilename
	}
	return seg
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	var name string
	if _, params, err := mime.ParseMediaType(header); err == nil {
		name = params["filename"]
	} else if i := strings.LastIndex(header, "filename="); i >= 0 {
		rest := header[i+len("filename="):]
		if j := strings.IndexByte(rest, ';'); j >= 0 {
			rest = rest[:j]
		}
		name = strings.Trim(rest, `"' `)
	}
	if name == "" {
		return ""
	}
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// Close releases the fetcher's idle connections.
func (r *Resolver) Close(ctx context.Context) error { return r.fetcher.Close(ctx) }
