// Package ffmpeg converts audio through an ffmpeg-api service
// (POST /convert/audio/to/{format}).
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kbukum/whisper-asr-mcp/conversion"
	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
	"github.com/kbukum/whisper-asr-mcp/httpclient"
)

// Name identifies the backend in logs, metrics and health output.
const Name = "ffmpeg-api"

// DefaultTimeout bounds one conversion.
const DefaultTimeout = 300 * time.Second

var errEmptyBody = errors.New("conversion backend returned an empty body")

// Client is a conversion.Converter over ffmpeg-api.
type Client struct {
	http *httpclient.Adapter
}

var _ conversion.Converter = (*Client)(nil)

// New creates a client for the backend described by cfg.
func New(cfg httpclient.BackendConfig, opts ...httpclient.Option) (*Client, error) {
	a, err := httpclient.New(cfg.HTTPConfig(Name, DefaultTimeout), opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: a}, nil
}

// Execute uploads req.Data as the multipart field "file" and returns the
// converted bytes. Any failure, including an empty body, is a
// ConversionError.
func (c *Client) Execute(ctx context.Context, req conversion.Request) (*conversion.Result, error) {
	target := req.Target
	if target == "" {
		target = "mp3"
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/convert/audio/to/" + url.PathEscape(target),
		Body:   httpclient.NewFileUpload("file", req.Filename, req.ContentType, req.Data),
	})
	if err != nil {
		return nil, wrap(err, target)
	}
	if len(resp.Body) == 0 {
		return nil, wrap(errEmptyBody, target)
	}

	ct := resp.ContentType()
	if ct == "" || ct == "application/octet-stream" {
		ct = contentTypeFor(target)
	}
	return &conversion.Result{
		Data:        resp.Body,
		Filename:    conversion.RenameExt(req.Filename, target),
		ContentType: ct,
	}, nil
}

func wrap(err error, target string) *apperrors.AppError {
	appErr := apperrors.ConversionError(err).WithDetail("target", target)
	if status := httpclient.StatusCode(err); status > 0 {
		appErr.WithDetail("status", status)
	}
	if httpclient.IsTimeout(err) {
		appErr.WithDetail("timeout", true)
	}
	return appErr
}

func contentTypeFor(ext string) string {
	switch ext {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "ogg", "opus":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	default:
		return fmt.Sprintf("audio/%s", ext)
	}
}

// Name returns the backend name.
func (c *Client) Name() string { return Name }

// IsAvailable reports false while the circuit breaker is open.
func (c *Client) IsAvailable(ctx context.Context) bool { return c.http.IsAvailable(ctx) }

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error { return c.http.Close(ctx) }

// Adapter exposes the HTTP adapter for health registration.
func (c *Client) Adapter() *httpclient.Adapter { return c.http }
