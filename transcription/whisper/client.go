// Package whisper transcribes audio through whisper-asr-webservice
// (POST /asr, POST /detect-language).
package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
	"github.com/kbukum/whisper-asr-mcp/httpclient"
	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/observability"
	"github.com/kbukum/whisper-asr-mcp/transcription"
)

// Name identifies the backend in logs, metrics and health output.
const Name = "whisper-asr"

// Client is a transcription.Provider over whisper-asr-webservice.
type Client struct {
	cfg  Config
	http *httpclient.Adapter
	log  *logger.Logger
}

var _ transcription.Provider = (*Client)(nil)

// New creates a client, applying defaults to cfg.
func New(cfg Config, log *logger.Logger, opts ...httpclient.Option) (*Client, error) {
	cfg.ApplyDefaults()
	a, err := httpclient.New(cfg.HTTPConfig(Name, DefaultTimeout), opts...)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{cfg: cfg, http: a, log: log.WithComponent(Name)}, nil
}

// Execute transcribes req.Data. When detection is enabled the detected
// language is forwarded to /asr and returned in Response.Language.
func (c *Client) Execute(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	format := req.Format
	if format == "" {
		format = transcription.FormatText
	}

	var language string
	if req.DetectLanguage && c.cfg.detectEnabled() {
		language = c.detect(ctx, req)
	}

	query := map[string]string{
		"output": format.BackendValue(),
		"encode": strconv.FormatBool(c.cfg.encodeEnabled()),
		"task":   "transcribe",
	}
	if language != "" {
		query["language"] = language
	}
	if format.IsStructured() && c.cfg.WordTimestamps {
		query["word_timestamps"] = "true"
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/asr",
		Query:  query,
		Body:   httpclient.NewFileUpload("audio_file", req.Filename, req.ContentType, req.Data),
	})
	if err != nil {
		return nil, wrap(err)
	}

	out, err := parseOutput(format, resp.Body)
	if err != nil {
		return nil, wrap(err)
	}
	return &transcription.Response{Output: out, Language: language}, nil
}

func parseOutput(format transcription.OutputFormat, body []byte) (transcription.Output, error) {
	if !format.IsStructured() {
		return transcription.PlainOutput{Body: string(body)}, nil
	}
	var out transcription.StructuredOutput
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode json transcript: %w", err)
	}
	return out, nil
}

type detectResponse struct {
	DetectedLanguage string `json:"detected_language"`
	LanguageCode     string `json:"language_code"`
}

// detect is best effort: any failure is logged and yields "".
func (c *Client) detect(ctx context.Context, req transcription.Request) string {
	dctx, cancel := context.WithTimeout(ctx, c.cfg.DetectTimeout)
	defer cancel()
	dctx, span := observability.StartSpan(dctx, observability.SpanDetect)
	defer span.End()
	log := c.log.WithContext(ctx)

	resp, err := c.http.Do(dctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/detect-language",
		Query:  map[string]string{"encode": strconv.FormatBool(c.cfg.encodeEnabled())},
		Body:   httpclient.NewFileUpload("audio_file", req.Filename, req.ContentType, req.Data),
	})
	if err != nil {
		observability.SetSpanError(dctx, err)
		log.Warn("language detection failed, continuing without language", logger.ErrorFields("detect_language", err))
		return ""
	}

	var dr detectResponse
	if err := json.Unmarshal(resp.Body, &dr); err != nil {
		log.Warn("language detection returned invalid json", logger.ErrorFields("detect_language", err))
		return ""
	}
	lang := dr.LanguageCode
	if lang == "" {
		lang = dr.DetectedLanguage
	}
	observability.SetSpanAttribute(dctx, observability.AttrLanguage, lang)
	log.Debug("language detected", logger.Fields(logger.FieldLanguage, lang))
	return lang
}

func wrap(err error) *apperrors.AppError {
	appErr := apperrors.TranscriptionError(err)
	if status := httpclient.StatusCode(err); status > 0 {
		appErr.WithDetail("status", status)
	}
	if httpclient.IsTimeout(err) {
		appErr.WithDetail("timeout", true)
	}
	return appErr
}

// Name returns the backend name.
func (c *Client) Name() string { return Name }

// IsAvailable reports false while the circuit breaker is open.
func (c *Client) IsAvailable(ctx context.Context) bool { return c.http.IsAvailable(ctx) }

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error { return c.http.Close(ctx) }

// Adapter exposes the HTTP adapter for health registration.
func (c *Client) Adapter() *httpclient.Adapter { return c.http }
