package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kbukum/whisper-asr-mcp/resilience"
)

// Adapter is an HTTP client for one backend with auth, TLS, a response
// size cap and an optional circuit breaker. It never retries.
type Adapter struct {
	httpClient *http.Client
	config     Config
	maxBody    int64
	cb         *resilience.CircuitBreaker
}

// Option customizes an Adapter after construction.
type Option func(*Adapter)

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(a *Adapter) { a.httpClient.Transport = rt }
}

// New creates an Adapter from cfg.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport:     transport,
			Timeout:       cfg.Timeout,
			CheckRedirect: redirectPolicy(cfg.MaxRedirects),
		},
		config:  cfg,
		maxBody: cfg.maxBodyBytes(),
	}

	if cfg.CircuitBreaker.Enabled {
		cbCfg := cfg.CircuitBreaker
		cbCfg.Name = cfg.Name
		if cbCfg.IsFailure == nil {
			cbCfg.IsFailure = IsBackendFailure
		}
		a.cb = resilience.NewCircuitBreaker(cbCfg)
	}

	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func redirectPolicy(max int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if max < 0 || len(via) > max {
			return fmt.Errorf("stopped after %d redirects", len(via))
		}
		return nil
	}
}

// Do sends req and returns the fully read response. Non-2xx statuses are
// returned as *Error together with the response.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	if a.cb == nil {
		return a.execute(ctx, req)
	}

	var resp *Response
	err := a.cb.Execute(func() error {
		var execErr error
		resp, execErr = a.execute(ctx, req)
		return execErr
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil, &Error{Backend: a.config.Name, Code: ErrCodeUnavailable, Message: err.Error(), Err: err}
	}
	return resp, err
}

func (a *Adapter) execute(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, &Error{Backend: a.config.Name, Code: ErrCodeInvalidRequest, Message: err.Error(), Err: err}
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		e := classifyTransportError(ctx, err)
		e.Backend = a.config.Name
		return nil, e
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := a.readBody(resp)
	if err != nil {
		return nil, err
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		URL:        resp.Request.URL.String(),
	}
	if e := ClassifyStatusCode(resp.StatusCode, body); e != nil {
		e.Backend = a.config.Name
		return result, e
	}
	return result, nil
}

func (a *Adapter) readBody(resp *http.Response) ([]byte, error) {
	if a.maxBody > 0 && resp.ContentLength > a.maxBody {
		return nil, a.tooLarge(resp.ContentLength)
	}

	r := io.Reader(resp.Body)
	if a.maxBody > 0 {
		r = io.LimitReader(resp.Body, a.maxBody+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		e := classifyTransportError(resp.Request.Context(), fmt.Errorf("read response body: %w", err))
		e.Backend = a.config.Name
		return nil, e
	}
	if a.maxBody > 0 && int64(len(body)) > a.maxBody {
		return nil, a.tooLarge(-1)
	}
	return body, nil
}

func (a *Adapter) tooLarge(size int64) *Error {
	msg := fmt.Sprintf("response exceeds %s", a.config.MaxResponseSize)
	if size > 0 {
		msg = fmt.Sprintf("response of %d bytes exceeds %s", size, a.config.MaxResponseSize)
	}
	return &Error{Backend: a.config.Name, Code: ErrCodeTooLarge, Message: msg}
}

func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := req.Path
	if a.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	a.config.Auth.apply(httpReq)
	return httpReq, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case *MultipartBody:
		return v.encode()
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "application/octet-stream", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// Name returns the backend name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// IsAvailable reports false while the circuit is open.
func (a *Adapter) IsAvailable(_ context.Context) bool {
	if a.cb != nil {
		return a.cb.State() != resilience.StateOpen
	}
	return true
}

// Execute is Do under the provider.RequestResponse signature.
func (a *Adapter) Execute(ctx context.Context, req Request) (*Response, error) {
	return a.Do(ctx, req)
}

// Close drops idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// Config returns the effective configuration.
func (a *Adapter) Config() Config {
	return a.config
}
