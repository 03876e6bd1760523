package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorCode classifies transport-level failures.
type ErrorCode int

const (
	// ErrCodeTimeout covers client, dial and context deadline expiry.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection covers refused connections, DNS and read failures.
	ErrCodeConnection
	// ErrCodeCanceled means the caller's context was canceled.
	ErrCodeCanceled
	// ErrCodeClient covers 4xx responses.
	ErrCodeClient
	// ErrCodeServer covers 5xx responses.
	ErrCodeServer
	// ErrCodeTooLarge means the response exceeded MaxResponseSize.
	ErrCodeTooLarge
	// ErrCodeUnavailable means the circuit breaker rejected the call.
	ErrCodeUnavailable
	// ErrCodeInvalidRequest means the request could not be built.
	ErrCodeInvalidRequest
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeCanceled:
		return "canceled"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	case ErrCodeTooLarge:
		return "too_large"
	case ErrCodeUnavailable:
		return "unavailable"
	case ErrCodeInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// Error is a classified HTTP client error.
type Error struct {
	Backend    string
	StatusCode int
	Code       ErrorCode
	Message    string
	// Body is the response body for status errors, truncated for display.
	Body []byte
	Err  error
}

func (e *Error) Error() string {
	prefix := "httpclient"
	if e.Backend != "" {
		prefix = e.Backend
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %s", prefix, e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", prefix, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

const maxErrorBody = 512

// classifyTransportError maps an http.Client.Do failure to an Error.
func classifyTransportError(ctx context.Context, err error) *Error {
	code := ErrCodeConnection
	var netErr net.Error
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		code = ErrCodeCanceled
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		code = ErrCodeTimeout
	}
	return &Error{Code: code, Message: err.Error(), Err: err}
}

// ClassifyStatusCode converts a non-2xx status into an Error. Returns nil for 2xx.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	code := ErrCodeServer
	if statusCode >= 400 && statusCode < 500 {
		code = ErrCodeClient
	}
	msg := string(body)
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", statusCode)
	}
	return &Error{StatusCode: statusCode, Code: code, Message: msg, Body: body}
}

func codeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	c, ok := codeOf(err)
	return ok && c == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	c, ok := codeOf(err)
	return ok && c == ErrCodeConnection
}

// IsStatus reports whether err carries an HTTP status error.
func IsStatus(err error) bool {
	c, ok := codeOf(err)
	return ok && (c == ErrCodeClient || c == ErrCodeServer)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsBackendFailure reports whether err should count against a backend's
// health: timeouts, connection failures and 5xx. Client errors, caller
// cancellation and local build errors do not.
func IsBackendFailure(err error) bool {
	c, ok := codeOf(err)
	if !ok {
		return err != nil
	}
	switch c {
	case ErrCodeTimeout, ErrCodeConnection, ErrCodeServer:
		return true
	default:
		return false
	}
}
