package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Caller errors
const (
	// ErrCodeInvalidInput indicates the tool arguments are invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates a referenced file or object does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Pipeline errors
const (
	// ErrCodeFetchFailed indicates the audio URL could not be retrieved.
	ErrCodeFetchFailed ErrorCode = "FETCH_ERROR"
	// ErrCodeConversionFailed indicates the conversion backend rejected or failed the request.
	ErrCodeConversionFailed ErrorCode = "CONVERSION_ERROR"
	// ErrCodeTranscriptionFailed indicates the transcription backend rejected or failed the request.
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_ERROR"
)

// Availability errors
const (
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeRateLimited indicates the client exceeded the request rate.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Retryable marks codes a caller may reasonably resubmit. The service itself
// never retries.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable:  true,
	ErrCodeRateLimited:         true,
	ErrCodeTimeout:             true,
	ErrCodeFetchFailed:         true,
	ErrCodeConversionFailed:    true,
	ErrCodeTranscriptionFailed: true,
	ErrCodeInternal:            false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
