// Package errors defines the error taxonomy surfaced to transcribe callers.
// Every failure is an AppError with a machine-readable code, an HTTP status
// hint for the REST mirror, and an optional wrapped cause.
package errors
