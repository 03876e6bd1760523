// Package transcribe runs the transcribe pipeline:
//
//	received -> resolved -> format_checked -> (converted) -> transcribed -> normalized
//
// Service.Transcribe resolves the audio source, converts it to the native
// container when needed, calls the transcription backend and folds the
// answer into a Result. Each run gets a uuid run id carried on the context
// for logs and spans; a bulkhead caps how many run at once. Any failure
// ends the run with an *errors.AppError.
package transcribe
