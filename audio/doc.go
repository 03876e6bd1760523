// Package audio turns the caller's audio argument into bytes the
// transcription backend accepts.
//
// A Source is one of PathSource, URLSource or InlineSource, built by
// NewSource from the raw tool arguments. The Resolver reads it into a
// Resolved buffer and the Gate converts that buffer to the native container
// when its extension (or, optionally, its content) says otherwise.
package audio
