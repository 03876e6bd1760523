// Package transcription defines the speech-to-text request, the output
// formats and the backend response variants.
//
// A backend returns PlainOutput for text, srt, vtt and tsv, where the body
// is passed through untouched, and StructuredOutput for json, decoded into
// text, language and timed segments.
//
// Backends:
//
//   - transcription/whisper: the whisper-asr-webservice HTTP API
package transcription
