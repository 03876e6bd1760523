package mcpserver

// Instructions is advertised to clients during initialization.
const Instructions = `# Whisper ASR

Speech-to-text for audio in any ffmpeg-readable format (mp3, wav, m4a, flac, ogg, webm, mp4 and more).
Audio that is not MP3 is converted before transcription. The language is detected automatically.

## transcribe

Give exactly one audio source:

- audio_path: a file in the media store, e.g. transcribe(audio_path="/media/inbound/call.m4a")
- audio_url: an http(s) URL, e.g. transcribe(audio_url="https://example.com/talk.mp3")
- audio_base64: inline bytes plus filename, e.g. transcribe(audio_base64="SUQz...", filename="note.mp3")

Set output_format to text (default), json (segments with timestamps), srt, vtt or tsv.
Use srt or vtt for subtitles.

## Result

A JSON object:

- transcription: the transcript in the requested format
- detected_language: language code such as "en", or null when unknown
- output_format: the format used

## Errors

Failed calls are flagged isError and carry {"error":{"code","message","retryable"}}.
Codes: INVALID_INPUT (bad or missing arguments), NOT_FOUND (audio_path does not exist),
FETCH_ERROR (audio_url could not be downloaded), CONVERSION_ERROR (the audio could not be decoded),
TRANSCRIPTION_ERROR (the speech service failed), SERVICE_UNAVAILABLE (a configured concurrency limit stayed full).
Long recordings can take several minutes.
`
