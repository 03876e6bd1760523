// Package httpclient is the outbound HTTP layer shared by the audio fetcher
// and the conversion and transcription backends.
//
// An Adapter targets one backend. It applies default headers, credentials
// and TLS settings, encodes JSON or multipart bodies, caps the response size
// and classifies failures into timeouts, connection errors and status
// errors. Requests are never retried. An optional circuit breaker fails fast
// while a backend keeps timing out or returning 5xx.
//
//	asr, err := httpclient.New(httpclient.Config{
//	    Name:    "whisper-asr",
//	    BaseURL: "http://whisper:9000",
//	    Timeout: 10 * time.Minute,
//	})
//
//	resp, err := asr.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/asr",
//	    Query:  map[string]string{"output": "txt"},
//	    Body:   httpclient.NewFileUpload("audio_file", "clip.mp3", "audio/mpeg", data),
//	})
package httpclient
