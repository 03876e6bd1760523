// Package version exposes build information set via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/whisper-asr-mcp/version.Version=1.2.0"
package version
