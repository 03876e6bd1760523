// Package storage is the media store that audio_path arguments are read
// from. Providers register themselves from init: storage/local reads the
// filesystem, optionally confined to a base directory, and storage/s3 reads
// objects from an S3 or MinIO bucket.
//
//	import _ "github.com/kbukum/whisper-asr-mcp/storage/local"
//
//	store, err := storage.New(ctx, cfg.Media, log)
//	data, err := storage.ReadFile(ctx, store, "/data/clip.wav", cfg.Media.MaxBytes())
package storage
