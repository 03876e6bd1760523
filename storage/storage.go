package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrNotFound is returned when no object exists at a path.
	ErrNotFound = errors.New("storage: object not found")
	// ErrInvalidPath is returned for paths that escape the store root.
	ErrInvalidPath = errors.New("storage: invalid path")
)

// FileInfo is metadata about a stored object.
type FileInfo struct {
	Path         string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// Storage is the read side of the media store that audio_path keys
// resolve against. Objects are put there out of band.
type Storage interface {
	// Download opens the object at path. The caller closes the reader.
	// Returns ErrNotFound when nothing exists there.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Stat returns metadata for the object at path, or ErrNotFound.
	Stat(ctx context.Context, path string) (FileInfo, error)
}
