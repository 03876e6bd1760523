package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderLocal, func(_ context.Context, cfg storage.Config, _ *logger.Logger) (storage.Storage, error) {
		return NewStorage(cfg.BasePath)
	})
}

// Storage reads the local filesystem. With a base path, every
// path is resolved inside it and traversal outside is rejected. Without
// one, paths are used as given.
type Storage struct {
	basePath string
}

// NewStorage creates a filesystem store rooted at basePath ("" for none).
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return &Storage{}, nil
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve base path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: base path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: base path %s is not a directory", abs)
	}
	return &Storage{basePath: abs}, nil
}

// resolve maps a caller path to a filesystem path.
func (s *Storage) resolve(path string) (string, error) {
	if path == "" {
		return "", storage.ErrInvalidPath
	}
	if s.basePath == "" {
		return filepath.Clean(path), nil
	}
	// Treat absolute paths as relative to the root.
	rel := strings.TrimPrefix(filepath.ToSlash(path), "/")
	full := filepath.Join(s.basePath, filepath.FromSlash(rel))
	if full != s.basePath && !strings.HasPrefix(full, s.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", storage.ErrInvalidPath, path)
	}
	return full, nil
}

func mapErr(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, path)
	}
	return fmt.Errorf("storage: %w", err)
}

// Download opens the file at path. Directories count as not found.
func (s *Storage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return nil, mapErr(path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", storage.ErrNotFound, path)
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, mapErr(path, err)
	}
	return f, nil
}

// Stat returns file metadata.
func (s *Storage) Stat(_ context.Context, path string) (storage.FileInfo, error) {
	full, err := s.resolve(path)
	if err != nil {
		return storage.FileInfo{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return storage.FileInfo{}, mapErr(path, err)
	}
	if info.IsDir() {
		return storage.FileInfo{}, fmt.Errorf("%w: %s is a directory", storage.ErrNotFound, path)
	}
	ct := mime.TypeByExtension(filepath.Ext(full))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return storage.FileInfo{Path: path, Size: info.Size(), LastModified: info.ModTime(), ContentType: ct}, nil
}

var _ storage.Storage = (*Storage)(nil)
