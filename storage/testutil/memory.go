package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderMemory, func(_ context.Context, _ storage.Config, _ *logger.Logger) (storage.Storage, error) {
		return NewMemory(nil), nil
	})
}

type memFile struct {
	data    []byte
	modTime time.Time
}

// Memory is an in-memory storage.Storage for tests. It counts downloads so
// tests can assert which sources touched the store.
type Memory struct {
	mu        sync.RWMutex
	files     map[string]*memFile
	downloads int
	// FailWith, when set, is returned by every Stat and Download.
	FailWith error
}

// NewMemory creates an empty store seeded with files.
func NewMemory(files map[string][]byte) *Memory {
	m := &Memory{files: make(map[string]*memFile)}
	for path, data := range files {
		m.files[normalize(path)] = &memFile{data: data, modTime: time.Now()}
	}
	return m
}

func normalize(path string) string {
	return strings.TrimLeft(path, "/")
}

// Download returns a copy of the stored bytes.
func (m *Memory) Download(_ context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloads++
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	f, ok := m.files[normalize(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(f.data))), nil
}

// Stat returns the stored size.
func (m *Memory) Stat(_ context.Context, path string) (storage.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return storage.FileInfo{}, m.FailWith
	}
	f, ok := m.files[normalize(path)]
	if !ok {
		return storage.FileInfo{}, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
	}
	return storage.FileInfo{Path: path, Size: int64(len(f.data)), LastModified: f.modTime}, nil
}

// Downloads returns the number of Download calls.
func (m *Memory) Downloads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.downloads
}

var _ storage.Storage = (*Memory)(nil)
