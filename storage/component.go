package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/kbukum/whisper-asr-mcp/component"
	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/util"
)

// errNotStarted is returned by the Storage methods before Start.
var errNotStarted = errors.New("storage: media store not started")

// Component builds the media store on Start and reports it in /health.
// It also implements Storage by delegating to the started store, so
// consumers can be wired before the lifecycle runs.
type Component struct {
	cfg Config
	log *logger.Logger

	mu      sync.RWMutex
	storage Storage
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
	_ Storage               = (*Component)(nil)
)

// NewComponent creates a storage component.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log}
}

// Storage returns the store, or nil before Start.
func (c *Component) Storage() Storage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storage
}

// Name returns the component name.
func (c *Component) Name() string { return "media" }

// Start builds the configured provider.
func (c *Component) Start(ctx context.Context) error {
	s, err := New(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("media store: %w", err)
	}
	c.mu.Lock()
	c.storage = s
	c.mu.Unlock()
	return nil
}

// Stop releases the store.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	c.storage = nil
	c.mu.Unlock()
	return nil
}

// Health is unhealthy until Start succeeds.
func (c *Component) Health(_ context.Context) component.Health {
	if c.Storage() == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not initialized"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns the startup summary entry.
func (c *Component) Describe() component.Description {
	details := "provider=" + c.cfg.Provider
	switch c.cfg.Provider {
	case ProviderS3:
		details += " bucket=" + c.cfg.S3.Bucket
		if c.cfg.S3.AccessKey != "" {
			details += " key=" + util.MaskSecret(c.cfg.S3.AccessKey, 4)
		}
	case ProviderLocal:
		if c.cfg.BasePath != "" {
			details += " root=" + c.cfg.BasePath
		}
	}
	return component.Description{Name: "Media store", Type: "storage", Details: details}
}

func (c *Component) active() (Storage, error) {
	s := c.Storage()
	if s == nil {
		return nil, errNotStarted
	}
	return s, nil
}

// Download reads from the started store.
func (c *Component) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	s, err := c.active()
	if err != nil {
		return nil, err
	}
	return s.Download(ctx, path)
}

// Stat describes an object in the started store.
func (c *Component) Stat(ctx context.Context, path string) (FileInfo, error) {
	s, err := c.active()
	if err != nil {
		return FileInfo{}, err
	}
	return s.Stat(ctx, path)
}
