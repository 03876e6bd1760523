package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/whisper-asr-mcp/component"
	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/server"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Component runs a server.Server behind an httptest.Server with the
// standard middleware stack applied.
type Component struct {
	srv     *server.Server
	ts      *httptest.Server
	started bool
	mu      sync.RWMutex
}

var _ component.Component = (*Component)(nil)

// NewComponent creates a test server. Register routes and mounts on
// Server() before calling Start.
func NewComponent() *Component {
	cfg := server.Config{Host: "127.0.0.1"}
	cfg.ApplyDefaults()
	return &Component{srv: server.New(cfg, logger.NewNop())}
}

// Server returns the underlying server.
func (c *Component) Server() *server.Server {
	return c.srv
}

// BaseURL returns "http://127.0.0.1:PORT", or "" before Start.
func (c *Component) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ts == nil {
		return ""
	}
	return c.ts.URL
}

func (c *Component) Name() string { return "server-test" }

func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return fmt.Errorf("component already started")
	}
	c.srv.ApplyMiddleware()
	c.ts = httptest.NewServer(c.srv.Handler())
	c.started = true
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || c.ts == nil {
		return nil
	}
	c.ts.Close()
	c.started = false
	return nil
}

func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.started {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}
