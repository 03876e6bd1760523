package httpclient

import (
	"context"
	"fmt"

	"github.com/kbukum/whisper-asr-mcp/component"
)

// Component exposes an Adapter to the bootstrap lifecycle so backend
// health shows up in /health and connections are released on shutdown.
type Component struct {
	adapter *Adapter
	kind    string
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent wraps an already constructed adapter. kind is a short
// label for the startup summary ("asr", "converter").
func NewComponent(a *Adapter, kind string) *Component {
	return &Component{adapter: a, kind: kind}
}

// Name returns the backend name.
func (c *Component) Name() string {
	return c.adapter.Name()
}

// Start is a no-op; the adapter is usable from construction.
func (c *Component) Start(_ context.Context) error {
	return nil
}

// Stop closes idle connections.
func (c *Component) Stop(ctx context.Context) error {
	return c.adapter.Close(ctx)
}

// Health reports degraded while the circuit breaker is open.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if !c.adapter.IsAvailable(ctx) {
		h.Status = component.StatusDegraded
		h.Message = "circuit open"
	}
	return h
}

// Describe returns the startup summary entry.
func (c *Component) Describe() component.Description {
	cfg := c.adapter.Config()
	details := fmt.Sprintf("%s timeout=%s", cfg.BaseURL, cfg.Timeout)
	if cfg.CircuitBreaker.Enabled {
		details += " breaker=on"
	}
	return component.Description{Name: cfg.Name, Type: c.kind, Details: details}
}

// Adapter returns the wrapped adapter.
func (c *Component) Adapter() *Adapter {
	return c.adapter
}
