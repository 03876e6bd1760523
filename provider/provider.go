package provider

import "context"

// Provider is a named backend that can report readiness.
type Provider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

// Closeable is implemented by providers that hold connections.
type Closeable interface {
	Close(ctx context.Context) error
}
