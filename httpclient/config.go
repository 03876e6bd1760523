package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/whisper-asr-mcp/resilience"
	"github.com/kbukum/whisper-asr-mcp/util"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxRedirects = 10
)

// Config configures an Adapter.
type Config struct {
	// Name identifies the backend in logs, health output and errors.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds the whole exchange, body included. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxResponseSize caps the response body ("500MB"). Empty means unlimited.
	MaxResponseSize string `yaml:"max_response_size" mapstructure:"max_response_size"`

	// MaxRedirects is the number of redirects followed. Negative disables them.
	MaxRedirects int `yaml:"max_redirects" mapstructure:"max_redirects"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Auth is applied to every request. Nil sends no credentials.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`

	// TLS configures the transport for https backends.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// CircuitBreaker guards the backend when Enabled. Requests are never retried.
	CircuitBreaker resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRedirects == 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	if c.Name == "" {
		c.Name = "http"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient %s: timeout must be positive", c.Name)
	}
	if c.MaxResponseSize != "" && util.ParseSize(c.MaxResponseSize, -1) <= 0 {
		return fmt.Errorf("httpclient %s: invalid max_response_size %q", c.Name, c.MaxResponseSize)
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("httpclient %s: %w", c.Name, err)
	}
	if err := c.TLS.Validate(); err != nil {
		return fmt.Errorf("httpclient %s: %w", c.Name, err)
	}
	return nil
}

// maxBodyBytes returns the parsed response cap, 0 for unlimited.
func (c *Config) maxBodyBytes() int64 {
	return util.ParseSize(c.MaxResponseSize, 0)
}
