package httpclient

import (
	"time"

	"github.com/kbukum/whisper-asr-mcp/resilience"
)

// BackendConfig is the config block shared by the conversion and
// transcription backends.
type BackendConfig struct {
	URL             string                          `yaml:"url" mapstructure:"url"`
	Timeout         time.Duration                   `yaml:"timeout" mapstructure:"timeout"`
	MaxResponseSize string                          `yaml:"max_response_size" mapstructure:"max_response_size"`
	Headers         map[string]string               `yaml:"headers" mapstructure:"headers"`
	Auth            *AuthConfig                     `yaml:"auth" mapstructure:"auth"`
	TLS             *TLSConfig                      `yaml:"tls" mapstructure:"tls"`
	CircuitBreaker  resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// HTTPConfig builds the adapter config for the backend called name.
// defaultTimeout applies when Timeout is unset.
func (b BackendConfig) HTTPConfig(name string, defaultTimeout time.Duration) Config {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return Config{
		Name:            name,
		BaseURL:         b.URL,
		Timeout:         timeout,
		MaxResponseSize: b.MaxResponseSize,
		Headers:         b.Headers,
		Auth:            b.Auth,
		TLS:             b.TLS,
		CircuitBreaker:  b.CircuitBreaker,
	}
}
