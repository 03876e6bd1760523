package audio

import (
	"time"

	"github.com/kbukum/whisper-asr-mcp/httpclient"
	"github.com/kbukum/whisper-asr-mcp/util"
	"github.com/kbukum/whisper-asr-mcp/validation"
)

const (
	DefaultFetchTimeout = 120 * time.Second
	DefaultFetchMaxSize = "500MB"
)

// FetchConfig configures downloads for audio_url sources.
type FetchConfig struct {
	Timeout      time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	MaxSize      string            `yaml:"max_size" mapstructure:"max_size"`
	MaxRedirects int               `yaml:"max_redirects" mapstructure:"max_redirects"`
	UserAgent    string            `yaml:"user_agent" mapstructure:"user_agent"`
	Headers      map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills unset fields.
func (c *FetchConfig) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultFetchTimeout
	}
	if c.MaxSize == "" {
		c.MaxSize = DefaultFetchMaxSize
	}
}

// Validate checks the config after ApplyDefaults.
func (c *FetchConfig) Validate() error {
	return validation.New().
		Positive("fetch.timeout", c.Timeout).
		Custom(util.ParseSize(c.MaxSize, -1) > 0, "fetch.max_size", "must be a size such as 500MB").
		Err()
}

func (c FetchConfig) httpConfig() httpclient.Config {
	headers := make(map[string]string, len(c.Headers)+1)
	for k, v := range c.Headers {
		headers[k] = v
	}
	if c.UserAgent != "" {
		headers["User-Agent"] = c.UserAgent
	}
	return httpclient.Config{
		Name:            "audio-fetch",
		Timeout:         c.Timeout,
		MaxResponseSize: c.MaxSize,
		MaxRedirects:    c.MaxRedirects,
		Headers:         headers,
	}
}
