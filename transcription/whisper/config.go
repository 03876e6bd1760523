package whisper

import (
	"time"

	"github.com/kbukum/whisper-asr-mcp/httpclient"
	"github.com/kbukum/whisper-asr-mcp/validation"
)

const (
	// DefaultTimeout bounds one /asr call.
	DefaultTimeout = 600 * time.Second
	// DefaultDetectTimeout bounds one /detect-language call.
	DefaultDetectTimeout = 120 * time.Second
)

// Config configures the whisper-asr-webservice client.
type Config struct {
	httpclient.BackendConfig `yaml:",inline" mapstructure:",squash"`

	// DetectLanguage enables the /detect-language pre-call. Defaults to true.
	DetectLanguage *bool `yaml:"detect_language" mapstructure:"detect_language"`
	// DetectTimeout bounds the detection call separately from Timeout.
	DetectTimeout time.Duration `yaml:"detect_timeout" mapstructure:"detect_timeout"`
	// WordTimestamps asks for per-word timings on json output.
	WordTimestamps bool `yaml:"word_timestamps" mapstructure:"word_timestamps"`
	// Encode lets the backend run ffmpeg on the upload. Defaults to true.
	Encode *bool `yaml:"encode" mapstructure:"encode"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.DetectTimeout <= 0 {
		c.DetectTimeout = DefaultDetectTimeout
	}
	if c.DetectLanguage == nil {
		on := true
		c.DetectLanguage = &on
	}
	if c.Encode == nil {
		on := true
		c.Encode = &on
	}
}

// Validate checks the config after ApplyDefaults.
func (c *Config) Validate() error {
	v := validation.New().
		Required("transcription.url", c.URL).
		HTTPURL("transcription.url", c.URL).
		Positive("transcription.timeout", c.Timeout).
		Positive("transcription.detect_timeout", c.DetectTimeout)
	return v.Err()
}

func (c *Config) detectEnabled() bool { return c.DetectLanguage == nil || *c.DetectLanguage }

func (c *Config) encodeEnabled() bool { return c.Encode == nil || *c.Encode }
