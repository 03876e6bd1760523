package transcribe

import (
	"time"

	"github.com/kbukum/whisper-asr-mcp/audio"
	"github.com/kbukum/whisper-asr-mcp/validation"
)

// PipelineConfig configures the transcribe pipeline.
type PipelineConfig struct {
	// NativeFormat is the extension passed to the backend without conversion.
	NativeFormat string `yaml:"native_format" mapstructure:"native_format"`
	// VerifyNative also converts native-named files whose content sniffs as
	// another container.
	VerifyNative bool `yaml:"verify_native" mapstructure:"verify_native"`
	// MaxConcurrent caps runs in the backend stages. 0 means no cap.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	// MaxWait is how long a capped run waits for a slot before failing
	// with SERVICE_UNAVAILABLE.
	MaxWait time.Duration `yaml:"max_wait" mapstructure:"max_wait"`
}

// DefaultMaxWait covers one worst-case conversion plus transcription.
const DefaultMaxWait = 15 * time.Minute

// ApplyDefaults fills unset fields.
func (c *PipelineConfig) ApplyDefaults() {
	if c.NativeFormat == "" {
		c.NativeFormat = audio.DefaultNativeFormat
	}
	if c.MaxConcurrent < 0 {
		c.MaxConcurrent = 0
	}
	if c.MaxConcurrent > 0 && c.MaxWait <= 0 {
		c.MaxWait = DefaultMaxWait
	}
}

// Validate checks the config after ApplyDefaults.
func (c *PipelineConfig) Validate() error {
	return validation.New().
		Required("pipeline.native_format", c.NativeFormat).
		Range("pipeline.max_concurrent", c.MaxConcurrent, 0, 1024).
		Err()
}
