package main

import (
	"errors"
	"fmt"

	"github.com/kbukum/whisper-asr-mcp/audio"
	"github.com/kbukum/whisper-asr-mcp/config"
	"github.com/kbukum/whisper-asr-mcp/conversion/ffmpeg"
	"github.com/kbukum/whisper-asr-mcp/httpclient"
	"github.com/kbukum/whisper-asr-mcp/observability"
	"github.com/kbukum/whisper-asr-mcp/server"
	"github.com/kbukum/whisper-asr-mcp/storage"
	"github.com/kbukum/whisper-asr-mcp/transcribe"
	"github.com/kbukum/whisper-asr-mcp/transcription/whisper"
	"github.com/kbukum/whisper-asr-mcp/validation"
)

const serviceName = "whisper-mcp"

// AppConfig is the full service configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config             `yaml:"server" mapstructure:"server"`
	Media         storage.Config            `yaml:"media" mapstructure:"media"`
	Fetch         audio.FetchConfig         `yaml:"fetch" mapstructure:"fetch"`
	Conversion    httpclient.BackendConfig  `yaml:"conversion" mapstructure:"conversion"`
	Transcription whisper.Config            `yaml:"transcription" mapstructure:"transcription"`
	Pipeline      transcribe.PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Observability observability.Config      `yaml:"observability" mapstructure:"observability"`
}

// envBindings keeps the variable names deployments already set.
var envBindings = map[string]string{
	"transcription.url": "WHISPER_ASR_URL",
	"conversion.url":    "FFMPEG_API_URL",
	"server.host":       "MCP_HOST",
	"server.port":       "MCP_PORT",
}

func loadConfig(path string) (*AppConfig, error) {
	opts := make([]config.LoaderOption, 0, len(envBindings)+1)
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	for key, env := range envBindings {
		opts = append(opts, config.WithEnvBinding(key, env))
	}

	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	return cfg, nil
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Media.ApplyDefaults()
	c.Fetch.ApplyDefaults()
	if c.Conversion.Timeout <= 0 {
		c.Conversion.Timeout = ffmpeg.DefaultTimeout
	}
	c.Transcription.ApplyDefaults()
	c.Pipeline.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section and reports all failures together.
func (c *AppConfig) Validate() error {
	conversion := validation.New().
		Required("conversion.url", c.Conversion.URL).
		HTTPURL("conversion.url", c.Conversion.URL).
		Positive("conversion.timeout", c.Conversion.Timeout).
		Err()

	var errs []error
	for _, err := range []error{
		c.ServiceConfig.Validate(),
		c.Server.Validate(),
		c.Media.Validate(),
		c.Fetch.Validate(),
		conversion,
		c.Transcription.Validate(),
		c.Pipeline.Validate(),
		c.Observability.Validate(),
	} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
