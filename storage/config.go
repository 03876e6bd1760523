package storage

import (
	"fmt"

	"github.com/kbukum/whisper-asr-mcp/util"
	"github.com/kbukum/whisper-asr-mcp/validation"
)

// Provider names.
const (
	ProviderLocal  = "local"
	ProviderS3     = "s3"
	ProviderMemory = "memory"
)

// DefaultMaxFileSize caps a single read from the store.
const DefaultMaxFileSize = "500MB"

// Config selects and configures the media store.
type Config struct {
	// Provider is "local" (default) or "s3".
	Provider string `yaml:"provider" mapstructure:"provider"`

	// BasePath confines local reads to a directory. Empty allows any
	// absolute or working-directory-relative path.
	BasePath string `yaml:"base_path" mapstructure:"base_path"`

	// MaxFileSize caps the bytes read for one audio_path ("500MB").
	MaxFileSize string `yaml:"max_file_size" mapstructure:"max_file_size"`

	S3 S3Config `yaml:"s3" mapstructure:"s3"`
}

// S3Config configures an S3 or S3-compatible (MinIO) bucket.
type S3Config struct {
	Bucket string `yaml:"bucket" mapstructure:"bucket"`
	Region string `yaml:"region" mapstructure:"region"`
	// Prefix is prepended to every key.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
	// Endpoint is a custom S3-compatible endpoint; it implies path-style.
	Endpoint       string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey      string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey      string `yaml:"secret_key" mapstructure:"secret_key"`
	ForcePathStyle bool   `yaml:"force_path_style" mapstructure:"force_path_style"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
	if c.MaxFileSize == "" {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.Provider == ProviderS3 && c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
}

// Validate checks the settings required by the selected provider.
func (c *Config) Validate() error {
	v := validation.New()
	v.OneOf("media.provider", c.Provider, []string{ProviderLocal, ProviderS3, ProviderMemory})
	v.Custom(util.ParseSize(c.MaxFileSize, -1) > 0, "media.max_file_size", fmt.Sprintf("invalid size %q", c.MaxFileSize))
	if c.Provider == ProviderS3 {
		v.Required("media.s3.bucket", c.S3.Bucket)
		v.Required("media.s3.region", c.S3.Region)
		v.Custom((c.S3.AccessKey == "") == (c.S3.SecretKey == ""), "media.s3.secret_key", "access_key and secret_key must be set together")
	}
	return v.Err()
}

// MaxBytes returns the parsed read cap.
func (c *Config) MaxBytes() int64 {
	return util.ParseSize(c.MaxFileSize, 500<<20)
}
