package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service name propagated, got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info level, got %q", cfg.Logging.Level)
		}
		if !cfg.IsProduction() {
			t.Error("expected IsProduction")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: "staging"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, "config.environment must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

type testBackend struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Transcription testBackend `mapstructure:"transcription"`
	Server        struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
name: whisper-mcp
environment: staging
transcription:
  url: http://whisper:9000
  timeout: 90s
server:
  port: 3020
`)

	var cfg testConfig
	if err := LoadConfig("whisper-mcp", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "whisper-mcp" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Transcription.URL != "http://whisper:9000" {
		t.Errorf("unexpected url %q", cfg.Transcription.URL)
	}
	if cfg.Transcription.Timeout != 90*time.Second {
		t.Errorf("expected 90s timeout, got %v", cfg.Transcription.Timeout)
	}
	if cfg.Server.Port != 3020 {
		t.Errorf("expected port 3020, got %d", cfg.Server.Port)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
server:
  host: 127.0.0.1
  port: 8080
`)
	t.Setenv("SERVER_PORT", "9999")

	var cfg testConfig
	if err := LoadConfig("whisper-mcp", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected env override 9999, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected host from file, got %q", cfg.Server.Host)
	}
}

func TestLoadConfig_EnvBinding(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
transcription:
  url: http://from-file:9000
`)
	t.Setenv("WHISPER_ASR_URL", "http://from-env:9000")
	t.Setenv("MCP_PORT", "3021")

	var cfg testConfig
	err := LoadConfig("whisper-mcp", &cfg,
		WithConfigFile(path),
		WithEnvBinding("transcription.url", "WHISPER_ASR_URL"),
		WithEnvBinding("server.port", "MCP_PORT"),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Transcription.URL != "http://from-env:9000" {
		t.Errorf("expected bound env value, got %q", cfg.Transcription.URL)
	}
	if cfg.Server.Port != 3021 {
		t.Errorf("expected port 3021, got %d", cfg.Server.Port)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: whisper-mcp\n")
	envPath := writeFile(t, dir, ".env", "TEST_LOADER_FFMPEG_URL=http://ffmpeg:3000\n")
	t.Cleanup(func() { os.Unsetenv("TEST_LOADER_FFMPEG_URL") })

	var cfg struct {
		Conversion testBackend `mapstructure:"conversion"`
	}
	err := LoadConfig("whisper-mcp", &cfg,
		WithConfigFile(path),
		WithEnvFile(envPath),
		WithEnvBinding("conversion.url", "TEST_LOADER_FFMPEG_URL"),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Conversion.URL != "http://ffmpeg:3000" {
		t.Errorf("expected url from .env, got %q", cfg.Conversion.URL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/whisper-mcp/config.yml": true,
		"./.env":                       true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("whisper-mcp", LoaderConfig{})
	if files.ConfigFile != "./cmd/whisper-mcp/config.yml" {
		t.Errorf("expected cmd config file, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected root .env, got %q", files.EnvFile)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	variants := generateEnvKeyVariants("TRANSCRIPTION_DETECT_LANGUAGE")
	want := map[string]bool{
		"transcription.detect.language": false,
		"transcription.detect_language": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("expected variant %q in %v", k, variants)
		}
	}
}
