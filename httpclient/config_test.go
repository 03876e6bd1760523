package httpclient

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if cfg.MaxRedirects != 10 {
		t.Errorf("expected 10 redirects, got %d", cfg.MaxRedirects)
	}
	if cfg.Name != "http" {
		t.Errorf("expected default name 'http', got %q", cfg.Name)
	}
}

func TestConfig_ApplyDefaults_KeepsValues(t *testing.T) {
	cfg := Config{Name: "asr", Timeout: 10 * time.Minute, MaxRedirects: -1}
	cfg.ApplyDefaults()

	if cfg.Timeout != 10*time.Minute {
		t.Errorf("timeout overwritten: %v", cfg.Timeout)
	}
	if cfg.MaxRedirects != -1 {
		t.Errorf("max redirects overwritten: %d", cfg.MaxRedirects)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Name: "a", Timeout: time.Second}, false},
		{"zero timeout", Config{Name: "a"}, true},
		{"valid size", Config{Name: "a", Timeout: time.Second, MaxResponseSize: "500MB"}, false},
		{"bad size", Config{Name: "a", Timeout: time.Second, MaxResponseSize: "lots"}, true},
		{"bad auth", Config{Name: "a", Timeout: time.Second, Auth: &AuthConfig{Type: AuthBearer}}, true},
		{"cert without key", Config{Name: "a", Timeout: time.Second, TLS: &TLSConfig{CertFile: "c.pem"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTLSConfig_IsEnabled(t *testing.T) {
	var nilCfg *TLSConfig
	if nilCfg.IsEnabled() {
		t.Error("nil TLS config should not be enabled")
	}
	if (&TLSConfig{}).IsEnabled() {
		t.Error("empty TLS config should not be enabled")
	}
	if !(&TLSConfig{SkipVerify: true}).IsEnabled() {
		t.Error("skip_verify should enable TLS config")
	}
}

func TestTLSConfig_BuildMissingCA(t *testing.T) {
	cfg := &TLSConfig{CAFile: "/nonexistent/ca.pem"}
	if _, err := cfg.Build(); err == nil {
		t.Error("expected error for missing CA file")
	}
}

func TestBackendConfig_HTTPConfig(t *testing.T) {
	b := BackendConfig{URL: "http://ffmpeg:3000", Auth: BearerAuth("t")}
	cfg := b.HTTPConfig("ffmpeg-api", 5*time.Minute)
	if cfg.Name != "ffmpeg-api" || cfg.BaseURL != "http://ffmpeg:3000" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 5*time.Minute {
		t.Errorf("default timeout not applied: %v", cfg.Timeout)
	}
	if cfg.Auth == nil || cfg.Auth.Token != "t" {
		t.Error("auth not carried over")
	}

	b.Timeout = time.Second
	if got := b.HTTPConfig("x", time.Minute).Timeout; got != time.Second {
		t.Errorf("explicit timeout overridden: %v", got)
	}
}
