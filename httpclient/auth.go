package httpclient

import (
	"fmt"
	"net/http"
)

// Auth types accepted in AuthConfig.Type.
const (
	AuthNone   = ""
	AuthBearer = "bearer"
	AuthBasic  = "basic"
	AuthAPIKey = "api_key"
)

// AuthConfig configures credentials for a backend that sits behind a
// gateway. Loaded from config, so every field is a plain value.
type AuthConfig struct {
	Type     string `yaml:"type" mapstructure:"type"`
	Token    string `yaml:"token" mapstructure:"token"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	// Key is the API key; Header defaults to X-API-Key.
	Key    string `yaml:"key" mapstructure:"key"`
	Header string `yaml:"header" mapstructure:"header"`
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuth creates an API key auth config sent in header.
func APIKeyAuth(key, header string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, Header: header}
}

// Validate checks that the fields required by Type are present.
func (a *AuthConfig) Validate() error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AuthNone:
		return nil
	case AuthBearer:
		if a.Token == "" {
			return fmt.Errorf("auth: bearer requires token")
		}
	case AuthBasic:
		if a.Username == "" {
			return fmt.Errorf("auth: basic requires username")
		}
	case AuthAPIKey:
		if a.Key == "" {
			return fmt.Errorf("auth: api_key requires key")
		}
	default:
		return fmt.Errorf("auth: unknown type %q", a.Type)
	}
	return nil
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthBasic:
		req.SetBasicAuth(a.Username, a.Password)
	case AuthAPIKey:
		name := a.Header
		if name == "" {
			name = "X-API-Key"
		}
		req.Header.Set(name, a.Key)
	}
}
