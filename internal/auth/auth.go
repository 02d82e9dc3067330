// Package auth provides bearer token management for the AuditIQ backend.
// It implements a simple interface with multiple providers following the
// "deep modules" principle - simple interface, complex implementation hidden.
//
// The identity provider itself is external: this package only locates an
// already-issued access token and adapts it to an oauth2.TokenSource so
// the API client never touches the lookup chain directly.
package auth

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"github.com/audit-iq-labs/auditiq/internal/config"
)

// TokenProvider defines the interface for obtaining an access token.
// Implementations may use different sources (environment, config file).
type TokenProvider interface {
	GetToken() (string, error)
}

// EnvProvider obtains tokens from the AUDITIQ_TOKEN environment variable.
type EnvProvider struct{}

// GetToken reads the AUDITIQ_TOKEN environment variable.
// Returns an error if the variable is not set or is empty.
func (e *EnvProvider) GetToken() (string, error) {
	token := os.Getenv(config.EnvToken)
	if token == "" {
		return "", errors.New("AUDITIQ_TOKEN environment variable not set or empty")
	}
	return token, nil
}

// ConfigProvider obtains tokens from the loaded config file.
type ConfigProvider struct {
	Config *config.Config
}

// GetToken returns the access_token field of the config file.
// Returns an error if the config holds no token.
func (c *ConfigProvider) GetToken() (string, error) {
	if c.Config == nil || c.Config.AccessToken == "" {
		return "", errors.New("no access_token in config file")
	}
	return c.Config.AccessToken, nil
}

// GetToken attempts to obtain an access token using the following strategy:
// 1. AUDITIQ_TOKEN environment variable
// 2. access_token in ~/.config/auditiq/config.yaml
// 3. Return a clear, actionable error if both fail
func GetToken(cfg *config.Config) (string, error) {
	env := &EnvProvider{}
	token, envErr := env.GetToken()
	if envErr == nil {
		return token, nil
	}

	file := &ConfigProvider{Config: cfg}
	token, err := file.GetToken()
	if err == nil {
		return token, nil
	}

	return "", fmt.Errorf(
		"failed to obtain an AuditIQ access token: %v.\n"+
			"Please either:\n"+
			"  1. Set the AUDITIQ_TOKEN environment variable, or\n"+
			"  2. Add access_token to ~/.config/auditiq/config.yaml",
		envErr,
	)
}

// TokenSource resolves a token once and wraps it as an oauth2.TokenSource
// for the API client. Requests made without a valid session are rejected
// upstream; the resulting error surfaces through the normal error path.
func TokenSource(cfg *config.Config) (oauth2.TokenSource, error) {
	token, err := GetToken(cfg)
	if err != nil {
		return nil, err
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}), nil
}
