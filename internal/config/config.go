// Package config loads client configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultAPIBaseURL is used when neither the config file nor the
// environment provides a base URL.
const DefaultAPIBaseURL = "http://localhost:8000"

// Environment variables overriding the config file.
const (
	EnvAPIURL = "AUDITIQ_API_URL"
	EnvToken  = "AUDITIQ_TOKEN"
)

// Config holds the client settings. It is read from
// ~/.config/auditiq/config.yaml when present; every field is optional.
type Config struct {
	// APIBaseURL is the root of the AuditIQ backend (no trailing slash).
	APIBaseURL string `yaml:"api_base_url"`

	// AccessToken is the bearer token issued by the identity provider.
	AccessToken string `yaml:"access_token"`

	// DefaultProject skips the project picker when set to a project ID.
	DefaultProject string `yaml:"default_project"`
}

// Path returns the expected location of the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "auditiq", "config.yaml"), nil
}

// Load reads the config file and applies environment overrides.
// A missing file is not an error; the zero Config plus overrides is
// returned instead.
func Load() (*Config, error) {
	cfg := &Config{}

	path, err := Path()
	if err == nil {
		data, readErr := os.ReadFile(path)
		switch {
		case readErr == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(readErr, os.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.AccessToken = v
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}

	return cfg, nil
}

// Save writes the config back to its default location, creating the
// directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
