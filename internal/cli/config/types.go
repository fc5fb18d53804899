// Package config provides configuration management for the cineai CLI.
//
// Values are layered from defaults, an optional cineai.yaml, CINEAI_
// environment variables and explicitly set flags, in that order.
package config

import (
	intconfig "github.com/leapstack-labs/cineai/internal/config"
)

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	Skeletons     int    `koanf:"skeletons"`
	SessionSecret string `koanf:"session_secret"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:          intconfig.DefaultPort,
		AutoOpen:      false,
		Watch:         false,
		Skeletons:     intconfig.DefaultSkeletons,
		SessionSecret: intconfig.DefaultSessionSecret,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = intconfig.DefaultPort
	}
	if ui.Skeletons == 0 {
		ui.Skeletons = intconfig.DefaultSkeletons
	}
	if ui.SessionSecret == "" {
		ui.SessionSecret = intconfig.DefaultSessionSecret
	}
	return ui
}

// Config holds all CLI configuration options.
type Config struct {
	APIKey       string    `koanf:"api_key"`
	Model        string    `koanf:"model"`
	BaseURL      string    `koanf:"base_url"`
	Locale       string    `koanf:"locale"`
	Verbose      bool      `koanf:"verbose"`
	LogFormat    string    `koanf:"log_format"`
	OutputFormat string    `koanf:"output"`
	UI           *UIConfig `koanf:"ui"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultModel     = intconfig.DefaultModel
	DefaultLocale    = intconfig.DefaultLocale
	DefaultLogFormat = intconfig.DefaultLogFormat
	DefaultOutput    = intconfig.DefaultOutput
)

// RedactKey hides all but the last four characters of an API key.
func RedactKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
