// Package config holds the shared defaults of cineai and the lookup of its
// config file. It has no CLI concerns so tests and servers can use it directly.
package config

import "os"

// Default configuration values.
const (
	DefaultModel         = "gemini-3-flash-preview"
	DefaultLocale        = "pt-BR"
	DefaultLogFormat     = "text"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPort          = 8765
	DefaultSkeletons     = 3
	DefaultSessionSecret = "cineai-dev-secret-change-in-production" //nolint:gosec
)

// APIKeyEnvVars are consulted in order when no api_key is configured.
var APIKeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// ResolveAPIKey returns configured, or the first non-empty fallback variable.
func ResolveAPIKey(configured string) string {
	if configured != "" {
		return configured
	}
	for _, name := range APIKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
