package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/cineai/internal/i18n"
)

var (
	validLogFormats = []string{"text", "json"}
	validOutputs    = []string{"auto", "text", "markdown", "json", "yaml"}
)

// Validate checks if the configuration is valid. The API key is not checked
// here; a missing key surfaces as a fetch failure.
func (c *Config) Validate() error {
	if _, err := i18n.New(c.Locale); err != nil {
		return fmt.Errorf("unsupported locale %q (supported: %s)", c.Locale, strings.Join(i18n.Supported(), ", "))
	}
	if !contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log_format %q (expected one of: %s)", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	if c.OutputFormat != "" && !contains(validOutputs, c.OutputFormat) {
		return fmt.Errorf("invalid output %q (expected one of: %s)", c.OutputFormat, strings.Join(validOutputs, ", "))
	}
	if c.UI != nil && (c.UI.Port < 0 || c.UI.Port > 65535) {
		return fmt.Errorf("invalid ui.port %d", c.UI.Port)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
