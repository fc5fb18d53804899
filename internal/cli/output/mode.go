// Package output renders command results for terminals, agents and scripts.
//
// In auto mode a terminal gets styled text and anything else gets markdown.
package output

import "fmt"

// OutputMode selects how command results are written.
type OutputMode string //nolint:revive

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeYAML     OutputMode = "yaml"
)

// Mode converts a configured string to an OutputMode. Empty and unknown
// strings select ModeAuto.
func Mode(s string) OutputMode {
	switch m := OutputMode(s); m {
	case ModeText, ModeMarkdown, ModeJSON, ModeYAML:
		return m
	case "md":
		return ModeMarkdown
	case "yml":
		return ModeYAML
	default:
		return ModeAuto
	}
}

// ParseMode is Mode that rejects unknown strings.
func ParseMode(s string) (OutputMode, error) {
	switch s {
	case "", "auto", "text", "markdown", "md", "json", "yaml", "yml":
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown output mode %q", s)
}
