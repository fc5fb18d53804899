package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of text output.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Rank    lipgloss.Style
	Name    lipgloss.Style
	Badge   lipgloss.Style
	Link    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the styles used on a terminal.
func DefaultStyles() *Styles {
	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#818cf8")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Rank:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c084fc")),
		Name:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#818cf8")),
		Badge:   lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399")),
		Link:    lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#60a5fa")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f87171")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
	}
}

// PlainStyles renders every style as plain text.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header:  plain,
		Bold:    plain,
		Rank:    plain,
		Name:    plain,
		Badge:   plain,
		Link:    plain,
		Success: plain,
		Error:   plain,
		Warning: plain,
		Info:    plain,
		Muted:   plain,
	}
}
