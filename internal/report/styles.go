package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles holds every style the renderer uses
type Styles struct {
	Title      lipgloss.Style
	Label      lipgloss.Style
	Box        lipgloss.Style
	Line       lipgloss.Style
	Diagnostic lipgloss.Style
	Total      lipgloss.Style
	Muted      lipgloss.Style
}

// DefaultStyles returns the colored terminal styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
		Label: lipgloss.NewStyle().
			Foreground(colorMuted),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1),
		Line: lipgloss.NewStyle().
			Foreground(colorSecondary),
		Diagnostic: lipgloss.NewStyle().
			Foreground(colorError),
		Total: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),
	}
}

// PlainStyles returns styles that leave text untouched, for pipes and tests
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:      plain,
		Label:      plain,
		Box:        plain,
		Line:       plain,
		Diagnostic: plain,
		Total:      plain,
		Muted:      plain,
	}
}
