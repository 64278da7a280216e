package tui

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/printers"
)

// Theme centralizes Lip Gloss styles for the history browser.
type Theme struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Status    lipgloss.Style
	Help      lipgloss.Style
	Confirm   lipgloss.Style
	Faint     lipgloss.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Underline(true),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:      lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		Confirm:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626")),
		Faint:     lipgloss.NewStyle().Faint(true),
	}
}

func categoryStyle(c entry.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color()))
}

func severityStyle(s entry.Severity) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(printers.SeverityColor(s).Hex()))
}
