// Package tui is the terminal skin of the ontology browser.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette of the terminal skin.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Link      lipgloss.Color
	External  lipgloss.Color
	Border    lipgloss.Color
}

func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#2E7D32"), // Green
		Secondary: lipgloss.Color("#00838F"), // Teal
		Muted:     lipgloss.Color("#6C7086"),
		Error:     lipgloss.Color("#F38BA8"),
		Link:      lipgloss.Color("#89B4FA"),
		External:  lipgloss.Color("#F9E2AF"),
		Border:    lipgloss.Color("#45475A"),
	}
}

// Styles are the lipgloss styles built from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Muted    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Link     lipgloss.Style
	External lipgloss.Style
	Active   lipgloss.Style
	Banner   lipgloss.Style
	Error    lipgloss.Style
	Pane     lipgloss.Style
	Focused  lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Link:     lipgloss.NewStyle().Foreground(theme.Link),
		External: lipgloss.NewStyle().Foreground(theme.External),
		Active:   lipgloss.NewStyle().Reverse(true).Bold(true),
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(theme.Error).
			Padding(0, 1),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Pane:    pane,
		Focused: pane.BorderForeground(theme.Primary),
	}
}
