package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles of the menus and the scoreboard.
type Theme struct {
	Title       lipgloss.Style
	Item        lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Controls    lipgloss.Style
	Border      lipgloss.Style
	Highlight   lipgloss.Style
}

// DefaultTheme returns the default menu theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Item:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Border:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
	}
}

// MonochromeTheme drops colors, for terminals that render them badly.
func MonochromeTheme() Theme {
	t := DefaultTheme()
	t.Title = lipgloss.NewStyle().Bold(true)
	t.Item = lipgloss.NewStyle()
	t.ItemActive = lipgloss.NewStyle().Bold(true).Underline(true)
	t.Description = lipgloss.NewStyle().Faint(true)
	t.Controls = lipgloss.NewStyle().Faint(true)
	t.Highlight = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	return t
}

var theme = DefaultTheme()

// SetTheme replaces the theme used by new menus.
func SetTheme(t Theme) {
	theme = t
}

// centerText pads text on the left so it is centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
