package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles for every screen; diff colours mirror the report package.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Toast    lipgloss.Style

	Added   lipgloss.Style
	Removed lipgloss.Style
	Mark    lipgloss.Style
}

// themeFromEnv honours NO_COLOR (https://no-color.org).
func themeFromEnv() Theme {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return PlainTheme()
	}
	return DefaultTheme()
}

func DefaultTheme() Theme {
	accent := lipgloss.Color("63")
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card:     lipgloss.NewStyle().Padding(1, 2).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent),
		Toast:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Added:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Removed:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Mark:     lipgloss.NewStyle().Foreground(accent).Bold(true),
	}
}

// PlainTheme keeps layout (bold, borders) but drops colour.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Title:    plain.Bold(true),
		Subtitle: plain,
		Help:     plain,
		Card:     plain.Padding(1, 2).BorderStyle(lipgloss.NormalBorder()),
		Toast:    plain.Bold(true),
		Added:    plain,
		Removed:  plain,
		Mark:     plain.Bold(true),
	}
}
