// Package report formats diff, policy and sign-off results for terminals and CI logs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type Format string

const (
	FormatPretty   Format = "pretty"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts pretty|json|markdown (md is an alias).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected pretty|json|markdown)", s)
	}
}

// Styles used by the pretty renderers. Plain() disables colors for tests and pipes.
type Styles struct {
	Title   lipgloss.Style
	Added   lipgloss.Style
	Removed lipgloss.Style
	Common  lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Faint   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Added:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Removed: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Common:  lipgloss.NewStyle().Faint(true),
		Pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Faint:   lipgloss.NewStyle().Faint(true),
	}
}

func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Title: s, Added: s, Removed: s, Common: s, Pass: s, Fail: s, Faint: s}
}

// RenderMarkdown renders markdown for a terminal with glamour.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
