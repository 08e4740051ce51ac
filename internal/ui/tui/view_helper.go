package tui

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/usecase/diff"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func prettySchema(body string) string {
	if strings.TrimSpace(body) == "" {
		return "(empty)"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err == nil {
		return buf.String()
	}
	return strings.TrimSpace(body)
}

func renderDiff(t Theme, a, b domain.SchemaRef, res domain.DiffResult) string {
	var sb strings.Builder

	sb.WriteString("A: ")
	sb.WriteString(a.ID)
	sb.WriteString("\nB: ")
	sb.WriteString(b.ID)
	sb.WriteString("\n\n")
	sb.WriteString(diff.Summary(res))
	sb.WriteString("\n\n")

	for _, p := range res.Added {
		sb.WriteString(t.Added.Render("+ " + p))
		sb.WriteString("\n")
	}
	for _, p := range res.Removed {
		sb.WriteString(t.Removed.Render("- " + p))
		sb.WriteString("\n")
	}
	if !res.HasDrift() {
		sb.WriteString("no drift\n")
	}
	return sb.String()
}
