package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Absolentia/aif-core/internal/domain"
)

var yamlLineRe = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// notFoundByOp maps an OpError op prefix to the toast shown for KindNotFound.
var notFoundByOp = []struct {
	prefix string
	text   string
}{
	{"schemastore", "Schema not found"},
	{"workspacefinder", "Workspace not found"},
	{"samplefs", "Sample file not found"},
	{"yamlsampleset", "Sample set not found"},
}

// userMessage turns an error into a short toast; details go to the log.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		if isYAMLError(err.Error()) {
			return withLine("Invalid YAML", err.Error())
		}
		return panicToast
	}

	switch oe.Kind {
	case domain.KindNotFound:
		for _, r := range notFoundByOp {
			if strings.HasPrefix(oe.Op, r.prefix) {
				return r.text
			}
		}
		return "Not found"

	case domain.KindInvalidInput:
		msg := err.Error()
		if strings.Contains(msg, "parse error") || strings.Contains(msg, "Invalid JSON") {
			return "Schema is not valid JSON"
		}
		return "Invalid input"

	case domain.KindInvalidConfig:
		if !isYAMLError(err.Error()) {
			return "Invalid config"
		}
		name := "config"
		if strings.TrimSpace(oe.Path) != "" {
			name = filepath.Base(oe.Path)
		}
		return withLine("Invalid YAML at "+name, err.Error())

	case domain.KindExecution:
		return "Operation failed (see logs)"
	}
	return panicToast
}

func isYAMLError(s string) bool {
	s = strings.ToLower(s)
	for _, marker := range []string{"yaml:", "did not find expected", "cannot unmarshal"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// withLine appends the YAML line number when the message carries one.
func withLine(base, msg string) string {
	if m := yamlLineRe.FindStringSubmatch(msg); len(m) == 2 {
		return base + " line " + m[1]
	}
	return base
}
