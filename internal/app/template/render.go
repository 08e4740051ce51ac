package template

import (
	"fmt"
	"strings"

	"github.com/Absolentia/aif-core/internal/domain"
)

// RenderString replaces {{VAR}} placeholders with vars values.
// It returns an error if a variable is missing or a placeholder is malformed.
func RenderString(input string, vars map[string]string) (string, error) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", templateError(input, "unclosed template expression")
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", templateError(input, "empty template expression")
		}

		value, ok := vars[key]
		if !ok {
			return "", templateError(input, fmt.Sprintf("missing variable %q", key))
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

// MergeVars layers maps left to right; later maps win.
func MergeVars(layers ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}

// EnvVars converts os.Environ-style entries into a map.
func EnvVars(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			out[k] = v
		}
	}
	return out
}

func templateError(input, msg string) error {
	return &domain.OpError{
		Op:   "template.render",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%s in %q: %w", msg, input, domain.ErrInvalidConfig),
	}
}
