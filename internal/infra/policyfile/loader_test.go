package policyfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Absolentia/aif-core/internal/domain"
)

func writePolicy(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "aif-policy.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadPolicy_OK(t *testing.T) {
	p := writePolicy(t, `
licenses:
  allow: [MIT, " Apache-2.0 "]
  deny: [GPL-3.0]
  unknown: allow
  inventory:
    github.com/spf13/cobra: Apache-2.0
advisories:
  - id: GO-2024-0001
    module: example.com/mod
    introduced: v1.0.0
    fixed: v1.2.3
advisories_ignore: [GO-2023-9999]
`)

	pol, err := NewLoader().LoadPolicy(p)
	require.NoError(t, err)

	assert.Equal(t, []string{"MIT", "Apache-2.0"}, pol.Allow)
	assert.Equal(t, []string{"GPL-3.0"}, pol.Deny)
	assert.Equal(t, domain.UnknownAllow, pol.Unknown)
	assert.Equal(t, "Apache-2.0", pol.Inventory["github.com/spf13/cobra"])
	require.Len(t, pol.Advisories, 1)
	assert.Equal(t, "v1.2.3", pol.Advisories[0].Fixed)
	assert.Equal(t, []string{"GO-2023-9999"}, pol.Ignore)
}

func TestLoadPolicy_DefaultsUnknownToDeny(t *testing.T) {
	pol, err := NewLoader().LoadPolicy(writePolicy(t, "licenses:\n  allow: [MIT]\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownDeny, pol.Unknown)
	assert.Empty(t, pol.Advisories)
}

func TestLoadPolicy_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown mode", "licenses:\n  unknown: maybe\n", "licenses.unknown"},
		{"missing id", "advisories:\n  - module: a/b\n", "advisories[0].id"},
		{"missing module", "advisories:\n  - id: X\n", "advisories[0].module"},
		{"bad fixed", "advisories:\n  - id: X\n    module: a/b\n    fixed: \"1.2\"\n", "advisories[0].fixed"},
		{"empty expr", "licenses:\n  inventory:\n    a/b: \"\"\n", "licenses.inventory.a/b"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().LoadPolicy(writePolicy(t, tc.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
			assert.True(t, strings.Contains(err.Error(), tc.field), err.Error())
		})
	}
}

func TestLoadPolicy_Missing(t *testing.T) {
	_, err := NewLoader().LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
