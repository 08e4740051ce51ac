package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Absolentia/aif-core/internal/domain"
)

var sampleDiff = domain.DiffResult{
	Added:   []string{"email"},
	Common:  []string{"id"},
	Removed: []string{"legacy", "legacy[]"},
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPretty, "JSON": FormatJSON, "md": FormatMarkdown, "markdown": FormatMarkdown} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestWriteDiff_Pretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDiff(&buf, sampleDiff, FormatPretty, PlainStyles(), true))

	assert.Equal(t, "Schema diff  1 added, 2 removed, 1 common\n+ email\n- legacy\n- legacy[]\n  id\n", buf.String())
}

func TestWriteDiff_PrettyNoDrift(t *testing.T) {
	var buf bytes.Buffer
	res := domain.DiffResult{Common: []string{"id"}}
	require.NoError(t, WriteDiff(&buf, res, FormatPretty, PlainStyles(), false))

	assert.Equal(t, "Schema diff  0 added, 0 removed, 1 common\nno drift\n", buf.String())
}

func TestWriteDiff_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDiff(&buf, domain.DiffResult{Added: []string{"a"}}, FormatJSON, PlainStyles(), false))

	var got map[string][]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"a"}, got["added"])
	assert.Equal(t, []string{}, got["removed"])
	assert.Equal(t, []string{}, got["common"])
}

func TestDiffMarkdown(t *testing.T) {
	md := DiffMarkdown(sampleDiff, false)
	assert.Contains(t, md, "### Added\n\n- `email`\n")
	assert.Contains(t, md, "### Removed\n\n- `legacy`\n- `legacy[]`\n")
	assert.NotContains(t, md, "### Common")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown(DiffMarkdown(sampleDiff, true), 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Schema diff")
	assert.Contains(t, out, "email")
}

func TestWritePolicy(t *testing.T) {
	rep := domain.PolicyReport{
		Checked: 3,
		Violations: []domain.Violation{
			{Module: "b.com/gpl", Version: "v0.1.0", Kind: domain.ViolationLicense, Detail: `license "GPL-3.0 | X" is not allowed`},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePolicy(&buf, rep, FormatPretty, PlainStyles()))
	assert.Equal(t, "FAIL 1 violation(s) in 3 dependencies\n  - b.com/gpl@v0.1.0 [license] license \"GPL-3.0 | X\" is not allowed\n", buf.String())

	md := PolicyMarkdown(rep)
	assert.Contains(t, md, `GPL-3.0 \| X`)

	buf.Reset()
	require.NoError(t, WritePolicy(&buf, domain.PolicyReport{Checked: 2}, FormatJSON, PlainStyles()))
	assert.JSONEq(t, `{"checked": 2, "violations": []}`, buf.String())
}

func TestWriteSignoff(t *testing.T) {
	results := []domain.SignoffResult{
		{Hash: "0123456789abcdef", Subject: "feat: a", Conforms: true},
		{Hash: "fedcba9876543210", Subject: "fix: b"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSignoff(&buf, results, FormatPretty, PlainStyles()))
	assert.Equal(t, "FAIL 1 of 2 commit(s) missing Signed-off-by\n  - fedcba987654 fix: b\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSignoff(&buf, results[:1], FormatPretty, PlainStyles()))
	assert.True(t, strings.HasPrefix(buf.String(), "PASS 1 commit(s)"))
}
