package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Absolentia/aif-core/internal/infra/logger"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func initWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, _, err := run(t, "", "init", "-p", dir)
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, path, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDoctorPrintsImportOK(t *testing.T) {
	out, _, err := run(t, "", "doctor")
	require.NoError(t, err)
	assert.Equal(t, "import-ok\n", out)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "aif "), out)
}

func TestInferLooseFile(t *testing.T) {
	p := writeFile(t, filepath.Join(t.TempDir(), "a.jsonl"), "{\"id\": 1}\n{\"id\": 2.5}\n")

	out, _, err := run(t, "", "infer", p)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	props := doc["properties"].(map[string]any)
	assert.Equal(t, []any{"integer", "number"}, props["id"].(map[string]any)["type"])
}

func TestInferInvalidSample(t *testing.T) {
	p := writeFile(t, filepath.Join(t.TempDir(), "bad.json"), `{"id": `)

	_, _, err := run(t, "", "infer", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid JSON")
}

func TestWorkspaceFlow_InferSaveListShowDiff(t *testing.T) {
	ws := initWorkspace(t)
	v1 := writeFile(t, filepath.Join(ws, "samples", "v1.json"), `{"id": 1, "legacy": true}`)
	v2 := writeFile(t, filepath.Join(ws, "samples", "v2.json"), `{"id": 1, "tags": ["a"]}`)

	_, errOut, err := run(t, "", "infer", "-w", ws, "--save", "--name", "v1", v1)
	require.NoError(t, err)
	assert.Contains(t, errOut, "saved schema")
	_, _, err = run(t, "", "infer", "-w", ws, "--save", "--name", "v2", v2)
	require.NoError(t, err)

	out, _, err := run(t, "", "schemas", "list", "-w", ws)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4, out)

	var ids []string
	for _, l := range lines[2:] {
		f := strings.Fields(l)
		require.GreaterOrEqual(t, len(f), 3)
		ids = append(ids, f[1])
	}
	require.Len(t, ids, 2)
	idV1, idV2 := ids[0], ids[1]
	if strings.HasSuffix(idV1, "_v2") {
		idV1, idV2 = idV2, idV1
	}

	out, _, err = run(t, "", "schemas", "show", "-w", ws, idV1)
	require.NoError(t, err)
	assert.Contains(t, out, `"legacy"`)

	out, _, err = run(t, "", "diff", "-w", ws, idV1, idV2)
	require.NoError(t, err)
	var res map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"tags", "tags[]"}, res["added"])
	assert.Equal(t, []string{"legacy"}, res["removed"])
	assert.Equal(t, []string{"id"}, res["common"])

	_, _, err = run(t, "", "diff", "-w", ws, "--fail-on-drift", "-f", "pretty", idV1, idV2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDrift))
	assert.Equal(t, 3, exitCode(err))
}

func TestInferSampleSet(t *testing.T) {
	ws := initWorkspace(t)

	out, _, err := run(t, "", "infer", "-w", ws, "--set", "users")
	require.NoError(t, err)
	assert.Contains(t, out, `"tags"`)
	assert.Contains(t, out, `"name"`)
}

func TestInferToOutputFile(t *testing.T) {
	ws := initWorkspace(t)
	dst := filepath.Join(t.TempDir(), "schema.json")

	out, errOut, err := run(t, "", "infer", "-w", ws, "-o", dst)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "wrote "+dst)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, json.Valid(b))
}

func TestDiffLooseFilesMarkdown(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.json"), `{"properties": {"x": {}}}`)
	b := writeFile(t, filepath.Join(dir, "b.json"), `{"properties": {"x": {}, "y": {}}}`)

	out, _, err := run(t, "", "diff", "-f", "markdown", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "### Added\n\n- `y`\n")
}

func TestSignoffMessageFromStdin(t *testing.T) {
	out, _, err := run(t, "feat: x\n\nSigned-off-by: Ann <ann@example.com>\n", "signoff", "check", "-m", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")

	out, _, err = run(t, "feat: x\n", "signoff", "check", "-m", "-")
	require.Error(t, err)
	assert.Contains(t, out, "missing Signed-off-by")
}

func TestSignoffCommitMsgHookFile(t *testing.T) {
	p := writeFile(t, filepath.Join(t.TempDir(), "COMMIT_EDITMSG"),
		"feat: x\n\nSigned-off-by: Ann <ann@example.com>\n\n"+
			"# Please enter the commit message for your changes. Lines starting\n"+
			"# with '#' will be ignored, and an empty message aborts the commit.\n#\n")

	out, _, err := run(t, "", "signoff", "check", "-m", p)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
}

func TestPolicyCheck(t *testing.T) {
	ws := initWorkspace(t)
	writeFile(t, filepath.Join(ws, "go.mod"), "module example.com/x\n\ngo 1.24.0\n\nrequire (\n\tgithub.com/spf13/cobra v1.10.2\n\tgopkg.in/yaml.v3 v3.0.1\n)\n")

	out, _, err := run(t, "", "policy", "check", "-w", ws)
	require.NoError(t, err, out)
	assert.Contains(t, out, "PASS 2 dependencies checked")

	writeFile(t, filepath.Join(ws, "go.mod"), "module example.com/x\n\ngo 1.24.0\n\nrequire example.com/unknown v0.1.0\n")
	out, _, err = run(t, "", "policy", "check", "-w", ws, "-f", "json")
	require.Error(t, err)

	var rep struct {
		Checked    int `json:"checked"`
		Violations []struct {
			Module string `json:"module"`
			Kind   string `json:"kind"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Violations, 1)
	assert.Equal(t, "unknown-license", rep.Violations[0].Kind)
}

func TestSchemasListNeedsWorkspace(t *testing.T) {
	_, _, err := run(t, "", "schemas", "list", "-w", t.TempDir())
	require.Error(t, err)
}

func TestLooksLikePath(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"users", false},
		{"users.yaml", false},
		{"./users.yaml", true},
		{"sets/users.yaml", true},
		{"/abs/path/users.yaml", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, looksLikePath(c.input), c.input)
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("x")))
	assert.Equal(t, 3, exitCode(errDrift))
}

func TestInitReportsFiles(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, "", "init", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized aif workspace in "+dir)
	assert.Contains(t, out, "  wrote aif.yaml\n")
	assert.Contains(t, out, "  updated .gitignore\n")

	out, _, err = run(t, "", "init", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "  kept  aif.yaml (use --force to overwrite)\n")
	assert.NotContains(t, out, "updated .gitignore")
}

func TestSessionClosesLogWhenCommandFails(t *testing.T) {
	var opened, closed int
	s := &session{setup: func(logger.Config) (func() error, error) {
		opened++
		return func() error { closed++; return nil }, nil
	}}

	cmd := newRoot(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--debug", "signoff", "check", "-m", filepath.Join(t.TempDir(), "missing.txt")})

	require.Error(t, s.execute(context.Background(), cmd))
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)

	require.NoError(t, s.close())
	assert.Equal(t, 1, closed)
}

func TestSessionClosesLogOnce(t *testing.T) {
	closed := 0
	s := &session{setup: func(logger.Config) (func() error, error) {
		return func() error { closed++; return nil }, nil
	}}

	cmd := newRoot(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--debug", "version"})

	require.NoError(t, s.execute(context.Background(), cmd))
	assert.Equal(t, 1, closed)
}
