package fsworkspace

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

const templatesRoot = "templates"

// ignoreHeader starts the block aif appends to .gitignore.
const ignoreHeader = "# aif"

var ignoreEntries = []string{
	".aif/",
	".env",
	"schemas/index.jsonl",
}

// Initializer writes the workspace skeleton: directories, aif.yaml, a starter
// policy, an example sample set and sample.
type Initializer struct {
	cfg domain.Config
}

func NewInitializer() *Initializer {
	return &Initializer{cfg: domain.DefaultConfig()}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

func (i *Initializer) Init(spec domain.WorkspaceSpec) (domain.InitResult, error) {
	root := filepath.Clean(spec.Root)
	res := domain.InitResult{Root: root}

	for _, d := range i.layout(root) {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return res, opErr("fsworkspace.mkdir", d, err)
		}
	}

	files, err := templateFiles()
	if err != nil {
		return res, opErr("fsworkspace.templates", root, err)
	}

	for _, rel := range files {
		dst := filepath.Join(root, filepath.FromSlash(rel))
		if !spec.Force && exists(dst) {
			res.Kept = append(res.Kept, rel)
			continue
		}
		if err := copyTemplate(rel, dst); err != nil {
			return res, opErr("fsworkspace.write", dst, err)
		}
		res.Written = append(res.Written, rel)
	}

	updated, err := ensureGitignore(root)
	if err != nil {
		return res, opErr("fsworkspace.gitignore", root, err)
	}
	res.GitignoreUpdated = updated

	return res, nil
}

func (i *Initializer) layout(root string) []string {
	return []string{
		filepath.Join(root, i.cfg.Paths.SamplesDir),
		filepath.Join(root, i.cfg.Paths.SchemasDir),
		filepath.Join(root, i.cfg.Paths.SetsDir),
		filepath.Join(root, ".aif", "logs"),
	}
}

// templateFiles returns embedded template paths relative to the templates dir, sorted.
func templateFiles() ([]string, error) {
	var out []string
	err := fs.WalkDir(templatesFS, templatesRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		out = append(out, strings.TrimPrefix(p, templatesRoot+"/"))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func copyTemplate(rel, dst string) error {
	b, err := fs.ReadFile(templatesFS, path.Join(templatesRoot, rel))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, b, 0o644)
}

// ensureGitignore appends missing aif entries and reports whether the file changed.
func ensureGitignore(root string) (bool, error) {
	p := filepath.Join(root, ".gitignore")

	b, err := os.ReadFile(p)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	merged, changed := mergeIgnore(string(b))
	if !changed {
		return false, nil
	}
	return true, os.WriteFile(p, []byte(merged), 0o644)
}

// mergeIgnore appends the aif block with only the entries not already listed.
func mergeIgnore(existing string) (string, bool) {
	seen := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			seen[t] = true
		}
	}

	var block []string
	if !seen[ignoreHeader] {
		block = append(block, ignoreHeader)
	}
	missing := 0
	for _, e := range ignoreEntries {
		if !seen[e] {
			block = append(block, e)
			missing++
		}
	}
	if missing == 0 {
		return existing, false
	}

	var out strings.Builder
	if existing != "" {
		out.WriteString(strings.TrimRight(existing, "\n"))
		out.WriteString("\n\n")
	}
	out.WriteString(strings.Join(block, "\n"))
	out.WriteByte('\n')
	return out.String(), true
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func opErr(op, p string, err error) error {
	return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: p, Err: err}
}
