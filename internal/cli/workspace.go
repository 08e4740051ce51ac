package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/infra/httpclient"
	"github.com/Absolentia/aif-core/internal/infra/samplefs"
	"github.com/Absolentia/aif-core/internal/infra/schemastore"
	"github.com/Absolentia/aif-core/internal/infra/workspacefinder"
	"github.com/Absolentia/aif-core/internal/infra/yamlsampleset"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	// found is false when commands run outside a workspace on plain files.
	found bool

	samples *samplefs.Loader
	sets    *yamlsampleset.Loader
	fetcher *httpclient.Fetcher
	store   *schemastore.JSONStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	return newWorkspaceCtx(root, cfg, true), nil
}

// loadWorkspaceOrCwd falls back to defaults rooted at the working directory when no
// workspace can be found, so infer and diff also work on loose files.
func loadWorkspaceOrCwd(workspaceFlag string) (*workspaceCtx, error) {
	ws, err := loadWorkspace(workspaceFlag)
	if err == nil {
		return ws, nil
	}
	if strings.TrimSpace(workspaceFlag) != "" || !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	wd, werr := os.Getwd()
	if werr != nil {
		return nil, fmt.Errorf("get working directory: %w", werr)
	}
	return newWorkspaceCtx(wd, domain.DefaultConfig(), false), nil
}

func newWorkspaceCtx(root string, cfg domain.Config, found bool) *workspaceCtx {
	return &workspaceCtx{
		root:    root,
		cfg:     cfg,
		found:   found,
		samples: samplefs.NewLoader(samplefs.WithSamplesDir(cfg.Paths.SamplesDir)),
		sets: yamlsampleset.NewLoader(
			yamlsampleset.WithSetsDir(cfg.Paths.SetsDir),
			yamlsampleset.WithEnviron(os.Environ()),
		),
		fetcher: httpclient.NewFetcher(httpclient.DefaultConfig()),
		store:   schemastore.NewJSONStore(root, cfg),
	}
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := newFinder().FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `aif init`): %w", wd, err)
	}
	return root, nil
}

// resolveSetPath accepts a set name, a file name under the sets dir, or a path.
func resolveSetPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if looksLikePath(in) {
		return ws.abs(in), nil
	}
	return ws.sets.Resolve(ws.root, in)
}

func (ws *workspaceCtx) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(ws.root, p)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envCeilingDir stops the upward workspace search, like GIT_CEILING_DIRECTORIES.
const envCeilingDir = "AIF_CEILING_DIR"

func newFinder() *workspacefinder.Finder {
	if dir := strings.TrimSpace(os.Getenv(envCeilingDir)); dir != "" {
		return workspacefinder.NewFinder(workspacefinder.WithStopAt(dir))
	}
	return workspacefinder.NewFinder()
}
