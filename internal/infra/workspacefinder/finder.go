package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

// ConfigFile marks the root of an aif workspace.
const ConfigFile = "aif.yaml"

// Finder walks up from a directory until it sees ConfigFile.
type Finder struct {
	ConfigFile string

	// stopAt bounds the search; the directory itself is still checked.
	stopAt string
}

type FinderOption func(*Finder)

// WithStopAt ends the upward search at dir instead of the filesystem root.
func WithStopAt(dir string) FinderOption {
	return func(f *Finder) {
		if abs, err := filepath.Abs(dir); err == nil {
			f.stopAt = abs
		}
	}
}

func NewFinder(opts ...FinderOption) *Finder {
	f := &Finder{ConfigFile: ConfigFile}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("start directory is empty"),
		}
	}

	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{Op: "workspacefinder.findroot", Kind: domain.KindExecution, Err: err}
	}
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}

	for _, dir := range ancestors(start, f.stopAt) {
		if info, err := os.Stat(filepath.Join(dir, f.ConfigFile)); err == nil && !info.IsDir() {
			return dir, nil
		}
	}

	return "", &domain.OpError{
		Op:   "workspacefinder.findroot",
		Kind: domain.KindNotFound,
		Path: start,
		Err:  domain.ErrNotFound,
	}
}

// ancestors lists dir and its parents, nearest first, ending at stop when
// stop is one of them.
func ancestors(dir, stop string) []string {
	var out []string
	for cur := filepath.Clean(dir); ; cur = filepath.Dir(cur) {
		out = append(out, cur)
		if cur == stop || filepath.Dir(cur) == cur {
			return out
		}
	}
}
