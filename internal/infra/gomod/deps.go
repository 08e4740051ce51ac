package gomod

import (
	"os"
	"sort"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

// Source reads the dependency list from a go.mod file.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

var _ ports.DependencySource = (*Source)(nil)

// Dependencies returns every require entry sorted by module path.
// Replace directives pointing at a module version are applied; the
// dependency then names the replacement module. Local directory
// replacements keep the required module.
func (s *Source) Dependencies() ([]domain.Dependency, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "gomod.read",
			Kind: domain.KindNotFound,
			Path: s.path,
			Err:  err,
		}
	}

	f, err := modfile.Parse(s.path, b, nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "gomod.parse",
			Kind: domain.KindInvalidConfig,
			Path: s.path,
			Err:  err,
		}
	}

	replaces := newReplaceIndex(f.Replace)

	deps := make([]domain.Dependency, 0, len(f.Require))
	for _, r := range f.Require {
		d := domain.Dependency{
			Module:   r.Mod.Path,
			Version:  r.Mod.Version,
			Indirect: r.Indirect,
		}
		if to, ok := replaces.lookup(r.Mod); ok && to.Version != "" {
			if to.Path != d.Module {
				d.Replaces = d.Module
			}
			d.Module, d.Version = to.Path, to.Version
		}
		deps = append(deps, d)
	}

	sort.Slice(deps, func(i, j int) bool { return deps[i].Module < deps[j].Module })
	return deps, nil
}

// replaceIndex keys replace targets by path and version; an empty version is
// the wildcard form `replace m => ...`.
type replaceIndex map[module.Version]module.Version

func newReplaceIndex(rs []*modfile.Replace) replaceIndex {
	idx := make(replaceIndex, len(rs))
	for _, r := range rs {
		idx[r.Old] = r.New
	}
	return idx
}

// lookup prefers a version-specific replacement over the wildcard one.
func (idx replaceIndex) lookup(m module.Version) (module.Version, bool) {
	if to, ok := idx[m]; ok {
		return to, true
	}
	to, ok := idx[module.Version{Path: m.Path}]
	return to, ok
}
