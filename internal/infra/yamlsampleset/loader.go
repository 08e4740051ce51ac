package yamlsampleset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Absolentia/aif-core/internal/app/template"
	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

type Loader struct {
	setsDir string

	// env overrides the set's own vars when rendering {{VAR}} in path and url values.
	env map[string]string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{setsDir: "sets"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithSetsDir(dir string) Option {
	return func(l *Loader) { l.setsDir = dir }
}

// WithEnviron exposes os.Environ-style entries to {{VAR}} placeholders.
func WithEnviron(environ []string) Option {
	return func(l *Loader) { l.env = template.EnvVars(environ) }
}

var _ ports.SampleSetLoader = (*Loader)(nil)

func (l *Loader) LoadSampleSet(path string) (domain.SampleSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.SampleSet{}, &domain.OpError{
			Op:   "yamlsampleset.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var ys yamlSampleSet
	if err := yaml.Unmarshal(b, &ys); err != nil {
		return domain.SampleSet{}, &domain.OpError{
			Op:   "yamlsampleset.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, ys, template.MergeVars(ys.Vars, l.env))
}

func (l *Loader) ListSampleSets(root string) ([]domain.SampleSetRef, error) {
	dir := filepath.Join(root, l.setsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlsampleset.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.SampleSetRef
	for _, e := range entries {
		if e.IsDir() || !hasYAMLExt(e.Name()) {
			continue
		}

		p := filepath.Join(dir, e.Name())
		n, _ := readSetName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		refs = append(refs, domain.SampleSetRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Resolve finds a set by file stem or by its name field.
func (l *Loader) Resolve(root, name string) (string, error) {
	in := strings.TrimSpace(name)
	dir := filepath.Join(root, l.setsDir)

	for _, p := range []string{
		filepath.Join(dir, in),
		filepath.Join(dir, in+".yaml"),
		filepath.Join(dir, in+".yml"),
	} {
		if hasYAMLExt(p) {
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, nil
			}
		}
	}

	refs, err := l.ListSampleSets(root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", &domain.OpError{
		Op:   "yamlsampleset.resolve",
		Kind: domain.KindNotFound,
		Path: dir,
		Err:  fmt.Errorf("sample set %q: %w", in, domain.ErrNotFound),
	}
}

func readSetName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlSampleSet struct {
	Name    string            `yaml:"name"`
	Root    string            `yaml:"root"`
	Vars    map[string]string `yaml:"vars"`
	Sources []yamlSource      `yaml:"sources"`
}

type yamlSource struct {
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
	Inline string `yaml:"inline"`
}

func mapAndValidate(path string, ys yamlSampleSet, vars map[string]string) (domain.SampleSet, error) {
	if strings.TrimSpace(ys.Name) == "" {
		return domain.SampleSet{}, invalidField(path, "name", "sample set name is required")
	}
	if len(ys.Sources) == 0 {
		return domain.SampleSet{}, invalidField(path, "sources", "at least one source is required")
	}

	set := domain.SampleSet{
		Name:    ys.Name,
		Root:    strings.TrimSpace(ys.Root),
		Sources: make([]domain.SampleSource, 0, len(ys.Sources)),
	}

	for i, s := range ys.Sources {
		field := fmt.Sprintf("sources[%d]", i)

		var picked []domain.SampleSource
		if v := strings.TrimSpace(s.Path); v != "" {
			v, err := render(path, field+".path", v, vars)
			if err != nil {
				return domain.SampleSet{}, err
			}
			picked = append(picked, domain.SampleSource{Kind: domain.SourcePath, Value: v})
		}
		if v := strings.TrimSpace(s.URL); v != "" {
			v, err := render(path, field+".url", v, vars)
			if err != nil {
				return domain.SampleSet{}, err
			}
			if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
				return domain.SampleSet{}, invalidField(path, field+".url", "url must start with http:// or https://")
			}
			picked = append(picked, domain.SampleSource{Kind: domain.SourceURL, Value: v})
		}
		if strings.TrimSpace(s.Inline) != "" {
			picked = append(picked, domain.SampleSource{Kind: domain.SourceInline, Value: s.Inline})
		}

		switch len(picked) {
		case 0:
			return domain.SampleSet{}, invalidField(path, field, "one of path/url/inline is required")
		case 1:
			set.Sources = append(set.Sources, picked[0])
		default:
			return domain.SampleSet{}, invalidField(path, field, "only one of path/url/inline may be set")
		}
	}

	return set, nil
}

func render(path, field, value string, vars map[string]string) (string, error) {
	out, err := template.RenderString(value, vars)
	if err != nil {
		return "", &domain.OpError{
			Op:   "yamlsampleset.map",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("field %s: %w", field, err),
		}
	}
	return out, nil
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlsampleset.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
