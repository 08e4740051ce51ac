package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/Absolentia/aif-core/internal/domain"
)

type fakeSampleLoader struct {
	mu      sync.Mutex
	byPath  map[string][]domain.Sample
	queried []string
}

func (f *fakeSampleLoader) LoadSamples(_ context.Context, path string) ([]domain.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queried = append(f.queried, path)
	s, ok := f.byPath[path]
	if !ok {
		return nil, &domain.OpError{Op: "fake.load", Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
	}
	return s, nil
}

func (f *fakeSampleLoader) ListSamples(string) ([]string, error) { return nil, nil }

func (f *fakeSampleLoader) set(path string, docs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byPath == nil {
		f.byPath = map[string][]domain.Sample{}
	}
	out := make([]domain.Sample, len(docs))
	for i, d := range docs {
		out[i] = domain.Sample{Source: fmt.Sprintf("%s:%d", path, i+1), Data: []byte(d)}
	}
	f.byPath[path] = out
}

type fakeSetLoader struct {
	set domain.SampleSet
	err error
}

func (f fakeSetLoader) LoadSampleSet(string) (domain.SampleSet, error) { return f.set, f.err }
func (f fakeSetLoader) ListSampleSets(string) ([]domain.SampleSetRef, error) {
	return nil, nil
}

type fakeFetcher struct {
	bodies map[string]string
}

func (f fakeFetcher) Fetch(_ context.Context, url string) (domain.Sample, error) {
	b, ok := f.bodies[url]
	if !ok {
		return domain.Sample{}, &domain.OpError{Op: "fake.fetch", Kind: domain.KindExecution, Path: url, Err: fmt.Errorf("unexpected status 404")}
	}
	return domain.Sample{Source: url, Data: []byte(b)}, nil
}

type fakeStore struct {
	saved   []domain.SchemaArtifact
	schemas map[string]string
}

func (s *fakeStore) SaveSchema(a domain.SchemaArtifact) (string, error) {
	s.saved = append(s.saved, a)
	return "20260101T000000Z_" + a.Name, nil
}

func (s *fakeStore) LoadSchema(ref string) (string, error) {
	v, ok := s.schemas[ref]
	if !ok {
		return "", &domain.OpError{Op: "fake.load_schema", Kind: domain.KindNotFound, Path: ref, Err: domain.ErrNotFound}
	}
	return v, nil
}

func (s *fakeStore) ListSchemas() ([]domain.SchemaRef, error) { return nil, nil }

type fakeCommits struct {
	commits []domain.Commit
	gotRev  string
}

func (f *fakeCommits) Commits(_ context.Context, rev string) ([]domain.Commit, error) {
	f.gotRev = rev
	return f.commits, nil
}

type fakePolicyLoader struct{ p domain.Policy }

func (f fakePolicyLoader) LoadPolicy(string) (domain.Policy, error) { return f.p, nil }

type fakeDeps struct{ deps []domain.Dependency }

func (f fakeDeps) Dependencies() ([]domain.Dependency, error) { return f.deps, nil }

// fakeWatcher replays scripted change batches, running before() ahead of each one.
type fakeWatcher struct {
	batches [][]string
	before  []func()
}

func (w *fakeWatcher) Watch(_ context.Context, _ string, onChange func([]string)) error {
	for i, b := range w.batches {
		if i < len(w.before) && w.before[i] != nil {
			w.before[i]()
		}
		onChange(b)
	}
	return nil
}

type fakeInitializer struct {
	spec domain.WorkspaceSpec
}

func (f *fakeInitializer) Init(spec domain.WorkspaceSpec) (domain.InitResult, error) {
	f.spec = spec
	return domain.InitResult{Root: spec.Root, Written: []string{"aif.yaml"}}, nil
}
