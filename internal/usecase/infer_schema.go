package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
	"github.com/Absolentia/aif-core/internal/usecase/infer"
)

// InferRequest describes where samples come from and what to do with the result.
type InferRequest struct {
	// BaseDir resolves relative paths found in sample sets.
	BaseDir string

	Paths  []string
	SetRef string // path to a sample set file
	URLs   []string
	Inline []string

	// Root is a JSONPath applied to each sample. It overrides the set's root,
	// which overrides DefaultRoot.
	Root        string
	DefaultRoot string
	Workers     int

	Save bool
	Name string
}

type InferResult struct {
	Schema      string
	SampleCount int
	Sources     []string
	SavedID     string
}

type InferSchema struct {
	samples ports.SampleLoader
	sets    ports.SampleSetLoader
	fetcher ports.SampleFetcher
	store   ports.SchemaStore
	log     *slog.Logger
	now     func() time.Time
}

type InferOption func(*InferSchema)

func WithInferLogger(l *slog.Logger) InferOption {
	return func(uc *InferSchema) {
		if l != nil {
			uc.log = l
		}
	}
}

func WithInferClock(now func() time.Time) InferOption {
	return func(uc *InferSchema) { uc.now = now }
}

// NewInferSchema wires the sample sources. fetcher and store may be nil when URLs
// or saving are not used.
func NewInferSchema(sl ports.SampleLoader, setl ports.SampleSetLoader, f ports.SampleFetcher, st ports.SchemaStore, opts ...InferOption) *InferSchema {
	uc := &InferSchema{
		samples: sl,
		sets:    setl,
		fetcher: f,
		store:   st,
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *InferSchema) Execute(ctx context.Context, req InferRequest) (InferResult, error) {
	start := uc.now()

	samples, root, name, err := uc.collect(ctx, req)
	if err != nil {
		return InferResult{}, err
	}
	if len(samples) == 0 {
		return InferResult{}, &domain.OpError{
			Op:   "usecase.infer",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("no samples given: %w", domain.ErrInvalidInput),
		}
	}
	if strings.TrimSpace(root) == "" {
		root = req.DefaultRoot
	}
	if strings.TrimSpace(req.Root) != "" {
		root = req.Root
	}

	raw := make([]string, len(samples))
	sources := make([]string, len(samples))
	for i, s := range samples {
		raw[i] = string(s.Data)
		sources[i] = s.Source
	}

	tree, err := infer.ObserveParallel(ctx, raw, root, req.Workers)
	if err != nil {
		uc.log.Warn("infer.failed", "samples", len(samples), "err", err)
		return InferResult{}, err
	}
	schema, err := infer.Render(tree)
	if err != nil {
		return InferResult{}, err
	}

	res := InferResult{Schema: schema, SampleCount: len(samples), Sources: sources}
	uc.log.Info("infer.completed",
		"samples", len(samples),
		"workers", req.Workers,
		"root", root,
		"duration_ms", uc.now().Sub(start).Milliseconds(),
	)

	if !req.Save {
		return res, nil
	}
	if uc.store == nil {
		return res, &domain.OpError{Op: "usecase.infer.save", Kind: domain.KindExecution, Err: fmt.Errorf("no schema store configured")}
	}
	if strings.TrimSpace(req.Name) != "" {
		name = req.Name
	}
	if name == "" {
		name = "schema"
	}

	id, err := uc.store.SaveSchema(domain.SchemaArtifact{
		Name:        name,
		SampleCount: len(samples),
		Sources:     sources,
		CreatedAt:   uc.now(),
		Schema:      schema,
	})
	if err != nil {
		return res, err
	}
	res.SavedID = id
	uc.log.Info("schema.saved", "id", id, "name", name)
	return res, nil
}

// collect gathers samples in a stable order: set sources, paths, urls, inline.
func (uc *InferSchema) collect(ctx context.Context, req InferRequest) ([]domain.Sample, string, string, error) {
	var out []domain.Sample
	var root, name string

	if ref := strings.TrimSpace(req.SetRef); ref != "" {
		set, err := uc.sets.LoadSampleSet(ref)
		if err != nil {
			return nil, "", "", err
		}
		root, name = set.Root, set.Name

		for _, src := range set.Sources {
			switch src.Kind {
			case domain.SourcePath:
				p := src.Value
				if !filepath.IsAbs(p) && req.BaseDir != "" {
					p = filepath.Join(req.BaseDir, p)
				}
				got, err := uc.samples.LoadSamples(ctx, p)
				if err != nil {
					return nil, "", "", err
				}
				out = append(out, got...)
			case domain.SourceURL:
				got, err := uc.fetch(ctx, src.Value)
				if err != nil {
					return nil, "", "", err
				}
				out = append(out, got)
			case domain.SourceInline:
				out = append(out, domain.Sample{Source: set.Name + ":inline", Data: []byte(src.Value)})
			}
		}
	}

	for _, p := range req.Paths {
		got, err := uc.samples.LoadSamples(ctx, p)
		if err != nil {
			return nil, "", "", err
		}
		out = append(out, got...)
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		}
	}

	for _, u := range req.URLs {
		got, err := uc.fetch(ctx, u)
		if err != nil {
			return nil, "", "", err
		}
		out = append(out, got)
	}

	for i, s := range req.Inline {
		out = append(out, domain.Sample{Source: fmt.Sprintf("inline[%d]", i), Data: []byte(s)})
	}

	return out, root, name, nil
}

func (uc *InferSchema) fetch(ctx context.Context, url string) (domain.Sample, error) {
	if uc.fetcher == nil {
		return domain.Sample{}, &domain.OpError{
			Op:   "usecase.infer.fetch",
			Kind: domain.KindExecution,
			Path: url,
			Err:  fmt.Errorf("no http fetcher configured"),
		}
	}
	return uc.fetcher.Fetch(ctx, url)
}
