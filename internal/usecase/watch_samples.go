package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
	"github.com/Absolentia/aif-core/internal/usecase/diff"
	"github.com/Absolentia/aif-core/internal/usecase/infer"
)

// WatchUpdate is emitted once for the initial inference and after every change batch.
type WatchUpdate struct {
	Changed     []string
	Schema      string
	SampleCount int
	Diff        domain.DiffResult
	Err         error
}

type WatchSamples struct {
	samples ports.SampleLoader
	watcher ports.DirWatcher
	engine  *diff.Engine
	log     *slog.Logger
}

func NewWatchSamples(sl ports.SampleLoader, w ports.DirWatcher, log *slog.Logger) *WatchSamples {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &WatchSamples{samples: sl, watcher: w, engine: diff.NewEngine(16), log: log}
}

// Execute blocks until ctx is cancelled. A failed re-inference is reported through
// emit and the previous schema stays the baseline.
func (uc *WatchSamples) Execute(ctx context.Context, dir, root string, workers int, emit func(WatchUpdate)) error {
	prev, count, err := uc.inferDir(ctx, dir, root, workers)
	if err != nil {
		return err
	}
	emit(WatchUpdate{Schema: prev, SampleCount: count, Diff: diff.ComparePaths(nil, nil)})

	return uc.watcher.Watch(ctx, dir, func(changed []string) {
		next, n, err := uc.inferDir(ctx, dir, root, workers)
		if err != nil {
			uc.log.Warn("watch.reinfer_failed", "err", err)
			emit(WatchUpdate{Changed: changed, Err: err})
			return
		}

		d, err := uc.engine.Compare(prev, next)
		if err != nil {
			emit(WatchUpdate{Changed: changed, Err: err})
			return
		}
		uc.log.Info("watch.reinferred", "samples", n, "added", len(d.Added), "removed", len(d.Removed))

		prev = next
		emit(WatchUpdate{Changed: changed, Schema: next, SampleCount: n, Diff: d})
	})
}

func (uc *WatchSamples) inferDir(ctx context.Context, dir, root string, workers int) (string, int, error) {
	samples, err := uc.samples.LoadSamples(ctx, dir)
	if err != nil {
		return "", 0, err
	}
	raw := make([]string, len(samples))
	for i, s := range samples {
		raw[i] = string(s.Data)
	}

	tree, err := infer.ObserveParallel(ctx, raw, root, workers)
	if err != nil {
		return "", 0, err
	}
	schema, err := infer.Render(tree)
	return schema, len(samples), err
}
