package watcher

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

const DefaultDebounce = 300 * time.Millisecond

// Watcher debounces fsnotify events for a single directory (non-recursive).
type Watcher struct {
	debounce time.Duration
	filter   func(name string) bool
	log      *slog.Logger
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithFilter keeps only events whose file name passes f.
func WithFilter(f func(name string) bool) Option {
	return func(w *Watcher) { w.filter = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

func New(opts ...Option) *Watcher {
	w := &Watcher{
		debounce: DefaultDebounce,
		filter:   func(string) bool { return true },
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ ports.DirWatcher = (*Watcher)(nil)

// Watch blocks until ctx is cancelled. onChange runs on the watch goroutine with the
// sorted set of files touched since the previous call.
func (w *Watcher) Watch(ctx context.Context, dir string, onChange func(changed []string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return &domain.OpError{Op: "watcher.new", Kind: domain.KindExecution, Err: err}
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return &domain.OpError{Op: "watcher.add", Kind: domain.KindNotFound, Path: dir, Err: err}
	}
	w.log.Info("watch.started", "dir", dir, "debounce", w.debounce.String())

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	pending := map[string]struct{}{}

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watch.stopped", "dir", dir)
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) || !w.filter(filepath.Base(ev.Name)) {
				continue
			}
			w.log.Debug("watch.event", "op", ev.Op.String(), "file", ev.Name)
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch.error", "err", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = map[string]struct{}{}
			onChange(changed)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
