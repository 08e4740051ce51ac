package ports

import "context"

// DirWatcher reports batches of changed files in a directory until ctx is done.
type DirWatcher interface {
	Watch(ctx context.Context, dir string, onChange func(changed []string)) error
}
