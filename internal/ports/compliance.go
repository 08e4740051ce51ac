package ports

import (
	"context"

	"github.com/Absolentia/aif-core/internal/domain"
)

// CommitSource lists commits in a revision range.
type CommitSource interface {
	Commits(ctx context.Context, revRange string) ([]domain.Commit, error)
}

// DependencySource lists the modules a project depends on.
type DependencySource interface {
	Dependencies() ([]domain.Dependency, error)
}

// PolicyLoader loads the license/advisory policy.
type PolicyLoader interface {
	LoadPolicy(path string) (domain.Policy, error)
}
