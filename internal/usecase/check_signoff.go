package usecase

import (
	"context"
	"fmt"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
	"github.com/Absolentia/aif-core/internal/usecase/signoff"
)

type CheckSignoff struct {
	commits ports.CommitSource
}

func NewCheckSignoff(cs ports.CommitSource) *CheckSignoff {
	return &CheckSignoff{commits: cs}
}

// Execute checks every commit in revRange. The error is a policy violation
// when at least one commit lacks a sign-off; results are returned either way.
func (uc *CheckSignoff) Execute(ctx context.Context, revRange string) ([]domain.SignoffResult, error) {
	commits, err := uc.commits.Commits(ctx, revRange)
	if err != nil {
		return nil, err
	}
	results := signoff.CheckAll(commits)
	return results, signoffError(results)
}

// CheckMessage checks a single commit message (e.g. from a commit-msg hook).
func (uc *CheckSignoff) CheckMessage(msg string) (domain.SignoffResult, error) {
	res := signoff.Check(domain.Commit{Message: msg})
	return res, signoffError([]domain.SignoffResult{res})
}

func signoffError(results []domain.SignoffResult) error {
	failed := 0
	for _, r := range results {
		if !r.Conforms {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return &domain.OpError{
		Op:   "usecase.signoff",
		Kind: domain.KindPolicyViolation,
		Err:  fmt.Errorf("%d of %d commits missing Signed-off-by: %w", failed, len(results), domain.ErrPolicyViolation),
	}
}
