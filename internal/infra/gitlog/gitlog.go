package gitlog

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
	logFormat = "--format=%H%x1f%an%x1f%ae%x1f%B%x1e"
)

// Runner executes git with the given args inside dir and returns stdout.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// Source reads commits with `git log`.
type Source struct {
	dir string
	run Runner
}

type Option func(*Source)

// WithRunner replaces the git invocation (useful for tests).
func WithRunner(r Runner) Option {
	return func(s *Source) { s.run = r }
}

func NewSource(dir string, opts ...Option) *Source {
	s := &Source{dir: dir, run: runGit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.CommitSource = (*Source)(nil)

func (s *Source) Commits(ctx context.Context, revRange string) ([]domain.Commit, error) {
	args := []string{"log", logFormat}
	if r := strings.TrimSpace(revRange); r != "" {
		args = append(args, r)
	}

	out, err := s.run(ctx, s.dir, args...)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "gitlog.commits",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	return ParseLog(string(out)), nil
}

// ParseLog splits output produced with the unit/record separator format.
func ParseLog(out string) []domain.Commit {
	var commits []domain.Commit
	for _, rec := range strings.Split(out, recordSep) {
		rec = strings.TrimLeft(rec, "\r\n")
		if strings.TrimSpace(rec) == "" {
			continue
		}

		parts := strings.SplitN(rec, fieldSep, 4)
		if len(parts) < 4 {
			continue
		}
		commits = append(commits, domain.Commit{
			Hash:    strings.TrimSpace(parts[0]),
			Author:  parts[1],
			Email:   parts[2],
			Message: strings.TrimRight(parts[3], "\r\n"),
		})
	}
	return commits
}

func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
