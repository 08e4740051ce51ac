package gitlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Absolentia/aif-core/internal/domain"
)

func record(hash, name, email, msg string) string {
	return hash + "\x1f" + name + "\x1f" + email + "\x1f" + msg + "\x1e"
}

func TestParseLog(t *testing.T) {
	out := record("aaa", "Ann", "ann@example.com", "feat: x\n\nSigned-off-by: Ann <ann@example.com>\n") +
		"\n" + record("bbb", "Bob", "bob@example.com", "fix: y\n")

	commits := ParseLog(out)
	require.Len(t, commits, 2)
	assert.Equal(t, "aaa", commits[0].Hash)
	assert.Equal(t, "Ann", commits[0].Author)
	assert.Equal(t, "feat: x\n\nSigned-off-by: Ann <ann@example.com>", commits[0].Message)
	assert.Equal(t, "bbb", commits[1].Hash)
	assert.Equal(t, "fix: y", commits[1].Message)
}

func TestParseLog_Empty(t *testing.T) {
	assert.Empty(t, ParseLog(""))
	assert.Empty(t, ParseLog("\n"))
}

func TestCommits_PassesRange(t *testing.T) {
	var gotDir string
	var gotArgs []string
	src := NewSource("/repo", WithRunner(func(_ context.Context, dir string, args ...string) ([]byte, error) {
		gotDir, gotArgs = dir, args
		return []byte(record("c1", "C", "c@x", "msg")), nil
	}))

	commits, err := src.Commits(context.Background(), "main..HEAD")
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "/repo", gotDir)
	assert.Equal(t, []string{"log", logFormat, "main..HEAD"}, gotArgs)
}

func TestCommits_RunnerError(t *testing.T) {
	src := NewSource(".", WithRunner(func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("not a git repository")
	}))

	_, err := src.Commits(context.Background(), "")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindExecution))
}
