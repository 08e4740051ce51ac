package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Absolentia/aif-core/internal/domain"
)

func TestCheckSignoff(t *testing.T) {
	src := &fakeCommits{commits: []domain.Commit{
		{Hash: "a", Message: "feat: a\n\nSigned-off-by: Ann <ann@example.com>"},
	}}
	uc := NewCheckSignoff(src)

	res, err := uc.Execute(context.Background(), "origin/main..HEAD")
	require.NoError(t, err)
	assert.Equal(t, "origin/main..HEAD", src.gotRev)
	require.Len(t, res, 1)
	assert.True(t, res[0].Conforms)

	src.commits = append(src.commits, domain.Commit{Hash: "b", Message: "fix: b"})
	res, err = uc.Execute(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPolicyViolation))
	assert.Contains(t, err.Error(), "1 of 2 commits")
	assert.Len(t, res, 2)
}

func TestCheckSignoff_Message(t *testing.T) {
	uc := NewCheckSignoff(&fakeCommits{})

	res, err := uc.CheckMessage("docs: x\n\nSigned-off-by: Ann <ann@example.com>\n")
	require.NoError(t, err)
	assert.Equal(t, "docs: x", res.Subject)

	_, err = uc.CheckMessage("docs: x\n")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPolicyViolation))
}

func TestCheckPolicy(t *testing.T) {
	pol := domain.Policy{
		Allow:     []string{"MIT"},
		Inventory: map[string]string{"a.com/x": "MIT"},
	}

	report, err := NewCheckPolicy(fakePolicyLoader{p: pol}, fakeDeps{deps: []domain.Dependency{{Module: "a.com/x", Version: "v1.0.0"}}}).Execute("aif-policy.yaml")
	require.NoError(t, err)
	assert.True(t, report.Passed())
	assert.Equal(t, 1, report.Checked)

	report, err = NewCheckPolicy(fakePolicyLoader{p: pol}, fakeDeps{deps: []domain.Dependency{{Module: "b.com/y", Version: "v1.0.0"}}}).Execute("aif-policy.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPolicyViolation))
	require.Len(t, report.Violations, 1)
	assert.Equal(t, domain.ViolationUnknownLicense, report.Violations[0].Kind)
}

func TestInitWorkspace(t *testing.T) {
	fi := &fakeInitializer{}
	res, err := NewInitWorkspace(fi).Execute("/tmp/ws", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"aif.yaml"}, res.Written)
	assert.Equal(t, domain.WorkspaceSpec{Root: "/tmp/ws", Force: true}, fi.spec)

	_, err = NewInitWorkspace(fi).Execute("  ", false)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}
