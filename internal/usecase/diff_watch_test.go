package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/usecase/infer"
)

func mustInfer(t *testing.T, samples ...string) string {
	t.Helper()
	s, err := infer.Infer(samples)
	require.NoError(t, err)
	return s
}

func TestDiffSchemas(t *testing.T) {
	st := &fakeStore{schemas: map[string]string{
		"old": mustInfer(t, `{"id": 1, "legacy": true}`),
		"new": mustInfer(t, `{"id": 1, "tags": ["x"]}`),
	}}
	uc := NewDiffSchemas(st, nil)

	res, err := uc.Execute("old", "new")
	require.NoError(t, err)
	assert.Equal(t, []string{"tags", "tags[]"}, res.Added)
	assert.Equal(t, []string{"legacy"}, res.Removed)
	assert.Equal(t, []string{"id"}, res.Common)

	_, err = uc.Execute("old", "missing")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestWatchSamples_EmitsInitialThenDrift(t *testing.T) {
	sl := &fakeSampleLoader{}
	sl.set("samples", `{"id": 1}`)

	w := &fakeWatcher{
		batches: [][]string{{"samples/a.json"}, {"samples/b.json"}, {"samples/c.json"}},
		before: []func(){
			func() { sl.set("samples", `{"id": 1}`, `{"id": 2, "email": "e"}`) },
			func() { sl.set("samples", `{"id":`) },
			func() { sl.set("samples", `{"id": 3}`) },
		},
	}

	var updates []WatchUpdate
	err := NewWatchSamples(sl, w, nil).Execute(context.Background(), "samples", "", 2, func(u WatchUpdate) {
		updates = append(updates, u)
	})
	require.NoError(t, err)
	require.Len(t, updates, 4)

	assert.Nil(t, updates[0].Changed)
	assert.Equal(t, 1, updates[0].SampleCount)
	assert.False(t, updates[0].Diff.HasDrift())

	assert.Equal(t, []string{"email"}, updates[1].Diff.Added)
	assert.Equal(t, 2, updates[1].SampleCount)

	require.Error(t, updates[2].Err)
	assert.Equal(t, []string{"samples/b.json"}, updates[2].Changed)

	// Baseline after a failed run is still the last good schema.
	assert.Equal(t, []string{"email"}, updates[3].Diff.Removed)
	assert.Empty(t, updates[3].Diff.Added)
}

func TestWatchSamples_InitialFailure(t *testing.T) {
	err := NewWatchSamples(&fakeSampleLoader{}, &fakeWatcher{}, nil).Execute(context.Background(), "nope", "", 1, func(WatchUpdate) {})
	require.Error(t, err)
}
