package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Absolentia/aif-core/internal/domain"
)

func properties(t *testing.T, schema string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(schema), &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok, schema)
	return props
}

func TestInferSchema_FromPaths(t *testing.T) {
	sl := &fakeSampleLoader{}
	sl.set("samples/users.jsonl", `{"id": 1}`, `{"id": 2, "name": "b"}`)

	uc := NewInferSchema(sl, fakeSetLoader{}, nil, nil)
	res, err := uc.Execute(context.Background(), InferRequest{Paths: []string{"samples/users.jsonl"}, Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, res.SampleCount)
	assert.Equal(t, []string{"samples/users.jsonl:1", "samples/users.jsonl:2"}, res.Sources)
	props := properties(t, res.Schema)
	assert.Contains(t, props, "id")
	assert.Contains(t, props, "name")
	assert.Empty(t, res.SavedID)
}

func TestInferSchema_SetResolvesRelativePathsAndRoot(t *testing.T) {
	base := t.TempDir()
	sl := &fakeSampleLoader{}
	sl.set(filepath.Join(base, "samples/a.json"), `{"data": {"x": 1}}`)

	set := domain.SampleSet{
		Name: "wrapped",
		Root: "$.data",
		Sources: []domain.SampleSource{
			{Kind: domain.SourcePath, Value: "samples/a.json"},
			{Kind: domain.SourceURL, Value: "http://api/u"},
			{Kind: domain.SourceInline, Value: `{"data": {"y": true}}`},
		},
	}
	f := fakeFetcher{bodies: map[string]string{"http://api/u": `{"data": {"z": null}}`}}
	st := &fakeStore{}

	uc := NewInferSchema(sl, fakeSetLoader{set: set}, f, st,
		WithInferClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }))
	res, err := uc.Execute(context.Background(), InferRequest{BaseDir: base, SetRef: "sets/wrapped.yaml", Save: true})
	require.NoError(t, err)

	props := properties(t, res.Schema)
	assert.Len(t, props, 3)
	assert.Contains(t, props, "x")
	assert.Contains(t, props, "y")
	assert.Contains(t, props, "z")

	require.Len(t, st.saved, 1)
	assert.Equal(t, "wrapped", st.saved[0].Name)
	assert.Equal(t, 3, st.saved[0].SampleCount)
	assert.Equal(t, "20260101T000000Z_wrapped", res.SavedID)
	assert.Equal(t, []string{filepath.Join(base, "samples/a.json:1"), "http://api/u", "wrapped:inline"}, res.Sources)
}

func TestInferSchema_RequestRootOverridesSet(t *testing.T) {
	set := domain.SampleSet{
		Name:    "s",
		Root:    "$.nope",
		Sources: []domain.SampleSource{{Kind: domain.SourceInline, Value: `{"items": [{"a": 1}, {"b": 2}]}`}},
	}
	uc := NewInferSchema(&fakeSampleLoader{}, fakeSetLoader{set: set}, nil, nil)

	res, err := uc.Execute(context.Background(), InferRequest{SetRef: "x", Root: "$.items"})
	require.NoError(t, err)
	props := properties(t, res.Schema)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
}

func TestInferSchema_InlineAndNameOverride(t *testing.T) {
	st := &fakeStore{}
	uc := NewInferSchema(&fakeSampleLoader{}, fakeSetLoader{}, nil, st)

	res, err := uc.Execute(context.Background(), InferRequest{
		Inline: []string{`{"a": 1}`},
		Save:   true,
		Name:   "custom",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"inline[0]"}, res.Sources)
	require.Len(t, st.saved, 1)
	assert.Equal(t, "custom", st.saved[0].Name)
}

func TestInferSchema_Errors(t *testing.T) {
	uc := NewInferSchema(&fakeSampleLoader{}, fakeSetLoader{}, nil, nil)

	_, err := uc.Execute(context.Background(), InferRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Execute(context.Background(), InferRequest{URLs: []string{"http://x"}})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindExecution))

	_, err = uc.Execute(context.Background(), InferRequest{Inline: []string{`{"a":`}})
	require.Error(t, err)
	assert.Contains(t, domain.Cause(err), "Invalid JSON: ")

	_, err = uc.Execute(context.Background(), InferRequest{Inline: []string{`{}`}, Save: true})
	require.Error(t, err)

	_, err = uc.Execute(context.Background(), InferRequest{Paths: []string{"missing"}})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestInferSchema_DefaultRootAppliesWhenSetHasNone(t *testing.T) {
	set := domain.SampleSet{
		Name:    "s",
		Sources: []domain.SampleSource{{Kind: domain.SourceInline, Value: `{"data": {"k": 1}}`}},
	}
	uc := NewInferSchema(&fakeSampleLoader{}, fakeSetLoader{set: set}, nil, nil)

	res, err := uc.Execute(context.Background(), InferRequest{SetRef: "x", DefaultRoot: "$.data"})
	require.NoError(t, err)
	assert.Contains(t, properties(t, res.Schema), "k")

	set.Root = "$"
	uc = NewInferSchema(&fakeSampleLoader{}, fakeSetLoader{set: set}, nil, nil)
	res, err = uc.Execute(context.Background(), InferRequest{SetRef: "x", DefaultRoot: "$.data"})
	require.NoError(t, err)
	assert.Contains(t, properties(t, res.Schema), "data")
}
