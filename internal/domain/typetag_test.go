package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeTagString(t *testing.T) {
	want := []string{"null", "boolean", "integer", "number", "string", "object", "array"}
	for i, tag := range AllTypeTags() {
		assert.Equal(t, want[i], tag.String())
	}
	assert.Equal(t, "unknown", TypeTag(42).String())
}

func TestDiffResultHasDrift(t *testing.T) {
	assert.False(t, DiffResult{Common: []string{"id"}}.HasDrift())
	assert.True(t, DiffResult{Added: []string{"name"}}.HasDrift())
	assert.True(t, DiffResult{Removed: []string{"name"}}.HasDrift())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "samples", cfg.Paths.SamplesDir)
	assert.Equal(t, "schemas", cfg.Paths.SchemasDir)
	assert.Equal(t, "sets", cfg.Paths.SetsDir)
	assert.Equal(t, 4, cfg.Infer.Workers)
	assert.True(t, cfg.Store.Index)
	assert.Equal(t, "aif-policy.yaml", cfg.Policy.File)
}
