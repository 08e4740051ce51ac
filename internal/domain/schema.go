package domain

import "time"

// SchemaDraft is the $schema URI written into every inferred document.
const SchemaDraft = "https://json-schema.org/draft/2020-12/schema"

// Sample is one raw JSON document plus where it came from.
type Sample struct {
	Source string
	Data   []byte
}

// SampleSourceKind tells loaders how to resolve a SampleSource.
type SampleSourceKind string

const (
	SourcePath   SampleSourceKind = "path"
	SourceURL    SampleSourceKind = "url"
	SourceInline SampleSourceKind = "inline"
)

// SampleSource is a single entry of a sample set.
type SampleSource struct {
	Kind  SampleSourceKind
	Value string
}

// SampleSet groups sample sources under one logical name (Git-friendly).
type SampleSet struct {
	Name string

	// Root is an optional JSONPath applied to every sample before inference.
	Root string

	Sources []SampleSource
}

// SampleSetRef is a lightweight reference to a sample set file on disk.
type SampleSetRef struct {
	Name string
	Path string
}

// SchemaArtifact is a persisted inferred schema.
type SchemaArtifact struct {
	Name        string    `json:"name"`
	SampleCount int       `json:"sample_count"`
	Sources     []string  `json:"sources,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Schema is the pretty-printed JSON Schema document.
	Schema string `json:"-"`
}

// SchemaRef identifies a stored schema.
type SchemaRef struct {
	ID   string
	Name string
	Path string
}

// DiffResult lists property paths added, removed, and shared between two schemas.
// All lists are sorted and never nil.
type DiffResult struct {
	Added   []string `json:"added"`
	Common  []string `json:"common"`
	Removed []string `json:"removed"`
}

// HasDrift reports whether any path was added or removed.
func (d DiffResult) HasDrift() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}
