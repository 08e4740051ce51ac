package domain

// Config represents the aif workspace configuration loaded from aif.yaml.
type Config struct {
	Paths  PathsConfig
	Infer  InferConfig
	Store  StoreConfig
	Policy PolicyConfig
}

type PathsConfig struct {
	SamplesDir string
	SchemasDir string
	SetsDir    string
}

type InferConfig struct {
	Workers int
	Root    string
}

type StoreConfig struct {
	Index bool
}

type PolicyConfig struct {
	File  string
	GoMod string
}

// DefaultConfig provides sane defaults if aif.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			SamplesDir: "samples",
			SchemasDir: "schemas",
			SetsDir:    "sets",
		},
		Infer: InferConfig{
			Workers: 4,
		},
		Store: StoreConfig{Index: true},
		Policy: PolicyConfig{
			File:  "aif-policy.yaml",
			GoMod: "go.mod",
		},
	}
}

// WorkspaceSpec describes where a workspace should be created.
type WorkspaceSpec struct {
	Root string

	// Force overwrites template files that already exist.
	Force bool
}

// InitResult lists template files relative to the workspace root.
type InitResult struct {
	Root    string
	Written []string
	Kept    []string

	// GitignoreUpdated is true when entries were appended to .gitignore.
	GitignoreUpdated bool
}
