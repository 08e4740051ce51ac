package ports

import "github.com/Absolentia/aif-core/internal/domain"

// WorkspaceInitializer lays out a new workspace on disk.
type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec) (domain.InitResult, error)
}
