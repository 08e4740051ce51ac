package ports

import "github.com/Absolentia/aif-core/internal/domain"

// SchemaStore persists inferred schemas so they can be diffed later.
type SchemaStore interface {
	SaveSchema(a domain.SchemaArtifact) (id string, err error)
	LoadSchema(ref string) (string, error)
	ListSchemas() ([]domain.SchemaRef, error)
}
