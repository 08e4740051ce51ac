package usecase

import (
	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
	"github.com/Absolentia/aif-core/internal/usecase/diff"
)

type DiffSchemas struct {
	store  ports.SchemaStore
	engine *diff.Engine
}

func NewDiffSchemas(store ports.SchemaStore, engine *diff.Engine) *DiffSchemas {
	if engine == nil {
		engine = diff.DefaultEngine
	}
	return &DiffSchemas{store: store, engine: engine}
}

// Execute resolves both refs through the store (id, file name or path) and compares them.
func (uc *DiffSchemas) Execute(refA, refB string) (domain.DiffResult, error) {
	a, err := uc.store.LoadSchema(refA)
	if err != nil {
		return domain.DiffResult{}, err
	}
	b, err := uc.store.LoadSchema(refB)
	if err != nil {
		return domain.DiffResult{}, err
	}
	return uc.engine.Compare(a, b)
}
