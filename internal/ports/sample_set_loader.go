package ports

import "github.com/Absolentia/aif-core/internal/domain"

// SampleSetLoader loads named sample sets.
type SampleSetLoader interface {
	LoadSampleSet(path string) (domain.SampleSet, error)
	ListSampleSets(root string) ([]domain.SampleSetRef, error)
}
