package ports

import (
	"context"

	"github.com/Absolentia/aif-core/internal/domain"
)

// SampleLoader reads sample documents from a source (e.g., filesystem).
type SampleLoader interface {
	LoadSamples(ctx context.Context, path string) ([]domain.Sample, error)
	ListSamples(root string) ([]string, error)
}

// SampleFetcher retrieves a single sample from a remote location.
type SampleFetcher interface {
	Fetch(ctx context.Context, url string) (domain.Sample, error)
}
