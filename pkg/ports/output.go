package ports

import (
	"context"

	"github.com/aretw0/kosuke/pkg/domain"
)

// Renderer turns the final progress into output documents.
// Implementations read only APIKeys and ServiceConfigs and never mutate the progress.
type Renderer interface {
	Render(progress *domain.SetupProgress) ([]domain.Document, error)
}

// DocumentWriter persists rendered documents.
type DocumentWriter interface {
	Write(ctx context.Context, docs ...domain.Document) error
}
