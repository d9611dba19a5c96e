package ports

import (
	"context"

	"github.com/aretw0/kosuke/pkg/domain"
)

// ProgressStore defines the interface for persisting wizard progress.
// There is exactly one record per store; this is what makes "Stop & Resume" work.
type ProgressStore interface {
	// Save overwrites the persisted record.
	Save(ctx context.Context, progress *domain.SetupProgress) error

	// Load retrieves the persisted record.
	// Returns domain.ErrProgressNotFound if there is none and an error wrapping
	// domain.ErrInvalidProgress if it cannot be decoded.
	Load(ctx context.Context) (*domain.SetupProgress, error)

	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context) error
}
