package ports

import (
	"context"

	"github.com/aretw0/kosuke/pkg/domain"
)

// StepHandler is one unit of the onboarding flow.
//
// Execute receives a private copy of the progress. Changes are committed by the
// sequencer only when the outcome is Completed; anything written before an
// abort or error is discarded.
type StepHandler interface {
	ID() domain.StepID
	Title() string
	Execute(ctx context.Context, progress *domain.SetupProgress) (domain.StepOutcome, error)
}

// Prerequisites is implemented by steps that read state owned by earlier steps.
type Prerequisites interface {
	Requires() []domain.StepID
}
