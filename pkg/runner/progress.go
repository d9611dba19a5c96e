package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
)

// ProgressManager wraps a ProgressStore with fail-open semantics: persistence
// problems are logged and reported to OnError but never reach the caller, so
// the wizard keeps going in memory when the store is unavailable.
type ProgressManager struct {
	Store      ports.ProgressStore
	Logger     *slog.Logger
	TotalSteps int
	OnError    func(context.Context, *domain.PersistEvent)
}

// NewProgressManager creates a manager for a flow of totalSteps steps.
func NewProgressManager(store ports.ProgressStore, totalSteps int, logger *slog.Logger) *ProgressManager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ProgressManager{
		Store:      store,
		Logger:     logger,
		TotalSteps: totalSteps,
	}
}

// Load returns the persisted record, or false when it is absent, unreadable,
// malformed or structurally invalid.
func (pm *ProgressManager) Load(ctx context.Context) (*domain.SetupProgress, bool) {
	p, err := pm.Store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrProgressNotFound) {
			pm.Logger.Debug("no saved progress")
			return nil, false
		}
		pm.fail(ctx, "load", err)
		return nil, false
	}

	if err := p.Validate(pm.TotalSteps); err != nil {
		pm.fail(ctx, "load", err)
		return nil, false
	}

	pm.Logger.Debug("progress loaded", "current_step", p.CurrentStep, "project", p.ProjectName)
	return p, true
}

// Save persists the record. Cancellation of ctx does not prevent the write:
// an interrupted run must still flush its progress.
func (pm *ProgressManager) Save(ctx context.Context, p *domain.SetupProgress) {
	if err := pm.Store.Save(context.WithoutCancel(ctx), p); err != nil {
		pm.fail(ctx, "save", err)
		return
	}
	pm.Logger.Debug("progress saved", "current_step", p.CurrentStep)
}

// Clear removes the record.
func (pm *ProgressManager) Clear(ctx context.Context) {
	if err := pm.Store.Delete(context.WithoutCancel(ctx)); err != nil {
		pm.fail(ctx, "clear", err)
		return
	}
	pm.Logger.Debug("progress cleared")
}

func (pm *ProgressManager) fail(ctx context.Context, op string, err error) {
	pm.Logger.Warn("progress store failure", "op", op, "err", err)
	if pm.OnError != nil {
		pm.OnError(ctx, &domain.PersistEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPersistError},
			Op:        op,
			Err:       err,
		})
	}
}
