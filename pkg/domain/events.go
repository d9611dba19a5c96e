package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter    EventType = "step_enter"
	EventStepComplete EventType = "step_complete"
	EventStepAbort    EventType = "step_abort"
	EventPersistError EventType = "persist_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
}

// StepEvent represents entry into or exit from a step.
type StepEvent struct {
	EventBase
	StepID   StepID `json:"step_id"`
	Position int    `json:"position"`
	Reason   string `json:"reason,omitempty"`
}

// PersistEvent reports a failed store operation ("save", "load", "clear").
type PersistEvent struct {
	EventBase
	Op  string `json:"op"`
	Err error  `json:"-"`
}

// LifecycleHooks defines callbacks for wizard observability.
type LifecycleHooks struct {
	OnStepEnter    func(context.Context, *StepEvent)
	OnStepComplete func(context.Context, *StepEvent)
	OnStepAbort    func(context.Context, *StepEvent)
	OnPersistError func(context.Context, *PersistEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStepEnter:    chainStep(h.OnStepEnter, other.OnStepEnter),
		OnStepComplete: chainStep(h.OnStepComplete, other.OnStepComplete),
		OnStepAbort:    chainStep(h.OnStepAbort, other.OnStepAbort),
		OnPersistError: chainPersist(h.OnPersistError, other.OnPersistError),
	}
}

func chainStep(a, b func(context.Context, *StepEvent)) func(context.Context, *StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainPersist(a, b func(context.Context, *PersistEvent)) func(context.Context, *PersistEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *PersistEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
