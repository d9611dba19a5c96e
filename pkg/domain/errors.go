package domain

import (
	"errors"
	"fmt"
)

// ErrProgressNotFound is returned by a store when no progress record exists.
var ErrProgressNotFound = errors.New("progress not found")

// ErrInvalidProgress is returned when a persisted record cannot be decoded or fails validation.
var ErrInvalidProgress = errors.New("invalid progress")

// ErrPrerequisite is returned when a step runs before a step it depends on has completed.
var ErrPrerequisite = errors.New("prerequisite step not completed")

// ErrAborted is the sentinel wrapped by AbortError.
var ErrAborted = errors.New("setup aborted")

// ErrInterrupted is returned when the run is cancelled (signal) or the operator input is closed.
var ErrInterrupted = errors.New("setup interrupted")

// AbortError reports the step that aborted the run and why.
type AbortError struct {
	Step   StepID
	Reason string
}

func (e *AbortError) Error() string {
	if e.Step == "" {
		return "setup aborted: " + e.Reason
	}
	return fmt.Sprintf("step %q aborted: %s", e.Step, e.Reason)
}

func (e *AbortError) Unwrap() error {
	return ErrAborted
}

// PrerequisiteError names the step that should have completed first.
type PrerequisiteError struct {
	Step    StepID
	Missing StepID
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("step %q requires %q to complete first", e.Step, e.Missing)
}

func (e *PrerequisiteError) Unwrap() error {
	return ErrPrerequisite
}
