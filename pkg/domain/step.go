package domain

// StepID identifies an onboarding step. It is the value recorded in
// SetupProgress.CompletedServices.
type StepID string

const (
	StepGitHub    StepID = "github"
	StepVercel    StepID = "vercel"
	StepNeon      StepID = "neon"
	StepPolar     StepID = "polar"
	StepClerk     StepID = "clerk"
	StepResend    StepID = "resend"
	StepSentry    StepID = "sentry"
	StepVercelEnv StepID = "vercel-env"
)

// OutcomeKind discriminates StepOutcome.
type OutcomeKind string

const (
	OutcomeCompleted OutcomeKind = "completed"
	OutcomeAborted   OutcomeKind = "aborted"
)

// StepOutcome is the result of executing a step.
type StepOutcome struct {
	Kind   OutcomeKind
	Reason string
}

// Completed reports that the step finished and its state should be committed.
func Completed() StepOutcome {
	return StepOutcome{Kind: OutcomeCompleted}
}

// Aborted reports that the step cannot proceed; the run halts without advancing.
func Aborted(reason string) StepOutcome {
	return StepOutcome{Kind: OutcomeAborted, Reason: reason}
}

// IsCompleted reports whether the outcome is Completed.
func (o StepOutcome) IsCompleted() bool {
	return o.Kind == OutcomeCompleted
}
