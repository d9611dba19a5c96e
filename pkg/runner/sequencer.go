package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/identity"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/registry"
	"github.com/aretw0/kosuke/pkg/validate"
)

const nameFormatHelp = `Your project name will be used for:

- GitHub repository name
- Vercel project name
- Database name
- Various service configurations

Format: lowercase, hyphens only (e.g. ` + "`my-awesome-app`" + `)

To use a reserved word such as ` + "`exit`" + ` as the name, type it in quotes: ` + "`\"exit\"`" + `.`

// Sequencer executes the registered steps in order, persisting progress
// after every step so that an interrupted run can resume where it stopped.
type Sequencer struct {
	registry *registry.Registry
	progress *ProgressManager
	prompter ports.Prompter
	renderer ports.Renderer
	writer   ports.DocumentWriter
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	runID    string
}

// NewSequencer creates a sequencer over reg. The number of steps is fixed at
// construction.
func NewSequencer(reg *registry.Registry, store ports.ProgressStore, pr ports.Prompter, opts ...Option) *Sequencer {
	s := &Sequencer{
		registry: reg,
		prompter: pr,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.progress = NewProgressManager(store, reg.Len(), s.logger)
	if s.hooks.OnPersistError != nil {
		s.progress.OnError = func(ctx context.Context, e *domain.PersistEvent) {
			e.RunID = s.runID
			s.hooks.OnPersistError(ctx, e)
		}
	}
	return s
}

// TotalSteps returns the number of steps in the flow.
func (s *Sequencer) TotalSteps() int {
	return s.registry.Len()
}

// Progress exposes the fail-open persistence used by the sequencer.
func (s *Sequencer) Progress() *ProgressManager {
	return s.progress
}

// Prepare loads saved progress and offers to resume it, then makes sure the
// record carries a project name. The returned record is already persisted.
func (s *Sequencer) Prepare(ctx context.Context) (*domain.SetupProgress, error) {
	p, ok := s.progress.Load(ctx)

	if ok && p.CurrentStep > 1 {
		resume, err := s.offerResume(ctx, p)
		if err != nil {
			return nil, s.interrupted(err)
		}
		if resume {
			s.prompter.Notify(ports.NoticeInfo, fmt.Sprintf("Resuming from Step %d", p.CurrentStep))
		} else {
			s.prompter.Notify(ports.NoticeInfo, "Starting fresh setup...")
			p = nil
		}
	} else {
		p = nil
	}

	if p == nil {
		s.progress.Clear(ctx)
		p = domain.NewProgress()
	}

	if p.ProjectName == "" {
		name, err := s.askProjectName(ctx)
		if err != nil {
			return nil, s.interrupted(err)
		}
		p.ProjectName = name
		s.progress.Save(ctx, p)
	}

	return p, nil
}

func (s *Sequencer) offerResume(ctx context.Context, p *domain.SetupProgress) (bool, error) {
	s.prompter.Notify(ports.NoticeWarning, fmt.Sprintf("Found previous setup in progress (Step %d)", p.CurrentStep))
	s.prompter.Notify(ports.NoticeInfo, "Project: "+p.ProjectName)
	if len(p.CompletedServices) > 0 {
		done := make([]string, len(p.CompletedServices))
		for i, id := range p.CompletedServices {
			done[i] = string(id)
		}
		s.prompter.Notify(ports.NoticeInfo, "Completed: "+strings.Join(done, ", "))
	}

	for {
		answer, err := s.prompter.Ask(ctx, "Resume previous setup? (y/n):")
		if err != nil {
			return false, err
		}
		yes, err := validate.YesNo(answer)
		if err != nil {
			s.prompter.Notify(ports.NoticeError, "Please enter 'y' or 'n'")
			continue
		}
		return yes, nil
	}
}

func (s *Sequencer) askProjectName(ctx context.Context) (string, error) {
	s.prompter.Notify(ports.NoticeInfo, "Let's start by choosing a project name!")
	s.prompter.Show(nameFormatHelp)

	for {
		raw, err := s.prompter.Ask(ctx, "Enter your project name (kebab-case):")
		if err != nil {
			return "", err
		}
		name, ok := identity.Normalize(raw)
		if !ok {
			s.prompter.Notify(ports.NoticeError, "Invalid project name. Use letters, numbers and hyphens.")
			continue
		}
		s.prompter.Notify(ports.NoticeSuccess, "Project name: "+name)
		return name, nil
	}
}

// Run executes the remaining steps of p and, once every step is done,
// renders and writes the output documents and clears the persisted record.
// p is updated in place.
func (s *Sequencer) Run(ctx context.Context, p *domain.SetupProgress) error {
	total := s.registry.Len()

	for p.CurrentStep <= total {
		pos := p.CurrentStep
		step, err := s.registry.At(pos)
		if err != nil {
			return err
		}
		id := step.ID()

		if err := checkPrerequisites(step, p); err != nil {
			s.logger.Error("prerequisite not met", "step", id, "err", err)
			return err
		}

		s.emitStep(ctx, s.hooks.OnStepEnter, domain.EventStepEnter, id, pos, "")
		s.prompter.Show(fmt.Sprintf("## Step %d/%d: %s", pos, total, step.Title()))

		work := p.Clone()
		outcome, err := step.Execute(ctx, work)
		if err != nil {
			s.progress.Save(ctx, p)
			return s.stepFailed(id, err)
		}

		if !outcome.IsCompleted() {
			s.progress.Save(ctx, p)
			s.emitStep(ctx, s.hooks.OnStepAbort, domain.EventStepAbort, id, pos, outcome.Reason)
			return &domain.AbortError{Step: id, Reason: outcome.Reason}
		}

		s.commit(p, work, id)
		s.progress.Save(ctx, p)
		s.emitStep(ctx, s.hooks.OnStepComplete, domain.EventStepComplete, id, pos, "")
	}

	return s.finish(ctx, p)
}

// commit folds a step's working copy into p. Fields owned by the sequencer
// are kept from p.
func (s *Sequencer) commit(p, work *domain.SetupProgress, id domain.StepID) {
	work.CurrentStep = p.CurrentStep
	work.ProjectName = p.ProjectName
	work.CompletedServices = p.CompletedServices
	*p = *work

	p.MarkCompleted(id)
	p.CurrentStep++
}

func (s *Sequencer) finish(ctx context.Context, p *domain.SetupProgress) error {
	if s.renderer != nil && s.writer != nil {
		docs, err := s.renderer.Render(p)
		if err != nil {
			return fmt.Errorf("render documents: %w", err)
		}
		if err := s.writer.Write(ctx, docs...); err != nil {
			s.logger.Error("failed to write documents", "err", err)
			return fmt.Errorf("write documents: %w", err)
		}
	}

	s.progress.Clear(ctx)
	return nil
}

func checkPrerequisites(step ports.StepHandler, p *domain.SetupProgress) error {
	req, ok := step.(ports.Prerequisites)
	if !ok {
		return nil
	}
	for _, dep := range req.Requires() {
		if !p.IsCompleted(dep) {
			return &domain.PrerequisiteError{Step: step.ID(), Missing: dep}
		}
	}
	return nil
}

func (s *Sequencer) stepFailed(id domain.StepID, err error) error {
	if isInterruption(err) {
		s.logger.Debug("step interrupted", "step", id, "err", err)
		return fmt.Errorf("%w: step %q: %w", domain.ErrInterrupted, id, err)
	}
	s.logger.Error("step failed", "step", id, "err", err)
	return fmt.Errorf("step %q: %w", id, err)
}

// interrupted maps prompt failures outside of a step.
func (s *Sequencer) interrupted(err error) error {
	if errors.Is(err, ports.ErrUserAborted) {
		return &domain.AbortError{Reason: "operator aborted"}
	}
	if isInterruption(err) {
		return fmt.Errorf("%w: %w", domain.ErrInterrupted, err)
	}
	return err
}

func isInterruption(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ports.ErrInputClosed)
}

func (s *Sequencer) emitStep(ctx context.Context, hook func(context.Context, *domain.StepEvent), typ domain.EventType, id domain.StepID, pos int, reason string) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ, RunID: s.runID},
		StepID:    id,
		Position:  pos,
		Reason:    reason,
	})
}
