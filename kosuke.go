package kosuke

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/kosuke/internal/adapters/file"
	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/envfile"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/registry"
	"github.com/aretw0/kosuke/pkg/runner"
	"github.com/aretw0/kosuke/pkg/steps"
	"github.com/google/uuid"
)

// Wizard is the high-level entry point for the library.
// It wires the step registry, the sequencer and the output documents.
type Wizard struct {
	store    ports.ProgressStore
	prompter ports.Prompter
	renderer *envfile.Renderer
	writer   ports.DocumentWriter
	steps    []ports.StepHandler
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	runID    string

	sequencer *runner.Sequencer
}

// Option defines a functional option for configuring the Wizard.
type Option func(*Wizard)

// WithStore sets where progress is persisted. Defaults to the JSON file store.
func WithStore(store ports.ProgressStore) Option {
	return func(w *Wizard) {
		w.store = store
	}
}

// WithPrompter sets the operator I/O. Defaults to a TextPrompter on stdin/stdout.
func WithPrompter(pr ports.Prompter) Option {
	return func(w *Wizard) {
		w.prompter = pr
	}
}

// WithRenderer sets the environment document renderer.
func WithRenderer(r *envfile.Renderer) Option {
	return func(w *Wizard) {
		w.renderer = r
	}
}

// WithWriter sets where rendered documents go. Defaults to the working directory.
func WithWriter(writer ports.DocumentWriter) Option {
	return func(w *Wizard) {
		w.writer = writer
	}
}

// WithSteps replaces the reference flow.
func WithSteps(handlers ...ports.StepHandler) Option {
	return func(w *Wizard) {
		w.steps = handlers
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Wizard) {
		w.hooks = w.hooks.Merge(hooks)
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(w *Wizard) {
		w.runID = id
	}
}

// New assembles a Wizard. Without options it runs the reference flow against
// the terminal.
func New(opts ...Option) (*Wizard, error) {
	w := &Wizard{}
	for _, opt := range opts {
		opt(w)
	}

	if w.store == nil {
		w.store = file.New(file.DefaultPath)
	}
	if w.prompter == nil {
		w.prompter = runner.NewTextPrompter(os.Stdin, os.Stdout)
	}
	if w.renderer == nil {
		w.renderer = envfile.NewRenderer()
	}
	if w.writer == nil {
		w.writer = envfile.NewFileWriter(".")
	}
	if w.runID == "" {
		w.runID = uuid.NewString()
	}
	if len(w.steps) == 0 {
		w.steps = steps.Default(w.prompter, w.renderer, w.writer)
	}

	reg, err := registry.NewRegistry(w.steps...)
	if err != nil {
		return nil, fmt.Errorf("failed to build step registry: %w", err)
	}

	seqOpts := []runner.Option{
		runner.WithHooks(w.hooks),
		runner.WithOutput(w.renderer, w.writer),
		runner.WithRunID(w.runID),
	}
	if w.logger != nil {
		seqOpts = append(seqOpts, runner.WithLogger(w.logger.With("run_id", w.runID)))
	}
	w.sequencer = runner.NewSequencer(reg, w.store, w.prompter, seqOpts...)

	return w, nil
}

// RunID identifies this run in logs and lifecycle events.
func (w *Wizard) RunID() string {
	return w.runID
}

// TotalSteps is the number of steps in the flow.
func (w *Wizard) TotalSteps() int {
	return w.sequencer.TotalSteps()
}

// Run resumes or starts the flow and drives it to completion. The returned
// progress is the last state the sequencer held, which is nil only when the
// run ended before a project was established.
func (w *Wizard) Run(ctx context.Context) (*domain.SetupProgress, error) {
	p, err := w.sequencer.Prepare(ctx)
	if err != nil {
		return p, err
	}
	return p, w.sequencer.Run(ctx, p)
}
