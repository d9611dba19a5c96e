/*
Package runner drives the onboarding flow.

It is the bridge between the ordered step registry and the outside world: the
Sequencer executes steps in order and persists progress after each one, the
ProgressManager wraps a ports.ProgressStore with fail-open semantics, and the
TextPrompter implements operator I/O on a terminal.

# Key Components

  - Sequencer: Prepare (load, offer resume, choose the project slug) then Run (steps 1..N, then output).
  - ProgressManager: persistence that logs failures instead of propagating them.
  - TextPrompter: line-oriented prompts with a context-aware input pump.

# Usage

	reg, _ := registry.NewRegistry(steps.Default(prompter, renderer, writer)...)
	seq := runner.NewSequencer(reg, store, prompter,
		runner.WithLogger(logger),
		runner.WithOutput(renderer, writer),
	)

	progress, err := seq.Prepare(ctx)
	if err == nil {
		err = seq.Run(ctx, progress)
	}
*/
package runner
