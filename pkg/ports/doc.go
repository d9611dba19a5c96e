/*
Package ports defines the driven ports (interfaces) of the kosuke wizard.

These interfaces decouple the step sequencer from storage backends, operator
I/O and output rendering, so the core can be exercised with in-memory fakes.

# Key Interfaces

  - ProgressStore: persists and loads the single wizard progress record.
  - StepHandler: one onboarding step.
  - Prompter: operator I/O used by steps and the sequencer.
  - Renderer / DocumentWriter: turn the final progress into environment documents.
*/
package ports
