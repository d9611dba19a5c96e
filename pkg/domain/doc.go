/*
Package domain contains the core domain model of the kosuke onboarding wizard.

It defines the persisted wizard progress, the step identifiers of the
onboarding flow, step outcomes and the sentinel errors shared across the
module. This package is kept pure and free of external dependencies like I/O
or persistence, following Hexagonal Architecture principles.

# Key Entities

  - SetupProgress: the durable record of a wizard run (current step, project slug, credentials).
  - ServiceConfig: value object describing one provisioned service.
  - StepID: stable identifier of an onboarding step.
  - StepOutcome: result of a step (Completed or Aborted).
  - Document: a rendered output artifact (an environment file).
*/
package domain
