/*
Package kosuke is a resumable onboarding wizard. It walks an operator through
provisioning the SaaS accounts a new project needs and collects the resulting
credentials into environment files.

Each step prints instructions, reads back pasted values and validates them.
Progress is persisted after every step, so an interrupted run (Ctrl+C, a
closed terminal, an explicit "abort") resumes at the first unfinished step on
the next invocation.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/kosuke"
	)

	func main() {
		wizard, err := kosuke.New()
		if err != nil {
			log.Fatal(err)
		}
		if _, err := wizard.Run(context.Background()); err != nil {
			log.Fatal(err)
		}
	}

The defaults read from stdin, write to stdout, persist progress in
.kosuke-setup-progress.json and write .env and .env.prod to the working
directory. Every piece can be replaced with an Option: a different
ports.ProgressStore (memory, redis, an encrypted chain), a scripted
ports.Prompter for tests, or a custom step list.

# Packages

  - pkg/domain: the persisted SetupProgress record and lifecycle events.
  - pkg/runner: the Sequencer, the fail-open ProgressManager and TextPrompter.
  - pkg/steps: the reference flow.
  - pkg/envfile: rendering and writing the environment documents.
  - pkg/engine and pkg/adapters/http: the example arithmetic and currency service.
*/
package kosuke
