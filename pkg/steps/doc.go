/*
Package steps implements the eight onboarding steps of the kosuke wizard.

Each step prints instructions for a manual dashboard task, then reads back the
values the operator pastes, validating them with the predicates of package
validate and re-prompting until they pass. Steps write only the keys they own.

Typing "abort" (or "quit"/"exit") at any prompt ends the step with an Aborted
outcome; the sequencer persists progress and the next run resumes at the same step.
*/
package steps
