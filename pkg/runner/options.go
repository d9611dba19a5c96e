package runner

import (
	"log/slog"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
)

// DefaultInputBufferSize is the default number of lines to buffer for the input pump.
const DefaultInputBufferSize = 64

// Option defines a functional option for configuring the Sequencer.
type Option func(*Sequencer)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// WithHooks registers lifecycle hooks. Repeated calls merge hooks in order.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Sequencer) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithOutput configures how documents are produced once every step is done.
// Without it the sequencer clears progress and emits nothing.
func WithOutput(renderer ports.Renderer, writer ports.DocumentWriter) Option {
	return func(s *Sequencer) {
		s.renderer = renderer
		s.writer = writer
	}
}

// WithRunID tags every emitted event with id.
func WithRunID(id string) Option {
	return func(s *Sequencer) {
		s.runID = id
	}
}
