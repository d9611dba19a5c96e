package registry

import (
	"fmt"
	"sync"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
)

// Registry holds the ordered onboarding steps. Position n (1-based) is the
// step executed when SetupProgress.CurrentStep == n.
type Registry struct {
	mu    sync.RWMutex
	steps []ports.StepHandler
	index map[domain.StepID]int
}

// NewRegistry creates a registry from the given steps, in order.
func NewRegistry(steps ...ports.StepHandler) (*Registry, error) {
	r := &Registry{
		index: make(map[domain.StepID]int),
	}
	for _, s := range steps {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a step. Step IDs must be unique.
func (r *Registry) Register(step ports.StepHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.index[step.ID()]; dup {
		return fmt.Errorf("step already registered: %s", step.ID())
	}
	r.steps = append(r.steps, step)
	r.index[step.ID()] = len(r.steps)
	return nil
}

// Len returns the number of registered steps.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.steps)
}

// At returns the step at the 1-based position.
func (r *Registry) At(position int) (ports.StepHandler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if position < 1 || position > len(r.steps) {
		return nil, fmt.Errorf("no step at position %d", position)
	}
	return r.steps[position-1], nil
}

// Position returns the 1-based position of a step ID.
func (r *Registry) Position(id domain.StepID) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[id]
	return pos, ok
}

// Steps returns the registered steps in order.
func (r *Registry) Steps() []ports.StepHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ports.StepHandler, len(r.steps))
	copy(out, r.steps)
	return out
}
