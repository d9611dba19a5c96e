package memory

import (
	"context"
	"sync"

	"github.com/aretw0/kosuke/pkg/domain"
)

// Store implements ports.ProgressStore in memory.
// Safe for concurrent use.
type Store struct {
	data *domain.SetupProgress
	mu   sync.RWMutex
}

// NewStore creates a new, empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Save persists a deep copy of the progress.
func (s *Store) Save(ctx context.Context, progress *domain.SetupProgress) error {
	copied := progress.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = copied
	return nil
}

// Load returns a copy so callers can't mutate store state through the pointer.
func (s *Store) Load(ctx context.Context) (*domain.SetupProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, domain.ErrProgressNotFound
	}
	return s.data.Clone(), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
