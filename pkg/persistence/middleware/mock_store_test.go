package middleware_test

import (
	"context"

	"github.com/aretw0/kosuke/pkg/domain"
)

// MockStore is a single-slot store for testing middleware. It keeps the pointer it was given.
type MockStore struct {
	data *domain.SetupProgress
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (s *MockStore) Save(ctx context.Context, progress *domain.SetupProgress) error {
	s.data = progress
	return nil
}

func (s *MockStore) Load(ctx context.Context) (*domain.SetupProgress, error) {
	if s.data == nil {
		return nil, domain.ErrProgressNotFound
	}
	return s.data, nil
}

func (s *MockStore) Delete(ctx context.Context) error {
	s.data = nil
	return nil
}
