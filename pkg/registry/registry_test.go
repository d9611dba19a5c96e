package registry_test

import (
	"context"
	"testing"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStep struct{ id domain.StepID }

func (s stubStep) ID() domain.StepID { return s.id }
func (s stubStep) Title() string     { return string(s.id) }
func (s stubStep) Execute(context.Context, *domain.SetupProgress) (domain.StepOutcome, error) {
	return domain.Completed(), nil
}

func TestRegistry_Order(t *testing.T) {
	r, err := registry.NewRegistry(stubStep{"a"}, stubStep{"b"}, stubStep{"c"})
	require.NoError(t, err)

	assert.Equal(t, 3, r.Len())

	s, err := r.At(2)
	require.NoError(t, err)
	assert.Equal(t, domain.StepID("b"), s.ID())

	pos, ok := r.Position("c")
	assert.True(t, ok)
	assert.Equal(t, 3, pos)

	_, ok = r.Position("missing")
	assert.False(t, ok)

	_, err = r.At(0)
	assert.Error(t, err)
	_, err = r.At(4)
	assert.Error(t, err)

	ids := []domain.StepID{}
	for _, s := range r.Steps() {
		ids = append(ids, s.ID())
	}
	assert.Equal(t, []domain.StepID{"a", "b", "c"}, ids)
}

func TestRegistry_Duplicate(t *testing.T) {
	_, err := registry.NewRegistry(stubStep{"a"}, stubStep{"a"})
	assert.Error(t, err)
}
