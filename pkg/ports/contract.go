package ports

import (
	"context"
	"testing"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProgressStoreContract runs a suite of tests to verify that a ProgressStore
// implementation adheres to the interface contract. The store must start empty.
func RunProgressStoreContract(t *testing.T, store ProgressStore) {
	ctx := context.Background()

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrProgressNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		p := domain.NewProgress()
		p.ProjectName = "contract-app"
		p.CurrentStep = 3
		p.CompletedServices = []domain.StepID{domain.StepGitHub, domain.StepVercel}
		p.APIKeys[domain.KeyGitHubRepoURL] = "https://github.com/alice/contract-app"
		p.SetService(domain.ServiceVercel, domain.ServiceConfig{
			Name:        "vercel",
			URL:         "https://vercel.com/alice/contract-app",
			Credentials: map[string]string{domain.CredProjectURL: "https://contract-app.vercel.app"},
			WebhookURLs: []string{"https://contract-app.vercel.app/api/hook"},
		})

		require.NoError(t, store.Save(ctx, p))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, p, loaded)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		p := domain.NewProgress()
		p.ProjectName = "second"
		p.CurrentStep = 2
		p.CompletedServices = []domain.StepID{domain.StepGitHub}
		require.NoError(t, store.Save(ctx, p))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", loaded.ProjectName)
		assert.Equal(t, 2, loaded.CurrentStep)
		assert.Empty(t, loaded.ServiceConfigs)
	})

	t.Run("Loaded Copy Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		loaded.APIKeys["mutated"] = "yes"

		again, err := store.Load(ctx)
		require.NoError(t, err)
		assert.NotContains(t, again.APIKeys, "mutated")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx))

		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrProgressNotFound, "Load after Delete should return ErrProgressNotFound")

		assert.NoError(t, store.Delete(ctx), "Delete of an absent record is not an error")
	})
}
