package repository

import (
	"context"
	"testing"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemorySnapshotRepository()

	t.Run("Error: Empty repository", func(t *testing.T) {
		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Success: Stored copy is isolated", func(t *testing.T) {
		snap := sampleSnapshot()
		require.NoError(t, repo.Save(ctx, snap))

		snap.Routines[0].Title = "mutated"

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Morning Workout", got.Routines[0].Title)

		got.Habits[0].Title = "mutated"
		again, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Gym", again.Habits[0].Title)
		assert.Equal(t, 1, repo.Saves())
	})
}
