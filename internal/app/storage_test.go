package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-routines/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-routines/internal/config"
	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
)

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Memory driver", func(t *testing.T) {
		s, err := OpenStorage(ctx, config.Config{StorageDriver: config.DriverMemory})
		require.NoError(t, err)
		defer s.Close()

		assert.IsType(t, &repository.InMemorySnapshotRepository{}, s.Repo)
		assert.Nil(t, s.DB)
		assert.Nil(t, s.Redis)
	})

	t.Run("Success: JSON driver writes into the data directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")
		s, err := OpenStorage(ctx, config.Config{StorageDriver: config.DriverJSON, DataDir: dir})
		require.NoError(t, err)
		defer s.Close()

		fileRepo, ok := s.Repo.(*repository.FileSnapshotRepository)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "kanso.json"), fileRepo.Path())

		_, err = s.Repo.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Success: SQLite driver migrates the schema", func(t *testing.T) {
		s, err := OpenStorage(ctx, config.Config{StorageDriver: config.DriverSQLite, DataDir: t.TempDir()})
		require.NoError(t, err)
		defer s.Close()

		require.NotNil(t, s.DB)
		assert.IsType(t, &repository.SQLSnapshotRepository{}, s.Repo)

		snap := &domain.Snapshot{Version: domain.SnapshotVersion, Routines: []domain.Routine{}, Habits: []domain.Habit{}}
		require.NoError(t, s.Repo.Save(ctx, snap))
		_, err = s.Repo.Load(ctx)
		assert.NoError(t, err)
	})

	t.Run("Error: Postgres without a URL", func(t *testing.T) {
		_, err := OpenStorage(ctx, config.Config{StorageDriver: config.DriverPostgres})
		assert.Error(t, err)
	})

	t.Run("Error: Unknown driver", func(t *testing.T) {
		_, err := OpenStorage(ctx, config.Config{StorageDriver: "bolt"})
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}
