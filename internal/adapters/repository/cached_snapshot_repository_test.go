package repository

import (
	"context"
	"os"
	"testing"

	"github.com/comitanigiacomo/kanso-routines/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestCachedSnapshotRepository_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")
	ctx := context.Background()

	rdb, err := cache.NewRedisClient(ctx, cache.Options{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       1,
	})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	const key = "kanso:test:snapshot"
	require.NoError(t, rdb.Del(ctx, key).Err())

	next := NewInMemorySnapshotRepository()
	repo := NewCachedSnapshotRepository(next, rdb, key)

	t.Run("Error: Miss on an empty backend is not cached", func(t *testing.T) {
		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

		exists, err := rdb.Exists(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)
	})

	t.Run("Success: Load populates the cache", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, sampleSnapshot()))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleSnapshot(), got)

		exists, err := rdb.Exists(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)

		cached, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleSnapshot(), cached)
	})

	t.Run("Success: Save invalidates", func(t *testing.T) {
		smaller := sampleSnapshot()
		smaller.Habits = nil
		require.NoError(t, repo.Save(ctx, smaller))

		exists, err := rdb.Exists(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got.Habits)
	})

	t.Run("Success: Corrupted entry falls back to the backend", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, key, "{broken", 0).Err())

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got.Routines, 2)
	})
}
