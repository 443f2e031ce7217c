package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/logger"
	"github.com/redis/go-redis/v9"
)

var _ domain.SnapshotRepository = (*CachedSnapshotRepository)(nil)

const (
	DefaultCacheKey = "kanso:snapshot"
	cacheTTL        = 30 * time.Minute
)

// CachedSnapshotRepository serves loads from Redis and falls back to next on a miss.
// Redis failures are logged and never fail the call.
type CachedSnapshotRepository struct {
	next  domain.SnapshotRepository
	cache *redis.Client
	key   string
}

func NewCachedSnapshotRepository(next domain.SnapshotRepository, cache *redis.Client, key string) *CachedSnapshotRepository {
	if key == "" {
		key = DefaultCacheKey
	}
	return &CachedSnapshotRepository{
		next:  next,
		cache: cache,
		key:   key,
	}
}

func (r *CachedSnapshotRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, r.key).Err(); err != nil {
		logger.Warn("Cache invalidation failed", "key", r.key, "err", err)
	}
}

func (r *CachedSnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	val, err := r.cache.Get(ctx, r.key).Bytes()
	if err == nil {
		var snap domain.Snapshot
		if err := json.Unmarshal(val, &snap); err == nil {
			return &snap, nil
		}

		logger.Warn("Corrupted cached snapshot, cleaning up key", "key", r.key)
		r.invalidate(ctx)
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("Redis read error", "err", err)
	}

	snap, err := r.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snap); err == nil {
		if setErr := r.cache.Set(ctx, r.key, data, cacheTTL).Err(); setErr != nil {
			logger.Warn("Redis set error", "err", setErr)
		}
	}

	return snap, nil
}

func (r *CachedSnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	if err := r.next.Save(ctx, snap); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}
