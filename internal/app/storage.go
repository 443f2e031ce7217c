package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-routines/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-routines/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-routines/internal/config"
	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/logger"
)

var ErrUnknownDriver = errors.New("unknown storage driver (must be memory, json, sqlite or postgres)")

const (
	snapshotFileName = "kanso.json"
	databaseFileName = "kanso.db"
)

// Storage is the persistence stack selected by the configuration.
// DB and Redis are nil when the driver does not use them.
type Storage struct {
	Repo  domain.SnapshotRepository
	DB    *sqlx.DB
	Redis *redis.Client
}

// OpenStorage builds the snapshot repository for cfg.StorageDriver, migrating SQL
// schemas and wrapping the repository with the Redis cache when one is configured.
func OpenStorage(ctx context.Context, cfg config.Config) (*Storage, error) {
	s := &Storage{}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		s.Repo = repository.NewInMemorySnapshotRepository()

	case config.DriverJSON:
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		s.Repo = repository.NewFileSnapshotRepository(filepath.Join(cfg.DataDir, snapshotFileName))

	case config.DriverSQLite:
		db, err := repository.OpenSQLite(ctx, filepath.Join(cfg.DataDir, databaseFileName))
		if err != nil {
			return nil, err
		}
		s.DB = db

	case config.DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		db, err := repository.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s.DB = db

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}

	if s.DB != nil {
		sqlRepo := repository.NewSQLSnapshotRepository(s.DB)
		if err := sqlRepo.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		s.Repo = sqlRepo
	}

	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Redis = rdb
		s.Repo = repository.NewCachedSnapshotRepository(s.Repo, rdb, repository.DefaultCacheKey)
		logger.Info("Snapshot cache enabled", "addr", rdb.Options().Addr)
	}

	logger.Info("Storage ready", "driver", cfg.StorageDriver)
	return s, nil
}

func (s *Storage) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn("Failed to close redis client", "err", err)
		}
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			logger.Warn("Failed to close database", "err", err)
		}
	}
}
