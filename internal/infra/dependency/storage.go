package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/habit-tracker/tracker/config"
	"github.com/habit-tracker/tracker/internal/application/adapter"
	"github.com/habit-tracker/tracker/internal/infra/db"
	"github.com/habit-tracker/tracker/internal/integration/cache"
	"github.com/habit-tracker/tracker/internal/integration/persistence"
	"github.com/habit-tracker/tracker/internal/integration/persistence/model"
)

// Storage is the opened habit store and streak cache.
type Storage struct {
	Repository  adapter.HabitRepository
	StreakCache adapter.StreakCache

	fileStore *persistence.FileHabitStore
	database  *db.Database
	redis     *redis.Client
}

// OpenStorage opens the store selected by cfg.Storage.Driver and, when
// enabled, the Redis streak cache. A cache that cannot be reached is logged
// and skipped.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	s := &Storage{}

	switch cfg.Storage.Driver {
	case config.StorageDriverJSON:
		s.fileStore = persistence.NewFileHabitStore(cfg.Storage.DataFile)
		if err := s.fileStore.Load(); err != nil {
			return nil, err
		}
		s.Repository = s.fileStore
	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		database, err := openDatabase(cfg)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(model.AllModels()...); err != nil {
			_ = database.Close()
			return nil, err
		}
		slog.Info("Database migrations completed successfully")
		s.database = database
		s.Repository = persistence.NewHabitRepository(database.DB())
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			slog.Warn("Streak cache unavailable, running without cache", "error", err)
		} else {
			s.redis = rdb
			s.StreakCache = cache.NewRedisStreakCache(rdb, cfg.Redis.TTL)
			slog.Info("Streak cache enabled", "ttl", cfg.Redis.TTL)
		}
	}

	return s, nil
}

func openDatabase(cfg *config.Config) (*db.Database, error) {
	if cfg.Storage.Driver == config.StorageDriverSQLite {
		return db.NewSQLiteConnection(cfg.Storage.SQLitePath)
	}
	return db.NewPostgresConnection(&cfg.Database)
}

// HealthCheck reports whether the habit store is usable.
func (s *Storage) HealthCheck() bool {
	if s.database != nil {
		return s.database.HealthCheck()
	}
	return s.fileStore != nil
}

// CacheHealthCheck returns a checker for the streak cache, or nil when no
// cache is in use.
func (s *Storage) CacheHealthCheck() func() bool {
	if s.redis == nil {
		return nil
	}
	return func() bool {
		return s.redis.Ping(context.Background()).Err() == nil
	}
}

// Flush saves the JSON store. Database-backed stores persist on every write.
func (s *Storage) Flush() error {
	if s.fileStore == nil {
		return nil
	}
	return s.fileStore.Flush()
}

// Close releases every connection. It does not flush.
func (s *Storage) Close() error {
	var errs []error
	if s.database != nil {
		if err := s.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
