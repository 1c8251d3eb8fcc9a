// Package cache implements the streak cache on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/habit-tracker/tracker/internal/application/adapter"
	"github.com/habit-tracker/tracker/internal/domain/entity"
	"github.com/habit-tracker/tracker/internal/infra/metrics"
)

const streakKeyPrefix = "habit:streak:"

// redisStreakCache implements adapter.StreakCache on Redis.
type redisStreakCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStreakCache creates a Redis-backed streak cache. Entries expire after ttl.
func NewRedisStreakCache(rdb *redis.Client, ttl time.Duration) adapter.StreakCache {
	return &redisStreakCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached streak of a habit, if any.
func (c *redisStreakCache) Get(ctx context.Context, habit *entity.Habit) (int, bool, error) {
	streak, err := c.rdb.Get(ctx, FormatStreakKey(habit)).Int()
	if errors.Is(err, redis.Nil) {
		metrics.IncrementStreakCacheLookup("miss")
		return 0, false, nil
	}
	if err != nil {
		metrics.IncrementStreakCacheLookup("error")
		return 0, false, fmt.Errorf("failed to read streak cache: %w", err)
	}

	metrics.IncrementStreakCacheLookup("hit")
	return streak, true, nil
}

// Set stores the streak of a habit.
func (c *redisStreakCache) Set(ctx context.Context, habit *entity.Habit, streak int) error {
	if err := c.rdb.Set(ctx, FormatStreakKey(habit), streak, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write streak cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached streak of a habit.
func (c *redisStreakCache) Invalidate(ctx context.Context, habitID uuid.UUID) error {
	var keys []string
	iter := c.rdb.Scan(ctx, 0, streakKeyPrefix+habitID.String()+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan streak cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate streak cache: %w", err)
	}
	return nil
}

// FormatStreakKey formats the cache key of a habit streak:
// habit:streak:<id>:<state hash>. The hash covers periodicity and completions.
func FormatStreakKey(habit *entity.Habit) string {
	d := xxhash.New()
	_, _ = d.WriteString(string(habit.Periodicity()))
	for _, date := range habit.CompletionDates() {
		_, _ = d.WriteString("|" + entity.FormatDate(date))
	}
	return fmt.Sprintf("%s%s:%016x", streakKeyPrefix, habit.ID(), d.Sum64())
}

// NewRedisClient connects to the Redis server at url (redis://...) and pings it.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}
