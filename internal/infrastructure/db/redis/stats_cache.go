package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clientbook/payments-api/internal/core/domain"
)

const defaultStatsTTL = 30 * time.Second

// statsKeyPrefix namespaces all cached aggregates so Invalidate can drop
// them with a single DEL per period key.
const statsKeyPrefix = "stats"

// StatsCache caches computed aggregates in Redis, keyed by reference period.
// Key format: stats:<year>:<month>
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
// A non-positive ttl falls back to the default.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached stats for the period, or nil on a miss.
func (c *StatsCache) Get(ctx context.Context, year, month int) (*domain.Stats, error) {
	raw, err := c.client.Get(ctx, c.key(year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats domain.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores the stats for the period, expiring after the configured TTL.
func (c *StatsCache) Set(ctx context.Context, year, month int, stats *domain.Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(year, month), raw, c.ttl).Err()
}

// Invalidate drops every cached period. Called after any mutation of
// clients or payments.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, statsKeyPrefix+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("stats cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *StatsCache) key(year, month int) string {
	return fmt.Sprintf("%s:%d:%d", statsKeyPrefix, year, month)
}
