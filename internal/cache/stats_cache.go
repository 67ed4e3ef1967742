// Package cache provides a Redis-backed read-through cache for the stats
// dashboard counts. Cache failures are never surfaced: a broken or absent
// Redis simply means every read recomputes from storage.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const statsKey = "helpdesk:stats:counts"

// StatsCache stores serialized status counts under a fixed key with a TTL.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache wraps the Redis client. Returns nil when client is nil so
// callers can pass the result straight to the stats service.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached counts, treating any error or malformed payload as
// a miss.
func (c *StatsCache) Get(ctx context.Context) (*domain.StatusCounts, bool) {
	payload, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var counts domain.StatusCounts
	if err := json.Unmarshal(payload, &counts); err != nil {
		return nil, false
	}
	return &counts, true
}

// Set stores the counts best-effort.
func (c *StatsCache) Set(ctx context.Context, counts *domain.StatusCounts) {
	payload, err := json.Marshal(counts)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, statsKey, payload, c.ttl).Err()
}
