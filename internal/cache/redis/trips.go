package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/easytravel/easytravel-server/internal/model"
)

var _ model.TripCache = (*TripCache)(nil)

// TripCache stores generated itineraries in Redis.
type TripCache struct {
	client *redis.Client
}

// NewTripCache creates a cache backed by the given Redis client.
func NewTripCache(client *redis.Client) *TripCache {
	return &TripCache{client: client}
}

// Get returns the cached plan for the key, reporting whether it was present.
func (c *TripCache) Get(ctx context.Context, key string) (string, bool, error) {
	plan, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get cached plan: %w", err)
	}
	return plan, true, nil
}

// Set stores the plan under the key for the given TTL.
func (c *TripCache) Set(ctx context.Context, key string, plan string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, plan, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache plan: %w", err)
	}
	return nil
}
