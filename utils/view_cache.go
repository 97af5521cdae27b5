package utils

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCache is a small Redis-backed cache for the visible read-model
// projections. A nil ViewCache is valid and disables caching entirely; a
// failing Redis trips the breaker and reads fall through to the database.
type ViewCache struct {
	redis   *redis.Client
	ttl     time.Duration
	breaker *Breaker
	logger  *slog.Logger
}

func NewViewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ViewCache {
	return &ViewCache{
		redis:   client,
		ttl:     ttl,
		breaker: NewBreaker("view-cache"),
		logger:  logger,
	}
}

// Get loads the cached projection into dst and reports whether it was a hit.
func (c *ViewCache) Get(ctx context.Context, key string, dst any) bool {
	if c == nil || c.redis == nil {
		return false
	}

	var payload string
	err := c.breaker.Execute(func() error {
		val, err := c.redis.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		payload = val
		return err
	})
	if err != nil || payload == "" {
		if err != nil && !errors.Is(err, ErrBreakerOpen) {
			c.logger.Warn("view cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		c.logger.Warn("view cache payload corrupted", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores the projection with the configured TTL. Failures are logged and
// otherwise ignored.
func (c *ViewCache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.redis == nil {
		return
	}

	payload, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("view cache marshal failed", "key", key, "error", err)
		return
	}

	err = c.breaker.Execute(func() error {
		return c.redis.Set(ctx, key, payload, c.ttl).Err()
	})
	if err != nil && !errors.Is(err, ErrBreakerOpen) {
		c.logger.Warn("view cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops cached projections after a mutating action.
func (c *ViewCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.redis == nil || len(keys) == 0 {
		return
	}

	err := c.breaker.Execute(func() error {
		return c.redis.Del(ctx, keys...).Err()
	})
	if err != nil && !errors.Is(err, ErrBreakerOpen) {
		c.logger.Warn("view cache invalidation failed", "keys", keys, "error", err)
	}
}
