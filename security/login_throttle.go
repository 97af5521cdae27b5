package security

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed-or-pending login attempts per identity inside
// a sliding window. A nil throttle (cache disabled) allows everything; a
// failing Redis fails open so members are never locked out by the cache.
type LoginThrottle struct {
	redis       *redis.Client
	maxAttempts int
	window      time.Duration
	logger      *slog.Logger
}

func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration, logger *slog.Logger) *LoginThrottle {
	return &LoginThrottle{
		redis:       client,
		maxAttempts: maxAttempts,
		window:      window,
		logger:      logger,
	}
}

// Allow records one attempt and reports whether the identity is still within
// the window's attempt limit.
func (t *LoginThrottle) Allow(ctx context.Context, identity string) bool {
	if t == nil || t.redis == nil {
		return true
	}

	key := attemptKey(identity)
	attempts, err := t.redis.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("login throttle unavailable", "error", err)
		return true
	}
	if attempts == 1 {
		t.redis.Expire(ctx, key, t.window)
	}
	return attempts <= int64(t.maxAttempts)
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, identity string) {
	if t == nil || t.redis == nil {
		return
	}
	t.redis.Del(ctx, attemptKey(identity))
}

func attemptKey(identity string) string {
	return "login:attempts:" + strings.ToLower(strings.TrimSpace(identity))
}
