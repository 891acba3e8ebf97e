package redis

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eventify/eventify/internal/core/domain"
)

// LoginLimiter throttles repeated login attempts per email, backed by Redis.
// Key format: login:<email>, INCR with a window TTL on first hit. Redis
// outages fail open with a warning so an infrastructure problem cannot lock
// every account out.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
	log         zerolog.Logger
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration, log zerolog.Logger) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginLimiter{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
		log:         log,
	}
}

// Allow records a login attempt and reports whether it may proceed.
func (l *LoginLimiter) Allow(ctx context.Context, email string) error {
	key := l.key(email)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		return nil
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.log.Warn().Err(err).Msg("failed to set login limiter window")
		}
	}

	if count > l.maxAttempts {
		l.log.Warn().Str("email", email).Int64("attempts", count).Msg("login throttled")
		return domain.ErrLoginThrottled
	}

	return nil
}

func (l *LoginLimiter) key(email string) string {
	return "login:" + strings.ToLower(strings.TrimSpace(email))
}
