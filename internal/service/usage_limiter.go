package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/runwayrivets/pictopost-api/pkg/database"
	"go.uber.org/zap"
)

// UsageLimiter counts AI requests per user, provider and calendar day in
// Redis and enforces the catalog's daily limits. It satisfies the gateway's
// DailyLimiter interface.
type UsageLimiter struct {
	redis  *database.Redis
	logger *zap.Logger
}

// NewUsageLimiter creates a new daily usage limiter
func NewUsageLimiter(redis *database.Redis, logger *zap.Logger) *UsageLimiter {
	return &UsageLimiter{redis: redis, logger: logger}
}

// Allow increments today's counter and reports whether the request is within
// the daily limit. The counter key expires after two days, so past days
// clean themselves up.
func (l *UsageLimiter) Allow(ctx context.Context, userID, providerID string, dailyLimit int) (bool, error) {
	key := fmt.Sprintf("usage:%s:%s:%s", userID, providerID, time.Now().Format("2006-01-02"))

	count, err := l.redis.Client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment usage counter: %w", err)
	}

	// A failed expiry must not fail the request
	if count == 1 {
		if err := l.redis.Client.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
			l.logger.Warn("failed to set usage counter expiry",
				zap.String("key", key),
				zap.Error(err))
		}
	}

	if count > int64(dailyLimit) {
		return false, nil
	}
	return true, nil
}

// Remaining reports how many requests the user has left today.
func (l *UsageLimiter) Remaining(ctx context.Context, userID, providerID string, dailyLimit int) (int, error) {
	key := fmt.Sprintf("usage:%s:%s:%s", userID, providerID, time.Now().Format("2006-01-02"))

	count, err := l.redis.Client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return dailyLimit, nil
		}
		return 0, fmt.Errorf("failed to read usage counter: %w", err)
	}

	remaining := dailyLimit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
