package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-user-posts/internal/logger"
)

// LoginAttemptCacheRepository counts failed logins per username in Redis.
// A counter expires window after the first failure.
type LoginAttemptCacheRepository struct {
	client *redis.Client
	window time.Duration
}

func NewLoginAttemptCacheRepository(client *redis.Client, window time.Duration) *LoginAttemptCacheRepository {
	return &LoginAttemptCacheRepository{client: client, window: window}
}

func loginAttemptKey(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}

// Count returns the failures recorded in the current window.
func (r *LoginAttemptCacheRepository) Count(ctx context.Context, username string) (int64, error) {
	key := loginAttemptKey(username)

	n, err := r.client.Get(ctx, key).Int64()
	logger.Log.Debugw("redis get", "key", key, "result", n, "error", err)
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Increment records a failure and returns the new count.
func (r *LoginAttemptCacheRepository) Increment(ctx context.Context, username string) (int64, error) {
	key := loginAttemptKey(username)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, r.window)
	_, err := pipe.Exec(ctx)

	logger.Log.Debugw("redis incr", "key", key, "result", incr.Val(), "error", err)
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Reset clears the counter after a successful login.
func (r *LoginAttemptCacheRepository) Reset(ctx context.Context, username string) error {
	key := loginAttemptKey(username)
	err := r.client.Del(ctx, key).Err()
	logger.Log.Debugw("redis del", "key", key, "error", err)
	return err
}
