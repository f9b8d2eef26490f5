package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle counts failed login attempts in redis. A nil *Throttle is valid
// and disables throttling, so the API runs without redis in dev and tests.
type Throttle struct {
	rdb *redis.Client
}

func NewThrottle(addr, password string, db int) *Throttle {
	if addr == "" {
		return nil
	}
	return &Throttle{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Fail increments the failure counter for key and returns the count within
// the window. The window starts at the first failure.
func (t *Throttle) Fail(ctx context.Context, key string, window time.Duration) (int64, error) {
	if t == nil {
		return 0, nil
	}
	n, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		_ = t.rdb.Expire(ctx, key, window).Err()
	}
	return n, nil
}

// Reset clears the failure counter after a successful login.
func (t *Throttle) Reset(ctx context.Context, key string) {
	if t == nil {
		return
	}
	_ = t.rdb.Del(ctx, key).Err()
}

// Count reads the current failure count without mutating it.
func (t *Throttle) Count(ctx context.Context, key string) (int64, error) {
	if t == nil {
		return 0, nil
	}
	n, err := t.rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
