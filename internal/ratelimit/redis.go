package ratelimit

import (
	"context"
	"fmt"
	"time"

	"printshop/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Redis shares attempt counters between server instances.
type Redis struct {
	client  *redis.Client
	limit   int
	period  time.Duration
	prefix  string
	timeout time.Duration
}

// NewRedis connects to addr and verifies the connection.
func NewRedis(ctx context.Context, addr, password string, db, limit int, period time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return newRedis(client, limit, period), nil
}

func newRedis(client *redis.Client, limit int, period time.Duration) *Redis {
	if period <= 0 {
		period = time.Minute
	}
	return &Redis{
		client:  client,
		limit:   limit,
		period:  period,
		prefix:  "printshop:ratelimit:",
		timeout: 250 * time.Millisecond,
	}
}

// Allow fails open when redis is unreachable.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	if r.limit <= 0 {
		return true, nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	redisKey := r.prefix + key
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, r.period)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("redis rate limiter error")
		return true, err
	}
	return incr.Val() <= int64(r.limit), nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
