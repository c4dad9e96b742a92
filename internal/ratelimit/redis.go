package ratelimit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// Redis is a GCRA limiter shared by every instance pointing at the same
// Redis server.
type Redis struct {
	client  *redis.Client
	limiter *redis_rate.Limiter
	limit   redis_rate.Limit
}

// NewRedis creates a limiter allowing perMinute requests per key.
func NewRedis(client *redis.Client, perMinute int) *Redis {
	return &Redis{
		client:  client,
		limiter: redis_rate.NewLimiter(client),
		limit:   redis_rate.PerMinute(perMinute),
	}
}

// NewRedisFromURL connects to the Redis server at url (redis://host:port/db)
// and verifies it responds.
func NewRedisFromURL(ctx context.Context, url string, perMinute int) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedis(client, perMinute), nil
}

// Allow hashes key so raw client IPs never reach Redis.
func (r *Redis) Allow(ctx context.Context, key string) (Result, error) {
	hashed := "leads:" + strconv.FormatUint(xxhash.Sum64String(key), 10)
	res, err := r.limiter.Allow(ctx, hashed, r.limit)
	if err != nil {
		return Result{}, err
	}
	out := Result{
		Allowed:   res.Allowed > 0,
		Limit:     res.Limit.Rate,
		Remaining: res.Remaining,
	}
	if !out.Allowed {
		out.RetryAfter = res.RetryAfter
	}
	return out, nil
}

// Close closes the Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
