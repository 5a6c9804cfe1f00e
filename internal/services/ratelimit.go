package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter is the hourly counter behind send-otp rate limiting. Incr
// creates the key when absent and returns the value after increment.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Decr(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type redisCounter struct {
	client *redis.Client
}

// NewRedisCounter adapts a Redis client to the Counter interface.
func NewRedisCounter(client *redis.Client) Counter {
	return &redisCounter{client: client}
}

func (c *redisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, key).Result()
}

func (c *redisCounter) Decr(ctx context.Context, key string) error {
	return c.client.Decr(ctx, key).Err()
}

func (c *redisCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}
