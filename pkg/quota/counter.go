package quota

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// UsageCounter tracks per-user daily consumption. Increment is atomic so
// concurrent requests from the same user never double-spend quota.
type UsageCounter interface {
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
}

type RedisCounter struct {
	client *redis.Client
}

var _ UsageCounter = &RedisCounter{}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{
		client: client,
	}
}

func (c *RedisCounter) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// First increment of the window sets the expiry. NX keeps a racing
	// second increment from extending the window.
	if count == 1 {
		c.client.ExpireNX(ctx, key, ttl)
	}
	return count, nil
}

func (c *RedisCounter) Get(ctx context.Context, key string) (int64, error) {
	count, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}
