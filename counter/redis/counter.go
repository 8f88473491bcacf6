package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

/* Redis implementation of counter.Counter
 * INCR carries the atomicity; the expiry is attached only when the INCR
 * created the key, so an existing window keeps its deadline.
 */

const counterPrefix = "counter" // Key naming: counter:{key}

type Counter struct {
	client *redis.Client
}

// NewCounter creates a new Redis counter
func NewCounter(client *redis.Client) *Counter {
	return &Counter{
		client: client,
	}
}

// Incr adds one to key and returns the new value
func (c *Counter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	value, err := c.client.Incr(ctx, counterKey(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing counter: %w", err)
	}
	if value == 1 && ttl > 0 {
		if err := c.client.Expire(ctx, counterKey(key), ttl).Err(); err != nil {
			return 0, fmt.Errorf("setting counter expiry: %w", err)
		}
	}
	return value, nil
}

// Get returns the current value, zero when the key is absent
func (c *Counter) Get(ctx context.Context, key string) (int64, error) {
	value, err := c.client.Get(ctx, counterKey(key)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading counter: %w", err)
	}
	return value, nil
}

// Reset removes the counter key
func (c *Counter) Reset(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, counterKey(key)).Err(); err != nil {
		return fmt.Errorf("resetting counter: %w", err)
	}
	return nil
}

func counterKey(key string) string {
	return fmt.Sprintf("%s:%s", counterPrefix, key)
}
