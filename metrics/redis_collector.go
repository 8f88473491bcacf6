package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCollector implements the Collector interface for Redis-backed metrics
type RedisCollector struct {
	client *redis.Client
}

// NewRedisCollector creates a new Redis metrics collector
func NewRedisCollector(client *redis.Client) *RedisCollector {
	return &RedisCollector{
		client: client,
	}
}

// Collect gathers all metrics from Redis
func (c *RedisCollector) Collect(ctx context.Context) (Metrics, error) {
	queueLengths, err := c.GetQueueLengths(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting queue lengths: %w", err)
	}

	statusCounts, err := c.GetStatusCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting status counts: %w", err)
	}

	throughput, err := c.GetThroughput(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting throughput: %w", err)
	}

	logSize, err := c.GetAuditLogSize(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting audit log size: %w", err)
	}

	return Metrics{
		QueueLengths: queueLengths,
		StatusCounts: statusCounts,
		Throughput:   throughput,
		AuditLogSize: logSize,
		Timestamp:    time.Now(),
	}, nil
}

// GetQueueLengths returns the due and scheduled queue lengths
func (c *RedisCollector) GetQueueLengths(ctx context.Context) (map[string]int64, error) {
	queueLengths := make(map[string]int64)

	due, err := c.client.ZCard(ctx, "deliveries:pending").Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("reading pending set length: %w", err)
	}
	queueLengths["due"] = due

	scheduled, err := c.client.ZCard(ctx, "deliveries:scheduled").Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("reading scheduled set length: %w", err)
	}
	queueLengths["scheduled"] = scheduled

	return queueLengths, nil
}

// GetStatusCounts returns counts of deliveries grouped by status
func (c *RedisCollector) GetStatusCounts(ctx context.Context) (map[string]int64, error) {
	statusCounts := map[string]int64{
		"pending":    0,
		"processing": 0,
		"completed":  0,
		"failed":     0,
	}

	keys, err := c.scanKeys(ctx, "delivery:*")
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return statusCounts, nil
	}

	// Use pipeline for efficient batch operations
	pipe := c.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGet(ctx, key, "status")
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("executing pipeline: %w", err)
	}

	for _, cmd := range cmds {
		status, err := cmd.Result()
		if err != nil {
			continue
		}
		if _, exists := statusCounts[status]; exists {
			statusCounts[status]++
		}
	}

	return statusCounts, nil
}

// GetThroughput calculates deliveries completed over different time windows
func (c *RedisCollector) GetThroughput(ctx context.Context) (ThroughputMetrics, error) {
	now := time.Now()
	oneMinuteAgo := now.Add(-1 * time.Minute).UnixMilli()
	fiveMinutesAgo := now.Add(-5 * time.Minute).UnixMilli()
	fifteenMinutesAgo := now.Add(-15 * time.Minute).UnixMilli()

	var lastMinute, lastFiveMinutes, lastFifteenMinutes int64

	keys, err := c.scanKeys(ctx, "delivery:*")
	if err != nil {
		return ThroughputMetrics{}, err
	}

	for _, key := range keys {
		data, err := c.client.HMGet(ctx, key, "status", "updated_at").Result()
		if err != nil || len(data) < 2 {
			continue
		}

		status, ok1 := data[0].(string)
		updatedAtStr, ok2 := data[1].(string)
		if !ok1 || !ok2 || status != "completed" {
			continue
		}

		updatedAt, err := strconv.ParseInt(updatedAtStr, 10, 64)
		if err != nil {
			continue
		}

		// Count in time windows
		if updatedAt >= fifteenMinutesAgo {
			lastFifteenMinutes++
			if updatedAt >= fiveMinutesAgo {
				lastFiveMinutes++
				if updatedAt >= oneMinuteAgo {
					lastMinute++
				}
			}
		}
	}

	return ThroughputMetrics{
		LastMinute:         lastMinute,
		LastFiveMinutes:    lastFiveMinutes,
		LastFifteenMinutes: lastFifteenMinutes,
	}, nil
}

// GetAuditLogSize returns the number of indexed audit entries
func (c *RedisCollector) GetAuditLogSize(ctx context.Context) (int64, error) {
	size, err := c.client.ZCard(ctx, "reqlog:index").Result()
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("reading audit log index length: %w", err)
	}
	return size, nil
}

// scanKeys collects all keys matching a pattern
func (c *RedisCollector) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var cursor uint64
	var keys []string

	for {
		scanKeys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning keys: %w", err)
		}
		keys = append(keys, scanKeys...)

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}
