package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/alert-relay/queue"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of queue.Store
 * Uses one hash per delivery for metadata and three sorted sets:
 *   deliveries:pending   - due work, scored by (priority desc, createdAt asc)
 *   deliveries:scheduled - backoff parking lot, scored by nextRetryAt
 *   deliveries:all       - listing index, scored by createdAt
 * The claim is a plain ZREM from the pending set: exactly one caller
 * observes the removal, which is the queue's sole mutual-exclusion point.
 */

const (
	deliveryPrefix = "delivery" // Hash naming: delivery:{delivery_id}
	pendingKey     = "deliveries:pending"
	scheduledKey   = "deliveries:scheduled"
	allKey         = "deliveries:all"
)

/* priorityBand separates priorities in the pending score while leaving room
 * for millisecond timestamps below. Scores stay exactly representable in a
 * float64 for priorities up to ~1000.
 */
const priorityBand = float64(1 << 42)

var ErrNotFound = errors.New("delivery not found")

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis queue repository
func NewRepository(client *redis.Client) *Repository {
	return &Repository{
		client: client,
	}
}

// NewRepositoryFromAddr connects a fresh client and verifies it
func NewRepositoryFromAddr(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return NewRepository(client), nil
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

// Insert stores a new delivery and indexes it as due work
func (r *Repository) Insert(ctx context.Context, d queue.Delivery) error {
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, hashKey(d.ID), hashFields(d))
	pipe.ZAdd(ctx, allKey, redis.Z{Score: float64(d.CreatedAt.UnixMilli()), Member: d.ID})
	if d.Status == queue.Pending && d.NextRetryAt.IsZero() {
		pipe.ZAdd(ctx, pendingKey, redis.Z{Score: pendingScore(d.Priority, d.CreatedAt), Member: d.ID})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing delivery: %w", err)
	}
	return nil
}

/* Update persists the full row and fixes the readiness indexes to match:
 * pending without nextRetryAt is due, pending with nextRetryAt is parked,
 * anything else is in neither set.
 */
func (r *Repository) Update(ctx context.Context, d queue.Delivery) error {
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, hashKey(d.ID), hashFields(d))
	pipe.ZRem(ctx, pendingKey, d.ID)
	pipe.ZRem(ctx, scheduledKey, d.ID)
	if d.Status == queue.Pending {
		if d.NextRetryAt.IsZero() {
			pipe.ZAdd(ctx, pendingKey, redis.Z{Score: pendingScore(d.Priority, d.CreatedAt), Member: d.ID})
		} else {
			pipe.ZAdd(ctx, scheduledKey, redis.Z{Score: float64(d.NextRetryAt.UnixMilli()), Member: d.ID})
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("updating delivery: %w", err)
	}
	return nil
}

// Get retrieves a delivery by ID
func (r *Repository) Get(ctx context.Context, id string) (queue.Delivery, error) {
	data, err := r.client.HGetAll(ctx, hashKey(id)).Result()
	if err != nil {
		return queue.Delivery{}, fmt.Errorf("getting delivery: %w", err)
	}
	if len(data) == 0 {
		return queue.Delivery{}, ErrNotFound
	}
	return unmarshalDelivery(data), nil
}

// List returns deliveries newest first, up to limit
func (r *Repository) List(ctx context.Context, limit int) ([]queue.Delivery, error) {
	if limit <= 0 {
		limit = 100
	}
	ids, err := r.client.ZRevRange(ctx, allKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing delivery ids: %w", err)
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, hashKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("executing pipeline: %w", err)
	}

	deliveries := make([]queue.Delivery, 0, len(ids))
	for i, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil || len(data) == 0 {
			// Row expired by TTL; drop the dangling index entry lazily
			r.client.ZRem(ctx, allKey, ids[i])
			continue
		}
		deliveries = append(deliveries, unmarshalDelivery(data))
	}
	return deliveries, nil
}

// CountByStatus returns delivery counts grouped by status
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{
		"pending":    0,
		"processing": 0,
		"completed":  0,
		"failed":     0,
	}

	ids, err := r.client.ZRange(ctx, allKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing delivery ids: %w", err)
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGet(ctx, hashKey(id), "status")
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("executing pipeline: %w", err)
	}

	for _, cmd := range cmds {
		status, err := cmd.Result()
		if err != nil {
			continue
		}
		if _, exists := counts[status]; exists {
			counts[status]++
		}
	}
	return counts, nil
}

// Delete removes a delivery and all its index entries
func (r *Repository) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, hashKey(id))
	pipe.ZRem(ctx, pendingKey, id)
	pipe.ZRem(ctx, scheduledKey, id)
	pipe.ZRem(ctx, allKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deleting delivery: %w", err)
	}
	return nil
}

// SetTTL sets an expiration on a delivery hash
func (r *Repository) SetTTL(ctx context.Context, id string, ttl time.Duration) error {
	if err := r.client.Expire(ctx, hashKey(id), ttl).Err(); err != nil {
		return fmt.Errorf("setting TTL on delivery: %w", err)
	}
	return nil
}

/* ClaimBatch promotes due scheduled deliveries, then claims up to limit
 * rows from the pending set in (priority desc, createdAt asc) order.
 * A concurrent claimer observing ZRem() == 0 lost the race and skips.
 */
func (r *Repository) ClaimBatch(ctx context.Context, limit int, now time.Time) ([]queue.Delivery, error) {
	if limit <= 0 {
		return nil, nil
	}
	if err := r.promoteDue(ctx, now); err != nil {
		return nil, err
	}

	ids, err := r.client.ZRange(ctx, pendingKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading pending set: %w", err)
	}

	claimed := make([]queue.Delivery, 0, len(ids))
	for _, id := range ids {
		removed, err := r.client.ZRem(ctx, pendingKey, id).Result()
		if err != nil {
			return claimed, fmt.Errorf("claiming delivery: %w", err)
		}
		if removed == 0 {
			continue
		}
		d, err := r.Get(ctx, id)
		if err != nil {
			continue
		}
		claimed = append(claimed, d)
	}
	return claimed, nil
}

// promoteDue moves scheduled deliveries whose nextRetryAt has passed into the pending set
func (r *Repository) promoteDue(ctx context.Context, now time.Time) error {
	ids, err := r.client.ZRangeByScore(ctx, scheduledKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return fmt.Errorf("reading scheduled set: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	for _, id := range ids {
		values, err := r.client.HMGet(ctx, hashKey(id), "priority", "created_at").Result()
		if err != nil || len(values) < 2 {
			continue
		}
		priority := parseInt64(values[0])
		createdAt := time.UnixMilli(parseInt64(values[1]))

		pipe := r.client.TxPipeline()
		pipe.ZRem(ctx, scheduledKey, id)
		pipe.ZAdd(ctx, pendingKey, redis.Z{Score: pendingScore(int(priority), createdAt), Member: id})
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("promoting delivery: %w", err)
		}
	}
	return nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// Helper functions

func hashKey(id string) string {
	return fmt.Sprintf("%s:%s", deliveryPrefix, id)
}

// pendingScore orders the pending set by priority descending, createdAt ascending
func pendingScore(priority int, createdAt time.Time) float64 {
	return -float64(priority)*priorityBand + float64(createdAt.UnixMilli())
}

func hashFields(d queue.Delivery) map[string]interface{} {
	return map[string]interface{}{
		"id":              d.ID,
		"status":          d.Status.String(),
		"priority":        d.Priority,
		"retry_count":     d.RetryCount,
		"max_retries":     d.MaxRetries,
		"next_retry_at":   unixMilliOrZero(d.NextRetryAt),
		"created_at":      d.CreatedAt.UnixMilli(),
		"updated_at":      d.UpdatedAt.UnixMilli(),
		"last_attempt_at": unixMilliOrZero(d.LastAttemptAt),
		"integration_id":  d.Integration.IntegrationID,
		"integration":     d.Integration.Name,
		"platform":        d.Integration.Platform,
		"webhook_url":     d.Integration.WebhookURL,
		"signing_secret":  d.Integration.SigningSecret,
		"endpoint_id":     d.Endpoint.EndpointID,
		"tenant_id":       d.Endpoint.TenantID,
		"endpoint":        d.Endpoint.Name,
		"request_id":      d.RequestID,
		"payload":         d.Payload,
		"content_type":    d.ContentType,
		"error_details":   d.ErrorDetails,
		"response_status": d.ResponseStatus,
		"response_body":   d.ResponseBody,
	}
}

func unmarshalDelivery(data map[string]string) queue.Delivery {
	return queue.Delivery{
		ID:            data["id"],
		Status:        queue.NewStatus(data["status"]),
		Priority:      int(parseInt64(data["priority"])),
		RetryCount:    int(parseInt64(data["retry_count"])),
		MaxRetries:    int(parseInt64(data["max_retries"])),
		NextRetryAt:   timeOrZero(parseInt64(data["next_retry_at"])),
		CreatedAt:     time.UnixMilli(parseInt64(data["created_at"])),
		UpdatedAt:     time.UnixMilli(parseInt64(data["updated_at"])),
		LastAttemptAt: timeOrZero(parseInt64(data["last_attempt_at"])),
		Integration: queue.IntegrationRef{
			IntegrationID: data["integration_id"],
			Name:          data["integration"],
			Platform:      data["platform"],
			WebhookURL:    data["webhook_url"],
			SigningSecret: data["signing_secret"],
		},
		Endpoint: queue.EndpointRef{
			EndpointID: data["endpoint_id"],
			TenantID:   data["tenant_id"],
			Name:       data["endpoint"],
		},
		RequestID:      data["request_id"],
		Payload:        []byte(data["payload"]),
		ContentType:    data["content_type"],
		ErrorDetails:   data["error_details"],
		ResponseStatus: int(parseInt64(data["response_status"])),
		ResponseBody:   data["response_body"],
	}
}

func unixMilliOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func timeOrZero(millis int64) time.Time {
	if millis == 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}

func parseInt64(v interface{}) int64 {
	switch value := v.(type) {
	case string:
		n, _ := strconv.ParseInt(value, 10, 64)
		return n
	case int64:
		return value
	default:
		return 0
	}
}
