package queue

import (
	"context"
	"time"
)

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Reader provides read operations for queued deliveries
type Reader interface {
	Get(ctx context.Context, id string) (Delivery, error)
	List(ctx context.Context, limit int) ([]Delivery, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// Writer provides write operations for queued deliveries
type Writer interface {
	Insert(ctx context.Context, d Delivery) error
	/* Update persists the full row and fixes up the readiness indexes to
	 * match the row's status and nextRetryAt
	 */
	Update(ctx context.Context, d Delivery) error
	Delete(ctx context.Context, id string) error
	/* SetTTL sets an expiration on a delivery row
	 * Used as the retention sweep for completed deliveries
	 */
	SetTTL(ctx context.Context, id string, ttl time.Duration) error
}

// Claimer provides the atomic pull side of the queue
type Claimer interface {
	/* ClaimBatch selects up to limit pending deliveries whose nextRetryAt
	 * is unset or due, ordered by priority descending then createdAt
	 * ascending, and atomically claims each one. The claim is the sole
	 * mutual-exclusion point: a delivery claimed here cannot be claimed by
	 * a concurrent worker, and a worker losing the race skips the row.
	 */
	ClaimBatch(ctx context.Context, limit int, now time.Time) ([]Delivery, error)
}

/* Interface composition - combining small interfaces into larger ones */
type Store interface {
	Reader
	Writer
	Claimer
	Close(ctx context.Context) error
}
