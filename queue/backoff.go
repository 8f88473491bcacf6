package queue

import (
	"fmt"
	"math/rand"
	"time"
)

/* Backoff is a deterministic lookup table, not a computed exponential
 * curve: predictable escalating delays, clamped to the final entry for any
 * retry beyond the table's length. Optional positive jitter spreads
 * simultaneous retries without ever making delays non-monotonic.
 */
type Backoff struct {
	table  []time.Duration
	jitter time.Duration
}

// DefaultBackoff returns the standard 1 min / 5 min / 30 min table
func DefaultBackoff() Backoff {
	return Backoff{
		table: []time.Duration{1 * time.Minute, 5 * time.Minute, 30 * time.Minute},
	}
}

// NewBackoff creates a Backoff from a custom table
func NewBackoff(table []time.Duration, jitter time.Duration) (Backoff, error) {
	if len(table) == 0 {
		return Backoff{}, fmt.Errorf("backoff table cannot be empty")
	}
	for i, delay := range table {
		if delay <= 0 {
			return Backoff{}, fmt.Errorf("backoff delays must be positive, entry %d is %s", i, delay)
		}
		if i > 0 && delay < table[i-1] {
			return Backoff{}, fmt.Errorf("backoff delays must be non-decreasing, entry %d (%s) < entry %d (%s)", i, delay, i-1, table[i-1])
		}
	}
	if jitter < 0 {
		return Backoff{}, fmt.Errorf("jitter cannot be negative")
	}
	return Backoff{table: table, jitter: jitter}, nil
}

/* Delay returns the wait before the attempt numbered retryCount (1-based,
 * counted after the increment). Retries beyond the table clamp to the last
 * entry.
 */
func (b Backoff) Delay(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	idx := retryCount - 1
	if idx >= len(b.table) {
		idx = len(b.table) - 1
	}
	delay := b.table[idx]
	if b.jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(b.jitter)))
	}
	return delay
}
