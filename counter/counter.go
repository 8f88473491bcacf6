package counter

import (
	"context"
	"time"
)

/* Counter is a keyed counter with per-key expiry, injected where inbound
 * accounting is needed instead of living in package-global state. Callers
 * own their key naming; implementations own atomicity.
 */
type Counter interface {
	// Incr adds one to key and returns the new value. A fresh key gets ttl;
	// zero ttl means the key never expires.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Get returns the current value, zero when the key is absent or expired
	Get(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}
