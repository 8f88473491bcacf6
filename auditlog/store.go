package auditlog

import "context"

// Reader provides read operations for audit entries
type Reader interface {
	Get(ctx context.Context, id string) (Entry, error)
	/* List returns entries newest first, up to limit. A non-empty tenantID
	 * restricts results to that tenant.
	 */
	List(ctx context.Context, tenantID string, limit int) ([]Entry, error)
	Count(ctx context.Context) (int64, error)
}

// Writer provides write operations for audit entries
type Writer interface {
	Insert(ctx context.Context, e Entry) error
	// UpdateAttempts replaces an entry's attempt list and summary
	UpdateAttempts(ctx context.Context, id string, attempts []Attempt, overall OverallStatus, summary string) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

/* Interface composition - combining small interfaces into larger ones */
type Store interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
