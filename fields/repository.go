package fields

import "context"

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 */

// ConfigReader provides read operations for filter configurations
type ConfigReader interface {
	Get(ctx context.Context, id string) (FilterConfig, error)
	GetAll(ctx context.Context) ([]FilterConfig, error)
}

// ConfigWriter provides write operations for filter configurations
type ConfigWriter interface {
	Insert(ctx context.Context, config FilterConfig) error
	Update(ctx context.Context, config FilterConfig) error
	Delete(ctx context.Context, id string) error
}

/* Interface composition - combining small interfaces into larger ones */
type ConfigRepository interface {
	ConfigReader
	ConfigWriter
	Close(ctx context.Context) error
}
