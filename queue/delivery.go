package queue

import "time"

/* Delivery represents one queued dispatch of a formatted notification to a
 * single integration. Uses value semantics as it represents data, not
 * behavior.
 */
type Delivery struct {
	ID             string
	Status         Status
	Priority       int // Higher dispatches first
	RetryCount     int
	MaxRetries     int
	NextRetryAt    time.Time // Zero unless status is pending with retryCount > 0
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastAttemptAt  time.Time
	Integration    IntegrationRef
	Endpoint       EndpointRef
	RequestID      string // Originating inbound request
	Payload        []byte
	ContentType    string
	ErrorDetails   string
	ResponseStatus int
	ResponseBody   string
}

// IntegrationRef is the destination snapshot carried by a delivery.
// A snapshot, not a lookup: configuration edits never change rows
// already queued.
type IntegrationRef struct {
	IntegrationID string
	Name          string
	Platform      string
	WebhookURL    string
	SigningSecret string
}

// EndpointRef identifies the inbound endpoint that triggered the delivery
type EndpointRef struct {
	EndpointID string
	TenantID   string
	Name       string
}
