package endpoints

import (
	"fmt"
	"net/url"
	"strings"
)

/* Endpoint is a tenant-scoped inbound path receiving raw payloads and
 * fanning them out to its associated integrations.
 */
type Endpoint struct {
	EndpointID     string
	TenantID       string
	Name           string
	FilterConfigID string // Optional: empty means "include all fields"
	Integrations   []Integration
}

/* Integration is a configured destination (platform + webhook URL) eligible
 * to receive relayed notifications.
 */
type Integration struct {
	IntegrationID string
	Name          string
	Platform      string // slack, discord, teams, generic
	WebhookURL    string
	Enabled       bool
	Priority      int // Higher dispatches first
	MaxRetries    int
	SigningSecret string // Optional: whsec_ secret for signing outgoing payloads
}

// Validate checks if the endpoint configuration is valid
func (e *Endpoint) Validate() error {
	if e.EndpointID == "" {
		return fmt.Errorf("endpoint_id cannot be empty")
	}
	if e.TenantID == "" {
		return fmt.Errorf("tenant_id cannot be empty for endpoint %s", e.EndpointID)
	}
	for i := range e.Integrations {
		if err := e.Integrations[i].Validate(); err != nil {
			return fmt.Errorf("invalid integration for endpoint %s: %w", e.EndpointID, err)
		}
	}
	return nil
}

// Validate checks if the integration configuration is valid
func (i *Integration) Validate() error {
	if i.IntegrationID == "" {
		return fmt.Errorf("integration_id cannot be empty")
	}
	if i.WebhookURL == "" {
		return fmt.Errorf("webhook_url cannot be empty for integration %s", i.IntegrationID)
	}
	parsed, err := url.Parse(i.WebhookURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("webhook_url must be an http(s) URL for integration %s", i.IntegrationID)
	}
	if i.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative for integration %s", i.IntegrationID)
	}
	if i.SigningSecret != "" && !strings.HasPrefix(i.SigningSecret, "whsec_") {
		return fmt.Errorf("signing_secret must start with whsec_ for integration %s", i.IntegrationID)
	}
	return nil
}
