package queue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/marcelsud/alert-relay/queue/signature"
)

/* Dispatch is one HTTP delivery attempt of a queued notification to its
 * target webhook URL: POST the stored payload with the stored content-type
 * under a bounded timeout. This is the core's only network contract.
 */

// Maximum response body bytes kept on the delivery row
const maxResponseBytes = 4096

// DispatchResult carries the downstream response of one attempt
type DispatchResult struct {
	StatusCode int
	Body       string
}

// Dispatcher performs one delivery attempt
type Dispatcher interface {
	Dispatch(ctx context.Context, d Delivery) (DispatchResult, error)
}

// HTTPDispatcher is the production Dispatcher
type HTTPDispatcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPDispatcher creates a dispatcher with a bounded per-attempt timeout
func NewHTTPDispatcher(timeout time.Duration) *HTTPDispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPDispatcher{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

/* Dispatch POSTs the stored payload to the stored webhook URL.
 * A non-2xx response or any transport failure (timeout included) is an
 * error feeding the retry path. The response body is returned truncated.
 */
func (h *HTTPDispatcher) Dispatch(ctx context.Context, d Delivery) (DispatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Integration.WebhookURL, bytes.NewReader(d.Payload))
	if err != nil {
		return DispatchResult{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", d.ContentType)

	if d.Integration.SigningSecret != "" {
		secret, err := signature.ParseSecret(d.Integration.SigningSecret)
		if err != nil {
			return DispatchResult{}, fmt.Errorf("parsing signing secret: %w", err)
		}
		now := time.Now()
		req.Header.Set(signature.HeaderID, d.ID)
		req.Header.Set(signature.HeaderTimestamp, signature.FormatTimestamp(now))
		req.Header.Set(signature.HeaderSignature, signature.Sign(secret, d.ID, now, d.Payload))
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	result := DispatchResult{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return result, nil
}
