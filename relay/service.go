package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/alert-relay/auditlog"
	"github.com/marcelsud/alert-relay/endpoints"
	"github.com/marcelsud/alert-relay/fields"
	"github.com/marcelsud/alert-relay/platform"
	"github.com/marcelsud/alert-relay/queue"
)

/* Service orchestrates one inbound notification end to end: resolve the
 * endpoint, extract and filter the payload fields, fan out to the
 * endpoint's integrations, and record a single audit entry carrying every
 * attempt. A failure on one integration never blocks the others.
 */

var ErrUnknownEndpoint = errors.New("unknown endpoint")

// InboundRequest is the raw request snapshot handed to the relay
type InboundRequest struct {
	SourceIP string
	Method   string
	Headers  map[string]string
	Body     []byte
}

// Receipt summarizes what happened to one inbound notification
type Receipt struct {
	RequestID string
	Overall   auditlog.OverallStatus
	Summary   string
	Attempts  []auditlog.Attempt
}

// EndpointResolver looks up endpoint configuration
type EndpointResolver interface {
	Get(endpointID string) (*endpoints.Endpoint, error)
}

// UseCase defines the relay operation the HTTP layer binds to
type UseCase interface {
	Handle(ctx context.Context, endpointID string, req InboundRequest) (Receipt, error)
}

type Service struct {
	Endpoints EndpointResolver
	Filters   fields.ConfigUseCase
	Queue     queue.UseCase
	Log       auditlog.UseCase
}

// NewService creates a new relay service with dependency injection
func NewService(endpoints EndpointResolver, filters fields.ConfigUseCase, q queue.UseCase, log auditlog.UseCase) *Service {
	return &Service{
		Endpoints: endpoints,
		Filters:   filters,
		Queue:     q,
		Log:       log,
	}
}

/* Handle relays one inbound notification. The returned error is nil for any
 * request that was accepted and audited, whatever the per-integration
 * outcomes; only an unknown endpoint or an unparseable payload is an error,
 * and even then the request is audited before returning.
 */
func (s *Service) Handle(ctx context.Context, endpointID string, req InboundRequest) (Receipt, error) {
	endpoint, err := s.Endpoints.Get(endpointID)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpointID)
	}

	requestID := uuid.New().String()

	extracted, parseErr := fields.Extract(req.Body)
	if parseErr != nil {
		attempts := s.failAll(endpoint, fmt.Sprintf("payload not parseable: %v", parseErr))
		receipt, recordErr := s.record(ctx, requestID, endpoint, req, attempts)
		if recordErr != nil {
			return Receipt{}, recordErr
		}
		return receipt, parseErr
	}

	filtered := s.applyFilter(ctx, endpoint, extracted)

	attempts := make([]auditlog.Attempt, 0, len(endpoint.Integrations))
	for _, integration := range endpoint.Integrations {
		attempts = append(attempts, s.attempt(ctx, requestID, endpoint, integration, filtered))
	}

	return s.record(ctx, requestID, endpoint, req, attempts)
}

// attempt relays to one integration and classifies the outcome
func (s *Service) attempt(ctx context.Context, requestID string, endpoint *endpoints.Endpoint, integration endpoints.Integration, m fields.FlatMap) auditlog.Attempt {
	a := auditlog.Attempt{
		IntegrationID:   integration.IntegrationID,
		IntegrationName: integration.Name,
		Platform:        integration.Platform,
		WebhookURL:      integration.WebhookURL,
		Timestamp:       time.Now(),
	}

	if !integration.Enabled {
		a.Status = auditlog.AttemptSkippedDisabled
		return a
	}
	if integration.WebhookURL == "" {
		a.Status = auditlog.AttemptSkippedNoAssociation
		a.ErrorDetails = "integration has no webhook URL"
		return a
	}

	formatted, err := platform.ForPlatform(integration.Platform).Format(m)
	if err != nil {
		a.Status = auditlog.AttemptFailedTransformation
		a.ErrorDetails = err.Error()
		return a
	}
	a.OutgoingPayload = formatted.Body

	_, err = s.Queue.Enqueue(ctx,
		queue.IntegrationRef{
			IntegrationID: integration.IntegrationID,
			Name:          integration.Name,
			Platform:      integration.Platform,
			WebhookURL:    integration.WebhookURL,
			SigningSecret: integration.SigningSecret,
		},
		queue.EndpointRef{
			EndpointID: endpoint.EndpointID,
			TenantID:   endpoint.TenantID,
			Name:       endpoint.Name,
		},
		requestID,
		formatted.Body,
		formatted.ContentType,
		integration.Priority,
		integration.MaxRetries,
	)
	if err != nil {
		a.Status = auditlog.AttemptFailedRelay
		a.ErrorDetails = err.Error()
		return a
	}

	// Success here means accepted into the queue; the dispatch outcome
	// arrives later through the outcome feedback path.
	a.Status = auditlog.AttemptSuccess
	return a
}

// applyFilter resolves and applies the endpoint's filter config, if any.
// A missing config falls back to the identity filter rather than dropping
// the notification.
func (s *Service) applyFilter(ctx context.Context, endpoint *endpoints.Endpoint, m fields.FlatMap) fields.FlatMap {
	if endpoint.FilterConfigID == "" {
		return m
	}
	config, err := s.Filters.Get(ctx, endpoint.FilterConfigID)
	if err != nil {
		return m
	}
	return fields.Filter(m, config)
}

// failAll marks every enabled integration as failed_transformation
func (s *Service) failAll(endpoint *endpoints.Endpoint, details string) []auditlog.Attempt {
	attempts := make([]auditlog.Attempt, 0, len(endpoint.Integrations))
	for _, integration := range endpoint.Integrations {
		a := auditlog.Attempt{
			IntegrationID:   integration.IntegrationID,
			IntegrationName: integration.Name,
			Platform:        integration.Platform,
			WebhookURL:      integration.WebhookURL,
			Timestamp:       time.Now(),
		}
		if integration.Enabled {
			a.Status = auditlog.AttemptFailedTransformation
			a.ErrorDetails = details
		} else {
			a.Status = auditlog.AttemptSkippedDisabled
		}
		attempts = append(attempts, a)
	}
	return attempts
}

// record writes the audit entry and builds the receipt
func (s *Service) record(ctx context.Context, requestID string, endpoint *endpoints.Endpoint, req InboundRequest, attempts []auditlog.Attempt) (Receipt, error) {
	entry, err := s.Log.Record(ctx, auditlog.Entry{
		ID:           requestID,
		TenantID:     endpoint.TenantID,
		EndpointID:   endpoint.EndpointID,
		EndpointName: endpoint.Name,
		SourceIP:     req.SourceIP,
		Method:       req.Method,
		Headers:      req.Headers,
		Body:         req.Body,
		Attempts:     attempts,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("recording audit entry: %w", err)
	}

	return Receipt{
		RequestID: entry.ID,
		Overall:   entry.Overall,
		Summary:   entry.Summary,
		Attempts:  entry.Attempts,
	}, nil
}
