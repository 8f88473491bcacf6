package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

/* Service represents the business logic layer of the delivery queue.
 * Uses pointer semantics as it's an API, not data.
 *
 * State machine per delivery:
 *   pending --claim--> processing
 *   processing --2xx--> completed
 *   processing --failure, retries remain--> pending (nextRetryAt set)
 *   processing --failure, retries exhausted--> failed
 *   failed --manual retry--> pending (retryCount reset)
 *   any non-completed --cancel--> removed
 */

// DefaultMaxRetries applies when an enqueue caller passes a negative value
const DefaultMaxRetries = 3

// UseCase defines the operations the dashboard and the inbound relay need
type UseCase interface {
	Enqueue(ctx context.Context, integration IntegrationRef, endpoint EndpointRef, requestID string, payload []byte, contentType string, priority, maxRetries int) (Delivery, error)
	ProcessBatch(ctx context.Context, limit int) (BatchResult, error)
	Retry(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	BulkAction(ctx context.Context, ids []string, action BulkActionKind) BulkResult
	Get(ctx context.Context, id string) (Delivery, error)
	List(ctx context.Context, limit int) ([]Delivery, error)
	Stats(ctx context.Context) (Stats, error)
	Pause()
	Resume()
	Enabled() bool
}

/* Outcome is the terminal result of a delivery, fed back to the audit log
 * of the originating request.
 */
type Outcome struct {
	RequestID      string
	IntegrationID  string
	Succeeded      bool
	ResponseStatus int
	ResponseBody   string
	ErrorDetails   string
}

// OutcomeRecorder receives terminal delivery outcomes
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, outcome Outcome) error
}

// BatchResult counts what one ProcessBatch pass did
type BatchResult struct {
	Claimed   int
	Completed int
	Retried   int
	Failed    int
	Errors    int
}

// BulkActionKind is one of the per-item independent bulk operations
type BulkActionKind string

const (
	BulkRetry  BulkActionKind = "retry"
	BulkCancel BulkActionKind = "cancel"
	BulkDelete BulkActionKind = "delete"
)

// BulkResult reports per-item outcomes; one item's failure never aborts the others
type BulkResult struct {
	Succeeded []string
	Failed    map[string]string
}

// Stats is the queue snapshot the dashboard polls
type Stats struct {
	StatusCounts map[string]int64 `json:"status_counts"`
	Total        int64            `json:"total"`
	Enabled      bool             `json:"enabled"`
	CollectedAt  time.Time        `json:"collected_at"`
}

type Service struct {
	Store      Store
	Dispatcher Dispatcher
	Backoff    Backoff
	// Outcomes is optional; when set, terminal transitions are reported to it
	Outcomes OutcomeRecorder
	// CompletedTTL expires completed rows; zero keeps them until deleted
	CompletedTTL time.Duration

	enabled atomic.Bool
}

// NewService creates a new queue service with dependency injection
func NewService(store Store, dispatcher Dispatcher) *Service {
	s := &Service{
		Store:      store,
		Dispatcher: dispatcher,
		Backoff:    DefaultBackoff(),
	}
	s.enabled.Store(true)
	return s
}

// Enqueue inserts a new pending delivery and returns it
func (s *Service) Enqueue(ctx context.Context, integration IntegrationRef, endpoint EndpointRef, requestID string, payload []byte, contentType string, priority, maxRetries int) (Delivery, error) {
	if integration.WebhookURL == "" {
		return Delivery{}, fmt.Errorf("integration webhook URL cannot be empty")
	}
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}

	now := time.Now()
	d := Delivery{
		ID:          uuid.New().String(),
		Status:      Pending,
		Priority:    priority,
		RetryCount:  0,
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		Integration: integration,
		Endpoint:    endpoint,
		RequestID:   requestID,
		Payload:     payload,
		ContentType: contentType,
	}

	if err := s.Store.Insert(ctx, d); err != nil {
		return Delivery{}, fmt.Errorf("storing delivery: %w", err)
	}
	return d, nil
}

/* ProcessBatch claims up to limit due deliveries and dispatches them
 * concurrently. A no-op returning zero counters while the queue is paused.
 */
func (s *Service) ProcessBatch(ctx context.Context, limit int) (BatchResult, error) {
	if !s.enabled.Load() {
		return BatchResult{}, nil
	}

	batch, err := s.Store.ClaimBatch(ctx, limit, time.Now())
	if err != nil {
		return BatchResult{}, fmt.Errorf("claiming batch: %w", err)
	}

	result := BatchResult{Claimed: len(batch)}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, d := range batch {
		wg.Add(1)
		go func(d Delivery) {
			defer wg.Done()
			status, err := s.processOne(ctx, d)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Errors++
			case status == Completed:
				result.Completed++
			case status == Pending:
				result.Retried++
			case status == Failed:
				result.Failed++
			}
		}(d)
	}
	wg.Wait()

	return result, nil
}

/* processOne performs exactly one dispatch attempt and resolves the
 * transient processing state to completed, pending or failed.
 */
func (s *Service) processOne(ctx context.Context, d Delivery) (Status, error) {
	now := time.Now()
	d.Status = Processing
	d.LastAttemptAt = now
	d.UpdatedAt = now
	d.NextRetryAt = time.Time{}
	if err := s.Store.Update(ctx, d); err != nil {
		return 0, fmt.Errorf("marking delivery processing: %w", err)
	}

	result, dispatchErr := s.Dispatcher.Dispatch(ctx, d)
	d.ResponseStatus = result.StatusCode
	d.ResponseBody = result.Body
	d.UpdatedAt = time.Now()

	if dispatchErr == nil {
		d.Status = Completed
		d.ErrorDetails = ""
		if err := s.Store.Update(ctx, d); err != nil {
			return 0, fmt.Errorf("marking delivery completed: %w", err)
		}
		if s.CompletedTTL > 0 {
			if err := s.Store.SetTTL(ctx, d.ID, s.CompletedTTL); err != nil {
				return 0, fmt.Errorf("setting completed TTL: %w", err)
			}
		}
		s.notify(ctx, d, true)
		return Completed, nil
	}

	d.ErrorDetails = dispatchErr.Error()
	if d.RetryCount < d.MaxRetries {
		d.RetryCount++
		d.Status = Pending
		d.NextRetryAt = time.Now().Add(s.Backoff.Delay(d.RetryCount))
		if err := s.Store.Update(ctx, d); err != nil {
			return 0, fmt.Errorf("rescheduling delivery: %w", err)
		}
		return Pending, nil
	}

	d.Status = Failed
	if err := s.Store.Update(ctx, d); err != nil {
		return 0, fmt.Errorf("marking delivery failed: %w", err)
	}
	s.notify(ctx, d, false)
	return Failed, nil
}

// notify reports a terminal outcome; recording failures must not fail the delivery
func (s *Service) notify(ctx context.Context, d Delivery, succeeded bool) {
	if s.Outcomes == nil {
		return
	}
	_ = s.Outcomes.RecordOutcome(ctx, Outcome{
		RequestID:      d.RequestID,
		IntegrationID:  d.Integration.IntegrationID,
		Succeeded:      succeeded,
		ResponseStatus: d.ResponseStatus,
		ResponseBody:   d.ResponseBody,
		ErrorDetails:   d.ErrorDetails,
	})
}

// Retry returns a failed delivery to pending with its retry count reset
func (s *Service) Retry(ctx context.Context, id string) error {
	d, err := s.Store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting delivery: %w", err)
	}
	if d.Status != Failed {
		return fmt.Errorf("cannot retry delivery %s in status %s", id, d.Status)
	}

	d.Status = Pending
	d.RetryCount = 0
	d.NextRetryAt = time.Time{}
	d.ErrorDetails = ""
	d.UpdatedAt = time.Now()
	if err := s.Store.Update(ctx, d); err != nil {
		return fmt.Errorf("requeueing delivery: %w", err)
	}
	return nil
}

// Cancel removes a delivery unless it already completed
func (s *Service) Cancel(ctx context.Context, id string) error {
	d, err := s.Store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting delivery: %w", err)
	}
	if d.Status == Completed {
		return fmt.Errorf("cannot cancel completed delivery %s", id)
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting delivery: %w", err)
	}
	return nil
}

// Delete removes a delivery regardless of state
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting delivery: %w", err)
	}
	return nil
}

// BulkAction applies an action to a set of ids, each item independent
func (s *Service) BulkAction(ctx context.Context, ids []string, action BulkActionKind) BulkResult {
	result := BulkResult{
		Failed: make(map[string]string),
	}

	for _, id := range ids {
		var err error
		switch action {
		case BulkRetry:
			err = s.Retry(ctx, id)
		case BulkCancel:
			err = s.Cancel(ctx, id)
		case BulkDelete:
			err = s.Delete(ctx, id)
		default:
			err = fmt.Errorf("unknown bulk action: %s", action)
		}

		if err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result
}

// Get retrieves a delivery by ID
func (s *Service) Get(ctx context.Context, id string) (Delivery, error) {
	d, err := s.Store.Get(ctx, id)
	if err != nil {
		return Delivery{}, fmt.Errorf("getting delivery: %w", err)
	}
	return d, nil
}

// List returns recent deliveries for the dashboard
func (s *Service) List(ctx context.Context, limit int) ([]Delivery, error) {
	deliveries, err := s.Store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	return deliveries, nil
}

// Stats returns the queue snapshot the dashboard polls
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	counts, err := s.Store.CountByStatus(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("counting deliveries: %w", err)
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	return Stats{
		StatusCounts: counts,
		Total:        total,
		Enabled:      s.enabled.Load(),
		CollectedAt:  time.Now(),
	}, nil
}

// Pause stops new batches from being pulled; in-flight dispatches finish
func (s *Service) Pause() {
	s.enabled.Store(false)
}

// Resume re-enables batch processing
func (s *Service) Resume() {
	s.enabled.Store(true)
}

// Enabled reports whether batch processing is active
func (s *Service) Enabled() bool {
	return s.enabled.Load()
}
