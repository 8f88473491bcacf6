package auditlog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/alert-relay/queue"
)

// UseCase defines the audit log operations the HTTP layer and the relay need
type UseCase interface {
	Record(ctx context.Context, e Entry) (Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context, tenantID string, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

/* Service represents the business logic layer of the audit log.
 * Uses pointer semantics as it's an API, not data.
 */
type Service struct {
	Store Store

	// outcomeMu serializes the read-modify-write on an entry's attempts blob;
	// batch workers report outcomes concurrently
	outcomeMu sync.Mutex
}

// NewService creates a new audit log service with dependency injection
func NewService(store Store) *Service {
	return &Service{
		Store: store,
	}
}

/* Record persists one audit entry for an inbound request. The entry ID is
 * the request ID when the caller set one, so later delivery outcomes can
 * find their way back to it.
 */
func (s *Service) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Overall = ReduceOverall(e.Attempts)
	e.Summary = summarize(e.Overall, e.Attempts)

	if err := s.Store.Insert(ctx, e); err != nil {
		return Entry{}, fmt.Errorf("storing audit entry: %w", err)
	}
	return e, nil
}

/* RecordOutcome folds a terminal delivery outcome back into the audit entry
 * of the originating request, updating the matching attempt and recomputing
 * the summary. Implements the queue's outcome feedback contract.
 */
func (s *Service) RecordOutcome(ctx context.Context, outcome queue.Outcome) error {
	s.outcomeMu.Lock()
	defer s.outcomeMu.Unlock()

	e, err := s.Store.Get(ctx, outcome.RequestID)
	if err != nil {
		return fmt.Errorf("getting audit entry: %w", err)
	}

	updated := false
	for i := range e.Attempts {
		if e.Attempts[i].IntegrationID != outcome.IntegrationID {
			continue
		}
		if outcome.Succeeded {
			e.Attempts[i].Status = AttemptSuccess
			e.Attempts[i].ErrorDetails = ""
		} else {
			e.Attempts[i].Status = AttemptFailedRelay
			e.Attempts[i].ErrorDetails = outcome.ErrorDetails
		}
		e.Attempts[i].ResponseStatus = outcome.ResponseStatus
		e.Attempts[i].ResponseBody = outcome.ResponseBody
		updated = true
		break
	}
	if !updated {
		return fmt.Errorf("no attempt for integration %s on entry %s", outcome.IntegrationID, outcome.RequestID)
	}

	overall := ReduceOverall(e.Attempts)
	if err := s.Store.UpdateAttempts(ctx, e.ID, e.Attempts, overall, summarize(overall, e.Attempts)); err != nil {
		return fmt.Errorf("updating audit entry: %w", err)
	}
	return nil
}

// Get retrieves an audit entry by ID
func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	e, err := s.Store.Get(ctx, id)
	if err != nil {
		return Entry{}, fmt.Errorf("getting audit entry: %w", err)
	}
	return e, nil
}

// List returns audit entries newest first, optionally scoped to a tenant
func (s *Service) List(ctx context.Context, tenantID string, limit int) ([]Entry, error) {
	entries, err := s.Store.List(ctx, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	return entries, nil
}

// Delete removes an audit entry
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting audit entry: %w", err)
	}
	return nil
}

// DeleteAll clears the audit log
func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.Store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing audit log: %w", err)
	}
	return nil
}

// Count returns the number of stored entries
func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.Store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting audit entries: %w", err)
	}
	return count, nil
}

// summarize renders the one-line summary carried next to the overall status
func summarize(overall OverallStatus, attempts []Attempt) string {
	succeeded := 0
	for _, a := range attempts {
		if a.Status == AttemptSuccess {
			succeeded++
		}
	}

	switch overall {
	case OverallNoIntegrations:
		return "no integrations triggered"
	case OverallSuccess:
		return fmt.Sprintf("relayed to %d integration(s)", succeeded)
	default:
		return fmt.Sprintf("relayed to %d of %d integration(s)", succeeded, len(attempts))
	}
}
