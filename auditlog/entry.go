package auditlog

import (
	"fmt"
	"time"
)

/* Entry is one inbound request's audit record: what arrived, what was sent
 * where, and how each integration fared. The request snapshot (headers,
 * body) and the attempt list are stored encrypted at rest.
 */
type Entry struct {
	ID           string
	TenantID     string
	EndpointID   string
	EndpointName string
	Timestamp    time.Time
	SourceIP     string
	Method       string
	Headers      map[string]string
	Body         []byte
	Summary      string
	Overall      OverallStatus
	Attempts     []Attempt
}

// Attempt is the audit record of one integration's handling of a request
type Attempt struct {
	IntegrationID   string
	IntegrationName string
	Platform        string
	WebhookURL      string
	Status          AttemptStatus
	ErrorDetails    string
	OutgoingPayload []byte
	ResponseStatus  int
	ResponseBody    string
	Timestamp       time.Time
}

/* AttemptStatus classifies one integration's outcome. Success at record
 * time means the delivery was accepted into the queue; the terminal
 * dispatch outcome arrives later through the outcome feedback path.
 */
type AttemptStatus int

const (
	AttemptSuccess AttemptStatus = iota + 1
	AttemptFailedTransformation
	AttemptFailedRelay
	AttemptSkippedDisabled
	AttemptSkippedNoAssociation
)

// String returns the string representation of the attempt status
func (s AttemptStatus) String() string {
	switch s {
	case AttemptSuccess:
		return "success"
	case AttemptFailedTransformation:
		return "failed_transformation"
	case AttemptFailedRelay:
		return "failed_relay"
	case AttemptSkippedDisabled:
		return "skipped_disabled"
	case AttemptSkippedNoAssociation:
		return "skipped_no_association"
	default:
		return "unknown"
	}
}

// NewAttemptStatus creates an AttemptStatus from a string
func NewAttemptStatus(str string) AttemptStatus {
	switch str {
	case "success":
		return AttemptSuccess
	case "failed_transformation":
		return AttemptFailedTransformation
	case "failed_relay":
		return AttemptFailedRelay
	case "skipped_disabled":
		return AttemptSkippedDisabled
	case "skipped_no_association":
		return AttemptSkippedNoAssociation
	default:
		return AttemptFailedRelay
	}
}

// Validate checks if the attempt status is valid
func (s AttemptStatus) Validate() error {
	if s < AttemptSuccess || s > AttemptSkippedNoAssociation {
		return fmt.Errorf("invalid attempt status: %d", s)
	}
	return nil
}

// OverallStatus summarizes an entry's attempts
type OverallStatus int

const (
	OverallSuccess OverallStatus = iota + 1
	OverallPartialFailure
	OverallTotalFailure
	OverallNoIntegrations
)

// String returns the string representation of the overall status
func (s OverallStatus) String() string {
	switch s {
	case OverallSuccess:
		return "success"
	case OverallPartialFailure:
		return "partial_failure"
	case OverallTotalFailure:
		return "total_failure"
	case OverallNoIntegrations:
		return "no_integrations_triggered"
	default:
		return "unknown"
	}
}

// NewOverallStatus creates an OverallStatus from a string
func NewOverallStatus(str string) OverallStatus {
	switch str {
	case "success":
		return OverallSuccess
	case "partial_failure":
		return OverallPartialFailure
	case "total_failure":
		return OverallTotalFailure
	case "no_integrations_triggered":
		return OverallNoIntegrations
	default:
		return OverallTotalFailure
	}
}

/* ReduceOverall computes the summary status from the attempt list.
 * Skipped attempts count as non-success: a request whose every integration
 * was skipped reduces to total_failure, not success.
 */
func ReduceOverall(attempts []Attempt) OverallStatus {
	if len(attempts) == 0 {
		return OverallNoIntegrations
	}

	succeeded := 0
	for _, a := range attempts {
		if a.Status == AttemptSuccess {
			succeeded++
		}
	}

	switch {
	case succeeded == len(attempts):
		return OverallSuccess
	case succeeded == 0:
		return OverallTotalFailure
	default:
		return OverallPartialFailure
	}
}
