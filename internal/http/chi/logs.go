package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/alert-relay/auditlog"
)

/* HTTP layer DTOs for the audit log */

// logEntryResponse represents one audit entry in list responses
type logEntryResponse struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	EndpointID   string    `json:"endpoint_id"`
	EndpointName string    `json:"endpoint_name"`
	Timestamp    time.Time `json:"timestamp"`
	SourceIP     string    `json:"source_ip"`
	Overall      string    `json:"overall_status"`
	Summary      string    `json:"summary"`
}

// logEntryDetailResponse adds the opened request snapshot and attempts
type logEntryDetailResponse struct {
	logEntryResponse
	Method   string             `json:"method"`
	Headers  map[string]string  `json:"headers"`
	Body     string             `json:"body"`
	Attempts []logAttemptDetail `json:"attempts"`
}

type logAttemptDetail struct {
	IntegrationID   string `json:"integration_id"`
	IntegrationName string `json:"integration_name"`
	Platform        string `json:"platform"`
	WebhookURL      string `json:"webhook_url"`
	Status          string `json:"status"`
	ErrorDetails    string `json:"error_details,omitempty"`
	OutgoingPayload string `json:"outgoing_payload,omitempty"`
	ResponseStatus  int    `json:"response_status,omitempty"`
	ResponseBody    string `json:"response_body,omitempty"`
}

// listLogEntries handles GET /v1/logs
func listLogEntries(logService auditlog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.URL.Query().Get("tenant_id")
		limit := queryInt(r, "limit", 100)

		entries, err := logService.List(r.Context(), tenantID, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		responses := make([]logEntryResponse, 0, len(entries))
		for _, e := range entries {
			responses = append(responses, toLogEntryResponse(e))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getLogEntry handles GET /v1/logs/:id
func getLogEntry(logService auditlog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		e, err := logService.Get(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		detail := logEntryDetailResponse{
			logEntryResponse: toLogEntryResponse(e),
			Method:           e.Method,
			Headers:          e.Headers,
			Body:             string(e.Body),
			Attempts:         make([]logAttemptDetail, 0, len(e.Attempts)),
		}
		for _, a := range e.Attempts {
			detail.Attempts = append(detail.Attempts, logAttemptDetail{
				IntegrationID:   a.IntegrationID,
				IntegrationName: a.IntegrationName,
				Platform:        a.Platform,
				WebhookURL:      a.WebhookURL,
				Status:          a.Status.String(),
				ErrorDetails:    a.ErrorDetails,
				OutgoingPayload: string(a.OutgoingPayload),
				ResponseStatus:  a.ResponseStatus,
				ResponseBody:    a.ResponseBody,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(detail); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// deleteLogEntry handles DELETE /v1/logs/:id
func deleteLogEntry(logService auditlog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := logService.Delete(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// deleteAllLogEntries handles DELETE /v1/logs
func deleteAllLogEntries(logService auditlog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := logService.DeleteAll(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func toLogEntryResponse(e auditlog.Entry) logEntryResponse {
	return logEntryResponse{
		ID:           e.ID,
		TenantID:     e.TenantID,
		EndpointID:   e.EndpointID,
		EndpointName: e.EndpointName,
		Timestamp:    e.Timestamp,
		SourceIP:     e.SourceIP,
		Overall:      e.Overall.String(),
		Summary:      e.Summary,
	}
}
