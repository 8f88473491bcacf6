package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/alert-relay/auditlog"
	"github.com/marcelsud/alert-relay/counter"
	"github.com/marcelsud/alert-relay/endpoints"
	"github.com/marcelsud/alert-relay/fields"
	"github.com/marcelsud/alert-relay/relay"
)

/* HTTP layer DTOs for the inbound relay path
 * Separate from domain entities to avoid leaking internal structure
 */

// attemptResponse represents one integration attempt in the API
type attemptResponse struct {
	IntegrationID   string `json:"integration_id"`
	IntegrationName string `json:"integration_name"`
	Platform        string `json:"platform"`
	Status          string `json:"status"`
	ErrorDetails    string `json:"error_details,omitempty"`
}

// notificationResponse represents the API response for an inbound notification
type notificationResponse struct {
	RequestID string            `json:"request_id"`
	Overall   string            `json:"overall_status"`
	Summary   string            `json:"summary"`
	Attempts  []attemptResponse `json:"attempts"`
}

// endpointResponse represents an endpoint in the API
type endpointResponse struct {
	EndpointID   string `json:"endpoint_id"`
	TenantID     string `json:"tenant_id"`
	Name         string `json:"name"`
	Integrations int    `json:"integrations"`
}

// postNotification handles POST /v1/endpoints/:endpoint_id/notifications
func postNotification(relayService relay.UseCase, inbound counter.Counter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpointID := chi.URLParam(r, "endpoint_id")
		if endpointID == "" {
			http.Error(w, "endpoint_id is required", http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		headers := make(map[string]string)
		for key, values := range r.Header {
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}

		receipt, err := relayService.Handle(r.Context(), endpointID, relay.InboundRequest{
			SourceIP: clientIP(r),
			Method:   r.Method,
			Headers:  headers,
			Body:     body,
		})

		var parseErr *fields.ParseError
		switch {
		case errors.Is(err, relay.ErrUnknownEndpoint):
			http.Error(w, fmt.Sprintf("endpoint not found: %s", endpointID), http.StatusNotFound)
			return
		case errors.As(err, &parseErr):
			// The rejection is audited; the caller still gets the receipt
			writeReceipt(w, http.StatusBadRequest, receipt)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if inbound != nil {
			// Best effort accounting; never fails the request
			_, _ = inbound.Incr(r.Context(), "inbound:"+endpointID, 24*time.Hour)
		}

		writeReceipt(w, http.StatusAccepted, receipt)
	})
}

// getEndpoints handles GET /v1/endpoints
func getEndpoints(loader *endpoints.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all := loader.List()

		responses := make([]endpointResponse, 0, len(all))
		for _, endpoint := range all {
			responses = append(responses, endpointResponse{
				EndpointID:   endpoint.EndpointID,
				TenantID:     endpoint.TenantID,
				Name:         endpoint.Name,
				Integrations: len(endpoint.Integrations),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func writeReceipt(w http.ResponseWriter, status int, receipt relay.Receipt) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(toNotificationResponse(receipt)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toNotificationResponse(receipt relay.Receipt) notificationResponse {
	attempts := make([]attemptResponse, 0, len(receipt.Attempts))
	for _, a := range receipt.Attempts {
		attempts = append(attempts, toAttemptResponse(a))
	}
	return notificationResponse{
		RequestID: receipt.RequestID,
		Overall:   receipt.Overall.String(),
		Summary:   receipt.Summary,
		Attempts:  attempts,
	}
}

func toAttemptResponse(a auditlog.Attempt) attemptResponse {
	return attemptResponse{
		IntegrationID:   a.IntegrationID,
		IntegrationName: a.IntegrationName,
		Platform:        a.Platform,
		Status:          a.Status.String(),
		ErrorDetails:    a.ErrorDetails,
	}
}

// clientIP extracts the caller address, honoring the usual proxy header
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
