package chi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/alert-relay/queue"
)

/* HTTP layer DTOs for queue administration */

// deliveryResponse represents a queued delivery in the API
type deliveryResponse struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	Priority       int        `json:"priority"`
	RetryCount     int        `json:"retry_count"`
	MaxRetries     int        `json:"max_retries"`
	NextRetryAt    *time.Time `json:"next_retry_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAttemptAt  *time.Time `json:"last_attempt_at,omitempty"`
	Integration    string     `json:"integration"`
	Platform       string     `json:"platform"`
	Endpoint       string     `json:"endpoint"`
	TenantID       string     `json:"tenant_id"`
	RequestID      string     `json:"request_id"`
	ErrorDetails   string     `json:"error_details,omitempty"`
	ResponseStatus int        `json:"response_status,omitempty"`
}

// bulkActionRequest represents a bulk queue operation
type bulkActionRequest struct {
	IDs    []string `json:"ids"`
	Action string   `json:"action"`
}

// bulkActionResponse reports per-item outcomes
type bulkActionResponse struct {
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
}

// listDeliveries handles GET /v1/queue
func listDeliveries(queueService queue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 100)

		deliveries, err := queueService.List(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		responses := make([]deliveryResponse, 0, len(deliveries))
		for _, d := range deliveries {
			responses = append(responses, toDeliveryResponse(d))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getDelivery handles GET /v1/queue/:id
func getDelivery(queueService queue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		d, err := queueService.Get(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(toDeliveryResponse(d)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// getQueueStats handles GET /v1/queue/stats
func getQueueStats(queueService queue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats, err := queueService.Stats(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// retryDelivery handles POST /v1/queue/:id/retry
func retryDelivery(queueService queue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := queueService.Retry(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// deleteDelivery handles DELETE /v1/queue/:id
func deleteDelivery(queueService queue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := queueService.Delete(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// bulkQueueAction handles POST /v1/queue/bulk
func bulkQueueAction(queueService queue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req bulkActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(req.IDs) == 0 {
			http.Error(w, "ids cannot be empty", http.StatusBadRequest)
			return
		}

		action := queue.BulkActionKind(req.Action)
		switch action {
		case queue.BulkRetry, queue.BulkCancel, queue.BulkDelete:
		default:
			http.Error(w, "action must be one of retry, cancel, delete", http.StatusBadRequest)
			return
		}

		result := queueService.BulkAction(r.Context(), req.IDs, action)

		w.Header().Set("Content-Type", "application/json")
		response := bulkActionResponse{
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
		}
		if response.Succeeded == nil {
			response.Succeeded = []string{}
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// pauseQueue handles POST /v1/queue/pause
func pauseQueue(queueService queue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queueService.Pause()
		w.WriteHeader(http.StatusNoContent)
	})
}

// resumeQueue handles POST /v1/queue/resume
func resumeQueue(queueService queue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queueService.Resume()
		w.WriteHeader(http.StatusNoContent)
	})
}

func toDeliveryResponse(d queue.Delivery) deliveryResponse {
	resp := deliveryResponse{
		ID:             d.ID,
		Status:         d.Status.String(),
		Priority:       d.Priority,
		RetryCount:     d.RetryCount,
		MaxRetries:     d.MaxRetries,
		CreatedAt:      d.CreatedAt,
		Integration:    d.Integration.Name,
		Platform:       d.Integration.Platform,
		Endpoint:       d.Endpoint.Name,
		TenantID:       d.Endpoint.TenantID,
		RequestID:      d.RequestID,
		ErrorDetails:   d.ErrorDetails,
		ResponseStatus: d.ResponseStatus,
	}
	if !d.NextRetryAt.IsZero() {
		resp.NextRetryAt = &d.NextRetryAt
	}
	if !d.LastAttemptAt.IsZero() {
		resp.LastAttemptAt = &d.LastAttemptAt
	}
	return resp
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
