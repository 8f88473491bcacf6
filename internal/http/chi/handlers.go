package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/alert-relay/auditlog"
	"github.com/marcelsud/alert-relay/counter"
	"github.com/marcelsud/alert-relay/endpoints"
	"github.com/marcelsud/alert-relay/fields"
	"github.com/marcelsud/alert-relay/queue"
	"github.com/marcelsud/alert-relay/relay"
)

// Services bundles the use cases the HTTP layer exposes
type Services struct {
	Relay     relay.UseCase
	Queue     queue.UseCase
	Logs      auditlog.UseCase
	Filters   fields.ConfigUseCase
	Endpoints *endpoints.Loader

	// Inbound is optional; when set, accepted notifications are counted per endpoint
	Inbound counter.Counter

	// Metrics is optional; when set, it serves GET /metrics
	Metrics http.Handler
}

// Handlers sets up the relay API routes
func Handlers(ctx context.Context, s Services) *chi.Mux {
	logger := httplog.NewLogger("alert-relay", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		// Inbound relay path
		r.Get("/endpoints", getEndpoints(s.Endpoints).ServeHTTP)
		r.Post("/endpoints/{endpoint_id}/notifications", postNotification(s.Relay, s.Inbound).ServeHTTP)

		// Queue administration
		r.Get("/queue", listDeliveries(s.Queue).ServeHTTP)
		r.Get("/queue/stats", getQueueStats(s.Queue).ServeHTTP)
		r.Post("/queue/pause", pauseQueue(s.Queue).ServeHTTP)
		r.Post("/queue/resume", resumeQueue(s.Queue).ServeHTTP)
		r.Post("/queue/bulk", bulkQueueAction(s.Queue).ServeHTTP)
		r.Get("/queue/{id}", getDelivery(s.Queue).ServeHTTP)
		r.Post("/queue/{id}/retry", retryDelivery(s.Queue).ServeHTTP)
		r.Delete("/queue/{id}", deleteDelivery(s.Queue).ServeHTTP)

		// Audit log administration
		r.Get("/logs", listLogEntries(s.Logs).ServeHTTP)
		r.Delete("/logs", deleteAllLogEntries(s.Logs).ServeHTTP)
		r.Get("/logs/{id}", getLogEntry(s.Logs).ServeHTTP)
		r.Delete("/logs/{id}", deleteLogEntry(s.Logs).ServeHTTP)

		// Filter configurations
		r.Get("/filters", listFilterConfigs(s.Filters).ServeHTTP)
		r.Post("/filters", postFilterConfig(s.Filters).ServeHTTP)
		r.Get("/filters/{id}", getFilterConfig(s.Filters).ServeHTTP)
		r.Put("/filters/{id}", putFilterConfig(s.Filters).ServeHTTP)
		r.Delete("/filters/{id}", deleteFilterConfig(s.Filters).ServeHTTP)
	})

	return r
}
