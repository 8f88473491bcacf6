package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/alert-relay/fields"
)

/* HTTP layer DTOs for filter configurations */

// filterConfigRequest represents a filter config in requests
type filterConfigRequest struct {
	Name           string   `json:"name"`
	IncludedFields []string `json:"included_fields"`
	ExcludedFields []string `json:"excluded_fields"`
	Description    string   `json:"description"`
	SamplePayload  string   `json:"sample_payload"`
}

// filterConfigResponse represents a filter config in responses
type filterConfigResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	IncludedFields []string `json:"included_fields"`
	ExcludedFields []string `json:"excluded_fields"`
	Description    string   `json:"description,omitempty"`
	SamplePayload  string   `json:"sample_payload,omitempty"`
}

// listFilterConfigs handles GET /v1/filters
func listFilterConfigs(filterService fields.ConfigUseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := filterService.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		responses := make([]filterConfigResponse, 0, len(all))
		for _, config := range all {
			responses = append(responses, toFilterConfigResponse(config))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getFilterConfig handles GET /v1/filters/:id
func getFilterConfig(filterService fields.ConfigUseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		config, err := filterService.Get(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(toFilterConfigResponse(config)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// postFilterConfig handles POST /v1/filters
func postFilterConfig(filterService fields.ConfigUseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req filterConfigRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		created, err := filterService.Create(r.Context(), fields.FilterConfig{
			Name:           req.Name,
			IncludedFields: req.IncludedFields,
			ExcludedFields: req.ExcludedFields,
			Description:    req.Description,
			SamplePayload:  req.SamplePayload,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toFilterConfigResponse(created)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// putFilterConfig handles PUT /v1/filters/:id
func putFilterConfig(filterService fields.ConfigUseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req filterConfigRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err := filterService.Update(r.Context(), fields.FilterConfig{
			ID:             id,
			Name:           req.Name,
			IncludedFields: req.IncludedFields,
			ExcludedFields: req.ExcludedFields,
			Description:    req.Description,
			SamplePayload:  req.SamplePayload,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// deleteFilterConfig handles DELETE /v1/filters/:id
func deleteFilterConfig(filterService fields.ConfigUseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := filterService.Delete(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func toFilterConfigResponse(config fields.FilterConfig) filterConfigResponse {
	resp := filterConfigResponse{
		ID:             config.ID,
		Name:           config.Name,
		IncludedFields: config.IncludedFields,
		ExcludedFields: config.ExcludedFields,
		Description:    config.Description,
		SamplePayload:  config.SamplePayload,
	}
	if resp.IncludedFields == nil {
		resp.IncludedFields = []string{}
	}
	if resp.ExcludedFields == nil {
		resp.ExcludedFields = []string{}
	}
	return resp
}
