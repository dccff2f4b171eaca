package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"habitLoopAPI/internal/metric"
	"habitLoopAPI/middleware"
	"habitLoopAPI/services"
)

type MetricHandler struct {
	metricService *services.MetricService
}

func NewMetricHandler(metricService *services.MetricService) *MetricHandler {
	return &MetricHandler{
		metricService: metricService,
	}
}

// GetScreenTime serves both lookups: ?date= for a single day,
// ?start=&end= for a range.
func (h *MetricHandler) GetScreenTime(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if date := r.URL.Query().Get("date"); date != "" {
		m, err := h.metricService.GetMetric(ctx, clerkID, date)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, m)
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		respondWithError(w, http.StatusBadRequest, "Provide 'date' or both 'start' and 'end'")
		return
	}

	metrics, err := h.metricService.GetMetricsRange(ctx, clerkID, start, end)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, metrics)
}

func (h *MetricHandler) SetScreenTime(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req metric.SetMetricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.metricService.SetMetric(ctx, clerkID, &req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, m)
}
