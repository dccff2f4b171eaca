package handlers

import (
	"context"
	"net/http"
	"time"

	"habitLoopAPI/internal/series"
	"habitLoopAPI/middleware"
	"habitLoopAPI/services"
)

type AnalyticsHandler struct {
	analyticsService  *services.AnalyticsService
	habitService      *services.HabitService
	completionService *services.CompletionService
	metricService     *services.MetricService
}

func NewAnalyticsHandler(
	analyticsService *services.AnalyticsService,
	habitService *services.HabitService,
	completionService *services.CompletionService,
	metricService *services.MetricService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService:  analyticsService,
		habitService:      habitService,
		completionService: completionService,
		metricService:     metricService,
	}
}

func (h *AnalyticsHandler) GetHabitSeries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameters 'start' and 'end' are required")
		return
	}

	filter := r.URL.Query().Get("collection")
	if filter == "" {
		filter = services.FilterAll
	}

	points, err := h.analyticsService.CompletionSeries(ctx, clerkID, start, end, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, points)
}

func (h *AnalyticsHandler) GetScreenTimeSeries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameters 'start' and 'end' are required")
		return
	}

	points, err := h.analyticsService.ScreenTimeSeries(ctx, clerkID, start, end)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, points)
}

func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameters 'start' and 'end' are required")
		return
	}

	summary, err := h.analyticsService.Summary(ctx, clerkID, start, end)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// GetSnapshot returns the owner's full tracking state for a range in one
// payload. Clients call it to replace optimistic state after a failed
// mutation, and it doubles as the data export.
func (h *AnalyticsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameters 'start' and 'end' are required")
		return
	}

	habits, err := h.habitService.ListHabits(ctx, clerkID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	collections, err := h.habitService.ListCollections(ctx, clerkID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	completions, err := h.completionService.ListCompletions(ctx, clerkID, start, end)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	metrics, err := h.metricService.GetMetricsRange(ctx, clerkID, start, end)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, series.Snapshot{
		Habits:      habits,
		Collections: collections,
		Completions: completions,
		Metrics:     metrics,
	})
}
