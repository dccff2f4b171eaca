package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitLoopAPI/internal/completion"
	"habitLoopAPI/internal/habit"
	"habitLoopAPI/internal/metric"
	"habitLoopAPI/services"
	"habitLoopAPI/tests/helpers"
)

func TestCompletionSeriesScoresHalfOfFour(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	habitService := services.NewHabitService(pool)
	completionService := services.NewCompletionService(pool)
	analyticsService := services.NewAnalyticsService(pool)

	ctx := context.Background()
	clerkID := seedTestUser(t, userService)

	var ids []string
	for _, name := range []string{"A", "B", "C", "D"} {
		h, err := habitService.CreateHabit(ctx, clerkID, &habit.CreateHabitRequest{Name: name, TargetDays: 7})
		require.NoError(t, err)
		ids = append(ids, h.ID)
	}

	for _, id := range ids[:2] {
		_, err := completionService.ToggleCompletion(ctx, clerkID, &completion.ToggleRequest{HabitID: id, Date: "2024-01-01"})
		require.NoError(t, err)
	}

	points, err := analyticsService.CompletionSeries(ctx, clerkID, "2024-01-01", "2024-01-01", services.FilterAll)
	require.NoError(t, err)

	require.Len(t, points, 1)
	assert.Equal(t, "2024-01-01", points[0].Date)
	assert.Equal(t, 50, points[0].Score)
}

func TestCompletionSeriesEmptyHabitSet(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	analyticsService := services.NewAnalyticsService(pool)

	ctx := context.Background()
	clerkID := seedTestUser(t, userService)

	points, err := analyticsService.CompletionSeries(ctx, clerkID, "2024-01-01", "2024-01-31", services.FilterAll)
	require.NoError(t, err, "empty habit set is not an error")
	assert.Empty(t, points)
}

func TestCompletionSeriesInvertedRange(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	habitService := services.NewHabitService(pool)
	analyticsService := services.NewAnalyticsService(pool)

	ctx := context.Background()
	clerkID := seedTestUser(t, userService)

	_, err := habitService.CreateHabit(ctx, clerkID, &habit.CreateHabitRequest{Name: "Sleep early", TargetDays: 7})
	require.NoError(t, err)

	points, err := analyticsService.CompletionSeries(ctx, clerkID, "2024-02-01", "2024-01-01", services.FilterAll)
	require.NoError(t, err, "inverted range is empty, not an error")
	assert.Empty(t, points)
}

func TestCompletionSeriesUnassignedFilterDenominator(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	habitService := services.NewHabitService(pool)
	completionService := services.NewCompletionService(pool)
	analyticsService := services.NewAnalyticsService(pool)

	ctx := context.Background()
	clerkID := seedTestUser(t, userService)

	coll, err := habitService.CreateCollection(ctx, clerkID, &habit.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)

	// 3 unassigned habits, 2 in the collection.
	var unassigned []string
	for _, name := range []string{"U1", "U2", "U3"} {
		h, err := habitService.CreateHabit(ctx, clerkID, &habit.CreateHabitRequest{Name: name, TargetDays: 7})
		require.NoError(t, err)
		unassigned = append(unassigned, h.ID)
	}
	for _, name := range []string{"W1", "W2"} {
		_, err := habitService.CreateHabit(ctx, clerkID, &habit.CreateHabitRequest{Name: name, TargetDays: 7, CollectionID: &coll.ID})
		require.NoError(t, err)
	}

	_, err = completionService.ToggleCompletion(ctx, clerkID, &completion.ToggleRequest{HabitID: unassigned[0], Date: "2024-05-01"})
	require.NoError(t, err)

	points, err := analyticsService.CompletionSeries(ctx, clerkID, "2024-05-01", "2024-05-01", services.FilterUnassigned)
	require.NoError(t, err)

	require.Len(t, points, 1)
	assert.Equal(t, 33, points[0].Score, "denominator must be the 3 unassigned habits only")

	points, err = analyticsService.CompletionSeries(ctx, clerkID, "2024-05-01", "2024-05-01", coll.ID)
	require.NoError(t, err)
	assert.Empty(t, points, "the collection's habits have no completions")
}

func TestSetMetricUpsertOverwrites(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	metricService := services.NewMetricService(pool)

	ctx := context.Background()
	clerkID := seedTestUser(t, userService)

	_, err := metricService.SetMetric(ctx, clerkID, &metric.SetMetricRequest{Date: "2024-03-01", Minutes: 90})
	require.NoError(t, err)

	m, err := metricService.SetMetric(ctx, clerkID, &metric.SetMetricRequest{Date: "2024-03-01", Minutes: 45})
	require.NoError(t, err)
	assert.Equal(t, 45, m.ScreenTimeMinutes)

	metrics, err := metricService.GetMetricsRange(ctx, clerkID, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, metrics, 1, "upsert must leave exactly one row per (owner, date)")
	assert.Equal(t, 45, metrics[0].ScreenTimeMinutes)
}

func TestGetMetricAbsentIsNil(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	metricService := services.NewMetricService(pool)

	ctx := context.Background()
	clerkID := seedTestUser(t, userService)

	m, err := metricService.GetMetric(ctx, clerkID, "2024-03-02")
	require.NoError(t, err, "absence is a normal state")
	assert.Nil(t, m)
}

func TestSummaryCountsPerHabit(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	habitService := services.NewHabitService(pool)
	completionService := services.NewCompletionService(pool)
	analyticsService := services.NewAnalyticsService(pool)

	ctx := context.Background()
	clerkID := seedTestUser(t, userService)

	h, err := habitService.CreateHabit(ctx, clerkID, &habit.CreateHabitRequest{Name: "Hydrate", TargetDays: 5})
	require.NoError(t, err)

	for _, date := range []string{"2024-06-01", "2024-06-02", "2024-06-03"} {
		_, err := completionService.ToggleCompletion(ctx, clerkID, &completion.ToggleRequest{HabitID: h.ID, Date: date})
		require.NoError(t, err)
	}

	summary, err := analyticsService.Summary(ctx, clerkID, "2024-06-01", "2024-06-30")
	require.NoError(t, err)

	require.Len(t, summary.Habits, 1)
	assert.Equal(t, "Hydrate", summary.Habits[0].Name)
	assert.Equal(t, 5, summary.Habits[0].TargetDays)
	assert.Equal(t, 3, summary.Habits[0].Completed)
	assert.Equal(t, 3, summary.ActiveDays)
}

func TestSummarySkipsOrphanedDays(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	habitService := services.NewHabitService(pool)
	completionService := services.NewCompletionService(pool)
	analyticsService := services.NewAnalyticsService(pool)

	ctx := context.Background()
	clerkID := seedTestUser(t, userService)

	kept, err := habitService.CreateHabit(ctx, clerkID, &habit.CreateHabitRequest{Name: "Walk", TargetDays: 7})
	require.NoError(t, err)
	dropped, err := habitService.CreateHabit(ctx, clerkID, &habit.CreateHabitRequest{Name: "Nap", TargetDays: 7})
	require.NoError(t, err)

	_, err = completionService.ToggleCompletion(ctx, clerkID, &completion.ToggleRequest{HabitID: kept.ID, Date: "2024-07-01"})
	require.NoError(t, err)
	_, err = completionService.ToggleCompletion(ctx, clerkID, &completion.ToggleRequest{HabitID: dropped.ID, Date: "2024-07-02"})
	require.NoError(t, err)

	require.NoError(t, habitService.DeleteHabit(ctx, clerkID, dropped.ID))

	summary, err := analyticsService.Summary(ctx, clerkID, "2024-07-01", "2024-07-31")
	require.NoError(t, err)

	require.Len(t, summary.Habits, 1)
	assert.Equal(t, "Walk", summary.Habits[0].Name)
	assert.Equal(t, 1, summary.ActiveDays, "a day whose only activity was on a deleted habit is not active")

	// The record itself survives the deletion; it just no longer counts.
	completions, err := completionService.ListCompletions(ctx, clerkID, "2024-07-02", "2024-07-02")
	require.NoError(t, err)
	assert.Len(t, completions, 1)
}
