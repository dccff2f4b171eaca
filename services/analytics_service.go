package services

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitLoopAPI/internal/apperr"
	"habitLoopAPI/internal/datekey"
	"habitLoopAPI/internal/metric"
	"habitLoopAPI/internal/series"
)

// Habit filter values accepted by CompletionSeries. Anything else is treated
// as a collection id.
const (
	FilterAll        = "all"
	FilterUnassigned = "unassigned"
)

type AnalyticsService struct {
	db *pgxpool.Pool
}

func NewAnalyticsService(db *pgxpool.Pool) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// CompletionSeries computes the per-day completion percentage across the
// owner's active habit set for [startDate, endDate] inclusive.
//
// The result is sparse: dates where nothing was completed are absent, not
// present with score 0. Consumers that chart a dense range iterate the range
// themselves (datekey.Range) and default missing days to zero. An empty
// active set and an inverted range both yield an empty series, never an
// error.
func (s *AnalyticsService) CompletionSeries(ctx context.Context, clerkID string, startDate, endDate, filter string) ([]series.HabitPoint, error) {
	startKey, err := datekey.Parse(startDate)
	if err != nil {
		return nil, apperr.Validation("invalid start date: %v", err)
	}
	endKey, err := datekey.Parse(endDate)
	if err != nil {
		return nil, apperr.Validation("invalid end date: %v", err)
	}

	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	if startKey > endKey {
		return []series.HabitPoint{}, nil
	}

	habitIDs, err := s.activeHabitSet(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if len(habitIDs) == 0 {
		return []series.HabitPoint{}, nil
	}

	query := `
	SELECT to_char(date, 'YYYY-MM-DD')
	FROM habit_completions
	WHERE user_id = $1
		AND date >= $2
		AND date <= $3
		AND habit_id = ANY($4)
	`

	rows, err := s.db.Query(ctx, query, userID, startKey, endKey, habitIDs)
	if err != nil {
		return nil, apperr.Storage(err, "failed to fetch completions")
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, apperr.Storage(err, "failed to scan completion date")
		}
		dates = append(dates, d)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Storage(err, "error iterating completions")
	}

	return buildHabitSeries(dates, len(habitIDs)), nil
}

// activeHabitSet resolves the habit ids the filter selects: all of the
// owner's habits, only those outside any collection, or those in one
// specific collection.
func (s *AnalyticsService) activeHabitSet(ctx context.Context, userID uuid.UUID, filter string) ([]uuid.UUID, error) {
	query := `SELECT id FROM user_habits WHERE user_id = $1`
	args := []any{userID}

	switch filter {
	case FilterAll, "":
	case FilterUnassigned:
		query += ` AND collection_id IS NULL`
	default:
		collectionUUID, err := uuid.Parse(filter)
		if err != nil {
			return nil, apperr.Validation("invalid habit filter %q", filter)
		}
		query += ` AND collection_id = $2`
		args = append(args, collectionUUID)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage(err, "failed to resolve habit set")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.Storage(err, "failed to scan habit id")
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Storage(err, "error iterating habit ids")
	}

	return ids, nil
}

// buildHabitSeries groups completion dates and scores each day as the
// rounded percentage of totalHabits completed. Scores are clamped to 100 so
// stray duplicate rows can never push a day above full completion.
func buildHabitSeries(completionDates []string, totalHabits int) []series.HabitPoint {
	if totalHabits <= 0 {
		return []series.HabitPoint{}
	}

	counts := make(map[string]int)
	for _, d := range completionDates {
		counts[d]++
	}

	points := make([]series.HabitPoint, 0, len(counts))
	for date, count := range counts {
		score := int(math.Round(float64(count) / float64(totalHabits) * 100))
		if score > 100 {
			score = 100
		}
		points = append(points, series.HabitPoint{Date: date, Score: score})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// buildScreenTimePoints reshapes metric rows for charting, with hours
// reported to one decimal place.
func buildScreenTimePoints(metrics []*metric.DailyMetric) []series.ScreenTimePoint {
	points := make([]series.ScreenTimePoint, 0, len(metrics))
	for _, m := range metrics {
		points = append(points, series.ScreenTimePoint{
			Date:    m.Date,
			Minutes: m.ScreenTimeMinutes,
			Hours:   math.Round(float64(m.ScreenTimeMinutes)/60*10) / 10,
		})
	}
	return points
}

// ScreenTimeSeries returns the owner's screen-time readings in range,
// ascending by date, reshaped to chart points. Like the habit series it is
// sparse: unlogged days are absent.
func (s *AnalyticsService) ScreenTimeSeries(ctx context.Context, clerkID string, startDate, endDate string) ([]series.ScreenTimePoint, error) {
	startKey, err := datekey.Parse(startDate)
	if err != nil {
		return nil, apperr.Validation("invalid start date: %v", err)
	}
	endKey, err := datekey.Parse(endDate)
	if err != nil {
		return nil, apperr.Validation("invalid end date: %v", err)
	}

	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), screen_time_minutes, updated_at
	FROM daily_metrics
	WHERE user_id = $1
		AND date >= $2
		AND date <= $3
	ORDER BY date ASC
	`

	rows, err := s.db.Query(ctx, query, userID, startKey, endKey)
	if err != nil {
		return nil, apperr.Storage(err, "failed to fetch metrics")
	}
	defer rows.Close()

	var metrics []*metric.DailyMetric
	for rows.Next() {
		m := &metric.DailyMetric{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.ScreenTimeMinutes, &m.UpdatedAt); err != nil {
			return nil, apperr.Storage(err, "failed to scan metric")
		}
		metrics = append(metrics, m)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Storage(err, "error iterating metrics")
	}

	return buildScreenTimePoints(metrics), nil
}

// Summary reports each habit's completion count in range alongside its
// target, plus the number of distinct days with any activity at all.
func (s *AnalyticsService) Summary(ctx context.Context, clerkID string, startDate, endDate string) (*series.Summary, error) {
	startKey, err := datekey.Parse(startDate)
	if err != nil {
		return nil, apperr.Validation("invalid start date: %v", err)
	}
	endKey, err := datekey.Parse(endDate)
	if err != nil {
		return nil, apperr.Validation("invalid end date: %v", err)
	}

	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT h.id, h.name, h.target_days,
		COALESCE(COUNT(c.id) FILTER (WHERE c.date >= $2 AND c.date <= $3), 0) AS completed
	FROM user_habits h
	LEFT JOIN habit_completions c ON c.habit_id = h.id AND c.user_id = h.user_id
	WHERE h.user_id = $1
	GROUP BY h.id, h.name, h.target_days, h.created_at
	ORDER BY h.created_at ASC
	`

	rows, err := s.db.Query(ctx, query, userID, startKey, endKey)
	if err != nil {
		return nil, apperr.Storage(err, "failed to fetch summary")
	}
	defer rows.Close()

	summary := &series.Summary{Habits: []series.HabitSummary{}}
	for rows.Next() {
		var hs series.HabitSummary
		if err := rows.Scan(&hs.HabitID, &hs.Name, &hs.TargetDays, &hs.Completed); err != nil {
			return nil, apperr.Storage(err, "failed to scan summary row")
		}
		summary.Habits = append(summary.Habits, hs)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Storage(err, "error iterating summary")
	}

	// Join against user_habits so days whose only activity was on a
	// since-deleted habit do not count as active.
	activeDaysQuery := `
	SELECT COALESCE(COUNT(DISTINCT c.date), 0)
	FROM habit_completions c
	JOIN user_habits h ON h.id = c.habit_id AND h.user_id = c.user_id
	WHERE c.user_id = $1
		AND c.date >= $2
		AND c.date <= $3
	`

	err = s.db.QueryRow(ctx, activeDaysQuery, userID, startKey, endKey).Scan(&summary.ActiveDays)
	if err != nil {
		return nil, apperr.Storage(err, "failed to count active days")
	}

	return summary, nil
}
