package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitLoopAPI/internal/apperr"
	"habitLoopAPI/internal/datekey"
	"habitLoopAPI/internal/metric"
)

type MetricService struct {
	db *pgxpool.Pool
}

func NewMetricService(db *pgxpool.Pool) *MetricService {
	return &MetricService{db: db}
}

// GetMetric returns the metric for a single day, or nil when none was logged.
// Absence is a normal state here, not an error.
func (s *MetricService) GetMetric(ctx context.Context, clerkID string, date string) (*metric.DailyMetric, error) {
	dateKey, err := datekey.Parse(date)
	if err != nil {
		return nil, apperr.Validation("invalid date: %v", err)
	}

	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), screen_time_minutes, updated_at
	FROM daily_metrics
	WHERE user_id = $1 AND date = $2
	`

	m := &metric.DailyMetric{}
	err = s.db.QueryRow(ctx, query, userID, dateKey).Scan(
		&m.ID,
		&m.UserID,
		&m.Date,
		&m.ScreenTimeMinutes,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage(err, "failed to get metric")
	}

	return m, nil
}

// GetMetricsRange returns metrics with date in [startDate, endDate]
// inclusive, ascending by date.
func (s *MetricService) GetMetricsRange(ctx context.Context, clerkID string, startDate, endDate string) ([]*metric.DailyMetric, error) {
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
		return nil, apperr.Storage(err, "failed to list metrics")
	}
	defer rows.Close()

	metrics := []*metric.DailyMetric{}
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

	return metrics, nil
}

// SetMetric upserts the screen-time reading for (owner, date). The conflict
// target makes the overwrite atomic; there is no read-modify-write window.
func (s *MetricService) SetMetric(ctx context.Context, clerkID string, req *metric.SetMetricRequest) (*metric.DailyMetric, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	if req.Minutes < 0 {
		return nil, apperr.Validation("minutes must not be negative")
	}

	dateKey, err := datekey.Parse(req.Date)
	if err != nil {
		return nil, apperr.Validation("invalid date: %v", err)
	}

	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	INSERT INTO daily_metrics (id, user_id, date, screen_time_minutes, updated_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (user_id, date)
	DO UPDATE SET
		screen_time_minutes = $4,
		updated_at = NOW()
	RETURNING id, user_id, to_char(date, 'YYYY-MM-DD'), screen_time_minutes, updated_at
	`

	m := &metric.DailyMetric{}
	err = s.db.QueryRow(ctx, query, uuid.New(), userID, dateKey, req.Minutes).Scan(
		&m.ID,
		&m.UserID,
		&m.Date,
		&m.ScreenTimeMinutes,
		&m.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return nil, apperr.Validation("minutes must not be negative")
		}
		return nil, apperr.Storage(err, "failed to set metric")
	}

	return m, nil
}
