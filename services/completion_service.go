package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitLoopAPI/internal/apperr"
	"habitLoopAPI/internal/completion"
	"habitLoopAPI/internal/datekey"
)

type CompletionService struct {
	db *pgxpool.Pool
}

func NewCompletionService(db *pgxpool.Pool) *CompletionService {
	return &CompletionService{db: db}
}

// ToggleCompletion flips the completed state for (owner, habit, date) and
// returns the new state. Each branch is a single statement, and the
// UNIQUE(user_id, habit_id, date) constraint backs the insert, so two
// concurrent toggles cannot leave a duplicate row: the DELETE either removes
// the one existing record or removes nothing, and a lost insert race shows
// up as a unique violation, which means the record is already there.
func (s *CompletionService) ToggleCompletion(ctx context.Context, clerkID string, req *completion.ToggleRequest) (bool, error) {
	if err := checkRequest(req); err != nil {
		return false, err
	}

	dateKey, err := datekey.Parse(req.Date)
	if err != nil {
		return false, apperr.Validation("invalid date: %v", err)
	}

	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return false, err
	}

	habitUUID, err := uuid.Parse(req.HabitID)
	if err != nil {
		return false, apperr.Validation("invalid habit id")
	}

	deleteQuery := `
	DELETE FROM habit_completions
	WHERE user_id = $1 AND habit_id = $2 AND date = $3
	`

	result, err := s.db.Exec(ctx, deleteQuery, userID, habitUUID, dateKey)
	if err != nil {
		return false, apperr.Storage(err, "failed to toggle completion")
	}
	if result.RowsAffected() > 0 {
		return false, nil
	}

	// Only live habits accept new completions. The DELETE above still works
	// for records whose habit was since removed, so orphaned history can be
	// cleared but never grown.
	var exists int
	err = s.db.QueryRow(ctx, `SELECT 1 FROM user_habits WHERE id = $1 AND user_id = $2`, habitUUID, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperr.NotFound("habit not found")
		}
		return false, apperr.Storage(err, "failed to look up habit")
	}

	insertQuery := `
	INSERT INTO habit_completions (id, user_id, habit_id, date, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	`

	_, err = s.db.Exec(ctx, insertQuery, uuid.New(), userID, habitUUID, dateKey)
	if err != nil {
		// A unique violation means a concurrent toggle inserted first. The
		// desired state already holds, so report completed rather than
		// failing.
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, apperr.Storage(err, "failed to record completion")
	}

	return true, nil
}

// ListCompletions returns every completion record with date in
// [startDate, endDate], both bounds inclusive, across all of the owner's
// habits.
func (s *CompletionService) ListCompletions(ctx context.Context, clerkID string, startDate, endDate string) ([]*completion.Completion, error) {
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
	SELECT id, user_id, habit_id, to_char(date, 'YYYY-MM-DD'), created_at
	FROM habit_completions
	WHERE user_id = $1
		AND date >= $2
		AND date <= $3
	`

	rows, err := s.db.Query(ctx, query, userID, startKey, endKey)
	if err != nil {
		return nil, apperr.Storage(err, "failed to list completions")
	}
	defer rows.Close()

	completions := []*completion.Completion{}
	for rows.Next() {
		c := &completion.Completion{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.HabitID, &c.Date, &c.CreatedAt); err != nil {
			return nil, apperr.Storage(err, "failed to scan completion")
		}
		completions = append(completions, c)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Storage(err, "error iterating completions")
	}

	return completions, nil
}
