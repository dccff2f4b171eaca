package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitLoopAPI/internal/apperr"
	"habitLoopAPI/internal/habit"
)

type HabitService struct {
	db *pgxpool.Pool
}

func NewHabitService(db *pgxpool.Pool) *HabitService {
	return &HabitService{db: db}
}

func (s *HabitService) CreateHabit(ctx context.Context, clerkID string, req *habit.CreateHabitRequest) (*habit.Habit, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	color := req.Color
	if color == "" {
		color = "indigo"
	}

	h := &habit.Habit{
		ID:           uuid.New().String(),
		TargetDays:   req.TargetDays,
		CollectionID: req.CollectionID,
	}

	query := `
	INSERT INTO user_habits (id, user_id, name, target_days, color, collection_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING id, user_id, name, target_days, color, collection_id, created_at, updated_at
	`

	err = s.db.QueryRow(ctx, query, h.ID, userID, req.Name, req.TargetDays, color, req.CollectionID).Scan(
		&h.ID,
		&h.UserID,
		&h.Name,
		&h.TargetDays,
		&h.Color,
		&h.CollectionID,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperr.NotFound("collection not found")
		}
		return nil, apperr.Storage(err, "failed to create habit")
	}

	return h, nil
}

// UpdateHabit changes only the fields the request carries. The SET clause is
// assembled dynamically so untouched columns keep their prior values.
func (s *HabitService) UpdateHabit(ctx context.Context, clerkID string, habitID string, req *habit.UpdateHabitRequest) (*habit.Habit, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	habitUUID, err := uuid.Parse(habitID)
	if err != nil {
		return nil, apperr.Validation("invalid habit id")
	}

	setClauses := []string{"updated_at = NOW()"}
	args := []any{habitUUID, userID}

	if req.Name != nil {
		args = append(args, *req.Name)
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", len(args)))
	}
	if req.TargetDays != nil {
		args = append(args, *req.TargetDays)
		setClauses = append(setClauses, fmt.Sprintf("target_days = $%d", len(args)))
	}
	if req.Color != nil {
		args = append(args, *req.Color)
		setClauses = append(setClauses, fmt.Sprintf("color = $%d", len(args)))
	}
	if req.ClearCollection {
		setClauses = append(setClauses, "collection_id = NULL")
	} else if req.CollectionID != nil {
		args = append(args, *req.CollectionID)
		setClauses = append(setClauses, fmt.Sprintf("collection_id = $%d", len(args)))
	}

	query := fmt.Sprintf(`
	UPDATE user_habits
	SET %s
	WHERE id = $1 AND user_id = $2
	RETURNING id, user_id, name, target_days, color, collection_id, created_at, updated_at
	`, strings.Join(setClauses, ", "))

	h := &habit.Habit{}
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&h.ID,
		&h.UserID,
		&h.Name,
		&h.TargetDays,
		&h.Color,
		&h.CollectionID,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("habit not found")
		}
		if isForeignKeyViolation(err) {
			return nil, apperr.NotFound("collection not found")
		}
		return nil, apperr.Storage(err, "failed to update habit")
	}

	return h, nil
}

// DeleteHabit removes the habit definition only. Its completion records are
// kept as history and simply stop matching any active habit set.
func (s *HabitService) DeleteHabit(ctx context.Context, clerkID string, habitID string) error {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	habitUUID, err := uuid.Parse(habitID)
	if err != nil {
		return apperr.Validation("invalid habit id")
	}

	result, err := s.db.Exec(ctx, `DELETE FROM user_habits WHERE id = $1 AND user_id = $2`, habitUUID, userID)
	if err != nil {
		return apperr.Storage(err, "failed to delete habit")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("habit not found")
	}

	return nil
}

// ListHabits returns the owner's habits oldest-created first, each annotated
// with its collection's name when it has one.
func (s *HabitService) ListHabits(ctx context.Context, clerkID string) ([]*habit.Habit, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT h.id, h.user_id, h.name, h.target_days, h.color, h.collection_id, c.name, h.created_at, h.updated_at
	FROM user_habits h
	LEFT JOIN habit_collections c ON c.id = h.collection_id
	WHERE h.user_id = $1
	ORDER BY h.created_at ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to list habits")
	}
	defer rows.Close()

	habits := []*habit.Habit{}
	for rows.Next() {
		h := &habit.Habit{}
		err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.Name,
			&h.TargetDays,
			&h.Color,
			&h.CollectionID,
			&h.CollectionName,
			&h.CreatedAt,
			&h.UpdatedAt,
		)
		if err != nil {
			return nil, apperr.Storage(err, "failed to scan habit")
		}
		habits = append(habits, h)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Storage(err, "error iterating habits")
	}

	return habits, nil
}

func (s *HabitService) CreateCollection(ctx context.Context, clerkID string, req *habit.CreateCollectionRequest) (*habit.Collection, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	c := &habit.Collection{ID: uuid.New().String(), CreatedAt: time.Now()}

	query := `
	INSERT INTO habit_collections (id, user_id, name, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id, user_id, name, created_at
	`

	err = s.db.QueryRow(ctx, query, c.ID, userID, req.Name, c.CreatedAt).Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, apperr.Storage(err, "failed to create collection")
	}

	return c, nil
}

func (s *HabitService) ListCollections(ctx context.Context, clerkID string) ([]*habit.Collection, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, user_id, name, created_at
	FROM habit_collections
	WHERE user_id = $1
	ORDER BY created_at ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to list collections")
	}
	defer rows.Close()

	collections := []*habit.Collection{}
	for rows.Next() {
		c := &habit.Collection{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, apperr.Storage(err, "failed to scan collection")
		}
		collections = append(collections, c)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Storage(err, "error iterating collections")
	}

	return collections, nil
}

// DeleteCollection releases member habits to unassigned (ON DELETE SET NULL)
// rather than deleting them.
func (s *HabitService) DeleteCollection(ctx context.Context, clerkID string, collectionID string) error {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	collectionUUID, err := uuid.Parse(collectionID)
	if err != nil {
		return apperr.Validation("invalid collection id")
	}

	result, err := s.db.Exec(ctx, `DELETE FROM habit_collections WHERE id = $1 AND user_id = $2`, collectionUUID, userID)
	if err != nil {
		return apperr.Storage(err, "failed to delete collection")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("collection not found")
	}

	return nil
}
