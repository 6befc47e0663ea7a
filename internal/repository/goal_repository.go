package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nutriacai/wellness-api/internal/domain"
	"github.com/nutriacai/wellness-api/pkg/database"
)

const goalColumns = "id, user_id, title, description, target_value, current_value, unit, period, created_at, updated_at"

// goalRepository implements GoalRepository interface
type goalRepository struct {
	db *database.Postgres
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *database.Postgres) GoalRepository {
	return &goalRepository{db: db}
}

// Create inserts a new goal for a user
func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (id, user_id, title, description, target_value, current_value, unit, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}

	now := time.Now()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	if goal.UpdatedAt.IsZero() {
		goal.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		string(goal.Period),
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// ListByUser returns the user's goals, newest first
func (r *goalRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}

	return goals, nil
}

// GetByID retrieves one of the user's goals. A goal belonging to another user
// is reported as not found.
func (r *goalRepository) GetByID(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`

	goal, err := scanGoal(r.db.DB.QueryRowContext(ctx, query, goalID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("goal %s not found: %w", goalID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return goal, nil
}

// Update updates an existing goal
func (r *goalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET title = $3, description = $4, target_value = $5, current_value = $6, unit = $7, period = $8, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		string(goal.Period),
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("goal %s not found: %w", goal.ID, ErrNotFound)
	}

	return nil
}

// Delete removes one of the user's goals
func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("goal %s not found: %w", goalID, ErrNotFound)
	}

	return nil
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	goal := &domain.Goal{}
	var (
		description sql.NullString
		targetValue sql.NullInt64
		unit        sql.NullString
		period      string
	)

	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&description,
		&targetValue,
		&goal.CurrentValue,
		&unit,
		&period,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		goal.Description = &description.String
	}
	if targetValue.Valid {
		goal.TargetValue = &targetValue.Int64
	}
	if unit.Valid {
		goal.Unit = &unit.String
	}
	goal.Period = domain.Period(period)

	return goal, nil
}
