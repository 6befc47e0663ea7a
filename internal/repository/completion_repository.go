package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nutriacai/wellness-api/internal/domain"
	"github.com/nutriacai/wellness-api/pkg/database"
)

// completionRepository implements CompletionRepository interface
type completionRepository struct {
	db *database.Postgres
}

// NewCompletionRepository creates a new task completion repository
func NewCompletionRepository(db *database.Postgres) CompletionRepository {
	return &completionRepository{db: db}
}

// RecordAndCredit inserts the completion row and credits its points in one
// transaction, so a completion is never recorded without the matching credit.
// A second completion of the same task in the same period window hits the
// unique constraint and returns ErrDuplicateCompletion without touching the
// balance.
func (r *completionRepository) RecordAndCredit(ctx context.Context, completion *domain.TaskCompletion) (*domain.PointsProfile, error) {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if completion.ID == "" {
		completion.ID = uuid.New().String()
	}
	if completion.CreatedAt.IsZero() {
		completion.CreatedAt = time.Now()
	}

	insert := `
		INSERT INTO task_completions (id, user_id, task_id, period_start, points, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.ExecContext(ctx, insert,
		completion.ID,
		completion.UserID,
		completion.TaskID,
		completion.PeriodStart,
		completion.Points,
		completion.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return nil, fmt.Errorf("task %s already completed by user %s in this period: %w",
				completion.TaskID, completion.UserID, ErrDuplicateCompletion)
		}
		return nil, fmt.Errorf("failed to record task completion: %w", err)
	}

	credit := `
		UPDATE points_profiles
		SET points = points + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	profile, err := scanProfile(tx.QueryRowContext(ctx, credit, completion.UserID, completion.Points))
	if err != nil {
		return nil, fmt.Errorf("failed to credit task points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit task completion: %w", err)
	}

	return profile, nil
}
