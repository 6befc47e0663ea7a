package repository

import (
	"context"

	"github.com/nutriacai/wellness-api/internal/domain"
)

// UserRepository defines methods for account operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
}

// ProfileRepository defines methods for the points ledger. All mutations go
// through ApplyDelta or Mutate so the non-negative balance invariant holds
// under concurrent callers.
type ProfileRepository interface {
	Ensure(ctx context.Context, userID string) (*domain.PointsProfile, error)
	Get(ctx context.Context, userID string) (*domain.PointsProfile, error)
	ApplyDelta(ctx context.Context, userID string, delta int64) (*domain.PointsProfile, error)
	Mutate(ctx context.Context, userID string, fn func(*domain.PointsProfile) error) (*domain.PointsProfile, error)
}

// CompletionRepository records task completions per period window.
type CompletionRepository interface {
	RecordAndCredit(ctx context.Context, completion *domain.TaskCompletion) (*domain.PointsProfile, error)
}

// GoalRepository defines CRUD methods for user goals
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error)
	GetByID(ctx context.Context, userID, goalID string) (*domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, userID, goalID string) error
}
