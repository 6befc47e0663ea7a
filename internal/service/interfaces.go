package service

import (
	"context"
	"time"

	"github.com/nutriacai/wellness-api/internal/domain"
	"github.com/nutriacai/wellness-api/internal/dto"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// PointsService defines the rewards ledger operations
type PointsService interface {
	CompleteTask(ctx context.Context, userID, taskID string) (int64, error)
	UpdateStreak(ctx context.Context, userID string, now time.Time) (int, error)
	DeductPoints(ctx context.Context, userID string, points int64) (int64, error)
	GetProfile(ctx context.Context, userID string) (*domain.PointsProfile, error)
}

// CheckoutService defines the two-phase checkout protocol
type CheckoutService interface {
	CreateSession(ctx context.Context, userID, email string, req *dto.CreateCheckoutSessionRequest) (*dto.CheckoutSessionResponse, error)
	Confirm(ctx context.Context, sessionID string) (*dto.ConfirmCheckoutResponse, error)
}

// GoalService defines CRUD operations for wellness goals
type GoalService interface {
	Create(ctx context.Context, userID string, req *dto.CreateGoalRequest) (*domain.Goal, error)
	List(ctx context.Context, userID string) ([]*domain.Goal, error)
	Update(ctx context.Context, userID, goalID string, req *dto.UpdateGoalRequest) (*domain.Goal, error)
	Delete(ctx context.Context, userID, goalID string) error
}
