package dto

import "github.com/nutriacai/wellness-api/internal/domain"

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	User        UserInfo `json:"user"`
}

// UserInfo represents user information in response
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// CompleteTaskRequest names the task being completed. The task's period
// class, and therefore its point value, comes from the server-side catalog.
type CompleteTaskRequest struct {
	TaskID string `json:"task_id" binding:"required"`
}

// PointsResponse carries the caller's balance after a ledger mutation.
type PointsResponse struct {
	Points int64 `json:"points"`
}

// StreakResponse carries the login streak after an update.
type StreakResponse struct {
	Streak int `json:"streak"`
}

// DeductPointsRequest asks for a direct balance deduction.
type DeductPointsRequest struct {
	Points int64 `json:"points" binding:"required"`
}

// ProfileResponse mirrors the points profile for the client.
type ProfileResponse struct {
	Points      int64   `json:"points"`
	LoginStreak int     `json:"login_streak"`
	LastLogin   *string `json:"last_login"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// CreateCheckoutSessionRequest initiates checkout Phase 1. Any discount math
// the client did is ignored; the quote is recomputed from the live balance.
type CreateCheckoutSessionRequest struct {
	SubtotalMinorUnits int64  `json:"subtotal_minor_units" binding:"required"`
	RedeemPoints       bool   `json:"redeem_points"`
	PaymentMethod      string `json:"payment_method" binding:"required,oneof=stripe cash"`
}

// CheckoutSessionResponse is the redirect handle returned by Phase 1.
type CheckoutSessionResponse struct {
	URL       string                 `json:"url"`
	SessionID string                 `json:"session_id,omitempty"`
	Quote     domain.RedemptionQuote `json:"quote"`
}

// ConfirmCheckoutRequest delivers a payment-success callback (Phase 2).
type ConfirmCheckoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// ConfirmCheckoutResponse reports the deduction outcome.
type ConfirmCheckoutResponse struct {
	Points         int64 `json:"points"`
	PointsDeducted int64 `json:"points_deducted"`
}

// CreateGoalRequest creates a wellness goal.
type CreateGoalRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	TargetValue *int64  `json:"target_value"`
	Unit        *string `json:"unit"`
	Period      string  `json:"period" binding:"required,oneof=daily weekly monthly"`
}

// UpdateGoalRequest patches a goal; nil fields are left unchanged.
type UpdateGoalRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	TargetValue  *int64  `json:"target_value"`
	CurrentValue *int64  `json:"current_value"`
	Unit         *string `json:"unit"`
	Period       *string `json:"period" binding:"omitempty,oneof=daily weekly monthly"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
