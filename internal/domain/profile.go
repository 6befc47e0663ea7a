package domain

import "time"

// PointsProfile is the per-user rewards ledger row. One exists per account,
// created lazily on the first points-related operation.
type PointsProfile struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Points      int64      `json:"points" db:"points"`
	LoginStreak int        `json:"login_streak" db:"login_streak"`
	LastLogin   *time.Time `json:"last_login" db:"last_login"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// TaskCompletion records that a user completed a task within a period window.
// The (user_id, task_id, period_start) triple is unique, which makes task
// completion replay-safe.
type TaskCompletion struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	TaskID      string    `json:"task_id" db:"task_id"`
	PeriodStart time.Time `json:"period_start" db:"period_start"`
	Points      int64     `json:"points" db:"points"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Goal is a user-defined wellness goal. Goals are plain CRUD data owned by
// the user and carry no ledger invariants.
type Goal struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"-" db:"user_id"`
	Title        string    `json:"title" db:"title"`
	Description  *string   `json:"description" db:"description"`
	TargetValue  *int64    `json:"target_value" db:"target_value"`
	CurrentValue int64     `json:"current_value" db:"current_value"`
	Unit         *string   `json:"unit" db:"unit"`
	Period       Period    `json:"period" db:"period"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RedemptionQuote is the result of pricing a checkout against the caller's
// point balance. It is computed per request and never persisted.
type RedemptionQuote struct {
	SubtotalMinorUnits int64 `json:"subtotal_minor_units"`
	PointsAvailable    int64 `json:"points_available"`
	PointsToRedeem     int64 `json:"points_to_redeem"`
	DiscountMinorUnits int64 `json:"discount_minor_units"`
	PayableMinorUnits  int64 `json:"payable_minor_units"`
}
