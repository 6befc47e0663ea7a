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

const profileColumns = "id, user_id, points, login_streak, last_login, created_at, updated_at"

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *database.Postgres
}

// NewProfileRepository creates a new points profile repository
func NewProfileRepository(db *database.Postgres) ProfileRepository {
	return &profileRepository{db: db}
}

// Ensure creates a zeroed profile for the user if none exists and returns
// the current row. Safe to call concurrently for the same user.
func (r *profileRepository) Ensure(ctx context.Context, userID string) (*domain.PointsProfile, error) {
	insert := `
		INSERT INTO points_profiles (id, user_id, points, login_streak, created_at, updated_at)
		VALUES ($1, $2, 0, 0, $3, $3)
		ON CONFLICT (user_id) DO NOTHING
	`

	now := time.Now()
	if _, err := r.db.DB.ExecContext(ctx, insert, uuid.New().String(), userID, now); err != nil {
		return nil, fmt.Errorf("failed to ensure points profile: %w", err)
	}

	return r.Get(ctx, userID)
}

// Get retrieves the points profile for a user
func (r *profileRepository) Get(ctx context.Context, userID string) (*domain.PointsProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM points_profiles WHERE user_id = $1`

	profile, err := scanProfile(r.db.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("points profile for user %s not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get points profile: %w", err)
	}

	return profile, nil
}

// ApplyDelta atomically adds delta to the user's balance, clamping the result
// at zero. The single UPDATE makes concurrent deltas linearizable per row.
func (r *profileRepository) ApplyDelta(ctx context.Context, userID string, delta int64) (*domain.PointsProfile, error) {
	query := `
		UPDATE points_profiles
		SET points = GREATEST(points + $2, 0), updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	profile, err := scanProfile(r.db.DB.QueryRowContext(ctx, query, userID, delta))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("points profile for user %s not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to apply points delta: %w", err)
	}

	return profile, nil
}

// Mutate runs fn against the user's profile row while holding a row lock, then
// writes back points, login_streak and last_login. Two near-simultaneous
// streak updates therefore cannot double-increment or double-grant a bonus.
func (r *profileRepository) Mutate(ctx context.Context, userID string, fn func(*domain.PointsProfile) error) (*domain.PointsProfile, error) {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO points_profiles (id, user_id, points, login_streak, created_at, updated_at)
		VALUES ($1, $2, 0, 0, $3, $3)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, insert, uuid.New().String(), userID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to ensure points profile: %w", err)
	}

	selectQuery := `SELECT ` + profileColumns + ` FROM points_profiles WHERE user_id = $1 FOR UPDATE`
	profile, err := scanProfile(tx.QueryRowContext(ctx, selectQuery, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock points profile: %w", err)
	}

	if err := fn(profile); err != nil {
		return nil, err
	}

	update := `
		UPDATE points_profiles
		SET points = GREATEST($2, 0), login_streak = $3, last_login = $4, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	profile, err = scanProfile(tx.QueryRowContext(ctx, update,
		userID, profile.Points, profile.LoginStreak, profile.LastLogin))
	if err != nil {
		return nil, fmt.Errorf("failed to update points profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit points profile update: %w", err)
	}

	return profile, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.PointsProfile, error) {
	profile := &domain.PointsProfile{}
	var lastLogin sql.NullTime

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Points,
		&profile.LoginStreak,
		&lastLogin,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		profile.LastLogin = &lastLogin.Time
	}

	return profile, nil
}
