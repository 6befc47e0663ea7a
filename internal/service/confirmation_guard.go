package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nutriacai/wellness-api/pkg/database"
)

// confirmationTTL keeps processed session ids long enough to absorb any
// provider callback retries.
const confirmationTTL = 24 * time.Hour

// ConfirmationGuard deduplicates payment-success callbacks in Redis, keyed by
// payment session id. Providers deliver callbacks at-least-once; the guard
// collapses them to a single points deduction.
type ConfirmationGuard struct {
	redis *database.Redis
}

// NewConfirmationGuard creates a new confirmation guard
func NewConfirmationGuard(redis *database.Redis) *ConfirmationGuard {
	return &ConfirmationGuard{redis: redis}
}

// Acquire marks the session as being processed. It returns false if another
// callback already claimed it.
func (g *ConfirmationGuard) Acquire(ctx context.Context, sessionID string) (bool, error) {
	key := fmt.Sprintf("checkout:confirmed:%s", sessionID)
	acquired, err := g.redis.Client.SetNX(ctx, key, "1", confirmationTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire confirmation for session %s: %w", sessionID, err)
	}
	return acquired, nil
}

// Release frees the session id so a retried callback can re-attempt the
// deduction. Called only when the deduction itself failed.
func (g *ConfirmationGuard) Release(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf("checkout:confirmed:%s", sessionID)
	if err := g.redis.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release confirmation for session %s: %w", sessionID, err)
	}
	return nil
}
