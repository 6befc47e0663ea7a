package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nutriacai/wellness-api/internal/config"
	"github.com/nutriacai/wellness-api/internal/domain"
	"github.com/nutriacai/wellness-api/internal/dto"
	"github.com/nutriacai/wellness-api/internal/payment"
	"github.com/nutriacai/wellness-api/internal/repository"
	"go.uber.org/zap"
)

const (
	// deductAttempts bounds the Phase 2 retry loop. Money was already
	// collected by the time a deduction runs, so exhausting the attempts is
	// logged for manual reconciliation rather than dropped.
	deductAttempts = 5
	deductBackoff  = 100 * time.Millisecond

	paymentMethodStripe = "stripe"
	paymentMethodCash   = "cash"
)

// confirmationStore is what the orchestrator needs from the redis-backed
// ConfirmationGuard.
type confirmationStore interface {
	Acquire(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
}

// checkoutService implements CheckoutService interface
type checkoutService struct {
	profileRepo repository.ProfileRepository
	provider    payment.Provider
	guard       confirmationStore
	checkout    config.CheckoutConfig
	logger      *zap.Logger
}

// NewCheckoutService creates a new checkout orchestrator
func NewCheckoutService(
	profileRepo repository.ProfileRepository,
	provider payment.Provider,
	guard confirmationStore,
	checkout config.CheckoutConfig,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		profileRepo: profileRepo,
		provider:    provider,
		guard:       guard,
		checkout:    checkout,
		logger:      logger,
	}
}

func (s *checkoutService) rates() RedemptionRates {
	return RedemptionRates{
		PointsPerUnit:        s.checkout.PointsPerUnit,
		MinPayableMinorUnits: s.checkout.MinPayableMinorUnits,
	}
}

// CreateSession runs checkout Phase 1: quote the discount against the live
// balance, then either create an external payment session (stripe) or treat
// the order as immediately confirmed (cash on delivery). No points are
// deducted on the stripe path here; that waits for Confirm.
func (s *checkoutService) CreateSession(ctx context.Context, userID, email string, req *dto.CreateCheckoutSessionRequest) (*dto.CheckoutSessionResponse, error) {
	if req.SubtotalMinorUnits <= 0 {
		return nil, fmt.Errorf("subtotal must be positive, got %d: %w", req.SubtotalMinorUnits, ErrInvalidArgument)
	}

	profile, err := s.profileRepo.Ensure(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read points balance: %w", err)
	}

	quote := ComputeQuote(req.SubtotalMinorUnits, profile.Points, req.RedeemPoints, s.rates())

	if req.PaymentMethod == paymentMethodCash {
		return s.confirmCash(ctx, userID, quote)
	}

	description := ""
	if quote.PointsToRedeem > 0 {
		description = fmt.Sprintf("Original: %d, points discount: -%d (minor units)",
			quote.SubtotalMinorUnits, quote.DiscountMinorUnits)
	}

	session, err := s.provider.CreateSession(ctx, &payment.SessionParams{
		AmountMinorUnits: quote.PayableMinorUnits,
		Currency:         s.checkout.Currency,
		CustomerEmail:    email,
		ProductName:      "NutriAcai Healthy Food Order",
		Description:      description,
		SuccessURL:       s.checkout.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:        s.checkout.CancelURL,
		Metadata: map[string]string{
			"user_id":         userID,
			"points_redeemed": strconv.FormatInt(quote.PointsToRedeem, 10),
			"original_amount": strconv.FormatInt(quote.SubtotalMinorUnits, 10),
			"discount_amount": strconv.FormatInt(quote.DiscountMinorUnits, 10),
		},
	})
	if err != nil {
		s.logger.Error("payment session creation failed",
			zap.String("user_id", userID),
			zap.Int64("payable", quote.PayableMinorUnits),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	s.logger.Info("checkout session created",
		zap.String("user_id", userID),
		zap.String("session_id", session.ID),
		zap.Int64("payable", quote.PayableMinorUnits),
		zap.Int64("points_to_redeem", quote.PointsToRedeem),
	)

	return &dto.CheckoutSessionResponse{
		URL:       session.URL,
		SessionID: session.ID,
		Quote:     quote,
	}, nil
}

// confirmCash handles cash-on-delivery orders, which skip the external
// provider and count as confirmed the moment they are placed.
func (s *checkoutService) confirmCash(ctx context.Context, userID string, quote domain.RedemptionQuote) (*dto.CheckoutSessionResponse, error) {
	if quote.PointsToRedeem > 0 {
		if err := s.deductWithRetry(ctx, userID, quote.PointsToRedeem, "cash"); err != nil {
			return nil, err
		}
	}

	return &dto.CheckoutSessionResponse{
		URL:   s.checkout.SuccessURL + "?method=cash",
		Quote: quote,
	}, nil
}

// Confirm runs checkout Phase 2 on a payment-success callback. The session is
// re-fetched from the provider, so the points to deduct and the target user
// come from session metadata, never from the caller. Retried callbacks for
// the same session collapse to a single deduction.
func (s *checkoutService) Confirm(ctx context.Context, sessionID string) (*dto.ConfirmCheckoutResponse, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required: %w", ErrInvalidArgument)
	}

	status, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	if status.PaymentStatus != payment.PaymentStatusPaid {
		return nil, fmt.Errorf("session %s has status %q: %w", sessionID, status.PaymentStatus, ErrPaymentNotCompleted)
	}

	userID := status.Metadata["user_id"]
	if userID == "" {
		return nil, fmt.Errorf("session %s carries no user id: %w", sessionID, ErrInvalidArgument)
	}

	pointsUsed, err := strconv.ParseInt(status.Metadata["points_redeemed"], 10, 64)
	if err != nil || pointsUsed < 0 {
		pointsUsed = 0
	}

	acquired, err := s.guard.Acquire(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check confirmation state: %w", err)
	}
	if !acquired {
		// Already processed; report the current balance without deducting.
		profile, err := s.profileRepo.Ensure(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to read points balance: %w", err)
		}
		return &dto.ConfirmCheckoutResponse{Points: profile.Points}, nil
	}

	if pointsUsed > 0 {
		if err := s.deductWithRetry(ctx, userID, pointsUsed, sessionID); err != nil {
			// Free the session so a provider retry can finish the debit.
			if relErr := s.guard.Release(ctx, sessionID); relErr != nil {
				s.logger.Error("failed to release confirmation guard", zap.String("session_id", sessionID), zap.Error(relErr))
			}
			return nil, err
		}
	}

	profile, err := s.profileRepo.Ensure(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read points balance: %w", err)
	}

	s.logger.Info("checkout confirmed",
		zap.String("user_id", userID),
		zap.String("session_id", sessionID),
		zap.Int64("points_deducted", pointsUsed),
		zap.Int64("balance", profile.Points),
	)

	return &dto.ConfirmCheckoutResponse{
		Points:         profile.Points,
		PointsDeducted: pointsUsed,
	}, nil
}

// deductWithRetry debits redeemed points with bounded backoff. The charge was
// already captured, so failures are escalated loudly instead of dropped.
func (s *checkoutService) deductWithRetry(ctx context.Context, userID string, points int64, sessionID string) error {
	var lastErr error
	for attempt := 1; attempt <= deductAttempts; attempt++ {
		if _, lastErr = s.profileRepo.ApplyDelta(ctx, userID, -points); lastErr == nil {
			return nil
		}

		s.logger.Warn("points deduction failed, retrying",
			zap.String("user_id", userID),
			zap.String("session_id", sessionID),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)

		select {
		case <-ctx.Done():
			lastErr = ctx.Err()
		case <-time.After(time.Duration(attempt) * deductBackoff):
			continue
		}
		break
	}

	s.logger.Error("points deduction exhausted retries, manual reconciliation required",
		zap.String("user_id", userID),
		zap.String("session_id", sessionID),
		zap.Int64("points", points),
		zap.Error(lastErr),
	)

	return fmt.Errorf("failed to deduct %d points for user %s: %w", points, userID, lastErr)
}
