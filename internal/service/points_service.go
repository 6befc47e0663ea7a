package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nutriacai/wellness-api/internal/config"
	"github.com/nutriacai/wellness-api/internal/domain"
	"github.com/nutriacai/wellness-api/internal/repository"
	"github.com/nutriacai/wellness-api/pkg/observability"
	"go.uber.org/zap"
)

// pointsService implements PointsService interface
type pointsService struct {
	profileRepo    repository.ProfileRepository
	completionRepo repository.CompletionRepository
	rewards        config.RewardsConfig
	metrics        *observability.RewardsMetrics
	logger         *zap.Logger
}

// NewPointsService creates a new points service
func NewPointsService(
	profileRepo repository.ProfileRepository,
	completionRepo repository.CompletionRepository,
	rewards config.RewardsConfig,
	metrics *observability.RewardsMetrics,
	logger *zap.Logger,
) PointsService {
	return &pointsService{
		profileRepo:    profileRepo,
		completionRepo: completionRepo,
		rewards:        rewards,
		metrics:        metrics,
		logger:         logger,
	}
}

// pointsFor returns the fixed point value of a period class.
func (s *pointsService) pointsFor(period domain.Period) int64 {
	switch period {
	case domain.PeriodWeekly:
		return s.rewards.WeeklyTaskPoints
	case domain.PeriodMonthly:
		return s.rewards.MonthlyTaskPoints
	default:
		return s.rewards.DailyTaskPoints
	}
}

// CompleteTask credits the fixed point value of the task's period class and
// returns the new balance. Completing the same task twice within one period
// window returns repository.ErrDuplicateCompletion and credits nothing.
func (s *pointsService) CompleteTask(ctx context.Context, userID, taskID string) (int64, error) {
	task, ok := domain.FindTask(taskID)
	if !ok {
		return 0, fmt.Errorf("unknown task %q: %w", taskID, ErrInvalidArgument)
	}

	if _, err := s.profileRepo.Ensure(ctx, userID); err != nil {
		return 0, fmt.Errorf("failed to ensure profile: %w", err)
	}

	now := time.Now()
	completion := &domain.TaskCompletion{
		UserID:      userID,
		TaskID:      task.ID,
		PeriodStart: task.Period.WindowStart(now),
		Points:      s.pointsFor(task.Period),
	}

	profile, err := s.completionRepo.RecordAndCredit(ctx, completion)
	if err != nil {
		return 0, err
	}

	s.metrics.TaskCompleted(ctx, string(task.Period), completion.Points)
	s.logger.Info("task completed",
		zap.String("user_id", userID),
		zap.String("task_id", task.ID),
		zap.Int64("points", completion.Points),
		zap.Int64("balance", profile.Points),
	)

	return profile.Points, nil
}

// UpdateStreak advances or resets the login streak based on the elapsed time
// since the last qualifying login. Re-entry within the same UTC calendar day
// is a no-op, so calling it once per page load is safe. Crossing the
// milestone streak grants a one-time bonus inside the same transaction.
func (s *pointsService) UpdateStreak(ctx context.Context, userID string, now time.Time) (int, error) {
	profile, err := s.profileRepo.Mutate(ctx, userID, func(p *domain.PointsProfile) error {
		previous := p.LoginStreak

		today := calendarDay(now)
		switch {
		case p.LastLogin == nil:
			p.LoginStreak = 1
			p.LastLogin = &now
		case calendarDay(*p.LastLogin).Equal(today):
			// Same-day re-entry: streak and last_login stay untouched.
		case calendarDay(*p.LastLogin).AddDate(0, 0, 1).Equal(today):
			p.LoginStreak++
			p.LastLogin = &now
		default:
			p.LoginStreak = 1
			p.LastLogin = &now
		}

		if previous < s.rewards.MilestoneStreak && p.LoginStreak >= s.rewards.MilestoneStreak {
			p.Points += s.rewards.MilestoneBonus
			s.logger.Info("streak milestone bonus granted",
				zap.String("user_id", userID),
				zap.Int("streak", p.LoginStreak),
				zap.Int64("bonus", s.rewards.MilestoneBonus),
			)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update streak: %w", err)
	}

	return profile.LoginStreak, nil
}

// DeductPoints removes points from the user's balance, clamping at zero, and
// returns the new total. Used by the checkout-success path.
func (s *pointsService) DeductPoints(ctx context.Context, userID string, points int64) (int64, error) {
	if points <= 0 {
		return 0, fmt.Errorf("points to deduct must be positive, got %d: %w", points, ErrInvalidArgument)
	}

	if _, err := s.profileRepo.Ensure(ctx, userID); err != nil {
		return 0, fmt.Errorf("failed to ensure profile: %w", err)
	}

	profile, err := s.profileRepo.ApplyDelta(ctx, userID, -points)
	if err != nil {
		return 0, fmt.Errorf("failed to deduct points: %w", err)
	}

	s.metrics.PointsRedeemed(ctx, points)

	return profile.Points, nil
}

// GetProfile returns the caller's points profile, creating it on first use.
func (s *pointsService) GetProfile(ctx context.Context, userID string) (*domain.PointsProfile, error) {
	return s.profileRepo.Ensure(ctx, userID)
}

// calendarDay truncates t to its UTC calendar date.
func calendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
