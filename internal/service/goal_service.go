package service

import (
	"context"
	"fmt"

	"github.com/nutriacai/wellness-api/internal/domain"
	"github.com/nutriacai/wellness-api/internal/dto"
	"github.com/nutriacai/wellness-api/internal/repository"
)

// goalService implements GoalService interface
type goalService struct {
	goalRepo repository.GoalRepository
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

// Create creates a goal for the user
func (s *goalService) Create(ctx context.Context, userID string, req *dto.CreateGoalRequest) (*domain.Goal, error) {
	period := domain.Period(req.Period)
	if !period.Valid() {
		return nil, fmt.Errorf("unknown period %q: %w", req.Period, ErrInvalidArgument)
	}

	goal := &domain.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		Period:      period,
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// List returns the user's goals
func (s *goalService) List(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.goalRepo.ListByUser(ctx, userID)
}

// Update patches an existing goal; nil request fields are left unchanged
func (s *goalService) Update(ctx context.Context, userID, goalID string, req *dto.UpdateGoalRequest) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = req.Description
	}
	if req.TargetValue != nil {
		goal.TargetValue = req.TargetValue
	}
	if req.CurrentValue != nil {
		goal.CurrentValue = *req.CurrentValue
	}
	if req.Unit != nil {
		goal.Unit = req.Unit
	}
	if req.Period != nil {
		period := domain.Period(*req.Period)
		if !period.Valid() {
			return nil, fmt.Errorf("unknown period %q: %w", *req.Period, ErrInvalidArgument)
		}
		goal.Period = period
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete removes one of the user's goals
func (s *goalService) Delete(ctx context.Context, userID, goalID string) error {
	return s.goalRepo.Delete(ctx, userID, goalID)
}
