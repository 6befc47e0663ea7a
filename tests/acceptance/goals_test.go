package acceptance

import (
	"net/http"

	"github.com/nutriacai/wellness-api/internal/domain"
	"github.com/nutriacai/wellness-api/internal/dto"
)

func (s *Suite) TestGoals_CRUD() {
	token := s.registerUser("goals@example.com", "Password123")

	target := int64(8)
	unit := "glasses"
	var created domain.Goal
	status := s.doJSON(http.MethodPost, "/api/v1/goals", token,
		dto.CreateGoalRequest{
			Title:       "Drink more water",
			TargetValue: &target,
			Unit:        &unit,
			Period:      "daily",
		}, &created)

	s.Require().Equal(http.StatusCreated, status)
	s.Require().NotEmpty(created.ID)
	s.Equal("Drink more water", created.Title)
	s.Equal(domain.PeriodDaily, created.Period)

	var list struct {
		Goals []domain.Goal `json:"goals"`
	}
	status = s.doJSON(http.MethodGet, "/api/v1/goals", token, nil, &list)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Len(list.Goals, 1)
	s.Equal(created.ID, list.Goals[0].ID)

	current := int64(5)
	var updated domain.Goal
	status = s.doJSON(http.MethodPatch, "/api/v1/goals/"+created.ID, token,
		dto.UpdateGoalRequest{CurrentValue: &current}, &updated)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(int64(5), updated.CurrentValue)

	status = s.doJSON(http.MethodDelete, "/api/v1/goals/"+created.ID, token, nil, nil)
	s.Require().Equal(http.StatusOK, status)

	status = s.doJSON(http.MethodGet, "/api/v1/goals", token, nil, &list)
	s.Require().Equal(http.StatusOK, status)
	s.Empty(list.Goals)
}

func (s *Suite) TestGoals_ScopedToOwner() {
	ownerToken := s.registerUser("owner@example.com", "Password123")
	otherToken := s.registerUser("other@example.com", "Password123")

	var created domain.Goal
	status := s.doJSON(http.MethodPost, "/api/v1/goals", ownerToken,
		dto.CreateGoalRequest{Title: "Weekly workouts", Period: "weekly"}, &created)
	s.Require().Equal(http.StatusCreated, status)

	// Another user cannot see or touch the goal.
	var list struct {
		Goals []domain.Goal `json:"goals"`
	}
	status = s.doJSON(http.MethodGet, "/api/v1/goals", otherToken, nil, &list)
	s.Require().Equal(http.StatusOK, status)
	s.Empty(list.Goals)

	status = s.doJSON(http.MethodDelete, "/api/v1/goals/"+created.ID, otherToken, nil, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *Suite) TestGoals_InvalidPeriod() {
	token := s.registerUser("badperiod@example.com", "Password123")

	status := s.doJSON(http.MethodPost, "/api/v1/goals", token,
		dto.CreateGoalRequest{Title: "Yearly detox", Period: "yearly"}, nil)
	s.Equal(http.StatusBadRequest, status)
}
