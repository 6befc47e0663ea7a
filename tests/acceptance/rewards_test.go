package acceptance

import (
	"net/http"

	"github.com/nutriacai/wellness-api/internal/dto"
)

func (s *Suite) TestProfile_StartsEmpty() {
	token := s.registerUser("fresh@example.com", "Password123")

	var profile dto.ProfileResponse
	status := s.doJSON(http.MethodGet, "/api/v1/rewards/profile", token, nil, &profile)

	s.Equal(http.StatusOK, status)
	s.Equal(int64(0), profile.Points)
	s.Equal(0, profile.LoginStreak)
	s.Nil(profile.LastLogin)
}

func (s *Suite) TestListTasks() {
	token := s.registerUser("tasks@example.com", "Password123")

	var resp struct {
		Tasks []struct {
			ID     string `json:"id"`
			Title  string `json:"title"`
			Period string `json:"period"`
		} `json:"tasks"`
	}
	status := s.doJSON(http.MethodGet, "/api/v1/rewards/tasks", token, nil, &resp)

	s.Equal(http.StatusOK, status)
	s.NotEmpty(resp.Tasks)

	ids := make(map[string]string)
	for _, task := range resp.Tasks {
		ids[task.ID] = task.Period
	}
	s.Equal("daily", ids["water"])
	s.Equal("weekly", ids["workouts"])
	s.Equal("monthly", ids["weigh-in"])
}

func (s *Suite) TestCompleteTask_CreditsPoints() {
	token := s.registerUser("earner@example.com", "Password123")

	var points dto.PointsResponse
	status := s.doJSON(http.MethodPost, "/api/v1/rewards/tasks/complete", token,
		dto.CompleteTaskRequest{TaskID: "water"}, &points)

	s.Equal(http.StatusOK, status)
	s.Equal(int64(5), points.Points)

	// A weekly task stacks on top.
	status = s.doJSON(http.MethodPost, "/api/v1/rewards/tasks/complete", token,
		dto.CompleteTaskRequest{TaskID: "workouts"}, &points)

	s.Equal(http.StatusOK, status)
	s.Equal(int64(15), points.Points)
}

func (s *Suite) TestCompleteTask_DuplicateInWindow() {
	token := s.registerUser("repeat@example.com", "Password123")

	var points dto.PointsResponse
	status := s.doJSON(http.MethodPost, "/api/v1/rewards/tasks/complete", token,
		dto.CompleteTaskRequest{TaskID: "water"}, &points)
	s.Equal(http.StatusOK, status)

	status = s.doJSON(http.MethodPost, "/api/v1/rewards/tasks/complete", token,
		dto.CompleteTaskRequest{TaskID: "water"}, nil)
	s.Equal(http.StatusConflict, status)

	// Balance is unchanged after the rejected duplicate.
	var profile dto.ProfileResponse
	status = s.doJSON(http.MethodGet, "/api/v1/rewards/profile", token, nil, &profile)
	s.Equal(http.StatusOK, status)
	s.Equal(int64(5), profile.Points)
}

func (s *Suite) TestCompleteTask_UnknownTask() {
	token := s.registerUser("unknown@example.com", "Password123")

	status := s.doJSON(http.MethodPost, "/api/v1/rewards/tasks/complete", token,
		dto.CompleteTaskRequest{TaskID: "juggling"}, nil)
	s.Equal(http.StatusBadRequest, status)
}

func (s *Suite) TestStreak_SameDayIdempotent() {
	token := s.registerUser("streaker@example.com", "Password123")

	var streak dto.StreakResponse
	status := s.doJSON(http.MethodPost, "/api/v1/rewards/streak", token, nil, &streak)
	s.Equal(http.StatusOK, status)
	s.Equal(1, streak.Streak)

	// A second visit on the same day does not advance the streak.
	status = s.doJSON(http.MethodPost, "/api/v1/rewards/streak", token, nil, &streak)
	s.Equal(http.StatusOK, status)
	s.Equal(1, streak.Streak)
}

func (s *Suite) TestDeductPoints() {
	token := s.registerUser("spender@example.com", "Password123")

	var points dto.PointsResponse
	status := s.doJSON(http.MethodPost, "/api/v1/rewards/tasks/complete", token,
		dto.CompleteTaskRequest{TaskID: "weigh-in"}, &points)
	s.Equal(http.StatusOK, status)
	s.Equal(int64(15), points.Points)

	status = s.doJSON(http.MethodPost, "/api/v1/rewards/deduct", token,
		dto.DeductPointsRequest{Points: 10}, &points)
	s.Equal(http.StatusOK, status)
	s.Equal(int64(5), points.Points)

	// Deducting past zero clamps the balance instead of going negative.
	status = s.doJSON(http.MethodPost, "/api/v1/rewards/deduct", token,
		dto.DeductPointsRequest{Points: 100}, &points)
	s.Equal(http.StatusOK, status)
	s.Equal(int64(0), points.Points)
}

func (s *Suite) TestRewards_RequireAuth() {
	for _, path := range []string{"/api/v1/rewards/profile", "/api/v1/rewards/tasks"} {
		status := s.doJSON(http.MethodGet, path, "", nil, nil)
		s.Equal(http.StatusUnauthorized, status, path)
	}
}
