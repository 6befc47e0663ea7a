package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nutriacai/wellness-api/internal/domain"
	"github.com/nutriacai/wellness-api/internal/dto"
	"github.com/nutriacai/wellness-api/internal/repository"
	"github.com/nutriacai/wellness-api/internal/service"
)

// RewardsHandler handles points ledger requests: task completion, streak
// updates, deductions and profile reads.
type RewardsHandler struct {
	pointsService service.PointsService
}

// NewRewardsHandler creates a new rewards handler
func NewRewardsHandler(pointsService service.PointsService) *RewardsHandler {
	return &RewardsHandler{
		pointsService: pointsService,
	}
}

// CompleteTask credits the points for a completed health task
func (h *RewardsHandler) CompleteTask(c *gin.Context) {
	var req dto.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	points, err := h.pointsService.CompleteTask(c.Request.Context(), c.GetString("user_id"), req.TaskID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: err.Error(),
			})
		case errors.Is(err, repository.ErrDuplicateCompletion):
			c.JSON(http.StatusConflict, dto.ErrorResponse{
				Error:   "Conflict",
				Message: "Task already completed for this period",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal error",
				Message: "Failed to complete task",
			})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PointsResponse{Points: points})
}

// UpdateStreak advances or resets the caller's login streak
func (h *RewardsHandler) UpdateStreak(c *gin.Context) {
	streak, err := h.pointsService.UpdateStreak(c.Request.Context(), c.GetString("user_id"), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal error",
			Message: "Failed to update streak",
		})
		return
	}

	c.JSON(http.StatusOK, dto.StreakResponse{Streak: streak})
}

// DeductPoints removes points from the caller's balance
func (h *RewardsHandler) DeductPoints(c *gin.Context) {
	var req dto.DeductPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	points, err := h.pointsService.DeductPoints(c.Request.Context(), c.GetString("user_id"), req.Points)
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal error",
			Message: "Failed to deduct points",
		})
		return
	}

	c.JSON(http.StatusOK, dto.PointsResponse{Points: points})
}

// GetProfile returns the caller's points profile
func (h *RewardsHandler) GetProfile(c *gin.Context) {
	profile, err := h.pointsService.GetProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal error",
			Message: "Failed to get profile",
		})
		return
	}

	c.JSON(http.StatusOK, profileResponse(profile))
}

// ListTasks returns the static task catalog
func (h *RewardsHandler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": domain.TaskCatalog})
}

func profileResponse(profile *domain.PointsProfile) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		Points:      profile.Points,
		LoginStreak: profile.LoginStreak,
		CreatedAt:   profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   profile.UpdatedAt.Format(time.RFC3339),
	}
	if profile.LastLogin != nil {
		lastLogin := profile.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &lastLogin
	}
	return resp
}
