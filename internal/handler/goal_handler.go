package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutriacai/wellness-api/internal/domain"
	"github.com/nutriacai/wellness-api/internal/dto"
	"github.com/nutriacai/wellness-api/internal/repository"
	"github.com/nutriacai/wellness-api/internal/service"
)

// GoalHandler handles goal CRUD requests
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// Create creates a goal
func (h *GoalHandler) Create(c *gin.Context) {
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), c.GetString("user_id"), &req)
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
			Message: "Failed to create goal",
		})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// List returns the caller's goals
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goalService.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal error",
			Message: "Failed to list goals",
		})
		return
	}

	if goals == nil {
		goals = []*domain.Goal{}
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// Update patches a goal
func (h *GoalHandler) Update(c *gin.Context) {
	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not found",
				Message: "Goal not found",
			})
		case errors.Is(err, service.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal error",
				Message: "Failed to update goal",
			})
		}
		return
	}

	c.JSON(http.StatusOK, goal)
}

// Delete removes a goal
func (h *GoalHandler) Delete(c *gin.Context) {
	err := h.goalService.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not found",
				Message: "Goal not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal error",
			Message: "Failed to delete goal",
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Goal deleted"})
}
