package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutriacai/wellness-api/internal/dto"
	"github.com/nutriacai/wellness-api/internal/service"
)

// CheckoutHandler handles the two-phase checkout flow
type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateSession runs checkout Phase 1 and returns the redirect handle
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req dto.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	response, err := h.checkoutService.CreateSession(
		c.Request.Context(),
		c.GetString("user_id"),
		c.GetString("email"),
		&req,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: err.Error(),
			})
		case errors.Is(err, service.ErrPaymentProvider):
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{
				Error:   "Payment unavailable",
				Message: "Could not start payment, please try again",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal error",
				Message: "Failed to create checkout session",
			})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// Confirm runs checkout Phase 2 on a payment-success callback
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	response, err := h.checkoutService.Confirm(c.Request.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: err.Error(),
			})
		case errors.Is(err, service.ErrPaymentNotCompleted):
			c.JSON(http.StatusConflict, dto.ErrorResponse{
				Error:   "Payment not completed",
				Message: "The payment session is not paid",
			})
		case errors.Is(err, service.ErrPaymentProvider):
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{
				Error:   "Payment unavailable",
				Message: "Could not verify payment, please try again",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal error",
				Message: "Failed to confirm checkout",
			})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}
