package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/storefront-service/internal/dto"
	"github.com/prperemyshlev/storefront-service/internal/service"
	"go.uber.org/zap"
)

// CheckoutHandler handles order placement
type CheckoutHandler struct {
	checkout service.CheckoutService
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// Checkout prices and reserves a multi-item order
// @Summary Checkout
// @Tags checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Checkout request"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.checkout.Process(c.Request.Context(), req.CheckoutLines())
	if err != nil {
		writeCheckoutError(c, h.logger, err)
		return
	}

	h.logger.Debug("Checkout served",
		zap.String("email", c.GetString(ContextKeyEmail)),
		zap.String("payment_intent_id", result.PaymentIntent.ID),
	)

	c.JSON(http.StatusOK, dto.NewCheckoutResponse(result))
}
