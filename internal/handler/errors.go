package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/storefront-service/internal/dto"
	"github.com/prperemyshlev/storefront-service/internal/service"
	"go.uber.org/zap"
)

// itemUnavailableDetails is the details payload of a 409 response
type itemUnavailableDetails struct {
	ProductID string `json:"productId"`
	Reason    string `json:"reason"`
	Available *int   `json:"available,omitempty"`
	Requested int    `json:"requested"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   "Unauthorized",
		Message: message,
	})
}

// internalError logs err and answers with a generic 500
func internalError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	logger.Error(msg,
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Internal server error",
		Message: "An unexpected error occurred",
	})
}

// writeCheckoutError maps checkout failures to HTTP responses
func writeCheckoutError(c *gin.Context, logger *zap.Logger, err error) {
	var unavailable *service.ItemUnavailableError
	var updateErr *service.InventoryUpdateError

	switch {
	case errors.Is(err, service.ErrInvalidCheckout):
		badRequest(c, err)
	case errors.As(err, &unavailable):
		details := itemUnavailableDetails{
			ProductID: unavailable.ProductID,
			Reason:    string(unavailable.Reason),
			Requested: unavailable.Requested,
		}
		if unavailable.Reason == service.ReasonInsufficientInventory {
			available := unavailable.Available
			details.Available = &available
		}
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Item unavailable",
			Message: unavailable.Error(),
			Details: details,
		})
	case errors.Is(err, service.ErrEmptyCatalogue):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error:   "Service unavailable",
			Message: "No products are available",
		})
	case errors.As(err, &updateErr):
		internalError(c, logger, "Inventory update failed", err)
	default:
		internalError(c, logger, "Checkout failed", err)
	}
}
