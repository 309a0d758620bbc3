package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/storefront-service/internal/dto"
	"github.com/prperemyshlev/storefront-service/internal/service"
	"go.uber.org/zap"
)

// CatalogueHandler serves the public product catalogue
type CatalogueHandler struct {
	catalogue service.CatalogueService
	logger    *zap.Logger
}

// NewCatalogueHandler creates a new catalogue handler
func NewCatalogueHandler(catalogue service.CatalogueService, logger *zap.Logger) *CatalogueHandler {
	return &CatalogueHandler{
		catalogue: catalogue,
		logger:    logger,
	}
}

// List returns a page of active products
// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} dto.ProductListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /products [get]
func (h *CatalogueHandler) List(c *gin.Context) {
	var query dto.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.catalogue.List(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPagination) {
			badRequest(c, err)
			return
		}
		internalError(c, h.logger, "Failed to list products", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProductListResponse(page))
}

// Get returns one active product
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (h *CatalogueHandler) Get(c *gin.Context) {
	product, err := h.catalogue.GetActiveByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not found",
				Message: err.Error(),
			})
			return
		}
		internalError(c, h.logger, "Failed to get product", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}
