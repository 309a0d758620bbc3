package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/storefront-service/internal/dto"
	"github.com/prperemyshlev/storefront-service/internal/service"
	"go.uber.org/zap"
)

// AuthHandler handles the code-exchange login flow
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login issues an authorization code
// @Summary Request an authorization code
// @Description Create the user on first login and issue a single-use code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			badRequest(c, err)
			return
		}
		internalError(c, h.logger, "Login failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Token exchanges an authorization code for an access token
// @Summary Redeem an authorization code
// @Description Exchange a single-use code for a bearer access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Token request"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	response, err := h.authService.Redeem(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			badRequest(c, err)
		case errors.Is(err, service.ErrCodeNotFound),
			errors.Is(err, service.ErrCodeAlreadyUsed),
			errors.Is(err, service.ErrCodeExpired):
			unauthorized(c, err.Error())
		default:
			internalError(c, h.logger, "Code redemption failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMe returns the authenticated user
// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	email := c.GetString(ContextKeyEmail)
	if email == "" {
		unauthorized(c, "User not found in context")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			unauthorized(c, err.Error())
			return
		}
		internalError(c, h.logger, "Failed to load user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
