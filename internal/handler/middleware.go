package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/storefront-service/internal/service"
	"github.com/prperemyshlev/storefront-service/internal/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextKeyEmail  = "email"
	ContextKeyClaims = "claims"
)

// AuthMiddleware validates the bearer token and adds the subject to context
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header is required")
			return
		}

		token, ok := utils.ExtractFromAuthorizationHeader(authHeader)
		if !ok {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextKeyEmail, claims.Subject)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}
