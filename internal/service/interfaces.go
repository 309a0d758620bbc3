package service

import (
	"context"
	"time"

	"github.com/prperemyshlev/storefront-service/internal/domain"
	"github.com/prperemyshlev/storefront-service/internal/dto"
)

// Clock returns the current time
type Clock func() time.Time

func (c Clock) orDefault() Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// AuthService defines methods for the code-exchange login flow
type AuthService interface {
	Login(ctx context.Context, email string) (*dto.LoginResponse, error)
	Redeem(ctx context.Context, code string) (*dto.TokenResponse, error)
	UserExists(ctx context.Context, email string) bool
	GetUser(ctx context.Context, email string) (*dto.UserResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// CatalogueService is a read-only view over active products
type CatalogueService interface {
	List(ctx context.Context, page, limit int) (*domain.ProductPage, error)
	GetActiveByID(ctx context.Context, id string) (*domain.Product, error)
	CheckAvailability(ctx context.Context, id string, quantity int) error
}

// CheckoutService validates, prices and debits multi-item orders
type CheckoutService interface {
	Process(ctx context.Context, lines []domain.CheckoutLine) (*domain.CheckoutResult, error)
}

// RateLimitDecision is the outcome of a rate limit check
type RateLimitDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter limits requests per key within a time window
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitDecision, error)
}
