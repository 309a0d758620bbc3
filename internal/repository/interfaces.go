package repository

import (
	"context"
	"time"

	"github.com/prperemyshlev/storefront-service/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthCodeRepository defines methods for authorization code operations.
// MarkUsed and DeleteDead are atomic with respect to each other.
type AuthCodeRepository interface {
	Create(ctx context.Context, code *domain.AuthorizationCode) error
	GetByCode(ctx context.Context, code string) (*domain.AuthorizationCode, error)
	// MarkUsed flips used from false to true. It fails with ErrNotFound,
	// ErrCodeUsed, or ErrCodeExpired (removing the entry) otherwise.
	MarkUsed(ctx context.Context, code string, now time.Time) (*domain.AuthorizationCode, error)
	Delete(ctx context.Context, code string) error
	// DeleteDead removes every used or expired code and returns how many went.
	DeleteDead(ctx context.Context, now time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

// ProductRepository defines methods for product operations.
// Returned products are copies; mutate inventory through AdjustInventory.
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns all products in insertion order.
	List(ctx context.Context) ([]*domain.Product, error)
	Count(ctx context.Context) (int, error)
	// AdjustInventory adds delta to the product's inventory, failing with
	// ErrInsufficientInventory if the result would be negative.
	AdjustInventory(ctx context.Context, id string, delta int) (*domain.Product, error)
	// LockProducts serializes callers touching overlapping product ids.
	LockProducts(ids ...string) (unlock func())
}
