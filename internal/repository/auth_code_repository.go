package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prperemyshlev/storefront-service/internal/domain"
)

// authCodeRepository implements AuthCodeRepository in memory.
// A single mutex guards every read-modify-write on the collection.
type authCodeRepository struct {
	mu    sync.Mutex
	codes map[string]*domain.AuthorizationCode
}

// NewAuthCodeRepository creates a new in-memory authorization code repository
func NewAuthCodeRepository() AuthCodeRepository {
	return &authCodeRepository{codes: make(map[string]*domain.AuthorizationCode)}
}

// Create stores a new authorization code
func (r *authCodeRepository) Create(ctx context.Context, code *domain.AuthorizationCode) error {
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codes[code.Code]; exists {
		return ErrDuplicateCode
	}

	stored := *code
	r.codes[code.Code] = &stored

	return nil
}

// GetByCode retrieves an authorization code without changing it
func (r *authCodeRepository) GetByCode(ctx context.Context, code string) (*domain.AuthorizationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.codes[code]
	if !ok {
		return nil, fmt.Errorf("authorization code not found: %w", ErrNotFound)
	}

	found := *c
	return &found, nil
}

// MarkUsed transitions a code from unused to used exactly once
func (r *authCodeRepository) MarkUsed(ctx context.Context, code string, now time.Time) (*domain.AuthorizationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.codes[code]
	if !ok {
		return nil, fmt.Errorf("authorization code not found: %w", ErrNotFound)
	}
	if c.Used {
		return nil, ErrCodeUsed
	}
	if c.IsExpired(now) {
		delete(r.codes, code)
		return nil, ErrCodeExpired
	}

	c.Used = true

	used := *c
	return &used, nil
}

// Delete removes an authorization code
func (r *authCodeRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[code]; !ok {
		return fmt.Errorf("authorization code not found: %w", ErrNotFound)
	}
	delete(r.codes, code)

	return nil
}

// DeleteDead removes all used or expired codes
func (r *authCodeRepository) DeleteDead(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, c := range r.codes {
		if c.IsDead(now) {
			delete(r.codes, key)
			removed++
		}
	}

	return removed, nil
}

func (r *authCodeRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.codes), nil
}
