package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/storefront-service/internal/domain"
)

// userRepository implements UserRepository in memory, keyed by email
type userRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository() UserRepository {
	return &userRepository{users: make(map[string]*domain.User)}
}

// Create stores a new user; the email must already be normalized
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
	}

	stored := *user
	r.users[user.Email] = &stored

	return nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
	}

	found := *u
	return &found, nil
}
