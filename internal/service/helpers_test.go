package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prperemyshlev/storefront-service/internal/domain"
	"github.com/prperemyshlev/storefront-service/internal/repository"
	"github.com/prperemyshlev/storefront-service/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestAuthService(repos *repository.Repositories, clock *testClock) (AuthService, *utils.JWTManager) {
	jwtManager := utils.NewJWTManager(testSecret, "storefront-service", "storefront-api", 15*time.Minute, utils.WithClock(clock.Now))
	svc := NewAuthService(repos.User, repos.AuthCode, jwtManager, 10*time.Minute, zap.NewNop(), nil, clock.Now)
	return svc, jwtManager
}

func seedProduct(t *testing.T, repo repository.ProductRepository, id, price string, inventory int, status domain.ProductStatus) {
	t.Helper()
	require.NoError(t, repo.Save(context.Background(), &domain.Product{
		ID:        id,
		Title:     "Product " + id,
		Status:    status,
		Price:     decimal.RequireFromString(price),
		Inventory: inventory,
	}))
}

func inventoryOf(t *testing.T, repo repository.ProductRepository, id string) int {
	t.Helper()
	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Inventory
}
