package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prperemyshlev/storefront-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, inventory int) *domain.Product {
	return &domain.Product{
		ID:        id,
		Title:     "Product " + id,
		Status:    domain.ProductStatusActive,
		Price:     decimal.RequireFromString("1.50"),
		Inventory: inventory,
	}
}

func TestProductRepository_SaveValidates(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	bad := []*domain.Product{
		{Status: domain.ProductStatusActive},
		{ID: "p", Status: "sold_out"},
		{ID: "p", Status: domain.ProductStatusActive, Price: decimal.NewFromInt(-1)},
		{ID: "p", Status: domain.ProductStatusActive, Inventory: -1},
	}
	for _, p := range bad {
		assert.ErrorIs(t, repo.Save(ctx, p), ErrInvalidProduct)
	}
}

func TestProductRepository_ListKeepsInsertionOrderAndCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Save(ctx, product(id, 1)))
	}
	require.NoError(t, repo.Save(ctx, product("a", 5)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, 5, list[1].Inventory)

	list[0].Inventory = 999
	stored, err := repo.GetByID(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Inventory)
}

func TestProductRepository_AdjustInventory(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	require.NoError(t, repo.Save(ctx, product("p", 3)))

	p, err := repo.AdjustInventory(ctx, "p", -2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Inventory)

	_, err = repo.AdjustInventory(ctx, "p", -2)
	assert.ErrorIs(t, err, ErrInsufficientInventory)

	p, err = repo.GetByID(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Inventory)

	_, err = repo.AdjustInventory(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepository_ConcurrentDebitsNeverOversell(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	require.NoError(t, repo.Save(ctx, product("p", 50)))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.AdjustInventory(ctx, "p", -1)
		}()
	}
	wg.Wait()

	p, err := repo.GetByID(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Inventory)
}

func TestProductRepository_LockProductsSerializesOverlap(t *testing.T) {
	repo := NewProductRepository()

	unlock := repo.LockProducts("b", "a", "a")

	acquired := make(chan struct{})
	go func() {
		release := repo.LockProducts("a", "c")
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("overlapping lock acquired while held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock not released")
	}

	// disjoint keys never wait
	release := repo.LockProducts("x")
	release2 := repo.LockProducts("y")
	release()
	release2()
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	n, err := Seed(ctx, repo, NewStaticProductSource(DemoProducts()))
	require.NoError(t, err)
	assert.Equal(t, len(DemoProducts()), n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, count)
}

func TestProductRepository_LockTableDoesNotGrow(t *testing.T) {
	repo := NewProductRepository()

	for i := 0; i < 200; i++ {
		ids := make([]string, 50)
		for j := range ids {
			ids[j] = fmt.Sprintf("missing_%d_%d", i, j)
		}
		repo.LockProducts(ids...)()
	}

	assert.Equal(t, 0, repo.(*productRepository).locks.Len())
}
