package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/prperemyshlev/storefront-service/internal/domain"
)

// productRepository implements ProductRepository in memory
type productRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string
	locks    *keyedMutex
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository() ProductRepository {
	return &productRepository{
		products: make(map[string]*domain.Product),
		locks:    newKeyedMutex(),
	}
}

// Save inserts or replaces a product
func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		return fmt.Errorf("product id is required: %w", ErrInvalidProduct)
	}
	if !product.Status.Valid() {
		return fmt.Errorf("product %s has unknown status %q: %w", product.ID, product.Status, ErrInvalidProduct)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("product %s has negative price: %w", product.ID, ErrInvalidProduct)
	}
	if product.Inventory < 0 {
		return fmt.Errorf("product %s has negative inventory: %w", product.ID, ErrInvalidProduct)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = product.Clone()

	return nil
}

// GetByID retrieves a product by ID
func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %s not found: %w", id, ErrNotFound)
	}

	return p.Clone(), nil
}

// List returns every product in insertion order
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id].Clone())
	}

	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.products), nil
}

// AdjustInventory applies delta to a product's inventory atomically
func (r *productRepository) AdjustInventory(ctx context.Context, id string, delta int) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %s not found: %w", id, ErrNotFound)
	}

	next := p.Inventory + delta
	if next < 0 {
		return nil, fmt.Errorf("product %s has %d in stock, cannot apply %d: %w", id, p.Inventory, delta, ErrInsufficientInventory)
	}
	p.Inventory = next

	return p.Clone(), nil
}

func (r *productRepository) LockProducts(ids ...string) func() {
	return r.locks.Lock(ids...)
}
