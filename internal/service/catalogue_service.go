package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prperemyshlev/storefront-service/internal/domain"
	"github.com/prperemyshlev/storefront-service/internal/repository"
)

// catalogueService implements CatalogueService interface
type catalogueService struct {
	products repository.ProductRepository
}

// NewCatalogueService creates a new catalogue service
func NewCatalogueService(products repository.ProductRepository) CatalogueService {
	return &catalogueService{products: products}
}

// List returns one page of active products. Pages past the end are empty.
func (s *catalogueService) List(ctx context.Context, page, limit int) (*domain.ProductPage, error) {
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPagination
	}

	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	active := make([]*domain.Product, 0, len(all))
	for _, p := range all {
		if p.IsActive() {
			active = append(active, p)
		}
	}

	total := len(active)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	// compare in pages first so (page-1)*limit cannot overflow
	start, end := total, total
	if page <= totalPages {
		start = (page - 1) * limit
		end = min(start+limit, total)
	}

	return &domain.ProductPage{
		Products: active[start:end],
		Pagination: domain.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

// GetActiveByID returns an active product. Missing and inactive products
// both yield ErrProductNotFound so draft and archived data never leaks.
func (s *catalogueService) GetActiveByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if !p.IsActive() {
		return nil, ErrProductNotFound
	}

	return p, nil
}

// CheckAvailability returns nil when quantity of product id can be bought,
// or an *ItemUnavailableError naming the first failing reason.
func (s *catalogueService) CheckAvailability(ctx context.Context, id string, quantity int) error {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ItemUnavailableError{ProductID: id, Reason: ReasonNotFound, Requested: quantity}
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	if !p.IsActive() {
		return &ItemUnavailableError{ProductID: id, Reason: ReasonInactive, Requested: quantity}
	}

	if p.Inventory < quantity {
		return &ItemUnavailableError{
			ProductID: id,
			Reason:    ReasonInsufficientInventory,
			Available: p.Inventory,
			Requested: quantity,
		}
	}

	return nil
}
