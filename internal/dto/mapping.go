package dto

import (
	"time"

	"github.com/prperemyshlev/storefront-service/internal/domain"
)

// NewProductResponse maps a domain product to its API shape
func NewProductResponse(p *domain.Product) ProductResponse {
	variants := make([]VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantResponse{ID: v.ID, Title: v.Title, SKU: v.SKU})
	}

	return ProductResponse{
		ID:        p.ID,
		Title:     p.Title,
		Status:    string(p.Status),
		Price:     p.Price,
		Inventory: p.Inventory,
		Variants:  variants,
	}
}

// NewProductListResponse maps a product page to its API shape
func NewProductListResponse(page *domain.ProductPage) ProductListResponse {
	products := make([]ProductResponse, 0, len(page.Products))
	for _, p := range page.Products {
		products = append(products, NewProductResponse(p))
	}

	return ProductListResponse{
		Products: products,
		Pagination: PaginationResponse{
			CurrentPage:  page.Pagination.CurrentPage,
			TotalPages:   page.Pagination.TotalPages,
			TotalItems:   page.Pagination.TotalItems,
			ItemsPerPage: page.Pagination.ItemsPerPage,
		},
	}
}

// NewCheckoutResponse maps a checkout result to its API shape
func NewCheckoutResponse(r *domain.CheckoutResult) CheckoutResponse {
	items := make([]CheckoutLineResponse, 0, len(r.Items))
	for _, line := range r.Items {
		items = append(items, CheckoutLineResponse{
			ProductID: line.ProductID,
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}

	return CheckoutResponse{
		Success:     r.Success,
		TotalAmount: r.TotalAmount,
		Currency:    r.Currency,
		PaymentIntent: PaymentIntentResponse{
			ID:     r.PaymentIntent.ID,
			Status: r.PaymentIntent.Status,
			Amount: r.PaymentIntent.Amount,
		},
		Items: items,
	}
}

// NewUserResponse maps a domain user to its API shape
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// CheckoutLines converts request items to domain lines
func (r CheckoutRequest) CheckoutLines() []domain.CheckoutLine {
	lines := make([]domain.CheckoutLine, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, domain.CheckoutLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}
