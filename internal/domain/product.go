package domain

import "github.com/shopspring/decimal"

// ProductStatus is the publication state of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// Valid reports whether s is one of the known statuses
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusDraft, ProductStatusArchived:
		return true
	}
	return false
}

// Variant is a purchasable option of a product
type Variant struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	SKU   string `json:"sku,omitempty"`
}

// Product represents a catalogue entry
type Product struct {
	ID        string          `json:"id" db:"id"`
	Title     string          `json:"title" db:"title"`
	Status    ProductStatus   `json:"status" db:"status"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Inventory int             `json:"inventory" db:"inventory"`
	Variants  []Variant       `json:"variants" db:"variants"`
}

// IsActive reports whether the product is visible to shoppers
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// Clone returns a deep copy so callers never share store memory
func (p *Product) Clone() *Product {
	c := *p
	if p.Variants != nil {
		c.Variants = make([]Variant, len(p.Variants))
		copy(c.Variants, p.Variants)
	}
	return &c
}

// Pagination describes a 1-indexed page window over the active catalogue
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
}

// ProductPage is one page of active products
type ProductPage struct {
	Products   []*Product
	Pagination Pagination
}
