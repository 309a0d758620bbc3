package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/prperemyshlev/storefront-service/internal/domain"
	"github.com/prperemyshlev/storefront-service/pkg/database"
	"github.com/shopspring/decimal"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ProductSource supplies products to seed the in-memory catalogue
type ProductSource interface {
	LoadProducts(ctx context.Context) ([]*domain.Product, error)
}

// postgresProductSource reads the catalogue from the products table
type postgresProductSource struct {
	db *database.Postgres
}

// NewPostgresProductSource migrates the schema and returns a product source
func NewPostgresProductSource(db *database.Postgres) (ProductSource, error) {
	if err := db.Migrate(migrations, "migrations"); err != nil {
		return nil, err
	}
	return &postgresProductSource{db: db}, nil
}

// LoadProducts returns every product ordered by creation time
func (s *postgresProductSource) LoadProducts(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, title, status, price, inventory, variants
		FROM products
		ORDER BY created_at, id
	`

	rows, err := s.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

func scanProduct(rows *sql.Rows) (*domain.Product, error) {
	var (
		p        domain.Product
		status   string
		variants []byte
	)

	if err := rows.Scan(&p.ID, &p.Title, &status, &p.Price, &p.Inventory, &variants); err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Status = domain.ProductStatus(status)

	if len(variants) > 0 {
		if err := json.Unmarshal(variants, &p.Variants); err != nil {
			return nil, fmt.Errorf("failed to decode variants of product %s: %w", p.ID, err)
		}
	}

	return &p, nil
}

// staticProductSource serves a fixed product list
type staticProductSource struct {
	products []*domain.Product
}

// NewStaticProductSource returns a source that always yields products
func NewStaticProductSource(products []*domain.Product) ProductSource {
	return &staticProductSource{products: products}
}

func (s *staticProductSource) LoadProducts(ctx context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

// Seed saves every product from sources into repo and returns the count
func Seed(ctx context.Context, repo ProductRepository, sources ...ProductSource) (int, error) {
	seeded := 0
	for _, src := range sources {
		products, err := src.LoadProducts(ctx)
		if err != nil {
			return seeded, fmt.Errorf("failed to load products: %w", err)
		}
		for _, p := range products {
			if err := repo.Save(ctx, p); err != nil {
				return seeded, fmt.Errorf("failed to seed product: %w", err)
			}
			seeded++
		}
	}
	return seeded, nil
}

// DemoProducts is the catalogue served when no other source is configured
func DemoProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID:        "prod_1",
			Title:     "Classic Tee",
			Status:    domain.ProductStatusActive,
			Price:     decimal.RequireFromString("19.99"),
			Inventory: 100,
			Variants: []domain.Variant{
				{ID: "var_1_s", Title: "Small", SKU: "TEE-S"},
				{ID: "var_1_m", Title: "Medium", SKU: "TEE-M"},
				{ID: "var_1_l", Title: "Large", SKU: "TEE-L"},
			},
		},
		{
			ID:        "prod_2",
			Title:     "Canvas Tote",
			Status:    domain.ProductStatusActive,
			Price:     decimal.RequireFromString("24.50"),
			Inventory: 40,
			Variants:  []domain.Variant{{ID: "var_2_default", Title: "Default", SKU: "TOTE"}},
		},
		{
			ID:        "prod_3",
			Title:     "Enamel Mug",
			Status:    domain.ProductStatusActive,
			Price:     decimal.RequireFromString("12.00"),
			Inventory: 60,
			Variants:  []domain.Variant{{ID: "var_3_default", Title: "Default", SKU: "MUG"}},
		},
		{
			ID:        "prod_4",
			Title:     "Winter Hoodie",
			Status:    domain.ProductStatusDraft,
			Price:     decimal.RequireFromString("54.00"),
			Inventory: 0,
		},
		{
			ID:        "prod_5",
			Title:     "Sticker Pack 2019",
			Status:    domain.ProductStatusArchived,
			Price:     decimal.RequireFromString("3.00"),
			Inventory: 12,
		},
	}
}
