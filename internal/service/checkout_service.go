package service

import (
	"context"
	"fmt"

	"github.com/prperemyshlev/storefront-service/internal/domain"
	"github.com/prperemyshlev/storefront-service/internal/repository"
	"github.com/prperemyshlev/storefront-service/internal/utils"
	"github.com/prperemyshlev/storefront-service/pkg/observability"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MaxCheckoutLines = 50
	MaxLineQuantity  = 1000
)

// checkoutService implements CheckoutService interface
type checkoutService struct {
	products  repository.ProductRepository
	catalogue CatalogueService
	currency  string
	logger    *zap.Logger
	metrics   *observability.ShopMetrics
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	products repository.ProductRepository,
	catalogue CatalogueService,
	currency string,
	logger *zap.Logger,
	metrics *observability.ShopMetrics,
) CheckoutService {
	return &checkoutService{
		products:  products,
		catalogue: catalogue,
		currency:  currency,
		logger:    logger,
		metrics:   metrics,
	}
}

// Process validates, prices and debits all lines, or changes nothing.
// Products touched by the order stay locked for the whole call, so
// concurrent checkouts over overlapping products run one after another.
func (s *checkoutService) Process(ctx context.Context, lines []domain.CheckoutLine) (*domain.CheckoutResult, error) {
	if err := validateLines(lines); err != nil {
		s.metrics.Checkout(ctx, "invalid")
		return nil, err
	}

	count, err := s.products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if count == 0 {
		s.metrics.Checkout(ctx, "empty_catalogue")
		return nil, ErrEmptyCatalogue
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	unlock := s.products.LockProducts(ids...)
	defer unlock()

	for _, demand := range demandByProduct(lines) {
		if err := s.catalogue.CheckAvailability(ctx, demand.ProductID, demand.Quantity); err != nil {
			s.metrics.Checkout(ctx, "unavailable")
			return nil, err
		}
	}

	priced, total, err := s.price(ctx, lines)
	if err != nil {
		s.metrics.Checkout(ctx, "error")
		return nil, err
	}

	intentID, err := utils.GeneratePaymentIntentID()
	if err != nil {
		s.metrics.Checkout(ctx, "error")
		return nil, err
	}

	if err := s.debit(ctx, lines); err != nil {
		s.metrics.Checkout(ctx, "inventory_update_failed")
		return nil, err
	}

	s.metrics.Checkout(ctx, "success")
	s.logger.Info("Checkout completed",
		zap.String("payment_intent_id", intentID),
		zap.String("total_amount", total.StringFixed(2)),
		zap.Int("lines", len(lines)),
	)

	return &domain.CheckoutResult{
		Success:     true,
		TotalAmount: total,
		Currency:    s.currency,
		PaymentIntent: domain.PaymentIntent{
			ID:     intentID,
			Status: domain.PaymentIntentStatusPending,
			Amount: total,
		},
		Items: priced,
	}, nil
}

func validateLines(lines []domain.CheckoutLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidCheckout)
	}
	if len(lines) > MaxCheckoutLines {
		return fmt.Errorf("%w: at most %d items allowed", ErrInvalidCheckout, MaxCheckoutLines)
	}
	for _, line := range lines {
		if line.ProductID == "" {
			return fmt.Errorf("%w: product id is required", ErrInvalidCheckout)
		}
		if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
			return fmt.Errorf("%w: quantity for %s must be between 1 and %d", ErrInvalidCheckout, line.ProductID, MaxLineQuantity)
		}
	}
	return nil
}

// demandByProduct sums quantities of lines naming the same product,
// keeping the order in which products first appear.
func demandByProduct(lines []domain.CheckoutLine) []domain.CheckoutLine {
	index := make(map[string]int, len(lines))
	demand := make([]domain.CheckoutLine, 0, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			demand[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(demand)
		demand = append(demand, line)
	}
	return demand
}

// price re-reads each product and computes exact subtotals and the total
func (s *checkoutService) price(ctx context.Context, lines []domain.CheckoutLine) ([]domain.PricedLine, decimal.Decimal, error) {
	priced := make([]domain.PricedLine, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		p, err := s.catalogue.GetActiveByID(ctx, line.ProductID)
		if err != nil {
			s.logger.Error("Product vanished between validation and pricing",
				zap.String("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, decimal.Zero, fmt.Errorf("failed to price product %s: %w", line.ProductID, err)
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)

		priced = append(priced, domain.PricedLine{
			ProductID: p.ID,
			Title:     p.Title,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
			Subtotal:  subtotal,
		})
	}

	return priced, total, nil
}

// debit subtracts each line in order. On the first failure every debit
// already applied is re-added before the error is returned.
func (s *checkoutService) debit(ctx context.Context, lines []domain.CheckoutLine) error {
	applied := make([]domain.CheckoutLine, 0, len(lines))

	for _, line := range lines {
		if _, err := s.products.AdjustInventory(ctx, line.ProductID, -line.Quantity); err != nil {
			s.logger.Warn("Inventory debit failed, rolling back",
				zap.String("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
				zap.Int("applied_lines", len(applied)),
				zap.Error(err),
			)
			s.rollback(ctx, applied)
			return &InventoryUpdateError{ProductID: line.ProductID, Err: err}
		}
		applied = append(applied, line)
	}

	return nil
}

func (s *checkoutService) rollback(ctx context.Context, applied []domain.CheckoutLine) {
	for i := len(applied) - 1; i >= 0; i-- {
		line := applied[i]
		if _, err := s.products.AdjustInventory(ctx, line.ProductID, line.Quantity); err != nil {
			s.logger.Error("Failed to roll back inventory debit",
				zap.String("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err),
			)
		}
	}
}
