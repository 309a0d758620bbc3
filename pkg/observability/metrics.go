package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// PrometheusHandler returns a Gin handler for Prometheus metrics
func PrometheusHandler(handler http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if handler != nil {
			handler.ServeHTTP(c.Writer, c.Request)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "metrics handler not initialized",
			})
		}
	}
}

// ShopMetrics holds the domain counters. A nil *ShopMetrics records nothing.
type ShopMetrics struct {
	codesIssued otelmetric.Int64Counter
	redemptions otelmetric.Int64Counter
	checkouts   otelmetric.Int64Counter
	codesReaped otelmetric.Int64Counter
}

// NewShopMetrics registers the domain counters on meter
func NewShopMetrics(meter otelmetric.Meter) (*ShopMetrics, error) {
	codesIssued, err := meter.Int64Counter("storefront_auth_codes_issued_total",
		otelmetric.WithDescription("Authorization codes issued by login"))
	if err != nil {
		return nil, fmt.Errorf("failed to create codes issued counter: %w", err)
	}

	redemptions, err := meter.Int64Counter("storefront_auth_code_redemptions_total",
		otelmetric.WithDescription("Authorization code redemptions by outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create redemptions counter: %w", err)
	}

	checkouts, err := meter.Int64Counter("storefront_checkouts_total",
		otelmetric.WithDescription("Checkout attempts by outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create checkouts counter: %w", err)
	}

	codesReaped, err := meter.Int64Counter("storefront_auth_codes_reaped_total",
		otelmetric.WithDescription("Dead authorization codes removed by the reaper"))
	if err != nil {
		return nil, fmt.Errorf("failed to create codes reaped counter: %w", err)
	}

	return &ShopMetrics{
		codesIssued: codesIssued,
		redemptions: redemptions,
		checkouts:   checkouts,
		codesReaped: codesReaped,
	}, nil
}

func (m *ShopMetrics) CodeIssued(ctx context.Context) {
	if m == nil {
		return
	}
	m.codesIssued.Add(ctx, 1)
}

func (m *ShopMetrics) CodeRedeemed(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.redemptions.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *ShopMetrics) Checkout(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.checkouts.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *ShopMetrics) CodesReaped(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.codesReaped.Add(ctx, int64(n))
}
