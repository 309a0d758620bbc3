package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prperemyshlev/storefront-service/internal/repository"
	"github.com/prperemyshlev/storefront-service/pkg/observability"
	"go.uber.org/zap"
)

// CodeReaper periodically removes used and expired authorization codes.
// Redemption already rejects dead codes; sweeping only bounds memory.
type CodeReaper struct {
	codes    repository.AuthCodeRepository
	interval time.Duration
	logger   *zap.Logger
	metrics  *observability.ShopMetrics
	now      Clock
}

// NewCodeReaper creates a new code reaper
func NewCodeReaper(
	codes repository.AuthCodeRepository,
	interval time.Duration,
	logger *zap.Logger,
	metrics *observability.ShopMetrics,
	clock Clock,
) *CodeReaper {
	return &CodeReaper{
		codes:    codes,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
		now:      clock.orDefault(),
	}
}

// Run sweeps once per interval until ctx is cancelled
func (r *CodeReaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Code reaper started", zap.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Code reaper stopped")
			return
		case <-ticker.C:
			if _, err := r.Sweep(ctx); err != nil {
				r.logger.Error("Code sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep removes every dead code once and returns how many were removed
func (r *CodeReaper) Sweep(ctx context.Context) (int, error) {
	removed, err := r.codes.DeleteDead(ctx, r.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete dead codes: %w", err)
	}

	r.metrics.CodesReaped(ctx, removed)
	if removed > 0 {
		r.logger.Debug("Removed dead authorization codes", zap.Int("count", removed))
	}

	return removed, nil
}
