package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type HealthChecker struct {
	infra Infrastructure
}

func NewHealthChecker(infra Infrastructure) *HealthChecker {
	return &HealthChecker{
		infra: infra,
	}
}

// check pings only the stores the infrastructure was configured with
func (h *HealthChecker) check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	var pings []func(context.Context) error
	if pg := h.infra.Postgres(); pg != nil {
		pings = append(pings, func(ctx context.Context) error {
			if err := pg.Ping(ctx); err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			return nil
		})
	}
	if rd := h.infra.Redis(); rd != nil {
		pings = append(pings, func(ctx context.Context) error {
			if err := rd.Ping(ctx); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
			return nil
		})
	}

	errs := make(chan error, len(pings))
	for _, ping := range pings {
		go func() { errs <- ping(ctx) }()
	}

	var joined []error
	for range pings {
		joined = append(joined, <-errs)
	}
	return errors.Join(joined...)
}

func (h *HealthChecker) Handler(c *gin.Context) {
	if err := h.check(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "fail",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "pass",
	})
}
