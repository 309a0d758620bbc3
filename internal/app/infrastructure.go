package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prperemyshlev/storefront-service/internal/config"
	"github.com/prperemyshlev/storefront-service/pkg/database"
	"github.com/prperemyshlev/storefront-service/pkg/observability"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const serviceName = "storefront-service"

// Infrastructure owns process-wide resources. Postgres and Redis return nil
// when the configuration does not enable them.
type Infrastructure interface {
	Postgres() *database.Postgres
	Redis() *database.Redis
	Logger() *zap.Logger
	MetricsHandler() http.Handler
	MeterProvider() *metric.MeterProvider

	Shutdown(ctx context.Context) error
}

type infrastructure struct {
	postgres       *database.Postgres
	redis          *database.Redis
	logger         *zap.Logger
	metricsHandler http.Handler
	meterProvider  *metric.MeterProvider
}

var _ Infrastructure = &infrastructure{}

func NewInfrastructure(ctx context.Context, cfg config.Config) (*infrastructure, error) {
	i := &infrastructure{}

	logger, err := observability.InitLogger(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	i.logger = logger

	if cfg.Postgres.Enabled {
		postgres, err := database.NewPostgres(cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		i.postgres = postgres
		logger.Info("Connected to PostgreSQL", zap.String("host", cfg.Postgres.Host))
	}

	if cfg.UsesRedis() {
		redis, err := database.NewRedis(ctx, cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = i.closeStores()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		i.redis = redis
		logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Address()))
	}

	meterProvider, metricsHandler, err := observability.InitTelemetry(serviceName)
	if err != nil {
		_ = i.closeStores()
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	i.meterProvider = meterProvider
	i.metricsHandler = metricsHandler

	return i, nil
}

func (i *infrastructure) Postgres() *database.Postgres {
	return i.postgres
}

func (i *infrastructure) Redis() *database.Redis {
	return i.redis
}

func (i *infrastructure) Logger() *zap.Logger {
	return i.logger
}

func (i *infrastructure) MetricsHandler() http.Handler {
	return i.metricsHandler
}

func (i *infrastructure) MeterProvider() *metric.MeterProvider {
	return i.meterProvider
}

func (i *infrastructure) closeStores() error {
	var errs []error
	if i.postgres != nil {
		errs = append(errs, i.postgres.Close())
	}
	if i.redis != nil {
		errs = append(errs, i.redis.Close())
	}
	return errors.Join(errs...)
}

func (i *infrastructure) Shutdown(ctx context.Context) error {
	errs := make(chan error, 2)

	go func() { errs <- i.closeStores() }()
	go func() { errs <- observability.Shutdown(ctx, i.meterProvider, i.logger) }()

	return errors.Join(<-errs, <-errs)
}
