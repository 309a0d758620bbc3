package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/storefront-service/internal/config"
	"github.com/prperemyshlev/storefront-service/internal/handler"
	"github.com/prperemyshlev/storefront-service/internal/repository"
	"github.com/prperemyshlev/storefront-service/internal/service"
	"github.com/prperemyshlev/storefront-service/internal/utils"
	"github.com/prperemyshlev/storefront-service/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
	repos  *repository.Repositories
	reaper *service.CodeReaper

	// stopLimiter is set when the in-memory limiter owns a cleanup goroutine
	stopLimiter     func()
	shutdownTimeout time.Duration
}

func NewApp(ctx context.Context, infra Infrastructure, cfg *config.Config) (*App, error) {
	logger := infra.Logger()
	repos := repository.NewRepositories()

	if err := seedCatalogue(ctx, infra, cfg, repos.Product); err != nil {
		return nil, err
	}

	metrics, err := observability.NewShopMetrics(infra.MeterProvider().Meter(serviceName))
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.AccessTokenExpiry.Duration,
	)

	var (
		rateLimiter service.RateLimiter
		stopLimiter func()
	)
	if cfg.UsesRedis() && infra.Redis() != nil {
		rateLimiter = service.NewRedisRateLimiter(infra.Redis())
	} else {
		memory := service.NewMemoryRateLimiter(cfg.Security.RateLimitWindow.Duration)
		rateLimiter = memory
		stopLimiter = memory.Stop
	}

	authService := service.NewAuthService(
		repos.User,
		repos.AuthCode,
		jwtManager,
		cfg.Auth.CodeExpiry.Duration,
		logger,
		metrics,
		nil,
	)
	catalogueService := service.NewCatalogueService(repos.Product)
	checkoutService := service.NewCheckoutService(
		repos.Product,
		catalogueService,
		cfg.Checkout.Currency,
		logger,
		metrics,
	)
	reaper := service.NewCodeReaper(repos.AuthCode, cfg.Auth.ReaperInterval.Duration, logger, metrics, nil)

	handlers := routeHandlers{
		auth:      handler.NewAuthHandler(authService, logger),
		catalogue: handler.NewCatalogueHandler(catalogueService, logger),
		checkout:  handler.NewCheckoutHandler(checkoutService, logger),
		health:    NewHealthChecker(infra),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, handlers, authService, rateLimiter, logger, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:           infra,
		config:          cfg,
		router:          router,
		server:          srv,
		repos:           repos,
		reaper:          reaper,
		stopLimiter:     stopLimiter,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// seedCatalogue loads the demo catalogue and, when Postgres is configured,
// the rows of its products table.
func seedCatalogue(ctx context.Context, infra Infrastructure, cfg *config.Config, products repository.ProductRepository) error {
	var sources []repository.ProductSource
	if cfg.Catalogue.SeedDemo {
		sources = append(sources, repository.NewStaticProductSource(repository.DemoProducts()))
	}
	if pg := infra.Postgres(); pg != nil {
		source, err := repository.NewPostgresProductSource(pg)
		if err != nil {
			return fmt.Errorf("failed to prepare catalogue database: %w", err)
		}
		sources = append(sources, source)
	}

	n, err := repository.Seed(ctx, products, sources...)
	if err != nil {
		return fmt.Errorf("failed to seed catalogue: %w", err)
	}

	infra.Logger().Info("Catalogue seeded", zap.Int("products", n))
	return nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Repositories() *repository.Repositories {
	return a.repos
}

type routeHandlers struct {
	auth      *handler.AuthHandler
	catalogue *handler.CatalogueHandler
	checkout  *handler.CheckoutHandler
	health    *HealthChecker
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h routeHandlers,
	authService service.AuthService,
	rateLimiter service.RateLimiter,
	logger *zap.Logger,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", h.health.Handler)

	limited := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.IPBasedKey,
		logger,
	)
	authenticated := handler.AuthMiddleware(authService)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", limited, h.auth.Login)
			auth.POST("/token", limited, h.auth.Token)
			auth.GET("/me", authenticated, h.auth.GetMe)
		}

		products := api.Group("/products")
		{
			products.GET("", h.catalogue.List)
			products.GET("/:id", h.catalogue.Get)
		}

		api.POST("/checkout", authenticated, h.checkout.Checkout)
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	reaperCtx, stopReaper := context.WithCancel(ctx)
	var reaperDone sync.WaitGroup
	reaperDone.Add(1)
	go func() {
		defer reaperDone.Done()
		a.reaper.Run(reaperCtx)
	}()

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	stopReaper()
	reaperDone.Wait()

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	if a.stopLimiter != nil {
		defer a.stopLimiter()
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("HTTP server shutdown failed", zap.Error(err))
		return errors.Join(err, a.infra.Shutdown(ctx))
	}

	a.infra.Logger().Info("Application exited successfully")
	return a.infra.Shutdown(ctx)
}
