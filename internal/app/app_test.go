package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/storefront-service/internal/config"
	"github.com/prperemyshlev/storefront-service/internal/dto"
	"github.com/prperemyshlev/storefront-service/pkg/database"
	"github.com/prperemyshlev/storefront-service/pkg/observability"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

type testInfrastructure struct {
	logger         *zap.Logger
	meterProvider  *metric.MeterProvider
	metricsHandler http.Handler
}

func newTestInfrastructure() (*testInfrastructure, error) {
	meterProvider, handler, err := observability.InitTelemetry("storefront-test")
	if err != nil {
		return nil, err
	}
	return &testInfrastructure{
		logger:         zap.NewNop(),
		meterProvider:  meterProvider,
		metricsHandler: handler,
	}, nil
}

func (i *testInfrastructure) Postgres() *database.Postgres { return nil }

func (i *testInfrastructure) Redis() *database.Redis { return nil }

func (i *testInfrastructure) Logger() *zap.Logger { return i.logger }

func (i *testInfrastructure) MetricsHandler() http.Handler { return i.metricsHandler }

func (i *testInfrastructure) MeterProvider() *metric.MeterProvider { return i.meterProvider }

func (i *testInfrastructure) Shutdown(ctx context.Context) error {
	return i.meterProvider.Shutdown(ctx)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         "0",
			ReadTimeout:  config.Duration{Duration: 15 * time.Second},
			WriteTimeout: config.Duration{Duration: 15 * time.Second},
		},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-that-is-at-least-32-characters-long",
			Issuer:            "storefront-service",
			Audience:          "storefront-api",
			AccessTokenExpiry: config.Duration{Duration: 15 * time.Minute},
		},
		Auth: config.AuthConfig{
			CodeExpiry:     config.Duration{Duration: 10 * time.Minute},
			ReaperInterval: config.Duration{Duration: time.Minute},
		},
		Checkout:  config.CheckoutConfig{Currency: "USD"},
		Catalogue: config.CatalogueConfig{SeedDemo: true},
		Security: config.SecurityConfig{
			RateLimitBackend:  "memory",
			RateLimitRequests: 100,
			RateLimitWindow:   config.Duration{Duration: time.Minute},
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
		Env: "test",
	}
}

// Suite drives the fully wired application over HTTP
type Suite struct {
	suite.Suite
	App     *App
	Server  *httptest.Server
	BaseURL string
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(Suite))
}

func (s *Suite) SetupTest() {
	gin.SetMode(gin.TestMode)

	infra, err := newTestInfrastructure()
	s.Require().NoError(err)

	app, err := NewApp(context.Background(), infra, testConfig())
	s.Require().NoError(err)

	s.App = app
	s.Server = httptest.NewServer(app.Router())
	s.BaseURL = s.Server.URL
}

func (s *Suite) TearDownTest() {
	s.Server.Close()
	if s.App.stopLimiter != nil {
		s.App.stopLimiter()
	}
}

func (s *Suite) request(method, path string, body interface{}, token string) (*http.Response, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.BaseURL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, raw
}

func (s *Suite) login(email string) string {
	resp, raw := s.request(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: email}, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))
	var login dto.LoginResponse
	s.Require().NoError(json.Unmarshal(raw, &login))

	resp, raw = s.request(http.MethodPost, "/api/v1/auth/token", dto.TokenRequest{Code: login.AuthorizationCode}, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))
	var token dto.TokenResponse
	s.Require().NoError(json.Unmarshal(raw, &token))
	return token.AccessToken
}

func (s *Suite) TestHealthEndpoint() {
	resp, raw := s.request(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.JSONEq(`{"status":"pass"}`, string(raw))
}

func (s *Suite) TestMetricsEndpoint() {
	s.login("metrics@example.com")

	resp, raw := s.request(http.MethodGet, "/metrics", nil, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(raw), "storefront_auth_codes_issued_total")
}

func (s *Suite) TestDemoCatalogue() {
	resp, raw := s.request(http.MethodGet, "/api/v1/products", nil, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var list dto.ProductListResponse
	s.Require().NoError(json.Unmarshal(raw, &list))
	s.Len(list.Products, 3)
	s.Equal(3, list.Pagination.TotalItems)
	s.Equal("prod_1", list.Products[0].ID)
	s.Equal("19.99", list.Products[0].Price.StringFixed(2))
	s.Len(list.Products[0].Variants, 3)

	resp, _ = s.request(http.MethodGet, "/api/v1/products/prod_4", nil, "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestCheckoutScenario() {
	token := s.login("buyer@example.com")

	resp, raw := s.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	s.Require().NoError(json.Unmarshal(raw, &me))
	s.Equal("buyer@example.com", me.Email)

	order := dto.CheckoutRequest{Items: []dto.CheckoutItem{{ProductID: "prod_1", Quantity: 3}}}
	resp, raw = s.request(http.MethodPost, "/api/v1/checkout", order, token)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))

	var result dto.CheckoutResponse
	s.Require().NoError(json.Unmarshal(raw, &result))
	s.True(result.Success)
	s.Equal("59.97", result.TotalAmount.String())
	s.Equal("pending", result.PaymentIntent.Status)

	product, err := s.App.Repositories().Product.GetByID(context.Background(), "prod_1")
	s.Require().NoError(err)
	s.Equal(97, product.Inventory)

	order = dto.CheckoutRequest{Items: []dto.CheckoutItem{{ProductID: "prod_1", Quantity: 98}}}
	resp, raw = s.request(http.MethodPost, "/api/v1/checkout", order, token)
	s.Equal(http.StatusConflict, resp.StatusCode, string(raw))
	s.Contains(string(raw), `"reason":"insufficient_inventory"`)

	product, err = s.App.Repositories().Product.GetByID(context.Background(), "prod_1")
	s.Require().NoError(err)
	s.Equal(97, product.Inventory)

	resp, _ = s.request(http.MethodPost, "/api/v1/checkout", order, "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestConcurrentCheckoutsOverHTTP() {
	token := s.login("rush@example.com")

	// prod_2 starts with 40 units
	const buyers = 25
	var wg sync.WaitGroup
	statuses := make(chan int, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, _ := json.Marshal(dto.CheckoutRequest{Items: []dto.CheckoutItem{{ProductID: "prod_2", Quantity: 2}}})
			req, _ := http.NewRequest(http.MethodPost, s.BaseURL+"/api/v1/checkout", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				statuses <- 0
				return
			}
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	counts := map[int]int{}
	for code := range statuses {
		counts[code]++
	}
	s.Equal(20, counts[http.StatusOK], fmt.Sprint(counts))
	s.Equal(5, counts[http.StatusConflict], fmt.Sprint(counts))

	product, err := s.App.Repositories().Product.GetByID(context.Background(), "prod_2")
	s.Require().NoError(err)
	s.Equal(0, product.Inventory)
}

func (s *Suite) TestRunStopsOnContextCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.App.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("Run did not return after cancel")
	}
}

func (s *Suite) TestShutdownStopsLimiterWhenServerShutdownFails() {
	stopped := 0
	stopMemoryLimiter := s.App.stopLimiter
	s.App.stopLimiter = func() {
		stopped++
		stopMemoryLimiter()
	}
	s.App.shutdownTimeout = 50 * time.Millisecond

	entered := make(chan struct{})
	release := make(chan struct{})
	s.App.Router().GET("/slow", func(c *gin.Context) {
		close(entered)
		<-release
		c.Status(http.StatusOK)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	go func() { _ = s.App.server.Serve(ln) }()

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err == nil {
			resp.Body.Close()
		}
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		s.FailNow("slow handler never reached")
	}

	err = s.App.Shutdown()
	close(release)

	s.ErrorIs(err, context.DeadlineExceeded)
	s.GreaterOrEqual(stopped, 1)
}
