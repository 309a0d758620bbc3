package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, "storefront-service", cfg.JWT.Issuer)
	assert.Equal(t, "storefront-api", cfg.JWT.Audience)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry.Duration)
	assert.Equal(t, 10*time.Minute, cfg.Auth.CodeExpiry.Duration)
	assert.Equal(t, 5*time.Minute, cfg.Auth.ReaperInterval.Duration)
	assert.Equal(t, "USD", cfg.Checkout.Currency)
	assert.True(t, cfg.Catalogue.SeedDemo)
	assert.False(t, cfg.Postgres.Enabled)
	assert.Equal(t, "memory", cfg.Security.RateLimitBackend)
	assert.False(t, cfg.UsesRedis())
	assert.Equal(t, "development", cfg.Env)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
	assert.NotEmpty(t, cfg.CORS.AllowedMethods)
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRY", "1d")
	t.Setenv("AUTH_CODE_EXPIRY", "30s")
	t.Setenv("AUTH_REAPER_INTERVAL", "1h")
	t.Setenv("CHECKOUT_CURRENCY", "EUR")
	t.Setenv("RATE_LIMIT_BACKEND", "redis")
	t.Setenv("ENV", "production")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiry.Duration)
	assert.Equal(t, 30*time.Second, cfg.Auth.CodeExpiry.Duration)
	assert.Equal(t, time.Hour, cfg.Auth.ReaperInterval.Duration)
	assert.Equal(t, "EUR", cfg.Checkout.Currency)
	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, "production", cfg.Env)
}

func TestLoadWithoutJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestLoadWithShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestLoadRejectsUnknownRateLimitBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("RATE_LIMIT_BACKEND", "memcached")

	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("AUTH_CODE_EXPIRY", "ten minutes")

	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"45s":   45 * time.Second,
		"10m":   10 * time.Minute,
		"2h":    2 * time.Hour,
		"7d":    7 * 24 * time.Hour,
		"1d12h": 36 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "d", "-1d", "xd", "1dfoo", "10"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, in)
	}
}

func TestPostgresDSN(t *testing.T) {
	pg := PostgresConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "test_user",
		Password: "test_password",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=test_user password=test_password dbname=test_db sslmode=disable"
	assert.Equal(t, expected, pg.DSN())
}

func TestRedisAddress(t *testing.T) {
	redis := RedisConfig{Host: "localhost", Port: "6379"}
	assert.Equal(t, "localhost:6379", redis.Address())
}
