package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server    ServerConfig    `env:",prefix=SERVER_"`
	Postgres  PostgresConfig  `env:",prefix=POSTGRES_"`
	Redis     RedisConfig     `env:",prefix=REDIS_"`
	JWT       JWTConfig       `env:",prefix=JWT_"`
	Auth      AuthConfig      `env:",prefix=AUTH_"`
	Checkout  CheckoutConfig  `env:",prefix=CHECKOUT_"`
	Catalogue CatalogueConfig `env:",prefix=CATALOGUE_"`
	Security  SecurityConfig  `env:",prefix="`
	CORS      CORSConfig      `env:",prefix=CORS_"`
	Env       string          `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

// PostgresConfig describes the optional catalogue seed database.
type PostgresConfig struct {
	Enabled  bool   `env:"ENABLED,default=false"`
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=storefront"`
	Password string `env:"PASSWORD,default=storefront_password"`
	DBName   string `env:"DB,default=storefront_db"`
	SSLMode  string `env:"SSLMODE,default=disable"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

type JWTConfig struct {
	Secret            string   `env:"SECRET,required"`
	Issuer            string   `env:"ISSUER,default=storefront-service"`
	Audience          string   `env:"AUDIENCE,default=storefront-api"`
	AccessTokenExpiry Duration `env:"ACCESS_TOKEN_EXPIRY,default=15m"`
}

type AuthConfig struct {
	CodeExpiry     Duration `env:"CODE_EXPIRY,default=10m"`
	ReaperInterval Duration `env:"REAPER_INTERVAL,default=5m"`
}

type CheckoutConfig struct {
	Currency string `env:"CURRENCY,default=USD"`
}

type CatalogueConfig struct {
	SeedDemo bool `env:"SEED_DEMO,default=true"`
}

type SecurityConfig struct {
	RateLimitBackend  string   `env:"RATE_LIMIT_BACKEND,default=memory"`
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// UsesRedis reports whether any component needs a Redis connection
func (c *Config) UsesRedis() bool {
	return c.Security.RateLimitBackend == "redis"
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks values that envconfig cannot express as tags
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	switch c.Security.RateLimitBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("RATE_LIMIT_BACKEND must be one of memory, redis; got %q", c.Security.RateLimitBackend)
	}

	if c.Auth.CodeExpiry.Duration <= 0 {
		return fmt.Errorf("AUTH_CODE_EXPIRY must be positive")
	}
	if c.Auth.ReaperInterval.Duration <= 0 {
		return fmt.Errorf("AUTH_REAPER_INTERVAL must be positive")
	}
	if c.JWT.AccessTokenExpiry.Duration <= 0 {
		return fmt.Errorf("JWT_ACCESS_TOKEN_EXPIRY must be positive")
	}
	if c.Security.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}
	if c.Security.RateLimitWindow.Duration <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.Checkout.Currency == "" {
		return fmt.Errorf("CHECKOUT_CURRENCY must not be empty")
	}

	return nil
}
