package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Stripe   StripeConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Notify   NotifyConfig
	Checkout CheckoutConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
	// PublicURL is the storefront origin used for payment redirects when the
	// request carries no Origin header.
	PublicURL string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
	MigrateOnStart  bool
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration for the admin routes.
type AuthConfig struct {
	APIKey string
}

// StripeConfig holds payment provider configuration.
type StripeConfig struct {
	SecretKey string
	Currency  string

	// Circuit breaker around provider calls.
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// RedisConfig holds configuration for cart persistence.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

// CatalogConfig holds configuration for importing CMS content exports.
type CatalogConfig struct {
	Dir       string // local exports are read from inside this directory
	File      string // imported on startup when non-empty, relative to Dir
	S3Enabled bool
	S3Bucket  string
	S3Region  string
	S3Prefix  string // Path prefix within bucket (e.g., "catalog/")
}

// NotifyConfig holds configuration for order notifications.
type NotifyConfig struct {
	SNSEnabled  bool
	SNSTopicARN string
	SNSRegion   string
}

// CheckoutConfig switches between the hardened and the legacy checkout behaviour.
type CheckoutConfig struct {
	// RepriceFromCatalog resolves every cart line against the content store
	// before a payment session is created.
	RepriceFromCatalog bool

	// IdempotentOrders makes order finalization return the existing order for
	// a session instead of writing a second one.
	IdempotentOrders bool

	// StrictMetadata rejects sessions whose item snapshot is missing or malformed.
	StrictMetadata bool
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; variables already set take
// precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "0.0.0.0"),
			Port:      getEnvAsInt("SERVER_PORT", 8080),
			PublicURL: strings.TrimRight(getEnv("SERVER_PUBLIC_URL", "http://localhost:3000"), "/"),

			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout:  getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 20*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "storefront"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			MigrateOnStart:  getEnvAsBool("DB_MIGRATE_ON_START", true),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Stripe: StripeConfig{
			SecretKey:          getEnv("STRIPE_SECRET_KEY", ""),
			Currency:           strings.ToLower(getEnv("STRIPE_CURRENCY", "usd")),
			BreakerMaxFailures: uint32(getEnvAsInt("STRIPE_BREAKER_MAX_FAILURES", 5)),
			BreakerOpenTimeout: getEnvAsDuration("STRIPE_BREAKER_OPEN_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CartTTL:  getEnvAsDuration("CART_TTL", 30*24*time.Hour),
		},
		Catalog: CatalogConfig{
			Dir:       getEnv("CATALOG_DIR", "."),
			File:      getEnv("CATALOG_FILE", ""),
			S3Enabled: getEnvAsBool("CATALOG_S3_ENABLED", false),
			S3Bucket:  getEnv("CATALOG_S3_BUCKET", ""),
			S3Region:  getEnv("CATALOG_S3_REGION", "us-east-1"),
			S3Prefix:  getEnv("CATALOG_S3_PREFIX", "catalog/"),
		},
		Notify: NotifyConfig{
			SNSEnabled:  getEnvAsBool("NOTIFY_SNS_ENABLED", false),
			SNSTopicARN: getEnv("NOTIFY_SNS_TOPIC_ARN", ""),
			SNSRegion:   getEnv("NOTIFY_SNS_REGION", "us-east-1"),
		},
		Checkout: CheckoutConfig{
			RepriceFromCatalog: getEnvAsBool("CHECKOUT_REPRICE", true),
			IdempotentOrders:   getEnvAsBool("ORDER_IDEMPOTENT", true),
			StrictMetadata:     getEnvAsBool("ORDER_STRICT_METADATA", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	if !strings.HasPrefix(c.Server.PublicURL, "http://") && !strings.HasPrefix(c.Server.PublicURL, "https://") {
		return fmt.Errorf("invalid public URL: %s (must start with http:// or https://)", c.Server.PublicURL)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("stripe secret key is required")
	}

	if len(c.Stripe.Currency) != 3 {
		return fmt.Errorf("invalid currency: %s (must be a 3-letter ISO code)", c.Stripe.Currency)
	}

	if c.Stripe.BreakerMaxFailures < 1 {
		return fmt.Errorf("stripe breaker max failures must be at least 1")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	if c.Redis.CartTTL <= 0 {
		return fmt.Errorf("cart TTL must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Catalog.Dir == "" {
		return fmt.Errorf("catalog directory is required")
	}

	if c.Catalog.File != "" && !filepath.IsLocal(c.Catalog.File) {
		return fmt.Errorf("invalid catalog file: %s (must be relative to the catalog directory)", c.Catalog.File)
	}

	if c.Catalog.S3Enabled {
		if c.Catalog.S3Bucket == "" {
			return fmt.Errorf("catalog S3 bucket is required when S3 is enabled")
		}
		if c.Catalog.S3Region == "" {
			return fmt.Errorf("catalog S3 region is required when S3 is enabled")
		}
	}

	if c.Notify.SNSEnabled && c.Notify.SNSTopicARN == "" {
		return fmt.Errorf("SNS topic ARN is required when notifications are enabled")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
