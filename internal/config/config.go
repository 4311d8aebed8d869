// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultCheckoutSecret = "change-me-checkout-secret"

// Cart storage backends.
const (
	CartBackendMemory   = "memory"
	CartBackendRedis    = "redis"
	CartBackendPostgres = "postgres"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Catalog     CatalogConfig
	Cart        CartConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	AWS         AWSConfig
	Checkout    CheckoutConfig
	I18n        I18nConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type CatalogConfig struct {
	// Source is a local path, an http(s) URL or an s3://bucket/key location.
	Source       string
	FetchTimeout int // in seconds
	Locale       string
}

type CartConfig struct {
	Backend       string
	KeyPrefix     string
	CookieName    string
	CookieMaxAge  int // in seconds
	CookieSecure  bool
	MutationRate  float64
	MutationBurst int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type CheckoutConfig struct {
	URL         string
	TokenSecret string
	TokenTTL    int // in minutes
}

type I18nConfig struct {
	DefaultLocale string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Catalog: CatalogConfig{
			Source:       getEnv("CATALOG_SOURCE", "./catalogo.json"),
			FetchTimeout: getEnvAsInt("CATALOG_FETCH_TIMEOUT", 10),
			Locale:       getEnv("CATALOG_LOCALE", "pt"),
		},
		Cart: CartConfig{
			Backend:       strings.ToLower(getEnv("CART_BACKEND", CartBackendMemory)),
			KeyPrefix:     getEnv("CART_KEY_PREFIX", "carrinho"),
			CookieName:    getEnv("CART_COOKIE_NAME", "storefront_session"),
			CookieMaxAge:  getEnvAsInt("CART_COOKIE_MAX_AGE", 60*60*24*30),
			CookieSecure:  getEnvAsBool("CART_COOKIE_SECURE", false),
			MutationRate:  getEnvAsFloat("CART_MUTATION_RATE", 5),
			MutationBurst: getEnvAsInt("CART_MUTATION_BURST", 20),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "storefront"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "eu-west-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Checkout: CheckoutConfig{
			URL:         getEnv("CHECKOUT_URL", "checkout.html"),
			TokenSecret: getEnv("CHECKOUT_TOKEN_SECRET", defaultCheckoutSecret),
			TokenTTL:    getEnvAsInt("CHECKOUT_TOKEN_TTL", 30),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "pt"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 30),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5500"}),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	switch c.Cart.Backend {
	case CartBackendMemory, CartBackendRedis, CartBackendPostgres:
	default:
		return fmt.Errorf("unknown cart backend %q", c.Cart.Backend)
	}

	if strings.TrimSpace(c.Catalog.Source) == "" {
		return fmt.Errorf("catalog source is required")
	}

	if c.Checkout.TokenSecret == defaultCheckoutSecret && c.IsProduction() {
		return fmt.Errorf("checkout token secret must be changed in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
