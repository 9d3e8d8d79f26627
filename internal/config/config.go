package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL   string
	RunMigrations bool

	// Auth0
	Auth0Domain   string
	Auth0Audience string

	// Server
	Port               string
	CORSOrigins        []string
	Env                string
	RateLimitPerMinute int

	// Time-value engine
	Engine EngineConfig
}

// EngineConfig holds the valuation and rate resolution settings
type EngineConfig struct {
	BaseCurrency              string
	RateCacheTTL              time.Duration
	RateCacheSize             int
	OneTimeAmortizationMonths int
	CapexAmortizationMonths   int
	ForecastMonths            int
	Concurrency               int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
		Engine: EngineConfig{
			BaseCurrency: getEnv("BASE_CURRENCY", "USD"),
		},
	}

	var err error
	if cfg.RunMigrations, err = getEnvBool("RUN_MIGRATIONS", true); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return nil, err
	}
	if cfg.Engine.RateCacheTTL, err = getEnvDuration("RATE_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.Engine.RateCacheSize, err = getEnvInt("RATE_CACHE_SIZE", 4096); err != nil {
		return nil, err
	}
	if cfg.Engine.OneTimeAmortizationMonths, err = getEnvInt("ONE_TIME_AMORTIZATION_MONTHS", 0); err != nil {
		return nil, err
	}
	if cfg.Engine.CapexAmortizationMonths, err = getEnvInt("CAPEX_AMORTIZATION_MONTHS", 0); err != nil {
		return nil, err
	}
	if cfg.Engine.ForecastMonths, err = getEnvInt("FORECAST_MONTHS", 6); err != nil {
		return nil, err
	}
	if cfg.Engine.Concurrency, err = getEnvInt("ENGINE_CONCURRENCY", 8); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}

	e := c.Engine
	if len(e.BaseCurrency) != 3 || strings.ToUpper(e.BaseCurrency) != e.BaseCurrency {
		return fmt.Errorf("BASE_CURRENCY must be a three-letter uppercase code")
	}
	if e.RateCacheTTL <= 0 {
		return fmt.Errorf("RATE_CACHE_TTL must be positive")
	}
	if e.RateCacheSize <= 0 {
		return fmt.Errorf("RATE_CACHE_SIZE must be positive")
	}
	if e.OneTimeAmortizationMonths < 0 || e.CapexAmortizationMonths < 0 {
		return fmt.Errorf("amortization windows must not be negative")
	}
	if e.ForecastMonths < 0 || e.ForecastMonths > 60 {
		return fmt.Errorf("FORECAST_MONTHS must be between 0 and 60")
	}
	if e.Concurrency <= 0 {
		return fmt.Errorf("ENGINE_CONCURRENCY must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
