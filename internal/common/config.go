// Package common provides shared utilities for synthfin
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/synthfin/internal/models"
)

// Config holds all configuration for synthfin
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Generator   GeneratorConfig `toml:"generator"`
	Cache       CacheConfig     `toml:"cache"`
	RateLimit   RateLimitConfig `toml:"rate_limit"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// GeneratorConfig holds the statement generator limits.
type GeneratorConfig struct {
	DefaultYears   int    `toml:"default_years"`
	MaxYears       int    `toml:"max_years"`
	LastFiscalYear int    `toml:"last_fiscal_year"` // fixed anchor, never derived from the clock
	Currency       string `toml:"currency"`
}

// CacheConfig holds the in-memory bundle cache settings. Capacity 0 disables the cache.
// WarmTickers are generated at DefaultYears in the background on server startup.
type CacheConfig struct {
	Capacity    int      `toml:"capacity"`
	WarmTickers []string `toml:"warm_tickers"`
}

// RateLimitConfig holds the API token bucket. RequestsPerSecond 0 disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Generator: GeneratorConfig{
			DefaultYears:   models.DefaultYears,
			MaxYears:       models.DefaultMaxYears,
			LastFiscalYear: models.DefaultLastFiscalYear,
			Currency:       models.DefaultCurrency,
		},
		Cache: CacheConfig{
			Capacity: 256,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SYNTHFIN_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("SYNTHFIN_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("SYNTHFIN_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("SYNTHFIN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("SYNTHFIN_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if v := os.Getenv("SYNTHFIN_DEFAULT_YEARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Generator.DefaultYears = n
		}
	}

	if v := os.Getenv("SYNTHFIN_MAX_YEARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Generator.MaxYears = n
		}
	}

	if v := os.Getenv("SYNTHFIN_LAST_FISCAL_YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Generator.LastFiscalYear = n
		}
	}

	if cur := os.Getenv("SYNTHFIN_CURRENCY"); cur != "" {
		config.Generator.Currency = strings.ToUpper(cur)
	}
}

// Validate rejects settings the generator cannot honour.
func (c *Config) Validate() error {
	g := c.Generator
	if g.MaxYears < 1 || g.MaxYears > models.HardMaxYears {
		return fmt.Errorf("generator.max_years must be between 1 and %d, got %d", models.HardMaxYears, g.MaxYears)
	}
	if g.DefaultYears < 1 || g.DefaultYears > g.MaxYears {
		return fmt.Errorf("generator.default_years must be between 1 and max_years (%d), got %d", g.MaxYears, g.DefaultYears)
	}
	if g.LastFiscalYear < models.MinLastFiscalYear || g.LastFiscalYear > models.MaxLastFiscalYear {
		return fmt.Errorf("generator.last_fiscal_year must be between %d and %d, got %d",
			models.MinLastFiscalYear, models.MaxLastFiscalYear, g.LastFiscalYear)
	}
	if money.GetCurrency(strings.ToUpper(g.Currency)) == nil {
		return fmt.Errorf("generator.currency %q is not a known ISO 4217 code", g.Currency)
	}
	if c.Cache.Capacity < 0 {
		return fmt.Errorf("cache.capacity must not be negative, got %d", c.Cache.Capacity)
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// Address returns the host:port listen address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
