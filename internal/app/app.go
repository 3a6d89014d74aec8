package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/synthfin/internal/common"
	"github.com/bobmcallan/synthfin/internal/interfaces"
	"github.com/bobmcallan/synthfin/internal/services/generator"
	"github.com/bobmcallan/synthfin/internal/services/statements"
)

// App holds the loaded configuration and initialized services.
// It is the shared core used by both cmd/synthfin-server and cmd/synthfin.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	StatementService interfaces.StatementService
	StartupTime      time.Time

	warmCacheCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: the given path, SYNTHFIN_CONFIG,
// synthfin.toml next to the binary, then config/synthfin.toml.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("SYNTHFIN_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "synthfin.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/synthfin.toml" // fallback for development
		}
	}
	return configPath
}

// NewApp loads configuration and initializes all services.
// configPath may be empty, in which case the default resolution logic is used.
// A missing config file is not an error; defaults and env overrides apply.
func NewApp(configPath string) (*App, error) {
	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewAppWithConfig(config, common.NewLoggerFromConfig(config.Logging)), nil
}

// generatorLimits converts the config section into normalised generator limits.
func generatorLimits(c common.GeneratorConfig) generator.Limits {
	return generator.Limits{
		DefaultYears:   c.DefaultYears,
		MaxYears:       c.MaxYears,
		LastFiscalYear: c.LastFiscalYear,
		Currency:       c.Currency,
	}.Normalize()
}

// NewAppWithConfig wires services from an already loaded config.
func NewAppWithConfig(config *common.Config, logger *common.Logger) *App {
	startupStart := time.Now()

	statementService := statements.NewService(generatorLimits(config.Generator), config.Cache.Capacity, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		StatementService: statementService,
		StartupTime:      startupStart,
	}

	logger.Info().
		Int("max_years", statementService.Limits().MaxYears).
		Int("last_fiscal_year", statementService.Limits().LastFiscalYear).
		Int("cache_capacity", config.Cache.Capacity).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a
}

// StartWarmCache generates the configured warm tickers in the background.
func (a *App) StartWarmCache() {
	warmCtx, warmCancel := context.WithTimeout(context.Background(), time.Minute)
	a.warmCacheCancel = warmCancel
	go func() {
		defer warmCancel()
		warmCache(warmCtx, a.StatementService, a.Config.Cache, a.Logger)
	}()
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.warmCacheCancel != nil {
		a.warmCacheCancel()
		a.warmCacheCancel = nil
	}
}
