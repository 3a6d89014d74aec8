package app

import (
	"context"
	"os"
	"time"

	"github.com/bobmcallan/synthfin/internal/common"
	"github.com/bobmcallan/synthfin/internal/interfaces"
)

// warmCache generates bundles for the configured tickers so the first request is a cache hit.
// It returns the number of tickers warmed.
func warmCache(ctx context.Context, svc interfaces.StatementService, cfg common.CacheConfig, logger *common.Logger) int {
	// Check env var override
	if os.Getenv("SYNTHFIN_WARM_CACHE") == "off" {
		logger.Info().Msg("Warm cache: disabled via SYNTHFIN_WARM_CACHE=off")
		return 0
	}

	if cfg.Capacity == 0 || len(cfg.WarmTickers) == 0 {
		logger.Debug().Msg("Warm cache: nothing to warm, skipping")
		return 0
	}

	start := time.Now()
	years := svc.Limits().DefaultYears
	warmed := 0

	for _, ticker := range cfg.WarmTickers {
		if ctx.Err() != nil {
			logger.Warn().Int("warmed", warmed).Msg("Warm cache: cancelled")
			return warmed
		}
		if _, err := svc.GetStatements(ctx, ticker, years); err != nil {
			logger.Warn().Str("ticker", ticker).Err(err).Msg("Warm cache: skipping ticker")
			continue
		}
		warmed++
	}

	logger.Info().
		Int("tickers", warmed).
		Int("years", years).
		Dur("elapsed", time.Since(start)).
		Msg("Warm cache: complete")
	return warmed
}
