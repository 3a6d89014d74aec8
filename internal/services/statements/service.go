// Package statements serves generated statement bundles with an in-memory cache.
package statements

import (
	"context"
	"errors"

	"github.com/bobmcallan/synthfin/internal/common"
	"github.com/bobmcallan/synthfin/internal/interfaces"
	"github.com/bobmcallan/synthfin/internal/models"
	"github.com/bobmcallan/synthfin/internal/services/generator"
)

// Service implements StatementService on top of the pure generator.
type Service struct {
	limits generator.Limits
	cache  *bundleCache
	logger *common.Logger
}

var _ interfaces.StatementService = (*Service)(nil)

// NewService creates a statement service.
// cacheCapacity 0 disables caching; every call then generates afresh.
func NewService(limits generator.Limits, cacheCapacity int, logger *common.Logger) *Service {
	return &Service{
		limits: limits.Normalize(),
		cache:  newBundleCache(cacheCapacity),
		logger: logger,
	}
}

// Limits returns the generator limits the service was built with
func (s *Service) Limits() generator.Limits {
	return s.limits
}

// GetStatements returns the bundle for ticker, from the cache when an identical request was served before.
// Cached bundles are shared between callers and must not be mutated.
func (s *Service) GetStatements(ctx context.Context, ticker string, years int) (*models.StatementBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := generator.NormalizeTicker(ticker)
	if err != nil {
		s.logInvalid(ticker, years, err)
		return nil, err
	}
	if err := s.limits.CheckYears(years); err != nil {
		s.logInvalid(ticker, years, err)
		return nil, err
	}

	key := cacheKey(t, years)
	if b, ok := s.cache.get(key); ok {
		s.logger.Trace().Str("ticker", t).Int("years", years).Msg("Statement cache hit")
		return b, nil
	}

	b, err := generator.Generate(s.limits, t, years)
	if err != nil {
		return nil, err
	}
	s.cache.put(key, b)

	s.logger.Debug().
		Str("ticker", t).
		Int("years", years).
		Int("first_year", b.Summary.FirstYear).
		Int("last_year", b.Summary.LastYear).
		Bool("default_flag", b.Summary.DefaultFlag).
		Msg("Generated statements")
	return b, nil
}

// ValidateStatements runs the linkage checks on the bundle for ticker.
func (s *Service) ValidateStatements(ctx context.Context, ticker string, years int) (*models.LinkageReport, error) {
	b, err := s.GetStatements(ctx, ticker, years)
	if err != nil {
		return nil, err
	}

	report := generator.Validate(b, generator.DefaultTolerance)
	if !report.AllPassed {
		s.logger.Warn().
			Str("ticker", b.Ticker).
			Int("years", years).
			Strs("failed", report.FailedChecks).
			Msg("Statement linkage checks failed")
	}
	return report, nil
}

func (s *Service) logInvalid(ticker string, years int, err error) {
	var ie *generator.InputError
	field := ""
	if errors.As(err, &ie) {
		field = ie.Field
	}
	s.logger.Info().
		Str("ticker", ticker).
		Int("years", years).
		Str("field", field).
		Err(err).
		Msg("Rejected statement request")
}
