package statements

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/synthfin/internal/common"
	"github.com/bobmcallan/synthfin/internal/services/generator"
)

func newTestService(capacity int) *Service {
	return NewService(generator.DefaultLimits(), capacity, common.NewSilentLogger())
}

func TestGetStatements_CachesNormalisedRequests(t *testing.T) {
	svc := newTestService(8)
	ctx := context.Background()

	first, err := svc.GetStatements(ctx, "acme", 3)
	require.NoError(t, err)
	second, err := svc.GetStatements(ctx, " ACME ", 3)
	require.NoError(t, err)

	assert.Same(t, first, second, "normalised tickers should share a cache entry")
	assert.Equal(t, 1, svc.cache.len())
	assert.Equal(t, []int{2022, 2023, 2024}, first.FiscalYears())
}

func TestGetStatements_CacheDisabled(t *testing.T) {
	svc := newTestService(0)
	ctx := context.Background()

	first, err := svc.GetStatements(ctx, "ACME", 5)
	require.NoError(t, err)
	second, err := svc.GetStatements(ctx, "ACME", 5)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
	assert.Equal(t, 0, svc.cache.len())
}

func TestGetStatements_MatchesGenerator(t *testing.T) {
	svc := newTestService(4)

	got, err := svc.GetStatements(context.Background(), "ZZZ", 7)
	require.NoError(t, err)
	want, err := generator.Generate(generator.DefaultLimits(), "ZZZ", 7)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestGetStatements_InvalidInput(t *testing.T) {
	svc := newTestService(4)
	ctx := context.Background()

	tests := []struct {
		name   string
		ticker string
		years  int
		field  string
	}{
		{"empty ticker", "", 3, "ticker"},
		{"bad characters", "AC ME", 3, "ticker"},
		{"zero years", "ACME", 0, "years"},
		{"negative years", "ACME", -2, "years"},
		{"above max", "ACME", generator.DefaultMaxYears + 1, "years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetStatements(ctx, tt.ticker, tt.years)
			require.Error(t, err)
			assert.True(t, errors.Is(err, generator.ErrInvalidInput))

			var ie *generator.InputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.field, ie.Field)
		})
	}
	assert.Equal(t, 0, svc.cache.len())
}

func TestGetStatements_CancelledContext(t *testing.T) {
	svc := newTestService(4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetStatements(ctx, "ACME", 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBundleCache_EvictsLeastRecentlyUsed(t *testing.T) {
	svc := newTestService(2)
	ctx := context.Background()

	a, err := svc.GetStatements(ctx, "AAA", 2)
	require.NoError(t, err)
	_, err = svc.GetStatements(ctx, "BBB", 2)
	require.NoError(t, err)

	// Touch AAA so BBB becomes the eviction candidate.
	again, err := svc.GetStatements(ctx, "AAA", 2)
	require.NoError(t, err)
	assert.Same(t, a, again)

	_, err = svc.GetStatements(ctx, "CCC", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, svc.cache.len())
	_, ok := svc.cache.get(cacheKey("BBB", 2))
	assert.False(t, ok, "BBB should have been evicted")
	_, ok = svc.cache.get(cacheKey("AAA", 2))
	assert.True(t, ok)
}

func TestGetStatements_ConcurrentCallers(t *testing.T) {
	svc := newTestService(16)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ticker := []string{"ACME", "GLOBX", "INITECH", "UMBRL"}[i%4]
			if _, err := svc.GetStatements(ctx, ticker, 10); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("GetStatements() error = %v", err)
	}
	assert.Equal(t, 4, svc.cache.len())
}

func TestValidateStatements(t *testing.T) {
	svc := newTestService(4)

	report, err := svc.ValidateStatements(context.Background(), "acme", 12)
	require.NoError(t, err)
	assert.True(t, report.AllPassed, "failed: %v", report.FailedChecks)
	assert.Equal(t, "ACME", report.Ticker)
	assert.Len(t, report.Checks, 12)

	_, err = svc.ValidateStatements(context.Background(), "", 12)
	assert.ErrorIs(t, err, generator.ErrInvalidInput)
}

func TestLimits_AreNormalised(t *testing.T) {
	svc := NewService(generator.Limits{MaxYears: 99, DefaultYears: 80, Currency: "eur"}, 1, common.NewSilentLogger())
	limits := svc.Limits()

	assert.Equal(t, generator.HardMaxYears, limits.MaxYears)
	assert.Equal(t, generator.HardMaxYears, limits.DefaultYears)
	assert.Equal(t, "EUR", limits.Currency)
}
