package generator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bobmcallan/synthfin/internal/models"
)

const (
	HardMaxYears          = models.HardMaxYears
	DefaultYears          = models.DefaultYears
	DefaultMaxYears       = models.DefaultMaxYears
	DefaultLastFiscalYear = models.DefaultLastFiscalYear
	DefaultCurrency       = models.DefaultCurrency

	maxTickerLen = 12
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]*$`)

// Limits is the explicit configuration passed to Generate.
type Limits struct {
	DefaultYears   int    // used by callers when no year count was supplied
	MaxYears       int    // inclusive upper bound for years
	LastFiscalYear int    // most recent fiscal year of every bundle
	Currency       string // ISO 4217 code of all amounts
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return Limits{
		DefaultYears:   DefaultYears,
		MaxYears:       DefaultMaxYears,
		LastFiscalYear: DefaultLastFiscalYear,
		Currency:       DefaultCurrency,
	}
}

// Normalize returns a copy with every field inside its legal range.
func (l Limits) Normalize() Limits {
	if l.MaxYears <= 0 {
		l.MaxYears = DefaultMaxYears
	}
	if l.MaxYears > HardMaxYears {
		l.MaxYears = HardMaxYears
	}
	if l.DefaultYears <= 0 {
		l.DefaultYears = DefaultYears
	}
	if l.DefaultYears > l.MaxYears {
		l.DefaultYears = l.MaxYears
	}
	if l.LastFiscalYear < models.MinLastFiscalYear || l.LastFiscalYear > models.MaxLastFiscalYear {
		l.LastFiscalYear = DefaultLastFiscalYear
	}
	l.Currency = strings.ToUpper(strings.TrimSpace(l.Currency))
	if l.Currency == "" {
		l.Currency = DefaultCurrency
	}
	return l
}

// FirstFiscalYear returns the first year of a bundle with the given length.
func (l Limits) FirstFiscalYear(years int) int {
	return l.LastFiscalYear - years + 1
}

// NormalizeTicker trims and upper-cases a ticker and checks its shape.
func NormalizeTicker(ticker string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return "", invalid("ticker", ticker, "must not be empty")
	}
	if len(t) > maxTickerLen {
		return "", invalid("ticker", ticker, "must be at most "+strconv.Itoa(maxTickerLen)+" characters")
	}
	if !tickerPattern.MatchString(t) {
		return "", invalid("ticker", ticker, "must contain only letters, digits, '.' or '-'")
	}
	return t, nil
}

// CheckYears verifies years is inside [1, MaxYears].
func (l Limits) CheckYears(years int) error {
	l = l.Normalize()
	if years < 1 || years > l.MaxYears {
		return invalid("years", strconv.Itoa(years), "must be between 1 and "+strconv.Itoa(l.MaxYears))
	}
	return nil
}
