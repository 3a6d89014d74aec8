package generator

import (
	"math"

	"github.com/bobmcallan/synthfin/internal/models"
)

// DefaultLossRun is the number of consecutive yearly net losses that raises the default flag.
const DefaultLossRun = 3

// Summarize computes the whole-horizon figures of a record series.
func Summarize(records []models.FinancialRecord) models.BundleSummary {
	var s models.BundleSummary
	if len(records) == 0 {
		return s
	}
	s.FirstYear = records[0].FiscalYear
	s.LastYear = records[len(records)-1].FiscalYear

	if len(records) > 1 {
		first := records[0].Revenue.InexactFloat64()
		last := records[len(records)-1].Revenue.InexactFloat64()
		s.RevenueCAGR = CAGR(first, last, len(records)-1)
	}

	run := 0
	for _, r := range records {
		if r.NetIncome.IsNegative() {
			run++
			s.ConsecutiveLosses = max(s.ConsecutiveLosses, run)
		} else {
			run = 0
		}
	}
	s.DefaultFlag = s.ConsecutiveLosses >= DefaultLossRun
	return s
}

// CAGR returns the compound annual growth rate as a fraction,
// nil when the start value is not positive or periods is not positive.
func CAGR(start, end float64, periods int) *float64 {
	if start <= 0 || end < 0 || periods <= 0 {
		return nil
	}
	return finite(math.Pow(end/start, 1/float64(periods)) - 1)
}
