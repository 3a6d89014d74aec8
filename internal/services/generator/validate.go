package generator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/synthfin/internal/models"
)

// DefaultTolerance is the linkage tolerance in currency units.
var DefaultTolerance = decimal.New(1, -6)

// Validate runs the cross-statement checks over a bundle:
//   - balance identity: assets == liabilities + equity
//   - cashflow sum: operating + investing + financing == net change in cash
//   - cash linkage: net change == cash - prior cash (from the second year)
//   - income linkage: net income rebuilt from revenue down
//   - revenue and total assets are non-negative
//   - fiscal years are contiguous and the sequences have the bundle length
func Validate(b *models.StatementBundle, tolerance decimal.Decimal) *models.LinkageReport {
	report := &models.LinkageReport{
		Ticker:    b.Ticker,
		Years:     b.Years,
		Tolerance: tolerance,
		AllPassed: true,
	}

	fail := func(year int, check string) {
		report.AllPassed = false
		if year == 0 {
			report.FailedChecks = append(report.FailedChecks, check)
			return
		}
		report.FailedChecks = append(report.FailedChecks, fmt.Sprintf("%d: %s", year, check))
	}

	if len(b.Records) != b.Years {
		fail(0, fmt.Sprintf("record_count: got %d, want %d", len(b.Records), b.Years))
	}
	if len(b.Indicators) != len(b.Records) {
		fail(0, fmt.Sprintf("indicator_count: got %d, want %d", len(b.Indicators), len(b.Records)))
	}

	within := func(d decimal.Decimal) bool { return d.Abs().LessThanOrEqual(tolerance) }

	for i, r := range b.Records {
		yl := models.YearLinkage{FiscalYear: r.FiscalYear, Passed: true}
		check := func(ok bool, name string) {
			if !ok {
				yl.Passed = false
				fail(r.FiscalYear, name)
			}
		}

		yl.BalanceDifference = r.TotalAssets.Sub(r.TotalLiabilities.Add(r.Equity))
		check(within(yl.BalanceDifference), "balance_identity")

		flows := r.OperatingCashFlow.Add(r.InvestingCashFlow).Add(r.FinancingCashFlow)
		yl.CashFlowDifference = flows.Sub(r.NetChangeInCash)
		check(within(yl.CashFlowDifference), "cash_flow_sum")

		netIncome := r.Revenue.Sub(r.COGS).Sub(r.OperatingExpenses).Sub(r.Depreciation).
			Sub(r.InterestExpense).Sub(r.IncomeTax)
		yl.IncomeDifference = r.NetIncome.Sub(netIncome)
		check(within(yl.IncomeDifference), "income_linkage")

		check(!r.Revenue.IsNegative(), "revenue_non_negative")
		check(!r.TotalAssets.IsNegative(), "assets_non_negative")

		if i > 0 {
			prev := b.Records[i-1]
			yl.CashDifference = r.NetChangeInCash.Sub(r.Cash.Sub(prev.Cash))
			check(within(yl.CashDifference), "cash_linkage")
			check(r.FiscalYear == prev.FiscalYear+1, "contiguous_years")
		}

		report.Checks = append(report.Checks, yl)
	}
	return report
}
