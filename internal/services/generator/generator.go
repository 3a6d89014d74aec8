// Package generator produces deterministic synthetic financial statements.
//
// Generate is a pure function of its explicit inputs: the same Limits, ticker
// and year count always yield an identical bundle. The ticker seeds a PCG
// stream through xxhash; the stream draws a fixed per-ticker profile and then
// drives a seeded random walk over HardMaxYears fiscal years ending at
// Limits.LastFiscalYear. A bundle is the tail of that walk, so figures for a
// given fiscal year do not change with the requested horizon.
//
// Equity and financing cash flow are solved as residuals, which makes the
// balance identity and the cashflow sum hold exactly on the rounded amounts.
package generator

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/synthfin/internal/models"
)

// maxCurrentShare bounds current assets as a share of total assets.
const maxCurrentShare = 0.95

// Generate builds the statement bundle for ticker covering the last years fiscal years.
// It fails with an error matching ErrInvalidInput for a malformed ticker or an
// out-of-range year count, and never returns a partial bundle.
func Generate(limits Limits, ticker string, years int) (*models.StatementBundle, error) {
	limits = limits.Normalize()

	t, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	if err := limits.CheckYears(years); err != nil {
		return nil, err
	}

	all := simulate(t, limits.LastFiscalYear-HardMaxYears+1)

	records := make([]models.FinancialRecord, years)
	copy(records, all[HardMaxYears-years:])

	return &models.StatementBundle{
		Ticker:     t,
		Years:      years,
		Currency:   limits.Currency,
		Records:    records,
		Indicators: DeriveIndicators(records),
		Summary:    Summarize(records),
	}, nil
}

func simulate(ticker string, originYear int) []models.FinancialRecord {
	r := newRand(ticker)
	w := newWalk(drawProfile(r), r)

	out := make([]models.FinancialRecord, HardMaxYears)
	for i := range out {
		out[i] = w.step(originYear + i)
	}
	return out
}

// walk carries the float state between years plus the rounded prior-year
// balances that the cashflow statement is derived from.
type walk struct {
	p profile
	r *rand.Rand

	revenue   float64
	assets    float64
	cogsRatio float64
	opexRatio float64
	leverage  float64
	cashShare float64

	prevCash           decimal.Decimal
	prevWorkingCapital decimal.Decimal
	prevFixedAssets    decimal.Decimal
	prevDebt           float64
}

// newWalk sets up the opening balances one year before the origin.
func newWalk(p profile, r *rand.Rand) *walk {
	w := &walk{
		p:         p,
		r:         r,
		revenue:   p.baseRevenue / (1 + p.growthMean),
		cogsRatio: p.cogsRatio,
		opexRatio: p.opexRatio,
		leverage:  p.leverage,
		cashShare: p.cashShare,
	}
	w.assets = w.revenue / p.assetTurnover

	b := w.balance()
	w.prevCash = b.cash
	w.prevWorkingCapital = b.receivables.Add(b.inventory)
	w.prevFixedAssets = b.totalAssets.Sub(b.currentAssets)
	w.prevDebt = b.debt
	return w
}

type balance struct {
	cash               decimal.Decimal
	receivables        decimal.Decimal
	inventory          decimal.Decimal
	currentAssets      decimal.Decimal
	totalAssets        decimal.Decimal
	currentLiabilities decimal.Decimal
	totalDebt          decimal.Decimal
	totalLiabilities   decimal.Decimal
	equity             decimal.Decimal
	debt               float64
}

func (w *walk) balance() balance {
	p := w.p

	cashF := w.assets * w.cashShare
	recvF := w.revenue * p.receivableDays / 365
	invF := w.revenue * w.cogsRatio * p.inventoryDays / 365
	if room := w.assets*maxCurrentShare - cashF; recvF+invF > room {
		scale := room / (recvF + invF)
		recvF *= scale
		invF *= scale
	}
	liabF := w.assets * w.leverage

	b := balance{
		cash:               amount(cashF),
		receivables:        amount(recvF),
		inventory:          amount(invF),
		totalAssets:        amount(w.assets),
		currentLiabilities: amount(liabF * p.currentLiabShare),
		totalDebt:          amount(liabF * p.debtShare),
		totalLiabilities:   amount(liabF),
		debt:               liabF * p.debtShare,
	}
	b.currentAssets = b.cash.Add(b.receivables).Add(b.inventory)
	b.equity = b.totalAssets.Sub(b.totalLiabilities)
	return b
}

// step advances the walk by one fiscal year and returns its statements.
// The draw order below is part of the output contract.
func (w *walk) step(year int) models.FinancialRecord {
	p, r := w.p, w.r

	growth := clamp(p.growthMean+p.growthVol*r.NormFloat64(), -0.4, 0.6)
	w.revenue *= 1 + growth
	w.cogsRatio = clamp(w.cogsRatio+0.01*r.NormFloat64(), 0.35, 0.85)
	w.opexRatio = clamp(w.opexRatio+0.006*r.NormFloat64(), 0.04, 0.30)
	w.leverage = clamp(w.leverage+0.02*r.NormFloat64(), 0.15, 0.85)
	w.cashShare = clamp(w.cashShare+0.01*r.NormFloat64(), 0.02, 0.25)
	assetGrowth := clamp(0.8*growth+0.02*r.NormFloat64(), -0.35, 0.6)
	// pull assets back toward the ticker's turnover so the balance sheet tracks sales
	w.assets = 0.7*w.assets*(1+assetGrowth) + 0.3*w.revenue/p.assetTurnover

	rec := models.FinancialRecord{FiscalYear: year}

	// income statement
	rec.Revenue = amount(w.revenue)
	rec.COGS = amount(w.revenue * w.cogsRatio)
	rec.GrossProfit = rec.Revenue.Sub(rec.COGS)
	rec.OperatingExpenses = amount(w.revenue * w.opexRatio)
	rec.Depreciation = amount(w.revenue * p.daRatio)
	rec.EBIT = rec.GrossProfit.Sub(rec.OperatingExpenses).Sub(rec.Depreciation)
	rec.InterestExpense = amount(w.prevDebt * p.interestRate)
	pretax := rec.EBIT.Sub(rec.InterestExpense)
	rec.IncomeTax = decimal.Zero
	if pretax.IsPositive() {
		rec.IncomeTax = pretax.Mul(decimal.NewFromFloat(p.taxRate)).Round(2)
	}
	rec.NetIncome = pretax.Sub(rec.IncomeTax)

	// balance sheet
	b := w.balance()
	rec.Cash = b.cash
	rec.Receivables = b.receivables
	rec.Inventory = b.inventory
	rec.CurrentAssets = b.currentAssets
	rec.TotalAssets = b.totalAssets
	rec.CurrentLiabilities = b.currentLiabilities
	rec.TotalDebt = b.totalDebt
	rec.TotalLiabilities = b.totalLiabilities
	rec.Equity = b.equity

	// cashflow statement
	workingCapital := b.receivables.Add(b.inventory)
	fixedAssets := b.totalAssets.Sub(b.currentAssets)

	rec.OperatingCashFlow = rec.NetIncome.Add(rec.Depreciation).Sub(workingCapital.Sub(w.prevWorkingCapital))

	capex := rec.Depreciation.Add(fixedAssets.Sub(w.prevFixedAssets))
	if capex.IsNegative() {
		capex = decimal.Zero
	}
	rec.CapitalExpenditure = capex
	rec.InvestingCashFlow = capex.Neg()

	rec.DividendsPaid = decimal.Zero
	if rec.NetIncome.IsPositive() {
		rec.DividendsPaid = rec.NetIncome.Mul(decimal.NewFromFloat(p.payoutRatio)).Round(2)
	}

	rec.NetChangeInCash = b.cash.Sub(w.prevCash)
	rec.FinancingCashFlow = rec.NetChangeInCash.Sub(rec.OperatingCashFlow).Sub(rec.InvestingCashFlow)

	w.prevCash = b.cash
	w.prevWorkingCapital = workingCapital
	w.prevFixedAssets = fixedAssets
	w.prevDebt = b.debt

	return rec
}

// amount rounds a float to a two-place currency amount.
func amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
