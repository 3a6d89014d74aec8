package models

import "github.com/shopspring/decimal"

// StatementRequest is the request shape accepted at the presentation boundary.
type StatementRequest struct {
	Ticker string `json:"ticker"`
	Years  int    `json:"years"`
}

// FinancialRecord holds one fiscal year of the three statements.
// Amounts are in the bundle currency, rounded to two decimal places.
type FinancialRecord struct {
	FiscalYear int `json:"fiscal_year"`

	// Income statement
	Revenue           decimal.Decimal `json:"revenue"`
	COGS              decimal.Decimal `json:"cogs"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	Depreciation      decimal.Decimal `json:"depreciation"`
	EBIT              decimal.Decimal `json:"ebit"`
	InterestExpense   decimal.Decimal `json:"interest_expense"`
	IncomeTax         decimal.Decimal `json:"income_tax"`
	NetIncome         decimal.Decimal `json:"net_income"`

	// Balance sheet
	Cash               decimal.Decimal `json:"cash"`
	Receivables        decimal.Decimal `json:"receivables"`
	Inventory          decimal.Decimal `json:"inventory"`
	CurrentAssets      decimal.Decimal `json:"current_assets"`
	TotalAssets        decimal.Decimal `json:"total_assets"`
	CurrentLiabilities decimal.Decimal `json:"current_liabilities"`
	TotalDebt          decimal.Decimal `json:"total_debt"`
	TotalLiabilities   decimal.Decimal `json:"total_liabilities"`
	Equity             decimal.Decimal `json:"equity"`

	// Cashflow statement
	OperatingCashFlow  decimal.Decimal `json:"operating_cash_flow"`
	InvestingCashFlow  decimal.Decimal `json:"investing_cash_flow"`
	FinancingCashFlow  decimal.Decimal `json:"financing_cash_flow"`
	NetChangeInCash    decimal.Decimal `json:"net_change_in_cash"`
	CapitalExpenditure decimal.Decimal `json:"capital_expenditure"`
	DividendsPaid      decimal.Decimal `json:"dividends_paid"`
}

// IndicatorRecord holds the ratios derived from one FinancialRecord.
// A nil field means the ratio is undefined (zero denominator, or no prior year).
type IndicatorRecord struct {
	FiscalYear int `json:"fiscal_year"`

	GrossMargin            *float64 `json:"gross_margin"`
	EBITMargin             *float64 `json:"ebit_margin"`
	NetMargin              *float64 `json:"net_margin"`
	ROA                    *float64 `json:"roa"`
	ROE                    *float64 `json:"roe"`
	Leverage               *float64 `json:"leverage"`
	DebtToAssets           *float64 `json:"debt_to_assets"`
	DebtToEquity           *float64 `json:"debt_to_equity"`
	LiabilitiesToEquity    *float64 `json:"liabilities_to_equity"`
	EquityToLiabilities    *float64 `json:"equity_to_liabilities"`
	CurrentRatio           *float64 `json:"current_ratio"`
	QuickRatio             *float64 `json:"quick_ratio"`
	WorkingCapitalToAssets *float64 `json:"working_capital_to_assets"`
	InterestCoverage       *float64 `json:"interest_coverage"`
	EBITDAToInterest       *float64 `json:"ebitda_to_interest"`
	DebtToEBITDA           *float64 `json:"debt_to_ebitda"`
	OCFToLiabilities       *float64 `json:"ocf_to_liabilities"`
	NetDebtToEquity        *float64 `json:"net_debt_to_equity"`
	EBITToAssets           *float64 `json:"ebit_to_assets"`
	EBITToDebt             *float64 `json:"ebit_to_debt"`

	// Prior-year ratios, nil for the first year of a bundle
	RevenueGrowth       *float64 `json:"revenue_growth"`
	NetIncomeGrowth     *float64 `json:"net_income_growth"`
	AssetTurnover       *float64 `json:"asset_turnover"`
	ReceivablesTurnover *float64 `json:"receivables_turnover"`
	InventoryTurnover   *float64 `json:"inventory_turnover"`
}

// BundleSummary carries whole-horizon figures computed from the records.
type BundleSummary struct {
	FirstYear         int      `json:"first_year"`
	LastYear          int      `json:"last_year"`
	RevenueCAGR       *float64 `json:"revenue_cagr"`
	ConsecutiveLosses int      `json:"consecutive_losses"`
	DefaultFlag       bool     `json:"default_flag"` // three or more consecutive yearly net losses
}

// StatementBundle is the full generator output for one (ticker, years) request.
// Records and Indicators are parallel and ordered by ascending fiscal year.
// Consumers must treat it as read-only.
type StatementBundle struct {
	Ticker     string            `json:"ticker"`
	Years      int               `json:"years"`
	Currency   string            `json:"currency"`
	Records    []FinancialRecord `json:"records"`
	Indicators []IndicatorRecord `json:"indicators"`
	Summary    BundleSummary     `json:"summary"`
}

// FiscalYears returns the fiscal years of the bundle in order.
func (b *StatementBundle) FiscalYears() []int {
	years := make([]int, len(b.Records))
	for i, r := range b.Records {
		years[i] = r.FiscalYear
	}
	return years
}

// Latest returns the most recent record and its indicators.
func (b *StatementBundle) Latest() (FinancialRecord, IndicatorRecord, bool) {
	if len(b.Records) == 0 {
		return FinancialRecord{}, IndicatorRecord{}, false
	}
	last := len(b.Records) - 1
	return b.Records[last], b.Indicators[last], true
}
