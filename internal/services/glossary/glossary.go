// Package glossary defines the statement and ratio terms, optionally filled with live bundle values.
package glossary

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/synthfin/internal/models"
	"github.com/bobmcallan/synthfin/internal/services/export"
)

// Build returns the glossary. With a non-empty bundle every term carries the
// latest fiscal year's value; with nil only the definitions are returned.
func Build(b *models.StatementBundle) *models.GlossaryResponse {
	resp := &models.GlossaryResponse{}

	var (
		rec  *models.FinancialRecord
		ind  *models.IndicatorRecord
		summ *models.BundleSummary
		cur  string
	)
	if b != nil {
		if r, i, ok := b.Latest(); ok {
			rec, ind, summ, cur = &r, &i, &b.Summary, b.Currency
			resp.Ticker = b.Ticker
			resp.FiscalYear = r.FiscalYear
			resp.Currency = b.Currency
		}
	}

	resp.Categories = []models.GlossaryCategory{
		buildIncomeCategory(rec, cur),
		buildBalanceCategory(rec, cur),
		buildCashflowCategory(rec, cur),
		buildProfitabilityCategory(ind),
		buildSolvencyCategory(ind),
		buildLiquidityCategory(ind),
		buildEfficiencyCategory(ind),
		buildGrowthCategory(ind, summ),
	}
	return resp
}

// amountTerm fills Value and Example from rec when present.
func amountTerm(term, label, definition, formula string, rec *models.FinancialRecord, cur string, pick func(models.FinancialRecord) decimal.Decimal) models.GlossaryTerm {
	t := models.GlossaryTerm{Term: term, Label: label, Definition: definition, Formula: formula}
	if rec != nil {
		v := pick(*rec)
		t.Value = v
		t.Example = export.FormatAmount(v, cur)
	}
	return t
}

func ratioTerm(term, label, definition, formula string, ind *models.IndicatorRecord, pick func(models.IndicatorRecord) *float64) models.GlossaryTerm {
	t := models.GlossaryTerm{Term: term, Label: label, Definition: definition, Formula: formula}
	if ind != nil {
		v := pick(*ind)
		if v != nil {
			t.Value = *v
		}
		t.Example = export.FormatRatio(v)
	}
	return t
}

func buildIncomeCategory(rec *models.FinancialRecord, cur string) models.GlossaryCategory {
	return models.GlossaryCategory{
		Name: "Income Statement",
		Terms: []models.GlossaryTerm{
			amountTerm("revenue", "Net Revenue", "Revenue from sales and services, net of deductions.", "",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.Revenue }),
			amountTerm("cogs", "COGS", "Cost of goods sold.", "",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.COGS }),
			amountTerm("gross_profit", "Gross Profit", "Net revenue minus cost of goods sold.", "revenue - cogs",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.GrossProfit }),
			amountTerm("ebit", "EBIT", "Operating profit before interest and taxes.", "gross_profit - operating_expenses - depreciation",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.EBIT }),
			amountTerm("net_income", "Net Income", "Profit after interest and corporate income tax.", "ebit - interest_expense - income_tax",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.NetIncome }),
		},
	}
}

func buildBalanceCategory(rec *models.FinancialRecord, cur string) models.GlossaryCategory {
	return models.GlossaryCategory{
		Name: "Balance Sheet",
		Terms: []models.GlossaryTerm{
			amountTerm("total_assets", "Total Assets", "Sum of company assets at period end.", "",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.TotalAssets }),
			amountTerm("total_liabilities", "Total Liabilities", "All liabilities and obligations.", "",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.TotalLiabilities }),
			amountTerm("equity", "Total Equity", "Shareholders' equity.", "total_assets - total_liabilities",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.Equity }),
			amountTerm("total_debt", "Total Debt", "Interest-bearing borrowings, short and long term.", "",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.TotalDebt }),
		},
	}
}

func buildCashflowCategory(rec *models.FinancialRecord, cur string) models.GlossaryCategory {
	return models.GlossaryCategory{
		Name: "Cash Flow",
		Terms: []models.GlossaryTerm{
			amountTerm("operating_cash_flow", "Operating Cash Flow", "Cash generated by operations.", "net_income + depreciation - change_in_working_capital",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.OperatingCashFlow }),
			amountTerm("net_change_in_cash", "Net Change in Cash", "Movement in the cash balance over the year.", "operating + investing + financing",
				rec, cur, func(r models.FinancialRecord) decimal.Decimal { return r.NetChangeInCash }),
		},
	}
}

func buildProfitabilityCategory(ind *models.IndicatorRecord) models.GlossaryCategory {
	return models.GlossaryCategory{
		Name: "Profitability",
		Terms: []models.GlossaryTerm{
			ratioTerm("gross_margin", "Gross Margin", "Share of revenue left after cost of goods sold.", "gross_profit / revenue",
				ind, func(r models.IndicatorRecord) *float64 { return r.GrossMargin }),
			ratioTerm("ebit_margin", "EBIT Margin", "Operating profit per unit of revenue.", "ebit / revenue",
				ind, func(r models.IndicatorRecord) *float64 { return r.EBITMargin }),
			ratioTerm("net_margin", "Net Margin", "Net profit per unit of revenue.", "net_income / revenue",
				ind, func(r models.IndicatorRecord) *float64 { return r.NetMargin }),
			ratioTerm("roa", "ROA", "Return on assets.", "net_income / total_assets",
				ind, func(r models.IndicatorRecord) *float64 { return r.ROA }),
			ratioTerm("roe", "ROE", "Return on equity.", "net_income / equity",
				ind, func(r models.IndicatorRecord) *float64 { return r.ROE }),
			ratioTerm("ebit_to_assets", "EBIT to Assets", "Operating profit earned per unit of assets.", "ebit / total_assets",
				ind, func(r models.IndicatorRecord) *float64 { return r.EBITToAssets }),
		},
	}
}

func buildSolvencyCategory(ind *models.IndicatorRecord) models.GlossaryCategory {
	return models.GlossaryCategory{
		Name: "Solvency",
		Terms: []models.GlossaryTerm{
			ratioTerm("leverage", "Leverage", "Assets carried per unit of equity.", "total_assets / equity",
				ind, func(r models.IndicatorRecord) *float64 { return r.Leverage }),
			ratioTerm("debt_to_assets", "Debt to Assets", "Share of assets financed by borrowings.", "total_debt / total_assets",
				ind, func(r models.IndicatorRecord) *float64 { return r.DebtToAssets }),
			ratioTerm("debt_to_equity", "Debt to Equity", "Borrowings per unit of equity.", "total_debt / equity",
				ind, func(r models.IndicatorRecord) *float64 { return r.DebtToEquity }),
			ratioTerm("net_debt_to_equity", "Net Debt to Equity", "Borrowings net of cash per unit of equity.", "(total_debt - cash) / equity",
				ind, func(r models.IndicatorRecord) *float64 { return r.NetDebtToEquity }),
			ratioTerm("ebit_to_debt", "Operating Income to Debt", "Operating profit relative to borrowings.", "ebit / total_debt",
				ind, func(r models.IndicatorRecord) *float64 { return r.EBITToDebt }),
			ratioTerm("interest_coverage", "Interest Coverage", "How many times operating profit covers interest.", "ebit / interest_expense",
				ind, func(r models.IndicatorRecord) *float64 { return r.InterestCoverage }),
			ratioTerm("ocf_to_liabilities", "OCF to Debt", "Operating cash flow relative to all liabilities.", "operating_cash_flow / total_liabilities",
				ind, func(r models.IndicatorRecord) *float64 { return r.OCFToLiabilities }),
		},
	}
}

func buildLiquidityCategory(ind *models.IndicatorRecord) models.GlossaryCategory {
	return models.GlossaryCategory{
		Name: "Liquidity",
		Terms: []models.GlossaryTerm{
			ratioTerm("current_ratio", "Current Ratio", "Short-term assets per unit of short-term liabilities.", "current_assets / current_liabilities",
				ind, func(r models.IndicatorRecord) *float64 { return r.CurrentRatio }),
			ratioTerm("quick_ratio", "Quick Ratio", "Current ratio excluding inventory.", "(current_assets - inventory) / current_liabilities",
				ind, func(r models.IndicatorRecord) *float64 { return r.QuickRatio }),
		},
	}
}

// Turnover ratios average the current and prior year balance, so the first
// year of a bundle has no value.
func buildEfficiencyCategory(ind *models.IndicatorRecord) models.GlossaryCategory {
	return models.GlossaryCategory{
		Name: "Efficiency",
		Terms: []models.GlossaryTerm{
			ratioTerm("asset_turnover", "Asset Turnover", "Revenue generated per unit of average assets.", "revenue / avg(total_assets, prior_total_assets)",
				ind, func(r models.IndicatorRecord) *float64 { return r.AssetTurnover }),
			ratioTerm("receivables_turnover", "Receivables Turnover", "How many times receivables are collected in a year.", "revenue / avg(receivables, prior_receivables)",
				ind, func(r models.IndicatorRecord) *float64 { return r.ReceivablesTurnover }),
			ratioTerm("inventory_turnover", "Inventory Turnover", "How many times inventory is sold through in a year.", "cogs / avg(inventory, prior_inventory)",
				ind, func(r models.IndicatorRecord) *float64 { return r.InventoryTurnover }),
		},
	}
}

func buildGrowthCategory(ind *models.IndicatorRecord, s *models.BundleSummary) models.GlossaryCategory {
	terms := []models.GlossaryTerm{
		ratioTerm("revenue_growth", "Revenue Growth", "Year-on-year change in revenue.", "(revenue - prior_revenue) / |prior_revenue|",
			ind, func(r models.IndicatorRecord) *float64 { return r.RevenueGrowth }),
	}

	cagr := models.GlossaryTerm{
		Term:       "revenue_cagr",
		Label:      "Revenue CAGR",
		Definition: "Compound annual growth rate of revenue over the bundle.",
		Formula:    "(last_revenue / first_revenue)^(1 / (years - 1)) - 1",
	}
	flag := models.GlossaryTerm{
		Term:       "default_flag",
		Label:      "Default Label",
		Definition: "Set when the company reports three or more consecutive yearly net losses.",
		Formula:    "consecutive_losses >= 3",
	}
	if s != nil {
		if s.RevenueCAGR != nil {
			cagr.Value = *s.RevenueCAGR
		}
		cagr.Example = export.FormatRatio(s.RevenueCAGR)
		flag.Value = s.DefaultFlag
		flag.Example = fmt.Sprintf("%d consecutive losses", s.ConsecutiveLosses)
	}

	return models.GlossaryCategory{
		Name:  "Growth and Risk",
		Terms: append(terms, cagr, flag),
	}
}
