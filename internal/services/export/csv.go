// Package export renders statement bundles as CSV, PNG charts and markdown.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/synthfin/internal/models"
)

// StatementKind selects which table of a bundle is exported.
type StatementKind string

const (
	KindIncome     StatementKind = "income"
	KindBalance    StatementKind = "balance"
	KindCashflow   StatementKind = "cashflow"
	KindIndicators StatementKind = "indicators"
)

// StatementKinds lists every exportable kind in file order.
var StatementKinds = []StatementKind{KindIncome, KindBalance, KindCashflow, KindIndicators}

// ParseStatementKind accepts a kind name case-insensitively.
func ParseStatementKind(s string) (StatementKind, error) {
	k := StatementKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range StatementKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown statement kind %q (want income, balance, cashflow or indicators)", s)
}

type amountColumn struct {
	name  string
	value func(r models.FinancialRecord) decimal.Decimal
}

type ratioColumn struct {
	name  string
	value func(r models.IndicatorRecord) *float64
}

var incomeColumns = []amountColumn{
	{"revenue", func(r models.FinancialRecord) decimal.Decimal { return r.Revenue }},
	{"cogs", func(r models.FinancialRecord) decimal.Decimal { return r.COGS }},
	{"gross_profit", func(r models.FinancialRecord) decimal.Decimal { return r.GrossProfit }},
	{"operating_expenses", func(r models.FinancialRecord) decimal.Decimal { return r.OperatingExpenses }},
	{"depreciation", func(r models.FinancialRecord) decimal.Decimal { return r.Depreciation }},
	{"ebit", func(r models.FinancialRecord) decimal.Decimal { return r.EBIT }},
	{"interest_expense", func(r models.FinancialRecord) decimal.Decimal { return r.InterestExpense }},
	{"income_tax", func(r models.FinancialRecord) decimal.Decimal { return r.IncomeTax }},
	{"net_income", func(r models.FinancialRecord) decimal.Decimal { return r.NetIncome }},
}

var balanceColumns = []amountColumn{
	{"cash", func(r models.FinancialRecord) decimal.Decimal { return r.Cash }},
	{"receivables", func(r models.FinancialRecord) decimal.Decimal { return r.Receivables }},
	{"inventory", func(r models.FinancialRecord) decimal.Decimal { return r.Inventory }},
	{"current_assets", func(r models.FinancialRecord) decimal.Decimal { return r.CurrentAssets }},
	{"total_assets", func(r models.FinancialRecord) decimal.Decimal { return r.TotalAssets }},
	{"current_liabilities", func(r models.FinancialRecord) decimal.Decimal { return r.CurrentLiabilities }},
	{"total_debt", func(r models.FinancialRecord) decimal.Decimal { return r.TotalDebt }},
	{"total_liabilities", func(r models.FinancialRecord) decimal.Decimal { return r.TotalLiabilities }},
	{"equity", func(r models.FinancialRecord) decimal.Decimal { return r.Equity }},
}

var cashflowColumns = []amountColumn{
	{"operating_cash_flow", func(r models.FinancialRecord) decimal.Decimal { return r.OperatingCashFlow }},
	{"investing_cash_flow", func(r models.FinancialRecord) decimal.Decimal { return r.InvestingCashFlow }},
	{"financing_cash_flow", func(r models.FinancialRecord) decimal.Decimal { return r.FinancingCashFlow }},
	{"net_change_in_cash", func(r models.FinancialRecord) decimal.Decimal { return r.NetChangeInCash }},
	{"capital_expenditure", func(r models.FinancialRecord) decimal.Decimal { return r.CapitalExpenditure }},
	{"dividends_paid", func(r models.FinancialRecord) decimal.Decimal { return r.DividendsPaid }},
}

var indicatorColumns = []ratioColumn{
	{"gross_margin", func(r models.IndicatorRecord) *float64 { return r.GrossMargin }},
	{"ebit_margin", func(r models.IndicatorRecord) *float64 { return r.EBITMargin }},
	{"net_margin", func(r models.IndicatorRecord) *float64 { return r.NetMargin }},
	{"roa", func(r models.IndicatorRecord) *float64 { return r.ROA }},
	{"roe", func(r models.IndicatorRecord) *float64 { return r.ROE }},
	{"leverage", func(r models.IndicatorRecord) *float64 { return r.Leverage }},
	{"debt_to_assets", func(r models.IndicatorRecord) *float64 { return r.DebtToAssets }},
	{"debt_to_equity", func(r models.IndicatorRecord) *float64 { return r.DebtToEquity }},
	{"liabilities_to_equity", func(r models.IndicatorRecord) *float64 { return r.LiabilitiesToEquity }},
	{"equity_to_liabilities", func(r models.IndicatorRecord) *float64 { return r.EquityToLiabilities }},
	{"current_ratio", func(r models.IndicatorRecord) *float64 { return r.CurrentRatio }},
	{"quick_ratio", func(r models.IndicatorRecord) *float64 { return r.QuickRatio }},
	{"working_capital_to_assets", func(r models.IndicatorRecord) *float64 { return r.WorkingCapitalToAssets }},
	{"interest_coverage", func(r models.IndicatorRecord) *float64 { return r.InterestCoverage }},
	{"ebitda_to_interest", func(r models.IndicatorRecord) *float64 { return r.EBITDAToInterest }},
	{"debt_to_ebitda", func(r models.IndicatorRecord) *float64 { return r.DebtToEBITDA }},
	{"ocf_to_liabilities", func(r models.IndicatorRecord) *float64 { return r.OCFToLiabilities }},
	{"net_debt_to_equity", func(r models.IndicatorRecord) *float64 { return r.NetDebtToEquity }},
	{"ebit_to_assets", func(r models.IndicatorRecord) *float64 { return r.EBITToAssets }},
	{"ebit_to_debt", func(r models.IndicatorRecord) *float64 { return r.EBITToDebt }},
	{"revenue_growth", func(r models.IndicatorRecord) *float64 { return r.RevenueGrowth }},
	{"net_income_growth", func(r models.IndicatorRecord) *float64 { return r.NetIncomeGrowth }},
	{"asset_turnover", func(r models.IndicatorRecord) *float64 { return r.AssetTurnover }},
	{"receivables_turnover", func(r models.IndicatorRecord) *float64 { return r.ReceivablesTurnover }},
	{"inventory_turnover", func(r models.IndicatorRecord) *float64 { return r.InventoryTurnover }},
}

func amountColumnsFor(kind StatementKind) []amountColumn {
	switch kind {
	case KindIncome:
		return incomeColumns
	case KindBalance:
		return balanceColumns
	case KindCashflow:
		return cashflowColumns
	}
	return nil
}

// WriteCSV writes one table of b as CSV: a header row then one row per fiscal year.
// Amounts carry two decimals, ratios six, and an undefined ratio is an empty cell.
func WriteCSV(w io.Writer, b *models.StatementBundle, kind StatementKind) error {
	cw := csv.NewWriter(w)

	if kind == KindIndicators {
		header := []string{"fiscal_year"}
		for _, c := range indicatorColumns {
			header = append(header, c.name)
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, ind := range b.Indicators {
			row := []string{strconv.Itoa(ind.FiscalYear)}
			for _, c := range indicatorColumns {
				row = append(row, formatRatioCell(c.value(ind)))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}

	cols := amountColumnsFor(kind)
	if cols == nil {
		return fmt.Errorf("unknown statement kind %q", kind)
	}

	header := []string{"fiscal_year"}
	for _, c := range cols {
		header = append(header, c.name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range b.Records {
		row := []string{strconv.Itoa(r.FiscalYear)}
		for _, c := range cols {
			row = append(row, c.value(r).StringFixed(2))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatRatioCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}

// CSVFileName is the file name used for one exported table, e.g. ACME_income_10y.csv.
func CSVFileName(b *models.StatementBundle, kind StatementKind) string {
	return fmt.Sprintf("%s_%s_%dy.csv", b.Ticker, kind, b.Years)
}

// WriteAllCSV writes every statement kind of b into dir, one file per kind.
// The files are written concurrently; the first failure cancels the rest.
// It returns the paths written, in StatementKinds order.
func WriteAllCSV(ctx context.Context, dir string, b *models.StatementBundle) ([]string, error) {
	return WriteCSVFiles(ctx, dir, b, StatementKinds...)
}

// WriteCSVFiles writes the given kinds of b into dir.
func WriteCSVFiles(ctx context.Context, dir string, b *models.StatementBundle, kinds ...StatementKind) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	paths := make([]string, len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		path := filepath.Join(dir, CSVFileName(b, kind))
		paths[i] = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeCSVFile(path, b, kind)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeCSVFile(path string, b *models.StatementBundle, kind StatementKind) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, b, kind); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
