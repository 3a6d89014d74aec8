package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/synthfin/internal/models"
)

// undefinedMarker is shown for ratios that have no value.
const undefinedMarker = "-"

// percentCutoff separates ratios shown as percentages from those shown as multiples.
const percentCutoff = 1.5

// FormatAmount formats a decimal amount in the given ISO currency, e.g. $1,234.56.
func FormatAmount(d decimal.Decimal, currency string) string {
	// money.New always yields a usable currency, even for unknown codes
	cur := money.New(0, currency).Currency()
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatRatio formats a ratio as a percentage when |v| <= 1.5 and as a multiple otherwise.
func FormatRatio(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return undefinedMarker
	}
	if math.Abs(*v) <= percentCutoff {
		return strconv.FormatFloat(*v*100, 'f', 2, 64) + "%"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64) + "x"
}

// RenderMarkdown builds a markdown report of b: summary, the three statements and the indicators.
func RenderMarkdown(b *models.StatementBundle) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Financial Statements: %s\n\n", b.Ticker))
	sb.WriteString(fmt.Sprintf("**Fiscal Years:** %d-%d (%d)\n", b.Summary.FirstYear, b.Summary.LastYear, b.Years))
	sb.WriteString(fmt.Sprintf("**Currency:** %s\n", b.Currency))
	sb.WriteString(fmt.Sprintf("**Revenue CAGR:** %s\n", FormatRatio(b.Summary.RevenueCAGR)))
	sb.WriteString(fmt.Sprintf("**Consecutive Losses:** %d\n", b.Summary.ConsecutiveLosses))
	if b.Summary.DefaultFlag {
		sb.WriteString("**Default Flag:** YES (three or more consecutive net losses)\n\n")
	} else {
		sb.WriteString("**Default Flag:** no\n\n")
	}

	writeAmountTable(&sb, "Income Statement", b, []labelledAmount{
		{"Revenue", incomeColumns[0].value},
		{"COGS", incomeColumns[1].value},
		{"Gross Profit", incomeColumns[2].value},
		{"Operating Expenses", incomeColumns[3].value},
		{"Depreciation", incomeColumns[4].value},
		{"EBIT", incomeColumns[5].value},
		{"Interest Expense", incomeColumns[6].value},
		{"Income Tax", incomeColumns[7].value},
		{"Net Income", incomeColumns[8].value},
	})

	writeAmountTable(&sb, "Balance Sheet", b, []labelledAmount{
		{"Cash", balanceColumns[0].value},
		{"Receivables", balanceColumns[1].value},
		{"Inventory", balanceColumns[2].value},
		{"Current Assets", balanceColumns[3].value},
		{"Total Assets", balanceColumns[4].value},
		{"Current Liabilities", balanceColumns[5].value},
		{"Total Debt", balanceColumns[6].value},
		{"Total Liabilities", balanceColumns[7].value},
		{"Equity", balanceColumns[8].value},
	})

	writeAmountTable(&sb, "Cash Flow Statement", b, []labelledAmount{
		{"Operating Cash Flow", cashflowColumns[0].value},
		{"Investing Cash Flow", cashflowColumns[1].value},
		{"Financing Cash Flow", cashflowColumns[2].value},
		{"Net Change in Cash", cashflowColumns[3].value},
		{"Capital Expenditure", cashflowColumns[4].value},
		{"Dividends Paid", cashflowColumns[5].value},
	})

	// Indicators
	sb.WriteString("## Indicators\n\n")
	writeYearHeader(&sb, "Indicator", b.FiscalYears())
	for _, c := range indicatorColumns {
		sb.WriteString("| " + indicatorLabel(c.name) + " |")
		for _, ind := range b.Indicators {
			sb.WriteString(" " + FormatRatio(c.value(ind)) + " |")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

type labelledAmount struct {
	label string
	value func(r models.FinancialRecord) decimal.Decimal
}

func writeAmountTable(sb *strings.Builder, title string, b *models.StatementBundle, rows []labelledAmount) {
	sb.WriteString("## " + title + "\n\n")
	writeYearHeader(sb, "Line Item", b.FiscalYears())
	for _, row := range rows {
		sb.WriteString("| " + row.label + " |")
		for _, r := range b.Records {
			sb.WriteString(" " + FormatAmount(row.value(r), b.Currency) + " |")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeYearHeader(sb *strings.Builder, first string, years []int) {
	sb.WriteString("| " + first + " |")
	for _, y := range years {
		sb.WriteString(" " + strconv.Itoa(y) + " |")
	}
	sb.WriteString("\n|" + strings.Repeat("---|", len(years)+1) + "\n")
}

var indicatorLabels = map[string]string{
	"gross_margin":              "Gross Margin",
	"ebit_margin":               "EBIT Margin",
	"net_margin":                "Net Margin",
	"roa":                       "ROA",
	"roe":                       "ROE",
	"leverage":                  "Leverage",
	"debt_to_assets":            "Debt to Assets",
	"debt_to_equity":            "Debt to Equity",
	"liabilities_to_equity":     "Liabilities to Equity",
	"equity_to_liabilities":     "Equity to Liabilities",
	"current_ratio":             "Current Ratio",
	"quick_ratio":               "Quick Ratio",
	"working_capital_to_assets": "Working Capital to Assets",
	"interest_coverage":         "Interest Coverage",
	"ebitda_to_interest":        "EBITDA to Interest",
	"debt_to_ebitda":            "Debt to EBITDA",
	"ocf_to_liabilities":        "OCF to Liabilities",
	"net_debt_to_equity":        "Net Debt to Equity",
	"ebit_to_assets":            "EBIT to Assets",
	"ebit_to_debt":              "Operating Income to Debt",
	"revenue_growth":            "Revenue Growth",
	"net_income_growth":         "Net Income Growth",
	"asset_turnover":            "Asset Turnover",
	"receivables_turnover":      "Receivables Turnover",
	"inventory_turnover":        "Inventory Turnover",
}

func indicatorLabel(name string) string {
	if l, ok := indicatorLabels[name]; ok {
		return l
	}
	return name
}
