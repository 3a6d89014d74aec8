package generator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/synthfin/internal/models"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func sampleRecord(year int) models.FinancialRecord {
	return models.FinancialRecord{
		FiscalYear:         year,
		Revenue:            dec("1000"),
		COGS:               dec("600"),
		GrossProfit:        dec("400"),
		OperatingExpenses:  dec("150"),
		Depreciation:       dec("50"),
		EBIT:               dec("200"),
		InterestExpense:    dec("20"),
		IncomeTax:          dec("45"),
		NetIncome:          dec("135"),
		Cash:               dec("100"),
		Receivables:        dec("150"),
		Inventory:          dec("50"),
		CurrentAssets:      dec("300"),
		TotalAssets:        dec("1200"),
		CurrentLiabilities: dec("200"),
		TotalDebt:          dec("400"),
		TotalLiabilities:   dec("700"),
		Equity:             dec("500"),
		OperatingCashFlow:  dec("175"),
	}
}

func TestDeriveIndicators_SameYearRatios(t *testing.T) {
	ind := DeriveIndicators([]models.FinancialRecord{sampleRecord(2024)})
	require.Len(t, ind, 1)
	i := ind[0]

	assert.Equal(t, 2024, i.FiscalYear)
	assert.InDelta(t, 0.40, *i.GrossMargin, 1e-12)
	assert.InDelta(t, 0.20, *i.EBITMargin, 1e-12)
	assert.InDelta(t, 0.135, *i.NetMargin, 1e-12)
	assert.InDelta(t, 135.0/1200, *i.ROA, 1e-12)
	assert.InDelta(t, 0.27, *i.ROE, 1e-12)
	assert.InDelta(t, 2.4, *i.Leverage, 1e-12)
	assert.InDelta(t, 400.0/1200, *i.DebtToAssets, 1e-12)
	assert.InDelta(t, 0.8, *i.DebtToEquity, 1e-12)
	assert.InDelta(t, 1.4, *i.LiabilitiesToEquity, 1e-12)
	assert.InDelta(t, 500.0/700, *i.EquityToLiabilities, 1e-12)
	assert.InDelta(t, 1.5, *i.CurrentRatio, 1e-12)
	assert.InDelta(t, 1.25, *i.QuickRatio, 1e-12)
	assert.InDelta(t, 100.0/1200, *i.WorkingCapitalToAssets, 1e-12)
	assert.InDelta(t, 10.0, *i.InterestCoverage, 1e-12)
	assert.InDelta(t, 12.5, *i.EBITDAToInterest, 1e-12)
	assert.InDelta(t, 1.6, *i.DebtToEBITDA, 1e-12)
	assert.InDelta(t, 0.25, *i.OCFToLiabilities, 1e-12)
	assert.InDelta(t, 0.6, *i.NetDebtToEquity, 1e-12)
	assert.InDelta(t, 200.0/1200, *i.EBITToAssets, 1e-12)
	assert.InDelta(t, 0.5, *i.EBITToDebt, 1e-12)

	assert.Nil(t, i.RevenueGrowth)
	assert.Nil(t, i.NetIncomeGrowth)
	assert.Nil(t, i.AssetTurnover)
	assert.Nil(t, i.ReceivablesTurnover)
	assert.Nil(t, i.InventoryTurnover)
}

func TestDeriveIndicators_PriorYearRatios(t *testing.T) {
	prev := sampleRecord(2023)
	cur := sampleRecord(2024)
	cur.Revenue = dec("1100")
	cur.NetIncome = dec("-27")
	cur.TotalAssets = dec("1000")
	cur.COGS = dec("700")
	cur.Receivables = dec("250")
	cur.Inventory = dec("90")

	ind := DeriveIndicators([]models.FinancialRecord{prev, cur})
	require.Len(t, ind, 2)

	assert.Nil(t, ind[0].RevenueGrowth)
	assert.InDelta(t, 0.10, *ind[1].RevenueGrowth, 1e-12)
	assert.InDelta(t, -1.2, *ind[1].NetIncomeGrowth, 1e-12)
	assert.InDelta(t, 1.0, *ind[1].AssetTurnover, 1e-12)
	assert.InDelta(t, 1100.0/200, *ind[1].ReceivablesTurnover, 1e-12)
	assert.InDelta(t, 10.0, *ind[1].InventoryTurnover, 1e-12)

	assert.Nil(t, ind[0].ReceivablesTurnover)
	assert.Nil(t, ind[0].InventoryTurnover)
}

func TestDeriveIndicators_TurnoverZeroAverageIsNil(t *testing.T) {
	prev, cur := sampleRecord(2023), sampleRecord(2024)
	prev.Inventory = decimal.Zero
	cur.Inventory = decimal.Zero

	ind := DeriveIndicators([]models.FinancialRecord{prev, cur})
	assert.Nil(t, ind[1].InventoryTurnover)
	assert.NotNil(t, ind[1].ReceivablesTurnover)
}

func TestDeriveIndicators_ZeroDenominatorsAreNil(t *testing.T) {
	r := sampleRecord(2024)
	r.Revenue = decimal.Zero
	r.InterestExpense = decimal.Zero
	r.CurrentLiabilities = decimal.Zero

	i := DeriveIndicators([]models.FinancialRecord{r})[0]
	assert.Nil(t, i.GrossMargin)
	assert.Nil(t, i.NetMargin)
	assert.Nil(t, i.InterestCoverage)
	assert.Nil(t, i.CurrentRatio)
	assert.NotNil(t, i.ROA)
}

func TestSummarize_DefaultFlag(t *testing.T) {
	var records []models.FinancialRecord
	for i, ni := range []string{"10", "-1", "-2", "5", "-3", "-4", "-5", "2"} {
		r := sampleRecord(2017 + i)
		r.NetIncome = dec(ni)
		records = append(records, r)
	}

	s := Summarize(records)
	assert.Equal(t, 2017, s.FirstYear)
	assert.Equal(t, 2024, s.LastYear)
	assert.Equal(t, 3, s.ConsecutiveLosses)
	assert.True(t, s.DefaultFlag)

	s = Summarize(records[:4])
	assert.Equal(t, 2, s.ConsecutiveLosses)
	assert.False(t, s.DefaultFlag)
}

func TestSummarize_RevenueCAGR(t *testing.T) {
	a, b, c := sampleRecord(2022), sampleRecord(2023), sampleRecord(2024)
	a.Revenue = dec("100")
	c.Revenue = dec("121")

	s := Summarize([]models.FinancialRecord{a, b, c})
	require.NotNil(t, s.RevenueCAGR)
	assert.InDelta(t, 0.10, *s.RevenueCAGR, 1e-9)
}

func TestCAGR_Undefined(t *testing.T) {
	assert.Nil(t, CAGR(0, 100, 3))
	assert.Nil(t, CAGR(100, 120, 0))
	assert.Nil(t, CAGR(100, -5, 2))
	assert.InDelta(t, 0.0, *CAGR(100, 100, 4), 1e-12)
}
