package generator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/synthfin/internal/models"
)

// DeriveIndicators computes one IndicatorRecord per record.
// Same-year ratios read only their own record. The growth and turnover ratios
// read only the immediately preceding record and stay nil for the first one.
func DeriveIndicators(records []models.FinancialRecord) []models.IndicatorRecord {
	out := make([]models.IndicatorRecord, len(records))
	for i, rec := range records {
		var prev *models.FinancialRecord
		if i > 0 {
			prev = &records[i-1]
		}
		out[i] = indicatorsFor(rec, prev)
	}
	return out
}

func indicatorsFor(r models.FinancialRecord, prev *models.FinancialRecord) models.IndicatorRecord {
	ebitda := r.EBIT.Add(r.Depreciation)
	workingCapital := r.CurrentAssets.Sub(r.CurrentLiabilities)

	ind := models.IndicatorRecord{
		FiscalYear:             r.FiscalYear,
		GrossMargin:            ratio(r.GrossProfit, r.Revenue),
		EBITMargin:             ratio(r.EBIT, r.Revenue),
		NetMargin:              ratio(r.NetIncome, r.Revenue),
		ROA:                    ratio(r.NetIncome, r.TotalAssets),
		ROE:                    ratio(r.NetIncome, r.Equity),
		Leverage:               ratio(r.TotalAssets, r.Equity),
		DebtToAssets:           ratio(r.TotalDebt, r.TotalAssets),
		DebtToEquity:           ratio(r.TotalDebt, r.Equity),
		LiabilitiesToEquity:    ratio(r.TotalLiabilities, r.Equity),
		EquityToLiabilities:    ratio(r.Equity, r.TotalLiabilities),
		CurrentRatio:           ratio(r.CurrentAssets, r.CurrentLiabilities),
		QuickRatio:             ratio(r.CurrentAssets.Sub(r.Inventory), r.CurrentLiabilities),
		WorkingCapitalToAssets: ratio(workingCapital, r.TotalAssets),
		InterestCoverage:       ratio(r.EBIT, r.InterestExpense),
		EBITDAToInterest:       ratio(ebitda, r.InterestExpense),
		DebtToEBITDA:           ratio(r.TotalDebt, ebitda),
		OCFToLiabilities:       ratio(r.OperatingCashFlow, r.TotalLiabilities),
		NetDebtToEquity:        ratio(r.TotalDebt.Sub(r.Cash), r.Equity),
		EBITToAssets:           ratio(r.EBIT, r.TotalAssets),
		EBITToDebt:             ratio(r.EBIT, r.TotalDebt),
	}

	if prev != nil {
		ind.RevenueGrowth = growth(r.Revenue, prev.Revenue)
		ind.NetIncomeGrowth = growth(r.NetIncome, prev.NetIncome)
		ind.AssetTurnover = ratio(r.Revenue, average(r.TotalAssets, prev.TotalAssets))
		ind.ReceivablesTurnover = ratio(r.Revenue, average(r.Receivables, prev.Receivables))
		ind.InventoryTurnover = ratio(r.COGS, average(r.Inventory, prev.Inventory))
	}
	return ind
}

// ratio divides num by den, nil when the result is undefined.
func ratio(num, den decimal.Decimal) *float64 {
	if den.IsZero() {
		return nil
	}
	return finite(num.InexactFloat64() / den.InexactFloat64())
}

func average(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Div(decimal.NewFromInt(2))
}

// growth is the change over the prior value relative to its magnitude,
// so a shrinking loss reads as positive growth.
func growth(cur, prev decimal.Decimal) *float64 {
	if prev.IsZero() {
		return nil
	}
	return finite(cur.Sub(prev).InexactFloat64() / prev.Abs().InexactFloat64())
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
