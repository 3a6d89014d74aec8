package models

import "github.com/shopspring/decimal"

// LinkageReport is the result of cross-statement validation over a bundle.
type LinkageReport struct {
	Ticker       string          `json:"ticker"`
	Years        int             `json:"years"`
	Tolerance    decimal.Decimal `json:"tolerance"`
	Checks       []YearLinkage   `json:"checks"`
	AllPassed    bool            `json:"all_passed"`
	FailedChecks []string        `json:"failed_checks,omitempty"`
}

// YearLinkage holds the per-year differences that the checks compare against the tolerance.
type YearLinkage struct {
	FiscalYear         int             `json:"fiscal_year"`
	BalanceDifference  decimal.Decimal `json:"balance_difference"`   // assets - (liabilities + equity)
	CashFlowDifference decimal.Decimal `json:"cash_flow_difference"` // (ocf + icf + fcf) - net change
	CashDifference     decimal.Decimal `json:"cash_difference"`      // net change - (cash - prior cash)
	IncomeDifference   decimal.Decimal `json:"income_difference"`    // net income rebuilt from its parts
	Passed             bool            `json:"passed"`
}
