package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_GeneratedBundlesPass(t *testing.T) {
	for _, ticker := range sampleTickers {
		b, err := Generate(DefaultLimits(), ticker, DefaultMaxYears)
		require.NoError(t, err)

		report := Validate(b, DefaultTolerance)
		assert.True(t, report.AllPassed, "%s failed: %v", ticker, report.FailedChecks)
		assert.Len(t, report.Checks, DefaultMaxYears)
		for _, c := range report.Checks {
			assert.True(t, c.Passed)
			assert.True(t, c.BalanceDifference.IsZero())
		}
	}
}

func TestValidate_DetectsTampering(t *testing.T) {
	b, err := Generate(DefaultLimits(), "ACME", 3)
	require.NoError(t, err)

	b.Records[1].Equity = b.Records[1].Equity.Add(dec("1"))
	b.Records[2].FinancingCashFlow = b.Records[2].FinancingCashFlow.Sub(dec("0.01"))

	report := Validate(b, DefaultTolerance)
	assert.False(t, report.AllPassed)
	assert.Contains(t, report.FailedChecks, "2023: balance_identity")
	assert.Contains(t, report.FailedChecks, "2024: cash_flow_sum")
	assert.False(t, report.Checks[1].Passed)
	assert.True(t, report.Checks[0].Passed)
}

func TestValidate_DetectsGapsAndLength(t *testing.T) {
	b, err := Generate(DefaultLimits(), "ACME", 4)
	require.NoError(t, err)

	b.Records[3].FiscalYear = 2030
	b.Indicators = b.Indicators[:2]

	report := Validate(b, DefaultTolerance)
	assert.False(t, report.AllPassed)
	assert.Contains(t, report.FailedChecks, "2030: contiguous_years")
	assert.Contains(t, report.FailedChecks, "indicator_count: got 2, want 4")
}
