package models

// Generator bounds shared by configuration and the generator.
const (
	// HardMaxYears caps every configured MaxYears. The walk always runs this
	// many years so that a fiscal year's figures never depend on the horizon.
	HardMaxYears = 50

	DefaultYears          = 10
	DefaultMaxYears       = 30
	DefaultLastFiscalYear = 2024
	DefaultCurrency       = "USD"

	// The whole walk ends at LastFiscalYear and must start after 1900.
	MinLastFiscalYear = 1900 + HardMaxYears
	MaxLastFiscalYear = 9999
)
