package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/bobmcallan/synthfin/internal/services/export"
)

type showCmd struct {
	ticker string
	years  int
	raw    bool
	asJSON bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "Print the statements of a ticker as tables" }
func (*showCmd) Usage() string {
	return `synthfin show -ticker <ticker> [-years <n>] [-raw | -json]

Prints the income statement, balance sheet, cashflow statement and indicators
for the last n fiscal years. -raw prints the markdown source; -json prints the
bundle as the REST service returns it.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol (required)")
	f.IntVar(&c.years, "years", 0, "Number of fiscal years (defaults to the configured default)")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal styling")
	f.BoolVar(&c.asJSON, "json", false, "Print the bundle as JSON")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(stderr, "Error: -ticker is required")
		return subcommands.ExitUsageError
	}
	svc, err := loadService()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	b, err := svc.GetStatements(ctx, c.ticker, resolveYears(f, c.years, svc))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitStatusFor(err)
	}

	if c.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(export.RenderMarkdown(b), c.raw)
	return subcommands.ExitSuccess
}

type exportCmd struct {
	ticker string
	years  int
	dir    string
	kind   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "Write the statements of a ticker as CSV files" }
func (*exportCmd) Usage() string {
	return `synthfin export -ticker <ticker> [-years <n>] [-dir <dir>] [-kind <kind>]

Writes one CSV per statement kind into dir, named TICKER_kind_Ny.csv.
kind is one of income, balance, cashflow, indicators; all four are written
when it is omitted.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol (required)")
	f.IntVar(&c.years, "years", 0, "Number of fiscal years (defaults to the configured default)")
	f.StringVar(&c.dir, "dir", ".", "Output directory")
	f.StringVar(&c.kind, "kind", "", "Statement kind to export (default all)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(stderr, "Error: -ticker is required")
		return subcommands.ExitUsageError
	}
	kinds := export.StatementKinds
	if c.kind != "" {
		kind, err := export.ParseStatementKind(c.kind)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		kinds = []export.StatementKind{kind}
	}

	svc, err := loadService()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	b, err := svc.GetStatements(ctx, c.ticker, resolveYears(f, c.years, svc))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitStatusFor(err)
	}

	paths, err := export.WriteCSVFiles(ctx, c.dir, b, kinds...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, p := range paths {
		fmt.Fprintln(stdout, p)
	}
	return subcommands.ExitSuccess
}

type chartCmd struct {
	ticker string
	years  int
	kind   string
	out    string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "Render a PNG chart of a ticker's statements" }
func (*chartCmd) Usage() string {
	return `synthfin chart -ticker <ticker> [-years <n>] [-kind revenue|margins] [-o <file.png>]

revenue plots revenue and net income; margins plots gross, EBIT and net margin.
At least two fiscal years are needed.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol (required)")
	f.IntVar(&c.years, "years", 0, "Number of fiscal years (defaults to the configured default)")
	f.StringVar(&c.kind, "kind", string(export.ChartRevenue), "Chart kind: revenue or margins")
	f.StringVar(&c.out, "o", "", "Output file (default TICKER_kind.png)")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(stderr, "Error: -ticker is required")
		return subcommands.ExitUsageError
	}
	kind, err := export.ParseChartKind(c.kind)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	svc, err := loadService()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	b, err := svc.GetStatements(ctx, c.ticker, resolveYears(f, c.years, svc))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitStatusFor(err)
	}

	png, err := export.RenderChart(b, kind)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	out := c.out
	if out == "" {
		out = fmt.Sprintf("%s_%s.png", b.Ticker, kind)
	}
	if err := os.WriteFile(out, png, 0644); err != nil {
		fmt.Fprintf(stderr, "Error: failed to write %s: %v\n", out, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, out)
	return subcommands.ExitSuccess
}

type validateCmd struct {
	ticker string
	years  int
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "Check that a ticker's statements link up" }
func (*validateCmd) Usage() string {
	return `synthfin validate -ticker <ticker> [-years <n>]

Runs the balance sheet identity and cashflow reconciliation checks for every
year and exits non-zero when any check fails.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol (required)")
	f.IntVar(&c.years, "years", 0, "Number of fiscal years (defaults to the configured default)")
}

func (c *validateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(stderr, "Error: -ticker is required")
		return subcommands.ExitUsageError
	}
	svc, err := loadService()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := svc.ValidateStatements(ctx, c.ticker, resolveYears(f, c.years, svc))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitStatusFor(err)
	}

	for _, check := range report.Checks {
		status := "ok"
		if !check.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(stdout, "FY%d  %-4s  balance %s  cashflow %s  cash %s  income %s\n",
			check.FiscalYear, status,
			check.BalanceDifference.StringFixed(2), check.CashFlowDifference.StringFixed(2),
			check.CashDifference.StringFixed(2), check.IncomeDifference.StringFixed(2))
	}
	if !report.AllPassed {
		fmt.Fprintf(stderr, "Failed checks: %s\n", strings.Join(report.FailedChecks, ", "))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
