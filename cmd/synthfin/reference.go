package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/bobmcallan/synthfin/internal/common"
	"github.com/bobmcallan/synthfin/internal/models"
	"github.com/bobmcallan/synthfin/internal/services/generator"
	"github.com/bobmcallan/synthfin/internal/services/glossary"
)

// exitStatusFor maps caller mistakes to a usage error and everything else to a failure.
func exitStatusFor(err error) subcommands.ExitStatus {
	if errors.Is(err, generator.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

type glossaryCmd struct {
	ticker string
	years  int
	raw    bool
}

func (*glossaryCmd) Name() string     { return "glossary" }
func (*glossaryCmd) Synopsis() string { return "Explain every statement line and indicator" }
func (*glossaryCmd) Usage() string {
	return `synthfin glossary [-ticker <ticker> [-years <n>]] [-raw]

Without a ticker prints the definitions and formulas only. With a ticker the
latest fiscal year's values are shown next to each term.
`
}

func (c *glossaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker whose latest values are shown")
	f.IntVar(&c.years, "years", 0, "Number of fiscal years (defaults to the configured default)")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal styling")
}

func (c *glossaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var bundle *models.StatementBundle
	if c.ticker != "" {
		svc, err := loadService()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		bundle, err = svc.GetStatements(ctx, c.ticker, resolveYears(f, c.years, svc))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitStatusFor(err)
		}
	}

	printMarkdown(renderGlossary(glossary.Build(bundle)), c.raw)
	return subcommands.ExitSuccess
}

func renderGlossary(g *models.GlossaryResponse) string {
	var sb strings.Builder
	if g.Ticker != "" {
		fmt.Fprintf(&sb, "# Glossary: %s FY%d\n\n", g.Ticker, g.FiscalYear)
	} else {
		sb.WriteString("# Glossary\n\n")
	}
	for _, cat := range g.Categories {
		fmt.Fprintf(&sb, "## %s\n\n", cat.Name)
		for _, t := range cat.Terms {
			fmt.Fprintf(&sb, "- **%s** (`%s`): %s", t.Label, t.Term, t.Definition)
			if t.Formula != "" {
				fmt.Fprintf(&sb, " Formula: `%s`.", t.Formula)
			}
			if t.Example != "" {
				fmt.Fprintf(&sb, " Latest: %s.", t.Example)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

type versionCmd struct{}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "Print the synthfin version" }
func (*versionCmd) Usage() string            { return "synthfin version\n" }
func (*versionCmd) SetFlags(_ *flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	common.LoadVersionFromFile()
	fmt.Fprintln(stdout, common.GetFullVersion())
	return subcommands.ExitSuccess
}
