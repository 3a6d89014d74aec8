package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/bobmcallan/synthfin/internal/app"
	"github.com/bobmcallan/synthfin/internal/common"
	"github.com/bobmcallan/synthfin/internal/interfaces"
)

var configPath = flag.String("config", "", "Path to synthfin.toml (defaults to SYNTHFIN_CONFIG, then the binary dir, then config/synthfin.toml)")
var logLevel = flag.String("log-level", "warn", "Log level for diagnostics on stderr")

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// loadService builds the statement service from the resolved config.
func loadService() (interfaces.StatementService, error) {
	config, err := common.LoadConfig(app.ResolveConfigPath(*configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	// A one-shot command never repeats a request
	config.Cache.Capacity = 0
	a := app.NewAppWithConfig(config, common.NewLogger(*logLevel))
	return a.StatementService, nil
}

// resolveYears returns the -years flag when it was given and the configured default otherwise.
func resolveYears(f *flag.FlagSet, years int, svc interfaces.StatementService) int {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "years" {
			set = true
		}
	})
	if set {
		return years
	}
	return svc.Limits().DefaultYears
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}
