package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/synthfin/internal/models"
)

// setup points the CLI at a temp config and captures its output.
func setup(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "synthfin.toml")
	content := `
[generator]
default_years = 4
max_years = 12

[logging]
level = "error"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	prevConfig, prevOut, prevErr := *configPath, stdout, stderr
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	*configPath, stdout, stderr = path, out, errOut
	t.Cleanup(func() { *configPath, stdout, stderr = prevConfig, prevOut, prevErr })
	return out, errOut
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs)
}

func TestShow_RawMarkdown(t *testing.T) {
	out, _ := setup(t)

	status := run(t, &showCmd{}, "-ticker", "acme", "-years", "3", "-raw")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "# Financial Statements: ACME")
	assert.Contains(t, out.String(), "| Line Item | 2022 | 2023 | 2024 |")
}

func TestShow_JSONUsesConfiguredDefaultYears(t *testing.T) {
	out, _ := setup(t)

	status := run(t, &showCmd{}, "-ticker", "ACME", "-json")
	require.Equal(t, subcommands.ExitSuccess, status)

	var b models.StatementBundle
	require.NoError(t, json.Unmarshal(out.Bytes(), &b))
	assert.Equal(t, 4, b.Years)
	assert.Len(t, b.Records, 4)
	assert.Equal(t, 2021, b.Records[0].FiscalYear)
}

func TestShow_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing ticker", nil},
		{"bad ticker", []string{"-ticker", "!!"}},
		{"zero years", []string{"-ticker", "ACME", "-years", "0"}},
		{"above max years", []string{"-ticker", "ACME", "-years", "13"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut := setup(t)
			status := run(t, &showCmd{}, tt.args...)
			assert.Equal(t, subcommands.ExitUsageError, status)
			assert.Contains(t, errOut.String(), "Error:")
		})
	}
}

func TestExport_AllKinds(t *testing.T) {
	out, _ := setup(t)
	dir := t.TempDir()

	status := run(t, &exportCmd{}, "-ticker", "ACME", "-years", "3", "-dir", dir)
	require.Equal(t, subcommands.ExitSuccess, status)

	for _, name := range []string{"ACME_income_3y.csv", "ACME_balance_3y.csv", "ACME_cashflow_3y.csv", "ACME_indicators_3y.csv"} {
		assert.FileExists(t, filepath.Join(dir, name))
		assert.Contains(t, out.String(), name)
	}
}

func TestExport_SingleKind(t *testing.T) {
	setup(t)
	dir := t.TempDir()

	status := run(t, &exportCmd{}, "-ticker", "ACME", "-years", "2", "-dir", dir, "-kind", "Balance")
	require.Equal(t, subcommands.ExitSuccess, status)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ACME_balance_2y.csv", entries[0].Name())
}

func TestExport_UnknownKind(t *testing.T) {
	setup(t)
	status := run(t, &exportCmd{}, "-ticker", "ACME", "-dir", t.TempDir(), "-kind", "equity")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestChart_WritesPNG(t *testing.T) {
	setup(t)
	out := filepath.Join(t.TempDir(), "acme.png")

	status := run(t, &chartCmd{}, "-ticker", "ACME", "-years", "5", "-kind", "margins", "-o", out)
	require.Equal(t, subcommands.ExitSuccess, status)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestChart_SingleYearFails(t *testing.T) {
	_, errOut := setup(t)
	out := filepath.Join(t.TempDir(), "acme.png")

	status := run(t, &chartCmd{}, "-ticker", "ACME", "-years", "1", "-o", out)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut.String(), "insufficient data")
	assert.NoFileExists(t, out)
}

func TestChart_UnknownKind(t *testing.T) {
	setup(t)
	status := run(t, &chartCmd{}, "-ticker", "ACME", "-kind", "pie")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestValidate_Passes(t *testing.T) {
	out, _ := setup(t)

	status := run(t, &validateCmd{}, "-ticker", "ACME", "-years", "6")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "FY2024  ok")
	assert.NotContains(t, out.String(), "FAIL")
}

func TestGlossary_DefinitionsOnly(t *testing.T) {
	out, _ := setup(t)

	status := run(t, &glossaryCmd{}, "-raw")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "# Glossary\n")
	assert.Contains(t, out.String(), "**Gross Profit** (`gross_profit`)")
	assert.NotContains(t, out.String(), "Latest:")
}

func TestGlossary_WithTicker(t *testing.T) {
	out, _ := setup(t)

	status := run(t, &glossaryCmd{}, "-ticker", "ACME", "-years", "3", "-raw")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "# Glossary: ACME FY2024")
	assert.Contains(t, out.String(), "Latest:")
}

func TestVersion(t *testing.T) {
	out, _ := setup(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &versionCmd{}))
	assert.Contains(t, out.String(), "build:")
}

func TestRegister(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("synthfin", flag.ContinueOnError), "synthfin")
	register(c)

	var names []string
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		names = append(names, cmd.Name())
	})
	for _, want := range []string{"show", "export", "chart", "validate", "glossary", "version"} {
		assert.Contains(t, names, want)
	}
}
