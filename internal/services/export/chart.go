package export

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/synthfin/internal/models"
)

// ChartKind selects which series RenderChart draws.
type ChartKind string

const (
	ChartRevenue ChartKind = "revenue" // revenue and net income
	ChartMargins ChartKind = "margins" // gross, EBIT and net margin
)

// ErrInsufficientData is returned when a bundle has too few years to draw a line.
var ErrInsufficientData = errors.New("insufficient data")

// ParseChartKind accepts a chart name case-insensitively.
func ParseChartKind(s string) (ChartKind, error) {
	switch k := ChartKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ChartRevenue, ChartMargins:
		return k, nil
	}
	return "", fmt.Errorf("unknown chart kind %q (want revenue or margins)", s)
}

// RenderChart renders a PNG line chart of b and returns the raw bytes.
func RenderChart(b *models.StatementBundle, kind ChartKind) ([]byte, error) {
	if len(b.Records) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 fiscal years, got %d", ErrInsufficientData, len(b.Records))
	}

	xValues := make([]float64, len(b.Records))
	ticks := make([]chart.Tick, len(b.Records))
	for i, r := range b.Records {
		xValues[i] = float64(r.FiscalYear)
		ticks[i] = chart.Tick{Value: xValues[i], Label: strconv.Itoa(r.FiscalYear)}
	}

	var (
		title  string
		series []chart.Series
		yFmt   chart.ValueFormatter
	)

	switch kind {
	case ChartRevenue:
		title = fmt.Sprintf("%s Revenue and Net Income (%s)", b.Ticker, b.Currency)
		revenue := make([]float64, len(b.Records))
		netIncome := make([]float64, len(b.Records))
		for i, r := range b.Records {
			revenue[i] = r.Revenue.InexactFloat64()
			netIncome[i] = r.NetIncome.InexactFloat64()
		}
		series = []chart.Series{
			chart.ContinuousSeries{
				Name: "Revenue",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
					StrokeWidth: 2.5,
				},
				XValues: xValues,
				YValues: revenue,
			},
			chart.ContinuousSeries{
				Name: "Net Income",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("16a34a"), // green-600
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: netIncome,
			},
		}
		yFmt = func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%.0fM", f/1e6)
			}
			return ""
		}

	case ChartMargins:
		title = fmt.Sprintf("%s Margins", b.Ticker)
		series = []chart.Series{
			marginSeries("Gross Margin", "2563eb", nil, xValues, b.Indicators, func(r models.IndicatorRecord) *float64 { return r.GrossMargin }),
			marginSeries("EBIT Margin", "f59e0b", nil, xValues, b.Indicators, func(r models.IndicatorRecord) *float64 { return r.EBITMargin }),
			marginSeries("Net Margin", "16a34a", []float64{5.0, 3.0}, xValues, b.Indicators, func(r models.IndicatorRecord) *float64 { return r.NetMargin }),
		}
		yFmt = func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%.0f%%", f*100)
			}
			return ""
		}

	default:
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			ValueFormatter: yFmt,
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// marginSeries plots an undefined margin as zero so the line stays continuous.
func marginSeries(name, hex string, dash []float64, xValues []float64, inds []models.IndicatorRecord, pick func(models.IndicatorRecord) *float64) chart.ContinuousSeries {
	ys := make([]float64, len(inds))
	for i, ind := range inds {
		if v := pick(ind); v != nil {
			ys[i] = *v
		}
	}
	return chart.ContinuousSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex(hex),
			StrokeWidth:     2,
			StrokeDashArray: dash,
		},
		XValues: xValues,
		YValues: ys,
	}
}
