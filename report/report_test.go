package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/equitysim/sim"
	"github.com/rustyeddy/equitysim/stats"
)

func TestDollars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     float64
		places int32
		want   string
	}{
		{0, 0, "$0"},
		{999, 0, "$999"},
		{1000, 0, "$1,000"},
		{1234567.891, 2, "$1,234,567.89"},
		{-500, 2, "-$500.00"},
		{-1500000, 0, "-$1,500,000"},
		{12.345, 2, "$12.35"},
		{-0.004, 2, "$0.00"},
		{999999.5, 0, "$1,000,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Dollars(tt.in, tt.places), "%v", tt.in)
	}
}

func scripted(t *testing.T) sim.Result {
	t.Helper()

	cfg := sim.NewConfig(2000, 0.25, 2, 0.5, 0)
	cfg.MaxTrades = 3
	res, err := sim.Run(cfg, sim.WithSource(sim.NewScript(sim.Win, sim.Loss, sim.Win)))
	require.NoError(t, err)
	return res
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := Metrics(scripted(t).Stats)
	byName := map[string]string{}
	for _, x := range m {
		byName[x.Name] = x.Value
	}

	assert.Len(t, m, 16)
	assert.Equal(t, "Total Net Profit", m[0].Name)
	assert.Equal(t, "$813", byName["Total Net Profit"])
	assert.Equal(t, "2 (66.7%)", byName["Wins"])
	assert.Equal(t, "1 (33.3%)", byName["Losses"])
	assert.Equal(t, "-$750", byName["Average loss"])
	assert.Equal(t, "$3,000", byName["Equity high value"])
	assert.Equal(t, "$750", byName["Maximum Draw Down Dollars"])
	assert.Equal(t, "25.0%", byName["Maximum Draw Down Percent"])
	assert.Equal(t, "2.08", byName["Profit Factor"])
	assert.Equal(t, "33.33333%", byName["Loss rate (Probability of Ruin)"])
}

func TestMetricsNoLosses(t *testing.T) {
	t.Parallel()

	s := stats.Compute([]float64{100, 200}, []float64{0}, []stats.Trade{{Win: true, NetProfit: 100}})
	for _, x := range Metrics(s) {
		if x.Name == "Profit Factor" {
			assert.Equal(t, "n/a", x.Value)
		}
	}
}

func TestPrintResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintResult(&buf, "RUN1", scripted(t))
	out := buf.String()

	assert.Contains(t, out, "Run ID:        RUN1")
	assert.Contains(t, out, "Status:        inconclusive")
	assert.Contains(t, out, "Trade Performance Summary")
	assert.Contains(t, out, "Ending Equity")
	assert.Contains(t, out, "$2,813")
}

func TestPrintTradesLimit(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintTrades(&buf, scripted(t).Trades, 2)
	out := buf.String()

	assert.Contains(t, out, "(showing last 2 of 3 trades)")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// notice, title, rule, header, two rows
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[4], "Loss")
	assert.Contains(t, lines[4], "12.50%")
	assert.Contains(t, lines[5], "$2,812.50")
}

func TestPrintBatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintBatch(&buf, stats.Aggregate([]stats.RunStat{
		{Reached: true, Trades: 10, EndingEquity: 1_500_000},
		{Ruined: true, Trades: 30, EndingEquity: 0, MaxDrawdownPct: 1},
	}))
	out := buf.String()

	assert.Contains(t, out, "Runs:               2")
	assert.Contains(t, out, "Ruined:             1 (50.00%)")
	assert.Contains(t, out, "Mean:               $750,000")
	assert.Contains(t, out, "Worst drawdown:     100.0%")
}
