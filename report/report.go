// Package report renders simulation results as plain text.
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/rustyeddy/equitysim/sim"
	"github.com/rustyeddy/equitysim/stats"
)

const rule = "--------------------------------------------------"

// Metric is one named line of the summary table.
type Metric struct {
	Name  string
	Value string
}

var printer = message.NewPrinter(language.English)

// Dollars formats x with a $ sign, thousands separators and the given
// number of decimal places. Halves round away from zero.
func Dollars(x float64, places int32) string {
	d := decimal.NewFromFloat(x).Round(places)
	out := "$" + printer.Sprint(number.Decimal(d.Abs().InexactFloat64(), number.Scale(int(places))))
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

func pct(x float64, places int) string {
	return fmt.Sprintf("%.*f%%", places, x*100)
}

// Metrics lists the summary in display order. Names follow the classic
// trade performance summary; the win-rate complement keeps its legacy
// label in parentheses.
func Metrics(s stats.Summary) []Metric {
	pf := "n/a"
	if s.ProfitFactor.IsSome() {
		pf = fmt.Sprintf("%.2f", s.ProfitFactor.Unwrap())
	}

	return []Metric{
		{"Total Net Profit", Dollars(s.TotalNetProfit, 0)},
		{"Wins", fmt.Sprintf("%d (%s)", s.Wins, pct(s.WinRate, 1))},
		{"Losses", fmt.Sprintf("%d (%s)", s.Losses, pct(s.LossRate, 1))},
		{"Average profit", Dollars(s.AvgWin, 0)},
		{"Average loss", Dollars(s.AvgLoss, 0)},
		{"Expectancy", Dollars(s.Expectancy, 2)},
		{"Max consecutive wins", fmt.Sprint(s.MaxConsecutiveWins)},
		{"Max consecutive losses", fmt.Sprint(s.MaxConsecutiveLosses)},
		{"Equity high value", Dollars(s.EquityHigh, 0)},
		{"Equity low value", Dollars(s.EquityLow, 0)},
		{"Ending Equity", Dollars(s.EndingEquity, 0)},
		{"Maximum Draw Down Dollars", Dollars(s.MaxDrawdown, 0)},
		{"Maximum Draw Down Percent", pct(s.MaxDrawdownPct, 1)},
		{"Max Draw Down/Average Profit", fmt.Sprintf("%.2f", s.DrawdownToAvgWin)},
		{"Profit Factor", pf},
		{"Loss rate (Probability of Ruin)", pct(s.LossRate, 5)},
	}
}

// PrintResult writes the run status and summary table.
func PrintResult(w io.Writer, runID string, res sim.Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Simulation Result")
	fmt.Fprintln(w, "==================================================")
	if runID != "" {
		fmt.Fprintf(w, "Run ID:        %s\n", runID)
	}
	fmt.Fprintf(w, "Status:        %s\n", res.Status)
	fmt.Fprintf(w, "Trades:        %d\n", len(res.Trades))
	fmt.Fprintf(w, "Elapsed:       %s\n", res.Elapsed)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Performance Summary")
	fmt.Fprintln(w, rule)
	metrics := Metrics(res.Stats)
	width := 0
	for _, m := range metrics {
		width = max(width, len(m.Name))
	}
	for _, m := range metrics {
		fmt.Fprintf(w, "%-*s  %s\n", width, m.Name, m.Value)
	}
	fmt.Fprintln(w)
}

// PrintTrades writes the trade log. limit > 0 keeps only the last limit
// trades.
func PrintTrades(w io.Writer, trades []sim.TradeRecord, limit int) {
	if limit > 0 && len(trades) > limit {
		fmt.Fprintf(w, "(showing last %d of %d trades)\n", limit, len(trades))
		trades = trades[len(trades)-limit:]
	}

	fmt.Fprintln(w, "Trade Log")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%6s  %-4s  %14s  %9s  %9s  %14s  %9s  %16s\n",
		"Trade", "Res", "Risk ($)", "Used (%)", "After (%)", "Net P/L ($)", "G/L (%)", "Equity ($)")
	for _, t := range trades {
		fmt.Fprintf(w, "%6d  %-4s  %14s  %9s  %9s  %14s  %9s  %16s\n",
			t.Index, t.Outcome, Dollars(t.RiskAmount, 2),
			pct(t.RiskFractionUsed, 2), pct(t.RiskFractionAfter, 2),
			Dollars(t.NetProfit, 2), pct(t.PercentReturn, 2), Dollars(t.EquityAfter, 2))
	}
	fmt.Fprintln(w)
}

// PrintBatch writes the Monte-Carlo summary.
func PrintBatch(w io.Writer, b stats.BatchSummary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Monte-Carlo Batch")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Runs:               %d\n", b.Runs)
	fmt.Fprintf(w, "Reached target:     %d (%s)\n", b.Reached, pct(b.TargetProbability, 2))
	fmt.Fprintf(w, "Ruined:             %d (%s)\n", b.Ruined, pct(b.RuinProbability, 2))
	fmt.Fprintf(w, "Inconclusive:       %d\n", b.Inconclusive)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ending Equity")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Mean:               %s\n", Dollars(b.MeanEndingEquity, 0))
	fmt.Fprintf(w, "Median:             %s\n", Dollars(b.MedianEndingEquity, 0))
	fmt.Fprintf(w, "Min / Max:          %s / %s\n", Dollars(b.MinEndingEquity, 0), Dollars(b.MaxEndingEquity, 0))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Path")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Mean trades:        %.1f\n", b.MeanTrades)
	fmt.Fprintf(w, "Mean max drawdown:  %s\n", pct(b.MeanMaxDrawdownPct, 1))
	fmt.Fprintf(w, "Worst drawdown:     %s\n", pct(b.WorstDrawdownPct, 1))
	fmt.Fprintln(w)
}
