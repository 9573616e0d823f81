package journal

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/moznion/go-optional"
)

var orgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"money":  money,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"pf": func(o optional.Option[float64]) string {
		if o.IsNone() {
			return "n/a"
		}
		return fmt.Sprintf("%.2f", o.Unwrap())
	},
}

var runOrgTmpl = template.Must(template.New("run").Funcs(orgFuncs).Parse(RunOrgTemplate))

const RunOrgTemplate = `* SIMULATION: {{printf "%.0f%%" (mul100 .RiskFraction)}} risk, {{printf "%.2f" .RewardRiskRatio}}R, {{printf "%.1f%%" (mul100 .WinProbability)}} win rate
:PROPERTIES:
:RUN_ID:      {{if .RunID}}{{.RunID}}{{else}}(run-id?){{end}}
:STATUS:      {{.Status}}
:SEED:        {{if .Seed}}{{.Seed}}{{else}}random{{end}}
:START_EQ:    {{money .InitialEquity}}
:END_EQ:      {{money .EndingEquity}}
:TARGET_EQ:   {{money .TargetEquity}}
:RUIN_EQ:     {{money .RuinThreshold}}
:NET_PL:      {{money .NetPL}}
:RETURN_PCT:  {{printf "%.2f" (mul100 .Return)}}
:MAX_DD:      {{money .MaxDrawdown}}
:MAX_DD_PCT:  {{printf "%.2f" (mul100 .MaxDrawdownPct)}}
:TRADES:      {{.Trades}}
:WINS:        {{.Wins}}
:LOSSES:      {{.Losses}}
:WIN_RATE:    {{printf "%.2f" (mul100 .WinRate)}}
:PROFIT_FAC:  {{pf .ProfitFactor}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Parameters
| Parameter         | Value |
|-------------------+-------|
| Initial equity    | {{money .InitialEquity}} |
| Risk per trade %  | {{printf "%.2f" (mul100 .RiskFraction)}} |
| R:R               | {{printf "%.2f" .RewardRiskRatio}} |
| Win probability % | {{printf "%.2f" (mul100 .WinProbability)}} |
| Commission %      | {{printf "%.4f" (mul100 .CommissionRate)}} |
| Max trades        | {{.MaxTrades}} |

** Performance Summary
- Net P/L:          *{{money .NetPL}}*
- Return:           *{{printf "%.2f" (mul100 .Return)}}%*
- Expectancy:       *{{money .Expectancy}}*
- Equity high/low:  *{{money .EquityHigh}} / {{money .EquityLow}}*
- Max Drawdown:     *{{money .MaxDrawdown}} ({{printf "%.2f" (mul100 .MaxDrawdownPct)}}%)*
- Win Rate:         *{{printf "%.2f" (mul100 .WinRate)}}%*
- Profit Factor:    *{{pf .ProfitFactor}}*

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Wins}} |
| Losses  | {{.Losses}} |
| Total   | {{.Trades}} |
`

// FormatRunOrg renders a run as an org-mode heading.
func FormatRunOrg(r RunRecord) (string, error) {
	var buf bytes.Buffer
	if err := runOrgTmpl.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatTradesOrg renders trades as an org table.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	b.WriteString("| # | Result | Risk ($) | Risk used (%) | Risk after (%) | Net P/L ($) | Gain/Loss (%) | Equity ($) |\n")
	b.WriteString("|---+--------+----------+---------------+----------------+-------------+---------------+------------|\n")
	for _, t := range trades {
		fmt.Fprintf(&b, "| %d | %s | %s | %.2f | %.2f | %s | %.2f | %s |\n",
			t.Index, t.Outcome, money(t.RiskAmount),
			t.RiskFractionUsed*100, t.RiskFractionAfter*100,
			money(t.NetProfit), t.PercentReturn*100, money(t.EquityAfter))
	}
	return b.String()
}

// WriteRunOrg writes the run heading followed by a trade log section.
func WriteRunOrg(path string, r RunRecord, trades []TradeRecord) error {
	head, err := FormatRunOrg(r)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString(head)
	if len(trades) > 0 {
		buf.WriteString("\n** Trade Log\n")
		buf.WriteString(FormatTradesOrg(trades))
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
