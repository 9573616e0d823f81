// Package stats reduces a finished simulation run (or a batch of runs)
// into summary metrics. Everything here is computed once, after the
// trade loop has terminated.
package stats

import (
	"math"

	"github.com/moznion/go-optional"
)

// Trade is the part of a trade record the aggregator needs.
type Trade struct {
	Win       bool
	NetProfit float64
}

// Summary holds the derived metrics of one run. Rates and drawdown
// fractions are in [0,1]; cash figures are in account currency.
type Summary struct {
	TotalTrades int     `json:"total_trades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
	LossRate    float64 `json:"loss_rate"`

	InitialEquity  float64 `json:"initial_equity"`
	EndingEquity   float64 `json:"ending_equity"`
	TotalNetProfit float64 `json:"total_net_profit"`
	Return         float64 `json:"return"`

	GrossProfit float64 `json:"gross_profit"`
	GrossLoss   float64 `json:"gross_loss"`
	AvgWin      float64 `json:"avg_win"`
	AvgLoss     float64 `json:"avg_loss"`
	Expectancy  float64 `json:"expectancy"`

	MaxConsecutiveWins   int `json:"max_consecutive_wins"`
	MaxConsecutiveLosses int `json:"max_consecutive_losses"`

	EquityHigh       float64 `json:"equity_high"`
	EquityLow        float64 `json:"equity_low"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	MaxDrawdownPct   float64 `json:"max_drawdown_pct"`
	DrawdownToAvgWin float64 `json:"drawdown_to_avg_win"`

	// None when the run had no losing trades.
	ProfitFactor optional.Option[float64] `json:"profit_factor"`
}

// Compute builds a Summary. curve must start with the initial equity and
// hold one more entry than trades; drawdowns holds one entry per trade.
func Compute(curve, drawdowns []float64, trades []Trade) Summary {
	var s Summary
	if len(curve) == 0 {
		s.ProfitFactor = optional.None[float64]()
		return s
	}

	s.InitialEquity = curve[0]
	s.EndingEquity = curve[len(curve)-1]
	s.TotalNetProfit = s.EndingEquity - s.InitialEquity
	s.Return = s.TotalNetProfit / s.InitialEquity
	s.TotalTrades = len(trades)

	var winStreak, lossStreak int
	for _, t := range trades {
		if t.Win {
			s.Wins++
			s.GrossProfit += t.NetProfit
			winStreak++
			lossStreak = 0
		} else {
			s.Losses++
			s.GrossLoss += t.NetProfit
			lossStreak++
			winStreak = 0
		}
		s.MaxConsecutiveWins = max(s.MaxConsecutiveWins, winStreak)
		s.MaxConsecutiveLosses = max(s.MaxConsecutiveLosses, lossStreak)
	}

	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades)
		s.LossRate = 1 - s.WinRate
		s.Expectancy = s.TotalNetProfit / float64(s.TotalTrades)
	}
	s.AvgWin = s.GrossProfit / float64(max(s.Wins, 1))
	s.AvgLoss = s.GrossLoss / float64(max(s.Losses, 1))

	s.EquityHigh, s.EquityLow, s.MaxDrawdown = curveExtremes(curve)

	for _, dd := range drawdowns {
		s.MaxDrawdownPct = math.Max(s.MaxDrawdownPct, dd)
	}
	s.DrawdownToAvgWin = (s.MaxDrawdownPct * s.EndingEquity) / math.Max(s.AvgWin, 1)

	if s.GrossLoss != 0 {
		s.ProfitFactor = optional.Some(s.GrossProfit / math.Abs(s.GrossLoss))
	} else {
		s.ProfitFactor = optional.None[float64]()
	}

	return s
}

// curveExtremes returns the high, the low and the largest peak-to-trough
// fall in cash over the whole curve.
func curveExtremes(curve []float64) (high, low, maxDD float64) {
	high, low = curve[0], curve[0]
	peak := curve[0]
	for _, e := range curve {
		peak = math.Max(peak, e)
		maxDD = math.Max(maxDD, peak-e)
		high = math.Max(high, e)
		low = math.Min(low, e)
	}
	return high, low, maxDD
}
