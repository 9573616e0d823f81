package stats

import (
	"math"
	"slices"
)

// RunStat is what a batch keeps from each finished run.
type RunStat struct {
	Reached        bool
	Ruined         bool
	Trades         int
	EndingEquity   float64
	MaxDrawdownPct float64
}

// BatchSummary aggregates many independent runs of the same config.
// RuinProbability is the share of runs that ended ruined, which is the
// Monte-Carlo estimate a single run cannot give.
type BatchSummary struct {
	Runs         int `json:"runs"`
	Reached      int `json:"reached"`
	Ruined       int `json:"ruined"`
	Inconclusive int `json:"inconclusive"`

	RuinProbability   float64 `json:"ruin_probability"`
	TargetProbability float64 `json:"target_probability"`

	MeanEndingEquity   float64 `json:"mean_ending_equity"`
	MedianEndingEquity float64 `json:"median_ending_equity"`
	MinEndingEquity    float64 `json:"min_ending_equity"`
	MaxEndingEquity    float64 `json:"max_ending_equity"`

	MeanTrades         float64 `json:"mean_trades"`
	MeanMaxDrawdownPct float64 `json:"mean_max_drawdown_pct"`
	WorstDrawdownPct   float64 `json:"worst_drawdown_pct"`
}

func Aggregate(runs []RunStat) BatchSummary {
	var b BatchSummary
	b.Runs = len(runs)
	if b.Runs == 0 {
		return b
	}

	ending := make([]float64, 0, len(runs))
	var sumEq, sumTrades, sumDD float64
	b.MinEndingEquity = math.Inf(1)
	b.MaxEndingEquity = math.Inf(-1)

	for _, r := range runs {
		switch {
		case r.Reached:
			b.Reached++
		case r.Ruined:
			b.Ruined++
		default:
			b.Inconclusive++
		}
		ending = append(ending, r.EndingEquity)
		sumEq += r.EndingEquity
		sumTrades += float64(r.Trades)
		sumDD += r.MaxDrawdownPct
		b.MinEndingEquity = math.Min(b.MinEndingEquity, r.EndingEquity)
		b.MaxEndingEquity = math.Max(b.MaxEndingEquity, r.EndingEquity)
		b.WorstDrawdownPct = math.Max(b.WorstDrawdownPct, r.MaxDrawdownPct)
	}

	n := float64(b.Runs)
	b.RuinProbability = float64(b.Ruined) / n
	b.TargetProbability = float64(b.Reached) / n
	b.MeanEndingEquity = sumEq / n
	b.MeanTrades = sumTrades / n
	b.MeanMaxDrawdownPct = sumDD / n
	b.MedianEndingEquity = median(ending)
	return b
}

func median(xs []float64) float64 {
	slices.Sort(xs)
	mid := len(xs) / 2
	if len(xs)%2 == 1 {
		return xs[mid]
	}
	return (xs[mid-1] + xs[mid]) / 2
}
