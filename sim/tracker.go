package sim

import "math"

// Tracker keeps the equity curve and the per-trade drawdown series.
// Curve-wide extremes (high, low, max drawdown in cash) are left to
// stats.Compute, which sees the finished curve.
type Tracker struct {
	curve     []float64
	drawdowns []float64
	peak      float64
}

func NewTracker(initial float64) *Tracker {
	return &Tracker{
		curve: []float64{initial},
		peak:  initial,
	}
}

// Add appends a new equity value and returns its drawdown from the
// running high-water mark.
func (t *Tracker) Add(equity float64) float64 {
	t.curve = append(t.curve, equity)
	t.peak = math.Max(t.peak, equity)

	var dd float64
	if t.peak > 0 && equity < t.peak {
		dd = (t.peak - equity) / t.peak
	}
	t.drawdowns = append(t.drawdowns, dd)
	return dd
}

func (t *Tracker) Equity() float64      { return t.curve[len(t.curve)-1] }
func (t *Tracker) Curve() []float64     { return t.curve }
func (t *Tracker) Drawdowns() []float64 { return t.drawdowns }
