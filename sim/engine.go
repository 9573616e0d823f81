package sim

import (
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/equitysim/risk"
	"github.com/rustyeddy/equitysim/stats"
)

type Status string

const (
	StatusTargetReached Status = "target_reached"
	StatusRuined        Status = "ruined"
	// StatusInconclusive means MaxTrades was hit before target or ruin.
	StatusInconclusive Status = "inconclusive"
)

// Result belongs to the caller; the engine keeps nothing between runs.
type Result struct {
	Status      Status        `json:"status"`
	EquityCurve []float64     `json:"equity_curve"`
	Drawdowns   []float64     `json:"drawdowns"`
	Trades      []TradeRecord `json:"trades"`
	Stats       stats.Summary `json:"stats"`
	Elapsed     time.Duration `json:"elapsed"`
}

type runOptions struct {
	source OutcomeSource
	seed   *uint64
	log    *zap.Logger
}

type Option func(*runOptions)

// WithSource replaces the outcome generator, e.g. with a Script.
func WithSource(src OutcomeSource) Option {
	return func(o *runOptions) { o.source = src }
}

// WithSeed makes the Bernoulli draws reproducible. Ignored when
// WithSource is also given.
func WithSeed(seed uint64) Option {
	return func(o *runOptions) { o.seed = &seed }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *runOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// Run simulates trades until equity reaches the target, falls to the
// ruin threshold, or MaxTrades trades have been taken. It only fails
// when cfg is invalid.
func Run(cfg Config, opts ...Option) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	o := runOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	src := o.source
	if src == nil {
		if o.seed != nil {
			src = NewBernoulli(cfg.WinProbability, *o.seed)
		} else {
			src = NewRandomBernoulli(cfg.WinProbability)
		}
	}

	log := o.log.With(
		zap.Float64("initial_equity", cfg.InitialEquity),
		zap.Float64("risk_fraction", cfg.RiskFraction),
		zap.Float64("win_probability", cfg.WinProbability),
	)
	log.Info("simulation started")
	start := time.Now()

	sizer := risk.NewSizer(cfg.RiskFraction, cfg.Policy)
	tracker := NewTracker(cfg.InitialEquity)
	trades := make([]TradeRecord, 0, 64)
	equity := cfg.InitialEquity

	for equity < cfg.TargetEquity && equity > cfg.RuinThreshold && len(trades) < cfg.MaxTrades {
		outcome := src.Next()
		used := sizer.Fraction()
		pl := risk.Settle(equity, used, cfg.RewardRiskRatio, cfg.CommissionRate, outcome == Win)

		before := equity
		equity += pl.Net
		dd := tracker.Add(equity)
		after := sizer.Apply(outcome == Win)

		rec := TradeRecord{
			Index:             len(trades) + 1,
			Outcome:           outcome,
			RiskAmount:        pl.RiskAmount,
			RiskFractionUsed:  used,
			RiskFractionAfter: after,
			GrossProfit:       pl.Gross,
			Commission:        pl.Commission,
			NetProfit:         pl.Net,
			PercentReturn:     pl.PercentReturn,
			EquityBefore:      before,
			EquityAfter:       equity,
			Drawdown:          dd,
		}
		trades = append(trades, rec)

		if ce := log.Check(zap.DebugLevel, "trade"); ce != nil {
			ce.Write(
				zap.Int("index", rec.Index),
				zap.Stringer("outcome", rec.Outcome),
				zap.Float64("risk_amount", rec.RiskAmount),
				zap.Float64("net_profit", rec.NetProfit),
				zap.Float64("equity", rec.EquityAfter),
			)
		}
	}

	res := Result{
		Status:      status(cfg, equity),
		EquityCurve: tracker.Curve(),
		Drawdowns:   tracker.Drawdowns(),
		Trades:      trades,
		Elapsed:     time.Since(start),
	}
	res.Stats = stats.Compute(res.EquityCurve, res.Drawdowns, statTrades(trades))

	log.Info("simulation finished",
		zap.String("status", string(res.Status)),
		zap.Int("trades", len(trades)),
		zap.Float64("ending_equity", equity),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func status(cfg Config, equity float64) Status {
	switch {
	case equity >= cfg.TargetEquity:
		return StatusTargetReached
	case equity <= cfg.RuinThreshold:
		return StatusRuined
	default:
		return StatusInconclusive
	}
}

func statTrades(trades []TradeRecord) []stats.Trade {
	out := make([]stats.Trade, len(trades))
	for i, t := range trades {
		out[i] = stats.Trade{Win: t.Win(), NetProfit: t.NetProfit}
	}
	return out
}
