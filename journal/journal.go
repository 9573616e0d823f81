package journal

import (
	"fmt"
	"strconv"
	"time"

	"github.com/moznion/go-optional"

	"github.com/rustyeddy/equitysim/sim"
)

// RunRecord is one finished simulation: its inputs and headline results.
type RunRecord struct {
	RunID   string
	Created time.Time
	Status  string
	Seed    string // empty when the run used a random seed

	InitialEquity   float64
	RiskFraction    float64
	RewardRiskRatio float64
	WinProbability  float64
	CommissionRate  float64
	TargetEquity    float64
	RuinThreshold   float64
	MaxTrades       int

	Trades         int
	Wins           int
	Losses         int
	EndingEquity   float64
	NetPL          float64
	Return         float64
	WinRate        float64
	Expectancy     float64
	EquityHigh     float64
	EquityLow      float64
	MaxDrawdown    float64
	MaxDrawdownPct float64
	ProfitFactor   optional.Option[float64]
}

// TradeRecord is a sim trade keyed by the run it belongs to.
type TradeRecord struct {
	RunID             string
	Index             int
	Outcome           string
	RiskAmount        float64
	RiskFractionUsed  float64
	RiskFractionAfter float64
	NetProfit         float64
	PercentReturn     float64
	EquityAfter       float64
}

// EquityPoint is one entry of a run's equity curve. Index 0 is the
// starting equity; Drawdown is 0 there.
type EquityPoint struct {
	RunID    string
	Index    int
	Equity   float64
	Drawdown float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquityPoint) error
	Close() error
}

// resultRecorder is implemented by journals that can store a whole
// result more efficiently than row by row.
type resultRecorder interface {
	RecordResult(RunRecord, []TradeRecord, []EquityPoint) error
}

// NewRunRecord summarises a finished result for the journal.
func NewRunRecord(runID string, created time.Time, cfg sim.Config, seed *uint64, res sim.Result) RunRecord {
	s := res.Stats
	rec := RunRecord{
		RunID:           runID,
		Created:         created,
		Status:          string(res.Status),
		InitialEquity:   cfg.InitialEquity,
		RiskFraction:    cfg.RiskFraction,
		RewardRiskRatio: cfg.RewardRiskRatio,
		WinProbability:  cfg.WinProbability,
		CommissionRate:  cfg.CommissionRate,
		TargetEquity:    cfg.TargetEquity,
		RuinThreshold:   cfg.RuinThreshold,
		MaxTrades:       cfg.MaxTrades,
		Trades:          s.TotalTrades,
		Wins:            s.Wins,
		Losses:          s.Losses,
		EndingEquity:    s.EndingEquity,
		NetPL:           s.TotalNetProfit,
		Return:          s.Return,
		WinRate:         s.WinRate,
		Expectancy:      s.Expectancy,
		EquityHigh:      s.EquityHigh,
		EquityLow:       s.EquityLow,
		MaxDrawdown:     s.MaxDrawdown,
		MaxDrawdownPct:  s.MaxDrawdownPct,
		ProfitFactor:    s.ProfitFactor,
	}
	if seed != nil {
		rec.Seed = strconv.FormatUint(*seed, 10)
	}
	return rec
}

// Rows flattens a result into journal rows for runID.
func Rows(runID string, res sim.Result) ([]TradeRecord, []EquityPoint) {
	trades := make([]TradeRecord, len(res.Trades))
	for i, t := range res.Trades {
		trades[i] = TradeRecord{
			RunID:             runID,
			Index:             t.Index,
			Outcome:           t.Outcome.String(),
			RiskAmount:        t.RiskAmount,
			RiskFractionUsed:  t.RiskFractionUsed,
			RiskFractionAfter: t.RiskFractionAfter,
			NetProfit:         t.NetProfit,
			PercentReturn:     t.PercentReturn,
			EquityAfter:       t.EquityAfter,
		}
	}

	equity := make([]EquityPoint, len(res.EquityCurve))
	for i, e := range res.EquityCurve {
		var dd float64
		if i > 0 {
			dd = res.Drawdowns[i-1]
		}
		equity[i] = EquityPoint{RunID: runID, Index: i, Equity: e, Drawdown: dd}
	}
	return trades, equity
}

// Record writes a run, its trades and its equity curve to j.
func Record(j Journal, run RunRecord, res sim.Result) error {
	trades, equity := Rows(run.RunID, res)

	if rr, ok := j.(resultRecorder); ok {
		return rr.RecordResult(run, trades, equity)
	}

	if err := j.RecordRun(run); err != nil {
		return fmt.Errorf("record run %s: %w", run.RunID, err)
	}
	for _, t := range trades {
		if err := j.RecordTrade(t); err != nil {
			return fmt.Errorf("record trade %d: %w", t.Index, err)
		}
	}
	for _, e := range equity {
		if err := j.RecordEquity(e); err != nil {
			return fmt.Errorf("record equity %d: %w", e.Index, err)
		}
	}
	return nil
}
