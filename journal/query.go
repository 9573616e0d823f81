package journal

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/moznion/go-optional"
)

const runColumns = `
	run_id, created, status, seed, initial_equity, risk_fraction, reward_risk_ratio,
	win_probability, commission_rate, target_equity, ruin_threshold, max_trades,
	trades, wins, losses, ending_equity, net_pl, return_frac, win_rate, expectancy,
	equity_high, equity_low, max_dd, max_dd_pct, profit_factor`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var r RunRecord
	var pf sql.NullFloat64
	err := s.Scan(
		&r.RunID, &r.Created, &r.Status, &r.Seed, &r.InitialEquity, &r.RiskFraction, &r.RewardRiskRatio,
		&r.WinProbability, &r.CommissionRate, &r.TargetEquity, &r.RuinThreshold, &r.MaxTrades,
		&r.Trades, &r.Wins, &r.Losses, &r.EndingEquity, &r.NetPL, &r.Return, &r.WinRate, &r.Expectancy,
		&r.EquityHigh, &r.EquityLow, &r.MaxDrawdown, &r.MaxDrawdownPct, &pf,
	)
	if err != nil {
		return RunRecord{}, err
	}
	if pf.Valid {
		r.ProfitFactor = optional.Some(pf.Float64)
	} else {
		r.ProfitFactor = optional.None[float64]()
	}
	return r, nil
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return r, nil
}

// ListRuns returns the most recent runs first; limit <= 0 means all.
func (j *SQLite) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY created DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTrades returns the trades of a run in execution order.
func (j *SQLite) ListTrades(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, idx, outcome, risk_amount, risk_fraction_used, risk_fraction_after,
		       net_profit, percent_return, equity_after
		FROM trades
		WHERE run_id = ?
		ORDER BY idx ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(
			&t.RunID,
			&t.Index,
			&t.Outcome,
			&t.RiskAmount,
			&t.RiskFractionUsed,
			&t.RiskFractionAfter,
			&t.NetProfit,
			&t.PercentReturn,
			&t.EquityAfter,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquity returns a run's equity curve.
func (j *SQLite) ListEquity(runID string) ([]EquityPoint, error) {
	rows, err := j.db.Query(`
		SELECT run_id, idx, equity, drawdown
		FROM equity
		WHERE run_id = ?
		ORDER BY idx ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityPoint
	for rows.Next() {
		var e EquityPoint
		if err := rows.Scan(&e.RunID, &e.Index, &e.Equity, &e.Drawdown); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
