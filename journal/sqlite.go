package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

const (
	insertRun = `
		INSERT INTO runs
		(run_id, created, status, seed, initial_equity, risk_fraction, reward_risk_ratio,
		 win_probability, commission_rate, target_equity, ruin_threshold, max_trades,
		 trades, wins, losses, ending_equity, net_pl, return_frac, win_rate, expectancy,
		 equity_high, equity_low, max_dd, max_dd_pct, profit_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertTrade = `
		INSERT INTO trades
		(run_id, idx, outcome, risk_amount, risk_fraction_used, risk_fraction_after,
		 net_profit, percent_return, equity_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertEquity = `
		INSERT INTO equity (run_id, idx, equity, drawdown)
		VALUES (?, ?, ?, ?)`
)

func recordRun(x execer, r RunRecord) error {
	pf := sql.NullFloat64{}
	if r.ProfitFactor.IsSome() {
		pf = sql.NullFloat64{Float64: r.ProfitFactor.Unwrap(), Valid: true}
	}
	_, err := x.Exec(insertRun,
		r.RunID, r.Created, r.Status, r.Seed, r.InitialEquity, r.RiskFraction, r.RewardRiskRatio,
		r.WinProbability, r.CommissionRate, r.TargetEquity, r.RuinThreshold, r.MaxTrades,
		r.Trades, r.Wins, r.Losses, r.EndingEquity, r.NetPL, r.Return, r.WinRate, r.Expectancy,
		r.EquityHigh, r.EquityLow, r.MaxDrawdown, r.MaxDrawdownPct, pf,
	)
	return err
}

func recordTrade(x execer, t TradeRecord) error {
	_, err := x.Exec(insertTrade,
		t.RunID, t.Index, t.Outcome, t.RiskAmount, t.RiskFractionUsed, t.RiskFractionAfter,
		t.NetProfit, t.PercentReturn, t.EquityAfter,
	)
	return err
}

func recordEquity(x execer, e EquityPoint) error {
	_, err := x.Exec(insertEquity, e.RunID, e.Index, e.Equity, e.Drawdown)
	return err
}

func (j *SQLite) RecordRun(r RunRecord) error      { return recordRun(j.db, r) }
func (j *SQLite) RecordTrade(t TradeRecord) error  { return recordTrade(j.db, t) }
func (j *SQLite) RecordEquity(e EquityPoint) error { return recordEquity(j.db, e) }

// RecordResult stores a run with all of its rows in one transaction.
func (j *SQLite) RecordResult(run RunRecord, trades []TradeRecord, equity []EquityPoint) (err error) {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = recordRun(tx, run); err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}
	for _, t := range trades {
		if err = recordTrade(tx, t); err != nil {
			return fmt.Errorf("insert trade %d: %w", t.Index, err)
		}
	}
	for _, e := range equity {
		if err = recordEquity(tx, e); err != nil {
			return fmt.Errorf("insert equity %d: %w", e.Index, err)
		}
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
