package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	status TEXT NOT NULL,
	seed TEXT NOT NULL DEFAULT '',
	initial_equity REAL NOT NULL,
	risk_fraction REAL NOT NULL,
	reward_risk_ratio REAL NOT NULL,
	win_probability REAL NOT NULL,
	commission_rate REAL NOT NULL,
	target_equity REAL NOT NULL,
	ruin_threshold REAL NOT NULL,
	max_trades INTEGER NOT NULL,
	trades INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	ending_equity REAL NOT NULL,
	net_pl REAL NOT NULL,
	return_frac REAL NOT NULL,
	win_rate REAL NOT NULL,
	expectancy REAL NOT NULL,
	equity_high REAL NOT NULL,
	equity_low REAL NOT NULL,
	max_dd REAL NOT NULL,
	max_dd_pct REAL NOT NULL,
	profit_factor REAL
);

CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	risk_amount REAL NOT NULL,
	risk_fraction_used REAL NOT NULL,
	risk_fraction_after REAL NOT NULL,
	net_profit REAL NOT NULL,
	percent_return REAL NOT NULL,
	equity_after REAL NOT NULL,
	PRIMARY KEY (run_id, idx)
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	equity REAL NOT NULL,
	drawdown REAL NOT NULL,
	PRIMARY KEY (run_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
`
