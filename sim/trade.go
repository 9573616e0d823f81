package sim

// TradeRecord is written once per loop iteration and never changed.
type TradeRecord struct {
	Index   int     `json:"index"`
	Outcome Outcome `json:"outcome"`

	RiskAmount float64 `json:"risk_amount"`
	// RiskFractionUsed sized this trade. RiskFractionAfter is the fraction
	// after the sizing policy saw this outcome, i.e. the one the next trade
	// will use.
	RiskFractionUsed  float64 `json:"risk_fraction_used"`
	RiskFractionAfter float64 `json:"risk_fraction_after"`

	GrossProfit   float64 `json:"gross_profit"`
	Commission    float64 `json:"commission"`
	NetProfit     float64 `json:"net_profit"`
	PercentReturn float64 `json:"percent_return"`

	EquityBefore float64 `json:"equity_before"`
	EquityAfter  float64 `json:"equity_after"`
	Drawdown     float64 `json:"drawdown"`
}

func (t TradeRecord) Win() bool { return t.Outcome == Win }
