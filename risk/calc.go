package risk

import "math"

// TradePL is the cash breakdown of a single sized trade.
type TradePL struct {
	RiskAmount    float64
	Gross         float64
	Commission    float64
	Net           float64
	PercentReturn float64
}

// RiskAmount is the cash put at risk on a trade.
func RiskAmount(equity, fraction float64) float64 {
	return equity * fraction
}

// Commission is charged on both legs: the amount risked and the amount
// won or lost.
func Commission(riskAmt, gross, rate float64) float64 {
	return (math.Abs(riskAmt) + math.Abs(gross)) * rate
}

// Settle computes the P/L of a trade risking fraction of equity. A win
// pays rr times the risk, a loss forfeits the risk.
func Settle(equity, fraction, rr, commissionRate float64, win bool) TradePL {
	riskAmt := RiskAmount(equity, fraction)

	gross := -riskAmt
	if win {
		gross = riskAmt * rr
	}

	comm := Commission(riskAmt, gross, commissionRate)
	net := gross - comm

	var pct float64
	if equity != 0 {
		pct = net / equity
	}

	return TradePL{
		RiskAmount:    riskAmt,
		Gross:         gross,
		Commission:    comm,
		Net:           net,
		PercentReturn: pct,
	}
}
