package journal

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// CSVJournal writes trades and equity to two files. Runs are not kept:
// every row carries its run ID instead.
type CSVJournal struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

var (
	tradesHeader = []string{"run_id", "index", "outcome", "risk_amount", "risk_fraction_used", "risk_fraction_after", "net_profit", "percent_return", "equity_after"}
	equityHeader = []string{"run_id", "index", "equity", "drawdown"}
)

func NewCSV(tradesPath, equityPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	j := &CSVJournal{csv.NewWriter(tf), csv.NewWriter(ef), tf, ef}
	if err := j.trades.Write(tradesHeader); err != nil {
		return nil, errors.Join(err, j.Close())
	}
	if err := j.equity.Write(equityHeader); err != nil {
		return nil, errors.Join(err, j.Close())
	}
	return j, nil
}

func (j *CSVJournal) RecordRun(RunRecord) error { return nil }

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	return j.trades.Write([]string{
		t.RunID,
		strconv.Itoa(t.Index),
		t.Outcome,
		money(t.RiskAmount),
		frac(t.RiskFractionUsed),
		frac(t.RiskFractionAfter),
		money(t.NetProfit),
		frac(t.PercentReturn),
		money(t.EquityAfter),
	})
}

func (j *CSVJournal) RecordEquity(e EquityPoint) error {
	return j.equity.Write([]string{
		e.RunID,
		strconv.Itoa(e.Index),
		money(e.Equity),
		frac(e.Drawdown),
	})
}

// Close flushes both writers and closes both files. Buffered rows only
// reach disk here, so a nil error is the only proof the export landed.
func (j *CSVJournal) Close() error {
	j.trades.Flush()
	j.equity.Flush()
	return errors.Join(
		j.trades.Error(),
		j.equity.Error(),
		j.tf.Close(),
		j.ef.Close(),
	)
}

// money rounds to cents.
func money(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

func frac(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(6)
}
