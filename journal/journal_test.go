package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memJournal struct {
	runs   []RunRecord
	trades []TradeRecord
	equity []EquityPoint
}

func (m *memJournal) RecordRun(r RunRecord) error      { m.runs = append(m.runs, r); return nil }
func (m *memJournal) RecordTrade(t TradeRecord) error  { m.trades = append(m.trades, t); return nil }
func (m *memJournal) RecordEquity(e EquityPoint) error { m.equity = append(m.equity, e); return nil }
func (m *memJournal) Close() error                     { return nil }

func TestNewRunRecord(t *testing.T) {
	t.Parallel()

	cfg, res := scriptedResult(t)
	seed := uint64(9)
	r := NewRunRecord("R1", testCreated, cfg, &seed, res)

	assert.Equal(t, "R1", r.RunID)
	assert.Equal(t, "inconclusive", r.Status)
	assert.Equal(t, "9", r.Seed)
	assert.Equal(t, 3, r.Trades)
	assert.Equal(t, 2, r.Wins)
	assert.Equal(t, 1, r.Losses)
	// 2000 -> 3000 -> 2250 -> 2812.5, the last win sized at the halved 12.5%
	assert.InDelta(t, 2812.5, r.EndingEquity, 1e-9)
	assert.InDelta(t, 812.5, r.NetPL, 1e-9)
	assert.Equal(t, res.Stats.MaxDrawdownPct, r.MaxDrawdownPct)
	assert.True(t, r.ProfitFactor.IsSome())

	r = NewRunRecord("R2", testCreated, cfg, nil, res)
	assert.Empty(t, r.Seed)
}

func TestRows(t *testing.T) {
	t.Parallel()

	_, res := scriptedResult(t)
	trades, equity := Rows("R1", res)

	require.Len(t, trades, 3)
	require.Len(t, equity, 4)
	assert.Equal(t, "Win", trades[0].Outcome)
	assert.Equal(t, "Loss", trades[1].Outcome)
	assert.Equal(t, 0.25, trades[1].RiskFractionUsed)
	assert.Equal(t, 0.125, trades[1].RiskFractionAfter)
	assert.Equal(t, 0.125, trades[2].RiskFractionUsed)

	assert.Equal(t, 0, equity[0].Index)
	assert.Equal(t, 2000.0, equity[0].Equity)
	assert.Equal(t, 0.0, equity[0].Drawdown)
	assert.Equal(t, res.Drawdowns[1], equity[2].Drawdown)
	for _, e := range equity {
		assert.Equal(t, "R1", e.RunID)
	}
}

func TestRecordRowByRow(t *testing.T) {
	t.Parallel()

	cfg, res := scriptedResult(t)
	m := &memJournal{}

	require.NoError(t, Record(m, NewRunRecord("R1", testCreated, cfg, nil, res), res))
	assert.Len(t, m.runs, 1)
	assert.Len(t, m.trades, 3)
	assert.Len(t, m.equity, 4)
}
