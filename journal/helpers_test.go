package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/equitysim/sim"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	return j, path
}

// scriptedResult runs win, loss, win from $2,000 at 25% / 2R.
func scriptedResult(t *testing.T) (sim.Config, sim.Result) {
	t.Helper()

	cfg := sim.NewConfig(2000, 0.25, 2, 0.5, 0)
	cfg.MaxTrades = 3
	res, err := sim.Run(cfg, sim.WithSource(sim.NewScript(sim.Win, sim.Loss, sim.Win)))
	require.NoError(t, err)
	require.Len(t, res.Trades, 3)
	return cfg, res
}

var testCreated = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
