package journal

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','trades','equity')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["trades"])
	assert.True(t, found["equity"])
}

func TestSQLiteRecordResult(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	cfg, res := scriptedResult(t)
	run := NewRunRecord("R1", testCreated, cfg, nil, res)
	require.NoError(t, Record(j, run, res))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM trades WHERE run_id = 'R1'`).Scan(&n))
	assert.Equal(t, 3, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM equity WHERE run_id = 'R1'`).Scan(&n))
	assert.Equal(t, 4, n)

	var status string
	var ending float64
	require.NoError(t, db.QueryRow(`SELECT status, ending_equity FROM runs WHERE run_id = 'R1'`).Scan(&status, &ending))
	assert.Equal(t, "inconclusive", status)
	assert.InDelta(t, 2812.5, ending, 1e-9)
}

func TestSQLiteRecordResultRollsBack(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	cfg, res := scriptedResult(t)
	run := NewRunRecord("R1", testCreated, cfg, nil, res)
	require.NoError(t, Record(j, run, res))

	// same run ID violates the primary key; nothing from the retry may stick
	err := Record(j, run, res)
	require.Error(t, err)

	trades, err := j.ListTrades("R1")
	require.NoError(t, err)
	assert.Len(t, trades, 3)
}

func TestSQLiteRecordRowByRow(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	cfg, res := scriptedResult(t)
	run := NewRunRecord("R2", testCreated, cfg, nil, res)
	trades, equity := Rows("R2", res)

	require.NoError(t, j.RecordRun(run))
	for _, tr := range trades {
		require.NoError(t, j.RecordTrade(tr))
	}
	for _, e := range equity {
		require.NoError(t, j.RecordEquity(e))
	}

	got, err := j.ListEquity("R2")
	require.NoError(t, err)
	assert.Equal(t, equity, got)
}
