package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/equitysim/config"
)

// execute runs the CLI in-process. Flag variables are package globals,
// so these tests do not run in parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

var runIDRe = regexp.MustCompile(`Run ID:\s+(\S+)`)

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "eqsim version "+version)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "risk 25.00%")
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy:\n  win_probability: 3\n"), 0644))

	_, err := execute(t, "config", "validate", "-f", path)
	assert.ErrorContains(t, err, "validation failed")
}

func TestRunJournalAndQuery(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.sqlite")
	orgPath := filepath.Join(dir, "run.org")

	cfg := config.Default()
	cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: dbPath}
	cfgPath := filepath.Join(dir, "sim.yaml")
	require.NoError(t, cfg.SaveToFile(cfgPath))

	out, err := execute(t, "run", "-f", cfgPath, "--seed", "42", "--trades", "5", "--org", orgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Trade Log")
	assert.Contains(t, out, "Trade Performance Summary")
	assert.Contains(t, out, "Journal (sqlite) updated")

	m := runIDRe.FindStringSubmatch(out)
	require.Len(t, m, 2)
	runID := m[1]

	org, err := os.ReadFile(orgPath)
	require.NoError(t, err)
	assert.Contains(t, string(org), ":RUN_ID:      "+runID)
	assert.Contains(t, string(org), ":SEED:        42")

	out, err = execute(t, "journal", "runs", "-d", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, runID)

	out, err = execute(t, "journal", "run", runID, "-d", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "* SIMULATION:")

	out, err = execute(t, "journal", "trades", runID, "-d", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "| 1 |")

	_, err = execute(t, "journal", "trades", "missing", "-d", dbPath)
	assert.ErrorContains(t, err, "invalid run id")

	_, err = execute(t, "journal", "run", "missing", "-d", dbPath)
	assert.ErrorContains(t, err, "invalid run id")

	_, err = execute(t, "journal", "trades", "01ARZ3NDEKTSV4RRFFQ69G5FAV", "-d", dbPath)
	assert.ErrorContains(t, err, "no trades for run")
}

func TestRunFailsWhenJournalCannotBeWritten(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Journal = config.JournalConfig{
		Type:       "csv",
		TradesFile: "/dev/full",
		EquityFile: filepath.Join(dir, "equity.csv"),
	}
	cfgPath := filepath.Join(dir, "sim.yaml")
	require.NoError(t, cfg.SaveToFile(cfgPath))

	out, err := execute(t, "run", "-f", cfgPath, "--seed", "3", "--org", "")
	assert.ErrorContains(t, err, "no space left on device")
	assert.NotContains(t, out, "Journal (csv) updated")
}

func TestRunSeedIsReproducible(t *testing.T) {
	first, err := execute(t, "run", "-f", "", "--seed", "7", "--trades", "0", "--org", "")
	require.NoError(t, err)
	second, err := execute(t, "run", "-f", "", "--seed", "7", "--trades", "0", "--org", "")
	require.NoError(t, err)

	strip := func(s string) string {
		s = runIDRe.ReplaceAllString(s, "")
		return regexp.MustCompile(`Elapsed:.*`).ReplaceAllString(s, "")
	}
	assert.Equal(t, strip(first), strip(second))
}

func TestBatch(t *testing.T) {
	out, err := execute(t, "batch", "-n", "20", "-w", "2", "--seed", "1", "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "Seed: 1")
	assert.Contains(t, out, "Runs:               20")
	assert.Contains(t, out, "Ruined:")
}

func TestRunMissingConfig(t *testing.T) {
	_, err := execute(t, "run", "-f", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "load config")
}
