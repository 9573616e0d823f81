package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/equitysim/journal"
	"github.com/rustyeddy/equitysim/pkg/id"
	"github.com/rustyeddy/equitysim/report"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query runs exported to a SQLite journal",
	Long: `Query and display simulation runs stored in a SQLite journal.

Subcommands:
  runs   - List recent runs
  run    - Show one run as an org-mode report
  trades - Show the trade log of one run

Examples:
  eqsim journal runs --limit 10
  eqsim journal run <run-id>
  eqsim journal trades <run-id>`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show one run",
	Args:  runIDArg,
	RunE:  runJournalRun,
}

var journalTradesCmd = &cobra.Command{
	Use:   "trades <run-id>",
	Short: "Show the trade log of one run",
	Args:  runIDArg,
	RunE:  runJournalTrades,
}

// runIDArg accepts exactly one argument that parses as a run ID.
func runIDArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if _, err := id.Time(args[0]); err != nil {
		return fmt.Errorf("invalid run id %q: %w", args[0], err)
	}
	return nil
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalRunCmd)
	journalCmd.AddCommand(journalTradesCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./eqsim.sqlite", "path to SQLite journal DB")
	journalRunsCmd.Flags().IntVarP(&journalLimit, "limit", "l", 20, "maximum runs to list (0 = all)")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns(journalLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-26s  %-16s  %-14s  %7s  %16s  %8s\n", "RUN ID", "CREATED", "STATUS", "TRADES", "ENDING EQUITY", "MAX DD")
	for _, r := range runs {
		fmt.Fprintf(out, "%-26s  %-16s  %-14s  %7d  %16s  %7.1f%%\n",
			r.RunID, r.Created.Format("2006-01-02 15:04"), r.Status, r.Trades,
			report.Dollars(r.EndingEquity, 0), r.MaxDrawdownPct*100)
	}
	return nil
}

func runJournalRun(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	run, err := j.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	org, err := journal.FormatRunOrg(run)
	if err != nil {
		return fmt.Errorf("format run: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), org)
	return nil
}

func runJournalTrades(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	trades, err := j.ListTrades(args[0])
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	if len(trades) == 0 {
		return fmt.Errorf("no trades for run %q", args[0])
	}
	fmt.Fprint(cmd.OutOrStdout(), journal.FormatTradesOrg(trades))
	return nil
}
