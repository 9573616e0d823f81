package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/equitysim/config"
	"github.com/rustyeddy/equitysim/journal"
	"github.com/rustyeddy/equitysim/pkg/id"
	"github.com/rustyeddy/equitysim/report"
	"github.com/rustyeddy/equitysim/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation",
	Long: `Run a single simulation and print its trade log and summary.

Without a config file the classic scenario is used: $2,000 risking 25%
per trade at 2R with a 75% win rate.

Examples:
  eqsim run
  eqsim run -f simulation.yaml --seed 42 --trades 0
  eqsim run -f simulation.yaml --org run.org`,
	RunE: runRun,
}

var (
	runConfigPath string
	runSeed       uint64
	runTrades     int
	runOrgPath    string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "random seed (overrides the config file)")
	runCmd.Flags().IntVarP(&runTrades, "trades", "t", 20, "show the last N trades (0 = all)")
	runCmd.Flags().StringVar(&runOrgPath, "org", "", "write an org-mode report to this path")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.TradesFile, cfg.EquityFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return nil, nil
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Simulation.Seed = &runSeed
	}

	opts := []sim.Option{sim.WithLogger(log)}
	if cfg.Simulation.Seed != nil {
		opts = append(opts, sim.WithSeed(*cfg.Simulation.Seed))
	}

	sc := cfg.SimConfig()
	res, err := sim.Run(sc, opts...)
	if err != nil {
		return err
	}

	runID := id.New()
	out := cmd.OutOrStdout()
	report.PrintTrades(out, res.Trades, runTrades)
	report.PrintResult(out, runID, res)

	run := journal.NewRunRecord(runID, time.Now().UTC(), sc, cfg.Simulation.Seed, res)

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	if j != nil {
		if err := journal.Record(j, run, res); err != nil {
			j.Close()
			return fmt.Errorf("journal run: %w", err)
		}
		if err := j.Close(); err != nil {
			return fmt.Errorf("close journal: %w", err)
		}
		log.Info("run journaled", zap.String("run_id", runID), zap.String("type", cfg.Journal.Type))
		fmt.Fprintf(out, "Journal (%s) updated for run %s\n", cfg.Journal.Type, runID)
	}

	orgPath := runOrgPath
	if orgPath == "" {
		orgPath = cfg.Journal.OrgFile
	}
	if orgPath != "" {
		trades, _ := journal.Rows(runID, res)
		if err := journal.WriteRunOrg(orgPath, run, trades); err != nil {
			return fmt.Errorf("write org report: %w", err)
		}
		fmt.Fprintf(out, "Org report: %s\n", orgPath)
	}

	return nil
}
