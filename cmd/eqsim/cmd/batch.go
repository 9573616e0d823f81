package cmd

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/equitysim/report"
	"github.com/rustyeddy/equitysim/sim"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a Monte-Carlo batch of independent simulations",
	Long: `Run many independent simulations of the same config in parallel and
report how often the account reached its target or was ruined.

Run i uses seed+i, so a batch is reproducible for a given seed.

Example:
  eqsim batch -f simulation.yaml -n 5000 -w 8 --seed 1`,
	RunE: runBatch,
}

var (
	batchConfigPath string
	batchRuns       int
	batchWorkers    int
	batchSeed       uint64
	batchQuiet      bool
)

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	batchCmd.Flags().IntVarP(&batchRuns, "runs", "n", 1000, "number of simulations")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = GOMAXPROCS)")
	batchCmd.Flags().Uint64Var(&batchSeed, "seed", 0, "base seed (default: config seed or current time)")
	batchCmd.Flags().BoolVarP(&batchQuiet, "quiet", "q", false, "hide the progress bar")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(batchConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	seed := uint64(time.Now().UnixNano())
	switch {
	case cmd.Flags().Changed("seed"):
		seed = batchSeed
	case cfg.Simulation.Seed != nil:
		seed = *cfg.Simulation.Seed
	}

	opts := sim.BatchOptions{
		Runs:    batchRuns,
		Workers: batchWorkers,
		Seed:    seed,
		Logger:  log,
	}
	if !batchQuiet {
		bar := progressbar.NewOptions(batchRuns,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("simulating"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		opts.OnRunDone = func(int, sim.Result) { _ = bar.Add(1) }
	}

	sum, err := sim.RunBatch(cmd.Context(), cfg.SimConfig(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed: %d\n", seed)
	report.PrintBatch(out, sum)
	return nil
}
