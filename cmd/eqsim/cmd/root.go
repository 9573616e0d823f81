package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/equitysim/pkg/logger"
)

var (
	logLevel string
	logJSON  bool

	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "eqsim",
	Short: "Fixed-fractional equity curve simulator",
	Long: `eqsim models the equity of a trader who risks a fixed share of the
account on every trade, with a fixed win rate and reward:risk ratio,
until the account reaches its target or is ruined.

It provides tools for:
  - Running a single simulation and printing its trade log and statistics
  - Monte-Carlo batches that estimate the probability of ruin
  - Exporting runs to CSV, SQLite or org-mode
  - Generating and validating configuration files`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(logLevel, logJSON)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
}
