package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Analyzes a user's repositories and outputs the report as JSON",
	Long: `Runs the same analysis as update, including technology usage, badges, the
ranking with its score summary and every skipped request, and prints the result
in JSON format. The README is never written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Logs go to standard error so the JSON on standard output stays parseable.
		logger := newLogger(os.Stderr, cfg.Verbose)

		ctx, stop := interruptible(cmd)
		defer stop()

		aggregator, err := newAggregator(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		report, err := aggregator.Aggregate(ctx, cfg.User)
		if err != nil {
			return fmt.Errorf("failed to analyze repositories: %w", err)
		}

		// Marshal the report into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
