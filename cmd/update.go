package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/profile-readme/internal/config"
	"github.com/naka-gawa/profile-readme/internal/readme"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Analyzes a user's repositories and rewrites the README sections",
	Long: `Fetches every repository of the user, detects technologies from languages and
manifest files, ranks the public projects and replaces the "Technology Stack"
and "Featured Projects" sections of the README. Missing sections are inserted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Configuration is checked before any request is made.
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(os.Stdout, cfg.Verbose)

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

		out := cmd.OutOrStdout()
		fmt.Fprint(out, renderRanking(report.Ranking))

		logger.Info("Updating README...", "path", cfg.Readme)
		changed, err := readme.NewUpdater(cfg.Readme, logger).Update(report.Badges, report.Ranking.Top)
		if errors.Is(err, readme.ErrDocumentNotFound) {
			printWarning(out, "%v, nothing was written", err)
			return nil
		}
		if err != nil {
			return err
		}
		if changed {
			printSuccess(out, "README updated with tech stack and featured projects!")
		} else {
			printInfo(out, "README already up to date")
		}
		printSuccess(out, "Tech analysis complete! Found %d technologies.", report.Detection.Usage.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringP("readme", "r", config.DefaultReadme, "Path of the README to update")
	if err := bindFlags(v, updateCmd.Flags(), map[string]string{"readme": "readme"}); err != nil {
		panic(err)
	}
}
