// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/naka-gawa/profile-readme/internal/config"
	"github.com/naka-gawa/profile-readme/internal/gateway"
	"github.com/naka-gawa/profile-readme/internal/usecase"
)

var (
	cfgFile string
	// v collects flags, environment and config file values for every command.
	v = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "profile-readme",
	Short: "A CLI tool to keep a GitHub profile README up to date.",
	Long: `profile-readme analyzes every repository of a GitHub user, detects the
technologies they use and ranks their most notable projects.
The results are written into the "Technology Stack" and "Featured Projects"
sections of a profile README, or printed as JSON.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Persistent flags are available to all commands.
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	flags.StringVar(&cfgFile, "config", "", "Config file (default is ./"+config.FileName+".yaml)")
	flags.StringP("user", "u", "", "Target GitHub user name (required)")
	flags.IntP("top", "n", config.DefaultTop, "Number of featured projects")
	flags.String("api-url", config.DefaultAPIURL, "GitHub REST API base URL")
	flags.String("graphql-url", "", "GitHub GraphQL endpoint (default github.com)")

	if err := bindFlags(v, flags, map[string]string{
		"verbose":     "verbose",
		"user":        "user",
		"top":         "top",
		"api_url":     "api-url",
		"graphql_url": "graphql-url",
	}); err != nil {
		panic(err)
	}
}

// bindFlags binds each config key to the flag of the given name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("cannot bind %q: flag --%s is not defined", key, name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("cannot bind %q to --%s: %w", key, name, err)
		}
	}
	return nil
}

// newLogger creates a timestamped logger, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// loadConfig resolves and validates the settings. It never touches the network.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newAggregator injects the GitHub gateway into the analysis use case.
func newAggregator(cfg *config.Config, logger *log.Logger) (*usecase.Aggregator, error) {
	githubGateway, err := gateway.NewGitHubGateway(cfg.Token, gateway.Endpoints{
		APIURL:     cfg.APIURL,
		GraphQLURL: cfg.GraphQLURL,
	}, logger)
	if err != nil {
		return nil, err
	}
	return usecase.NewAggregator(githubGateway, logger, cfg.Top), nil
}

// interruptible cancels the returned context on Ctrl-C.
func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}
