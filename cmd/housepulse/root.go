package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/francisatoyebi/housepulse/internal/config"
	"github.com/francisatoyebi/housepulse/internal/logging"
)

var (
	// Global flags, overriding the environment when set
	dataDir   string
	outputDir string
	dbPath    string
	logLevel  string
	logFormat string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "housepulse",
	Short: "Sentiment-based elimination predictions for reality-show contestants",
	Long: `housepulse scores pre-collected social-media posts about reality-show
contestants for sentiment, aggregates the scores into per-contestant ratings,
renders comparison charts, and predicts the contestant most likely to be
eliminated.

Input is a directory of CSV files, one per contestant, with date, tweet and
urls columns. Every run is archived locally so past weeks stay comparable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = dataDir
		}
		if cmd.Flags().Changed("output-dir") {
			cfg.OutputDir = outputDir
		}
		if cmd.Flags().Changed("db") {
			cfg.DatabasePath = dbPath
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = logFormat
		}

		logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory containing contestant CSV files")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "directory for rendered charts")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path of the run archive database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
