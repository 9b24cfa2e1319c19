package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/francisatoyebi/housepulse/internal/app"
	"github.com/francisatoyebi/housepulse/internal/chart"
	"github.com/francisatoyebi/housepulse/internal/report"
	"github.com/francisatoyebi/housepulse/internal/sentiment"
	"github.com/francisatoyebi/housepulse/internal/store"
)

var (
	analyzeWorkers int
	noSummary      bool
	noCharts       bool
	noArchive      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis pipeline over the data directory",
	Long: `Loads every contestant CSV in the data directory, cleans and scores the
posts, renders the comparison charts, archives the run, and prints a ranked
summary with the elimination prediction.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "number of contestants scored concurrently (default from WORKERS)")
	analyzeCmd.Flags().BoolVar(&noSummary, "no-summary", false, "skip the text summary")
	analyzeCmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip chart rendering")
	analyzeCmd.Flags().BoolVar(&noArchive, "no-archive", false, "skip archiving the run")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, err := sentiment.NewAnalyzer(cfg.LexiconPath, cfg.EmojiLexiconPath)
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	opts := app.Options{Workers: cfg.Workers}
	if cmd.Flags().Changed("workers") {
		opts.Workers = analyzeWorkers
	}

	if !noCharts {
		opts.Renderer = chart.NewRenderer(cfg.OutputDir)
	}

	if !noArchive {
		archive, err := store.Open(ctx, cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer archive.Close()
		opts.Store = archive
	}

	svc := app.NewService(analyzer, clock, opts)

	run, err := svc.Analyze(ctx, cfg.DataDir)
	if err != nil {
		return err
	}

	if !noSummary {
		printer := report.NewPrinter(cmd.OutOrStdout(), clock)
		if err := printer.Print(run); err != nil {
			return err
		}
	}

	if !noCharts {
		fmt.Fprintf(cmd.OutOrStdout(), "Charts written to %s\n", cfg.OutputDir)
	}

	return nil
}
