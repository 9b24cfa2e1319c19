package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/francisatoyebi/housepulse/internal/app"
	"github.com/francisatoyebi/housepulse/internal/chart"
	"github.com/francisatoyebi/housepulse/internal/metrics"
	"github.com/francisatoyebi/housepulse/internal/sentiment"
	"github.com/francisatoyebi/housepulse/internal/server"
	"github.com/francisatoyebi/housepulse/internal/store"
)

var (
	servePort    string
	refreshEvery time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve archived runs and charts over HTTP",
	Long: `Exposes the run archive as a read-only JSON API together with the rendered
chart PNGs, health probes and Prometheus metrics. With --refresh the analysis
pipeline is re-run periodically so dashboards stay current while new CSVs
land in the data directory.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default from PORT)")
	serveCmd.Flags().DurationVar(&refreshEvery, "refresh", 0, "re-run analysis on this interval (0 disables)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	archive, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	renderer := chart.NewRenderer(cfg.OutputDir)
	registry := metrics.NewRegistry()

	srv := server.NewServer(archive, renderer, registry, []server.HealthCheck{
		{Name: "store", Check: archive.Ping},
	})

	if refreshEvery > 0 {
		analyzer, err := sentiment.NewAnalyzer(cfg.LexiconPath, cfg.EmojiLexiconPath)
		if err != nil {
			return err
		}
		svc := app.NewService(analyzer, clockwork.NewRealClock(), app.Options{
			Store:    archive,
			Renderer: renderer,
			Metrics:  metrics.NewAnalysisMetrics(registry),
			Workers:  cfg.Workers,
		})
		go runRefreshLoop(ctx, svc, refreshEvery)
	}

	port := cfg.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "port", port)
		errCh <- srv.Start(port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutdown signal received, cleaning up...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	return nil
}

// runRefreshLoop re-runs the pipeline on a fixed interval until the context
// is cancelled. A failed refresh keeps the previous run in place.
func runRefreshLoop(ctx context.Context, svc *app.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.Analyze(ctx, cfg.DataDir); err != nil {
				slog.Error("Scheduled analysis failed", "error", err)
			}
		}
	}
}
