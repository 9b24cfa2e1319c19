package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/francisatoyebi/housepulse/internal/domain"
	"github.com/francisatoyebi/housepulse/internal/metrics"
)

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// ChartSource locates rendered chart files by name.
type ChartSource interface {
	Path(name string) string
}

// Server wraps the Echo instance serving the results API.
type Server struct {
	echo         *echo.Echo
	store        domain.RunStore
	charts       ChartSource
	registry     *prometheus.Registry
	httpMetrics  *metrics.HTTPMetrics
	healthChecks []HealthCheck
	startTime    time.Time
}

// NewServer creates the results API server.
func NewServer(store domain.RunStore, charts ChartSource, registry *prometheus.Registry, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:         e,
		store:        store,
		charts:       charts,
		registry:     registry,
		httpMetrics:  metrics.NewHTTPMetrics(registry),
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	s.registerRoutes()
	return s
}

// Start begins listening on the given port. Blocks until shutdown.
func (s *Server) Start(port string) error {
	if err := s.echo.Start(":" + port); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// ServeHTTP implements http.Handler, delegating to the Echo instance.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
