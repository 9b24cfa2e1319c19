package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/francisatoyebi/housepulse/internal/errors"
	"github.com/francisatoyebi/housepulse/internal/metrics"
)

func (s *Server) registerRoutes() {
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(errors.Middleware(s.registry))
	s.echo.Use(s.httpMetrics.Middleware())

	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)

	s.echo.GET("/api/runs", s.handleListRuns)
	s.echo.GET("/api/runs/latest", s.handleLatestRun)
	s.echo.GET("/api/runs/:id", s.handleGetRun)
	s.echo.GET("/charts/:name", s.handleChart)

	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
