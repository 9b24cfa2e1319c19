package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/francisatoyebi/housepulse/internal/chart"
	"github.com/francisatoyebi/housepulse/internal/domain"
	apperrors "github.com/francisatoyebi/housepulse/internal/errors"
	"github.com/francisatoyebi/housepulse/internal/platform/version"
)

const (
	readinessProbeTimeout = 5 * time.Second

	defaultListLimit = 20
	maxListLimit     = 100
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()

	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessProbeTimeout)
	defer cancel()

	for _, hc := range s.healthChecks {
		if err := hc.Check(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"check":  hc.Name,
				"error":  err.Error(),
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, version.Get())
}

func (s *Server) handleListRuns(c echo.Context) error {
	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apperrors.ValidationError("limit must be a positive integer").
				WithContext("limit", raw)
		}
		limit = min(parsed, maxListLimit)
	}

	runs, err := s.store.ListRuns(c.Request().Context(), limit)
	if err != nil {
		return apperrors.InternalError("failed to list runs", err)
	}
	if runs == nil {
		runs = []domain.Run{}
	}

	return c.JSON(http.StatusOK, runs)
}

func (s *Server) handleLatestRun(c echo.Context) error {
	run, err := s.store.LatestRun(c.Request().Context())
	if errors.Is(err, domain.ErrNoRuns) {
		return apperrors.NotFoundError("no runs archived yet")
	}
	if err != nil {
		return apperrors.InternalError("failed to load latest run", err)
	}

	return c.JSON(http.StatusOK, run)
}

func (s *Server) handleGetRun(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid run id").WithContext("id", c.Param("id"))
	}

	run, err := s.store.GetRun(c.Request().Context(), id)
	if errors.Is(err, domain.ErrRunNotFound) {
		return apperrors.NotFoundError("run not found").WithContext("id", id.String())
	}
	if err != nil {
		return apperrors.InternalError("failed to load run", err)
	}

	return c.JSON(http.StatusOK, run)
}

// handleChart serves a rendered chart PNG. Names are allowlisted; the chart
// directory is not browsable.
func (s *Server) handleChart(c echo.Context) error {
	name := c.Param("name")
	if name != chart.PieFileName && name != chart.BarFileName {
		return apperrors.NotFoundError("unknown chart").WithContext("name", name)
	}

	path := s.charts.Path(name)
	if _, err := os.Stat(path); err != nil {
		return apperrors.NotFoundError(fmt.Sprintf("chart %s not rendered yet", name))
	}

	return c.File(path)
}
