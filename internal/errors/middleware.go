package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Middleware returns an Echo middleware that handles structured errors.
// It catches errors returned by handlers, converts them to appropriate HTTP
// responses, and counts them on reg by error type.
func Middleware(reg prometheus.Registerer) echo.MiddlewareFunc {
	errorsTotal := promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP errors by error type",
		},
		[]string{"type"},
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// Echo HTTPErrors (e.g. 404 routing) keep their status; let the
			// default handler deal with them.
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				errorsTotal.WithLabelValues(string(typeForStatus(httpErr.Code))).Inc()
				return err
			}

			structuredErr := AsStructuredError(err)
			errorsTotal.WithLabelValues(string(structuredErr.Type)).Inc()
			logError(c, structuredErr)

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

// typeForStatus maps an HTTP status code back to an error type, for counting
// errors that arrive as plain echo.HTTPErrors.
func typeForStatus(status int) ErrorType {
	switch {
	case status == http.StatusNotFound:
		return TypeNotFound
	case status < http.StatusInternalServerError:
		return TypeValidation
	default:
		return TypeInternal
	}
}

func logError(c echo.Context, err *Error) {
	attrs := []any{
		"type", err.Type,
		"message", err.Message,
		"method", c.Request().Method,
		"uri", c.Request().RequestURI,
	}
	if err.Cause != nil {
		attrs = append(attrs, "cause", err.Cause)
	}
	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	switch err.Type {
	case TypeInternal:
		slog.Error("Request failed", attrs...)
	default:
		slog.Warn("Request rejected", attrs...)
	}
}
