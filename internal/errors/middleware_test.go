package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(reg prometheus.Registerer) *echo.Echo {
	e := echo.New()
	e.Use(Middleware(reg))

	e.GET("/bad", func(c echo.Context) error {
		return ValidationError("bad input")
	})
	e.GET("/boom", func(c echo.Context) error {
		return InternalError("boom", assert.AnError)
	})
	e.GET("/teapot", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "teapot")
	})

	return e
}

func doMiddlewareRequest(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareStructuredErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := newTestEcho(reg)

	rec := doMiddlewareRequest(e, "/bad")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")

	rec = doMiddlewareRequest(e, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal")
}

func TestMiddlewareCountsOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := newTestEcho(reg)

	doMiddlewareRequest(e, "/bad")
	doMiddlewareRequest(e, "/bad")
	doMiddlewareRequest(e, "/boom")

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, fam := range families {
		if fam.GetName() == "http_errors_total" {
			found = true
		}
	}
	assert.True(t, found, "http_errors_total must be scrapeable from the given registry")
}

func TestMiddlewareMapsEchoHTTPErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := newTestEcho(reg)

	// route miss reaches echo's default handler as a 404 HTTPError
	rec := doMiddlewareRequest(e, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doMiddlewareRequest(e, "/teapot")
	assert.Equal(t, http.StatusTeapot, rec.Code)

	count := func(label string) float64 {
		families, err := reg.Gather()
		require.NoError(t, err)
		for _, fam := range families {
			if fam.GetName() != "http_errors_total" {
				continue
			}
			for _, m := range fam.GetMetric() {
				for _, l := range m.GetLabel() {
					if l.GetName() == "type" && l.GetValue() == label {
						return m.GetCounter().GetValue()
					}
				}
			}
		}
		return 0
	}

	assert.Equal(t, 1.0, count("not_found"))
	assert.Equal(t, 1.0, count("validation"))
	assert.Equal(t, 0.0, count("internal"))
}

func TestTypeForStatus(t *testing.T) {
	assert.Equal(t, TypeNotFound, typeForStatus(http.StatusNotFound))
	assert.Equal(t, TypeValidation, typeForStatus(http.StatusBadRequest))
	assert.Equal(t, TypeValidation, typeForStatus(http.StatusTeapot))
	assert.Equal(t, TypeInternal, typeForStatus(http.StatusInternalServerError))
	assert.Equal(t, TypeInternal, typeForStatus(http.StatusBadGateway))
}
