package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRouteAndStatus(t *testing.T) {
	m := New("test")
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/resources/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "nope")
		}
		return c.String(http.StatusOK, "ok")
	})

	for _, id := range []string{"a", "b", "missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/resources/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/resources/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/resources/:id", "404")))
}

func TestHandler_ServesRegistry(t *testing.T) {
	m := New("test")
	m.LoginsTotal.WithLabelValues(OutcomeSuccess).Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_logins_total{outcome="success"} 1`)
}

func TestObserve(t *testing.T) {
	m := New("test")
	denied := errors.New("denied")
	isDenied := func(err error) bool { return errors.Is(err, denied) }

	Observe(m.ContactTotal, nil, isDenied)
	Observe(m.ContactTotal, denied, isDenied)
	Observe(m.ContactTotal, errors.New("boom"), isDenied)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContactTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContactTotal.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContactTotal.WithLabelValues(OutcomeError)))
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("test")
		New("test")
	})
}
