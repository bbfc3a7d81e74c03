package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_HasRuntimeCollectors(t *testing.T) {
	reg := NewRegistry()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestReviewMetrics_Outcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReviewMetrics(reg)

	m.ObserveOutcome(OutcomeAlerted)
	m.ObserveOutcome(OutcomeAlerted)
	m.ObserveOutcome(OutcomeInvalid)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.Outcomes.WithLabelValues(OutcomeAlerted)), 0.0001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues(OutcomeInvalid)), 0.0001)
}

func TestReviewMetrics_Sentiments(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReviewMetrics(reg)

	m.ObserveSentiment("NEGATIVE")

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Sentiments.WithLabelValues("NEGATIVE")), 0.0001)
}

func TestReviewMetrics_ObserveCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReviewMetrics(reg)

	m.ObserveCall(DependencyComprehend, 120*time.Millisecond, nil)
	m.ObserveCall(DependencySNS, 40*time.Millisecond, errors.New("throttled"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.ExternalCallDuration))
}

func TestReviewMetrics_NilIsNoop(t *testing.T) {
	var m *ReviewMetrics

	assert.NotPanics(t, func() {
		m.ObserveOutcome(OutcomeAlerted)
		m.ObserveSentiment("POSITIVE")
		m.ObserveCall(DependencySNS, time.Second, nil)
	})
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.POST("/sentiment", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"Message": "Review not negative"})
	})
	e.GET("/health/live", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sentiment", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, "/sentiment", "200")), 0.0001)
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.InFlightGauge), 0.0001)
}

func TestHTTPMetrics_RecordsRenderedErrorStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.POST("/sentiment", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sentiment", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sentiment", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, "/sentiment", "429")), 0.0001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/sentiment", "405")), 0.0001)
	assert.Equal(t, map[string]int{"429": 1, "405": 1, "404": 1}, requestsByStatus(t, reg))
}

func requestsByStatus(t *testing.T, reg *prometheus.Registry) map[string]int {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	byStatus := make(map[string]int)
	for _, f := range families {
		if f.GetName() != "reviewpulse_http_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status_code" {
					byStatus[label.GetValue()] += int(metric.GetCounter().GetValue())
				}
			}
		}
	}
	return byStatus
}
