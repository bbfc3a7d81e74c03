package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/pscheid92/reviewpulse/internal/adapter/metrics"
	apperrors "github.com/pscheid92/reviewpulse/internal/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithErrorMiddleware(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/sentiment", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := ErrorHandlingMiddleware()(handler)(c)
	require.NoError(t, err) // ErrorHandlingMiddleware handles the error, doesn't return it
	return rec
}

func TestMiddlewareWithStructuredError(t *testing.T) {
	rec := runWithErrorMiddleware(t, func(c echo.Context) error {
		return apperrors.ValidationError("Invalid request body").WithField("reason", "email is malformed")
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request body", resp.Message)
	assert.NotContains(t, rec.Body.String(), "malformed")
}

func TestMiddlewareWithWrappedStructuredError(t *testing.T) {
	rec := runWithErrorMiddleware(t, func(c echo.Context) error {
		return fmt.Errorf("submit: %w", apperrors.InternalError("An error occurred", errors.New("sns")))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"Message":"An error occurred"}`, rec.Body.String())
}

func TestMiddlewareWithStandardError(t *testing.T) {
	rec := runWithErrorMiddleware(t, func(c echo.Context) error {
		return errors.New("standard error")
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"Message":"internal server error"}`, rec.Body.String())
}

func TestMiddlewareWithNoError(t *testing.T) {
	rec := runWithErrorMiddleware(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", rec.Body.String())
}

func TestMiddlewarePassesThroughHTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := ErrorHandlingMiddleware()(func(c echo.Context) error {
		return echo.ErrUnauthorized
	})(c)

	require.ErrorIs(t, err, echo.ErrUnauthorized)
}

func TestMiddlewareAllErrorTypes(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperrors.Error
		wantStatus int
	}{
		{"validation", apperrors.ValidationError("invalid"), http.StatusBadRequest},
		{"not_found", apperrors.NotFoundError("missing"), http.StatusNotFound},
		{"internal", apperrors.InternalError("failed", errors.New("cause")), http.StatusInternalServerError},
		{"external", apperrors.ExternalError("api failed", errors.New("timeout")), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runWithErrorMiddleware(t, func(c echo.Context) error {
				return tt.err
			})

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.err.Message, resp.Message)
		})
	}
}

func TestHandleErrorWithNil(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/test", nil), httptest.NewRecorder())

	assert.NoError(t, HandleError(c, nil))
}

func TestServerMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(reg)
	srv := newTestServer(t, &mockReviewService{}, WithMetrics(httpMetrics, metrics.Handler(reg)))

	rec := postSentiment(t, srv, negativeBody, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.InDelta(t, 1.0, testutil.ToFloat64(httpMetrics.RequestsTotal.WithLabelValues(http.MethodPost, "/sentiment", "200")), 0.0001)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mrec := httptest.NewRecorder()
	srv.ServeHTTP(mrec, req)

	assert.Equal(t, http.StatusOK, mrec.Code)
	assert.Contains(t, mrec.Body.String(), "reviewpulse_http_requests_total")
}

func TestServerMetrics_RoutingErrorStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(reg)
	srv := newTestServer(t, &mockReviewService{}, WithMetrics(httpMetrics, metrics.Handler(reg)))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sentiment", nil))

	assertMessage(t, rec, http.StatusMethodNotAllowed, "Method Not Allowed")
	assert.InDelta(t, 1.0, testutil.ToFloat64(httpMetrics.RequestsTotal.WithLabelValues(http.MethodGet, "/sentiment", "405")), 0.0001)
	assert.InDelta(t, 0.0, testutil.ToFloat64(httpMetrics.RequestsTotal.WithLabelValues(http.MethodGet, "/sentiment", "200")), 0.0001)
}
