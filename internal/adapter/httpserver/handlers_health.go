package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/reviewpulse/internal/platform/version"
)

// Readiness must answer within the kubelet probe period.
const (
	startupProbeTimeout   = 5 * time.Second
	readinessProbeTimeout = 2 * time.Second
)

// HealthCheck is a named dependency probe, e.g. the SNS topic lookup.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type healthReport struct {
	Status      string   `json:"status"`
	Passed      []string `json:"passed"`
	FailedCheck string   `json:"failed_check,omitempty"`
	Error       string   `json:"error,omitempty"`
}

type livenessReport struct {
	Status  string  `json:"status"`
	Service string  `json:"service"`
	Uptime  float64 `json:"uptime"`
}

func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health/startup", s.handleStartup)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
}

func (s *Server) handleStartup(c echo.Context) error {
	return s.respondWithChecks(c, startupProbeTimeout)
}

func (s *Server) handleReadiness(c echo.Context) error {
	return s.respondWithChecks(c, readinessProbeTimeout)
}

func (s *Server) handleLiveness(c echo.Context) error {
	report := livenessReport{
		Status:  "ok",
		Service: version.Service,
		Uptime:  s.clock.Since(s.startTime).Seconds(),
	}
	if err := c.JSON(http.StatusOK, report); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

func (s *Server) respondWithChecks(c echo.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
	defer cancel()

	report, healthy := s.runHealthChecks(ctx)
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	if err := c.JSON(status, report); err != nil {
		return fmt.Errorf("failed to send health response: %w", err)
	}
	return nil
}

// runHealthChecks runs the checks in order and stops at the first failure.
func (s *Server) runHealthChecks(ctx context.Context) (healthReport, bool) {
	report := healthReport{Status: "ready", Passed: []string{}}
	for _, hc := range s.healthChecks {
		if err := hc.Check(ctx); err != nil {
			slog.WarnContext(ctx, "Health check failed", "check", hc.Name, "error", err)
			report.Status = "unhealthy"
			report.FailedCheck = hc.Name
			report.Error = err.Error()
			return report, false
		}
		report.Passed = append(report.Passed, hc.Name)
	}
	return report, true
}

func (s *Server) handleVersion(c echo.Context) error {
	if err := c.JSON(http.StatusOK, version.Get()); err != nil {
		return fmt.Errorf("failed to write version response: %w", err)
	}
	return nil
}
