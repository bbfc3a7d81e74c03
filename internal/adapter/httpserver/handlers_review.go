package httpserver

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/reviewpulse/internal/app"
	apperrors "github.com/pscheid92/reviewpulse/internal/platform/errors"
)

const (
	// maxReviewBodyBytes bounds the request body; Comprehend rejects review
	// text above 5 KB anyway.
	maxReviewBodyBytes = 64 << 10

	// headerTransferEncoding marks a base64-encoded body, mirroring the
	// isBase64Encoded flag of API Gateway proxy events.
	headerTransferEncoding = "Content-Transfer-Encoding"
)

func (s *Server) registerReviewRoutes() {
	s.echo.POST("/sentiment", s.handleSentiment, newRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst))
}

func (s *Server) handleSentiment(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxReviewBodyBytes+1))
	if err != nil {
		return apperrors.ValidationError(app.MessageInvalidBody).WithField("reason", err.Error())
	}
	if len(body) > maxReviewBodyBytes {
		return apperrors.ValidationError(app.MessageInvalidBody).WithField("reason", "body too large")
	}

	base64Encoded := strings.EqualFold(c.Request().Header.Get(headerTransferEncoding), "base64")

	outcome, err := s.reviews.SubmitReview(c.Request().Context(), body, base64Encoded)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, app.Response{Message: outcome.Message()}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
