// Package lambda adapts the review service to API Gateway proxy events so the
// same binary logic can run on AWS Lambda.
package lambda

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pscheid92/reviewpulse/internal/app"
	"github.com/pscheid92/reviewpulse/internal/platform/correlation"
	apperrors "github.com/pscheid92/reviewpulse/internal/platform/errors"
)

type reviewService interface {
	SubmitReview(ctx context.Context, payload []byte, base64Encoded bool) (app.Outcome, error)
}

type Handler struct {
	reviews reviewService
}

func NewHandler(reviews reviewService) *Handler {
	return &Handler{reviews: reviews}
}

// Handle always returns a structured response; the error result is only
// non-nil if the response body itself cannot be encoded.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx = correlation.WithID(ctx, correlation.FromInbound(req.RequestContext.RequestID))

	outcome, err := h.reviews.SubmitReview(ctx, []byte(req.Body), req.IsBase64Encoded)
	if err != nil {
		structured := apperrors.AsStructuredError(err)
		logError(ctx, req, structured)
		return respond(structured.HTTPStatus(), structured.ToResponse())
	}

	slog.InfoContext(ctx, "Request", "method", req.HTTPMethod, "path", req.Path, "status", http.StatusOK)
	return respond(http.StatusOK, app.Response{Message: outcome.Message()})
}

func respond(status int, body any) (events.APIGatewayProxyResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(encoded),
	}, nil
}

func logError(ctx context.Context, req events.APIGatewayProxyRequest, err *apperrors.Error) {
	attrs := []any{
		"error_type", err.Type,
		"method", req.HTTPMethod,
		"path", req.Path,
		"status", err.HTTPStatus(),
	}
	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}
	if err.Cause != nil {
		attrs = append(attrs, "cause", err.Cause)
	}

	if err.Type == apperrors.TypeValidation {
		slog.InfoContext(ctx, "Validation error", attrs...)
		return
	}
	slog.ErrorContext(ctx, "Request failed", attrs...)
}
