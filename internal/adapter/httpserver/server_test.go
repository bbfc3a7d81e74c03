package httpserver

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/reviewpulse/internal/app"
	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/platform/config"
)

// --- Mock implementations ---

type mockReviewService struct {
	submitReviewFn func(ctx context.Context, payload []byte, base64Encoded bool) (app.Outcome, error)
}

func (m *mockReviewService) SubmitReview(ctx context.Context, payload []byte, base64Encoded bool) (app.Outcome, error) {
	if m.submitReviewFn != nil {
		return m.submitReviewFn(ctx, payload, base64Encoded)
	}
	return app.OutcomeNotNegative, nil
}

type mockClassifier struct {
	sentiment domain.Sentiment
	err       error
	calls     int
}

func (m *mockClassifier) DetectSentiment(_ context.Context, _ string) (domain.Sentiment, error) {
	m.calls++
	return m.sentiment, m.err
}

type mockNotifier struct {
	err    error
	events []domain.NotificationEvent
}

func (m *mockNotifier) Notify(_ context.Context, event domain.NotificationEvent) error {
	m.events = append(m.events, event)
	return m.err
}

// --- Test helpers ---

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		TopicTargetARN: "arn:aws:sns:us-west-2:123456789012:reviews",
		AWSRegion:      "us-west-2",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
}

func newTestServer(t *testing.T, reviews reviewService, opts ...Option) *Server {
	t.Helper()
	return NewServer(testConfig(), reviews, clockwork.NewFakeClock(), opts...)
}

// newPipelineServer wires the real app.Service behind the server so tests
// exercise the full request path with only the AWS capabilities mocked.
func newPipelineServer(t *testing.T, c *mockClassifier, n *mockNotifier) *Server {
	t.Helper()
	svc := app.NewService(c, n, nil, clockwork.NewFakeClock())
	return newTestServer(t, svc)
}
