package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/reviewpulse/internal/adapter/metrics"
	"github.com/pscheid92/reviewpulse/internal/domain"
	apperrors "github.com/pscheid92/reviewpulse/internal/platform/errors"
)

// Client-facing messages. They are part of the POST /sentiment contract.
const (
	MessageInvalidBody = "Invalid request body"
	MessageNotNegative = "Review not negative"
	MessageAlerted     = "Review was negative and was alerted upon"
	MessageError       = "An error occurred"
)

// Outcome is the result of a successfully processed submission.
type Outcome int

const (
	OutcomeNotNegative Outcome = iota + 1
	OutcomeAlerted
)

func (o Outcome) Message() string {
	switch o {
	case OutcomeNotNegative:
		return MessageNotNegative
	case OutcomeAlerted:
		return MessageAlerted
	default:
		return MessageError
	}
}

// Response is the JSON body for every POST /sentiment reply.
type Response struct {
	Message string `json:"Message"`
}

// Service orchestrates review moderation. It holds only the injected
// capability handles, so one instance serves all concurrent requests.
type Service struct {
	classifier domain.SentimentClassifier
	notifier   domain.Notifier
	metrics    *metrics.ReviewMetrics
	clock      clockwork.Clock
}

// NewService wires the classifier and notifier created once at process start.
// m may be nil.
func NewService(classifier domain.SentimentClassifier, notifier domain.Notifier, m *metrics.ReviewMetrics, clock clockwork.Clock) *Service {
	return &Service{
		classifier: classifier,
		notifier:   notifier,
		metrics:    m,
		clock:      clock,
	}
}

// SubmitReview decodes a raw request body and moderates it.
// Errors are *apperrors.Error values carrying the client message.
func (s *Service) SubmitReview(ctx context.Context, payload []byte, base64Encoded bool) (Outcome, error) {
	submission, err := DecodeSubmission(payload, base64Encoded)
	if err != nil {
		s.metrics.ObserveOutcome(metrics.OutcomeInvalid)
		return 0, apperrors.ValidationError(MessageInvalidBody).WithField("reason", err.Error())
	}
	return s.Moderate(ctx, submission)
}

// Moderate validates the submission, classifies the review text and publishes
// a notification when the sentiment is NEGATIVE. At most one publish attempt
// is made.
func (s *Service) Moderate(ctx context.Context, submission domain.ReviewSubmission) (Outcome, error) {
	if err := ValidateSubmission(submission); err != nil {
		s.metrics.ObserveOutcome(metrics.OutcomeInvalid)
		return 0, apperrors.ValidationError(MessageInvalidBody).WithField("reason", err.Error())
	}

	sentiment, err := s.classify(ctx, submission.Review)
	if err != nil {
		s.metrics.ObserveOutcome(metrics.OutcomeClassifyFailed)
		return 0, apperrors.ExternalError(MessageError, err).WithField("dependency", metrics.DependencyComprehend)
	}
	s.metrics.ObserveSentiment(string(sentiment))

	if !sentiment.IsNegative() {
		slog.DebugContext(ctx, "Review not negative", "sentiment", sentiment)
		s.metrics.ObserveOutcome(metrics.OutcomeNotNegative)
		return OutcomeNotNegative, nil
	}

	if err := s.notify(ctx, domain.NewNotificationEvent(submission)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish negative review notification", "error", err)
		s.metrics.ObserveOutcome(metrics.OutcomePublishFailed)
		return 0, apperrors.InternalError(MessageError, err).WithField("dependency", metrics.DependencySNS)
	}

	slog.InfoContext(ctx, "Negative review alerted")
	s.metrics.ObserveOutcome(metrics.OutcomeAlerted)
	return OutcomeAlerted, nil
}

func (s *Service) classify(ctx context.Context, text string) (domain.Sentiment, error) {
	start := s.clock.Now()
	sentiment, err := s.classifier.DetectSentiment(ctx, text)
	if err == nil && !sentiment.Valid() {
		err = fmt.Errorf("%w: %q", domain.ErrUnknownSentiment, sentiment)
	}
	s.metrics.ObserveCall(metrics.DependencyComprehend, s.clock.Since(start), err)
	return sentiment, err
}

func (s *Service) notify(ctx context.Context, event domain.NotificationEvent) error {
	start := s.clock.Now()
	err := s.notifier.Notify(ctx, event)
	s.metrics.ObserveCall(metrics.DependencySNS, s.clock.Since(start), err)
	return err
}
