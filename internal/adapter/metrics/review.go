package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for ReviewMetrics.Outcomes.
const (
	OutcomeInvalid        = "invalid"
	OutcomeNotNegative    = "not_negative"
	OutcomeAlerted        = "alerted"
	OutcomeClassifyFailed = "classify_failed"
	OutcomePublishFailed  = "publish_failed"
)

// Dependency labels for ReviewMetrics.ExternalCallDuration.
const (
	DependencyComprehend = "comprehend"
	DependencySNS        = "sns"
)

// ReviewMetrics holds Prometheus metrics for the moderation pipeline.
// A nil *ReviewMetrics is valid and records nothing.
type ReviewMetrics struct {
	Outcomes             *prometheus.CounterVec
	Sentiments           *prometheus.CounterVec
	ExternalCallDuration *prometheus.HistogramVec
}

// NewReviewMetrics creates and registers review pipeline metrics on the given registry.
func NewReviewMetrics(reg prometheus.Registerer) *ReviewMetrics {
	m := &ReviewMetrics{
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_total",
			Help:      "Total number of review submissions, by outcome.",
		}, []string{"outcome"}),
		Sentiments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentiments_total",
			Help:      "Total number of classified reviews, by sentiment label.",
		}, []string{"sentiment"}),
		ExternalCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_call_duration_seconds",
			Help:      "Duration of calls to managed services in seconds.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"dependency", "result"}),
	}

	reg.MustRegister(m.Outcomes, m.Sentiments, m.ExternalCallDuration)
	return m
}

func (m *ReviewMetrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(outcome).Inc()
}

func (m *ReviewMetrics) ObserveSentiment(sentiment string) {
	if m == nil {
		return
	}
	m.Sentiments.WithLabelValues(sentiment).Inc()
}

func (m *ReviewMetrics) ObserveCall(dependency string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ExternalCallDuration.WithLabelValues(dependency, result).Observe(d.Seconds())
}
