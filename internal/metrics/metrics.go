// Package metrics defines the prometheus collectors for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_submissions_total",
			Help: "Total number of assessment submissions by path and outcome",
		},
		[]string{"path", "outcome"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_recommendations_total",
			Help: "Total number of recommendations produced by source",
		},
		[]string{"source"},
	)

	ProviderFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_provider_failures_total",
			Help: "Total number of generative provider failures by reason",
		},
		[]string{"reason"},
	)

	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "career_provider_call_duration_seconds",
			Help:    "Duration of generative provider calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"outcome"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	PersistenceFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "career_persistence_failures_total",
			Help: "Total number of submission results that could not be stored",
		},
	)
)

// Submission outcomes
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Recorder reports recommendation activity to the package collectors.
type Recorder struct{}

// ObserveProviderCall records the duration of one provider call.
func (Recorder) ObserveProviderCall(d time.Duration, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	ProviderCallDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// CountRecommendation counts a recommendation by source.
func (Recorder) CountRecommendation(source string) {
	RecommendationsTotal.WithLabelValues(source).Inc()
}

// CountProviderFailure counts a provider failure by reason.
func (Recorder) CountProviderFailure(reason string) {
	ProviderFailuresTotal.WithLabelValues(reason).Inc()
}

// CountSubmission counts one submission.
func CountSubmission(path, outcome string) {
	if path == "" {
		path = "none"
	}
	SubmissionsTotal.WithLabelValues(path, outcome).Inc()
}
