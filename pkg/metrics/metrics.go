// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// NegotiationsTotal tracks completed negotiations by outcome.
	NegotiationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "negotiations_total",
			Help: "Completed negotiations by terminal status",
		},
		[]string{"status"},
	)

	// NegotiationRounds tracks how many rounds negotiations take to terminate.
	NegotiationRounds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "negotiation_rounds",
			Help:    "Rounds used per negotiation before a terminal state",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10},
		},
	)

	// DialogueDuration tracks dialogue-generation latency per turn.
	DialogueDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dialogue_turn_duration_seconds",
			Help:    "Dialogue generation latency per negotiation turn",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"model", "status"},
	)

	// DialogueTokensTotal tracks tokens consumed by dialogue generation.
	DialogueTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_tokens_total",
			Help: "Tokens processed by dialogue generation",
		},
		[]string{"model", "direction"},
	)

	// SessionsActive tracks active WebSocket negotiation sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "negotiation_sessions_active",
			Help: "Number of active negotiation WebSocket sessions",
		},
	)

	// FragmentsDropped tracks fragments coalesced or dropped on backpressure.
	FragmentsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_fragments_dropped_total",
			Help: "Dialogue fragments dropped due to slow consumers",
		},
	)

	// RoadmapsTotal tracks roadmap synthesis requests by result.
	RoadmapsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadmaps_total",
			Help: "Roadmap synthesis requests by result",
		},
		[]string{"result"},
	)

	// OnboardingsTotal tracks mentee onboarding submissions.
	OnboardingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onboardings_total",
			Help: "Mentee onboarding submissions accepted",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordNegotiation records a terminal negotiation outcome.
func RecordNegotiation(status string, rounds int) {
	NegotiationsTotal.WithLabelValues(status).Inc()
	NegotiationRounds.Observe(float64(rounds))
}

// RecordDialogueTurn records one dialogue-generation call.
func RecordDialogueTurn(model, status string, duration float64, tokensIn, tokensOut int) {
	DialogueDuration.WithLabelValues(model, status).Observe(duration)
	DialogueTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	DialogueTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}

// IncrementSessions increments the active session count.
func IncrementSessions() {
	SessionsActive.Inc()
}

// DecrementSessions decrements the active session count.
func DecrementSessions() {
	SessionsActive.Dec()
}
