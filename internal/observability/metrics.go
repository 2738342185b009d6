package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "interview",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by endpoint.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	llmCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "llm_calls_total",
		Help:      "LLM backend calls by outcome.",
	}, []string{"outcome"})

	llmDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "interview",
		Name:      "llm_call_duration_seconds",
		Help:      "LLM backend call latency.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "interview",
		Name:      "active_sessions",
		Help:      "Interview sessions currently active.",
	})
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(endpoint, method, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
	httpDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RecordLLMCall records one backend call and its outcome ("ok" or "error").
func RecordLLMCall(outcome string, elapsed time.Duration) {
	llmCalls.WithLabelValues(outcome).Inc()
	llmDuration.Observe(elapsed.Seconds())
}

// SessionStarted / SessionEnded track the active-session gauge.
func SessionStarted() { activeSessions.Inc() }
func SessionEnded()   { activeSessions.Dec() }
