package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeTimeout     = "timeout"
)

var completionLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "kitnetia",
		Subsystem: "chatbot",
		Name:      "completion_latency_seconds",
		Help:      "Latency of completion calls by mode and outcome",
		Buckets:   []float64{0.25, 0.5, 1, 2, 3, 5, 8, 10, 15, 20, 30, 45},
	},
	[]string{"mode", "outcome"},
)

var leadsQualified = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "kitnetia",
		Subsystem: "chatbot",
		Name:      "leads_qualified_total",
		Help:      "Replies that carried a qualification marker",
	},
)

var leadPersistenceFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "kitnetia",
		Subsystem: "chatbot",
		Name:      "lead_persistence_failures_total",
		Help:      "Qualification records that could not be saved",
	},
)

var fallbackReplies = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "kitnetia",
		Subsystem: "chatbot",
		Name:      "fallback_replies_total",
		Help:      "Replies replaced by the fallback message, by failure code",
	},
	[]string{"code"},
)

func init() {
	prometheus.MustRegister(completionLatency, leadsQualified, leadPersistenceFailures, fallbackReplies)
}

func ObserveCompletion(mode, outcome string, started time.Time) {
	completionLatency.WithLabelValues(mode, outcome).Observe(time.Since(started).Seconds())
}

func LeadQualified() {
	leadsQualified.Inc()
}

func LeadPersistenceFailed() {
	leadPersistenceFailures.Inc()
}

func FallbackReply(code string) {
	fallbackReplies.WithLabelValues(code).Inc()
}

// Handler serves the default registry for GET /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
