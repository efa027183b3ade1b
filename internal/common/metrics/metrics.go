// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_chat_requests_total",
			Help: "Total number of chat requests by final status",
		},
		[]string{"status"},
	)

	ChatRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_chat_requests_failed_total",
			Help: "Total number of chat requests that ended in error",
		},
		[]string{"stage", "error_code"},
	)

	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_chat_request_duration_seconds",
			Help: "End-to-end chat request duration in seconds",
		},
		[]string{"status"},
	)

	IntentClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_intents_classified_total",
			Help: "Total number of classified intents by label",
		},
		[]string{"intent"},
	)

	EscalationsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_escalations_saved_total",
			Help: "Total number of questions forwarded to the escalation sink",
		},
		[]string{"reason"},
	)

	RetrievalQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_retrieval_queries_total",
			Help: "Total number of vector index queries by outcome",
		},
		[]string{"outcome"},
	)

	RequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "assistant_requests_in_flight",
			Help: "Number of chat requests currently being processed",
		},
		[]string{"endpoint"},
	)
)
