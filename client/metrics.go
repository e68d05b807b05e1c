package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialecho_client",
			Name:      "requests_total",
			Help:      "Post API calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "socialecho_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of post API calls, including failed ones.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// outcome labels
const (
	outcomeOK           = "ok"
	outcomeServerError  = "server_error"
	outcomeUnknownError = "unknown_error"
)

func outcomeOf(res Result) string {
	switch {
	case res.Err == nil:
		return outcomeOK
	case res.Err.Kind == ServerReported:
		return outcomeServerError
	default:
		return outcomeUnknownError
	}
}

func observe(op string, res Result, elapsed time.Duration) {
	requestsTotal.WithLabelValues(op, outcomeOf(res)).Inc()
	requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}
