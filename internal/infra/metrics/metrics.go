// Package metrics declares the service's Prometheus collectors. Collectors
// register themselves on the default registry via promauto; the api package
// exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerOps counts ledger engine operations by name and outcome ("ok" or
// "error").
var LedgerOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wattmarket_ledger_operations_total",
	Help: "Ledger engine operations by operation name and outcome.",
}, []string{"op", "outcome"})

// TxRetries counts storage transactions retried after a serialization
// failure or deadlock.
var TxRetries = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wattmarket_tx_retries_total",
	Help: "Database transactions retried after serialization conflicts.",
})

// HTTPRequestDuration observes request latency per route and status class.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "wattmarket_http_request_duration_seconds",
	Help:    "HTTP request latency by method, route pattern and status.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// ObserveOp records one engine operation outcome.
func ObserveOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	LedgerOps.WithLabelValues(op, outcome).Inc()
}
