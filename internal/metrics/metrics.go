// Package metrics exposes Prometheus instruments for the record store. The
// service layer observes every operation; embedding applications can collect
// them through the default registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service-level instruments.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	documents  *prometheus.GaugeVec
}

// New registers the instruments on the given registerer. Pass
// prometheus.DefaultRegisterer for production use or a private registry in
// tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicore",
			Name:      "operations_total",
			Help:      "Record store operations by name and outcome.",
		}, []string{"operation", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinicore",
			Name:      "operation_duration_seconds",
			Help:      "Record store operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		documents: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "clinicore",
			Name:      "documents",
			Help:      "Documents currently stored per collection.",
		}, []string{"collection"}),
	}
}

// Observe records one finished operation.
func (m *Metrics) Observe(operation string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operations.WithLabelValues(operation, status).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetDocuments updates the per-collection document gauge.
func (m *Metrics) SetDocuments(collection string, count int) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(collection).Set(float64(count))
}
