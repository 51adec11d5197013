// Package metrics exposes Prometheus counters for file deletions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "imgbed"

// Deletion results.
const (
	ResultDeleted     = "deleted"
	ResultDegraded    = "degraded"
	ResultNotFound    = "not_found"
	ResultConfigError = "config_error"
	ResultFailed      = "failed"
)

// Metrics holds the service counters. A nil *Metrics records nothing.
type Metrics struct {
	registry  *prometheus.Registry
	deletions *prometheus.CounterVec
	telegram  *prometheus.CounterVec
}

// New creates the counters on a fresh registry that also carries Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletions_total",
			Help:      "File deletion requests by backend and result.",
		}, []string{"backend", "result"}),
		telegram: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telegram_message_deletes_total",
			Help:      "Best-effort Telegram message deletions by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.deletions,
		m.telegram,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Deletion counts one deletion request. backend is empty when the file was
// never resolved.
func (m *Metrics) Deletion(backend, result string) {
	if m == nil {
		return
	}
	if backend == "" {
		backend = "unknown"
	}
	m.deletions.WithLabelValues(backend, result).Inc()
}

// TelegramDelete counts one attempted Telegram message deletion.
func (m *Metrics) TelegramDelete(ok bool) {
	if m == nil {
		return
	}
	result := "failed"
	if ok {
		result = "deleted"
	}
	m.telegram.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
