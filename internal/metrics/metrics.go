// Package metrics exposes Prometheus counters for expense operations and
// HTTP traffic. A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "expenses"

// Import row outcomes.
const (
	RowImported = "imported"
	RowSkipped  = "skipped"
)

type Recorder struct {
	registry *prometheus.Registry

	expensesAdded   prometheus.Counter
	expensesDeleted prometheus.Counter
	addRejected     *prometheus.CounterVec
	importRows      *prometheus.CounterVec
	exports         prometheus.Counter
	settingsUpdates prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates a Recorder with its own registry, including Go runtime and
// process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: reg,
		expensesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "added_total",
			Help:      "Expenses added through the validated add path.",
		}),
		expensesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deleted_total",
			Help:      "Delete requests executed.",
		}),
		addRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "add_rejected_total",
			Help:      "Add requests rejected by validation, by field.",
		}, []string{"field"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Import rows processed, by outcome.",
		}, []string{"result"}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Completed exports.",
		}),
		settingsUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settings_updates_total",
			Help:      "Accepted preference updates.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		r.expensesAdded,
		r.expensesDeleted,
		r.addRejected,
		r.importRows,
		r.exports,
		r.settingsUpdates,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) ExpenseAdded() {
	if r != nil {
		r.expensesAdded.Inc()
	}
}

func (r *Recorder) ExpenseDeleted() {
	if r != nil {
		r.expensesDeleted.Inc()
	}
}

func (r *Recorder) AddRejected(field string) {
	if r == nil {
		return
	}
	if field == "" {
		field = "unknown"
	}
	r.addRejected.WithLabelValues(field).Inc()
}

// ImportFinished records the outcome counts of one import.
func (r *Recorder) ImportFinished(imported, skipped int) {
	if r == nil {
		return
	}
	r.importRows.WithLabelValues(RowImported).Add(float64(imported))
	r.importRows.WithLabelValues(RowSkipped).Add(float64(skipped))
}

func (r *Recorder) ExportFinished() {
	if r != nil {
		r.exports.Inc()
	}
}

func (r *Recorder) SettingsUpdated() {
	if r != nil {
		r.settingsUpdates.Inc()
	}
}

// ObserveHTTP records one served request.
func (r *Recorder) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
