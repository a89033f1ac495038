// Package metrics exposes Prometheus counters for trim runs. Because the
// trimmer is a one-shot (or cron-driven) process rather than a long-lived
// server, metrics are written to a textfile for the node-exporter
// textfile collector instead of being served over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the trim-run metrics and their registry.
type Collector struct {
	registry *prometheus.Registry

	runs        prometheus.Counter
	rowsDeleted prometheus.Counter
	lastRun     prometheus.Gauge
	runDuration prometheus.Gauge
}

// NewCollector creates a collector registering its metrics under the
// given namespace in registry. If registry is nil a fresh one is used.
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "countme"
	}

	c := &Collector{
		registry: registry,
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trim",
			Name:      "runs_total",
			Help:      "Total number of completed trim runs.",
		}),
		rowsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trim",
			Name:      "rows_deleted_total",
			Help:      "Total number of raw-event rows deleted by trim runs.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "trim",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix timestamp of the last completed trim run.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "trim",
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last completed trim run.",
		}),
	}

	registry.MustRegister(c.runs, c.rowsDeleted, c.lastRun, c.runDuration)

	return c
}

// RecordRun records one completed trim run.
func (c *Collector) RecordRun(rowsDeleted int64, duration time.Duration, finished time.Time) {
	c.runs.Inc()
	c.rowsDeleted.Add(float64(rowsDeleted))
	c.lastRun.Set(float64(finished.Unix()))
	c.runDuration.Set(duration.Seconds())
}

// WriteTextfile atomically writes the registry's current state to path in
// the Prometheus text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
