// Package metrics records run-level metrics for csv2ddl conversions.
//
// Callers depend only on the narrow Backend interface; concrete systems
// (Prometheus Pushgateway, DogStatsD) live in subpackages. The global
// backend defaults to a no-op, so instrumentation is always safe to call.
package metrics

import "time"

// Metric names.
const (
	StepTotal           = "csv2ddl_step_total"
	StepDurationSeconds = "csv2ddl_step_duration_seconds"
	ColumnsTotal        = "csv2ddl_columns_total"
	RowsTotal           = "csv2ddl_rows_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep counts one pipeline step (read, infer, map, render, write) and
// its duration, labeled by outcome.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordColumns counts inferred columns of one kind (string, integer,
// float, date).
func RecordColumns(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(ColumnsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordRows counts source rows; kind is "sampled" or "skipped".
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
