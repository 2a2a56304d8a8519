// Package metrics exposes the Prometheus instrumentation for the
// evaluation worker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BatchesTotal counts completed batches by language and whether
	// compilation succeeded.
	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judgeworker_batches_total",
			Help: "Total number of batches evaluated",
		},
		[]string{"language", "compilation_success"},
	)

	// TestCasesTotal counts individual test case runs by verdict.
	TestCasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judgeworker_test_cases_total",
			Help: "Total number of test cases evaluated, by verdict",
		},
		[]string{"language", "verdict"},
	)

	// BatchDuration tracks the wall-clock duration of a whole batch.
	BatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "judgeworker_batch_duration_seconds",
			Help:    "Duration of a whole batch evaluation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
		[]string{"language"},
	)

	// BatchesInFlight tracks the number of batches currently executing.
	BatchesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "judgeworker_batches_in_flight",
			Help: "Number of batches currently being evaluated",
		},
	)

	// SupervisorFailures counts infrastructure failures in the process
	// supervisor (a child that could not be spawned) — never user-code
	// faults. Failures to kill a child are not counted.
	SupervisorFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "judgeworker_supervisor_failures_total",
			Help: "Total number of process supervisor infrastructure failures",
		},
	)

	// CallbackFailures counts failed attempts to deliver a BatchResult
	// to the orchestrator callback.
	CallbackFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "judgeworker_callback_failures_total",
			Help: "Total number of failed orchestrator callback deliveries",
		},
	)
)
