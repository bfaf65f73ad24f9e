package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsProcessed    *prometheus.CounterVec
	assignmentConfidence prometheus.Histogram
	candidatesEvaluated  prometheus.Histogram
	batchDuration        prometheus.Histogram
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Histogram, prometheus.Histogram, prometheus.Histogram) {
	reqs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_requests_processed_total",
			Help: "Number of dispatch requests processed per outcome",
		},
		[]string{"priority", "outcome"},
	)
	conf := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_assignment_confidence",
			Help:    "Composite score of committed assignments",
			Buckets: prometheus.LinearBuckets(0, 0.1, 13),
		},
	)
	cands := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_candidates_evaluated",
			Help:    "Eligible candidates evaluated per request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
	)
	dur := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_batch_duration_seconds",
			Help:    "Duration of one batch run",
			Buckets: prometheus.DefBuckets,
		},
	)
	return reqs, conf, cands, dur
}

func init() {
	requestsProcessed, assignmentConfidence, candidatesEvaluated, batchDuration = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(requestsProcessed, assignmentConfidence, candidatesEvaluated, batchDuration)
}

// ResetMetrics reinitializes metric collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	requestsProcessed, assignmentConfidence, candidatesEvaluated, batchDuration = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
