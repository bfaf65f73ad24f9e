package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/coreflux/dispatchd/core/metrics"
)

// PromSink records assignment events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	confidence  *prometheus.HistogramVec
	batchSize   prometheus.Histogram
}

// NewPromSink registers assignment metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_events_total",
		Help: "Total number of committed technician assignments",
	}, []string{"priority", "skill"})
	confidence := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assignment_confidence_score",
		Help:    "Composite confidence score of committed assignments",
		Buckets: prometheus.LinearBuckets(0, 0.1, 13),
	}, []string{"priority"})
	batchSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "batch_assigned_requests",
		Help:    "Requests assigned per batch run",
		Buckets: prometheus.LinearBuckets(0, 1, 11),
	})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(confidence); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			confidence = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(batchSize); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			batchSize = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{assignments: assignments, confidence: confidence, batchSize: batchSize}, nil
}

// RecordAssignments increments the counter and confidence histogram for each
// committed assignment.
func (s *PromSink) RecordAssignments(recs []coremetrics.AssignmentRecord) error {
	for _, r := range recs {
		s.assignments.WithLabelValues(string(r.Priority), r.Skill).Inc()
		s.confidence.WithLabelValues(string(r.Priority)).Observe(r.Score)
	}
	return nil
}

// RecordBatch records the per-batch assignment count.
func (s *PromSink) RecordBatch(rec coremetrics.BatchRecord) error {
	s.batchSize.Observe(float64(rec.Assigned))
	return nil
}

// StartPromServer exposes /metrics on the given port and blocks.
func StartPromServer(port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(":"+port, mux)
}
