package metrics

import (
	"errors"

	coremetrics "github.com/coreflux/dispatchd/core/metrics"
)

// MultiSink fans records out to several sinks. Every sink is attempted; the
// errors are joined.
type MultiSink struct {
	sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink from the given sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordAssignments forwards the records to every sink.
func (m *MultiSink) RecordAssignments(recs []coremetrics.AssignmentRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordAssignments(recs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordBatch forwards the batch summary to every sink implementing
// BatchRecorder.
func (m *MultiSink) RecordBatch(rec coremetrics.BatchRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if br, ok := s.(coremetrics.BatchRecorder); ok {
			if err := br.RecordBatch(rec); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
