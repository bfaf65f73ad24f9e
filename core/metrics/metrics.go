package metrics

import (
	"time"

	"github.com/coreflux/dispatchd/core/model"
)

// AssignmentRecord captures one committed technician assignment for
// observability sinks.
type AssignmentRecord struct {
	BatchID      string
	RequestID    int64
	TechnicianID string
	Priority     model.Priority
	Skill        string
	Score        float64
	SkillScore   float64
	DistanceKm   float64
	Availability float64
	Performance  float64
	AssignedAt   time.Time
}

// BatchRecord summarizes one batch run.
type BatchRecord struct {
	BatchID        string
	Processed      int
	Assigned       int
	Skipped        int
	MeanConfidence float64
	Duration       time.Duration
	Time           time.Time
}

// MetricsSink records assignment results for observability purposes.
type MetricsSink interface {
	RecordAssignments(records []AssignmentRecord) error
}

// BatchRecorder records per-batch summaries. Sinks may implement it in
// addition to MetricsSink.
type BatchRecorder interface {
	RecordBatch(rec BatchRecord) error
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) RecordAssignments([]AssignmentRecord) error { return nil }
func (NopSink) RecordBatch(BatchRecord) error              { return nil }
