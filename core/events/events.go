// Package events defines the engine events published on the internal bus.
package events

import (
	"time"

	"github.com/coreflux/dispatchd/core/model"
)

// BatchStartedEvent is published when a batch run begins.
type BatchStartedEvent struct {
	BatchID string
	Limit   int
	Time    time.Time
}

// AssignmentEvent is published for every committed assignment.
type AssignmentEvent struct {
	BatchID      string
	RequestID    int64
	TechnicianID string
	Priority     model.Priority
	Confidence   float64
	Time         time.Time
}

// SkipEvent is published for every request left unassigned in a batch.
type SkipEvent struct {
	BatchID   string
	RequestID int64
	Reason    string
	Err       error
}

// BatchFinishedEvent is published when a batch run completes.
type BatchFinishedEvent struct {
	BatchID  string
	Assigned int
	Skipped  int
	Duration time.Duration
}
