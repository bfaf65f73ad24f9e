package dispatch

import (
	"time"

	"github.com/coreflux/dispatchd/core/model"
)

// Alternative is a runner-up candidate retained for audit alongside the
// committed assignment.
type Alternative struct {
	TechnicianID string  `json:"technician_id"`
	Score        float64 `json:"score"`
}

// Assignment is one successfully committed request.
type Assignment struct {
	RequestID    int64          `json:"request_id"`
	TechnicianID string         `json:"technician_id"`
	Priority     model.Priority `json:"priority"`
	Skill        string         `json:"skill"`
	Confidence   float64        `json:"confidence"`
	Alternatives []Alternative  `json:"alternatives,omitempty"`
}

// Skip records a request that was not assigned in this batch and why.
type Skip struct {
	RequestID int64  `json:"request_id"`
	Reason    string `json:"reason"`
	Detail    string `json:"detail,omitempty"`
}

// BatchResult aggregates the outcome of one batch run.
type BatchResult struct {
	BatchID     string       `json:"batch_id"`
	Started     time.Time    `json:"started"`
	Finished    time.Time    `json:"finished"`
	Assignments []Assignment `json:"assignments"`
	Skips       []Skip       `json:"skips"`
}
