package model

import "time"

// Priority classifies the urgency of a dispatch request. The four canonical
// levels order Critical first; any other label ranks after Low.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityNormal   Priority = "Normal"
	PriorityLow      Priority = "Low"
)

// Rank returns the sort rank of the priority, lower first. Unknown labels rank
// last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 1
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 3
	case PriorityLow:
		return 4
	default:
		return 5
	}
}

// Multiplier returns the score multiplier applied to candidates for a request
// of this priority. Unknown labels are treated as neutral.
func (p Priority) Multiplier() float64 {
	switch p {
	case PriorityCritical:
		return 1.2
	case PriorityHigh:
		return 1.1
	case PriorityNormal:
		return 1.0
	case PriorityLow:
		return 0.9
	default:
		return 1.0
	}
}

// Status is the engine-owned assignment state of a request.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// DispatchRequest is a service request awaiting technician assignment.
// AssignedTechnicianID, Confidence and AssignedAt are nil while the request is
// Pending and set together when it transitions to Completed.
type DispatchRequest struct {
	ID                int64
	TicketType        string
	Priority          Priority
	RequiredSkill     string
	City              string
	State             string
	CustomerLatitude  float64
	CustomerLongitude float64
	AppointmentStart  time.Time
	AppointmentEnd    time.Time
	DurationMin       int

	Status               Status
	AssignedTechnicianID *string
	Confidence           *float64
	AssignedAt           *time.Time
}

// Pending reports whether the request still awaits assignment.
func (r DispatchRequest) Pending() bool {
	return r.Status == StatusPending
}
