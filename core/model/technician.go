package model

import "time"

// Technician represents a field technician eligible for dispatch assignments.
type Technician struct {
	ID                 string
	Name               string
	PrimarySkill       string
	City               string
	State              string
	Latitude           float64
	Longitude          float64
	WorkloadCapacity   int
	CurrentAssignments int
}

// HasCapacity reports whether the technician can take at least one more
// assignment.
func (t Technician) HasCapacity() bool {
	return t.CurrentAssignments < t.WorkloadCapacity
}

// Utilization returns the fraction of capacity currently in use. A capacity of
// zero counts as fully utilized.
func (t Technician) Utilization() float64 {
	if t.WorkloadCapacity <= 0 {
		return 1
	}
	return float64(t.CurrentAssignments) / float64(t.WorkloadCapacity)
}

// CalendarEntry is a per-date override of a technician's availability. Absence
// of an entry means the technician is available that day.
type CalendarEntry struct {
	TechnicianID   string
	Date           time.Time
	Available      bool
	MaxAssignments int
}

// Allows reports whether the entry permits new assignments on its date.
func (e CalendarEntry) Allows() bool {
	return e.Available && e.MaxAssignments > 0
}

// SkillHistory aggregates a technician's completed jobs for one skill.
// Rates are in [0,1]; AvgDistanceKm is informational only.
type SkillHistory struct {
	Count           int
	AvgProductive   float64
	AvgFirstTimeFix float64
	AvgDistanceKm   float64
}

// NeutralHistory returns the defaults used when no completed jobs match:
// neutral rates that neither penalize nor reward an unproven technician.
func NeutralHistory() SkillHistory {
	return SkillHistory{Count: 0, AvgProductive: 0.5, AvgFirstTimeFix: 0.5}
}
