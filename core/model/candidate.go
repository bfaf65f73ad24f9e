package model

// ScoredCandidate pairs a technician with the composite score computed for one
// dispatch request. It lives only for the duration of a single request's
// evaluation and is never persisted.
type ScoredCandidate struct {
	Technician Technician
	Composite  float64

	SkillScore        float64
	DistanceKm        float64
	DistanceScore     float64
	AvailabilityScore float64
	PerformanceScore  float64

	History SkillHistory
}
