package match

// AvailabilityScore rates a technician's remaining workload headroom as
// 1 - current/capacity, floored at 0. A capacity of zero means the technician
// is fully unavailable.
func AvailabilityScore(current, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	score := 1 - float64(current)/float64(capacity)
	if score < 0 {
		return 0
	}
	return score
}
