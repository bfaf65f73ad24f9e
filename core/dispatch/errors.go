package dispatch

import "errors"

var (
	// ErrNotFound indicates the request does not exist or is no longer
	// pending at fetch time. It is a skip condition, not a failure.
	ErrNotFound = errors.New("dispatch: request not found or not pending")

	// ErrRaceLost indicates the conditional write affected zero rows because
	// a concurrent process already completed the request.
	ErrRaceLost = errors.New("dispatch: assignment race lost")

	// ErrNoEligibleCandidate indicates zero technicians passed the
	// eligibility filter. The request stays pending.
	ErrNoEligibleCandidate = errors.New("dispatch: no eligible candidate")
)

// Skip reasons reported in batch results.
const (
	ReasonNotFound     = "not_found"
	ReasonRaceLost     = "race_lost"
	ReasonUnassignable = "unassignable"
	ReasonStorage      = "storage_failure"
)
