package match

import (
	"context"

	"github.com/coreflux/dispatchd/core/geo"
	"github.com/coreflux/dispatchd/core/logger"
	"github.com/coreflux/dispatchd/core/model"
)

// Weights of the composite score components.
const (
	WeightSkill        = 0.40
	WeightDistance     = 0.30
	WeightAvailability = 0.20
	WeightPerformance  = 0.10
)

// DistanceNormKm is the distance at which the proximity score reaches zero.
const DistanceNormKm = 100.0

// HistoryLookup provides aggregated completion history for a technician and
// skill. Implementations should be cheap to call once per candidate.
type HistoryLookup interface {
	SkillHistory(ctx context.Context, technicianID, skill string) (model.SkillHistory, error)
}

// CandidateScorer computes the weighted composite score for one
// (technician, request) pair. A failing history lookup degrades that
// candidate's performance component to its neutral default instead of
// aborting the request.
type CandidateScorer struct {
	history HistoryLookup
	log     logger.Logger
}

// NewCandidateScorer creates a scorer backed by the given history lookup.
// A nil logger falls back to a no-op logger.
func NewCandidateScorer(history HistoryLookup, log logger.Logger) *CandidateScorer {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &CandidateScorer{history: history, log: log}
}

// Score evaluates the technician against the request and returns the composite
// plus every component value for auditability.
func (s *CandidateScorer) Score(ctx context.Context, tech model.Technician, req model.DispatchRequest) model.ScoredCandidate {
	c := model.ScoredCandidate{Technician: tech}

	c.SkillScore = SkillScore(tech.PrimarySkill, req.RequiredSkill)

	c.DistanceKm = geo.DistanceKm(tech.Latitude, tech.Longitude, req.CustomerLatitude, req.CustomerLongitude)
	c.DistanceScore = 1 - c.DistanceKm/DistanceNormKm
	if c.DistanceScore < 0 {
		c.DistanceScore = 0
	}

	c.AvailabilityScore = AvailabilityScore(tech.CurrentAssignments, tech.WorkloadCapacity)

	c.History = s.lookupHistory(ctx, tech.ID, req.RequiredSkill)
	c.PerformanceScore = PerformanceScore(c.History)

	c.Composite = (c.SkillScore*WeightSkill +
		c.DistanceScore*WeightDistance +
		c.AvailabilityScore*WeightAvailability +
		c.PerformanceScore*WeightPerformance) * req.Priority.Multiplier()
	return c
}

func (s *CandidateScorer) lookupHistory(ctx context.Context, technicianID, skill string) model.SkillHistory {
	if s.history == nil {
		return model.NeutralHistory()
	}
	h, err := s.history.SkillHistory(ctx, technicianID, skill)
	if err != nil {
		s.log.Warnf("history lookup failed for %s/%s, using neutral defaults: %v", technicianID, skill, err)
		return model.NeutralHistory()
	}
	return h
}
