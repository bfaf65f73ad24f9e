package match

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/coreflux/dispatchd/core/model"
)

type stubHistory struct {
	stats map[string]model.SkillHistory
	err   error
}

func (s stubHistory) SkillHistory(_ context.Context, technicianID, _ string) (model.SkillHistory, error) {
	if s.err != nil {
		return model.SkillHistory{}, s.err
	}
	if h, ok := s.stats[technicianID]; ok {
		return h, nil
	}
	return model.NeutralHistory(), nil
}

func TestPerformanceScore(t *testing.T) {
	if got := PerformanceScore(model.NeutralHistory()); got != 0.5 {
		t.Errorf("neutral performance = %v, want 0.5", got)
	}
	h := model.SkillHistory{Count: 10, AvgProductive: 0.9, AvgFirstTimeFix: 0.7}
	if got := PerformanceScore(h); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("performance = %v, want 0.8", got)
	}
}

func TestScoreComposite(t *testing.T) {
	scorer := NewCandidateScorer(stubHistory{}, nil)
	tech := model.Technician{
		ID: "T1", PrimarySkill: "Installation",
		Latitude: 48.8566, Longitude: 2.3522,
		WorkloadCapacity: 5, CurrentAssignments: 0,
	}
	req := model.DispatchRequest{
		Priority:         model.PriorityNormal,
		RequiredSkill:    "Installation",
		CustomerLatitude: 48.8566, CustomerLongitude: 2.3522,
	}
	c := scorer.Score(context.Background(), tech, req)

	// skill 1.0*0.4 + distance 1.0*0.3 + availability 1.0*0.2 + performance 0.5*0.1
	want := 0.4 + 0.3 + 0.2 + 0.05
	if math.Abs(c.Composite-want) > 1e-9 {
		t.Errorf("composite = %v, want %v", c.Composite, want)
	}
	if c.DistanceKm != 0 {
		t.Errorf("distance = %v, want 0", c.DistanceKm)
	}
}

func TestScorePriorityMultiplier(t *testing.T) {
	scorer := NewCandidateScorer(stubHistory{}, nil)
	tech := model.Technician{ID: "T1", PrimarySkill: "Repair", WorkloadCapacity: 4}
	base := scorer.Score(context.Background(), tech, model.DispatchRequest{
		Priority: model.PriorityNormal, RequiredSkill: "Repair",
	})
	critical := scorer.Score(context.Background(), tech, model.DispatchRequest{
		Priority: model.PriorityCritical, RequiredSkill: "Repair",
	})
	if math.Abs(critical.Composite-base.Composite*1.2) > 1e-9 {
		t.Errorf("critical composite = %v, want %v", critical.Composite, base.Composite*1.2)
	}
}

func TestScoreCompositeBounds(t *testing.T) {
	scorer := NewCandidateScorer(stubHistory{stats: map[string]model.SkillHistory{
		"T1": {Count: 5, AvgProductive: 1, AvgFirstTimeFix: 1},
	}}, nil)
	tech := model.Technician{ID: "T1", PrimarySkill: "Installation", WorkloadCapacity: 3}
	req := model.DispatchRequest{Priority: model.PriorityCritical, RequiredSkill: "Installation"}
	c := scorer.Score(context.Background(), tech, req)
	if c.Composite < 0 || c.Composite > 1.2 {
		t.Errorf("composite %v out of [0, 1.2]", c.Composite)
	}
}

func TestScoreDistanceBeyondNorm(t *testing.T) {
	scorer := NewCandidateScorer(stubHistory{}, nil)
	tech := model.Technician{ID: "T1", PrimarySkill: "Repair", WorkloadCapacity: 2,
		Latitude: 40.7128, Longitude: -74.0060}
	req := model.DispatchRequest{Priority: model.PriorityNormal, RequiredSkill: "Repair",
		CustomerLatitude: 34.0522, CustomerLongitude: -118.2437}
	c := scorer.Score(context.Background(), tech, req)
	if c.DistanceScore != 0 {
		t.Errorf("distance score beyond %v km = %v, want 0", DistanceNormKm, c.DistanceScore)
	}
}

func TestScoreHistoryFailureDegrades(t *testing.T) {
	scorer := NewCandidateScorer(stubHistory{err: errors.New("history store down")}, nil)
	tech := model.Technician{ID: "T1", PrimarySkill: "Repair", WorkloadCapacity: 2}
	c := scorer.Score(context.Background(), tech, model.DispatchRequest{
		Priority: model.PriorityNormal, RequiredSkill: "Repair",
	})
	if c.PerformanceScore != 0.5 {
		t.Errorf("performance after lookup failure = %v, want neutral 0.5", c.PerformanceScore)
	}
}

// Dominant skill match should beat shorter distance: T1 matches the skill
// exactly at 5 km and an empty schedule, T2 only partially at 2 km with a
// nearly full schedule.
func TestScoreSkillDominatesDistance(t *testing.T) {
	scorer := NewCandidateScorer(stubHistory{}, nil)
	req := model.DispatchRequest{
		Priority:         model.PriorityCritical,
		RequiredSkill:    "Installation",
		CustomerLatitude: 48.8566, CustomerLongitude: 2.3522,
	}
	t1 := model.Technician{
		ID: "T1", PrimarySkill: "Installation",
		Latitude: 48.8566, Longitude: 2.4204, // ~5 km east
		WorkloadCapacity: 5, CurrentAssignments: 0,
	}
	t2 := model.Technician{
		ID: "T2", PrimarySkill: "Repair",
		Latitude: 48.8566, Longitude: 2.3795, // ~2 km east
		WorkloadCapacity: 5, CurrentAssignments: 4,
	}
	c1 := scorer.Score(context.Background(), t1, req)
	c2 := scorer.Score(context.Background(), t2, req)
	if c1.Composite <= c2.Composite {
		t.Errorf("expected skill match to win: T1=%v T2=%v", c1.Composite, c2.Composite)
	}
}
