package match

import (
	"testing"

	"github.com/coreflux/dispatchd/core/model"
)

func cand(id string, score float64) model.ScoredCandidate {
	return model.ScoredCandidate{Technician: model.Technician{ID: id}, Composite: score}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	cs := []model.ScoredCandidate{cand("T3", 0.2), cand("T1", 0.9), cand("T2", 0.5)}
	Rank(cs)
	want := []string{"T1", "T2", "T3"}
	for i, id := range want {
		if cs[i].Technician.ID != id {
			t.Fatalf("rank %d = %s, want %s", i+1, cs[i].Technician.ID, id)
		}
	}
}

func TestRankTieBreaksByID(t *testing.T) {
	cs := []model.ScoredCandidate{cand("T9", 0.7), cand("T2", 0.7), cand("T5", 0.7)}
	Rank(cs)
	want := []string{"T2", "T5", "T9"}
	for i, id := range want {
		if cs[i].Technician.ID != id {
			t.Fatalf("rank %d = %s, want %s", i+1, cs[i].Technician.ID, id)
		}
	}
}

func TestSelectWinnerAndAlternatives(t *testing.T) {
	cs := []model.ScoredCandidate{
		cand("T1", 0.9), cand("T2", 0.8), cand("T3", 0.7), cand("T4", 0.6), cand("T5", 0.5),
	}
	winner, alts, ok := Select(cs, 3)
	if !ok {
		t.Fatal("expected a winner")
	}
	if winner.Technician.ID != "T1" {
		t.Errorf("winner = %s, want T1", winner.Technician.ID)
	}
	if len(alts) != 3 {
		t.Fatalf("alternatives = %d, want 3", len(alts))
	}
	if alts[0].Technician.ID != "T2" || alts[2].Technician.ID != "T4" {
		t.Errorf("unexpected alternative ordering: %v", alts)
	}
}

func TestSelectEmpty(t *testing.T) {
	if _, _, ok := Select(nil, 3); ok {
		t.Fatal("expected no winner for empty candidate set")
	}
}

func TestSelectFewerThanTopN(t *testing.T) {
	winner, alts, ok := Select([]model.ScoredCandidate{cand("T1", 0.4)}, 5)
	if !ok || winner.Technician.ID != "T1" {
		t.Fatalf("unexpected selection: %v %v", winner, ok)
	}
	if len(alts) != 0 {
		t.Errorf("alternatives = %d, want 0", len(alts))
	}
}
