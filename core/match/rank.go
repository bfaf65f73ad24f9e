package match

import (
	"sort"

	"github.com/coreflux/dispatchd/core/model"
)

// Rank orders candidates by composite score descending. Ties break by lower
// technician identifier so rankings are reproducible across runs.
func Rank(candidates []model.ScoredCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Composite != candidates[j].Composite {
			return candidates[i].Composite > candidates[j].Composite
		}
		return candidates[i].Technician.ID < candidates[j].Technician.ID
	})
}

// Select ranks the candidates and splits off the winner from up to topN
// runner-up alternatives. The second return value is false when no candidates
// were offered.
func Select(candidates []model.ScoredCandidate, topN int) (model.ScoredCandidate, []model.ScoredCandidate, bool) {
	if len(candidates) == 0 {
		return model.ScoredCandidate{}, nil, false
	}
	Rank(candidates)
	rest := candidates[1:]
	if topN >= 0 && len(rest) > topN {
		rest = rest[:topN]
	}
	return candidates[0], rest, true
}
