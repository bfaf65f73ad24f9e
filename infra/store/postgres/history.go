package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coreflux/dispatchd/core/model"
)

// HistoryStore implements match.HistoryLookup over Postgres.
type HistoryStore struct {
	pool *pgxpool.Pool
}

// NewHistoryStore creates a HistoryStore using the given pool.
func NewHistoryStore(pool *pgxpool.Pool) *HistoryStore {
	return &HistoryStore{pool: pool}
}

// SkillHistory aggregates the technician's completed jobs for the skill. When
// no completed jobs match, the neutral defaults are returned.
func (s *HistoryStore) SkillHistory(ctx context.Context, technicianID, skill string) (model.SkillHistory, error) {
	const query = `
		SELECT COUNT(*),
		       COALESCE(AVG(productive_dispatch), 0),
		       COALESCE(AVG(first_time_fix), 0),
		       COALESCE(AVG(distance_km), 0)
		FROM dispatch_history
		WHERE assigned_technician_id = $1
		  AND required_skill = $2
		  AND status = 'Completed'`

	var h model.SkillHistory
	err := s.pool.QueryRow(ctx, query, technicianID, skill).
		Scan(&h.Count, &h.AvgProductive, &h.AvgFirstTimeFix, &h.AvgDistanceKm)
	if err != nil {
		return model.SkillHistory{}, fmt.Errorf("query skill history: %w", err)
	}
	if h.Count == 0 {
		return model.NeutralHistory(), nil
	}
	return h, nil
}
