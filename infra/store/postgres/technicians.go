package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coreflux/dispatchd/core/model"
)

// TechnicianStore implements dispatch.TechnicianRepository over Postgres.
type TechnicianStore struct {
	pool *pgxpool.Pool
}

// NewTechnicianStore creates a TechnicianStore using the given pool.
func NewTechnicianStore(pool *pgxpool.Pool) *TechnicianStore {
	return &TechnicianStore{pool: pool}
}

// ListEligible returns technicians in the given state with remaining workload
// capacity, least loaded first.
func (s *TechnicianStore) ListEligible(ctx context.Context, state string) ([]model.Technician, error) {
	const query = `
		SELECT technician_id, name, primary_skill, city, state,
		       latitude, longitude, workload_capacity, current_assignments
		FROM technicians
		WHERE state = $1
		  AND current_assignments < workload_capacity
		ORDER BY current_assignments ASC, technician_id ASC`

	rows, err := s.pool.Query(ctx, query, state)
	if err != nil {
		return nil, fmt.Errorf("query technicians: %w", err)
	}
	defer rows.Close()

	var techs []model.Technician
	for rows.Next() {
		var t model.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.PrimarySkill, &t.City, &t.State,
			&t.Latitude, &t.Longitude, &t.WorkloadCapacity, &t.CurrentAssignments); err != nil {
			return nil, fmt.Errorf("scan technician: %w", err)
		}
		techs = append(techs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate technicians: %w", err)
	}
	return techs, nil
}
