package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coreflux/dispatchd/core/dispatch"
	"github.com/coreflux/dispatchd/core/model"
)

// RequestStore implements dispatch.RequestRepository over Postgres.
type RequestStore struct {
	pool *pgxpool.Pool
}

// NewRequestStore creates a RequestStore using the given pool.
func NewRequestStore(pool *pgxpool.Pool) *RequestStore {
	return &RequestStore{pool: pool}
}

// PendingIDs returns up to limit pending request identifiers ordered by
// priority rank then identifier.
func (s *RequestStore) PendingIDs(ctx context.Context, limit int) ([]int64, error) {
	const query = `
		SELECT dispatch_id
		FROM current_dispatches
		WHERE status = 'Pending'
		ORDER BY
		    CASE priority
		        WHEN 'Critical' THEN 1
		        WHEN 'High' THEN 2
		        WHEN 'Normal' THEN 3
		        WHEN 'Low' THEN 4
		        ELSE 5
		    END,
		    dispatch_id
		LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending dispatches: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan dispatch id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending dispatches: %w", err)
	}
	return ids, nil
}

// Get returns the pending request with the given identifier.
// dispatch.ErrNotFound is returned when the request does not exist or was
// already processed.
func (s *RequestStore) Get(ctx context.Context, id int64) (*model.DispatchRequest, error) {
	const query = `
		SELECT dispatch_id, ticket_type, priority, required_skill, city, state,
		       customer_latitude, customer_longitude,
		       appointment_start, appointment_end, duration_min,
		       status, assigned_technician_id, confidence, assigned_at
		FROM current_dispatches
		WHERE dispatch_id = $1 AND status = 'Pending'`

	var (
		r         model.DispatchRequest
		priority  string
		status    string
		apptStart *time.Time
		apptEnd   *time.Time
	)
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&r.ID, &r.TicketType, &priority, &r.RequiredSkill, &r.City, &r.State,
		&r.CustomerLatitude, &r.CustomerLongitude,
		&apptStart, &apptEnd, &r.DurationMin,
		&status, &r.AssignedTechnicianID, &r.Confidence, &r.AssignedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, dispatch.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query dispatch %d: %w", id, err)
	}
	r.Priority = model.Priority(priority)
	r.Status = model.Status(status)
	if apptStart != nil {
		r.AppointmentStart = *apptStart
	}
	if apptEnd != nil {
		r.AppointmentEnd = *apptEnd
	}
	return &r, nil
}

// Assign commits the technician to the request with a conditional write
// guarded by the Pending status, and increments the technician's assignment
// counter in the same transaction so availability scoring stays consistent
// within the batch. Zero affected rows means another process completed the
// request first: dispatch.ErrRaceLost.
func (s *RequestStore) Assign(ctx context.Context, id int64, technicianID string, confidence float64, at time.Time) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin assignment: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const update = `
		UPDATE current_dispatches
		SET assigned_technician_id = $1,
		    status = 'Completed',
		    assigned_at = $2,
		    confidence = $3
		WHERE dispatch_id = $4 AND status = 'Pending'`

	tag, err := tx.Exec(ctx, update, technicianID, at, confidence, id)
	if err != nil {
		return fmt.Errorf("assign dispatch %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return dispatch.ErrRaceLost
	}

	const bump = `
		UPDATE technicians
		SET current_assignments = current_assignments + 1
		WHERE technician_id = $1`
	if _, err := tx.Exec(ctx, bump, technicianID); err != nil {
		return fmt.Errorf("increment assignments for %s: %w", technicianID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit assignment: %w", err)
	}
	return nil
}
