package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coreflux/dispatchd/core/model"
)

// CalendarStore implements dispatch.CalendarRepository over Postgres.
type CalendarStore struct {
	pool *pgxpool.Pool
}

// NewCalendarStore creates a CalendarStore using the given pool.
func NewCalendarStore(pool *pgxpool.Pool) *CalendarStore {
	return &CalendarStore{pool: pool}
}

// Entry returns the availability override for the technician on the given
// date, or nil when no entry exists.
func (s *CalendarStore) Entry(ctx context.Context, technicianID string, date time.Time) (*model.CalendarEntry, error) {
	const query = `
		SELECT technician_id, date, available, max_assignments
		FROM technician_calendar
		WHERE technician_id = $1 AND date = $2
		LIMIT 1`

	// The calendar is keyed by day; only the date part of the appointment
	// timestamp is relevant.
	var e model.CalendarEntry
	err := s.pool.QueryRow(ctx, query, technicianID, date.Format("2006-01-02")).
		Scan(&e.TechnicianID, &e.Date, &e.Available, &e.MaxAssignments)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query calendar entry: %w", err)
	}
	return &e, nil
}
