package dispatch

import (
	"context"
	"time"

	"github.com/coreflux/dispatchd/core/model"
)

// TechnicianRepository lists technicians that pass the storage-level
// eligibility preconditions: same state as the request and remaining workload
// capacity.
type TechnicianRepository interface {
	ListEligible(ctx context.Context, state string) ([]model.Technician, error)
}

// CalendarRepository returns the per-date availability override for a
// technician. A nil entry with a nil error means no override exists for that
// date.
type CalendarRepository interface {
	Entry(ctx context.Context, technicianID string, date time.Time) (*model.CalendarEntry, error)
}

// RequestRepository provides dispatch requests and the conditional assignment
// write. Assign must affect exactly the one row still in Pending state; when
// zero rows match it returns ErrRaceLost and must leave the store untouched.
type RequestRepository interface {
	PendingIDs(ctx context.Context, limit int) ([]int64, error)
	Get(ctx context.Context, id int64) (*model.DispatchRequest, error)
	Assign(ctx context.Context, id int64, technicianID string, confidence float64, at time.Time) error
}

// ResultPublisher forwards batch results to downstream consumers such as the
// notification layer.
type ResultPublisher interface {
	PublishBatch(result BatchResult) error
}
