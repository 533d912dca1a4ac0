package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"trimlyt/backend/internal/domain"
)

type ListFilter string

const (
	FilterAll      ListFilter = ""
	FilterUpcoming ListFilter = "upcoming"
	FilterPast     ListFilter = "past"
)

// ListQuery shapes a ListByOwner call. Upcoming sorts ascending from Now,
// past and all sort descending. Pagination applies only when both Page and
// Limit are positive, after sorting.
type ListQuery struct {
	Filter ListFilter
	Now    time.Time
	Page   int
	Limit  int
}

// Stats aggregates an owner's appointments over a window. Revenue counts
// finished appointments only.
type Stats struct {
	Revenue   float64
	Scheduled int64
	Finished  int64
	Canceled  int64
	NoShow    int64
}

// AppointmentTx is the slice of appointment operations available inside an
// owner-scoped transaction. The conflict check and the insert/update it
// guards run against the same tx.
type AppointmentTx interface {
	Insert(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	// ListActiveBetween returns non-canceled appointments with date strictly
	// inside (from, to), excluding excludeID when it is non-nil.
	ListActiveBetween(ctx context.Context, ownerID string, from, to time.Time, excludeID uuid.UUID) ([]domain.Appointment, error)
}

type AppointmentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	GetByExternalEventID(ctx context.Context, ownerID, eventID string) (domain.Appointment, error)
	ListByOwner(ctx context.Context, ownerID string, q ListQuery) ([]domain.Appointment, error)
	Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// RolloverStale moves the owner's scheduled appointments dated before
	// cutoff to the given status and reports how many rows changed.
	RolloverStale(ctx context.Context, ownerID string, cutoff time.Time, to domain.Status) (int64, error)
	StatsByOwner(ctx context.Context, ownerID string, from, to time.Time) (Stats, error)
	InOwnerTransaction(ctx context.Context, ownerID string, fn func(ctx context.Context, tx AppointmentTx) error) error
}
