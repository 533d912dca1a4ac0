package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID              uuid.UUID `bun:"id,pk,type:uuid"`
	OwnerID         string    `bun:"owner_id,notnull"`
	Service         string    `bun:"service,notnull"`
	Price           float64   `bun:"price,notnull"`
	Date            time.Time `bun:"date,notnull"`
	Extras          string    `bun:"extras"`
	Status          Status    `bun:"status,notnull"`
	ExternalEventID string    `bun:"external_event_id"`
	CreatedAt       time.Time `bun:"created_at,notnull"`
	UpdatedAt       time.Time `bun:"updated_at,notnull"`
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}

// Synced reports whether the appointment is linked to an external calendar
// event.
func (a Appointment) Synced() bool {
	return a.ExternalEventID != ""
}

// WithinGap reports whether two instants are strictly closer together than
// gap. Instants exactly gap apart do not count as within it.
func WithinGap(a, b time.Time, gap time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d < gap
}
