package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// DefaultGapMinutes is the minimum spacing between two non-canceled
// appointments unless the owner configured something else. Zero disables
// the check.
const DefaultGapMinutes = 60

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID                 string    `bun:"id,pk"`
	Email              string    `bun:"email,notnull"`
	Currency           string    `bun:"currency,notnull"`
	GapMinutes         int       `bun:"appointment_gap_minutes,notnull"`
	AutoCompleteStatus Status    `bun:"auto_complete_status,notnull"`
	GoogleToken        string    `bun:"google_token"`
	GoogleCalendarID   string    `bun:"google_calendar_id"`
	CreatedAt          time.Time `bun:"created_at,notnull"`
	UpdatedAt          time.Time `bun:"updated_at,notnull"`
}

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if u.Currency == "" {
			u.Currency = "USD"
		}
		if u.AutoCompleteStatus == "" {
			u.AutoCompleteStatus = StatusFinished
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		if u.UpdatedAt.IsZero() {
			u.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		u.UpdatedAt = now
	}
	return nil
}

// CalendarConnected reports whether the user has stored external calendar
// credentials.
func (u User) CalendarConnected() bool {
	return u.GoogleToken != ""
}

// RolloverStatus is the status stale scheduled appointments move to. Falls
// back to finished when the stored value is unusable.
func (u User) RolloverStatus() Status {
	if u.AutoCompleteStatus.Valid() && u.AutoCompleteStatus != StatusScheduled {
		return u.AutoCompleteStatus
	}
	return StatusFinished
}
