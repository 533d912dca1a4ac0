// Package calendar abstracts the external calendar provider so the sync
// layer can treat it as an untrusted, possibly-unavailable collaborator.
package calendar

import (
	"context"
	"errors"
	"time"

	"trimlyt/backend/internal/domain"
)

var (
	// ErrNotConnected means the user has no stored calendar credentials.
	ErrNotConnected = errors.New("no calendar connected")
	// ErrInvalidGrant means the provider rejected the stored credentials as
	// revoked or expired. Callers should clear them and prompt a reconnect.
	ErrInvalidGrant = errors.New("calendar credentials revoked or expired")
)

// Event is the provider's event shape as consumed here. Referenced by ID
// only, never owned.
type Event struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// EventSpec is the payload for creating or patching a provider event.
type EventSpec struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// Client talks to one user's calendar. Every call may fail with a generic
// error or with ErrInvalidGrant.
type Client interface {
	CreateEvent(ctx context.Context, spec EventSpec) (string, error)
	PatchEvent(ctx context.Context, eventID string, spec EventSpec) error
	DeleteEvent(ctx context.Context, eventID string) error
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error)
}

// Connector builds a Client from a user's stored credentials, or fails with
// ErrNotConnected.
type Connector interface {
	ClientFor(ctx context.Context, user domain.User) (Client, error)
}
