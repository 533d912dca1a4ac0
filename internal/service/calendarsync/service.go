// Package calendarsync reconciles local appointments with the user's
// external calendar: push on create/update/delete, pull on explicit sync.
package calendarsync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"trimlyt/backend/internal/calendar"
	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/store"
)

// Brand prefixes pushed event titles so they are recognizable in the user's
// calendar without matching the import pattern.
const Brand = "Trimlyt"

// defaultEventMinutes sizes pushed events when the owner's gap setting is
// disabled. The gap doubles as the assumed appointment duration.
const defaultEventMinutes = 60

// Pull window: one month back, three months ahead.
const (
	pullLookbackMonths  = 1
	pullLookaheadMonths = 3
)

// SyncError is a generic pull-sync failure carrying the provider's message.
type SyncError struct {
	msg string
}

func (e *SyncError) Error() string {
	return "calendar sync failed: " + e.msg
}

type Service struct {
	appts     store.AppointmentStore
	users     store.UserStore
	connector calendar.Connector
	log       *slog.Logger
	now       func() time.Time
}

func NewService(appts store.AppointmentStore, users store.UserStore, connector calendar.Connector, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		appts:     appts,
		users:     users,
		connector: connector,
		log:       log.With(slog.String("component", "calendarsync")),
		now:       time.Now,
	}
}

// PushCreate mirrors a freshly created scheduled appointment as a calendar
// event and stores the event id on the appointment. A missing calendar
// connection is a no-op, not an error.
func (s *Service) PushCreate(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	if appt.Status != domain.StatusScheduled {
		return appt, nil
	}
	user, client, err := s.clientFor(ctx, appt.OwnerID)
	if errors.Is(err, calendar.ErrNotConnected) {
		return appt, nil
	}
	if err != nil {
		return appt, err
	}

	eventID, err := client.CreateEvent(ctx, eventSpec(appt, user))
	if err != nil {
		return appt, err
	}
	appt.ExternalEventID = eventID
	return s.appts.Update(ctx, appt)
}

// PushUpdate reconciles the linked calendar event with the appointment's new
// state: canceled and no-show drop the event, scheduled patches it (or
// creates one for appointments that predate the connection), finished leaves
// it alone.
func (s *Service) PushUpdate(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	user, client, err := s.clientFor(ctx, appt.OwnerID)
	if errors.Is(err, calendar.ErrNotConnected) {
		return appt, nil
	}
	if err != nil {
		return appt, err
	}

	switch appt.Status {
	case domain.StatusCanceled, domain.StatusNoShow:
		if !appt.Synced() {
			return appt, nil
		}
		if err := client.DeleteEvent(ctx, appt.ExternalEventID); err != nil {
			return appt, err
		}
		appt.ExternalEventID = ""
		return s.appts.Update(ctx, appt)

	case domain.StatusScheduled:
		if appt.Synced() {
			return appt, client.PatchEvent(ctx, appt.ExternalEventID, eventSpec(appt, user))
		}
		eventID, err := client.CreateEvent(ctx, eventSpec(appt, user))
		if err != nil {
			return appt, err
		}
		appt.ExternalEventID = eventID
		return s.appts.Update(ctx, appt)

	default:
		return appt, nil
	}
}

// PushDelete removes the linked calendar event, if any.
func (s *Service) PushDelete(ctx context.Context, appt domain.Appointment) error {
	if !appt.Synced() {
		return nil
	}
	_, client, err := s.clientFor(ctx, appt.OwnerID)
	if errors.Is(err, calendar.ErrNotConnected) {
		return nil
	}
	if err != nil {
		return err
	}
	return client.DeleteEvent(ctx, appt.ExternalEventID)
}

// PullSync imports calendar events matching the import title pattern as local
// appointments and returns how many were new. Re-running it is idempotent:
// events already linked by id are skipped. A revoked grant clears the stored
// credentials and surfaces calendar.ErrInvalidGrant so the caller can prompt
// a reconnect.
func (s *Service) PullSync(ctx context.Context, ownerID string) (int, error) {
	_, client, err := s.clientFor(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	events, err := client.ListEvents(ctx, now.AddDate(0, -pullLookbackMonths, 0), now.AddDate(0, pullLookaheadMonths, 0))
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidGrant) {
			if clearErr := s.users.ClearCalendarCredentials(ctx, ownerID); clearErr != nil {
				s.log.Warn("clearing revoked calendar credentials failed",
					slog.String("owner_id", ownerID), slog.Any("err", clearErr))
			}
			return 0, calendar.ErrInvalidGrant
		}
		return 0, &SyncError{msg: err.Error()}
	}

	imported := 0
	for _, ev := range events {
		name, price, ok := ParseImportTitle(ev.Title)
		if !ok {
			continue
		}

		_, err := s.appts.GetByExternalEventID(ctx, ownerID, ev.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return imported, err
		}

		status := domain.StatusScheduled
		if ev.Start.Before(now) {
			status = domain.StatusFinished
		}
		appt := domain.Appointment{
			OwnerID:         ownerID,
			Service:         name,
			Price:           price,
			Date:            ev.Start.UTC(),
			Extras:          ev.Description,
			Status:          status,
			ExternalEventID: ev.ID,
		}
		err = s.appts.InOwnerTransaction(ctx, ownerID, func(ctx context.Context, tx store.AppointmentTx) error {
			_, err := tx.Insert(ctx, appt)
			return err
		})
		if err != nil {
			return imported, err
		}
		imported++
	}

	if imported > 0 {
		s.log.Info("calendar events imported", slog.String("owner_id", ownerID), slog.Int("count", imported))
	}
	return imported, nil
}

func (s *Service) clientFor(ctx context.Context, ownerID string) (domain.User, calendar.Client, error) {
	user, err := s.users.Get(ctx, ownerID)
	if err != nil {
		return domain.User{}, nil, err
	}
	client, err := s.connector.ClientFor(ctx, user)
	if err != nil {
		return domain.User{}, nil, err
	}
	return user, client, nil
}

func eventSpec(appt domain.Appointment, user domain.User) calendar.EventSpec {
	minutes := user.GapMinutes
	if minutes <= 0 {
		minutes = defaultEventMinutes
	}
	return calendar.EventSpec{
		Title:       Brand + ": " + appt.Service,
		Description: appt.Extras,
		Start:       appt.Date,
		End:         appt.Date.Add(time.Duration(minutes) * time.Minute),
	}
}
