package appointments

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/store"
)

// staleAfter is how long past its date a scheduled appointment may sit
// before ReconcileStale rolls it over.
const staleAfter = time.Hour

// CalendarSyncer pushes local appointment changes to the external calendar.
// Push calls are best effort: the service logs their failures and never lets
// them affect the result of the local mutation.
type CalendarSyncer interface {
	PushCreate(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	PushUpdate(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	PushDelete(ctx context.Context, appt domain.Appointment) error
}

type Service struct {
	appts store.AppointmentStore
	users store.UserStore
	sync  CalendarSyncer
	log   *slog.Logger
	now   func() time.Time
}

func NewService(appts store.AppointmentStore, users store.UserStore, sync CalendarSyncer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		appts: appts,
		users: users,
		sync:  sync,
		log:   log.With(slog.String("component", "appointments")),
		now:   time.Now,
	}
}

type CreateInput struct {
	OwnerID string
	Service string
	Price   float64
	Date    time.Time
	Extras  string
	Status  domain.Status
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Appointment, error) {
	name := strings.TrimSpace(in.Service)
	if name == "" {
		return domain.Appointment{}, validationError("service is required")
	}
	if in.OwnerID == "" {
		return domain.Appointment{}, validationError("owner_id is required")
	}
	if in.Date.IsZero() {
		return domain.Appointment{}, validationError("date is required")
	}
	if in.Price < 0 {
		return domain.Appointment{}, validationError("price must not be negative")
	}

	status := in.Status
	if status == "" {
		status = domain.StatusScheduled
	}
	if !status.Valid() {
		return domain.Appointment{}, validationError("invalid status")
	}

	owner, err := s.users.Get(ctx, in.OwnerID)
	if err != nil {
		return domain.Appointment{}, err
	}

	appt := domain.Appointment{
		OwnerID: in.OwnerID,
		Service: name,
		Price:   in.Price,
		Date:    in.Date.UTC(),
		Extras:  in.Extras,
		Status:  status,
	}

	var out domain.Appointment
	err = s.appts.InOwnerTransaction(ctx, in.OwnerID, func(ctx context.Context, tx store.AppointmentTx) error {
		if err := s.ensureNoConflict(ctx, tx, appt, owner.GapMinutes, uuid.Nil); err != nil {
			return err
		}
		created, err := tx.Insert(ctx, appt)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}

	log := s.log.With(slog.String("appointment_id", out.ID.String()), slog.String("owner_id", out.OwnerID))
	log.Info("appointment created", slog.Time("date", out.Date), slog.String("status", string(out.Status)))

	if s.sync != nil && out.Status == domain.StatusScheduled {
		synced, err := s.sync.PushCreate(ctx, out)
		if err != nil {
			log.Warn("calendar push failed", slog.Any("err", err))
		} else {
			out = synced
		}
	}
	return out, nil
}

// ReconcileStale moves the owner's scheduled appointments whose date passed
// more than an hour ago to the owner's configured auto-complete status.
// There is no background scheduler; List calls this before querying so
// staleness is resolved lazily on access.
func (s *Service) ReconcileStale(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, validationError("owner_id is required")
	}
	owner, err := s.users.Get(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	cutoff := s.now().UTC().Add(-staleAfter)
	n, err := s.appts.RolloverStale(ctx, ownerID, cutoff, owner.RolloverStatus())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("stale appointments rolled over",
			slog.String("owner_id", ownerID),
			slog.Int64("count", n),
			slog.String("status", string(owner.RolloverStatus())))
	}
	return n, nil
}

type ListInput struct {
	Filter store.ListFilter
	Page   int
	Limit  int
}

func (s *Service) List(ctx context.Context, ownerID string, in ListInput) ([]domain.Appointment, error) {
	if ownerID == "" {
		return nil, validationError("owner_id is required")
	}
	switch in.Filter {
	case store.FilterAll, store.FilterUpcoming, store.FilterPast:
	default:
		return nil, validationError("filter must be upcoming or past")
	}
	if in.Page < 0 || in.Limit < 0 {
		return nil, validationError("page and limit must be positive")
	}

	if _, err := s.ReconcileStale(ctx, ownerID); err != nil {
		return nil, err
	}

	return s.appts.ListByOwner(ctx, ownerID, store.ListQuery{
		Filter: in.Filter,
		Now:    s.now().UTC(),
		Page:   in.Page,
		Limit:  in.Limit,
	})
}

// UpdateInput fields are pointers so a provided zero value (price 0, empty
// extras) is distinguishable from an omitted field.
type UpdateInput struct {
	Service *string
	Price   *float64
	Date    *time.Time
	Extras  *string
	Status  *domain.Status
}

func (s *Service) Update(ctx context.Context, ownerID string, id uuid.UUID, in UpdateInput) (domain.Appointment, error) {
	if ownerID == "" {
		return domain.Appointment{}, validationError("owner_id is required")
	}
	if id == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}

	owner, err := s.users.Get(ctx, ownerID)
	if err != nil {
		return domain.Appointment{}, err
	}

	var out domain.Appointment
	err = s.appts.InOwnerTransaction(ctx, ownerID, func(ctx context.Context, tx store.AppointmentTx) error {
		current, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.OwnerID != ownerID {
			return ErrNotOwner
		}

		next := current
		if in.Service != nil {
			name := strings.TrimSpace(*in.Service)
			if name == "" {
				return validationError("service must not be empty")
			}
			next.Service = name
		}
		if in.Price != nil {
			if *in.Price < 0 {
				return validationError("price must not be negative")
			}
			next.Price = *in.Price
		}
		if in.Date != nil {
			if in.Date.IsZero() {
				return validationError("date must be a valid instant")
			}
			next.Date = in.Date.UTC()
		}
		if in.Extras != nil {
			next.Extras = *in.Extras
		}
		if in.Status != nil && *in.Status != current.Status {
			if err := s.validateTransition(current.Status, *in.Status, next.Date); err != nil {
				return err
			}
			next.Status = *in.Status
		}

		if in.Date != nil && next.Status != domain.StatusCanceled {
			if err := s.ensureNoConflict(ctx, tx, next, owner.GapMinutes, current.ID); err != nil {
				return err
			}
		}

		updated, err := tx.Update(ctx, next)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}

	log := s.log.With(slog.String("appointment_id", out.ID.String()), slog.String("owner_id", ownerID))
	log.Info("appointment updated", slog.String("status", string(out.Status)))

	if s.sync != nil {
		synced, err := s.sync.PushUpdate(ctx, out)
		if err != nil {
			log.Warn("calendar push failed", slog.Any("err", err))
		} else {
			out = synced
		}
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if ownerID == "" {
		return validationError("owner_id is required")
	}
	if id == uuid.Nil {
		return validationError("appointment_id is required")
	}

	appt, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appt.OwnerID != ownerID {
		return ErrNotOwner
	}
	if appt.Status == domain.StatusFinished {
		return validationError("finished appointments cannot be deleted")
	}

	if err := s.appts.Delete(ctx, id); err != nil {
		return err
	}

	log := s.log.With(slog.String("appointment_id", id.String()), slog.String("owner_id", ownerID))
	log.Info("appointment deleted")

	if s.sync != nil && appt.Synced() {
		if err := s.sync.PushDelete(ctx, appt); err != nil {
			log.Warn("calendar push failed", slog.Any("err", err))
		}
	}
	return nil
}

func (s *Service) Stats(ctx context.Context, ownerID string, from, to time.Time) (store.Stats, error) {
	if ownerID == "" {
		return store.Stats{}, validationError("owner_id is required")
	}
	start := from.UTC()
	end := to.UTC()
	if end.Equal(start) || end.Before(start) {
		return store.Stats{}, validationError("to must be after from")
	}
	if _, err := s.ReconcileStale(ctx, ownerID); err != nil {
		return store.Stats{}, err
	}
	return s.appts.StatsByOwner(ctx, ownerID, start, end)
}

// validateTransition enforces the status graph plus the "time must have
// passed" guard for manually finishing or no-showing a scheduled
// appointment.
func (s *Service) validateTransition(from, to domain.Status, date time.Time) error {
	if !to.Valid() {
		return validationError("invalid status")
	}
	if !domain.CanTransition(from, to) {
		return validationError(fmt.Sprintf("cannot change status from %s to %s", from, to))
	}
	if from == domain.StatusScheduled && (to == domain.StatusFinished || to == domain.StatusNoShow) {
		if date.After(s.now().UTC()) {
			return validationError("appointment has not happened yet")
		}
	}
	return nil
}

func (s *Service) ensureNoConflict(ctx context.Context, tx store.AppointmentTx, appt domain.Appointment, gapMinutes int, excludeID uuid.UUID) error {
	if appt.Status == domain.StatusCanceled || gapMinutes <= 0 {
		return nil
	}
	gap := time.Duration(gapMinutes) * time.Minute
	others, err := tx.ListActiveBetween(ctx, appt.OwnerID, appt.Date.Add(-gap), appt.Date.Add(gap), excludeID)
	if err != nil {
		return err
	}
	for _, other := range others {
		if domain.WithinGap(other.Date, appt.Date, gap) {
			return &ConflictError{GapMinutes: gapMinutes}
		}
	}
	return nil
}
