package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/store"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

type appointmentTx struct {
	tx bun.Tx
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	var row domain.Appointment
	err := r.db.NewSelect().
		Model(&row).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Appointment{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Appointment{}, err
	}
	return row, nil
}

func (r *AppointmentRepo) GetByExternalEventID(ctx context.Context, ownerID, eventID string) (domain.Appointment, error) {
	var row domain.Appointment
	err := r.db.NewSelect().
		Model(&row).
		Where("owner_id = ?", ownerID).
		Where("external_event_id = ?", eventID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Appointment{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Appointment{}, err
	}
	return row, nil
}

func (r *AppointmentRepo) ListByOwner(ctx context.Context, ownerID string, q store.ListQuery) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	sel := r.db.NewSelect().
		Model(&rows).
		Where("owner_id = ?", ownerID)

	switch q.Filter {
	case store.FilterUpcoming:
		sel = sel.Where("date >= ?", q.Now).OrderExpr("date ASC")
	case store.FilterPast:
		sel = sel.Where("date < ?", q.Now).OrderExpr("date DESC")
	default:
		sel = sel.OrderExpr("date DESC")
	}

	if q.Page > 0 && q.Limit > 0 {
		sel = sel.Offset((q.Page - 1) * q.Limit).Limit(q.Limit)
	}

	if err := sel.Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	res, err := r.db.NewUpdate().
		Model(&appt).
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return appt, nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Appointment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepo) RolloverStale(ctx context.Context, ownerID string, cutoff time.Time, to domain.Status) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*domain.Appointment)(nil)).
		Set("status = ?", to).
		Set("updated_at = ?", time.Now().UTC()).
		Where("owner_id = ?", ownerID).
		Where("status = ?", domain.StatusScheduled).
		Where("date < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *AppointmentRepo) StatsByOwner(ctx context.Context, ownerID string, from, to time.Time) (store.Stats, error) {
	var out store.Stats
	err := r.db.NewSelect().
		Model((*domain.Appointment)(nil)).
		ColumnExpr("COALESCE(SUM(price) FILTER (WHERE status = ?), 0) AS revenue", domain.StatusFinished).
		ColumnExpr("COUNT(*) FILTER (WHERE status = ?) AS scheduled", domain.StatusScheduled).
		ColumnExpr("COUNT(*) FILTER (WHERE status = ?) AS finished", domain.StatusFinished).
		ColumnExpr("COUNT(*) FILTER (WHERE status = ?) AS canceled", domain.StatusCanceled).
		ColumnExpr("COUNT(*) FILTER (WHERE status = ?) AS no_show", domain.StatusNoShow).
		Where("owner_id = ?", ownerID).
		Where("date >= ?", from).
		Where("date < ?", to).
		Scan(ctx, &out.Revenue, &out.Scheduled, &out.Finished, &out.Canceled, &out.NoShow)
	if err != nil {
		return store.Stats{}, err
	}
	return out, nil
}

// InOwnerTransaction serializes mutations for one owner so the gap check and
// the write it protects see a consistent view.
func (r *AppointmentRepo) InOwnerTransaction(ctx context.Context, ownerID string, fn func(ctx context.Context, tx store.AppointmentTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockOwnerCalendar(ctx, tx, ownerID); err != nil {
			return err
		}
		return fn(ctx, appointmentTx{tx: tx})
	})
}

func lockOwnerCalendar(ctx context.Context, tx bun.Tx, ownerID string) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", ownerID).Exec(ctx)
	return err
}

func (r appointmentTx) Insert(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	if _, err := r.tx.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Appointment{}, err
	}
	return m, nil
}

func (r appointmentTx) GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	var row domain.Appointment
	err := r.tx.NewSelect().
		Model(&row).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Appointment{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Appointment{}, err
	}
	return row, nil
}

func (r appointmentTx) Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	res, err := r.tx.NewUpdate().
		Model(&appt).
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return appt, nil
}

func (r appointmentTx) ListActiveBetween(ctx context.Context, ownerID string, from, to time.Time, excludeID uuid.UUID) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	sel := r.tx.NewSelect().
		Model(&rows).
		Where("owner_id = ?", ownerID).
		Where("status != ?", domain.StatusCanceled).
		Where("date > ?", from).
		Where("date < ?", to)
	if excludeID != uuid.Nil {
		sel = sel.Where("id != ?", excludeID)
	}
	if err := sel.OrderExpr("date ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}
