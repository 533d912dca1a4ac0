package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/store"
)

type UserRepo struct {
	db *bun.DB
}

func NewUserRepo(db *bun.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Get(ctx context.Context, id string) (domain.User, error) {
	var row domain.User
	err := r.db.NewSelect().
		Model(&row).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, store.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return row, nil
}

func (r *UserRepo) UpdateSettings(ctx context.Context, id string, patch store.SettingsPatch) (domain.User, error) {
	upd := r.db.NewUpdate().
		Model((*domain.User)(nil)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id)

	if patch.GapMinutes != nil {
		upd = upd.Set("appointment_gap_minutes = ?", *patch.GapMinutes)
	}
	if patch.AutoCompleteStatus != nil {
		upd = upd.Set("auto_complete_status = ?", *patch.AutoCompleteStatus)
	}
	if patch.Currency != nil {
		upd = upd.Set("currency = ?", *patch.Currency)
	}

	res, err := upd.Exec(ctx)
	if err != nil {
		return domain.User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, err
	}
	if affected == 0 {
		return domain.User{}, store.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *UserRepo) SetCalendarCredentials(ctx context.Context, id, tokenJSON, calendarID string) error {
	res, err := r.db.NewUpdate().
		Model((*domain.User)(nil)).
		Set("google_token = ?", tokenJSON).
		Set("google_calendar_id = ?", calendarID).
		Set("updated_at = ?", time.Now().UTC()).
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

func (r *UserRepo) ClearCalendarCredentials(ctx context.Context, id string) error {
	res, err := r.db.NewUpdate().
		Model((*domain.User)(nil)).
		Set("google_token = ''").
		Set("google_calendar_id = ''").
		Set("updated_at = ?", time.Now().UTC()).
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
