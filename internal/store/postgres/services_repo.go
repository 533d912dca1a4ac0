package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/store"
)

type ServiceRepo struct {
	db *bun.DB
}

func NewServiceRepo(db *bun.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) Insert(ctx context.Context, item domain.ServiceItem) (domain.ServiceItem, error) {
	m := item
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.ServiceItem{}, err
	}
	return m, nil
}

func (r *ServiceRepo) GetByOwnerAndID(ctx context.Context, ownerID string, id uuid.UUID) (domain.ServiceItem, error) {
	var row domain.ServiceItem
	err := r.db.NewSelect().
		Model(&row).
		Where("owner_id = ?", ownerID).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ServiceItem{}, store.ErrNotFound
	}
	if err != nil {
		return domain.ServiceItem{}, err
	}
	return row, nil
}

func (r *ServiceRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.ServiceItem, error) {
	var rows []domain.ServiceItem
	err := r.db.NewSelect().
		Model(&rows).
		Where("owner_id = ?", ownerID).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ServiceRepo) Update(ctx context.Context, item domain.ServiceItem) (domain.ServiceItem, error) {
	res, err := r.db.NewUpdate().
		Model(&item).
		WherePK().
		Where("owner_id = ?", item.OwnerID).
		Exec(ctx)
	if err != nil {
		return domain.ServiceItem{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.ServiceItem{}, err
	}
	if affected == 0 {
		return domain.ServiceItem{}, store.ErrNotFound
	}
	return item, nil
}

func (r *ServiceRepo) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.ServiceItem)(nil)).
		Where("owner_id = ?", ownerID).
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
