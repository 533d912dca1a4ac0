package store

import (
	"context"

	"github.com/google/uuid"

	"trimlyt/backend/internal/domain"
)

type ServiceStore interface {
	Insert(ctx context.Context, item domain.ServiceItem) (domain.ServiceItem, error)
	GetByOwnerAndID(ctx context.Context, ownerID string, id uuid.UUID) (domain.ServiceItem, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.ServiceItem, error)
	Update(ctx context.Context, item domain.ServiceItem) (domain.ServiceItem, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}
