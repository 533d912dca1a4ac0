// Package catalog manages the owner's services price list. Appointments copy
// the service name as free text, so catalog edits never rewrite history.
package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

type Service struct {
	items store.ServiceStore
}

func NewService(items store.ServiceStore) *Service {
	return &Service{items: items}
}

type CreateInput struct {
	OwnerID         string
	Name            string
	Price           float64
	DurationMinutes int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.ServiceItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ServiceItem{}, validationError("name is required")
	}
	if in.OwnerID == "" {
		return domain.ServiceItem{}, validationError("owner_id is required")
	}
	if in.Price < 0 {
		return domain.ServiceItem{}, validationError("price must not be negative")
	}
	if in.DurationMinutes < 0 {
		return domain.ServiceItem{}, validationError("duration must not be negative")
	}

	return s.items.Insert(ctx, domain.ServiceItem{
		OwnerID:         in.OwnerID,
		Name:            name,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
	})
}

func (s *Service) List(ctx context.Context, ownerID string) ([]domain.ServiceItem, error) {
	if ownerID == "" {
		return nil, validationError("owner_id is required")
	}
	return s.items.ListByOwner(ctx, ownerID)
}

type UpdateInput struct {
	Name            *string
	Price           *float64
	DurationMinutes *int
}

func (s *Service) Update(ctx context.Context, ownerID string, id uuid.UUID, in UpdateInput) (domain.ServiceItem, error) {
	if ownerID == "" {
		return domain.ServiceItem{}, validationError("owner_id is required")
	}
	if id == uuid.Nil {
		return domain.ServiceItem{}, validationError("service_id is required")
	}

	item, err := s.items.GetByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return domain.ServiceItem{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.ServiceItem{}, validationError("name must not be empty")
		}
		item.Name = name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return domain.ServiceItem{}, validationError("price must not be negative")
		}
		item.Price = *in.Price
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes < 0 {
			return domain.ServiceItem{}, validationError("duration must not be negative")
		}
		item.DurationMinutes = *in.DurationMinutes
	}

	return s.items.Update(ctx, item)
}

func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if ownerID == "" {
		return validationError("owner_id is required")
	}
	if id == uuid.Nil {
		return validationError("service_id is required")
	}
	return s.items.Delete(ctx, ownerID, id)
}
