package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/store"
)

type memServices struct {
	items map[uuid.UUID]domain.ServiceItem
}

func newMemServices() *memServices {
	return &memServices{items: make(map[uuid.UUID]domain.ServiceItem)}
}

func (m *memServices) Insert(ctx context.Context, item domain.ServiceItem) (domain.ServiceItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *memServices) GetByOwnerAndID(ctx context.Context, ownerID string, id uuid.UUID) (domain.ServiceItem, error) {
	item, ok := m.items[id]
	if !ok || item.OwnerID != ownerID {
		return domain.ServiceItem{}, store.ErrNotFound
	}
	return item, nil
}

func (m *memServices) ListByOwner(ctx context.Context, ownerID string) ([]domain.ServiceItem, error) {
	var out []domain.ServiceItem
	for _, item := range m.items {
		if item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memServices) Update(ctx context.Context, item domain.ServiceItem) (domain.ServiceItem, error) {
	if _, ok := m.items[item.ID]; !ok {
		return domain.ServiceItem{}, store.ErrNotFound
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *memServices) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	item, ok := m.items[id]
	if !ok || item.OwnerID != ownerID {
		return store.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestCreate(t *testing.T) {
	svc := NewService(newMemServices())

	item, err := svc.Create(context.Background(), CreateInput{
		OwnerID: "barber", Name: "  Haircut  ", Price: 25, DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Name != "Haircut" {
		t.Errorf("name = %q, want trimmed Haircut", item.Name)
	}

	cases := []CreateInput{
		{OwnerID: "barber", Name: "   "},
		{Name: "Haircut"},
		{OwnerID: "barber", Name: "Haircut", Price: -1},
		{OwnerID: "barber", Name: "Haircut", DurationMinutes: -5},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), in)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Create(%+v): got %v, want ValidationError", in, err)
		}
	}
}

func TestUpdate_PatchSemantics(t *testing.T) {
	items := newMemServices()
	svc := NewService(items)

	item, _ := svc.Create(context.Background(), CreateInput{
		OwnerID: "barber", Name: "Haircut", Price: 25, DurationMinutes: 30,
	})

	free := 0.0
	updated, err := svc.Update(context.Background(), "barber", item.ID, UpdateInput{Price: &free})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 0 || updated.Name != "Haircut" || updated.DurationMinutes != 30 {
		t.Errorf("updated = %+v, want only price changed", updated)
	}

	if _, err := svc.Update(context.Background(), "stranger", item.ID, UpdateInput{Price: &free}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("update by stranger: got %v, want ErrNotFound", err)
	}
}

func TestDelete_ScopedToOwner(t *testing.T) {
	items := newMemServices()
	svc := NewService(items)

	item, _ := svc.Create(context.Background(), CreateInput{OwnerID: "barber", Name: "Haircut"})

	if err := svc.Delete(context.Background(), "stranger", item.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete by stranger: got %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), "barber", item.ID); err != nil {
		t.Fatalf("delete by owner: %v", err)
	}
	if got, _ := svc.List(context.Background(), "barber"); len(got) != 0 {
		t.Errorf("list after delete = %d items, want 0", len(got))
	}
}
