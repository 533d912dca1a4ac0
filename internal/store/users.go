package store

import (
	"context"

	"trimlyt/backend/internal/domain"
)

// SettingsPatch carries only the fields the caller explicitly set. A nil
// field means "leave as is", so zero values like GapMinutes=0 stay
// distinguishable from "not provided".
type SettingsPatch struct {
	GapMinutes         *int
	AutoCompleteStatus *domain.Status
	Currency           *string
}

type UserStore interface {
	Get(ctx context.Context, id string) (domain.User, error)
	UpdateSettings(ctx context.Context, id string, patch SettingsPatch) (domain.User, error)
	SetCalendarCredentials(ctx context.Context, id, tokenJSON, calendarID string) error
	ClearCalendarCredentials(ctx context.Context, id string) error
}
