package google

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"trimlyt/backend/internal/calendar"
)

const maxListResults = 250

type client struct {
	svc        *gcal.Service
	calendarID string
}

func (c *client) CreateEvent(ctx context.Context, spec calendar.EventSpec) (string, error) {
	created, err := c.svc.Events.Insert(c.calendarID, toGoogleEvent(spec)).Context(ctx).Do()
	if err != nil {
		return "", translateError(err)
	}
	return created.Id, nil
}

func (c *client) PatchEvent(ctx context.Context, eventID string, spec calendar.EventSpec) error {
	_, err := c.svc.Events.Patch(c.calendarID, eventID, toGoogleEvent(spec)).Context(ctx).Do()
	return translateError(err)
}

func (c *client) DeleteEvent(ctx context.Context, eventID string) error {
	err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone) {
		// Already gone on the provider side; deletion is idempotent.
		return nil
	}
	return translateError(err)
}

func (c *client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]calendar.Event, error) {
	res, err := c.svc.Events.List(c.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(maxListResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, translateError(err)
	}

	out := make([]calendar.Event, 0, len(res.Items))
	for _, item := range res.Items {
		ev := calendar.Event{
			ID:          item.Id,
			Title:       item.Summary,
			Description: item.Description,
		}
		if item.Start != nil {
			ev.Start = parseEventTime(item.Start)
		}
		if item.End != nil {
			ev.End = parseEventTime(item.End)
		}
		out = append(out, ev)
	}
	return out, nil
}

func toGoogleEvent(spec calendar.EventSpec) *gcal.Event {
	return &gcal.Event{
		Summary:     spec.Title,
		Description: spec.Description,
		Start:       &gcal.EventDateTime{DateTime: spec.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: spec.End.Format(time.RFC3339)},
	}
}

// All-day events carry a date only, timed events an RFC3339 datetime.
func parseEventTime(t *gcal.EventDateTime) time.Time {
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return parsed
		}
	}
	if t.Date != "" {
		if parsed, err := time.Parse("2006-01-02", t.Date); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// translateError maps the provider's credential failures onto
// calendar.ErrInvalidGrant so callers can trigger the reconnect flow.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.ErrorCode == "invalid_grant" {
		return calendar.ErrInvalidGrant
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusUnauthorized {
		return calendar.ErrInvalidGrant
	}
	return err
}
