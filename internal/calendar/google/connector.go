// Package google implements the calendar provider abstraction on top of the
// Google Calendar API.
package google

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"trimlyt/backend/internal/calendar"
	"trimlyt/backend/internal/domain"
)

type Connector struct {
	oauth      *oauth2.Config
	calendarID string
}

func NewConnector(clientID, clientSecret, redirectURL, calendarID string) *Connector {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Connector{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{gcal.CalendarEventsScope},
			Endpoint:     googleauth.Endpoint,
		},
		calendarID: calendarID,
	}
}

// Configured reports whether OAuth client credentials were provided.
func (c *Connector) Configured() bool {
	return c.oauth.ClientID != "" && c.oauth.ClientSecret != "" && c.oauth.RedirectURL != ""
}

func (c *Connector) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token and returns it as JSON,
// the form it is stored in on the user row.
func (c *Connector) Exchange(ctx context.Context, code string) (string, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange authorization code: %w", err)
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (c *Connector) ClientFor(ctx context.Context, user domain.User) (calendar.Client, error) {
	if !user.CalendarConnected() {
		return nil, calendar.ErrNotConnected
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(user.GoogleToken), &token); err != nil {
		return nil, fmt.Errorf("stored calendar token is malformed: %w", err)
	}

	httpClient := c.oauth.Client(ctx, &token)
	svc, err := gcal.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	calendarID := user.GoogleCalendarID
	if calendarID == "" {
		calendarID = c.calendarID
	}
	return &client{svc: svc, calendarID: calendarID}, nil
}
