package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"trimlyt/backend/internal/store"
)

type pullSyncService interface {
	PullSync(ctx context.Context, ownerID string) (int, error)
}

type oauthConnector interface {
	Configured() bool
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
}

type CalendarHandler struct {
	sync      pullSyncService
	users     store.UserStore
	connector oauthConnector
	log       *slog.Logger
}

func NewCalendarHandler(sync pullSyncService, users store.UserStore, connector oauthConnector, log *slog.Logger) *CalendarHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CalendarHandler{
		sync:      sync,
		users:     users,
		connector: connector,
		log:       log.With(slog.String("component", "http.calendar")),
	}
}

// POST /api/calendar/sync
func (h *CalendarHandler) Sync(c *gin.Context) {
	imported, err := h.sync.PullSync(c.Request.Context(), ownerID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// GET /api/calendar/auth
func (h *CalendarHandler) Auth(c *gin.Context) {
	if !h.connector.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "calendar integration not configured"})
		return
	}
	state := fmt.Sprintf("user_%s_%d", ownerID(c), time.Now().Unix())
	c.JSON(http.StatusOK, gin.H{"auth_url": h.connector.AuthURL(state), "state": state})
}

// GET /oauth2callback — outside the auth middleware; the owner travels in
// the state parameter issued by Auth.
func (h *CalendarHandler) OAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code required"})
		return
	}

	owner, ok := ownerFromState(c.Query("state"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
		return
	}

	tokenJSON, err := h.connector.Exchange(c.Request.Context(), code)
	if err != nil {
		h.log.Warn("oauth code exchange failed", slog.String("owner_id", owner), slog.Any("err", err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to exchange code for token"})
		return
	}

	if err := h.users.SetCalendarCredentials(c.Request.Context(), owner, tokenJSON, "primary"); err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info("calendar connected", slog.String("owner_id", owner))
	c.JSON(http.StatusOK, gin.H{"message": "calendar connected"})
}

// DELETE /api/calendar
func (h *CalendarHandler) Disconnect(c *gin.Context) {
	if err := h.users.ClearCalendarCredentials(c.Request.Context(), ownerID(c)); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "calendar disconnected"})
}

func ownerFromState(state string) (string, bool) {
	rest, ok := strings.CutPrefix(state, "user_")
	if !ok {
		return "", false
	}
	i := strings.LastIndex(rest, "_")
	if i <= 0 {
		return "", false
	}
	return rest[:i], true
}
