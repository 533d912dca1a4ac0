package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/store"
)

type SettingsHandler struct {
	users store.UserStore
	log   *slog.Logger
}

func NewSettingsHandler(users store.UserStore, log *slog.Logger) *SettingsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SettingsHandler{
		users: users,
		log:   log.With(slog.String("component", "http.settings")),
	}
}

type settingsResponse struct {
	GapMinutes         int    `json:"appointment_gap_minutes"`
	AutoCompleteStatus string `json:"auto_complete_status"`
	Currency           string `json:"currency"`
	CalendarConnected  bool   `json:"calendar_connected"`
}

func toSettingsResponse(u domain.User) settingsResponse {
	return settingsResponse{
		GapMinutes:         u.GapMinutes,
		AutoCompleteStatus: string(u.AutoCompleteStatus),
		Currency:           u.Currency,
		CalendarConnected:  u.CalendarConnected(),
	}
}

// GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), ownerID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(user))
}

type updateSettingsRequest struct {
	GapMinutes         *int    `json:"appointment_gap_minutes"`
	AutoCompleteStatus *string `json:"auto_complete_status"`
	Currency           *string `json:"currency"`
}

// PUT /api/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := store.SettingsPatch{
		GapMinutes: req.GapMinutes,
		Currency:   req.Currency,
	}
	if req.GapMinutes != nil && *req.GapMinutes < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointment_gap_minutes must not be negative"})
		return
	}
	if req.AutoCompleteStatus != nil {
		status, ok := domain.ParseStatus(*req.AutoCompleteStatus)
		if !ok || status == domain.StatusScheduled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "auto_complete_status must be finished, canceled or noshow"})
			return
		}
		patch.AutoCompleteStatus = &status
	}

	user, err := h.users.UpdateSettings(c.Request.Context(), ownerID(c), patch)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(user))
}
