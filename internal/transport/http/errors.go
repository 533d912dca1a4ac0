package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"trimlyt/backend/internal/calendar"
	"trimlyt/backend/internal/service/appointments"
	"trimlyt/backend/internal/service/calendarsync"
	"trimlyt/backend/internal/service/catalog"
	"trimlyt/backend/internal/store"
)

// writeError maps service error kinds onto HTTP responses. Messages from
// validation and conflict errors are user-facing and pass through verbatim.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	var apptValidation *appointments.ValidationError
	var catalogValidation *catalog.ValidationError
	if errors.As(err, &apptValidation) || errors.As(err, &catalogValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var conflict *appointments.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
		return
	}

	if errors.Is(err, appointments.ErrNotOwner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "appointment belongs to a different user"})
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if errors.Is(err, calendar.ErrNotConnected) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no calendar connected"})
		return
	}
	if errors.Is(err, calendar.ErrInvalidGrant) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "calendar access was revoked; reconnect your calendar",
			"code":  "calendar_reconnect_required",
		})
		return
	}

	var syncErr *calendarsync.SyncError
	if errors.As(err, &syncErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": syncErr.Error()})
		return
	}

	log.Error("request failed", slog.Any("err", err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
