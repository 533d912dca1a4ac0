package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/service/appointments"
	"trimlyt/backend/internal/store"
)

type appointmentsService interface {
	Create(ctx context.Context, in appointments.CreateInput) (domain.Appointment, error)
	List(ctx context.Context, ownerID string, in appointments.ListInput) ([]domain.Appointment, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, in appointments.UpdateInput) (domain.Appointment, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	Stats(ctx context.Context, ownerID string, from, to time.Time) (store.Stats, error)
}

type AppointmentsHandler struct {
	svc appointmentsService
	log *slog.Logger
}

func NewAppointmentsHandler(svc appointmentsService, log *slog.Logger) *AppointmentsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AppointmentsHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.appointments")),
	}
}

type appointmentResponse struct {
	ID              string    `json:"id"`
	Service         string    `json:"service"`
	Price           float64   `json:"price"`
	Date            time.Time `json:"date"`
	Extras          string    `json:"extras,omitempty"`
	Status          string    `json:"status"`
	ExternalEventID string    `json:"external_event_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toAppointmentResponse(a domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:              a.ID.String(),
		Service:         a.Service,
		Price:           a.Price,
		Date:            a.Date,
		Extras:          a.Extras,
		Status:          string(a.Status),
		ExternalEventID: a.ExternalEventID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

type createAppointmentRequest struct {
	Service string  `json:"service"`
	Price   float64 `json:"price"`
	Date    string  `json:"date"`
	Extras  string  `json:"extras"`
	Status  string  `json:"status"`
}

// POST /api/appointments
func (h *AppointmentsHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC3339"})
		return
	}

	var status domain.Status
	if req.Status != "" {
		parsed, ok := domain.ParseStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = parsed
	}

	appt, err := h.svc.Create(c.Request.Context(), appointments.CreateInput{
		OwnerID: ownerID(c),
		Service: req.Service,
		Price:   req.Price,
		Date:    date,
		Extras:  req.Extras,
		Status:  status,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toAppointmentResponse(appt))
}

// GET /api/appointments?filter=upcoming|past&page=&limit=
func (h *AppointmentsHandler) List(c *gin.Context) {
	page, err := intQuery(c, "page")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
		return
	}

	appts, err := h.svc.List(c.Request.Context(), ownerID(c), appointments.ListInput{
		Filter: store.ListFilter(c.Query("filter")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out := make([]appointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"appointments": out, "count": len(out)})
}

type updateAppointmentRequest struct {
	Service *string  `json:"service"`
	Price   *float64 `json:"price"`
	Date    *string  `json:"date"`
	Extras  *string  `json:"extras"`
	Status  *string  `json:"status"`
}

// PATCH /api/appointments/:id
func (h *AppointmentsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointment id must be a UUID"})
		return
	}

	var req updateAppointmentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := appointments.UpdateInput{
		Service: req.Service,
		Price:   req.Price,
		Extras:  req.Extras,
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC3339"})
			return
		}
		in.Date = &date
	}
	if req.Status != nil {
		status, ok := domain.ParseStatus(*req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		in.Status = &status
	}

	appt, err := h.svc.Update(c.Request.Context(), ownerID(c), id, in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toAppointmentResponse(appt))
}

// DELETE /api/appointments/:id
func (h *AppointmentsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointment id must be a UUID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), ownerID(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /api/stats?from=ISO&to=ISO
func (h *AppointmentsHandler) Stats(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), ownerID(c), from, to)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"revenue":   stats.Revenue,
		"scheduled": stats.Scheduled,
		"finished":  stats.Finished,
		"canceled":  stats.Canceled,
		"no_show":   stats.NoShow,
	})
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
