package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/service/catalog"
)

type catalogService interface {
	Create(ctx context.Context, in catalog.CreateInput) (domain.ServiceItem, error)
	List(ctx context.Context, ownerID string) ([]domain.ServiceItem, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, in catalog.UpdateInput) (domain.ServiceItem, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

func NewCatalogHandler(svc catalogService, log *slog.Logger) *CatalogHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CatalogHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.catalog")),
	}
}

type serviceItemResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toServiceItemResponse(s domain.ServiceItem) serviceItemResponse {
	return serviceItemResponse{
		ID:              s.ID.String(),
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type createServiceRequest struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// POST /api/services
func (h *CatalogHandler) Create(c *gin.Context) {
	var req createServiceRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.svc.Create(c.Request.Context(), catalog.CreateInput{
		OwnerID:         ownerID(c),
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toServiceItemResponse(item))
}

// GET /api/services
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), ownerID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]serviceItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toServiceItemResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"services": out, "count": len(out)})
}

type updateServiceRequest struct {
	Name            *string  `json:"name"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"duration_minutes"`
}

// PATCH /api/services/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service id must be a UUID"})
		return
	}

	var req updateServiceRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.svc.Update(c.Request.Context(), ownerID(c), id, catalog.UpdateInput{
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toServiceItemResponse(item))
}

// DELETE /api/services/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service id must be a UUID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), ownerID(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
