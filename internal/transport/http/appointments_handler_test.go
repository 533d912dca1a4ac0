package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trimlyt/backend/internal/domain"
	"trimlyt/backend/internal/service/appointments"
	"trimlyt/backend/internal/store"
)

type fakeAppointmentsService struct {
	createFunc func(ctx context.Context, in appointments.CreateInput) (domain.Appointment, error)
	listFunc   func(ctx context.Context, ownerID string, in appointments.ListInput) ([]domain.Appointment, error)
	updateFunc func(ctx context.Context, ownerID string, id uuid.UUID, in appointments.UpdateInput) (domain.Appointment, error)
	deleteFunc func(ctx context.Context, ownerID string, id uuid.UUID) error
	statsFunc  func(ctx context.Context, ownerID string, from, to time.Time) (store.Stats, error)
}

func (f *fakeAppointmentsService) Create(ctx context.Context, in appointments.CreateInput) (domain.Appointment, error) {
	return f.createFunc(ctx, in)
}

func (f *fakeAppointmentsService) List(ctx context.Context, ownerID string, in appointments.ListInput) ([]domain.Appointment, error) {
	return f.listFunc(ctx, ownerID, in)
}

func (f *fakeAppointmentsService) Update(ctx context.Context, ownerID string, id uuid.UUID, in appointments.UpdateInput) (domain.Appointment, error) {
	return f.updateFunc(ctx, ownerID, id, in)
}

func (f *fakeAppointmentsService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return f.deleteFunc(ctx, ownerID, id)
}

func (f *fakeAppointmentsService) Stats(ctx context.Context, ownerID string, from, to time.Time) (store.Stats, error) {
	return f.statsFunc(ctx, ownerID, from, to)
}

func testRouter(svc appointmentsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAppointmentsHandler(svc, nil)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ownerContextKey, "barber")
	})
	router.POST("/api/appointments", h.Create)
	router.GET("/api/appointments", h.List)
	router.PATCH("/api/appointments/:id", h.Update)
	router.DELETE("/api/appointments/:id", h.Delete)
	router.GET("/api/stats", h.Stats)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAppointment(t *testing.T) {
	date := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	svc := &fakeAppointmentsService{
		createFunc: func(ctx context.Context, in appointments.CreateInput) (domain.Appointment, error) {
			if in.OwnerID != "barber" {
				t.Errorf("owner id = %q, want barber", in.OwnerID)
			}
			return domain.Appointment{
				ID: uuid.New(), OwnerID: in.OwnerID, Service: in.Service,
				Price: in.Price, Date: in.Date, Status: domain.StatusScheduled,
			}, nil
		},
	}
	router := testRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/appointments",
		`{"service":"Haircut","price":25,"date":"2024-07-01T10:00:00Z"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}

	var got appointmentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Service != "Haircut" || got.Price != 25 || !got.Date.Equal(date) {
		t.Errorf("response = %+v", got)
	}

	// Dates must be RFC3339.
	w = doRequest(router, http.MethodPost, "/api/appointments",
		`{"service":"Haircut","date":"tomorrow at ten"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", w.Code)
	}
}

func TestCreateAppointment_ConflictMapsTo409(t *testing.T) {
	svc := &fakeAppointmentsService{
		createFunc: func(ctx context.Context, in appointments.CreateInput) (domain.Appointment, error) {
			return domain.Appointment{}, &appointments.ConflictError{GapMinutes: 60}
		},
	}
	router := testRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/appointments",
		`{"service":"Haircut","date":"2024-07-01T10:30:00Z"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if !strings.Contains(w.Body.String(), "60") {
		t.Errorf("conflict body does not mention the gap: %s", w.Body.String())
	}
}

func TestListAppointments_PassesQuery(t *testing.T) {
	var gotIn appointments.ListInput
	svc := &fakeAppointmentsService{
		listFunc: func(ctx context.Context, ownerID string, in appointments.ListInput) ([]domain.Appointment, error) {
			gotIn = in
			return []domain.Appointment{{ID: uuid.New(), Service: "Haircut", Status: domain.StatusScheduled}}, nil
		},
	}
	router := testRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/appointments?filter=upcoming&page=2&limit=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if gotIn.Filter != store.FilterUpcoming || gotIn.Page != 2 || gotIn.Limit != 10 {
		t.Errorf("list input = %+v", gotIn)
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Count != 1 {
		t.Errorf("count = %d, want 1", body.Count)
	}

	w = doRequest(router, http.MethodGet, "/api/appointments?page=two", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad page status = %d, want 400", w.Code)
	}
}

func TestUpdateAppointment_ZeroPriceReachesService(t *testing.T) {
	var gotIn appointments.UpdateInput
	svc := &fakeAppointmentsService{
		updateFunc: func(ctx context.Context, ownerID string, id uuid.UUID, in appointments.UpdateInput) (domain.Appointment, error) {
			gotIn = in
			return domain.Appointment{ID: id, Service: "Haircut", Status: domain.StatusScheduled}, nil
		},
	}
	router := testRouter(svc)

	id := uuid.New()
	w := doRequest(router, http.MethodPatch, "/api/appointments/"+id.String(), `{"price":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if gotIn.Price == nil || *gotIn.Price != 0 {
		t.Errorf("price patch = %v, want explicit 0", gotIn.Price)
	}
	if gotIn.Service != nil || gotIn.Date != nil || gotIn.Status != nil {
		t.Errorf("omitted fields reached the service: %+v", gotIn)
	}

	w = doRequest(router, http.MethodPatch, "/api/appointments/not-a-uuid", `{"price":0}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", w.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"validation", &appointments.ConflictError{GapMinutes: 30}, http.StatusConflict},
		{"not owner", appointments.ErrNotOwner, http.StatusForbidden},
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAppointmentsService{
				deleteFunc: func(ctx context.Context, ownerID string, id uuid.UUID) error {
					return tc.err
				},
			}
			router := testRouter(svc)
			w := doRequest(router, http.MethodDelete, "/api/appointments/"+uuid.NewString(), "")
			if w.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tc.wantCode)
			}
		})
	}
}

func TestDeleteAppointment_NoContent(t *testing.T) {
	svc := &fakeAppointmentsService{
		deleteFunc: func(ctx context.Context, ownerID string, id uuid.UUID) error { return nil },
	}
	router := testRouter(svc)

	w := doRequest(router, http.MethodDelete, "/api/appointments/"+uuid.NewString(), "")
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	svc := &fakeAppointmentsService{
		statsFunc: func(ctx context.Context, ownerID string, from, to time.Time) (store.Stats, error) {
			return store.Stats{Revenue: 40, Finished: 2, NoShow: 1}, nil
		},
	}
	router := testRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/stats?from=2024-06-01T00:00:00Z&to=2024-07-01T00:00:00Z", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var body struct {
		Revenue float64 `json:"revenue"`
		NoShow  int64   `json:"no_show"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Revenue != 40 || body.NoShow != 1 {
		t.Errorf("stats body = %+v", body)
	}

	w = doRequest(router, http.MethodGet, "/api/stats?from=june&to=july", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad window status = %d, want 400", w.Code)
	}
}
