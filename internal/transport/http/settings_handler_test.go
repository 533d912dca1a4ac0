package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func settingsTestRouter(users *fakeUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSettingsHandler(users, nil)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set(ownerContextKey, "barber") })
	router.GET("/api/settings", h.Get)
	router.PUT("/api/settings", h.Update)
	return router
}

func TestSettingsUpdate(t *testing.T) {
	router := settingsTestRouter(&fakeUserStore{})

	// Gap zero is a legal value: it disables the conflict check.
	w := doRequest(router, http.MethodPut, "/api/settings", `{"appointment_gap_minutes":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	var body settingsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.GapMinutes != 0 {
		t.Errorf("gap = %d, want 0", body.GapMinutes)
	}

	cases := []struct {
		name string
		json string
	}{
		{"negative gap", `{"appointment_gap_minutes":-5}`},
		{"scheduled rollover", `{"auto_complete_status":"scheduled"}`},
		{"unknown rollover", `{"auto_complete_status":"done"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := doRequest(router, http.MethodPut, "/api/settings", tc.json); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestSettingsUpdate_RolloverChoices(t *testing.T) {
	router := settingsTestRouter(&fakeUserStore{})

	for _, status := range []string{"finished", "canceled", "noshow"} {
		w := doRequest(router, http.MethodPut, "/api/settings", `{"auto_complete_status":"`+status+`"}`)
		if w.Code != http.StatusOK {
			t.Errorf("auto_complete_status=%s: status = %d; body %s", status, w.Code, w.Body.String())
		}
	}
}
