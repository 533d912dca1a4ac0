// Package http is the REST surface over the lifecycle and sync services.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Appointments *AppointmentsHandler
	Calendar     *CalendarHandler
	Catalog      *CatalogHandler
	Settings     *SettingsHandler
	JWTSecret    string
	Log          *slog.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// OAuth callback arrives from the provider without our bearer token.
	router.GET("/oauth2callback", d.Calendar.OAuthCallback)

	api := router.Group("/api")
	api.Use(AuthMiddleware(d.JWTSecret))
	{
		api.POST("/appointments", d.Appointments.Create)
		api.GET("/appointments", d.Appointments.List)
		api.PATCH("/appointments/:id", d.Appointments.Update)
		api.DELETE("/appointments/:id", d.Appointments.Delete)
		api.GET("/stats", d.Appointments.Stats)

		api.GET("/calendar/auth", d.Calendar.Auth)
		api.POST("/calendar/sync", d.Calendar.Sync)
		api.DELETE("/calendar", d.Calendar.Disconnect)

		api.GET("/settings", d.Settings.Get)
		api.PUT("/settings", d.Settings.Update)

		api.POST("/services", d.Catalog.Create)
		api.GET("/services", d.Catalog.List)
		api.PATCH("/services/:id", d.Catalog.Update)
		api.DELETE("/services/:id", d.Catalog.Delete)
	}

	return router
}
