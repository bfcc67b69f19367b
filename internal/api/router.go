package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"roombook-backend/config"
	"roombook-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/login", h.Login)

		// GET /api/rooms — the static catalog never changes at runtime.
		api.GET("/rooms", caching, h.ListRooms)

		authed := api.Group("")
		authed.Use(mw.RequireAuth(h.auth))
		{
			authed.GET("/rooms/available", h.FindAvailableRooms)

			authed.POST("/bookings", h.CreateBooking)
			authed.GET("/bookings", h.MyBookings)
			authed.POST("/bookings/:id/cancel", h.CancelBooking)

			authed.GET("/notifications", h.ListNotifications)
			authed.POST("/notifications/read", h.MarkNotificationsRead)
		}

		admin := api.Group("/admin")
		admin.Use(mw.RequireAuth(h.auth), mw.RequireAdmin())
		{
			admin.GET("/bookings", h.AllBookings)
			admin.GET("/grid", h.DayGrid)
			admin.POST("/bookings/:id/decision", h.DecideBooking)
		}
	}

	return r
}
