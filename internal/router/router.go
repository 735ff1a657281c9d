package router // package router defines how HTTP routes are registered for the API

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/seconfreq-lang/AgendarSala/internal/config"
	"github.com/seconfreq-lang/AgendarSala/internal/handler"
	"github.com/seconfreq-lang/AgendarSala/internal/middleware"
)

// RegisterRoutes registers the health endpoints that sit outside /v1.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
	e.GET("/readyz", h.Ready)
}

// RegisterBookings registers the booking API under /v1.  Reads go
// through the Redis response cache; writes are rate limited and flush
// that cache once they succeed.  A nil rdb disables both.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, rdb *redis.Client, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, logger *slog.Logger) {
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	limit := middleware.NewTokenBucket(rlCfg, rdb, logger)
	flush := middleware.InvalidateOnWrite(cacheCfg, rdb, logger)

	g := e.Group("/v1")

	// Static reference data, cheap enough to skip the cache.
	g.GET("/rooms", h.ListRooms)
	g.GET("/slots", h.ListSlots)

	g.GET("/rooms/:room/grid", h.RoomGrid, cache)
	g.GET("/bookings", h.ListBookings, cache)
	g.GET("/bookings/:id", h.GetBooking, cache)

	g.POST("/bookings", h.CreateBooking, limit, flush)
	g.PATCH("/bookings/:id", h.UpdateBooking, limit, flush)
	g.PUT("/bookings/:id", h.UpdateBooking, limit, flush)
	g.DELETE("/bookings/:id", h.DeleteBooking, limit, flush)
}
