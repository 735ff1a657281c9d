package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler answers liveness and readiness checks.  Ping checks the
// backing store; it is nil for the in-memory store.
type HealthHandler struct {
	Backend string
	Ping    func(ctx context.Context) error
}

// Health is the liveness check.  It returns a plain text "ok" with 200.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready reports 503 when the store cannot be reached.
func (h *HealthHandler) Ready(c echo.Context) error {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "store": h.Backend})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ready", "store": h.Backend})
}
