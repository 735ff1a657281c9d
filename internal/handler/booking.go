package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seconfreq-lang/AgendarSala/internal/booking"
	"github.com/seconfreq-lang/AgendarSala/internal/model"
	"github.com/seconfreq-lang/AgendarSala/internal/repository"
	"github.com/seconfreq-lang/AgendarSala/internal/service"
	"github.com/seconfreq-lang/AgendarSala/internal/timeutil"
)

// BookingHandler exposes the booking service over HTTP.  It only maps
// requests to service calls and errors to status codes:
// ShapeError -> 400, Conflict -> 409, ErrBookingNotFound -> 404 and
// anything else -> 500.
type BookingHandler struct {
	Service *service.BookingService
	Logger  *slog.Logger
}

// NewBookingHandler panics if a dependency is nil.
func NewBookingHandler(svc *service.BookingService, logger *slog.Logger) *BookingHandler {
	if svc == nil || logger == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Service: svc, Logger: logger}
}

type roomView struct {
	ID    model.Room `json:"id"`
	Label string     `json:"label"`
}

// ListRooms handles GET /v1/rooms.
func (h *BookingHandler) ListRooms(c echo.Context) error {
	rooms := model.Rooms()
	out := make([]roomView, len(rooms))
	for i, r := range rooms {
		out[i] = roomView{ID: r, Label: r.Label()}
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// ListSlots handles GET /v1/slots.
func (h *BookingHandler) ListSlots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"slots": timeutil.GenerateSlots()})
}

// RoomGrid handles GET /v1/rooms/:room/grid?date=YYYY-MM-DD.  Without a
// date it shows today.
func (h *BookingHandler) RoomGrid(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = h.Service.Zone().FormatDateKey(h.Service.Zone().CurrentLocalDate())
	}
	grid, err := h.Service.RoomGrid(c.Request().Context(), c.Param("room"), date)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, grid)
}

// ListBookings handles GET /v1/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Both bounds are required and inclusive.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	bookings, err := h.Service.List(c.Request().Context(), c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// GetBooking handles GET /v1/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	b, err := h.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// CreateBooking handles POST /v1/bookings and returns 201 with the
// stored booking.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var in booking.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	b, err := h.Service.Create(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

// UpdateBooking handles PATCH /v1/bookings/:id.  The body must carry
// every field; the booking is replaced, not merged.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	var in booking.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	b, err := h.Service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// DeleteBooking handles DELETE /v1/bookings/:id.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	if err := h.Service.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// fail writes the response for err.
func (h *BookingHandler) fail(c echo.Context, err error) error {
	var shape *booking.ShapeError
	var conflict *booking.Conflict
	switch {
	case errors.As(err, &shape):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking", "details": shape.Fields})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": conflict.Error(),
			"conflict": echo.Map{
				"id":        conflict.Existing.ID,
				"startTime": conflict.StartTime,
				"endTime":   conflict.EndTime,
			},
		})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already exists"})
	case errors.Is(err, service.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from and to are required dates (YYYY-MM-DD) with from <= to"})
	case errors.Is(err, service.ErrInvalidRoom):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room"})
	case errors.Is(err, service.ErrInvalidDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	h.Logger.Error("booking request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
