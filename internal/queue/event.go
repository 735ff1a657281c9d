// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingQueueName is the durable queue every booking lifecycle event is
// routed to.
const BookingQueueName = "booking.events"

// Event types carried in BookingEvent.Type.
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published after a booking is created, replaced or
// cancelled.  It holds enough for an audit trail without reading the
// primary store.  Date is the local calendar day (2006-01-02); StartsAt
// and EndsAt are the same interval as RFC 3339 instants in UTC.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"booking_id"`
	Name       string `json:"name"`
	Room       string `json:"room"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	StartsAt   string `json:"starts_at,omitempty"`
	EndsAt     string `json:"ends_at,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
