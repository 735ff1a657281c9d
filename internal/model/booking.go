package model

import "time"

// Room identifies one of the bookable meeting rooms.  The set is closed;
// new rooms require a code change and a migration of the ENUM column.
type Room string

const (
	RoomMachado Room = "MACHADO"
	RoomFranca  Room = "FRANCA"
	RoomSantos  Room = "SANTOS"
)

// Rooms lists every room in display order.
func Rooms() []Room {
	return []Room{RoomMachado, RoomFranca, RoomSantos}
}

// Valid reports whether r belongs to the fixed room set.
func (r Room) Valid() bool {
	switch r {
	case RoomMachado, RoomFranca, RoomSantos:
		return true
	}
	return false
}

// Label returns the human-friendly room name.
func (r Room) Label() string {
	switch r {
	case RoomMachado:
		return "Machado"
	case RoomFranca:
		return "Franca"
	case RoomSantos:
		return "Santos"
	}
	return string(r)
}

// Booking reserves one room for a time interval on a local day.
//
// Fields:
//  ID        – opaque identifier assigned at creation.
//  Name      – requester label (2–100 characters).
//  Room      – booked room.
//  Date      – local midnight of the booked day; the time of day carries
//              no meaning.
//  StartTime – "HH:mm" wall-clock start, inclusive.
//  EndTime   – "HH:mm" wall-clock end, exclusive.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
	ID        string    `json:"id"`        // bookings.id
	Name      string    `json:"name"`      // bookings.name
	Room      Room      `json:"room"`      // bookings.room
	Date      time.Time `json:"date"`      // bookings.date
	StartTime string    `json:"startTime"` // bookings.start_time
	EndTime   string    `json:"endTime"`   // bookings.end_time
	CreatedAt time.Time `json:"createdAt"` // bookings.created_at
	UpdatedAt time.Time `json:"updatedAt"` // bookings.updated_at
}
