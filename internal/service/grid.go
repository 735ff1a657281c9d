package service

import (
	"context"
	"fmt"

	"github.com/seconfreq-lang/AgendarSala/internal/model"
	"github.com/seconfreq-lang/AgendarSala/internal/timeutil"
)

// GridSlot is one row of a room's day grid.  A slot covers
// [Time, next slot); the closing 22:00 boundary is never occupied.
type GridSlot struct {
	Time      string `json:"time"`
	Occupied  bool   `json:"occupied"`
	BookingID string `json:"bookingId,omitempty"`
	Name      string `json:"name,omitempty"`
	// Starts and Span are set on the slot where a booking begins; Span
	// counts how many slots it covers.
	Starts bool `json:"starts,omitempty"`
	Span   int  `json:"span,omitempty"`
}

// RoomGrid is the slot-by-slot occupancy of one room on one local day.
type RoomGrid struct {
	Room        model.Room `json:"room"`
	Label       string     `json:"label"`
	Date        string     `json:"date"`
	DisplayDate string     `json:"displayDate"`
	Bookings    int        `json:"bookings"`
	Slots       []GridSlot `json:"slots"`
}

// RoomGrid builds the day grid for room on date (2006-01-02).
func (s *BookingService) RoomGrid(ctx context.Context, room, date string) (*RoomGrid, error) {
	r := model.Room(room)
	if !r.Valid() {
		return nil, ErrInvalidRoom
	}
	d, err := s.zone.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	day := s.zone.StartOfLocalDay(d)
	bookings, err := s.store.ListRoomDay(ctx, r, day)
	if err != nil {
		return nil, fmt.Errorf("list room day: %w", err)
	}
	slots, err := buildSlots(bookings)
	if err != nil {
		return nil, err
	}
	return &RoomGrid{
		Room:        r,
		Label:       r.Label(),
		Date:        s.zone.FormatDateKey(day),
		DisplayDate: s.zone.FormatDate(day),
		Bookings:    len(bookings),
		Slots:       slots,
	}, nil
}

func buildSlots(bookings []model.Booking) ([]GridSlot, error) {
	times := timeutil.GenerateSlots()
	out := make([]GridSlot, len(times))
	for i, t := range times {
		out[i].Time = t
		if i == len(times)-1 {
			break
		}
		next := times[i+1]
		for _, b := range bookings {
			overlap, err := timeutil.IntervalsOverlap(t, next, b.StartTime, b.EndTime)
			if err != nil {
				return nil, err
			}
			if !overlap {
				continue
			}
			out[i].Occupied = true
			out[i].BookingID = b.ID
			out[i].Name = b.Name
			if b.StartTime == t {
				out[i].Starts = true
				out[i].Span = span(times, b)
			}
			break
		}
	}
	return out, nil
}

// span counts the slots from b's start up to the first boundary at or
// after its end.
func span(times []string, b model.Booking) int {
	start := -1
	for i, t := range times {
		if t == b.StartTime {
			start = i
		}
		if start >= 0 && t >= b.EndTime {
			return i - start
		}
	}
	if start < 0 {
		return 1
	}
	return len(times) - start
}
