package repository

import (
	"context"
	"sort"
	"time"

	"github.com/seconfreq-lang/AgendarSala/internal/model"
)

// ConflictCheck inspects the bookings already stored for the room and
// local day being written and returns a non-nil error to abort the write.
type ConflictCheck func(existing []model.Booking) error

// BookingStore is the persistence boundary for bookings.  Create and
// Update run the check and the write as one atomic step per room and
// day, so two concurrent requests for the same slot cannot both pass.
type BookingStore interface {
	// ListBetween returns bookings whose day falls in [from, to), ordered
	// by date then start time.
	ListBetween(ctx context.Context, from, to time.Time) ([]model.Booking, error)
	// ListRoomDay returns every booking of room on the local day starting
	// at day.
	ListRoomDay(ctx context.Context, room model.Room, day time.Time) ([]model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Create(ctx context.Context, b *model.Booking, check ConflictCheck) error
	Update(ctx context.Context, b *model.Booking, check ConflictCheck) error
	Delete(ctx context.Context, id string) error
}

// dayKey identifies the lock unit shared by all bookings of one room on
// one local day.
type dayKey struct {
	room model.Room
	day  string // 2006-01-02 in the local zone
}

func (k dayKey) less(o dayKey) bool {
	if k.room != o.room {
		return k.room < o.room
	}
	return k.day < o.day
}

// sortedKeys returns the distinct keys in a fixed order so lock
// acquisition never deadlocks.
func sortedKeys(keys ...dayKey) []dayKey {
	seen := make(map[dayKey]struct{}, len(keys))
	out := make([]dayKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// sortBookings orders by date then start time.
func sortBookings(bs []model.Booking) {
	sort.SliceStable(bs, func(i, j int) bool {
		if !bs[i].Date.Equal(bs[j].Date) {
			return bs[i].Date.Before(bs[j].Date)
		}
		return bs[i].StartTime < bs[j].StartTime
	})
}
