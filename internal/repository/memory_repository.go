package repository

import (
	"context"
	"sync"
	"time"

	"github.com/seconfreq-lang/AgendarSala/internal/model"
	"github.com/seconfreq-lang/AgendarSala/internal/timeutil"
)

// MemoryBookingRepo keeps bookings in process memory.  It backs demo
// deployments that have no database and the handler tests.  A single
// mutex makes every check-and-write atomic.
type MemoryBookingRepo struct {
	mu   sync.Mutex
	byID map[string]model.Booking
	zone *timeutil.Zone
	now  func() time.Time
}

// NewMemoryBookingRepo returns an empty store whose day boundaries are
// computed in zone.
func NewMemoryBookingRepo(zone *timeutil.Zone) *MemoryBookingRepo {
	return &MemoryBookingRepo{
		byID: make(map[string]model.Booking),
		zone: zone,
		now:  time.Now,
	}
}

// Seed stores bs as-is, bypassing conflict checks.  Existing ids are
// overwritten.
func (r *MemoryBookingRepo) Seed(bs ...model.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range bs {
		b.Date = r.zone.StartOfLocalDay(b.Date)
		r.byID[b.ID] = b
	}
}

// Len reports how many bookings are stored.
func (r *MemoryBookingRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *MemoryBookingRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Booking
	for _, b := range r.byID {
		if !b.Date.Before(from) && b.Date.Before(to) {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func (r *MemoryBookingRepo) ListRoomDay(ctx context.Context, room model.Room, day time.Time) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roomDayLocked(room, day), nil
}

func (r *MemoryBookingRepo) roomDayLocked(room model.Room, day time.Time) []model.Booking {
	var out []model.Booking
	for _, b := range r.byID {
		if b.Room == room && r.zone.SameLocalDay(b.Date, day) {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out
}

func (r *MemoryBookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (r *MemoryBookingRepo) Create(ctx context.Context, b *model.Booking, check ConflictCheck) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byID[b.ID]; dup {
		return ErrConflict
	}
	if check != nil {
		if err := check(r.roomDayLocked(b.Room, b.Date)); err != nil {
			return err
		}
	}
	now := r.now().UTC()
	b.Date = r.zone.StartOfLocalDay(b.Date)
	b.CreatedAt, b.UpdatedAt = now, now
	r.byID[b.ID] = *b
	return nil
}

func (r *MemoryBookingRepo) Update(ctx context.Context, b *model.Booking, check ConflictCheck) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.byID[b.ID]
	if !ok {
		return ErrBookingNotFound
	}
	if check != nil {
		if err := check(r.roomDayLocked(b.Room, b.Date)); err != nil {
			return err
		}
	}
	b.Date = r.zone.StartOfLocalDay(b.Date)
	b.CreatedAt, b.UpdatedAt = prev.CreatedAt, r.now().UTC()
	r.byID[b.ID] = *b
	return nil
}

func (r *MemoryBookingRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrBookingNotFound
	}
	delete(r.byID, id)
	return nil
}
