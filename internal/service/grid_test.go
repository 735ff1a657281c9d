package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seconfreq-lang/AgendarSala/internal/booking"
	"github.com/seconfreq-lang/AgendarSala/internal/model"
)

func TestRoomGrid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.Create(ctx, input(model.RoomFranca, "2026-03-10", "14:00", "15:30"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, input(model.RoomSantos, "2026-03-10", "08:00", "09:00"))
	require.NoError(t, err)

	g, err := f.svc.RoomGrid(ctx, "FRANCA", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "Franca", g.Label)
	assert.Equal(t, "10/03/2026", g.DisplayDate)
	assert.Equal(t, 1, g.Bookings)
	require.Len(t, g.Slots, 29)

	bySlot := map[string]GridSlot{}
	for _, s := range g.Slots {
		bySlot[s.Time] = s
	}
	assert.False(t, bySlot["08:00"].Occupied)
	assert.False(t, bySlot["13:30"].Occupied)
	assert.True(t, bySlot["14:00"].Occupied)
	assert.True(t, bySlot["14:00"].Starts)
	assert.Equal(t, 3, bySlot["14:00"].Span)
	assert.Equal(t, b.ID, bySlot["14:30"].BookingID)
	assert.False(t, bySlot["14:30"].Starts)
	assert.True(t, bySlot["15:00"].Occupied)
	assert.False(t, bySlot["15:30"].Occupied)
	assert.False(t, bySlot["22:00"].Occupied)
}

func TestRoomGridLastSlotBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, input(model.RoomMachado, "2026-03-10", "21:00", "22:00"))
	require.NoError(t, err)

	g, err := f.svc.RoomGrid(ctx, "MACHADO", "2026-03-10")
	require.NoError(t, err)
	last := g.Slots[len(g.Slots)-1]
	assert.Equal(t, "22:00", last.Time)
	assert.False(t, last.Occupied)
	assert.Equal(t, 2, g.Slots[len(g.Slots)-3].Span)
}

func TestRoomGridRejectsInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RoomGrid(context.Background(), "LISBOA", "2026-03-10")
	assert.ErrorIs(t, err, ErrInvalidRoom)
	_, err = f.svc.RoomGrid(context.Background(), "FRANCA", "amanhã")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestSpanFallsBackForOffGridStart(t *testing.T) {
	times := []string{"08:00", "08:30", "09:00"}
	assert.Equal(t, 1, span(times, model.Booking{StartTime: "08:15", EndTime: "09:00"}))
	assert.Equal(t, 2, span(times, model.Booking{StartTime: "08:00", EndTime: "09:00"}))
	assert.Equal(t, 1, span(times, model.Booking{StartTime: "09:00", EndTime: "09:30"}))
}

func TestSeedDemo(t *testing.T) {
	f := newFixture(t)
	seeded, err := f.svc.SeedDemo(context.Background())
	require.NoError(t, err)
	require.Len(t, seeded, 3)
	assert.Equal(t, 3, f.store.Len())

	grid, err := f.svc.RoomGrid(context.Background(), string(model.RoomFranca), "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 1, grid.Bookings)

	// A second run collides with the first.
	_, err = f.svc.SeedDemo(context.Background())
	var conflict *booking.Conflict
	assert.ErrorAs(t, err, &conflict)
}
