package service

import (
	"context"
	"fmt"

	"github.com/seconfreq-lang/AgendarSala/internal/booking"
	"github.com/seconfreq-lang/AgendarSala/internal/model"
)

// DemoInputs returns the demo bookings placed on today's local date.
func (s *BookingService) DemoInputs() []booking.Input {
	today := s.zone.FormatDateKey(s.zone.CurrentLocalDate())
	return []booking.Input{
		{Name: "Teste Machado", Room: model.RoomMachado, Date: today, StartTime: "10:00", EndTime: "11:00"},
		{Name: "Treinamento", Room: model.RoomFranca, Date: today, StartTime: "14:00", EndTime: "15:30"},
		{Name: "Reunião Comercial", Room: model.RoomSantos, Date: today, StartTime: "16:00", EndTime: "17:00"},
	}
}

// SeedDemo creates the demo bookings through the regular create path, so
// they are validated and conflict checked like any other request.
func (s *BookingService) SeedDemo(ctx context.Context) ([]*model.Booking, error) {
	inputs := s.DemoInputs()
	out := make([]*model.Booking, 0, len(inputs))
	for _, in := range inputs {
		b, err := s.Create(ctx, in)
		if err != nil {
			return out, fmt.Errorf("seed %s %s: %w", in.Room, in.StartTime, err)
		}
		out = append(out, b)
	}
	return out, nil
}
