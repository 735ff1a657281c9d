// Package service coordinates validation, storage and event publication
// for the booking endpoints.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/seconfreq-lang/AgendarSala/internal/booking"
	"github.com/seconfreq-lang/AgendarSala/internal/model"
	q "github.com/seconfreq-lang/AgendarSala/internal/queue"
	"github.com/seconfreq-lang/AgendarSala/internal/repository"
	"github.com/seconfreq-lang/AgendarSala/internal/timeutil"
)

// Request errors that map to 400 responses.
var (
	ErrInvalidRange = errors.New("from and to must be valid dates with from <= to")
	ErrInvalidRoom  = errors.New("invalid room")
	ErrInvalidDate  = errors.New("invalid date")
)

// maxRangeDays bounds a listing so a careless query cannot scan the table.
const maxRangeDays = 93

// publishTimeout caps how long a write waits on the broker.
const publishTimeout = 3 * time.Second

// BookingService implements the booking use cases on top of a
// BookingStore.
type BookingService struct {
	store     repository.BookingStore
	validator *booking.Validator
	zone      *timeutil.Zone
	publisher Publisher
	logger    *slog.Logger
	newID     func() string
}

// NewBookingService wires a service.  A nil publisher disables events.
func NewBookingService(store repository.BookingStore, v *booking.Validator, zone *timeutil.Zone, pub Publisher, logger *slog.Logger) *BookingService {
	if store == nil || v == nil || zone == nil || logger == nil {
		panic("nil dependency passed to NewBookingService")
	}
	if pub == nil {
		pub = NopPublisher{}
	}
	return &BookingService{
		store:     store,
		validator: v,
		zone:      zone,
		publisher: pub,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Zone returns the timezone the service works in.
func (s *BookingService) Zone() *timeutil.Zone { return s.zone }

// List returns the bookings of every local day from `from` to `to`,
// both inclusive, ordered by date and start time.
func (s *BookingService) List(ctx context.Context, from, to string) ([]model.Booking, error) {
	if from == "" || to == "" {
		return nil, ErrInvalidRange
	}
	f, err := s.zone.ParseDate(from)
	if err != nil {
		return nil, ErrInvalidRange
	}
	t, err := s.zone.ParseDate(to)
	if err != nil {
		return nil, ErrInvalidRange
	}
	start := s.zone.StartOfLocalDay(f)
	end := s.zone.NextLocalDay(t)
	if !start.Before(end) || end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, ErrInvalidRange
	}
	bs, err := s.store.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bs == nil {
		bs = []model.Booking{}
	}
	return bs, nil
}

// Get returns one booking or repository.ErrBookingNotFound.
func (s *BookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	return s.store.GetByID(ctx, id)
}

// Create validates in, checks it against the room's bookings for that
// day and stores it.  Failures are a *booking.ShapeError, a
// *booking.Conflict or a storage error.
func (s *BookingService) Create(ctx context.Context, in booking.Input) (*model.Booking, error) {
	cand, err := s.validator.ValidateShape(in)
	if err != nil {
		return nil, err
	}
	b := &model.Booking{ID: s.newID()}
	cand.Apply(b)
	if err := s.store.Create(ctx, b, s.conflictCheck(cand, "")); err != nil {
		return nil, err
	}
	s.logger.Info("booking created", "booking_id", b.ID, "room", b.Room, "date", s.zone.FormatDateKey(b.Date), "start", b.StartTime, "end", b.EndTime)
	s.publish(ctx, q.EventBookingCreated, b)
	return b, nil
}

// Update replaces every field of booking id with in, re-running shape
// validation and the conflict check against all other bookings.
func (s *BookingService) Update(ctx context.Context, id string, in booking.Input) (*model.Booking, error) {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, err
	}
	cand, err := s.validator.ValidateShape(in)
	if err != nil {
		return nil, err
	}
	b := &model.Booking{ID: id}
	cand.Apply(b)
	if err := s.store.Update(ctx, b, s.conflictCheck(cand, id)); err != nil {
		return nil, err
	}
	s.logger.Info("booking updated", "booking_id", b.ID, "room", b.Room, "date", s.zone.FormatDateKey(b.Date), "start", b.StartTime, "end", b.EndTime)
	s.publish(ctx, q.EventBookingUpdated, b)
	return b, nil
}

// Cancel deletes booking id.
func (s *BookingService) Cancel(ctx context.Context, id string) error {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("booking cancelled", "booking_id", id)
	s.publish(ctx, q.EventBookingCancelled, b)
	return nil
}

func (s *BookingService) conflictCheck(cand booking.Candidate, excludeID string) repository.ConflictCheck {
	return func(existing []model.Booking) error {
		c, err := s.validator.FindConflict(cand, existing, excludeID)
		if err != nil {
			return fmt.Errorf("conflict check: %w", err)
		}
		if c != nil {
			return c
		}
		return nil
	}
}

func (s *BookingService) publish(ctx context.Context, typ string, b *model.Booking) {
	ev := q.BookingEvent{
		Type:       typ,
		BookingID:  b.ID,
		Name:       b.Name,
		Room:       string(b.Room),
		Date:       s.zone.FormatDateKey(b.Date),
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if at, err := s.zone.At(b.Date, b.StartTime); err == nil {
		ev.StartsAt = at.UTC().Format(time.RFC3339)
	}
	if at, err := s.zone.At(b.Date, b.EndTime); err == nil {
		ev.EndsAt = at.UTC().Format(time.RFC3339)
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("publish booking event failed", "type", typ, "booking_id", b.ID, "err", err)
	}
}
