// Package booking decides whether a proposed reservation is well formed
// and whether it collides with reservations that already exist.  It does
// no I/O: callers feed it raw input and the bookings they loaded for the
// target room and day.
package booking

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/seconfreq-lang/AgendarSala/internal/model"
	"github.com/seconfreq-lang/AgendarSala/internal/timeutil"
)

// Input is the raw booking payload as it arrives from a form or JSON body.
type Input struct {
	Name      string     `json:"name" validate:"min=2,max=100"`
	Room      model.Room `json:"room" validate:"room"`
	Date      string     `json:"date" validate:"required,local_date,not_past"`
	StartTime string     `json:"startTime" validate:"clock,business_hours,half_hour"`
	EndTime   string     `json:"endTime" validate:"clock,business_hours,half_hour"`
}

// Candidate is an Input that passed ValidateShape.  Date is already
// normalized to local midnight.
type Candidate struct {
	Name      string
	Room      model.Room
	Date      time.Time
	StartTime string
	EndTime   string
}

// Apply copies the candidate's fields onto b, leaving identity and
// timestamps alone.
func (c Candidate) Apply(b *model.Booking) {
	b.Name = c.Name
	b.Room = c.Room
	b.Date = c.Date
	b.StartTime = c.StartTime
	b.EndTime = c.EndTime
}

// Validator checks booking inputs against the field rules.  It is safe
// for concurrent use.
type Validator struct {
	zone     *timeutil.Zone
	validate *validator.Validate
}

// NewValidator builds a Validator whose date rules are evaluated in zone.
func NewValidator(zone *timeutil.Zone) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// Registration only fails on empty tags or nil funcs.
	_ = v.RegisterValidation("room", func(fl validator.FieldLevel) bool {
		return model.Room(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("local_date", func(fl validator.FieldLevel) bool {
		_, err := zone.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("not_past", func(fl validator.FieldLevel) bool {
		d, err := zone.ParseDate(fl.Field().String())
		if err != nil {
			return true // reported by local_date
		}
		return !zone.IsPast(d)
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := timeutil.TimeToMinutes(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("business_hours", func(fl validator.FieldLevel) bool {
		return timeutil.IsBusinessHours(fl.Field().String())
	})
	_ = v.RegisterValidation("half_hour", func(fl validator.FieldLevel) bool {
		return timeutil.IsHalfHourStep(fl.Field().String())
	})
	v.RegisterStructValidation(intervalOrder, Input{})

	return &Validator{zone: zone, validate: v}
}

// intervalOrder reports a non-increasing interval against endTime.  Times
// that are not HH:mm are left to the field rules.
func intervalOrder(sl validator.StructLevel) {
	in := sl.Current().Interface().(Input)
	ok, err := timeutil.IsValidInterval(in.StartTime, in.EndTime)
	if err != nil || ok {
		return
	}
	sl.ReportError(in.EndTime, "endTime", "EndTime", "interval", "")
}

// ValidateShape runs every field rule on in and returns the normalized
// candidate.  On failure the error is a *ShapeError listing all problems,
// not just the first.
func (v *Validator) ValidateShape(in Input) (Candidate, error) {
	if err := v.validate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Candidate{}, err
		}
		return Candidate{}, newShapeError(verrs)
	}
	// local_date already accepted the value.
	d, _ := v.zone.ParseDate(in.Date)
	return Candidate{
		Name:      in.Name,
		Room:      in.Room,
		Date:      v.zone.StartOfLocalDay(d),
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}, nil
}
