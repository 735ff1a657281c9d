// Package timeutil pins every date and time decision of the portal to a
// single named timezone.  Dates are day keys (local midnight) and times
// of day are "HH:mm" wall-clock strings in that zone; nothing outside
// this package compares raw instants.
package timeutil

import (
	"fmt"
	"time"
	_ "time/tzdata" // zoneinfo for hosts without /usr/share/zoneinfo
)

// DefaultTimezone is the zone the rooms physically live in.
const DefaultTimezone = "America/Sao_Paulo"

// DateLayout is the calendar-date form accepted on query strings and
// request bodies.
const DateLayout = "2006-01-02"

// displayLayout is the dd/MM/yyyy form shown to people.
const displayLayout = "02/01/2006"

// Zone binds a location to a clock.  The zero value is not usable;
// construct it with NewZone.
type Zone struct {
	loc *time.Location
	now func() time.Time
}

// NewZone loads the named location.  A nil clock falls back to time.Now.
func NewZone(name string, now func() time.Time) (*Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	if now == nil {
		now = time.Now
	}
	return &Zone{loc: loc, now: now}, nil
}

// Location returns the zone's location.
func (z *Zone) Location() *time.Location { return z.loc }

// CurrentLocalDate returns the wall clock expressed in the zone.
func (z *Zone) CurrentLocalDate() time.Time {
	return z.now().In(z.loc)
}

// StartOfLocalDay returns midnight of the local day containing t.
// Applying it to its own result returns the same instant.
func (z *Zone) StartOfLocalDay(t time.Time) time.Time {
	lt := t.In(z.loc)
	y, m, d := lt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, z.loc)
}

// NextLocalDay returns midnight of the local day after the one containing t.
// It goes through the calendar rather than adding 24h so that DST shifts
// never move the boundary.
func (z *Zone) NextLocalDay(t time.Time) time.Time {
	lt := t.In(z.loc)
	y, m, d := lt.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, z.loc)
}

// SameLocalDay reports whether a and b fall on the same local calendar day.
func (z *Zone) SameLocalDay(a, b time.Time) bool {
	return z.StartOfLocalDay(a).Equal(z.StartOfLocalDay(b))
}

// IsPast reports whether t falls on a local day strictly before today.
func (z *Zone) IsPast(t time.Time) bool {
	return z.StartOfLocalDay(t).Before(z.StartOfLocalDay(z.CurrentLocalDate()))
}

// ParseDate accepts either a calendar date ("2006-01-02"), read as that
// day in the zone, or an RFC 3339 instant.  The result is not truncated;
// callers wanting a day key pass it through StartOfLocalDay.
func (z *Zone) ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, z.loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t.In(z.loc), nil
}

// FormatDate renders the local day of t as dd/MM/yyyy.
func (z *Zone) FormatDate(t time.Time) string {
	return t.In(z.loc).Format(displayLayout)
}

// FormatDateKey renders the local day of t as 2006-01-02.
func (z *Zone) FormatDateKey(t time.Time) string {
	return t.In(z.loc).Format(DateLayout)
}

// At returns the instant of the wall-clock time hhmm on the local day of day.
func (z *Zone) At(day time.Time, hhmm string) (time.Time, error) {
	mins, err := TimeToMinutes(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	lt := day.In(z.loc)
	y, m, d := lt.Date()
	return time.Date(y, m, d, mins/60, mins%60, 0, 0, z.loc), nil
}
