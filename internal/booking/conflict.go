package booking

import (
	"github.com/seconfreq-lang/AgendarSala/internal/model"
	"github.com/seconfreq-lang/AgendarSala/internal/timeutil"
)

// FindConflict returns the first booking in existing that occupies the
// candidate's room, local day and time, or nil.  A booking whose ID equals
// excludeID is ignored so an edit never collides with its own prior state.
// Extra bookings for other rooms or days are filtered out; missing ones
// hide conflicts, so callers load at least the whole local day.
//
// A non-nil error means an existing booking holds a malformed time.
func (v *Validator) FindConflict(c Candidate, existing []model.Booking, excludeID string) (*Conflict, error) {
	day := v.zone.StartOfLocalDay(c.Date)
	for _, b := range existing {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.Room != c.Room {
			continue
		}
		if !v.zone.StartOfLocalDay(b.Date).Equal(day) {
			continue
		}
		overlap, err := timeutil.IntervalsOverlap(c.StartTime, c.EndTime, b.StartTime, b.EndTime)
		if err != nil {
			return nil, err
		}
		if overlap {
			return &Conflict{Existing: b, StartTime: b.StartTime, EndTime: b.EndTime}, nil
		}
	}
	return nil, nil
}
