package timeutil

import (
	"errors"
	"fmt"
)

// Business hours and slot step, in minutes from midnight.
const (
	BusinessStart = 8 * 60
	BusinessEnd   = 22 * 60
	SlotStep      = 30
)

// ErrMalformedTime is wrapped by every FormatError.
var ErrMalformedTime = errors.New("malformed time")

// FormatError reports a time-of-day string that is not HH:mm.  Reaching it
// through the booking validator means a caller skipped the format check.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("time %q is not in HH:mm form", e.Value)
}

func (e *FormatError) Unwrap() error { return ErrMalformedTime }

// IsClockFormat reports whether s is exactly two digits, a colon and two
// digits.  It says nothing about ranges.
func IsClockFormat(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// TimeToMinutes converts a 24-hour "HH:mm" string into minutes since midnight.
func TimeToMinutes(s string) (int, error) {
	if !IsClockFormat(s) {
		return 0, &FormatError{Value: s}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, &FormatError{Value: s}
	}
	return h*60 + m, nil
}

// MinutesToTime is the inverse of TimeToMinutes for values within a day.
func MinutesToTime(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// GenerateSlots returns the slot boundaries 08:00, 08:30, ... 22:00.
// A new slice is built on every call.
func GenerateSlots() []string {
	slots := make([]string, 0, (BusinessEnd-BusinessStart)/SlotStep+1)
	for m := BusinessStart; m <= BusinessEnd; m += SlotStep {
		slots = append(slots, MinutesToTime(m))
	}
	return slots
}

// IsBusinessHours reports whether s lies within [08:00, 22:00].  Malformed
// input is never within business hours.
func IsBusinessHours(s string) bool {
	m, err := TimeToMinutes(s)
	if err != nil {
		return false
	}
	return m >= BusinessStart && m <= BusinessEnd
}

// IsHalfHourStep reports whether s sits on a slot boundary (:00 or :30).
func IsHalfHourStep(s string) bool {
	m, err := TimeToMinutes(s)
	if err != nil {
		return false
	}
	return m%SlotStep == 0
}

// IsValidInterval reports whether start is strictly before end.
func IsValidInterval(start, end string) (bool, error) {
	s, err := TimeToMinutes(start)
	if err != nil {
		return false, err
	}
	e, err := TimeToMinutes(end)
	if err != nil {
		return false, err
	}
	return s < e, nil
}

// IntervalsOverlap reports whether [start1, end1) and [start2, end2)
// share any minute.  Touching endpoints do not overlap.
func IntervalsOverlap(start1, end1, start2, end2 string) (bool, error) {
	var mins [4]int
	for i, v := range []string{start1, end1, start2, end2} {
		m, err := TimeToMinutes(v)
		if err != nil {
			return false, err
		}
		mins[i] = m
	}
	return mins[0] < mins[3] && mins[2] < mins[1], nil
}

// FormatTimeRange renders "10:00–11:00".
func FormatTimeRange(start, end string) string {
	return start + "–" + end
}
