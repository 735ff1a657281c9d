package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedZone returns a Sao Paulo zone whose clock is pinned to now.
func fixedZone(t *testing.T, now time.Time) *Zone {
	t.Helper()
	z, err := NewZone(DefaultTimezone, func() time.Time { return now })
	require.NoError(t, err)
	return z
}

func TestNewZoneUnknown(t *testing.T) {
	_, err := NewZone("Mars/Olympus_Mons", nil)
	assert.Error(t, err)
}

func TestCurrentLocalDateUsesZone(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC)
	z := fixedZone(t, now)
	local := z.CurrentLocalDate()
	assert.True(t, local.Equal(now))
	assert.Equal(t, 9, local.Day(), "01:30 UTC is still the previous evening in Sao Paulo")
	assert.Equal(t, 22, local.Hour())
}

func TestStartOfLocalDay(t *testing.T) {
	z := fixedZone(t, time.Now())
	in := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC) // 23:00 on the 9th locally
	day := z.StartOfLocalDay(in)

	assert.Equal(t, 9, day.Day())
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, z.Location(), day.Location())
	assert.True(t, day.Equal(z.StartOfLocalDay(day)), "idempotent")
}

func TestNextLocalDay(t *testing.T) {
	z := fixedZone(t, time.Now())
	day := time.Date(2026, 12, 31, 15, 0, 0, 0, z.Location())
	next := z.NextLocalDay(day)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, z.Location()), next)
}

func TestSameLocalDay(t *testing.T) {
	z := fixedZone(t, time.Now())
	a := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)  // 9th, 23:00 local
	b := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)  // 9th, 09:00 local
	c := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) // 10th
	assert.True(t, z.SameLocalDay(a, b))
	assert.False(t, z.SameLocalDay(a, c))
}

func TestIsPast(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	z := fixedZone(t, now)

	assert.False(t, z.IsPast(now))
	assert.False(t, z.IsPast(z.StartOfLocalDay(now)), "earlier today is not past")
	assert.True(t, z.IsPast(now.AddDate(0, 0, -1)))
	assert.False(t, z.IsPast(now.AddDate(0, 0, 1)))
}

func TestParseDate(t *testing.T) {
	z := fixedZone(t, time.Now())

	d, err := z.ParseDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, z.Location()), d)

	d, err = z.ParseDate("2026-03-10T01:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 9, z.StartOfLocalDay(d).Day())

	_, err = z.ParseDate("10/03/2026")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	z := fixedZone(t, time.Now())
	d := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "09/03/2026", z.FormatDate(d))
	assert.Equal(t, "2026-03-09", z.FormatDateKey(d))
}

func TestAt(t *testing.T) {
	z := fixedZone(t, time.Now())
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, z.Location())
	at, err := z.At(day, "14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, z.Location()), at)

	_, err = z.At(day, "2pm")
	assert.ErrorIs(t, err, ErrMalformedTime)
}
