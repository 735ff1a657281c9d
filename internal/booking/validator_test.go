package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seconfreq-lang/AgendarSala/internal/model"
	"github.com/seconfreq-lang/AgendarSala/internal/timeutil"
)

// now is 2026-03-10 15:00 in Sao Paulo.
var now = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	zone, err := timeutil.NewZone(timeutil.DefaultTimezone, func() time.Time { return now })
	require.NoError(t, err)
	return NewValidator(zone)
}

func validInput() Input {
	return Input{
		Name:      "Reunião de planejamento",
		Room:      model.RoomFranca,
		Date:      "2026-03-10",
		StartTime: "14:00",
		EndTime:   "15:30",
	}
}

func shapeErr(t *testing.T, err error) *ShapeError {
	t.Helper()
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	return se
}

func TestValidateShapeAccepts(t *testing.T) {
	v := newTestValidator(t)
	c, err := v.ValidateShape(validInput())
	require.NoError(t, err)

	assert.Equal(t, "Reunião de planejamento", c.Name)
	assert.Equal(t, model.RoomFranca, c.Room)
	assert.Equal(t, "14:00", c.StartTime)
	assert.Equal(t, "15:30", c.EndTime)
	assert.Equal(t, 0, c.Date.Hour())
	assert.Equal(t, 10, c.Date.Day())
	assert.Equal(t, timeutil.DefaultTimezone, c.Date.Location().String())
}

func TestValidateShapeNormalizesInstantToLocalDay(t *testing.T) {
	v := newTestValidator(t)
	in := validInput()
	in.Date = "2026-03-12T02:00:00Z" // 23:00 on the 11th locally
	c, err := v.ValidateShape(in)
	require.NoError(t, err)
	assert.Equal(t, 11, c.Date.Day())
	assert.Equal(t, 0, c.Date.Hour())
}

func TestValidateShapeBoundaryTimes(t *testing.T) {
	v := newTestValidator(t)
	in := validInput()
	in.StartTime, in.EndTime = "08:00", "22:00"
	_, err := v.ValidateShape(in)
	assert.NoError(t, err)
}

func TestValidateShapeCollectsAllErrors(t *testing.T) {
	v := newTestValidator(t)
	_, err := v.ValidateShape(Input{
		Name:      "x",
		Room:      model.RoomMachado,
		Date:      "2026-03-09",
		StartTime: "07:00",
		EndTime:   "06:30",
	})
	se := shapeErr(t, err)

	assert.GreaterOrEqual(t, len(se.Fields), 3)
	assert.True(t, se.Has("name", CodeNameLength))
	assert.True(t, se.Has("date", CodeDateInPast))
	assert.True(t, se.Has("endTime", CodeIntervalOrder))
	assert.True(t, se.Has("startTime", CodeBusinessHours))
	for _, f := range se.Fields {
		assert.NotEmpty(t, f.Message, f.Code)
	}
}

func TestValidateShapeFieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
		code   string
	}{
		{"name too short", func(in *Input) { in.Name = "A" }, "name", CodeNameLength},
		{"name empty", func(in *Input) { in.Name = "" }, "name", CodeNameLength},
		{"name too long", func(in *Input) { in.Name = strings.Repeat("a", 101) }, "name", CodeNameLength},
		{"unknown room", func(in *Input) { in.Room = "LISBOA" }, "room", CodeInvalidRoom},
		{"empty room", func(in *Input) { in.Room = "" }, "room", CodeInvalidRoom},
		{"lowercase room", func(in *Input) { in.Room = "franca" }, "room", CodeInvalidRoom},
		{"missing date", func(in *Input) { in.Date = "" }, "date", CodeInvalidDate},
		{"garbage date", func(in *Input) { in.Date = "amanhã" }, "date", CodeInvalidDate},
		{"past date", func(in *Input) { in.Date = "2025-12-31" }, "date", CodeDateInPast},
		{"bad start format", func(in *Input) { in.StartTime = "9:00" }, "startTime", CodeTimeFormat},
		{"bad end format", func(in *Input) { in.EndTime = "25:00" }, "endTime", CodeTimeFormat},
		{"start before hours", func(in *Input) { in.StartTime = "07:30" }, "startTime", CodeBusinessHours},
		{"end after hours", func(in *Input) { in.EndTime = "22:30" }, "endTime", CodeBusinessHours},
		{"off step", func(in *Input) { in.StartTime = "14:15" }, "startTime", CodeTimeStep},
		{"reversed", func(in *Input) { in.StartTime, in.EndTime = "15:00", "14:00" }, "endTime", CodeIntervalOrder},
		{"empty interval", func(in *Input) { in.StartTime, in.EndTime = "15:00", "15:00" }, "endTime", CodeIntervalOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(t)
			in := validInput()
			tt.mutate(&in)
			_, err := v.ValidateShape(in)
			se := shapeErr(t, err)
			assert.True(t, se.Has(tt.field, tt.code), "got %+v", se.Fields)
		})
	}
}

func TestValidateShapeMalformedTimesSkipIntervalRule(t *testing.T) {
	v := newTestValidator(t)
	in := validInput()
	in.StartTime = "xx:yy"
	_, err := v.ValidateShape(in)
	se := shapeErr(t, err)
	require.Len(t, se.Fields, 1)
	assert.Equal(t, CodeTimeFormat, se.Fields[0].Code)
}

func TestValidateShapeCountsRunes(t *testing.T) {
	v := newTestValidator(t)
	in := validInput()
	in.Name = "Zé"
	_, err := v.ValidateShape(in)
	assert.NoError(t, err)
}

func TestShapeErrorMessage(t *testing.T) {
	se := &ShapeError{Fields: []FieldError{{Field: "name", Code: CodeNameLength}, {Field: "room", Code: CodeInvalidRoom}}}
	assert.Equal(t, "invalid booking: name: name_length, room: invalid_room", se.Error())
}

func TestCandidateApply(t *testing.T) {
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	b := model.Booking{ID: "abc", Name: "old", CreatedAt: now}
	Candidate{Name: "new", Room: model.RoomSantos, Date: day, StartTime: "09:00", EndTime: "10:00"}.Apply(&b)

	assert.Equal(t, "abc", b.ID)
	assert.Equal(t, now, b.CreatedAt)
	assert.Equal(t, "new", b.Name)
	assert.Equal(t, model.RoomSantos, b.Room)
	assert.Equal(t, day, b.Date)
	assert.Equal(t, "09:00", b.StartTime)
	assert.Equal(t, "10:00", b.EndTime)
}
