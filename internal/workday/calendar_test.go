package workday

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var _ Calendar = (*WorkdayCalendar)(nil)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func newTestCalendar(t *testing.T) *WorkdayCalendar {
	t.Helper()

	cal := NewWorkdayCalendar(zaptest.NewLogger(t))
	cal.SetWorkdayStartAndStop(8, 0, 16, 0)
	return cal
}

// newReferenceCalendar matches the classic scenario set: 08:00-16:00,
// 17 May every year and 27 May 2004 off.
func newReferenceCalendar(t *testing.T) *WorkdayCalendar {
	t.Helper()

	cal := newTestCalendar(t)
	cal.SetRecurringHoliday(time.May, 17)
	cal.SetHoliday(time.Date(2004, time.May, 27, 0, 0, 0, 0, time.UTC))
	return cal
}

func TestWorkdayCalendar_GetWorkdayIncrement_Reference(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		increment string
		want      string
	}{
		{"backward across recurring holiday", at(2004, time.May, 24, 18, 5), "-5.5", "14-05-2004 12:00"},
		{"forward across holiday and months", at(2004, time.May, 24, 19, 3), "44.723656", "27-07-2004 13:47"},
		{"forward inside window", at(2004, time.May, 24, 8, 3), "12.782709", "10-06-2004 14:18"},
		{"forward before window", at(2004, time.May, 24, 7, 3), "8.276628", "04-06-2004 10:12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := newReferenceCalendar(t)

			result := cal.GetWorkdayIncrement(tt.start, decimal.RequireFromString(tt.increment))

			assert.Equal(t, tt.want, result.Format("02-01-2006 15:04"))
		})
	}
}

func TestWorkdayCalendar_GetWorkdayIncrement(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		increment string
		want      time.Time
	}{
		{
			name:      "one day from Friday start lands on Monday start",
			start:     at(2004, time.May, 21, 8, 0),
			increment: "1",
			want:      at(2004, time.May, 24, 8, 0),
		},
		{
			name:      "quarter day back from Friday start",
			start:     at(2004, time.May, 21, 8, 0),
			increment: "-0.25",
			want:      at(2004, time.May, 20, 14, 0),
		},
		{
			name:      "one and a half days from Monday start",
			start:     at(2004, time.May, 24, 8, 0),
			increment: "1.5",
			want:      at(2004, time.May, 25, 12, 0),
		},
		{
			name:      "one day back from Friday start snaps to stop first",
			start:     at(2004, time.May, 21, 8, 0),
			increment: "-1",
			want:      at(2004, time.May, 19, 16, 0),
		},
		{
			name:      "zero inside window is unchanged",
			start:     at(2004, time.May, 24, 10, 30),
			increment: "0",
			want:      at(2004, time.May, 24, 10, 30),
		},
		{
			name:      "zero on Saturday moves forward to Monday start",
			start:     at(2004, time.May, 22, 10, 0),
			increment: "0",
			want:      at(2004, time.May, 24, 8, 0),
		},
		{
			name:      "after stop on Sunday is compared against the Sunday window",
			start:     at(2004, time.May, 23, 20, 0),
			increment: "0.5",
			want:      at(2004, time.May, 25, 12, 0),
		},
		{
			name:      "before start on Saturday is compared against the Saturday window",
			start:     at(2004, time.May, 22, 6, 0),
			increment: "-0.5",
			want:      at(2004, time.May, 20, 12, 0),
		},
		{
			name:      "fraction past stop is not clamped",
			start:     at(2004, time.May, 24, 15, 0),
			increment: "0.5",
			want:      at(2004, time.May, 24, 19, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := newTestCalendar(t)

			result := cal.GetWorkdayIncrement(tt.start, decimal.RequireFromString(tt.increment))

			assert.True(t, result.Equal(tt.want), "got %s, want %s",
				result.Format("Mon 2006-01-02 15:04:05"), tt.want.Format("Mon 2006-01-02 15:04:05"))
		})
	}
}

func TestWorkdayCalendar_GetWorkdayIncrement_DropsSeconds(t *testing.T) {
	cal := newTestCalendar(t)
	start := time.Date(2004, time.May, 24, 8, 0, 45, 500, time.UTC)

	result := cal.GetWorkdayIncrement(start, decimal.NewFromInt(1))

	assert.Equal(t, at(2004, time.May, 25, 8, 0), result)
}

func TestWorkdayCalendar_GetWorkdayIncrement_KeepsLocation(t *testing.T) {
	cal := newTestCalendar(t)
	loc := time.FixedZone("CET", 60*60)
	start := time.Date(2004, time.May, 24, 8, 0, 0, 0, loc)

	result := cal.GetWorkdayIncrement(start, decimal.RequireFromString("0.25"))

	assert.Equal(t, loc, result.Location())
	assert.Equal(t, 10, result.Hour())
}

func TestWorkdayCalendar_GetWorkdayIncrement_HalfDayUsesWindowLength(t *testing.T) {
	cal := NewWorkdayCalendar(nil)
	cal.SetWorkdayStartAndStop(9, 0, 17, 30)

	tests := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{"Monday", at(2004, time.May, 24, 9, 0), at(2004, time.May, 24, 13, 15)},
		{"Thursday", at(2004, time.May, 27, 9, 30), at(2004, time.May, 27, 13, 45)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cal.GetWorkdayIncrement(tt.start, decimal.RequireFromString("0.5"))
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestWorkdayCalendar_GetWorkdayIncrement_FractionCrossesMidnight(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		increment string
		holiday   time.Time
		want      time.Time
	}{
		{
			name:      "forward onto Saturday moves to Monday",
			start:     at(2004, time.May, 21, 21, 0),
			increment: "0.5",
			want:      at(2004, time.May, 24, 5, 0),
		},
		{
			name:      "forward skips a Monday holiday too",
			start:     at(2004, time.May, 21, 21, 0),
			increment: "0.5",
			holiday:   at(2004, time.May, 24, 0, 0),
			want:      at(2004, time.May, 25, 5, 0),
		},
		{
			name:      "backward onto Sunday moves to Friday",
			start:     at(2004, time.May, 24, 7, 0),
			increment: "-0.5",
			want:      at(2004, time.May, 21, 23, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := NewWorkdayCalendar(zaptest.NewLogger(t))
			cal.SetWorkdayStartAndStop(6, 0, 22, 0)
			if !tt.holiday.IsZero() {
				cal.SetHoliday(tt.holiday)
			}

			result := cal.GetWorkdayIncrement(tt.start, decimal.RequireFromString(tt.increment))
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestWorkdayCalendar_Holidays(t *testing.T) {
	t.Run("one-off holiday is skipped forward", func(t *testing.T) {
		cal := newReferenceCalendar(t)

		result := cal.GetWorkdayIncrement(at(2004, time.May, 26, 8, 0), decimal.NewFromInt(1))

		assert.Equal(t, at(2004, time.May, 28, 8, 0), result)
	})

	t.Run("one-off holiday is skipped backward", func(t *testing.T) {
		cal := newReferenceCalendar(t)

		result := cal.GetWorkdayIncrement(at(2004, time.May, 28, 10, 0), decimal.NewFromInt(-1))

		assert.Equal(t, at(2004, time.May, 26, 10, 0), result)
	})

	t.Run("one-off holiday only applies to its year", func(t *testing.T) {
		cal := newReferenceCalendar(t)

		// 27 May 2005 is a Friday
		assert.True(t, cal.IsWorkday(at(2005, time.May, 27, 0, 0)))
	})

	t.Run("recurring holiday applies in other years", func(t *testing.T) {
		cal := newReferenceCalendar(t)

		// 17 May 2005 is a Tuesday
		result := cal.GetWorkdayIncrement(at(2005, time.May, 16, 10, 0), decimal.NewFromInt(1))

		assert.Equal(t, at(2005, time.May, 18, 10, 0), result)
	})

	t.Run("start on recurring holiday snaps to next workday", func(t *testing.T) {
		cal := newReferenceCalendar(t)

		result := cal.GetWorkdayIncrement(at(2005, time.May, 17, 10, 0), decimal.RequireFromString("0.5"))

		assert.Equal(t, at(2005, time.May, 18, 12, 0), result)
	})
}

func TestWorkdayCalendar_GapCompensation(t *testing.T) {
	start := at(2004, time.May, 24, 15, 0)

	t.Run("inert by default", func(t *testing.T) {
		cal := newTestCalendar(t)

		result := cal.GetWorkdayIncrement(start, decimal.RequireFromString("0.5"))

		assert.Equal(t, at(2004, time.May, 24, 19, 0), result)
	})

	t.Run("shifts by free time when enabled", func(t *testing.T) {
		cal := newTestCalendar(t)
		cal.SetGapCompensation(true)

		result := cal.GetWorkdayIncrement(start, decimal.RequireFromString("0.5"))

		assert.Equal(t, at(2004, time.May, 25, 11, 0), result)
	})

	t.Run("start on window edge never shifts", func(t *testing.T) {
		cal := newTestCalendar(t)
		cal.SetGapCompensation(true)

		result := cal.GetWorkdayIncrement(at(2004, time.May, 24, 8, 0), decimal.RequireFromString("0.5"))

		assert.Equal(t, at(2004, time.May, 24, 12, 0), result)
	})
}

func TestWorkdayCalendar_IsWorkday(t *testing.T) {
	cal := newReferenceCalendar(t)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"Monday", at(2004, time.May, 24, 0, 0), true},
		{"Saturday", at(2004, time.May, 22, 0, 0), false},
		{"Sunday", at(2004, time.May, 23, 0, 0), false},
		{"one-off holiday", at(2004, time.May, 27, 12, 0), false},
		{"recurring holiday", at(2010, time.May, 17, 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.IsWorkday(tt.date))
		})
	}
}

func TestWorkdayCalendar_Accessors(t *testing.T) {
	cal := NewWorkdayCalendar(nil)
	cal.SetHoliday(at(2004, time.December, 24, 13, 0))
	cal.SetHoliday(at(2004, time.May, 27, 0, 0))
	cal.SetHoliday(at(2004, time.May, 27, 9, 0))
	cal.SetRecurringHoliday(time.December, 25)
	cal.SetRecurringHoliday(time.May, 17)
	cal.SetRecurringHoliday(time.May, 1)

	holidays := cal.Holidays()
	require.Len(t, holidays, 2)
	assert.Equal(t, at(2004, time.May, 27, 0, 0), holidays[0])
	assert.Equal(t, at(2004, time.December, 24, 0, 0), holidays[1])

	assert.Equal(t, []MonthDay{
		{Month: time.May, Day: 1},
		{Month: time.May, Day: 17},
		{Month: time.December, Day: 25},
	}, cal.RecurringHolidays())
}

func TestWorkdayCalendar_DefaultWindow(t *testing.T) {
	cal := NewWorkdayCalendar(nil)
	date := at(2004, time.May, 24, 13, 37)

	assert.Equal(t, at(2004, time.May, 24, 0, 0), cal.WorkdayStart(date))
	assert.Equal(t, at(2004, time.May, 24, 0, 0), cal.WorkdayStop(date))
}
