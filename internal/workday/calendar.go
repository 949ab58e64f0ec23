package workday

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/workday-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// Calendar interface for workday arithmetic
type Calendar interface {
	// SetHoliday marks a single calendar date as non-working
	SetHoliday(date time.Time)

	// SetRecurringHoliday marks a month/day as non-working in every year
	SetRecurringHoliday(month time.Month, day int)

	// SetWorkdayStartAndStop sets the daily working window
	SetWorkdayStartAndStop(startHour, startMinute, stopHour, stopMinute int)

	// GetWorkdayIncrement shifts startDate by a signed, possibly fractional, number of workdays
	GetWorkdayIncrement(startDate time.Time, incrementInWorkdays decimal.Decimal) time.Time
}

// MonthDay is a month/day pair of a recurring holiday
type MonthDay struct {
	Month time.Month
	Day   int
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(date time.Time) dayKey {
	return dayKey{year: date.Year(), month: date.Month(), day: date.Day()}
}

// WorkdayCalendar implements Calendar with a fixed daily window, weekends,
// one-off holidays and recurring holidays.
//
// Configuration is expected to happen before queries. A WorkdayCalendar is not
// safe for concurrent use; callers that share one must serialize access.
// The window is not validated: a stop before start gives meaningless results.
type WorkdayCalendar struct {
	startHour   int
	startMinute int
	stopHour    int
	stopMinute  int

	holidays          map[dayKey]struct{}
	recurringHolidays map[MonthDay]struct{}

	gapCompensation bool
	logger          *zap.Logger
}

// NewWorkdayCalendar creates an empty calendar with a 00:00-00:00 window
func NewWorkdayCalendar(logger *zap.Logger) *WorkdayCalendar {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WorkdayCalendar{
		holidays:          make(map[dayKey]struct{}),
		recurringHolidays: make(map[MonthDay]struct{}),
		logger:            logger,
	}
}

// SetHoliday marks a single calendar date as non-working
func (wc *WorkdayCalendar) SetHoliday(date time.Time) {
	wc.holidays[keyOf(date)] = struct{}{}
}

// SetRecurringHoliday marks a month/day as non-working in every year
func (wc *WorkdayCalendar) SetRecurringHoliday(month time.Month, day int) {
	wc.recurringHolidays[MonthDay{Month: month, Day: day}] = struct{}{}
}

// SetWorkdayStartAndStop sets the daily working window
func (wc *WorkdayCalendar) SetWorkdayStartAndStop(startHour, startMinute, stopHour, stopMinute int) {
	wc.startHour = startHour
	wc.startMinute = startMinute
	wc.stopHour = stopHour
	wc.stopMinute = stopMinute
}

// SetGapCompensation controls whether an increment that leaves the workday
// window after the fractional step is shifted by the non-working part of the day.
// Off by default, in which case the shift is only logged.
func (wc *WorkdayCalendar) SetGapCompensation(enabled bool) {
	wc.gapCompensation = enabled
}

// IsWorkday checks if the given date is neither a weekend nor a holiday
func (wc *WorkdayCalendar) IsWorkday(date time.Time) bool {
	return !dateutil.IsWeekend(date) && !wc.isHoliday(date) && !wc.isRecurringHoliday(date)
}

func (wc *WorkdayCalendar) isHoliday(date time.Time) bool {
	_, ok := wc.holidays[keyOf(date)]
	return ok
}

func (wc *WorkdayCalendar) isRecurringHoliday(date time.Time) bool {
	_, ok := wc.recurringHolidays[MonthDay{Month: date.Month(), Day: date.Day()}]
	return ok
}

// WorkdayStart returns the window start on the date of the given timestamp
func (wc *WorkdayCalendar) WorkdayStart(date time.Time) time.Time {
	return dateutil.AtClock(date, wc.startHour, wc.startMinute)
}

// WorkdayStop returns the window stop on the date of the given timestamp
func (wc *WorkdayCalendar) WorkdayStop(date time.Time) time.Time {
	return dateutil.AtClock(date, wc.stopHour, wc.stopMinute)
}

// Holidays returns the registered one-off holidays in chronological order
func (wc *WorkdayCalendar) Holidays() []time.Time {
	dates := make([]time.Time, 0, len(wc.holidays))
	for k := range wc.holidays {
		dates = append(dates, time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC))
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	return dates
}

// RecurringHolidays returns the registered recurring holidays ordered by month and day
func (wc *WorkdayCalendar) RecurringHolidays() []MonthDay {
	days := make([]MonthDay, 0, len(wc.recurringHolidays))
	for md := range wc.recurringHolidays {
		days = append(days, md)
	}

	sort.Slice(days, func(i, j int) bool {
		if days[i].Month != days[j].Month {
			return days[i].Month < days[j].Month
		}
		return days[i].Day < days[j].Day
	})

	return days
}
