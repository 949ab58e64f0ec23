package workday

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/workday-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

const millisPerDay = float64(24 * time.Hour / time.Millisecond)

// GetWorkdayIncrement shifts startDate by a signed, possibly fractional, number of workdays.
//
// The whole part of the increment is counted in workdays, the fractional part is
// added as a share of the configured window length in hours. Seconds of startDate
// are dropped. A zero increment moves forward.
//
// The whole part must fit in an int; larger values wrap and give meaningless
// results. Days are walked one at a time, so callers taking untrusted input
// should bound the increment.
func (wc *WorkdayCalendar) GetWorkdayIncrement(startDate time.Time, incrementInWorkdays decimal.Decimal) time.Time {
	incrementDays := int(incrementInWorkdays.IntPart())
	incrementFraction := incrementInWorkdays.Sub(decimal.NewFromInt(int64(incrementDays))).InexactFloat64()
	direction := 1
	if incrementInWorkdays.IsNegative() {
		direction = -1
	}

	initWorkdayStart := wc.WorkdayStart(startDate)
	initWorkdayStop := wc.WorkdayStop(startDate)

	workdayLength := float64(initWorkdayStop.Sub(initWorkdayStart).Milliseconds())
	freeTimeLength := millisPerDay - workdayLength
	workdayFraction := workdayLength * incrementFraction / 1000 / 60 / 60

	current := dateutil.TruncateToMinute(startDate)

	current = wc.findNearestWorkday(direction, current, initWorkdayStart, initWorkdayStop)
	current = wc.findNearestWorkdayHour(direction, current, initWorkdayStart, initWorkdayStop)
	current = wc.moveToWorkday(direction, current)
	current = wc.addIncrementDays(direction, incrementDays, current)
	current = addIncrementFraction(current, workdayFraction)

	newWorkdayStart := wc.WorkdayStart(current)
	newWorkdayStop := wc.WorkdayStop(current)

	shift := gapShift(direction, startDate, current,
		initWorkdayStart, initWorkdayStop, newWorkdayStart, newWorkdayStop, freeTimeLength)
	if shift != 0 {
		if wc.gapCompensation {
			current = current.Add(shift)
		} else {
			wc.logger.Debug("Result left the workday window, gap shift not applied",
				zap.Time("current", current),
				zap.Duration("shift", shift))
		}
	}

	current = wc.moveToWorkday(direction, current)

	wc.logger.Debug("Workday increment calculated",
		zap.Time("start", startDate),
		zap.String("increment", incrementInWorkdays.String()),
		zap.Int("direction", direction),
		zap.Int("days", incrementDays),
		zap.Float64("fraction_hours", workdayFraction),
		zap.Time("result", current))

	return current
}

// findNearestWorkday pins a timestamp that falls on a non-working day to a window
// edge, stepping one day in direction when it lies beyond the edge it would
// otherwise be pinned to.
func (wc *WorkdayCalendar) findNearestWorkday(direction int, current, workdayStart, workdayStop time.Time) time.Time {
	if wc.IsWorkday(current) {
		return current
	}

	if direction > 0 {
		if current.After(workdayStop) {
			current = current.AddDate(0, 0, direction)
		}
		return wc.WorkdayStart(current)
	}

	if current.Before(workdayStart) {
		current = current.AddDate(0, 0, direction)
	}
	return wc.WorkdayStop(current)
}

// findNearestWorkdayHour moves a timestamp outside the window onto the window
// edge that lies in direction.
func (wc *WorkdayCalendar) findNearestWorkdayHour(direction int, current, workdayStart, workdayStop time.Time) time.Time {
	if direction > 0 && !current.Before(workdayStop) {
		current = wc.WorkdayStart(current.AddDate(0, 0, direction))
	}

	if direction > 0 && !current.After(workdayStart) {
		current = wc.WorkdayStart(current)
	}

	if direction < 0 && !current.Before(workdayStop) {
		current = wc.WorkdayStop(current)
	}

	if direction < 0 && !current.After(workdayStart) {
		current = wc.WorkdayStop(current.AddDate(0, 0, direction))
	}

	return current
}

// moveToWorkday steps in direction until the date is a workday
func (wc *WorkdayCalendar) moveToWorkday(direction int, current time.Time) time.Time {
	for !wc.IsWorkday(current) {
		current = current.AddDate(0, 0, direction)
	}
	return current
}

// addIncrementDays steps day by day, counting only workdays
func (wc *WorkdayCalendar) addIncrementDays(direction, incrementDays int, current time.Time) time.Time {
	for counted := 0; counted < incrementDays*direction; {
		current = current.AddDate(0, 0, direction)
		if wc.IsWorkday(current) {
			counted++
		}
	}
	return current
}

// addIncrementFraction adds fractional hours rounded to the millisecond
func addIncrementFraction(current time.Time, hours float64) time.Time {
	millis := math.Round(hours * float64(time.Hour/time.Millisecond))
	return current.Add(time.Duration(millis) * time.Millisecond)
}

// gapShift returns the free-time shift for a result that left the window of its
// new day while the original start was strictly inside its own window. Zero
// when no shift applies.
func gapShift(
	direction int, startDate, current time.Time,
	workdayStart, workdayStop, newWorkdayStart, newWorkdayStop time.Time,
	freeTimeLength float64,
) time.Duration {
	if startDate.Before(workdayStop) &&
		startDate.After(workdayStart) &&
		(current.After(newWorkdayStop) || current.Before(newWorkdayStart)) {
		return time.Duration(math.Round(freeTimeLength*float64(direction))) * time.Millisecond
	}
	return 0
}
