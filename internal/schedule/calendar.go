// Package schedule provides working-day calendar arithmetic for Workplan.
//
// All functions operate at day granularity: Monday through Saturday are
// working days, Sunday is the only non-working day. Durations are
// inclusive span counts (a task starting and ending on the same working
// day has a duration of 1), while AddWorkingDays/SubWorkingDays measure
// displacement (the start day itself is not counted). The two
// conventions are related by an off-by-one that the rest of the system
// depends on:
//
//	CountWorkingDays(s, AddWorkingDays(s, n)) == n + 1  when s is a working day
//
// Do not collapse the two conventions into one.
package schedule

import (
	"time"

	"github.com/manav03panchal/workplan/internal/errors"
)

// DateOnly truncates a timestamp to midnight in its own location.
// All calendar arithmetic in this package compares dates at this
// granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// IsWorkingDay reports whether d is a working day (Monday through
// Saturday). The zero time is rejected with ErrInvalidDate.
func IsWorkingDay(d time.Time) (bool, error) {
	if d.IsZero() {
		return false, errors.ErrInvalidDate
	}
	return d.Weekday() != time.Sunday, nil
}

// CountWorkingDays counts the working days in the inclusive range
// [start, end], walking one calendar day at a time. It returns
// ErrInvalidRange when start is after end (at day granularity) and
// ErrInvalidDate when either endpoint is the zero time.
//
// The day-by-day walk is deliberate: it stays correct under any future
// change to the working-day set without rederiving a closed form.
func CountWorkingDays(start, end time.Time) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, errors.ErrInvalidDate
	}

	s := DateOnly(start)
	e := DateOnly(end)
	if s.After(e) {
		return 0, errors.ErrInvalidRange
	}

	count := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday {
			count++
		}
	}
	return count, nil
}

// AddWorkingDays advances start by exactly n working days. The start
// day itself is not counted, and the returned date is always a working
// day. n == 0 returns start unchanged. It returns ErrNegativeDays for
// negative n and ErrInvalidDate for the zero time.
func AddWorkingDays(start time.Time, n int) (time.Time, error) {
	if start.IsZero() {
		return time.Time{}, errors.ErrInvalidDate
	}
	if n < 0 {
		return time.Time{}, errors.ErrNegativeDays
	}
	if n == 0 {
		return start, nil
	}

	d := DateOnly(start)
	for remaining := n; remaining > 0; {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() != time.Sunday {
			remaining--
		}
	}
	return d, nil
}

// SubWorkingDays walks backward from end by exactly n working days.
// Contracts mirror AddWorkingDays.
func SubWorkingDays(end time.Time, n int) (time.Time, error) {
	if end.IsZero() {
		return time.Time{}, errors.ErrInvalidDate
	}
	if n < 0 {
		return time.Time{}, errors.ErrNegativeDays
	}
	if n == 0 {
		return end, nil
	}

	d := DateOnly(end)
	for remaining := n; remaining > 0; {
		d = d.AddDate(0, 0, -1)
		if d.Weekday() != time.Sunday {
			remaining--
		}
	}
	return d, nil
}

// SpanEnd returns the end date of an inclusive span of duration working
// days beginning at start. The start day only counts toward the span
// when it is a working day, so the result always satisfies
// CountWorkingDays(start, SpanEnd(start, d)) == d.
func SpanEnd(start time.Time, duration int) (time.Time, error) {
	working, err := IsWorkingDay(start)
	if err != nil {
		return time.Time{}, err
	}
	if working {
		duration--
	}
	return AddWorkingDays(start, duration)
}

// SpanStart mirrors SpanEnd: it returns the start date of an inclusive
// span of duration working days finishing at end.
func SpanStart(end time.Time, duration int) (time.Time, error) {
	working, err := IsWorkingDay(end)
	if err != nil {
		return time.Time{}, err
	}
	if working {
		duration--
	}
	return SubWorkingDays(end, duration)
}

// ValidDateRange reports whether start <= end at day granularity.
// Soft check for warnings: it never returns an error, and treats a
// zero endpoint as invalid ordering.
func ValidDateRange(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !DateOnly(start).After(DateOnly(end))
}

// Displacement returns the working-day displacement between from and
// to (to must not be before from). The earlier day itself is excluded
// when it is a working day, so the result is the n for which
// AddWorkingDays(from, n) lands on to whenever to is a working day.
func Displacement(from, to time.Time) (int, error) {
	count, err := CountWorkingDays(from, to)
	if err != nil {
		return 0, err
	}
	if working, _ := IsWorkingDay(from); working {
		count--
	}
	return count, nil
}
