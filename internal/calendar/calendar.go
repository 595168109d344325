// Package calendar implements proleptic Gregorian date values and the
// clamped arithmetic used by expression evaluation. Dates carry no time of
// day and no time zone.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Representable year range. Arithmetic that leaves this range fails with
// ErrOutOfRange.
const (
	MinYear = 1
	MaxYear = 9999
)

// ErrOutOfRange is returned when date arithmetic leaves the representable
// range [0001-01-01, 9999-12-31].
var ErrOutOfRange = errors.New("date out of representable range")

// Date is a calendar date: year, month, day. The zero value is not a valid
// date; construct with New or FromTime.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New validates year/month/day and returns the corresponding Date.
// Day validation is month- and year-aware (Feb 30 is rejected).
func New(year int, month time.Month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("year %d out of range %d-%d", year, MinYear, MaxYear)
	}
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("month %d out of range 1-12", int(month))
	}
	if max := DaysIn(year, month); day < 1 || day > max {
		return Date{}, fmt.Errorf("day %d out of range for %s %d (1-%d)", day, month, year, max)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// FromTime truncates a time.Time to its calendar date in the time's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current date from the system clock. Callers that need
// determinism should thread a Date through instead of calling this.
func Today() Date {
	return FromTime(time.Now())
}

// IsLeap reports whether year is a leap year under proleptic Gregorian rules.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month of the given year.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// Time returns the date at noon UTC. Noon keeps day arithmetic immune to any
// DST-like boundary effects if a caller converts locations.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// String formats the date as ISO-8601 (YYYY-MM-DD), zero-padded.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays returns the date n days later (earlier when n is negative),
// rolling over month and year boundaries.
func (d Date) AddDays(n int) (Date, error) {
	r := FromTime(d.Time().AddDate(0, 0, n))
	if r.Year < MinYear || r.Year > MaxYear {
		return Date{}, ErrOutOfRange
	}
	return r, nil
}

// AddWeeks returns the date 7n days later, applied as a single step.
func (d Date) AddWeeks(n int) (Date, error) {
	return d.AddDays(7 * n)
}

// AddMonths returns the date n months later. When the target month is
// shorter than the source day-of-month, the day clamps to the target
// month's last day (Jan 31 + 1 month = Feb 28/29). This differs from
// time.AddDate, which normalizes the overflow into the following month.
func (d Date) AddMonths(n int) (Date, error) {
	idx := d.Year*12 + int(d.Month) - 1 + n
	year := idx / 12
	month := idx % 12
	if month < 0 {
		month += 12
		year--
	}
	if year < MinYear || year > MaxYear {
		return Date{}, ErrOutOfRange
	}
	m := time.Month(month + 1)
	day := d.Day
	if max := DaysIn(year, m); day > max {
		day = max
	}
	return Date{Year: year, Month: m, Day: day}, nil
}

// AddYears returns the date n years later. A Feb 29 source clamps to
// Feb 28 in non-leap target years.
func (d Date) AddYears(n int) (Date, error) {
	year := d.Year + n
	if year < MinYear || year > MaxYear {
		return Date{}, ErrOutOfRange
	}
	day := d.Day
	if max := DaysIn(year, d.Month); day > max {
		day = max
	}
	return Date{Year: year, Month: d.Month, Day: day}, nil
}

// DaysBetween returns the absolute number of days between d and other.
func (d Date) DaysBetween(other Date) int {
	diff := d.Time().Sub(other.Time())
	days := int(diff.Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
