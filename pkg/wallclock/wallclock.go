// Package wallclock converts between a location's wall-clock time and
// absolute UTC instants. All conversions load the IANA zone's rules for the
// specific date, so DST transitions and historical offset changes are
// handled instead of assuming a fixed offset.
//
// Every function is pure and safe for concurrent use.
package wallclock

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid calendar date")

	ErrInvalidClock = errors.New("invalid wall-clock time, want HH:MM")

	ErrUnknownZone = errors.New("unknown IANA timezone")

	// ErrInvalidLocalTime marks a wall-clock time that never occurs on the
	// given date in the given zone (the DST spring-forward gap).
	ErrInvalidLocalTime = errors.New("local time does not exist on this date in this timezone")
)

// Date is a calendar date with no time-of-day and no timezone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Compare orders dates chronologically: -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return compareInt(d.Year, o.Year)
	case d.Month != o.Month:
		return compareInt(int(d.Month), int(o.Month))
	default:
		return compareInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// DaysUntil returns the number of calendar days from d to o, negative when
// o precedes d.
func (d Date) DaysUntil(o Date) int {
	a := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	b := time.Date(o.Year, o.Month, o.Day, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hh, ok1 := twoDigits(s[0], s[1])
	mm, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || hh > 23 || mm > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hh*60 + mm, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// ToUTC interprets the wall-clock pair in the zone's offset on that specific
// date and returns the absolute instant. A clock value inside a
// spring-forward gap returns ErrInvalidLocalTime; an ambiguous fall-back
// clock resolves to the zone's first occurrence, matching time.Date.
func ToUTC(d Date, clock string, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownZone, tz)
	}

	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	hh, mm := minutes/60, minutes%60

	t := time.Date(d.Year, d.Month, d.Day, hh, mm, 0, 0, loc)

	// time.Date normalizes nonexistent wall times onto the other side of
	// the transition; a shifted round-trip means the requested clock never
	// happened on this date.
	if t.Year() != d.Year || t.Month() != d.Month || t.Day() != d.Day ||
		t.Hour() != hh || t.Minute() != mm {
		return time.Time{}, fmt.Errorf("%w: %s %s in %s", ErrInvalidLocalTime, d, clock, tz)
	}

	return t.UTC(), nil
}

// DateKey returns the calendar date the instant falls on in the zone.
func DateKey(instant time.Time, tz string) (Date, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrUnknownZone, tz)
	}
	local := instant.In(loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}, nil
}
