/*
Package generic provides the calendar-day and interval primitives shared by
the availability and rest-compliance engines.

PURPOSE:
  Everything in this system is planned at calendar-day granularity. A job runs
  from one day to another, a rental is picked up and returned on given days, a
  crew member is absent over a range of days. Time-of-day and time zones are
  never modeled, so the types here deliberately hide time.Time behind a Day.

KEY CONCEPTS:
  - Day:    A calendar day, exchanged as "YYYY-MM-DD"
  - Period: An inclusive [Start, End] range of days (period.go)
  - Week:   An ISO-8601 week used as an aggregation key (week.go)

USAGE:
  start := generic.MustParseDay("2024-06-01")
  end := start.AddDays(2)
  window := generic.Period{Start: start, End: end}

SEE ALSO:
  - period.go: Interval arithmetic and the overlap test
  - errors.go: Error taxonomy
*/
package generic

import (
	"fmt"
	"time"
)

// DayLayout is the wire format of a calendar day.
const DayLayout = "2006-01-02"

// =============================================================================
// DAY - Calendar day (no time of day, no zone)
// =============================================================================

// Day is a calendar day. The zero value is not a valid day; check IsZero.
type Day struct {
	t time.Time
}

// NewDay returns the given calendar day. Out-of-range values are normalized
// the way time.Date normalizes them (June 31 becomes July 1).
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a time to its calendar day in the time's own location.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// ParseDay parses a "YYYY-MM-DD" string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q (use YYYY-MM-DD): %w", s, err)
	}
	return Day{t: t}, nil
}

// MustParseDay is ParseDay for literals in tests and fixtures.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Day) Before(other Day) bool        { return d.t.Before(other.t) }
func (d Day) Equal(other Day) bool         { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.t.After(other.t) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.t.Before(other.t) }

// Compare returns -1, 0 or +1. Suitable for slices.SortFunc.
func (d Day) Compare(other Day) int { return d.t.Compare(other.t) }

// Arithmetic
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) Day() int              { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) IsZero() bool          { return d.t.IsZero() }

func (d Day) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Day) IsWeekday() bool { return !d.IsWeekend() }

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DayLayout)
}

// =============================================================================
// ENCODING - Days travel as "YYYY-MM-DD" strings
// =============================================================================

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

func StartOfMonth(year int, month time.Month) Day { return NewDay(year, month, 1) }

func EndOfMonth(year int, month time.Month) Day {
	return NewDay(year, month+1, 1).AddDays(-1)
}

// DaysBetween returns the signed number of days from one day to another.
func DaysBetween(from, to Day) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}
