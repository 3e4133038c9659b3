package generic

import "time"

// =============================================================================
// PERIOD - Inclusive range of calendar days
// =============================================================================

// Period is the inclusive interval [Start, End]. A one-day period has
// Start == End. Jobs, rentals, absences and query windows are all periods.
type Period struct {
	Start Day `json:"start" yaml:"start"`
	End   Day `json:"end" yaml:"end"`
}

// NewPeriod builds and validates a period.
func NewPeriod(start, end Day) (Period, error) {
	p := Period{Start: start, End: end}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// ParsePeriod parses two "YYYY-MM-DD" strings into a validated period.
func ParsePeriod(start, end string) (Period, error) {
	s, err := ParseDay(start)
	if err != nil {
		return Period{}, err
	}
	e, err := ParseDay(end)
	if err != nil {
		return Period{}, err
	}
	return NewPeriod(s, e)
}

// Month returns the period covering a whole calendar month.
func Month(year int, month time.Month) Period {
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}
}

// Validate rejects periods whose end precedes their start, and periods with
// a missing bound.
func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() || p.End.Before(p.Start) {
		return &InvalidIntervalError{Start: p.Start, End: p.End}
	}
	return nil
}

// Overlaps is the inclusive intersection test
//
//	start <= other.End && end >= other.Start
//
// A period ending on the day another starts overlaps it: equipment cannot be
// in two places on a shared day, and a crew member on a job's last day is
// working that day.
func (p Period) Overlaps(other Period) bool {
	return p.Start.BeforeOrEqual(other.End) && p.End.AfterOrEqual(other.Start)
}

// Contains returns true if the day is within [Start, End].
func (p Period) Contains(d Day) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Len returns the number of days in the period, counting both ends.
func (p Period) Len() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// Days returns every day in the period in order.
func (p Period) Days() []Day {
	days := make([]Day, 0, p.Len())
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Weekdays counts Monday-Friday days in the period.
func (p Period) Weekdays() int {
	n := 0
	for _, d := range p.Days() {
		if d.IsWeekday() {
			n++
		}
	}
	return n
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
