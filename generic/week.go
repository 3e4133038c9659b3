package generic

import (
	"fmt"
	"slices"
	"time"
)

// Week is an ISO-8601 week. The week containing a date's Thursday decides both
// the number and the year, so Dec 30 2024 is 2025-W01.
type Week struct {
	Year   int
	Number int
}

// WeekOf returns the ISO week a day belongs to.
func WeekOf(d Day) Week {
	year, week := d.t.ISOWeek()
	return Week{Year: year, Number: week}
}

// Monday returns the first day of the week.
func (w Week) Monday() Day {
	// January 4th is always in week 1.
	jan4 := NewDay(w.Year, time.January, 4)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDays(-offset + (w.Number-1)*7)
}

// Period returns Monday..Sunday of the week.
func (w Week) Period() Period {
	mon := w.Monday()
	return Period{Start: mon, End: mon.AddDays(6)}
}

// Compare orders weeks chronologically.
func (w Week) Compare(other Week) int {
	switch {
	case w.Year != other.Year:
		if w.Year < other.Year {
			return -1
		}
		return 1
	case w.Number < other.Number:
		return -1
	case w.Number > other.Number:
		return 1
	}
	return 0
}

// SortedWeeks returns the keys of a per-week map, oldest first.
func SortedWeeks[V any](m map[Week]V) []Week {
	weeks := make([]Week, 0, len(m))
	for w := range m {
		weeks = append(weeks, w)
	}
	slices.SortFunc(weeks, Week.Compare)
	return weeks
}

func (w Week) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Number)
}

func (w Week) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *Week) UnmarshalText(b []byte) error {
	var year, number int
	if _, err := fmt.Sscanf(string(b), "%d-W%d", &year, &number); err != nil {
		return fmt.Errorf("invalid ISO week %q: %w", string(b), err)
	}
	if number < 1 || number > 53 {
		return fmt.Errorf("invalid ISO week %q: week out of range", string(b))
	}
	*w = Week{Year: year, Number: number}
	return nil
}
