package generic_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/production-engine/generic"
)

func day(s string) generic.Day { return generic.MustParseDay(s) }

func period(start, end string) generic.Period {
	return generic.Period{Start: day(start), End: day(end)}
}

// =============================================================================
// OVERLAP TESTS
// =============================================================================

func TestPeriod_Overlaps(t *testing.T) {
	window := period("2024-06-02", "2024-06-04")

	tests := []struct {
		name  string
		other generic.Period
		want  bool
	}{
		{"covers window", period("2024-06-01", "2024-06-05"), true},
		{"inside window", period("2024-06-03", "2024-06-03"), true},
		{"ends on window start", period("2024-05-30", "2024-06-02"), true},
		{"starts on window end", period("2024-06-04", "2024-06-10"), true},
		{"strictly before", period("2024-05-01", "2024-06-01"), false},
		{"strictly after", period("2024-06-05", "2024-06-06"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(window), "overlap must be symmetric")
		})
	}
}

func TestPeriod_OverlapsAcrossMonthBoundary_UsesCalendarOrder(t *testing.T) {
	// "2024-10-01" sorts after "2024-09-30" as text and as a date; a single-digit
	// day would not, so the comparison must be on parsed days.
	a := period("2024-09-28", "2024-09-30")
	b := period("2024-10-01", "2024-10-02")

	assert.False(t, a.Overlaps(b))
	assert.True(t, a.Overlaps(period("2024-09-30", "2024-10-01")))
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestPeriod_Validate(t *testing.T) {
	assert.NoError(t, period("2024-06-01", "2024-06-01").Validate(), "single day is valid")

	err := period("2024-06-03", "2024-06-01").Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrInvalidInterval))
	assert.True(t, generic.IsClientError(err))

	var ie *generic.InvalidIntervalError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, day("2024-06-03"), ie.Start)

	assert.Error(t, generic.Period{Start: day("2024-06-01")}.Validate(), "missing end")
}

func TestParsePeriod(t *testing.T) {
	p, err := generic.ParsePeriod("2024-06-01", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())

	_, err = generic.ParsePeriod("2024-06-01", "06/03/2024")
	assert.Error(t, err)

	_, err = generic.ParsePeriod("2024-06-03", "2024-06-01")
	assert.ErrorIs(t, err, generic.ErrInvalidInterval)
}

func TestWithContext(t *testing.T) {
	err := generic.WithContext(period("2024-06-03", "2024-06-01").Validate(), "job job-1")
	assert.ErrorIs(t, err, generic.ErrInvalidInterval)
	assert.Contains(t, err.Error(), "job job-1")

	other := errors.New("boom")
	assert.Same(t, other, generic.WithContext(other, "x"))
}

// =============================================================================
// CALENDAR TESTS
// =============================================================================

func TestMonth_DaysAndWeekdays(t *testing.T) {
	// July 2024: 31 days, starts on a Monday, 23 weekdays.
	july := generic.Month(2024, time.July)
	assert.Equal(t, 31, july.Len())
	assert.Equal(t, 23, july.Weekdays())

	feb := generic.Month(2024, time.February)
	assert.Equal(t, day("2024-02-29"), feb.End, "leap year")
	assert.Len(t, feb.Days(), 29)
}

func TestWeekOf_ThursdayAnchored(t *testing.T) {
	tests := []struct {
		date string
		want generic.Week
	}{
		{"2024-06-03", generic.Week{Year: 2024, Number: 23}},
		{"2024-06-09", generic.Week{Year: 2024, Number: 23}},
		{"2024-06-10", generic.Week{Year: 2024, Number: 24}},
		{"2024-12-30", generic.Week{Year: 2025, Number: 1}},
		{"2021-01-01", generic.Week{Year: 2020, Number: 53}},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, generic.WeekOf(day(tt.date)))
		})
	}
}

func TestWeek_Period(t *testing.T) {
	w := generic.Week{Year: 2024, Number: 23}
	assert.Equal(t, period("2024-06-03", "2024-06-09"), w.Period())

	w = generic.Week{Year: 2020, Number: 53}
	assert.Equal(t, day("2020-12-28"), w.Monday())
}

func TestDay_JSON(t *testing.T) {
	type payload struct {
		Date generic.Day          `json:"date"`
		Week map[generic.Week]int `json:"week"`
	}

	b, err := json.Marshal(payload{
		Date: day("2024-06-03"),
		Week: map[generic.Week]int{{Year: 2024, Number: 23}: 5},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-03","week":{"2024-W23":5}}`, string(b))

	var back payload
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Date.Equal(day("2024-06-03")))
	assert.Equal(t, 5, back.Week[generic.Week{Year: 2024, Number: 23}])

	assert.Error(t, json.Unmarshal([]byte(`{"date":"03/06/2024"}`), &back))
}

func TestSortedWeeks(t *testing.T) {
	m := map[generic.Week]int{
		{Year: 2025, Number: 1}:  3,
		{Year: 2024, Number: 52}: 5,
		{Year: 2024, Number: 9}:  1,
	}
	got := generic.SortedWeeks(m)
	assert.Equal(t, []generic.Week{{Year: 2024, Number: 9}, {Year: 2024, Number: 52}, {Year: 2025, Number: 1}}, got)
}

func TestWeek_UnmarshalText(t *testing.T) {
	var w generic.Week
	require.NoError(t, w.UnmarshalText([]byte("2025-W01")))
	assert.Equal(t, generic.Week{Year: 2025, Number: 1}, w)
	assert.Equal(t, "2025-W01", w.String())

	for _, bad := range []string{"2024-W54", "2024-W00", "W23", "2024-23"} {
		assert.Error(t, w.UnmarshalText([]byte(bad)), bad)
	}
}
