package crew

import (
	"fmt"
	"slices"
	"time"

	"github.com/warp/production-engine/generic"
)

// =============================================================================
// RULE - Weekly work limit
// =============================================================================

// Rule is the weekly limit on worked days.
type Rule struct {
	MaxWorkedDaysPerWeek int
}

// DefaultRule is five worked days and two rest days per ISO week.
var DefaultRule = Rule{MaxWorkedDaysPerWeek: 5}

// AnalyzeRestCompliance runs DefaultRule over one calendar month.
func AnalyzeRestCompliance(
	memberID string,
	year int,
	month time.Month,
	jobs []JobSpan,
	tasks []Task,
	absences []Absence,
) (Compliance, error) {
	return DefaultRule.Analyze(memberID, year, month, jobs, tasks, absences)
}

// Analyze classifies every day of the month and totals worked days per ISO
// week. Weeks are bucketed from in-month days only; days of a boundary week
// that fall in the adjacent month are not carried over.
//
// A month outside January..December fails with ErrInvalidInterval. Job and
// absence intervals are validated first so a malformed record fails the call
// instead of silently never matching.
func (r Rule) Analyze(
	memberID string,
	year int,
	month time.Month,
	jobs []JobSpan,
	tasks []Task,
	absences []Absence,
) (Compliance, error) {
	if month < time.January || month > time.December {
		return Compliance{}, fmt.Errorf("%w: month %d is outside 1..12", generic.ErrInvalidInterval, int(month))
	}
	for _, j := range jobs {
		if err := j.Period.Validate(); err != nil {
			return Compliance{}, generic.WithContext(err, "job "+j.ID)
		}
	}
	for _, a := range absences {
		if err := a.Period.Validate(); err != nil {
			return Compliance{}, generic.WithContext(err, "absence "+a.ID)
		}
	}

	result := Compliance{
		MemberID:   memberID,
		Year:       year,
		Month:      month,
		PerWeek:    make(map[generic.Week]int),
		Activities: []WorkActivity{},
	}

	for _, day := range generic.Month(year, month).Days() {
		activity, worked := Classify(memberID, day, jobs, tasks, absences).Activity()
		if !worked {
			continue
		}
		result.Activities = append(result.Activities, activity)
		result.PerWeek[generic.WeekOf(day)]++
	}

	result.TotalWorked = len(result.Activities)
	for _, worked := range result.PerWeek {
		result.MissedRest += r.surplus(worked)
	}
	return result, nil
}

func (r Rule) surplus(worked int) int {
	return max(0, worked-r.MaxWorkedDaysPerWeek)
}

// OverflowWeeks lists the weeks over the default limit, oldest first.
func (c Compliance) OverflowWeeks() []WeekOverflow {
	return c.OverflowWeeksFor(DefaultRule)
}

// OverflowWeeksFor lists the weeks over the rule's limit, oldest first.
func (c Compliance) OverflowWeeksFor(r Rule) []WeekOverflow {
	var out []WeekOverflow
	for week, worked := range c.PerWeek {
		if s := r.surplus(worked); s > 0 {
			out = append(out, WeekOverflow{Week: week, WorkedDays: worked, Surplus: s})
		}
	}
	slices.SortFunc(out, func(a, b WeekOverflow) int { return a.Week.Compare(b.Week) })
	return out
}

// CountBySource tallies worked days per source.
func (c Compliance) CountBySource() map[ActivitySource]int {
	counts := make(map[ActivitySource]int, 3)
	for _, a := range c.Activities {
		counts[a.Source]++
	}
	return counts
}
