/*
Package crew analyzes crew workload against the 5+2 rest rule.

PURPOSE:
  Every crew member should work at most five days and rest at least two in
  each ISO week. Days worked beyond that accumulate as missed rest, which has
  to be recovered within the month or paid as overtime.

HOW A DAY IS CLASSIFIED (first match wins):
  1. Inside an approved absence    -> neutral, neither worked nor rest
  2. Assigned to a live job        -> worked (JOB_ASSIGNMENT)
  3. Manual task on that exact day -> worked (MANUAL_TASK)
  4. Monday-Friday                 -> worked (DEFAULT_WAREHOUSE_DAY)
  5. Saturday/Sunday               -> rest

  The order guarantees a day is counted once no matter how many sources
  would mark it.

KEY FILES:
  - classify.go: Single-day precedence, weekly planning grid
  - rest.go:     Monthly compliance analysis
  - inputs.go:   Conversion from records

Everything here is a pure function of its inputs.
*/
package crew

import (
	"time"

	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
)

// =============================================================================
// INPUTS
// =============================================================================

// JobSpan is the part of a job the analyzer needs.
type JobSpan struct {
	ID        string
	Title     string
	Period    generic.Period
	Crew      []string
	Cancelled bool
}

func (j JobSpan) assigned(memberID string) bool {
	for _, id := range j.Crew {
		if id == memberID {
			return true
		}
	}
	return false
}

// Task is a manual planning entry for one day.
type Task struct {
	ID          string
	Date        generic.Day
	Description string
	JobID       string
}

// Absence is an approved leave, permit or sick interval.
type Absence struct {
	ID     string
	Kind   records.AbsenceKind
	Period generic.Period
}

// =============================================================================
// OUTPUTS
// =============================================================================

// ActivitySource says why a day counts as worked.
type ActivitySource string

const (
	SourceJobAssignment       ActivitySource = "JOB_ASSIGNMENT"
	SourceManualTask          ActivitySource = "MANUAL_TASK"
	SourceDefaultWarehouseDay ActivitySource = "DEFAULT_WAREHOUSE_DAY"
)

// WorkActivity is one worked day.
type WorkActivity struct {
	Date   generic.Day    `json:"date"`
	Source ActivitySource `json:"source"`
	RefID  string         `json:"ref_id,omitempty"`
}

// Compliance is the monthly 5+2 analysis of one crew member.
type Compliance struct {
	MemberID    string
	Year        int
	Month       time.Month
	TotalWorked int
	MissedRest  int
	// PerWeek counts worked days per ISO week, using only days inside the
	// month. A week straddling two months is split between them.
	PerWeek    map[generic.Week]int
	Activities []WorkActivity
}

// WeekOverflow is a week with more worked days than the rule allows.
type WeekOverflow struct {
	Week       generic.Week `json:"week"`
	WorkedDays int          `json:"worked_days"`
	Surplus    int          `json:"surplus"`
}
