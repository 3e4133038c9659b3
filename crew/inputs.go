package crew

import (
	"time"

	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
)

// JobSpansFrom reduces jobs to what the analyzer needs. Cancelled jobs are
// kept and flagged; the classifier skips them.
func JobSpansFrom(jobs []records.Job) []JobSpan {
	spans := make([]JobSpan, len(jobs))
	for i, j := range jobs {
		spans[i] = JobSpan{
			ID:        j.ID,
			Title:     j.Title,
			Period:    j.Period(),
			Crew:      j.AssignedCrew,
			Cancelled: j.Cancelled(),
		}
	}
	return spans
}

// TasksFrom returns the member's manual tasks.
func TasksFrom(member records.CrewMember) []Task {
	tasks := make([]Task, len(member.Tasks))
	for i, t := range member.Tasks {
		tasks[i] = Task{ID: t.ID, Date: t.Date, Description: t.Description, JobID: t.JobID}
	}
	return tasks
}

// ApprovedAbsences returns the member's approved absences. Pending and
// rejected requests do not affect planning.
func ApprovedAbsences(member records.CrewMember) []Absence {
	var out []Absence
	for _, a := range member.Absences {
		if !a.Status.Approved() {
			continue
		}
		out = append(out, Absence{ID: a.ID, Kind: a.Kind, Period: a.Period()})
	}
	return out
}

// AnalyzeMember is AnalyzeRestCompliance over stored records.
func (r Rule) AnalyzeMember(member records.CrewMember, year int, month time.Month, jobs []records.Job) (Compliance, error) {
	return r.Analyze(member.ID, year, month, JobSpansFrom(jobs), TasksFrom(member), ApprovedAbsences(member))
}

// PlanMember is WeekPlan over stored records.
func PlanMember(member records.CrewMember, day generic.Day, jobs []records.Job) []DayStatus {
	return WeekPlan(member.ID, day, JobSpansFrom(jobs), TasksFrom(member), ApprovedAbsences(member))
}
