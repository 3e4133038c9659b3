package crew

import (
	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
)

// DayKind is the planning state of one day for one crew member.
type DayKind string

const (
	DayAbsence   DayKind = "ABSENCE"
	DayJob       DayKind = "JOB"
	DayTask      DayKind = "TASK"
	DayWarehouse DayKind = "WAREHOUSE"
	DayRest      DayKind = "REST"
)

// DayStatus is a single cell of the planning grid.
type DayStatus struct {
	Date        generic.Day         `json:"date"`
	Kind        DayKind             `json:"kind"`
	AbsenceKind records.AbsenceKind `json:"absence_kind,omitempty"`
	Label       string              `json:"label"`
	RefID       string              `json:"ref_id,omitempty"`
}

// Worked reports whether the day counts toward the weekly limit.
func (s DayStatus) Worked() bool {
	switch s.Kind {
	case DayJob, DayTask, DayWarehouse:
		return true
	}
	return false
}

// Activity returns the work activity for a worked day.
func (s DayStatus) Activity() (WorkActivity, bool) {
	var source ActivitySource
	switch s.Kind {
	case DayJob:
		source = SourceJobAssignment
	case DayTask:
		source = SourceManualTask
	case DayWarehouse:
		source = SourceDefaultWarehouseDay
	default:
		return WorkActivity{}, false
	}
	return WorkActivity{Date: s.Date, Source: source, RefID: s.RefID}, true
}

// Classify applies the precedence rules to one day. When several jobs or
// absences match, the one with the smallest id is reported so the result
// does not depend on input order.
func Classify(memberID string, day generic.Day, jobs []JobSpan, tasks []Task, absences []Absence) DayStatus {
	if a, ok := absenceOn(day, absences); ok {
		return DayStatus{Date: day, Kind: DayAbsence, AbsenceKind: a.Kind, Label: absenceLabel(a.Kind), RefID: a.ID}
	}
	if j, ok := jobOn(memberID, day, jobs); ok {
		return DayStatus{Date: day, Kind: DayJob, Label: j.Title, RefID: j.ID}
	}
	if t, ok := taskOn(day, tasks); ok {
		return DayStatus{Date: day, Kind: DayTask, Label: t.Description, RefID: t.ID}
	}
	if day.IsWeekday() {
		return DayStatus{Date: day, Kind: DayWarehouse, Label: "Warehouse"}
	}
	return DayStatus{Date: day, Kind: DayRest, Label: "Rest"}
}

// WeekPlan classifies Monday through Sunday of the ISO week containing day.
func WeekPlan(memberID string, day generic.Day, jobs []JobSpan, tasks []Task, absences []Absence) []DayStatus {
	week := generic.WeekOf(day).Period()
	plan := make([]DayStatus, 0, 7)
	for _, d := range week.Days() {
		plan = append(plan, Classify(memberID, d, jobs, tasks, absences))
	}
	return plan
}

func absenceOn(day generic.Day, absences []Absence) (Absence, bool) {
	var found Absence
	ok := false
	for _, a := range absences {
		if a.Period.Contains(day) && (!ok || a.ID < found.ID) {
			found, ok = a, true
		}
	}
	return found, ok
}

func jobOn(memberID string, day generic.Day, jobs []JobSpan) (JobSpan, bool) {
	var found JobSpan
	ok := false
	for _, j := range jobs {
		if j.Cancelled || !j.assigned(memberID) || !j.Period.Contains(day) {
			continue
		}
		if !ok || j.ID < found.ID {
			found, ok = j, true
		}
	}
	return found, ok
}

func taskOn(day generic.Day, tasks []Task) (Task, bool) {
	var found Task
	ok := false
	for _, t := range tasks {
		if t.Date.Equal(day) && (!ok || t.ID < found.ID) {
			found, ok = t, true
		}
	}
	return found, ok
}

func absenceLabel(kind records.AbsenceKind) string {
	switch kind {
	case records.AbsenceVacation:
		return "Vacation"
	case records.AbsenceSick:
		return "Sick leave"
	default:
		return "Permit"
	}
}
