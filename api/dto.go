/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON shapes of the engine query endpoints. Record CRUD
  endpoints send and receive the records package types directly; the engine
  results are wrapped here so the wire format stays stable when the engine
  types change.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Availability:
    AvailabilityDTO (+ inventory.Conflict)

  Crew:
    ComplianceDTO, WeekDTO, WeekPlanDTO

  Standard lists:
    ApplyListRequest, ApplyListDTO (+ inventory.Shortage)

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

SEE ALSO:
  - handlers.go: Uses these types
  - inventory/types.go, crew/types.go: Engine results
*/
package api

import (
	"github.com/warp/production-engine/crew"
	"github.com/warp/production-engine/factory"
	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/inventory"
	"github.com/warp/production-engine/records"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// AvailabilityDTO is the availability of one resource over a window.
type AvailabilityDTO struct {
	ResourceID   string `json:"resource_id"`
	ResourceName string `json:"resource_name,omitempty"`
	Start        string `json:"start"`
	End          string `json:"end"`

	Owned         int    `json:"owned"`
	Used          int    `json:"used"`
	Available     int    `json:"available"`
	Overcommitted int    `json:"overcommitted"`
	Utilization   string `json:"utilization"` // percent, two decimals

	// Requested and Sufficient are set when the query carries a quantity.
	Requested  *int  `json:"requested,omitempty"`
	Sufficient *bool `json:"sufficient,omitempty"`

	Conflicts []inventory.Conflict `json:"conflicts"`

	// Warning is set instead of an error when the resource is unknown.
	Warning string `json:"warning,omitempty"`
}

// WeekDTO is the worked-day count of one ISO week.
type WeekDTO struct {
	Week       string `json:"week"`
	WorkedDays int    `json:"worked_days"`
	Surplus    int    `json:"surplus"`
}

// ComplianceDTO is the monthly rest analysis of one crew member.
type ComplianceDTO struct {
	MemberID    string              `json:"member_id"`
	MemberName  string              `json:"member_name,omitempty"`
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	TotalWorked int                 `json:"total_worked"`
	MissedRest  int                 `json:"missed_rest"`
	Compliant   bool                `json:"compliant"`
	Weeks       []WeekDTO           `json:"weeks"`
	Activities  []crew.WorkActivity `json:"activities"`
}

// WeekPlanDTO is the Monday..Sunday planning grid of one crew member.
type WeekPlanDTO struct {
	MemberID   string           `json:"member_id"`
	Week       string           `json:"week"`
	WorkedDays int              `json:"worked_days"`
	Days       []crew.DayStatus `json:"days"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ApplyListRequest selects the standard list to merge into a job.
type ApplyListRequest struct {
	ListID string `json:"list_id"`
	DryRun bool   `json:"dry_run"`
}

// ApplyListDTO is the job after a standard list was merged into it.
type ApplyListDTO struct {
	Job       records.Job          `json:"job"`
	Applied   bool                 `json:"applied"`
	Shortages []inventory.Shortage `json:"shortages"`
	Warnings  []string             `json:"warnings"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toAvailabilityDTO(a inventory.Availability, window generic.Period) AvailabilityDTO {
	return AvailabilityDTO{
		ResourceID:    a.ResourceID,
		Start:         window.Start.String(),
		End:           window.End.String(),
		Owned:         a.Owned,
		Used:          a.Used,
		Available:     a.Available,
		Overcommitted: a.Overcommitted(),
		Utilization:   a.Utilization().StringFixed(2),
		Conflicts:     a.Conflicts,
	}
}

func toComplianceDTO(c crew.Compliance, name string, rule crew.Rule) ComplianceDTO {
	dto := ComplianceDTO{
		MemberID:    c.MemberID,
		MemberName:  name,
		Year:        c.Year,
		Month:       int(c.Month),
		TotalWorked: c.TotalWorked,
		MissedRest:  c.MissedRest,
		Compliant:   c.MissedRest == 0,
		Weeks:       make([]WeekDTO, 0, len(c.PerWeek)),
		Activities:  c.Activities,
	}

	// Every bucketed week, in calendar order, with its surplus if any.
	surplus := make(map[generic.Week]int)
	for _, o := range c.OverflowWeeksFor(rule) {
		surplus[o.Week] = o.Surplus
	}
	for _, w := range generic.SortedWeeks(c.PerWeek) {
		dto.Weeks = append(dto.Weeks, WeekDTO{
			Week:       w.String(),
			WorkedDays: c.PerWeek[w],
			Surplus:    surplus[w],
		})
	}
	return dto
}

func toWeekPlanDTO(memberID string, day generic.Day, plan []crew.DayStatus) WeekPlanDTO {
	dto := WeekPlanDTO{
		MemberID: memberID,
		Week:     generic.WeekOf(day).String(),
		Days:     plan,
	}
	for _, s := range plan {
		if s.Worked() {
			dto.WorkedDays++
		}
	}
	return dto
}

func toScenarioDTOs(list []factory.ScenarioInfo) []ScenarioDTO {
	dtos := make([]ScenarioDTO, len(list))
	for i, s := range list {
		dtos[i] = ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description}
	}
	return dtos
}
