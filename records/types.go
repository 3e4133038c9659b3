/*
Package records defines the persisted back-office records.

PURPOSE:
  Jobs, rentals, the inventory catalog and crew members are owned by the
  record store. The engines (inventory, crew) only read snapshots of them;
  they never mutate a record and never hold on to one between calls.

KEY CONCEPTS IN THIS FILE (types.go):
  - Job / Rental:   carry a material list and a date range
  - MaterialLine:   one line of a job's or rental's material list
  - StandardList:   a reusable kit of material lines
  - InventoryItem:  a fungible owned resource with a total quantity
  - CrewMember:     carries embedded absences and manual tasks
  - Notification:   dashboard alert written by the compliance monitor

All status and category values are closed enumerations. Anything else is
rejected by Validate before it reaches a store.

SEE ALSO:
  - repository.go: Storage interface
  - inventory/commitment.go: Material lines flattened into commitments
  - crew/inputs.go: Jobs and crew members turned into analyzer inputs
*/
package records

import (
	"time"

	"github.com/warp/production-engine/generic"
)

// =============================================================================
// ENUMERATIONS
// =============================================================================

// Category groups inventory items.
type Category string

const (
	CategoryAudio      Category = "AUDIO"
	CategoryVideo      Category = "VIDEO"
	CategoryLighting   Category = "LIGHTING"
	CategoryCables     Category = "CABLES"
	CategoryStructures Category = "STRUCTURES"
	CategoryOther      Category = "OTHER"
)

var categories = []Category{
	CategoryAudio, CategoryVideo, CategoryLighting,
	CategoryCables, CategoryStructures, CategoryOther,
}

func (c Category) Valid() bool { return oneOf(c, categories) }

type JobStatus string

const (
	JobDraft      JobStatus = "DRAFT"
	JobConfirmed  JobStatus = "CONFIRMED"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobCompleted  JobStatus = "COMPLETED"
	JobCancelled  JobStatus = "CANCELLED"
)

func (s JobStatus) Valid() bool {
	return oneOf(s, []JobStatus{JobDraft, JobConfirmed, JobInProgress, JobCompleted, JobCancelled})
}

type RentalStatus string

const (
	RentalDraft     RentalStatus = "DRAFT"
	RentalConfirmed RentalStatus = "CONFIRMED"
	RentalOut       RentalStatus = "OUT"
	RentalReturned  RentalStatus = "RETURNED"
	RentalCancelled RentalStatus = "CANCELLED"
)

func (s RentalStatus) Valid() bool {
	return oneOf(s, []RentalStatus{RentalDraft, RentalConfirmed, RentalOut, RentalReturned, RentalCancelled})
}

type CrewType string

const (
	CrewInternal  CrewType = "INTERNAL"
	CrewFreelance CrewType = "FREELANCE"
)

func (t CrewType) Valid() bool { return t == CrewInternal || t == CrewFreelance }

// AbsenceKind is the reason for an absence.
type AbsenceKind string

const (
	AbsenceVacation AbsenceKind = "VACATION"
	AbsencePermit   AbsenceKind = "PERMIT"
	AbsenceSick     AbsenceKind = "SICK"
)

func (k AbsenceKind) Valid() bool {
	return oneOf(k, []AbsenceKind{AbsenceVacation, AbsencePermit, AbsenceSick})
}

// ApprovalStatus tracks an absence through the approval workflow.
type ApprovalStatus string

const (
	ApprovalPending   ApprovalStatus = "PENDING"
	ApprovalApproved  ApprovalStatus = "APPROVED"
	ApprovalRejected  ApprovalStatus = "REJECTED"
	ApprovalCompleted ApprovalStatus = "COMPLETED"
)

func (s ApprovalStatus) Valid() bool {
	return oneOf(s, []ApprovalStatus{ApprovalPending, ApprovalApproved, ApprovalRejected, ApprovalCompleted})
}

// Approved reports whether the absence counts for planning.
func (s ApprovalStatus) Approved() bool {
	return s == ApprovalApproved || s == ApprovalCompleted
}

// ListType tells reusable kits apart from working lists.
type ListType string

const (
	ListTemplate ListType = "TEMPLATE"
	ListActive   ListType = "ACTIVE"
)

func (t ListType) Valid() bool { return t == ListTemplate || t == ListActive }

type NotificationType string

const (
	NotifyInfo    NotificationType = "INFO"
	NotifyWarning NotificationType = "WARNING"
	NotifySuccess NotificationType = "SUCCESS"
	NotifyError   NotificationType = "ERROR"
)

// =============================================================================
// INVENTORY
// =============================================================================

type InventoryItem struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Category      Category `json:"category" yaml:"category"`
	QuantityOwned int      `json:"quantity_owned" yaml:"quantity_owned"`
	SerialNumber  string   `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	Notes         string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// MaterialLine is one entry of a job's material list or a rental's items.
// External lines are hired from suppliers and never draw on owned stock.
type MaterialLine struct {
	ID          string   `json:"id" yaml:"id"`
	InventoryID string   `json:"inventory_id,omitempty" yaml:"inventory_id,omitempty"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	Quantity    int      `json:"quantity" yaml:"quantity"`
	External    bool     `json:"external,omitempty" yaml:"external,omitempty"`
	Supplier    string   `json:"supplier,omitempty" yaml:"supplier,omitempty"`
}

// =============================================================================
// JOBS & RENTALS
// =============================================================================

type Job struct {
	ID           string         `json:"id" yaml:"id"`
	Title        string         `json:"title" yaml:"title"`
	Client       string         `json:"client,omitempty" yaml:"client,omitempty"`
	Location     string         `json:"location,omitempty" yaml:"location,omitempty"`
	Start        generic.Day    `json:"start_date" yaml:"start_date"`
	End          generic.Day    `json:"end_date" yaml:"end_date"`
	Status       JobStatus      `json:"status" yaml:"status"`
	MaterialList []MaterialLine `json:"material_list" yaml:"material_list"`
	AssignedCrew []string       `json:"assigned_crew" yaml:"assigned_crew"`
	Notes        string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (j Job) Period() generic.Period { return generic.Period{Start: j.Start, End: j.End} }
func (j Job) Cancelled() bool        { return j.Status == JobCancelled }

type Rental struct {
	ID         string         `json:"id" yaml:"id"`
	Client     string         `json:"client" yaml:"client"`
	PickupDate generic.Day    `json:"pickup_date" yaml:"pickup_date"`
	ReturnDate generic.Day    `json:"return_date" yaml:"return_date"`
	Status     RentalStatus   `json:"status" yaml:"status"`
	Items      []MaterialLine `json:"items" yaml:"items"`
	Notes      string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (r Rental) Period() generic.Period {
	return generic.Period{Start: r.PickupDate, End: r.ReturnDate}
}

func (r Rental) Cancelled() bool { return r.Status == RentalCancelled }

// StandardList is a reusable material kit. Applying it to a job merges its
// lines into the job's material list.
type StandardList struct {
	ID     string         `json:"id" yaml:"id"`
	Name   string         `json:"name" yaml:"name"`
	Labels []string       `json:"labels,omitempty" yaml:"labels,omitempty"`
	Type   ListType       `json:"type" yaml:"type"`
	Items  []MaterialLine `json:"items" yaml:"items"`
}

// =============================================================================
// CREW
// =============================================================================

type CrewMember struct {
	ID       string        `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Type     CrewType      `json:"type" yaml:"type"`
	Roles    []string      `json:"roles,omitempty" yaml:"roles,omitempty"`
	Email    string        `json:"email,omitempty" yaml:"email,omitempty"`
	Phone    string        `json:"phone,omitempty" yaml:"phone,omitempty"`
	Absences []CrewAbsence `json:"absences" yaml:"absences"`
	Tasks    []CrewTask    `json:"tasks" yaml:"tasks"`
}

type CrewAbsence struct {
	ID     string         `json:"id" yaml:"id"`
	Kind   AbsenceKind    `json:"kind" yaml:"kind"`
	Start  generic.Day    `json:"start_date" yaml:"start_date"`
	End    generic.Day    `json:"end_date" yaml:"end_date"`
	Status ApprovalStatus `json:"status" yaml:"status"`
	Notes  string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (a CrewAbsence) Period() generic.Period { return generic.Period{Start: a.Start, End: a.End} }

// CrewTask is an ad-hoc planning entry for one exact day.
type CrewTask struct {
	ID          string      `json:"id" yaml:"id"`
	Date        generic.Day `json:"date" yaml:"date"`
	Description string      `json:"description" yaml:"description"`
	AssignedBy  string      `json:"assigned_by,omitempty" yaml:"assigned_by,omitempty"`
	JobID       string      `json:"job_id,omitempty" yaml:"job_id,omitempty"`
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
	LinkTo    string           `json:"link_to,omitempty"`
}

func oneOf[T comparable](v T, allowed []T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
