/*
handlers.go - HTTP API handlers for the production back office

PURPOSE:
  Exposes the record store and the two planning engines via REST API.
  Handles HTTP request/response and JSON serialization. Every engine query
  fetches a fresh snapshot from the store; nothing is cached between calls.

ENDPOINTS:
  Records (same shape for /jobs, /rentals, /inventory, /crew):
    GET    /api/jobs                  List
    POST   /api/jobs                  Create (id generated when missing)
    GET    /api/jobs/{id}             Get
    PUT    /api/jobs/{id}             Replace
    DELETE /api/jobs/{id}             Delete

  Availability:
    GET    /api/inventory/{id}/availability?start=&end=[&exclude=][&quantity=]

  Crew planning:
    GET    /api/crew/{id}/rest?year=&month=    Monthly rest compliance
    GET    /api/crew/{id}/plan?date=           Week planning grid
    GET    /api/rest-report?year=&month=       Compliance of all internal crew

  Standard lists (see kits.go):
    /api/standard-lists CRUD, POST /api/jobs/{id}/apply-list

  Notifications:
    GET    /api/notifications
    POST   /api/notifications/{id}/read

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid interval, malformed input
  - 404: Record not found
  - 500: Internal errors
  An availability query for an unknown resource is NOT an error: it answers
  200 with zero availability and a warning, so a stale material line never
  breaks the editor that asked.

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/production-engine/crew"
	"github.com/warp/production-engine/factory"
	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/inventory"
	"github.com/warp/production-engine/records"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store records.Repository
	Rule  crew.Rule

	// Now is the clock used for default months and days.
	Now func() time.Time

	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler with the given store and weekly rule.
func NewHandler(store records.Repository, rule crew.Rule) *Handler {
	return &Handler{
		Store: store,
		Rule:  rule,
		Now:   time.Now,
	}
}

// =============================================================================
// JOB HANDLERS
// =============================================================================

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Store.ListJobs(r.Context())
	respond(w, http.StatusOK, jobs, err)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.Store.GetJob(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, job, err)
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var job records.Job
	if !decode(w, r, &job) {
		return
	}
	factory.FillJobIDs(&job)
	respond(w, http.StatusCreated, job, h.Store.SaveJob(r.Context(), job))
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var job records.Job
	if !decode(w, r, &job) || !matchID(w, r, &job.ID) {
		return
	}
	if _, err := h.Store.GetJob(r.Context(), job.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	factory.FillJobIDs(&job)
	respond(w, http.StatusOK, job, h.Store.SaveJob(r.Context(), job))
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusNoContent, nil, h.Store.DeleteJob(r.Context(), chi.URLParam(r, "id")))
}

// =============================================================================
// RENTAL HANDLERS
// =============================================================================

func (h *Handler) ListRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.Store.ListRentals(r.Context())
	respond(w, http.StatusOK, rentals, err)
}

func (h *Handler) GetRental(w http.ResponseWriter, r *http.Request) {
	rental, err := h.Store.GetRental(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, rental, err)
}

func (h *Handler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var rental records.Rental
	if !decode(w, r, &rental) {
		return
	}
	factory.FillRentalIDs(&rental)
	respond(w, http.StatusCreated, rental, h.Store.SaveRental(r.Context(), rental))
}

func (h *Handler) UpdateRental(w http.ResponseWriter, r *http.Request) {
	var rental records.Rental
	if !decode(w, r, &rental) || !matchID(w, r, &rental.ID) {
		return
	}
	if _, err := h.Store.GetRental(r.Context(), rental.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	factory.FillRentalIDs(&rental)
	respond(w, http.StatusOK, rental, h.Store.SaveRental(r.Context(), rental))
}

func (h *Handler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusNoContent, nil, h.Store.DeleteRental(r.Context(), chi.URLParam(r, "id")))
}

// =============================================================================
// INVENTORY HANDLERS
// =============================================================================

func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListInventory(r.Context())
	respond(w, http.StatusOK, items, err)
}

func (h *Handler) GetInventoryItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.GetInventoryItem(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, item, err)
}

func (h *Handler) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var item records.InventoryItem
	if !decode(w, r, &item) {
		return
	}
	factory.FillItemID(&item)
	respond(w, http.StatusCreated, item, h.Store.SaveInventoryItem(r.Context(), item))
}

func (h *Handler) UpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var item records.InventoryItem
	if !decode(w, r, &item) || !matchID(w, r, &item.ID) {
		return
	}
	if _, err := h.Store.GetInventoryItem(r.Context(), item.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, item, h.Store.SaveInventoryItem(r.Context(), item))
}

func (h *Handler) DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusNoContent, nil, h.Store.DeleteInventoryItem(r.Context(), chi.URLParam(r, "id")))
}

// GetAvailability answers how many units of an inventory item remain over a
// window. exclude removes one job or rental (the one being edited) from the
// count; quantity, when given, is checked against what remains.
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resourceID := chi.URLParam(r, "id")
	q := r.URL.Query()

	window, err := generic.ParsePeriod(q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid availability window", err)
		return
	}

	var requested *int
	if raw := q.Get("quantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "quantity must be a non-negative integer", err)
			return
		}
		requested = &n
	}

	items, err := h.Store.ListInventory(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list inventory", err)
		return
	}
	jobs, err := h.Store.ListJobs(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list jobs", err)
		return
	}
	rentals, err := h.Store.ListRentals(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rentals", err)
		return
	}

	catalog := inventory.ResourcesFrom(items)
	availability, err := inventory.Resolve(catalog, resourceID, inventory.Commitments(jobs, rentals), window, q.Get("exclude"))

	var notFound *inventory.ResourceNotFoundError
	switch {
	case errors.As(err, &notFound):
		// Degrade to zero availability rather than failing the caller.
		dto := toAvailabilityDTO(availability, window)
		dto.Warning = notFound.Error()
		writeJSON(w, http.StatusOK, withRequested(dto, requested))
		return
	case err != nil:
		writeStoreError(w, err)
		return
	}

	dto := toAvailabilityDTO(availability, window)
	for _, res := range catalog {
		if res.ID == resourceID {
			dto.ResourceName = res.Name
		}
	}
	writeJSON(w, http.StatusOK, withRequested(dto, requested))
}

func withRequested(dto AvailabilityDTO, requested *int) AvailabilityDTO {
	if requested != nil {
		sufficient := dto.Available >= *requested
		dto.Requested = requested
		dto.Sufficient = &sufficient
	}
	return dto
}

// =============================================================================
// CREW HANDLERS
// =============================================================================

func (h *Handler) ListCrew(w http.ResponseWriter, r *http.Request) {
	members, err := h.Store.ListCrew(r.Context())
	respond(w, http.StatusOK, members, err)
}

func (h *Handler) GetCrewMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.Store.GetCrewMember(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, member, err)
}

func (h *Handler) CreateCrewMember(w http.ResponseWriter, r *http.Request) {
	var member records.CrewMember
	if !decode(w, r, &member) {
		return
	}
	factory.FillCrewIDs(&member)
	respond(w, http.StatusCreated, member, h.Store.SaveCrewMember(r.Context(), member))
}

func (h *Handler) UpdateCrewMember(w http.ResponseWriter, r *http.Request) {
	var member records.CrewMember
	if !decode(w, r, &member) || !matchID(w, r, &member.ID) {
		return
	}
	if _, err := h.Store.GetCrewMember(r.Context(), member.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	factory.FillCrewIDs(&member)
	respond(w, http.StatusOK, member, h.Store.SaveCrewMember(r.Context(), member))
}

func (h *Handler) DeleteCrewMember(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusNoContent, nil, h.Store.DeleteCrewMember(r.Context(), chi.URLParam(r, "id")))
}

// GetRestCompliance returns the monthly rest analysis of one crew member.
// year and month default to the current month.
func (h *Handler) GetRestCompliance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, month, err := h.parseMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}
	member, err := h.Store.GetCrewMember(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	jobs, err := h.Store.ListJobs(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list jobs", err)
		return
	}

	compliance, err := h.Rule.AnalyzeMember(member, year, month, jobs)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toComplianceDTO(compliance, member.Name, h.Rule))
}

// GetWeekPlan returns the planning grid for the week containing date
// (default today).
func (h *Handler) GetWeekPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	day := generic.DayOf(h.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := generic.ParseDay(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
		day = d
	}

	member, err := h.Store.GetCrewMember(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	jobs, err := h.Store.ListJobs(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list jobs", err)
		return
	}

	plan := crew.PlanMember(member, day, jobs)
	writeJSON(w, http.StatusOK, toWeekPlanDTO(member.ID, day, plan))
}

// GetRestReport analyzes every internal crew member for one month.
// Freelancers are not bound by the weekly rule and are left out.
func (h *Handler) GetRestReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, month, err := h.parseMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}
	members, err := h.Store.ListCrew(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list crew", err)
		return
	}
	jobs, err := h.Store.ListJobs(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list jobs", err)
		return
	}

	report := []ComplianceDTO{}
	for _, m := range members {
		if m.Type != records.CrewInternal {
			continue
		}
		c, err := h.Rule.AnalyzeMember(m, year, month, jobs)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		report = append(report, toComplianceDTO(c, m.Name, h.Rule))
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) parseMonth(r *http.Request) (int, time.Month, error) {
	now := h.Now()
	year, month := now.Year(), now.Month()
	q := r.URL.Query()

	if raw := q.Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 || y > 9999 {
			return 0, 0, fmt.Errorf("invalid year %q", raw)
		}
		year = y
	}
	if raw := q.Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid month %q (use 1-12)", raw)
		}
		month = time.Month(m)
	}
	return year, month, nil
}

// =============================================================================
// NOTIFICATION HANDLERS
// =============================================================================

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.ListNotifications(r.Context())
	respond(w, http.StatusOK, list, err)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := h.Store.MarkNotificationRead(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, map[string]string{"status": "read"}, err)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps the error taxonomy onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

// respond writes data with status, or the mapped error if err is set.
func respond(w http.ResponseWriter, status int, data any, err error) {
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, data)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// matchID takes the record id from the URL. A body carrying a different id
// is rejected.
func matchID(w http.ResponseWriter, r *http.Request, id *string) bool {
	urlID := chi.URLParam(r, "id")
	if *id != "" && *id != urlID {
		writeError(w, http.StatusBadRequest, "Body id does not match URL", fmt.Errorf("%q != %q", *id, urlID))
		return false
	}
	*id = urlID
	return true
}
