/*
kits.go - Standard material lists and applying them to jobs

PURPOSE:
  Standard lists are reusable kits (TEMPLATE) or working lists (ACTIVE) of
  material lines. Applying one to a job merges its lines into the job's
  material list and checks every item the kit touches, at the job's new
  total, against availability over the job's dates. Shortages are warnings,
  never a refusal: the job is saved anyway unless the caller asks for a dry run.

ENDPOINTS:
  GET    /api/standard-lists
  POST   /api/standard-lists
  GET    /api/standard-lists/{id}
  PUT    /api/standard-lists/{id}
  DELETE /api/standard-lists/{id}
  POST   /api/jobs/{id}/apply-list   {"list_id": "...", "dry_run": false}

SEE ALSO:
  - inventory/kit.go: MergeLines, CheckLines
*/
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/production-engine/factory"
	"github.com/warp/production-engine/inventory"
	"github.com/warp/production-engine/records"
)

func (h *Handler) ListStandardLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.Store.ListStandardLists(r.Context())
	respond(w, http.StatusOK, lists, err)
}

func (h *Handler) GetStandardList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.GetStandardList(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, list, err)
}

func (h *Handler) CreateStandardList(w http.ResponseWriter, r *http.Request) {
	var list records.StandardList
	if !decode(w, r, &list) {
		return
	}
	factory.FillListIDs(&list)
	if list.Type == "" {
		list.Type = records.ListTemplate
	}
	respond(w, http.StatusCreated, list, h.Store.SaveStandardList(r.Context(), list))
}

func (h *Handler) UpdateStandardList(w http.ResponseWriter, r *http.Request) {
	var list records.StandardList
	if !decode(w, r, &list) || !matchID(w, r, &list.ID) {
		return
	}
	if _, err := h.Store.GetStandardList(r.Context(), list.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	factory.FillListIDs(&list)
	respond(w, http.StatusOK, list, h.Store.SaveStandardList(r.Context(), list))
}

func (h *Handler) DeleteStandardList(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusNoContent, nil, h.Store.DeleteStandardList(r.Context(), chi.URLParam(r, "id")))
}

// ApplyStandardList merges a standard list into a job's material list and
// reports the shortages the merged list would cause.
func (h *Handler) ApplyStandardList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ApplyListRequest
	if !decode(w, r, &req) {
		return
	}
	job, err := h.Store.GetJob(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	list, err := h.Store.GetStandardList(ctx, req.ListID)
	if err != nil {
		writeStoreError(w, err)
		return
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

	job.MaterialList = inventory.MergeLines(job.MaterialList, list.Items)
	factory.FillJobIDs(&job)

	shortages, err := inventory.CheckLines(
		inventory.ResourcesFrom(items), inventory.Commitments(jobs, rentals),
		job.Period(), job.ID, inventory.LinesOn(job.MaterialList, list.Items),
	)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if !req.DryRun {
		if err := h.Store.SaveJob(ctx, job); err != nil {
			writeStoreError(w, err)
			return
		}
	}

	resp := ApplyListDTO{Job: job, Applied: !req.DryRun, Shortages: shortages, Warnings: []string{}}
	for _, s := range shortages {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %d requested, %d available (%d missing)",
			s.Name, s.Requested, s.Available, s.Missing))
	}
	writeJSON(w, http.StatusOK, resp)
}
