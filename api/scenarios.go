/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:
  Populates the store with one of the embedded demo datasets so the
  dashboard, the availability checks and the rest report have realistic
  data to show.

AVAILABLE SCENARIOS (factory/scenarios/*.yaml):
  festival-season: Overlapping June jobs, overcommitted stock, missed rest
  quiet-month:     No jobs; warehouse days and a vacation week

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Parse the embedded YAML dataset
 3. Save inventory, crew, jobs and rentals through the store

USAGE VIA API:
  POST /api/scenarios/load
  {"scenario_id": "festival-season"}

ADDING NEW SCENARIOS:
  Drop a YAML file into factory/scenarios/. No code change is needed.

NOTE:
  Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - factory/dataset.go: Dataset format and loader
*/
package api

import (
	"net/http"

	"github.com/warp/production-engine/factory"
)

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := factory.Scenarios()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read scenarios", err)
		return
	}
	writeJSON(w, http.StatusOK, toScenarioDTOs(list))
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	list, err := factory.Scenarios()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read scenarios", err)
		return
	}
	for _, s := range toScenarioDTOs(list) {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current, Description: "Currently loaded scenario"})
}

// LoadScenario resets the store and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !decode(w, r, &req) {
		return
	}

	ds, err := factory.Scenario(req.ScenarioID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown scenario", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	h.currentScenario = ""
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	if err := ds.Apply(ctx, h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}
	h.currentScenario = ds.ID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": ds.ID})
}

// ResetDatabase clears every record.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
