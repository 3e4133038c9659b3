/*
handlers_test.go - HTTP tests for the API handlers

Tests for:
- Record CRUD and error mapping (400/404)
- Availability endpoint, including the unknown-resource degrade
- Rest compliance, week plan and rest report
*/
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/production-engine/api"
	"github.com/warp/production-engine/crew"
	"github.com/warp/production-engine/factory"
	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
	"github.com/warp/production-engine/records/memory"
)

type testServer struct {
	handler *api.Handler
	router  http.Handler
	store   *memory.Memory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.New()
	h := api.NewHandler(store, crew.DefaultRule)
	h.Now = func() time.Time { return time.Date(2024, time.June, 20, 9, 0, 0, 0, time.UTC) }
	return &testServer{handler: h, router: api.NewRouter(h, []string{"http://localhost:5173"}), store: store}
}

// loadFestival seeds the festival-season demo dataset.
func (s *testServer) loadFestival(t *testing.T) {
	t.Helper()
	ds, err := factory.Scenario("festival-season")
	require.NoError(t, err)
	require.NoError(t, ds.Apply(context.Background(), s.store))
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// =============================================================================
// RECORD CRUD
// =============================================================================

func TestCreateJob_GeneratesIDs(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/jobs", map[string]any{
		"title":      "Club night",
		"start_date": "2024-06-14",
		"end_date":   "2024-06-15",
		"status":     "DRAFT",
		"material_list": []map[string]any{
			{"inventory_id": "sm58", "name": "SM58", "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	job := decodeBody[records.Job](t, rec)
	assert.NotEmpty(t, job.ID)
	assert.NotEmpty(t, job.MaterialList[0].ID)

	rec = s.do(t, http.MethodGet, "/api/jobs/"+job.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateJob_InvalidIntervalIs400(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/jobs", map[string]any{
		"id": "job-x", "title": "Backwards", "status": "DRAFT",
		"start_date": "2024-06-05", "end_date": "2024-06-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errResp := decodeBody[api.ErrorResponse](t, rec)
	assert.Contains(t, errResp.Details, "job job-x")
}

func TestCreateJob_MalformedDateIs400(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/jobs", map[string]any{
		"title": "Bad", "status": "DRAFT", "start_date": "06/01/2024", "end_date": "2024-06-02",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecord_NotFoundIs404(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/jobs/nope", "/api/rentals/nope", "/api/inventory/nope", "/api/crew/nope"} {
		rec := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestUpdateInventoryItem(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	// WHEN: Stock is reduced through PUT
	rec := s.do(t, http.MethodPut, "/api/inventory/sm58", map[string]any{
		"name": "Shure SM58", "category": "AUDIO", "quantity_owned": 8,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// THEN: The stored item changed
	item, err := s.store.GetInventoryItem(context.Background(), "sm58")
	require.NoError(t, err)
	assert.Equal(t, 8, item.QuantityOwned)

	// AND: A body id that disagrees with the URL is rejected
	rec = s.do(t, http.MethodPut, "/api/inventory/sm58", map[string]any{
		"id": "led-par", "name": "x", "category": "AUDIO", "quantity_owned": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// AND: Updating an unknown id is 404
	rec = s.do(t, http.MethodPut, "/api/inventory/ghost", map[string]any{
		"name": "Ghost", "category": "AUDIO", "quantity_owned": 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteJob(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	rec := s.do(t, http.MethodDelete, "/api/jobs/job-wedding", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/jobs/job-wedding", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// AVAILABILITY
// =============================================================================

func TestGetAvailability_Overcommitted(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	// GIVEN: sm58 owned 10; festival 6 + wedding 4 + band rental 2 overlap Jun 1..3
	rec := s.do(t, http.MethodGet, "/api/inventory/sm58/availability?start=2024-06-01&end=2024-06-03&quantity=1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	a := decodeBody[api.AvailabilityDTO](t, rec)
	assert.Equal(t, "Shure SM58", a.ResourceName)
	assert.Equal(t, 10, a.Owned)
	assert.Equal(t, 12, a.Used)
	assert.Equal(t, 0, a.Available)
	assert.Equal(t, 2, a.Overcommitted)
	assert.Equal(t, "120.00", a.Utilization)
	require.NotNil(t, a.Sufficient)
	assert.False(t, *a.Sufficient)
	require.Len(t, a.Conflicts, 3)
	assert.Equal(t, "job-festival", a.Conflicts[0].SourceID)
	assert.Equal(t, "Rental: The Rolling Amps", a.Conflicts[2].SourceName)
}

func TestGetAvailability_ExcludeSelf(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	// WHEN: The festival editor asks while excluding its own lines
	rec := s.do(t, http.MethodGet, "/api/inventory/sm58/availability?start=2024-06-01&end=2024-06-03&exclude=job-festival&quantity=6", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	a := decodeBody[api.AvailabilityDTO](t, rec)
	assert.Equal(t, 6, a.Used)
	assert.Equal(t, 4, a.Available)
	assert.False(t, *a.Sufficient)
}

func TestGetAvailability_UnknownResourceDegrades(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	rec := s.do(t, http.MethodGet, "/api/inventory/ghost/availability?start=2024-06-01&end=2024-06-03", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	a := decodeBody[api.AvailabilityDTO](t, rec)
	assert.Equal(t, 0, a.Available)
	assert.NotEmpty(t, a.Warning)
	assert.NotNil(t, a.Conflicts)
}

func TestGetAvailability_BadWindow(t *testing.T) {
	s := newTestServer(t)

	tests := []string{
		"/api/inventory/sm58/availability?start=2024-06-05&end=2024-06-01",
		"/api/inventory/sm58/availability?start=2024-06-01",
		"/api/inventory/sm58/availability?start=2024-06-01&end=2024-06-02&quantity=-1",
	}
	for _, path := range tests {
		rec := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

// =============================================================================
// CREW PLANNING
// =============================================================================

func TestGetRestCompliance(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	rec := s.do(t, http.MethodGet, "/api/crew/crew-marco/rest?year=2024&month=6", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	c := decodeBody[api.ComplianceDTO](t, rec)
	assert.Equal(t, "Marco Rossi", c.MemberName)
	assert.Equal(t, 3, c.MissedRest)
	assert.False(t, c.Compliant)

	weeks := map[string]api.WeekDTO{}
	for _, w := range c.Weeks {
		weeks[w.Week] = w
	}
	assert.Equal(t, 7, weeks["2024-W23"].WorkedDays)
	assert.Equal(t, 2, weeks["2024-W23"].Surplus)
	assert.Equal(t, 0, weeks["2024-W25"].WorkedDays, "vacation week has no bucket")
	assert.Equal(t, "2024-W22", c.Weeks[0].Week)
}

func TestGetRestCompliance_DefaultsToCurrentMonth(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	rec := s.do(t, http.MethodGet, "/api/crew/crew-giulia/rest", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	c := decodeBody[api.ComplianceDTO](t, rec)
	assert.Equal(t, 2024, c.Year)
	assert.Equal(t, 6, c.Month)
	assert.True(t, c.Compliant)
}

func TestGetRestCompliance_BadInput(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/crew/crew-marco/rest?month=13", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/crew/nobody/rest", nil).Code)
}

func TestGetWeekPlan(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	rec := s.do(t, http.MethodGet, "/api/crew/crew-marco/plan?date=2024-06-05", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	plan := decodeBody[api.WeekPlanDTO](t, rec)
	assert.Equal(t, "2024-W23", plan.Week)
	assert.Equal(t, 7, plan.WorkedDays)
	require.Len(t, plan.Days, 7)
	assert.Equal(t, crew.DayJob, plan.Days[0].Kind)
	assert.Equal(t, crew.DayWarehouse, plan.Days[1].Kind)
	assert.Equal(t, generic.MustParseDay("2024-06-09"), plan.Days[6].Date)
}

func TestGetRestReport_InternalCrewOnly(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	rec := s.do(t, http.MethodGet, "/api/rest-report?year=2024&month=6", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	report := decodeBody[[]api.ComplianceDTO](t, rec)
	require.Len(t, report, 2, "freelancer left out")
	assert.Equal(t, "crew-giulia", report[0].MemberID)
	assert.Equal(t, 0, report[0].MissedRest)
	assert.Equal(t, "crew-marco", report[1].MemberID)
	assert.Equal(t, 3, report[1].MissedRest)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/health", nil).Code)
}
