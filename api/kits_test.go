package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/production-engine/api"
	"github.com/warp/production-engine/records"
)

func TestStandardLists_CRUD(t *testing.T) {
	s := newTestServer(t)

	// GIVEN: A kit posted without ids or type
	rec := s.do(t, http.MethodPost, "/api/standard-lists", map[string]any{
		"name":   "Lighting kit",
		"labels": []string{"Luci"},
		"items":  []map[string]any{{"inventory_id": "led-par", "name": "LED Par", "quantity": 8}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[records.StandardList](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.Items[0].ID)
	assert.Equal(t, records.ListTemplate, created.Type)

	// WHEN: Switching it to a working list
	created.Type = records.ListActive
	rec = s.do(t, http.MethodPut, "/api/standard-lists/"+created.ID, created)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/standard-lists/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, records.ListActive, decodeBody[records.StandardList](t, rec).Type)

	// Bad lines are rejected, unknown ids are 404
	rec = s.do(t, http.MethodPost, "/api/standard-lists", map[string]any{
		"name":  "Broken",
		"items": []map[string]any{{"inventory_id": "led-par", "name": "LED Par", "quantity": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPut, "/api/standard-lists/ghost", map[string]any{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/standard-lists/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/standard-lists", nil)
	assert.Empty(t, decodeBody[[]records.StandardList](t, rec))
}

func TestApplyStandardList_WarnsAndSaves(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	// GIVEN: The festival already takes 6 SM58; wedding and band rental leave 4
	// WHEN: Adding the stage audio kit (2 more SM58, 10 XLR, a hired stage box)
	rec := s.do(t, http.MethodPost, "/api/jobs/job-festival/apply-list",
		api.ApplyListRequest{ListID: "kit-stage-audio"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[api.ApplyListDTO](t, rec)

	// THEN: The microphones fall short by 4; cables are covered
	assert.True(t, resp.Applied)
	require.Len(t, resp.Shortages, 1)
	assert.Equal(t, "sm58", resp.Shortages[0].ResourceID)
	assert.Equal(t, 8, resp.Shortages[0].Requested)
	assert.Equal(t, 4, resp.Shortages[0].Available)
	assert.Equal(t, 4, resp.Shortages[0].Missing)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "Shure SM58")

	// And the merged list is stored despite the shortage
	rec = s.do(t, http.MethodGet, "/api/jobs/job-festival", nil)
	job := decodeBody[records.Job](t, rec)
	require.Len(t, job.MaterialList, 6)
	assert.Equal(t, 8, job.MaterialList[0].Quantity)
	assert.Equal(t, 30, job.MaterialList[3].Quantity, "XLR 20 + 10")
	assert.True(t, job.MaterialList[5].External)
	assert.NotEmpty(t, job.MaterialList[5].ID)
}

func TestApplyStandardList_DryRunLeavesJobAlone(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	rec := s.do(t, http.MethodPost, "/api/jobs/job-festival/apply-list",
		api.ApplyListRequest{ListID: "kit-stage-audio", DryRun: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[api.ApplyListDTO](t, rec)
	assert.False(t, resp.Applied)
	assert.Len(t, resp.Job.MaterialList, 6)

	rec = s.do(t, http.MethodGet, "/api/jobs/job-festival", nil)
	assert.Len(t, decodeBody[records.Job](t, rec).MaterialList, 5)
}

func TestApplyStandardList_UnknownIDs(t *testing.T) {
	s := newTestServer(t)
	s.loadFestival(t)

	rec := s.do(t, http.MethodPost, "/api/jobs/ghost/apply-list", api.ApplyListRequest{ListID: "kit-stage-audio"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/jobs/job-festival/apply-list", api.ApplyListRequest{ListID: "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
