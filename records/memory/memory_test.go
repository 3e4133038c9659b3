package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
	"github.com/warp/production-engine/records/memory"
)

func testJob(id string) records.Job {
	return records.Job{
		ID:     id,
		Title:  "Concert " + id,
		Start:  generic.MustParseDay("2024-06-01"),
		End:    generic.MustParseDay("2024-06-03"),
		Status: records.JobConfirmed,
		MaterialList: []records.MaterialLine{
			{ID: "l1", InventoryID: "sm58", Name: "SM58", Quantity: 6},
		},
		AssignedCrew: []string{"crew-1"},
	}
}

func TestMemory_JobSnapshotsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	job := testJob("job-1")
	require.NoError(t, repo.SaveJob(ctx, job))

	// Mutating the caller's record after save must not leak into the store
	job.MaterialList[0].Quantity = 99

	got, err := repo.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, 6, got.MaterialList[0].Quantity)

	// Nor must mutating a fetched snapshot
	got.AssignedCrew[0] = "someone-else"
	again, _ := repo.GetJob(ctx, "job-1")
	assert.Equal(t, []string{"crew-1"}, again.AssignedCrew)
}

func TestMemory_GetUnknown_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	_, err := repo.GetJob(ctx, "nope")
	assert.ErrorIs(t, err, generic.ErrRecordNotFound)
	_, err = repo.GetInventoryItem(ctx, "nope")
	assert.True(t, generic.IsNotFound(err))
	assert.NoError(t, repo.DeleteRental(ctx, "nope"))
}

func TestMemory_SaveRejectsInvalidInterval(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	job := testJob("job-1")
	job.End = generic.MustParseDay("2024-05-01")

	err := repo.SaveJob(ctx, job)
	assert.ErrorIs(t, err, generic.ErrInvalidInterval)

	jobs, _ := repo.ListJobs(ctx)
	assert.Empty(t, jobs)
}

func TestMemory_ListJobs_OrderedByStart(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	late := testJob("job-b")
	late.Start = generic.MustParseDay("2024-07-01")
	late.End = generic.MustParseDay("2024-07-02")
	require.NoError(t, repo.SaveJob(ctx, late))
	require.NoError(t, repo.SaveJob(ctx, testJob("job-a")))

	jobs, err := repo.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "job-a", jobs[0].ID)
}

func TestMemory_Notifications_KeepReadFlagOnUpsert(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	n := records.Notification{ID: "rest-crew-1-2024-06", Type: records.NotifyWarning, Title: "Missed rest"}
	require.NoError(t, repo.SaveNotification(ctx, n))
	require.NoError(t, repo.MarkNotificationRead(ctx, n.ID))

	n.Message = "updated"
	require.NoError(t, repo.SaveNotification(ctx, n))

	list, err := repo.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)
	assert.Equal(t, "updated", list[0].Message)

	assert.ErrorIs(t, repo.MarkNotificationRead(ctx, "missing"), generic.ErrRecordNotFound)
}

func TestMemory_Reset(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	require.NoError(t, repo.SaveJob(ctx, testJob("job-1")))

	require.NoError(t, repo.Reset(ctx))

	jobs, _ := repo.ListJobs(ctx)
	assert.Empty(t, jobs)
}

func TestMemory_StandardLists(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	// GIVEN two kits saved out of name order
	audio := records.StandardList{
		ID: "kit-audio", Name: "Audio kit", Labels: []string{"Audio"}, Type: records.ListTemplate,
		Items: []records.MaterialLine{{ID: "k1", InventoryID: "sm58", Name: "SM58", Quantity: 4}},
	}
	require.NoError(t, repo.SaveStandardList(ctx, records.StandardList{ID: "kit-b", Name: "Basic"}))
	require.NoError(t, repo.SaveStandardList(ctx, audio))

	// WHEN listing
	lists, err := repo.ListStandardLists(ctx)
	require.NoError(t, err)

	// THEN they come back by name, as copies
	require.Len(t, lists, 2)
	assert.Equal(t, "kit-audio", lists[0].ID)
	lists[0].Items[0].Quantity = 99
	got, err := repo.GetStandardList(ctx, "kit-audio")
	require.NoError(t, err)
	assert.Equal(t, audio, got)

	// Invalid lines and unknown types are rejected
	bad := audio
	bad.Items = []records.MaterialLine{{ID: "k1", InventoryID: "sm58", Name: "SM58", Quantity: 0}}
	assert.ErrorIs(t, repo.SaveStandardList(ctx, bad), generic.ErrInvalidRecord)
	bad = audio
	bad.Type = "KIT"
	assert.ErrorIs(t, repo.SaveStandardList(ctx, bad), generic.ErrInvalidRecord)

	require.NoError(t, repo.DeleteStandardList(ctx, "kit-audio"))
	_, err = repo.GetStandardList(ctx, "kit-audio")
	assert.ErrorIs(t, err, generic.ErrRecordNotFound)
}
