package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
	"github.com/warp/production-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func day(s string) generic.Day { return generic.MustParseDay(s) }

func TestStore_JobRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	// GIVEN: A job with a mixed material list and two crew members
	job := records.Job{
		ID:       "job-1",
		Title:    "Summer festival",
		Client:   "City Council",
		Location: "Main square",
		Start:    day("2024-06-01"),
		End:      day("2024-06-03"),
		Status:   records.JobConfirmed,
		MaterialList: []records.MaterialLine{
			{ID: "l1", InventoryID: "sm58", Name: "SM58", Category: records.CategoryAudio, Quantity: 6},
			{ID: "l2", Name: "LED wall", Quantity: 1, External: true, Supplier: "Hire Co"},
		},
		AssignedCrew: []string{"crew-1", "crew-2"},
	}

	// WHEN: Saved and read back
	require.NoError(t, store.SaveJob(ctx, job))
	got, err := store.GetJob(ctx, "job-1")
	require.NoError(t, err)

	// THEN: The whole snapshot survives
	assert.Equal(t, job, got)
}

func TestStore_SaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	item := records.InventoryItem{ID: "sm58", Name: "SM58", Category: records.CategoryAudio, QuantityOwned: 10}
	require.NoError(t, store.SaveInventoryItem(ctx, item))

	item.QuantityOwned = 12
	require.NoError(t, store.SaveInventoryItem(ctx, item))

	items, err := store.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 12, items[0].QuantityOwned)
}

func TestStore_RejectsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	err := store.SaveRental(ctx, records.Rental{
		ID:         "rent-1",
		Client:     "Band",
		PickupDate: day("2024-06-05"),
		ReturnDate: day("2024-06-01"),
		Status:     records.RentalConfirmed,
	})
	assert.ErrorIs(t, err, generic.ErrInvalidInterval)

	rentals, err := store.ListRentals(ctx)
	require.NoError(t, err)
	assert.Empty(t, rentals)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.GetJob(ctx, "missing")
	assert.ErrorIs(t, err, generic.ErrRecordNotFound)
	_, err = store.GetRental(ctx, "missing")
	assert.ErrorIs(t, err, generic.ErrRecordNotFound)
	_, err = store.GetInventoryItem(ctx, "missing")
	assert.ErrorIs(t, err, generic.ErrRecordNotFound)
	_, err = store.GetCrewMember(ctx, "missing")
	assert.ErrorIs(t, err, generic.ErrRecordNotFound)

	assert.NoError(t, store.DeleteJob(ctx, "missing"))
	assert.ErrorIs(t, store.MarkNotificationRead(ctx, "missing"), generic.ErrRecordNotFound)
}

func TestStore_CrewMemberKeepsAbsencesAndTasks(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	member := records.CrewMember{
		ID:    "crew-1",
		Name:  "Marco",
		Type:  records.CrewInternal,
		Roles: []string{"Audio", "Driver"},
		Email: "marco@example.com",
		Absences: []records.CrewAbsence{
			{ID: "a1", Kind: records.AbsenceVacation, Start: day("2024-07-08"), End: day("2024-07-12"), Status: records.ApprovalApproved},
		},
		Tasks: []records.CrewTask{
			{ID: "t1", Date: day("2024-07-13"), Description: "Van service", AssignedBy: "office"},
		},
	}
	require.NoError(t, store.SaveCrewMember(ctx, member))

	got, err := store.GetCrewMember(ctx, "crew-1")
	require.NoError(t, err)
	assert.Equal(t, member, got)
}

func TestStore_ListOrdering(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	for _, j := range []records.Job{
		{ID: "job-b", Title: "B", Start: day("2024-06-10"), End: day("2024-06-11"), Status: records.JobDraft},
		{ID: "job-c", Title: "C", Start: day("2024-06-01"), End: day("2024-06-02"), Status: records.JobDraft},
		{ID: "job-a", Title: "A", Start: day("2024-06-10"), End: day("2024-06-12"), Status: records.JobDraft},
	} {
		require.NoError(t, store.SaveJob(ctx, j))
	}

	jobs, err := store.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, []string{"job-c", "job-a", "job-b"}, []string{jobs[0].ID, jobs[1].ID, jobs[2].ID})
}

func TestStore_NotificationUpsertKeepsReadFlag(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	first := time.Date(2024, 6, 30, 8, 0, 0, 0, time.UTC)
	n := records.Notification{
		ID:        "rest-crew-1-2024-06",
		Type:      records.NotifyWarning,
		Title:     "Missed rest days",
		Message:   "Marco missed 2 rest days in June 2024",
		Timestamp: first,
	}
	require.NoError(t, store.SaveNotification(ctx, n))
	require.NoError(t, store.MarkNotificationRead(ctx, n.ID))

	// WHEN: The monitor re-issues the same alert
	n.Message = "Marco missed 3 rest days in June 2024"
	n.Timestamp = first.Add(time.Hour)
	require.NoError(t, store.SaveNotification(ctx, n))

	list, err := store.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)
	assert.Equal(t, n.Message, list[0].Message)
	assert.True(t, list[0].Timestamp.Equal(n.Timestamp))
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.SaveInventoryItem(ctx, records.InventoryItem{ID: "sm58", Name: "SM58", Category: records.CategoryAudio, QuantityOwned: 10}))
	require.NoError(t, store.SaveNotification(ctx, records.Notification{ID: "n1", Type: records.NotifyInfo, Title: "t", Message: "m", Timestamp: time.Now()}))

	require.NoError(t, store.Reset(ctx))

	items, err := store.ListInventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	list, err := store.ListNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_StandardListRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	// GIVEN: A kit with an owned and an external line
	kit := records.StandardList{
		ID:     "kit-audio",
		Name:   "Audio kit",
		Labels: []string{"Audio", "Small"},
		Type:   records.ListTemplate,
		Items: []records.MaterialLine{
			{ID: "k1", InventoryID: "sm58", Name: "SM58", Category: records.CategoryAudio, Quantity: 4},
			{ID: "k2", Name: "Stage box", Quantity: 1, External: true},
		},
	}
	require.NoError(t, store.SaveStandardList(ctx, kit))
	require.NoError(t, store.SaveStandardList(ctx, records.StandardList{ID: "kit-0", Name: "Basic"}))

	// THEN: It comes back whole, and lists are ordered by name
	got, err := store.GetStandardList(ctx, "kit-audio")
	require.NoError(t, err)
	assert.Equal(t, kit, got)

	lists, err := store.ListStandardLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "kit-audio", lists[0].ID)
	assert.Equal(t, records.ListType(""), lists[1].Type)

	require.NoError(t, store.DeleteStandardList(ctx, "kit-audio"))
	_, err = store.GetStandardList(ctx, "kit-audio")
	assert.ErrorIs(t, err, generic.ErrRecordNotFound)
}

func TestStore_CorruptNotificationTimestamp(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "production.db")
	store, err := sqlite.New(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveNotification(ctx, records.Notification{
		ID: "n1", Type: records.NotifyInfo, Title: "t", Message: "m", Timestamp: time.Now(),
	}))

	// GIVEN: A timestamp damaged outside the store
	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer raw.Close()
	_, err = raw.ExecContext(ctx, "UPDATE notifications SET timestamp = 'yesterday' WHERE id = 'n1'")
	require.NoError(t, err)

	// WHEN/THEN: Listing reports it instead of returning a zero time
	_, err = store.ListNotifications(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notification n1 timestamp")
}
