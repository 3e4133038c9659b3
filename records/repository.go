/*
repository.go - Storage interface for back-office records

PURPOSE:
  Defines the interface between the engines' callers and the database.
  Records are stored and returned as whole snapshots: a job comes back with
  its full material list and crew, a crew member with all absences and tasks.
  There is no partial or field-level fetch.

SNAPSHOT CONTRACT:
  - List and Get return copies; mutating a returned record never affects the store
  - Save is an upsert of the whole record
  - Get returns generic.ErrRecordNotFound for unknown ids
  - Delete of an unknown id is not an error

The store is the single source of truth and may be edited concurrently by
other users. Callers fetch a fresh snapshot before every engine call.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - records/memory/memory.go: In-memory for testing and demos

SEE ALSO:
  - types.go: Record definitions
  - api/handlers.go: HTTP surface over a Repository
*/
package records

import "context"

// =============================================================================
// REPOSITORY - Whole-record persistence
// =============================================================================

type Repository interface {
	JobStore
	RentalStore
	InventoryStore
	CrewStore
	StandardListStore
	NotificationStore

	// Reset removes every record. Development and demo use only.
	Reset(ctx context.Context) error
}

type JobStore interface {
	ListJobs(ctx context.Context) ([]Job, error)
	GetJob(ctx context.Context, id string) (Job, error)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, id string) error
}

type RentalStore interface {
	ListRentals(ctx context.Context) ([]Rental, error)
	GetRental(ctx context.Context, id string) (Rental, error)
	SaveRental(ctx context.Context, rental Rental) error
	DeleteRental(ctx context.Context, id string) error
}

type InventoryStore interface {
	ListInventory(ctx context.Context) ([]InventoryItem, error)
	GetInventoryItem(ctx context.Context, id string) (InventoryItem, error)
	SaveInventoryItem(ctx context.Context, item InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id string) error
}

type CrewStore interface {
	ListCrew(ctx context.Context) ([]CrewMember, error)
	GetCrewMember(ctx context.Context, id string) (CrewMember, error)
	SaveCrewMember(ctx context.Context, member CrewMember) error
	DeleteCrewMember(ctx context.Context, id string) error
}

type StandardListStore interface {
	ListStandardLists(ctx context.Context) ([]StandardList, error)
	GetStandardList(ctx context.Context, id string) (StandardList, error)
	SaveStandardList(ctx context.Context, list StandardList) error
	DeleteStandardList(ctx context.Context, id string) error
}

type NotificationStore interface {
	// SaveNotification upserts by id. An existing notification keeps its
	// Read flag so a re-issued alert does not pop up again once dismissed.
	SaveNotification(ctx context.Context, n Notification) error
	ListNotifications(ctx context.Context) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}
