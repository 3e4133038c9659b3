/*
Package sqlite provides a SQLite-backed records.Repository.

PURPOSE:
  Persists jobs, rentals, the inventory catalog, crew members, material
  kits and notifications. Every record is written and read back as a whole snapshot,
  so nested lists (material lists, assigned crew, absences, tasks) live in
  JSON columns next to the scalar fields that are queried or sorted on.

KEY TABLES:
  inventory:      Owned resources and their total quantity
  jobs:           Date range, status, material_json, crew_json
  rentals:        Pickup/return dates, status, items_json
  crew_members:   Contact data, absences_json, tasks_json
  standard_lists: Material kits, labels_json, items_json
  notifications:  Dashboard alerts, upserted by id

DATES:
  Calendar days are stored as TEXT "YYYY-MM-DD" so lexical order is date
  order. Notification timestamps are RFC3339 with nanoseconds.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With a server database the database's
  own concurrency control would replace it.

WAL MODE:
  File databases are opened with WAL (Write-Ahead Logging): readers do not
  block the single writer. ":memory:" databases are pinned to one connection
  because every new connection would otherwise see an empty database.

USAGE:
  store, err := sqlite.New("./data/production.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - records/repository.go: Interface definitions
  - records/memory/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
)

// Store implements records.Repository using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ records.Repository = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if strings.HasPrefix(dbPath, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS inventory (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		quantity_owned INTEGER NOT NULL,
		serial_number TEXT,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_inventory_name ON inventory(name);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		client TEXT,
		location TEXT,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL,
		material_json TEXT NOT NULL DEFAULT '[]',
		crew_json TEXT NOT NULL DEFAULT '[]',
		notes TEXT
	);

	-- Availability and compliance both scan jobs by date range
	CREATE INDEX IF NOT EXISTS idx_jobs_dates ON jobs(start_date, end_date);

	CREATE TABLE IF NOT EXISTS rentals (
		id TEXT PRIMARY KEY,
		client TEXT NOT NULL,
		pickup_date TEXT NOT NULL,
		return_date TEXT NOT NULL,
		status TEXT NOT NULL,
		items_json TEXT NOT NULL DEFAULT '[]',
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_rentals_dates ON rentals(pickup_date, return_date);

	CREATE TABLE IF NOT EXISTS crew_members (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		roles_json TEXT NOT NULL DEFAULT '[]',
		email TEXT,
		phone TEXT,
		absences_json TEXT NOT NULL DEFAULT '[]',
		tasks_json TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS standard_lists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT,
		labels_json TEXT NOT NULL DEFAULT '[]',
		items_json TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		read INTEGER NOT NULL DEFAULT 0,
		link_to TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_timestamp ON notifications(timestamp);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// INVENTORY STORE
// =============================================================================

const inventoryColumns = "id, name, category, quantity_owned, serial_number, notes"

func (s *Store) ListInventory(ctx context.Context) ([]records.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+inventoryColumns+" FROM inventory ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	items := []records.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) GetInventoryItem(ctx context.Context, id string) (records.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+inventoryColumns+" FROM inventory WHERE id = ?", id)
	return scanInventoryItem(row)
}

func (s *Store) SaveInventoryItem(ctx context.Context, item records.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO inventory (id, name, category, quantity_owned, serial_number, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			quantity_owned = excluded.quantity_owned,
			serial_number = excluded.serial_number,
			notes = excluded.notes
	`
	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.Name, string(item.Category), item.QuantityOwned,
		nullString(item.SerialNumber), nullString(item.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to save inventory item %s: %w", item.ID, err)
	}
	return nil
}

func (s *Store) DeleteInventoryItem(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "inventory", id)
}

func scanInventoryItem(row scanner) (records.InventoryItem, error) {
	var (
		item         records.InventoryItem
		category     string
		serialNumber sql.NullString
		notes        sql.NullString
	)
	err := row.Scan(&item.ID, &item.Name, &category, &item.QuantityOwned, &serialNumber, &notes)
	if err != nil {
		return item, scanError("inventory item", err)
	}
	item.Category = records.Category(category)
	item.SerialNumber = serialNumber.String
	item.Notes = notes.String
	return item, nil
}

// =============================================================================
// JOB STORE
// =============================================================================

const jobColumns = "id, title, client, location, start_date, end_date, status, material_json, crew_json, notes"

func (s *Store) ListJobs(ctx context.Context) ([]records.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+jobColumns+" FROM jobs ORDER BY start_date, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []records.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *Store) GetJob(ctx context.Context, id string) (records.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scanJob(s.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id))
}

func (s *Store) SaveJob(ctx context.Context, job records.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	materialJSON, err := marshalList(job.MaterialList)
	if err != nil {
		return err
	}
	crewJSON, err := marshalList(job.AssignedCrew)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO jobs (id, title, client, location, start_date, end_date, status, material_json, crew_json, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			client = excluded.client,
			location = excluded.location,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status,
			material_json = excluded.material_json,
			crew_json = excluded.crew_json,
			notes = excluded.notes
	`
	_, err = s.db.ExecContext(ctx, query,
		job.ID, job.Title, nullString(job.Client), nullString(job.Location),
		job.Start.String(), job.End.String(), string(job.Status),
		materialJSON, crewJSON, nullString(job.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to save job %s: %w", job.ID, err)
	}
	return nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "jobs", id)
}

func scanJob(row scanner) (records.Job, error) {
	var (
		j                      records.Job
		client, location       sql.NullString
		notes                  sql.NullString
		startDate, endDate     string
		status                 string
		materialJSON, crewJSON string
	)
	err := row.Scan(&j.ID, &j.Title, &client, &location, &startDate, &endDate,
		&status, &materialJSON, &crewJSON, &notes)
	if err != nil {
		return j, scanError("job", err)
	}

	j.Client = client.String
	j.Location = location.String
	j.Notes = notes.String
	j.Status = records.JobStatus(status)
	if j.Start, err = generic.ParseDay(startDate); err != nil {
		return j, fmt.Errorf("job %s: %w", j.ID, err)
	}
	if j.End, err = generic.ParseDay(endDate); err != nil {
		return j, fmt.Errorf("job %s: %w", j.ID, err)
	}
	if err := unmarshalList(materialJSON, &j.MaterialList); err != nil {
		return j, fmt.Errorf("job %s material list: %w", j.ID, err)
	}
	if err := unmarshalList(crewJSON, &j.AssignedCrew); err != nil {
		return j, fmt.Errorf("job %s crew: %w", j.ID, err)
	}
	return j, nil
}

// =============================================================================
// RENTAL STORE
// =============================================================================

const rentalColumns = "id, client, pickup_date, return_date, status, items_json, notes"

func (s *Store) ListRentals(ctx context.Context) ([]records.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+rentalColumns+" FROM rentals ORDER BY pickup_date, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query rentals: %w", err)
	}
	defer rows.Close()

	rentals := []records.Rental{}
	for rows.Next() {
		r, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, r)
	}
	return rentals, rows.Err()
}

func (s *Store) GetRental(ctx context.Context, id string) (records.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scanRental(s.db.QueryRowContext(ctx, "SELECT "+rentalColumns+" FROM rentals WHERE id = ?", id))
}

func (s *Store) SaveRental(ctx context.Context, rental records.Rental) error {
	if err := rental.Validate(); err != nil {
		return err
	}
	itemsJSON, err := marshalList(rental.Items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO rentals (id, client, pickup_date, return_date, status, items_json, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client = excluded.client,
			pickup_date = excluded.pickup_date,
			return_date = excluded.return_date,
			status = excluded.status,
			items_json = excluded.items_json,
			notes = excluded.notes
	`
	_, err = s.db.ExecContext(ctx, query,
		rental.ID, rental.Client, rental.PickupDate.String(), rental.ReturnDate.String(),
		string(rental.Status), itemsJSON, nullString(rental.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to save rental %s: %w", rental.ID, err)
	}
	return nil
}

func (s *Store) DeleteRental(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "rentals", id)
}

func scanRental(row scanner) (records.Rental, error) {
	var (
		r                  records.Rental
		pickup, returnDate string
		status, itemsJSON  string
		notes              sql.NullString
	)
	err := row.Scan(&r.ID, &r.Client, &pickup, &returnDate, &status, &itemsJSON, &notes)
	if err != nil {
		return r, scanError("rental", err)
	}

	r.Status = records.RentalStatus(status)
	r.Notes = notes.String
	if r.PickupDate, err = generic.ParseDay(pickup); err != nil {
		return r, fmt.Errorf("rental %s: %w", r.ID, err)
	}
	if r.ReturnDate, err = generic.ParseDay(returnDate); err != nil {
		return r, fmt.Errorf("rental %s: %w", r.ID, err)
	}
	if err := unmarshalList(itemsJSON, &r.Items); err != nil {
		return r, fmt.Errorf("rental %s items: %w", r.ID, err)
	}
	return r, nil
}

// =============================================================================
// CREW STORE
// =============================================================================

const crewColumns = "id, name, type, roles_json, email, phone, absences_json, tasks_json"

func (s *Store) ListCrew(ctx context.Context) ([]records.CrewMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+crewColumns+" FROM crew_members ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query crew: %w", err)
	}
	defer rows.Close()

	crew := []records.CrewMember{}
	for rows.Next() {
		m, err := scanCrewMember(rows)
		if err != nil {
			return nil, err
		}
		crew = append(crew, m)
	}
	return crew, rows.Err()
}

func (s *Store) GetCrewMember(ctx context.Context, id string) (records.CrewMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scanCrewMember(s.db.QueryRowContext(ctx, "SELECT "+crewColumns+" FROM crew_members WHERE id = ?", id))
}

func (s *Store) SaveCrewMember(ctx context.Context, member records.CrewMember) error {
	if err := member.Validate(); err != nil {
		return err
	}
	rolesJSON, err := marshalList(member.Roles)
	if err != nil {
		return err
	}
	absencesJSON, err := marshalList(member.Absences)
	if err != nil {
		return err
	}
	tasksJSON, err := marshalList(member.Tasks)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO crew_members (id, name, type, roles_json, email, phone, absences_json, tasks_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			roles_json = excluded.roles_json,
			email = excluded.email,
			phone = excluded.phone,
			absences_json = excluded.absences_json,
			tasks_json = excluded.tasks_json
	`
	_, err = s.db.ExecContext(ctx, query,
		member.ID, member.Name, string(member.Type), rolesJSON,
		nullString(member.Email), nullString(member.Phone), absencesJSON, tasksJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save crew member %s: %w", member.ID, err)
	}
	return nil
}

func (s *Store) DeleteCrewMember(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "crew_members", id)
}

func scanCrewMember(row scanner) (records.CrewMember, error) {
	var (
		m                       records.CrewMember
		crewType                string
		rolesJSON               string
		email, phone            sql.NullString
		absencesJSON, tasksJSON string
	)
	err := row.Scan(&m.ID, &m.Name, &crewType, &rolesJSON, &email, &phone, &absencesJSON, &tasksJSON)
	if err != nil {
		return m, scanError("crew member", err)
	}

	m.Type = records.CrewType(crewType)
	m.Email = email.String
	m.Phone = phone.String
	if err := unmarshalList(rolesJSON, &m.Roles); err != nil {
		return m, fmt.Errorf("crew member %s roles: %w", m.ID, err)
	}
	if err := unmarshalList(absencesJSON, &m.Absences); err != nil {
		return m, fmt.Errorf("crew member %s absences: %w", m.ID, err)
	}
	if err := unmarshalList(tasksJSON, &m.Tasks); err != nil {
		return m, fmt.Errorf("crew member %s tasks: %w", m.ID, err)
	}
	return m, nil
}

// =============================================================================
// STANDARD LIST STORE
// =============================================================================

const listColumns = "id, name, type, labels_json, items_json"

func (s *Store) ListStandardLists(ctx context.Context) ([]records.StandardList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+listColumns+" FROM standard_lists ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query standard lists: %w", err)
	}
	defer rows.Close()

	lists := []records.StandardList{}
	for rows.Next() {
		l, err := scanStandardList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (s *Store) GetStandardList(ctx context.Context, id string) (records.StandardList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scanStandardList(s.db.QueryRowContext(ctx, "SELECT "+listColumns+" FROM standard_lists WHERE id = ?", id))
}

func (s *Store) SaveStandardList(ctx context.Context, list records.StandardList) error {
	if err := list.Validate(); err != nil {
		return err
	}
	labelsJSON, err := marshalList(list.Labels)
	if err != nil {
		return err
	}
	itemsJSON, err := marshalList(list.Items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO standard_lists (id, name, type, labels_json, items_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			labels_json = excluded.labels_json,
			items_json = excluded.items_json
	`
	_, err = s.db.ExecContext(ctx, query,
		list.ID, list.Name, nullString(string(list.Type)), labelsJSON, itemsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save standard list %s: %w", list.ID, err)
	}
	return nil
}

func (s *Store) DeleteStandardList(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "standard_lists", id)
}

func scanStandardList(row scanner) (records.StandardList, error) {
	var (
		l                     records.StandardList
		listType              sql.NullString
		labelsJSON, itemsJSON string
	)
	err := row.Scan(&l.ID, &l.Name, &listType, &labelsJSON, &itemsJSON)
	if err != nil {
		return l, scanError("standard list", err)
	}

	l.Type = records.ListType(listType.String)
	if err := unmarshalList(labelsJSON, &l.Labels); err != nil {
		return l, fmt.Errorf("standard list %s labels: %w", l.ID, err)
	}
	if err := unmarshalList(itemsJSON, &l.Items); err != nil {
		return l, fmt.Errorf("standard list %s items: %w", l.ID, err)
	}
	return l, nil
}

// =============================================================================
// NOTIFICATION STORE
// =============================================================================

// SaveNotification upserts by id. The read flag is only set on insert, so a
// notification the user dismissed stays dismissed when it is re-issued.
func (s *Store) SaveNotification(ctx context.Context, n records.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO notifications (id, type, title, message, timestamp, read, link_to)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			message = excluded.message,
			timestamp = excluded.timestamp,
			link_to = excluded.link_to
	`
	_, err := s.db.ExecContext(ctx, query,
		n.ID, string(n.Type), n.Title, n.Message,
		n.Timestamp.UTC().Format(time.RFC3339Nano), n.Read, nullString(n.LinkTo),
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", n.ID, err)
	}
	return nil
}

// ListNotifications returns all notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context) ([]records.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, title, message, timestamp, read, link_to
		FROM notifications
		ORDER BY timestamp DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	list := []records.Notification{}
	for rows.Next() {
		var (
			n         records.Notification
			nType     string
			timestamp string
			linkTo    sql.NullString
		)
		if err := rows.Scan(&n.ID, &nType, &n.Title, &n.Message, &timestamp, &n.Read, &linkTo); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = records.NotificationType(nType)
		n.LinkTo = linkTo.String
		if n.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp); err != nil {
			return nil, fmt.Errorf("notification %s timestamp: %w", n.ID, err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE notifications SET read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return generic.ErrRecordNotFound
	}
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	tables := []string{"notifications", "jobs", "rentals", "crew_members", "standard_lists", "inventory"}
	for _, table := range tables {
		if _, err := sqlTx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return sqlTx.Commit()
}

func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanError(kind string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return generic.ErrRecordNotFound
	}
	return fmt.Errorf("failed to scan %s: %w", kind, err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// marshalList encodes a slice for a JSON column. Nil encodes as "[]".
func marshalList[T any](list []T) (string, error) {
	if list == nil {
		return "[]", nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

// unmarshalList decodes a JSON column. An empty array decodes to nil so a
// round trip preserves records saved with nil slices.
func unmarshalList[T any](data string, dst *[]T) error {
	if data == "" || data == "[]" {
		*dst = nil
		return nil
	}
	return json.Unmarshal([]byte(data), dst)
}
