// Package memory provides an in-memory records.Repository.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu            sync.RWMutex
	jobs          map[string]records.Job
	rentals       map[string]records.Rental
	inventory     map[string]records.InventoryItem
	crew          map[string]records.CrewMember
	lists         map[string]records.StandardList
	notifications map[string]records.Notification
}

var _ records.Repository = (*Memory)(nil)

func New() *Memory {
	m := &Memory{}
	m.resetLocked()
	return m
}

func (m *Memory) resetLocked() {
	m.jobs = make(map[string]records.Job)
	m.rentals = make(map[string]records.Rental)
	m.inventory = make(map[string]records.InventoryItem)
	m.crew = make(map[string]records.CrewMember)
	m.lists = make(map[string]records.StandardList)
	m.notifications = make(map[string]records.Notification)
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	return nil
}

// =============================================================================
// JOBS
// =============================================================================

func (m *Memory) ListJobs(_ context.Context) ([]records.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]records.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		result = append(result, copyJob(j))
	}
	slices.SortFunc(result, func(a, b records.Job) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (m *Memory) GetJob(_ context.Context, id string) (records.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	j, ok := m.jobs[id]
	if !ok {
		return records.Job{}, generic.ErrRecordNotFound
	}
	return copyJob(j), nil
}

func (m *Memory) SaveJob(_ context.Context, job records.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = copyJob(job)
	return nil
}

func (m *Memory) DeleteJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
	return nil
}

// =============================================================================
// RENTALS
// =============================================================================

func (m *Memory) ListRentals(_ context.Context) ([]records.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]records.Rental, 0, len(m.rentals))
	for _, r := range m.rentals {
		result = append(result, copyRental(r))
	}
	slices.SortFunc(result, func(a, b records.Rental) int {
		if c := a.PickupDate.Compare(b.PickupDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (m *Memory) GetRental(_ context.Context, id string) (records.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rentals[id]
	if !ok {
		return records.Rental{}, generic.ErrRecordNotFound
	}
	return copyRental(r), nil
}

func (m *Memory) SaveRental(_ context.Context, rental records.Rental) error {
	if err := rental.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rentals[rental.ID] = copyRental(rental)
	return nil
}

func (m *Memory) DeleteRental(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rentals, id)
	return nil
}

// =============================================================================
// INVENTORY
// =============================================================================

func (m *Memory) ListInventory(_ context.Context) ([]records.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]records.InventoryItem, 0, len(m.inventory))
	for _, i := range m.inventory {
		result = append(result, i)
	}
	slices.SortFunc(result, func(a, b records.InventoryItem) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (m *Memory) GetInventoryItem(_ context.Context, id string) (records.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.inventory[id]
	if !ok {
		return records.InventoryItem{}, generic.ErrRecordNotFound
	}
	return i, nil
}

func (m *Memory) SaveInventoryItem(_ context.Context, item records.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inventory[item.ID] = item
	return nil
}

func (m *Memory) DeleteInventoryItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inventory, id)
	return nil
}

// =============================================================================
// CREW
// =============================================================================

func (m *Memory) ListCrew(_ context.Context) ([]records.CrewMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]records.CrewMember, 0, len(m.crew))
	for _, c := range m.crew {
		result = append(result, copyMember(c))
	}
	slices.SortFunc(result, func(a, b records.CrewMember) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (m *Memory) GetCrewMember(_ context.Context, id string) (records.CrewMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.crew[id]
	if !ok {
		return records.CrewMember{}, generic.ErrRecordNotFound
	}
	return copyMember(c), nil
}

func (m *Memory) SaveCrewMember(_ context.Context, member records.CrewMember) error {
	if err := member.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.crew[member.ID] = copyMember(member)
	return nil
}

func (m *Memory) DeleteCrewMember(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.crew, id)
	return nil
}

// =============================================================================
// STANDARD LISTS
// =============================================================================

func (m *Memory) ListStandardLists(_ context.Context) ([]records.StandardList, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]records.StandardList, 0, len(m.lists))
	for _, l := range m.lists {
		result = append(result, copyList(l))
	}
	slices.SortFunc(result, func(a, b records.StandardList) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (m *Memory) GetStandardList(_ context.Context, id string) (records.StandardList, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.lists[id]
	if !ok {
		return records.StandardList{}, generic.ErrRecordNotFound
	}
	return copyList(l), nil
}

func (m *Memory) SaveStandardList(_ context.Context, list records.StandardList) error {
	if err := list.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[list.ID] = copyList(list)
	return nil
}

func (m *Memory) DeleteStandardList(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lists, id)
	return nil
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func (m *Memory) SaveNotification(_ context.Context, n records.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.notifications[n.ID]; ok {
		n.Read = existing.Read
	}
	m.notifications[n.ID] = n
	return nil
}

func (m *Memory) ListNotifications(_ context.Context) ([]records.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]records.Notification, 0, len(m.notifications))
	for _, n := range m.notifications {
		result = append(result, n)
	}
	// Newest first
	slices.SortFunc(result, func(a, b records.Notification) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (m *Memory) MarkNotificationRead(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notifications[id]
	if !ok {
		return generic.ErrRecordNotFound
	}
	n.Read = true
	m.notifications[id] = n
	return nil
}

// =============================================================================
// SNAPSHOT COPIES
// =============================================================================

func copyJob(j records.Job) records.Job {
	j.MaterialList = slices.Clone(j.MaterialList)
	j.AssignedCrew = slices.Clone(j.AssignedCrew)
	return j
}

func copyRental(r records.Rental) records.Rental {
	r.Items = slices.Clone(r.Items)
	return r
}

func copyMember(c records.CrewMember) records.CrewMember {
	c.Roles = slices.Clone(c.Roles)
	c.Absences = slices.Clone(c.Absences)
	c.Tasks = slices.Clone(c.Tasks)
	return c
}

func copyList(l records.StandardList) records.StandardList {
	l.Labels = slices.Clone(l.Labels)
	l.Items = slices.Clone(l.Items)
	return l
}
