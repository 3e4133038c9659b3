package records

import (
	"fmt"

	"github.com/warp/production-engine/generic"
)

// Validate checks a job before it is stored.
func (j Job) Validate() error {
	if j.ID == "" || j.Title == "" {
		return invalid("job: id and title are required")
	}
	if !j.Status.Valid() {
		return invalid("job %s: unknown status %q", j.ID, j.Status)
	}
	if err := j.Period().Validate(); err != nil {
		return generic.WithContext(err, "job "+j.ID)
	}
	return validateLines("job "+j.ID, j.MaterialList)
}

// Validate checks a rental before it is stored.
func (r Rental) Validate() error {
	if r.ID == "" {
		return invalid("rental: id is required")
	}
	if !r.Status.Valid() {
		return invalid("rental %s: unknown status %q", r.ID, r.Status)
	}
	if err := r.Period().Validate(); err != nil {
		return generic.WithContext(err, "rental "+r.ID)
	}
	return validateLines("rental "+r.ID, r.Items)
}

// Validate checks an inventory item before it is stored.
func (i InventoryItem) Validate() error {
	if i.ID == "" || i.Name == "" {
		return invalid("inventory item: id and name are required")
	}
	if !i.Category.Valid() {
		return invalid("inventory item %s: unknown category %q", i.ID, i.Category)
	}
	if i.QuantityOwned < 0 {
		return invalid("inventory item %s: quantity owned must not be negative", i.ID)
	}
	return nil
}

// Validate checks a standard list. An empty type is read as TEMPLATE.
func (l StandardList) Validate() error {
	if l.ID == "" || l.Name == "" {
		return invalid("standard list: id and name are required")
	}
	if l.Type != "" && !l.Type.Valid() {
		return invalid("standard list %s: unknown type %q", l.ID, l.Type)
	}
	return validateLines("standard list "+l.ID, l.Items)
}

// Validate checks a crew member and the absences and tasks embedded in it.
func (m CrewMember) Validate() error {
	if m.ID == "" || m.Name == "" {
		return invalid("crew member: id and name are required")
	}
	if !m.Type.Valid() {
		return invalid("crew member %s: unknown type %q", m.ID, m.Type)
	}
	for _, a := range m.Absences {
		if !a.Kind.Valid() || !a.Status.Valid() {
			return invalid("crew member %s: absence %s has unknown kind or status", m.ID, a.ID)
		}
		if err := a.Period().Validate(); err != nil {
			return generic.WithContext(err, "absence "+a.ID)
		}
	}
	seen := make(map[generic.Day]string, len(m.Tasks))
	for _, t := range m.Tasks {
		if t.Date.IsZero() {
			return invalid("crew member %s: task %s has no date", m.ID, t.ID)
		}
		if other, dup := seen[t.Date]; dup {
			return invalid("crew member %s: tasks %s and %s share %s", m.ID, other, t.ID, t.Date)
		}
		seen[t.Date] = t.ID
	}
	return nil
}

func validateLines(owner string, lines []MaterialLine) error {
	for _, l := range lines {
		if l.Quantity <= 0 {
			return invalid("%s: line %q quantity must be positive", owner, l.Name)
		}
		if !l.External && l.InventoryID == "" {
			return invalid("%s: line %q references no inventory item", owner, l.Name)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", generic.ErrInvalidRecord, fmt.Sprintf(format, args...))
}
