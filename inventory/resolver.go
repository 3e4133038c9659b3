package inventory

import (
	"fmt"

	"github.com/warp/production-engine/generic"
)

// ResourceNotFoundError is returned by Resolve for an unknown resource id.
// Callers render it as zero availability and keep going.
type ResourceNotFoundError struct {
	ResourceID string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.ResourceID)
}

func (e *ResourceNotFoundError) Unwrap() error {
	return generic.ErrResourceNotFound
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolve looks the resource up in the catalog and computes its availability
// over window. An unknown id yields a zero Availability and a
// *ResourceNotFoundError.
func Resolve(
	catalog []Resource,
	resourceID string,
	commitments []Commitment,
	window generic.Period,
	excludeSourceID string,
) (Availability, error) {
	for _, r := range catalog {
		if r.ID == resourceID {
			return Compute(r, commitments, window, excludeSourceID)
		}
	}
	return Availability{ResourceID: resourceID, Conflicts: []Conflict{}}, &ResourceNotFoundError{ResourceID: resourceID}
}

// Compute returns how many units of resource remain over window.
//
// Every non-cancelled commitment on the resource whose source is not
// excludeSourceID and whose interval overlaps window counts against stock and
// is listed as a conflict, in input order. excludeSourceID lets the record
// being edited ignore its own lines; pass "" to count everything.
//
// A commitment on the resource with an inverted interval fails with
// ErrInvalidInterval, and one claiming zero or fewer units with
// ErrInvalidRecord.
func Compute(
	resource Resource,
	commitments []Commitment,
	window generic.Period,
	excludeSourceID string,
) (Availability, error) {
	if err := window.Validate(); err != nil {
		return Availability{}, generic.WithContext(err, "window")
	}

	used := 0
	conflicts := []Conflict{}
	for _, c := range commitments {
		if c.ResourceID != resource.ID || c.Cancelled {
			continue
		}
		if excludeSourceID != "" && c.SourceID == excludeSourceID {
			continue
		}
		if err := c.Period.Validate(); err != nil {
			return Availability{}, generic.WithContext(err, string(c.SourceKind)+" "+c.SourceID)
		}
		if c.Quantity <= 0 {
			return Availability{}, fmt.Errorf("%w: %s %s claims %d units of %s",
				generic.ErrInvalidRecord, c.SourceKind, c.SourceID, c.Quantity, c.ResourceID)
		}
		if !window.Overlaps(c.Period) {
			continue
		}
		used += c.Claimed()
		conflicts = append(conflicts, Conflict{
			SourceKind: c.SourceKind,
			SourceID:   c.SourceID,
			SourceName: c.SourceName,
			Quantity:   c.Quantity,
		})
	}

	return Availability{
		ResourceID: resource.ID,
		Owned:      resource.TotalQuantityOwned,
		Used:       used,
		Available:  max(0, resource.TotalQuantityOwned-used),
		Conflicts:  conflicts,
	}, nil
}
