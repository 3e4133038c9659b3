// Package inventory resolves how much of an owned resource is still free for
// a date window, given every job and rental that claims it.
//
// The resolver is advisory. It reports remaining stock and the commitments
// that conflict with the window; callers warn and let the user override. It
// never rejects an operation and keeps no state between calls.
package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
)

// =============================================================================
// RESOURCE
// =============================================================================

// Resource is a fungible owned item. Only TotalQuantityOwned matters to the
// resolver; the rest is carried for display.
type Resource struct {
	ID                 string
	Name               string
	Category           records.Category
	TotalQuantityOwned int
}

// ResourcesFrom maps catalog records to resources.
func ResourcesFrom(items []records.InventoryItem) []Resource {
	resources := make([]Resource, len(items))
	for i, item := range items {
		resources[i] = Resource{
			ID:                 item.ID,
			Name:               item.Name,
			Category:           item.Category,
			TotalQuantityOwned: item.QuantityOwned,
		}
	}
	return resources
}

// =============================================================================
// COMMITMENT - A claim on a resource for a date interval
// =============================================================================

// SourceKind tells which kind of record a commitment came from.
type SourceKind string

const (
	SourceJob    SourceKind = "JOB"
	SourceRental SourceKind = "RENTAL"
)

type Commitment struct {
	ResourceID string
	Quantity   int
	Period     generic.Period
	SourceKind SourceKind
	SourceID   string
	SourceName string
	Cancelled  bool
}

// Claimed is the quantity the commitment takes from stock. A cancelled job
// or rental claims nothing.
func (c Commitment) Claimed() int {
	if c.Cancelled {
		return 0
	}
	return c.Quantity
}

// =============================================================================
// AVAILABILITY - Resolver result
// =============================================================================

// Conflict is a commitment overlapping the queried window.
type Conflict struct {
	SourceKind SourceKind `json:"source_kind"`
	SourceID   string     `json:"source_id"`
	SourceName string     `json:"source_name"`
	Quantity   int        `json:"quantity"`
}

type Availability struct {
	ResourceID string
	Owned      int
	Used       int
	// Available is max(0, Owned-Used). Used may exceed Owned when stock was
	// reduced after commitments were made.
	Available int
	Conflicts []Conflict
}

// Covers reports whether the remaining stock satisfies a requested quantity.
func (a Availability) Covers(quantity int) bool {
	return a.Available >= quantity
}

// Overcommitted is the quantity claimed beyond what is owned.
func (a Availability) Overcommitted() int {
	return max(0, a.Used-a.Owned)
}

// Utilization is the share of owned stock claimed in the window, as a
// percentage rounded to two decimals. It exceeds 100 when overcommitted and
// is zero when nothing is owned.
func (a Availability) Utilization() decimal.Decimal {
	if a.Owned <= 0 {
		return decimal.Zero
	}
	used := decimal.NewFromInt(int64(a.Used))
	owned := decimal.NewFromInt(int64(a.Owned))
	return used.Mul(decimal.NewFromInt(100)).Div(owned).Round(2)
}
