package inventory

import (
	"errors"

	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
)

// =============================================================================
// MATERIAL KITS
// =============================================================================

// Shortage is a resource a material list asks more of than remains.
type Shortage struct {
	ResourceID string `json:"resource_id"`
	Name       string `json:"name"`
	Requested  int    `json:"requested"`
	Available  int    `json:"available"`
	Missing    int    `json:"missing"`
}

// MergeLines returns list with the kit lines added. A kit line for an owned
// item already on the list raises that line's quantity; every other kit line
// is appended as a copy with an empty id for the caller to fill.
func MergeLines(list, kit []records.MaterialLine) []records.MaterialLine {
	merged := make([]records.MaterialLine, len(list), len(list)+len(kit))
	copy(merged, list)

	for _, line := range kit {
		if i := ownedLine(merged, line); i >= 0 {
			merged[i].Quantity += line.Quantity
			continue
		}
		line.ID = ""
		merged = append(merged, line)
	}
	return merged
}

// LinesOn keeps the lines of list that draw on an item some kit line also
// draws on.
func LinesOn(list, kit []records.MaterialLine) []records.MaterialLine {
	items := make(map[string]bool, len(kit))
	for _, l := range kit {
		if claimsStock(l) {
			items[l.InventoryID] = true
		}
	}
	var out []records.MaterialLine
	for _, l := range list {
		if claimsStock(l) && items[l.InventoryID] {
			out = append(out, l)
		}
	}
	return out
}

func ownedLine(list []records.MaterialLine, line records.MaterialLine) int {
	if line.External || line.InventoryID == "" {
		return -1
	}
	for i, l := range list {
		if !l.External && l.InventoryID == line.InventoryID {
			return i
		}
	}
	return -1
}

// CheckLines resolves every owned line of a material list over window and
// reports the resources it asks more of than remain, in first-line order.
// Lines on the same resource are summed. sourceID is the record the list
// belongs to; its stored commitments are left out so the list is not counted
// twice. An item missing from the catalog counts as zero available.
func CheckLines(
	catalog []Resource,
	commitments []Commitment,
	window generic.Period,
	sourceID string,
	lines []records.MaterialLine,
) ([]Shortage, error) {
	requested := make(map[string]int)
	names := make(map[string]string)
	var order []string
	for _, l := range lines {
		if !claimsStock(l) {
			continue
		}
		if _, seen := requested[l.InventoryID]; !seen {
			order = append(order, l.InventoryID)
			names[l.InventoryID] = l.Name
		}
		requested[l.InventoryID] += l.Quantity
	}

	shortages := []Shortage{}
	for _, id := range order {
		a, err := Resolve(catalog, id, commitments, window, sourceID)
		var notFound *ResourceNotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return nil, err
		}
		if a.Covers(requested[id]) {
			continue
		}
		shortages = append(shortages, Shortage{
			ResourceID: id,
			Name:       names[id],
			Requested:  requested[id],
			Available:  a.Available,
			Missing:    requested[id] - a.Available,
		})
	}
	return shortages, nil
}
