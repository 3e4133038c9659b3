package inventory

import "github.com/warp/production-engine/records"

// Commitments flattens jobs and rentals into per-resource commitments, jobs
// first, each in record order. The resolver returns conflicts in this order.
func Commitments(jobs []records.Job, rentals []records.Rental) []Commitment {
	return append(CommitmentsFromJobs(jobs), CommitmentsFromRentals(rentals)...)
}

// CommitmentsFromJobs flattens job material lists.
func CommitmentsFromJobs(jobs []records.Job) []Commitment {
	var out []Commitment
	for _, j := range jobs {
		for _, line := range j.MaterialList {
			if !claimsStock(line) {
				continue
			}
			out = append(out, Commitment{
				ResourceID: line.InventoryID,
				Quantity:   line.Quantity,
				Period:     j.Period(),
				SourceKind: SourceJob,
				SourceID:   j.ID,
				SourceName: j.Title,
				Cancelled:  j.Cancelled(),
			})
		}
	}
	return out
}

// CommitmentsFromRentals flattens rental item lists.
func CommitmentsFromRentals(rentals []records.Rental) []Commitment {
	var out []Commitment
	for _, r := range rentals {
		for _, line := range r.Items {
			if !claimsStock(line) {
				continue
			}
			out = append(out, Commitment{
				ResourceID: line.InventoryID,
				Quantity:   line.Quantity,
				Period:     r.Period(),
				SourceKind: SourceRental,
				SourceID:   r.ID,
				SourceName: "Rental: " + r.Client,
				Cancelled:  r.Cancelled(),
			})
		}
	}
	return out
}

// ForResource keeps the commitments on one resource.
func ForResource(commitments []Commitment, resourceID string) []Commitment {
	var out []Commitment
	for _, c := range commitments {
		if c.ResourceID == resourceID {
			out = append(out, c)
		}
	}
	return out
}

// External lines are hired from suppliers and lines without an inventory id
// are free text; neither draws on owned stock.
func claimsStock(line records.MaterialLine) bool {
	return !line.External && line.InventoryID != "" && line.Quantity > 0
}
