/*
Package factory loads back-office datasets from YAML.

PURPOSE:
  Builds records (inventory, jobs, rentals, crew, standard lists) from a
  YAML document and writes them through a records.Repository. Used for
  seeding a fresh
  database from the CLI and for the demo scenarios served by the API.
  Demo data never lives in package globals read by the engines: it is
  loaded into a repository and read back as snapshots like any other data.

YAML SCHEMA:
  id: festival-season
  name: Festival Season
  description: Overlapping June jobs
  inventory:
    - {id: sm58, name: Shure SM58, category: AUDIO, quantity_owned: 10}
  jobs:
    - id: job-festival
      title: Summer Festival
      start_date: 2024-06-01
      end_date: 2024-06-03
      status: CONFIRMED
      material_list:
        - {inventory_id: sm58, name: Shure SM58, quantity: 6}
      assigned_crew: [crew-marco]
  rentals: [...]
  crew: [...]
  standard_lists:
    - id: kit-audio
      name: Stage audio kit
      type: TEMPLATE
      items:
        - {inventory_id: sm58, name: Shure SM58, quantity: 2}

KEY FEATURES:
  - Strict decoding: unknown fields are rejected (catches typos)
  - Missing ids are filled with generated UUIDs
  - Every record is validated, and references (inventory ids on material
    lines, crew ids on jobs) must resolve inside the dataset

USAGE:
  ds, err := factory.Load("seed.yaml")
  if err != nil {
      log.Fatal(err)
  }
  err = ds.Apply(ctx, store)

SEE ALSO:
  - scenarios.go: Embedded demo datasets
  - records/types.go: Record definitions
*/
package factory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/warp/production-engine/generic"
	"github.com/warp/production-engine/records"
	"gopkg.in/yaml.v3"
)

// Dataset is a self-contained set of records.
type Dataset struct {
	ID          string `yaml:"id,omitempty"`
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`

	Inventory []records.InventoryItem `yaml:"inventory"`
	Jobs      []records.Job           `yaml:"jobs"`
	Rentals   []records.Rental        `yaml:"rentals"`
	Crew      []records.CrewMember    `yaml:"crew"`

	StandardLists []records.StandardList `yaml:"standard_lists"`
}

// NewID returns a fresh record id.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Load reads and parses a dataset file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes a YAML dataset, fills missing ids and validates it.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ds.assignIDs()
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks every record and the references between them.
func (ds *Dataset) Validate() error {
	items := make(map[string]bool, len(ds.Inventory))
	for _, item := range ds.Inventory {
		if err := item.Validate(); err != nil {
			return err
		}
		if items[item.ID] {
			return duplicate("inventory item", item.ID)
		}
		items[item.ID] = true
	}

	crew := make(map[string]bool, len(ds.Crew))
	for _, m := range ds.Crew {
		if err := m.Validate(); err != nil {
			return err
		}
		if crew[m.ID] {
			return duplicate("crew member", m.ID)
		}
		crew[m.ID] = true
	}

	jobs := make(map[string]bool, len(ds.Jobs))
	for _, j := range ds.Jobs {
		if err := j.Validate(); err != nil {
			return err
		}
		if jobs[j.ID] {
			return duplicate("job", j.ID)
		}
		jobs[j.ID] = true
		if err := checkLines("job "+j.ID, j.MaterialList, items); err != nil {
			return err
		}
		for _, id := range j.AssignedCrew {
			if !crew[id] {
				return fmt.Errorf("%w: job %s assigns unknown crew member %q", generic.ErrInvalidRecord, j.ID, id)
			}
		}
	}

	lists := make(map[string]bool, len(ds.StandardLists))
	for _, l := range ds.StandardLists {
		if err := l.Validate(); err != nil {
			return err
		}
		if lists[l.ID] {
			return duplicate("standard list", l.ID)
		}
		lists[l.ID] = true
		if err := checkLines("standard list "+l.ID, l.Items, items); err != nil {
			return err
		}
	}

	rentals := make(map[string]bool, len(ds.Rentals))
	for _, r := range ds.Rentals {
		if err := r.Validate(); err != nil {
			return err
		}
		if rentals[r.ID] {
			return duplicate("rental", r.ID)
		}
		rentals[r.ID] = true
		if err := checkLines("rental "+r.ID, r.Items, items); err != nil {
			return err
		}
	}
	return nil
}

// Apply saves every record through the repository. Inventory and crew go
// first so the stored jobs and rentals never reference missing records.
func (ds *Dataset) Apply(ctx context.Context, repo records.Repository) error {
	for _, item := range ds.Inventory {
		if err := repo.SaveInventoryItem(ctx, item); err != nil {
			return fmt.Errorf("inventory item %s: %w", item.ID, err)
		}
	}
	for _, m := range ds.Crew {
		if err := repo.SaveCrewMember(ctx, m); err != nil {
			return fmt.Errorf("crew member %s: %w", m.ID, err)
		}
	}
	for _, l := range ds.StandardLists {
		if err := repo.SaveStandardList(ctx, l); err != nil {
			return fmt.Errorf("standard list %s: %w", l.ID, err)
		}
	}
	for _, j := range ds.Jobs {
		if err := repo.SaveJob(ctx, j); err != nil {
			return fmt.Errorf("job %s: %w", j.ID, err)
		}
	}
	for _, r := range ds.Rentals {
		if err := repo.SaveRental(ctx, r); err != nil {
			return fmt.Errorf("rental %s: %w", r.ID, err)
		}
	}
	return nil
}

// Counts summarizes the dataset for logs and CLI output.
func (ds *Dataset) Counts() string {
	return fmt.Sprintf("%d inventory items, %d jobs, %d rentals, %d crew members, %d standard lists",
		len(ds.Inventory), len(ds.Jobs), len(ds.Rentals), len(ds.Crew), len(ds.StandardLists))
}

func (ds *Dataset) assignIDs() {
	for i := range ds.Inventory {
		FillItemID(&ds.Inventory[i])
	}
	for i := range ds.Jobs {
		FillJobIDs(&ds.Jobs[i])
	}
	for i := range ds.Rentals {
		FillRentalIDs(&ds.Rentals[i])
	}
	for i := range ds.Crew {
		FillCrewIDs(&ds.Crew[i])
	}
	for i := range ds.StandardLists {
		FillListIDs(&ds.StandardLists[i])
	}
}

// FillItemID gives an inventory item without an id a fresh one.
func FillItemID(item *records.InventoryItem) {
	fillID(&item.ID)
}

// FillJobIDs gives the job and its material lines ids where missing.
func FillJobIDs(j *records.Job) {
	fillID(&j.ID)
	for k := range j.MaterialList {
		fillID(&j.MaterialList[k].ID)
	}
}

// FillRentalIDs gives the rental and its items ids where missing.
func FillRentalIDs(r *records.Rental) {
	fillID(&r.ID)
	for k := range r.Items {
		fillID(&r.Items[k].ID)
	}
}

// FillCrewIDs gives the member, absences and tasks ids where missing.
func FillCrewIDs(m *records.CrewMember) {
	fillID(&m.ID)
	for k := range m.Absences {
		fillID(&m.Absences[k].ID)
	}
	for k := range m.Tasks {
		fillID(&m.Tasks[k].ID)
	}
}

// FillListIDs gives a standard list and its lines ids where missing.
func FillListIDs(l *records.StandardList) {
	fillID(&l.ID)
	for k := range l.Items {
		fillID(&l.Items[k].ID)
	}
}

func fillID(id *string) {
	if *id == "" {
		*id = NewID()
	}
}

func checkLines(owner string, lines []records.MaterialLine, items map[string]bool) error {
	for _, l := range lines {
		if !l.External && !items[l.InventoryID] {
			return fmt.Errorf("%w: %s references unknown inventory item %q", generic.ErrInvalidRecord, owner, l.InventoryID)
		}
	}
	return nil
}

func duplicate(kind, id string) error {
	return fmt.Errorf("%w: duplicate %s id %q", generic.ErrInvalidRecord, kind, id)
}
