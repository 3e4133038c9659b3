package factory

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// =============================================================================
// DEMO SCENARIOS - Embedded datasets
// =============================================================================

//go:embed scenarios/*.yaml
var scenarioFS embed.FS

// ScenarioInfo describes an embedded demo dataset.
type ScenarioInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Scenarios lists the embedded demo datasets ordered by id.
func Scenarios() ([]ScenarioInfo, error) {
	entries, err := fs.ReadDir(scenarioFS, "scenarios")
	if err != nil {
		return nil, err
	}

	var list []ScenarioInfo
	for _, e := range entries {
		ds, err := readScenario(e.Name())
		if err != nil {
			return nil, err
		}
		list = append(list, ScenarioInfo{ID: ds.ID, Name: ds.Name, Description: ds.Description})
	}
	slices.SortFunc(list, func(a, b ScenarioInfo) int { return strings.Compare(a.ID, b.ID) })
	return list, nil
}

// Scenario returns the embedded dataset with the given id.
func Scenario(id string) (*Dataset, error) {
	if id == "" || strings.ContainsAny(id, "/\\.") {
		return nil, fmt.Errorf("unknown scenario %q", id)
	}
	ds, err := readScenario(id + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown scenario %q: %w", id, err)
	}
	return ds, nil
}

func readScenario(name string) (*Dataset, error) {
	data, err := scenarioFS.ReadFile(path.Join("scenarios", name))
	if err != nil {
		return nil, err
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	if ds.ID == "" {
		ds.ID = strings.TrimSuffix(name, ".yaml")
	}
	return ds, nil
}
