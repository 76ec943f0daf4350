package data

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"grid-balance/internal/config"
)

// ScenarioEntry describes one preset scenario file.
type ScenarioEntry struct {
	Name        string  `json:"name"`
	File        string  `json:"file"`
	Description string  `json:"description,omitempty"`
	Year        float64 `json:"year"`
	Weather     string  `json:"weather"`
}

// ListScenarios loads every *.yaml preset in dir, sorted by name.
// Files that fail to parse or validate are reported as an error.
func ListScenarios(dir string) ([]ScenarioEntry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	out := make([]ScenarioEntry, 0, len(paths))
	for _, p := range paths {
		c, err := config.Load(p)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario %s: %w", p, err)
		}
		out = append(out, ScenarioEntry{
			Name:        strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			File:        filepath.Base(p),
			Description: c.Description,
			Year:        c.Year,
			Weather:     c.Weather,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LoadScenario loads the named preset from dir.
func LoadScenario(dir, name string) (*config.Config, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid scenario name %q", name)
	}
	return config.Load(filepath.Join(dir, name+".yaml"))
}

// GetDefaultScenarioDir returns the preset directory.
func GetDefaultScenarioDir() string {
	if dir := os.Getenv("SCENARIO_DIR"); dir != "" {
		return dir
	}
	return "./examples/scenarios"
}
