package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"grid-balance/internal/model"
	"grid-balance/internal/roadmap"

	"gopkg.in/yaml.v3"
)

const (
	DefaultYear    = 2030.0
	DefaultWeather = model.Dunkelflaute
)

// Config is the on-disk scenario shape (YAML). The API accepts the same shape as JSON.
//
// Everything except year and weather is an override on top of the roadmap: a source,
// storage unit or demand component not mentioned keeps its interpolated values.
type Config struct {
	Description string `yaml:"description" json:"description,omitempty"`

	Year    float64 `yaml:"year" json:"year"`
	Weather string  `yaml:"weather" json:"weather"`

	// Optional: replace the built-in milestone table (e.g. examples/milestones/*.yaml).
	// Only YAML files on disk may name one; API request bodies cannot.
	MilestonesFile string `yaml:"milestones_file" json:"-"`

	Sources map[string]SourceConfig  `yaml:"sources" json:"sources,omitempty"`
	Storage map[string]StorageConfig `yaml:"storage" json:"storage,omitempty"`
	Demand  map[string]float64       `yaml:"demand" json:"demand,omitempty"`
}

// SourceConfig overrides one generation source. Nil fields keep the roadmap value,
// so an explicit 0 switches a source off.
type SourceConfig struct {
	CapacityGW *float64 `yaml:"capacity_gw" json:"capacity_gw,omitempty"`
	LoadFactor *float64 `yaml:"load_factor" json:"load_factor,omitempty"`
}

// StorageConfig overrides one storage unit. The unit starts full unless
// InitialSoCGWh is given.
type StorageConfig struct {
	PowerGW       *float64 `yaml:"power_gw" json:"power_gw,omitempty"`
	EnergyGWh     *float64 `yaml:"energy_gwh" json:"energy_gwh,omitempty"`
	Efficiency    *float64 `yaml:"efficiency" json:"efficiency,omitempty"`
	InitialSoCGWh *float64 `yaml:"initial_soc_gwh" json:"initial_soc_gwh,omitempty"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads a config and resolves milestones_file, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.MilestonesFile != "" && !filepath.IsAbs(c.MilestonesFile) {
		// Prefer paths relative to the config file, fall back to cwd.
		cand := filepath.Join(filepath.Dir(path), c.MilestonesFile)
		if _, err := os.Stat(cand); err == nil {
			c.MilestonesFile = cand
		}
	}
	return &c, nil
}

// ApplyDefaults fills in a missing year or weather.
func (c *Config) ApplyDefaults() {
	if c.Year == 0 {
		c.Year = DefaultYear
	}
	if c.Weather == "" {
		c.Weather = string(DefaultWeather)
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if math.IsNaN(c.Year) {
		return fmt.Errorf("year: %w", model.ErrNotANumber)
	}
	if _, err := model.LookupWeather(model.WeatherScenario(c.Weather)); err != nil {
		return err
	}
	for _, name := range sortedKeys(c.Sources) {
		if _, err := model.ParseSourceName(name); err != nil {
			return err
		}
		s := c.Sources[name]
		if isNaN(s.CapacityGW) || isNaN(s.LoadFactor) {
			return fmt.Errorf("sources.%s: %w", name, model.ErrNotANumber)
		}
		if s.CapacityGW != nil && *s.CapacityGW < 0 {
			return fmt.Errorf("sources.%s.capacity_gw=%g: %w", name, *s.CapacityGW, model.ErrNegativeCapacity)
		}
	}
	for _, name := range sortedKeys(c.Storage) {
		if _, err := model.ParseStorageName(name); err != nil {
			return err
		}
		s := c.Storage[name]
		if isNaN(s.PowerGW) || isNaN(s.EnergyGWh) || isNaN(s.Efficiency) || isNaN(s.InitialSoCGWh) {
			return fmt.Errorf("storage.%s: %w", name, model.ErrNotANumber)
		}
		if s.PowerGW != nil && *s.PowerGW < 0 {
			return fmt.Errorf("storage.%s.power_gw=%g: %w", name, *s.PowerGW, model.ErrNegativeCapacity)
		}
		if s.EnergyGWh != nil && *s.EnergyGWh < 0 {
			return fmt.Errorf("storage.%s.energy_gwh=%g: %w", name, *s.EnergyGWh, model.ErrNegativeCapacity)
		}
		if s.Efficiency != nil && (*s.Efficiency <= 0 || *s.Efficiency > 1) {
			return fmt.Errorf("storage.%s.efficiency=%g: %w", name, *s.Efficiency, model.ErrInvalidEfficiency)
		}
		if s.InitialSoCGWh != nil && *s.InitialSoCGWh < 0 {
			return fmt.Errorf("storage.%s.initial_soc_gwh=%g: %w", name, *s.InitialSoCGWh, model.ErrInvalidStorage)
		}
	}
	for _, name := range sortedKeys(c.Demand) {
		if _, err := model.ParseComponentName(name); err != nil {
			return err
		}
		if math.IsNaN(c.Demand[name]) {
			return fmt.Errorf("demand.%s: %w", name, model.ErrNotANumber)
		}
		if c.Demand[name] < 0 {
			return fmt.Errorf("demand.%s=%g: %w", name, c.Demand[name], model.ErrNegativeCapacity)
		}
	}
	return nil
}

// Table returns the milestone table the config asks for.
func (c *Config) Table() (*roadmap.Table, error) {
	if c.MilestonesFile == "" {
		return roadmap.Default(), nil
	}
	return roadmap.LoadTable(c.MilestonesFile)
}

// Build interpolates the roadmap for the config's year and weather, applies the
// overrides and returns validated scenario parameters. A nil table means c.Table().
func (c *Config) Build(table *roadmap.Table) (model.ScenarioParameters, error) {
	cfg := *c
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return model.ScenarioParameters{}, err
	}
	if table == nil {
		t, err := cfg.Table()
		if err != nil {
			return model.ScenarioParameters{}, err
		}
		table = t
	}
	p, err := table.Interpolate(cfg.Year, model.WeatherScenario(cfg.Weather))
	if err != nil {
		return model.ScenarioParameters{}, err
	}

	for name, o := range cfg.Sources {
		s := p.Source(model.SourceName(name))
		if s == nil {
			continue
		}
		if o.CapacityGW != nil {
			s.CapacityGW = *o.CapacityGW
		}
		if o.LoadFactor != nil {
			s.LoadFactor = *o.LoadFactor
		}
	}
	for name, o := range cfg.Storage {
		u := p.StorageUnit(model.StorageName(name))
		if u == nil {
			continue
		}
		if o.PowerGW != nil {
			u.PowerCapacityGW = *o.PowerGW
		}
		if o.EnergyGWh != nil {
			u.EnergyCapacityGWh = *o.EnergyGWh
			u.SoCGWh = u.EnergyCapacityGWh
		}
		if o.Efficiency != nil {
			u.Efficiency = *o.Efficiency
		}
		if o.InitialSoCGWh != nil {
			u.SoCGWh = *o.InitialSoCGWh
		}
	}
	for name, peak := range cfg.Demand {
		if d := p.Component(model.ComponentName(name)); d != nil {
			d.PeakGW = peak
		}
	}

	if err := p.Validate(); err != nil {
		return model.ScenarioParameters{}, fmt.Errorf("scenario invalid: %w", err)
	}
	return p, nil
}

// Merge overlays override onto base. Set fields in override win; map entries are
// merged per key and per field.
// This is used to derive comparison variations from a base scenario.
func Merge(base, override Config) Config {
	out := base
	if override.Year != 0 {
		out.Year = override.Year
	}
	if override.Weather != "" {
		out.Weather = override.Weather
	}
	if override.MilestonesFile != "" {
		out.MilestonesFile = override.MilestonesFile
	}

	out.Sources = make(map[string]SourceConfig, len(base.Sources)+len(override.Sources))
	for k, v := range base.Sources {
		out.Sources[k] = v
	}
	for k, v := range override.Sources {
		cur := out.Sources[k]
		if v.CapacityGW != nil {
			cur.CapacityGW = v.CapacityGW
		}
		if v.LoadFactor != nil {
			cur.LoadFactor = v.LoadFactor
		}
		out.Sources[k] = cur
	}

	out.Storage = make(map[string]StorageConfig, len(base.Storage)+len(override.Storage))
	for k, v := range base.Storage {
		out.Storage[k] = v
	}
	for k, v := range override.Storage {
		cur := out.Storage[k]
		if v.PowerGW != nil {
			cur.PowerGW = v.PowerGW
		}
		if v.EnergyGWh != nil {
			cur.EnergyGWh = v.EnergyGWh
		}
		if v.Efficiency != nil {
			cur.Efficiency = v.Efficiency
		}
		if v.InitialSoCGWh != nil {
			cur.InitialSoCGWh = v.InitialSoCGWh
		}
		out.Storage[k] = cur
	}

	out.Demand = make(map[string]float64, len(base.Demand)+len(override.Demand))
	for k, v := range base.Demand {
		out.Demand[k] = v
	}
	for k, v := range override.Demand {
		out.Demand[k] = v
	}
	return out
}

// Float is a helper for building overrides in code.
func Float(v float64) *float64 { return &v }

func isNaN(v *float64) bool { return v != nil && math.IsNaN(*v) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
