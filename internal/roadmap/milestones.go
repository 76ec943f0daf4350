package roadmap

import (
	"fmt"
	"math"
	"os"
	"sort"

	"grid-balance/internal/model"

	"gopkg.in/yaml.v3"
)

// Milestone is the fleet and demand outlook for one roadmap year.
// Capacities are GW, storage energy is GWh, demand peaks are GW.
type Milestone struct {
	Year             float64                         `yaml:"year" json:"year"`
	CapacityGW       map[model.SourceName]float64    `yaml:"capacity_gw" json:"capacity_gw"`
	StoragePowerGW   float64                         `yaml:"storage_power_gw" json:"storage_power_gw"`
	StorageEnergyGWh float64                         `yaml:"storage_energy_gwh" json:"storage_energy_gwh"`
	DemandPeakGW     map[model.ComponentName]float64 `yaml:"demand_peak_gw" json:"demand_peak_gw"`
}

// Table is an ascending series of milestones plus the year-independent defaults.
type Table struct {
	Milestones []Milestone `yaml:"milestones" json:"milestones"`

	// LoadFactors are the defaults before weather overrides.
	LoadFactors map[model.SourceName]float64 `yaml:"load_factors" json:"load_factors"`

	// StorageSplit divides the roadmap storage totals between the two units.
	StorageSplit []StorageShare `yaml:"storage_split" json:"storage_split"`
}

// StorageShare gives one unit's share of total storage power and energy,
// and the technology constants the roadmap does not vary by year.
type StorageShare struct {
	Name        model.StorageName `yaml:"name" json:"name"`
	PowerShare  float64           `yaml:"power_share" json:"power_share"`
	EnergyShare float64           `yaml:"energy_share" json:"energy_share"`
	Efficiency  float64           `yaml:"efficiency" json:"efficiency"`
	ChargeRatio float64           `yaml:"charge_ratio" json:"charge_ratio"`
}

// Default returns the built-in 2025/2030/2035 roadmap (NESO FES 2024 / Clean Power 2030).
func Default() *Table {
	return &Table{
		Milestones: []Milestone{
			{
				Year: 2025,
				CapacityGW: map[model.SourceName]float64{
					model.Nuclear:         5.88,
					model.Solar:           15.7,
					model.HydroRunOfRiver: 1.47,
					model.WindOffshore:    15.5,
					model.WindOnshore:     15.2,
					model.Biomass:         4.8,
					model.Interconnectors: 10.8,
					model.GasCCGT:         30.5,
					model.GasOCGT:         2.4,
					model.GasOil:          0.1,
				},
				StoragePowerGW:   10.8,
				StorageEnergyGWh: 42.5,
				DemandPeakGW: map[model.ComponentName]float64{
					model.Baseload:   40.0,
					model.HeatPump:   2.0,
					model.EVCharging: 3.0,
					model.SolarBTM:   5.0,
				},
			},
			{
				Year: 2030,
				CapacityGW: map[model.SourceName]float64{
					model.Nuclear:         6.5, // Hinkley Point C
					model.Solar:           45.0,
					model.HydroRunOfRiver: 1.5,
					model.WindOffshore:    45.0,
					model.WindOnshore:     27.0,
					model.Biomass:         4.0,
					model.Interconnectors: 18.0,
					model.GasCCGT:         32.0,
					model.GasOCGT:         2.5,
					model.GasOil:          0.5,
				},
				StoragePowerGW:   25.0,
				StorageEnergyGWh: 120.0,
				DemandPeakGW: map[model.ComponentName]float64{
					model.Baseload:   42.0,
					model.HeatPump:   8.0,
					model.EVCharging: 10.0,
					model.SolarBTM:   10.0,
				},
			},
			{
				Year: 2035,
				CapacityGW: map[model.SourceName]float64{
					model.Nuclear:         11.0, // + Sizewell C
					model.Solar:           62.0,
					model.HydroRunOfRiver: 1.5,
					model.WindOffshore:    75.0,
					model.WindOnshore:     36.0,
					model.Biomass:         3.5,
					model.Interconnectors: 22.0,
					model.GasCCGT:         9.0, // CCGT retirements
					model.GasOCGT:         2.5,
					model.GasOil:          0.5,
				},
				StoragePowerGW:   45.0,
				StorageEnergyGWh: 250.0,
				DemandPeakGW: map[model.ComponentName]float64{
					model.Baseload:   44.0,
					model.HeatPump:   18.0,
					model.EVCharging: 20.0,
					model.SolarBTM:   15.0,
				},
			},
		},
		LoadFactors: map[model.SourceName]float64{
			model.Nuclear:         0.90,
			model.Solar:           1.00,
			model.HydroRunOfRiver: 0.80,
			model.WindOffshore:    1.00,
			model.WindOnshore:     1.00,
			model.Biomass:         0.95,
			model.Interconnectors: 1.00,
			model.GasCCGT:         1.00,
			model.GasOCGT:         1.00,
			model.GasOil:          1.00,
		},
		StorageSplit: []StorageShare{
			{Name: model.PumpedHydro, PowerShare: 0.3, EnergyShare: 0.7, Efficiency: 0.75, ChargeRatio: 0.83},
			{Name: model.Batteries, PowerShare: 0.7, EnergyShare: 0.3, Efficiency: 0.85, ChargeRatio: 1.0},
		},
	}
}

// LoadTable reads a milestone table from YAML. Missing sections fall back to Default.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse milestones %s: %w", path, err)
	}
	sort.Slice(t.Milestones, func(i, j int) bool {
		return t.Milestones[i].Year < t.Milestones[j].Year
	})
	def := Default()
	if len(t.LoadFactors) == 0 {
		t.LoadFactors = def.LoadFactors
	}
	if len(t.StorageSplit) == 0 {
		t.StorageSplit = def.StorageSplit
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("milestones %s: %w", path, err)
	}
	return &t, nil
}

// Validate checks the table is usable for interpolation. Milestones must be in
// strictly ascending year order; LoadTable sorts them.
func (t *Table) Validate() error {
	if t == nil || len(t.Milestones) == 0 {
		return fmt.Errorf("milestone table is empty")
	}
	for i, m := range t.Milestones {
		if math.IsNaN(m.Year) {
			return fmt.Errorf("milestone %d year: %w", i, model.ErrNotANumber)
		}
		if i > 0 && m.Year == t.Milestones[i-1].Year {
			return fmt.Errorf("duplicate milestone year %g", m.Year)
		}
		if i > 0 && m.Year < t.Milestones[i-1].Year {
			return fmt.Errorf("milestone year %g after %g: years must ascend", m.Year, t.Milestones[i-1].Year)
		}
		if math.IsNaN(m.StoragePowerGW) || math.IsNaN(m.StorageEnergyGWh) {
			return fmt.Errorf("%g storage totals: %w", m.Year, model.ErrNotANumber)
		}
		for name, v := range m.CapacityGW {
			if math.IsNaN(v) {
				return fmt.Errorf("%g %s capacity_gw: %w", m.Year, name, model.ErrNotANumber)
			}
			if v < 0 {
				return fmt.Errorf("%g %s capacity_gw=%g: %w", m.Year, name, v, model.ErrNegativeCapacity)
			}
		}
		if m.StoragePowerGW < 0 || m.StorageEnergyGWh < 0 {
			return fmt.Errorf("%g storage totals: %w", m.Year, model.ErrNegativeCapacity)
		}
		for name, v := range m.DemandPeakGW {
			if math.IsNaN(v) {
				return fmt.Errorf("%g %s demand_peak_gw: %w", m.Year, name, model.ErrNotANumber)
			}
			if v < 0 {
				return fmt.Errorf("%g %s demand_peak_gw=%g: %w", m.Year, name, v, model.ErrNegativeCapacity)
			}
		}
	}
	for _, s := range t.StorageSplit {
		if s.Efficiency <= 0 || s.Efficiency > 1 || math.IsNaN(s.Efficiency) {
			return fmt.Errorf("%s efficiency=%g: %w", s.Name, s.Efficiency, model.ErrInvalidEfficiency)
		}
	}
	return nil
}
