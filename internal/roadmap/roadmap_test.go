package roadmap

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"grid-balance/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolateMilestoneYearsAreExact(t *testing.T) {
	table := Default()
	for _, m := range table.Milestones {
		p, err := table.Interpolate(m.Year, model.SummerWindy)
		require.NoError(t, err)
		for _, s := range p.Sources {
			assert.Equal(t, m.CapacityGW[s.Name], s.CapacityGW, "%g %s", m.Year, s.Name)
		}
		for _, c := range p.Demand {
			assert.Equal(t, m.DemandPeakGW[c.Name], c.PeakGW, "%g %s", m.Year, c.Name)
		}
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	p, err := Interpolate(2027.5, model.Dunkelflaute)
	require.NoError(t, err)

	assert.InDelta(t, 30.35, p.Source(model.Solar).CapacityGW, 1e-9)
	assert.InDelta(t, 6.19, p.Source(model.Nuclear).CapacityGW, 1e-9)
	assert.InDelta(t, 5.0, p.Component(model.HeatPump).PeakGW, 1e-9)

	ph := p.StorageUnit(model.PumpedHydro)
	require.NotNil(t, ph)
	assert.InDelta(t, 17.9*0.3, ph.PowerCapacityGW, 1e-9)
	assert.InDelta(t, 81.25*0.7, ph.EnergyCapacityGWh, 1e-9)
	assert.Equal(t, ph.EnergyCapacityGWh, ph.SoCGWh, "storage starts full")
	assert.Equal(t, 0.75, ph.Efficiency)
}

func TestInterpolateClampsYear(t *testing.T) {
	low, err := Interpolate(2010, model.SummerWindy)
	require.NoError(t, err)
	first, err := Interpolate(2025, model.SummerWindy)
	require.NoError(t, err)
	assert.Equal(t, first, low)

	high, err := Interpolate(2060, model.SummerWindy)
	require.NoError(t, err)
	assert.Equal(t, 2035.0, high.Year)
	assert.Equal(t, 75.0, high.Source(model.WindOffshore).CapacityGW)
}

func TestInterpolateWeatherLoadFactors(t *testing.T) {
	p, err := Interpolate(2030, model.Dunkelflaute)
	require.NoError(t, err)
	assert.Equal(t, 0.05, p.Source(model.WindOnshore).LoadFactor)
	assert.Equal(t, 0.90, p.Source(model.Nuclear).LoadFactor)
	assert.Equal(t, 0.10, p.Source(model.Interconnectors).LoadFactor)

	s, err := Interpolate(2030, model.SummerWindy)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Source(model.Interconnectors).LoadFactor)
	assert.Equal(t, 0.85, s.Source(model.WindOffshore).LoadFactor)
}

func TestInterpolateMeritOrderAndValidity(t *testing.T) {
	p, err := Interpolate(2031.3, model.SummerWindy)
	require.NoError(t, err)
	require.Len(t, p.Sources, len(model.MeritOrder))
	for i, s := range p.Sources {
		assert.Equal(t, model.MeritOrder[i], s.Name)
		assert.Equal(t, i+1, s.MeritRank)
	}
	assert.NoError(t, p.Validate())
}

func TestInterpolateUnknownWeather(t *testing.T) {
	_, err := Interpolate(2030, "Blizzard")
	assert.ErrorIs(t, err, model.ErrUnknownWeather)
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "milestones.yaml")
	doc := `
milestones:
  - year: 2035
    capacity_gw: {Nuclear: 20}
    storage_power_gw: 10
    storage_energy_gwh: 40
    demand_peak_gw: {baseload: 60}
  - year: 2025
    capacity_gw: {Nuclear: 10}
    storage_power_gw: 0
    storage_energy_gwh: 0
    demand_peak_gw: {baseload: 40}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2025.0, table.Milestones[0].Year, "milestones are sorted")
	assert.Len(t, table.StorageSplit, 2)

	p, err := table.Interpolate(2030, model.SummerWindy)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, p.Source(model.Nuclear).CapacityGW, 1e-9)
	assert.InDelta(t, 50.0, p.Component(model.Baseload).PeakGW, 1e-9)
	assert.Equal(t, 0.0, p.Source(model.Solar).CapacityGW)
}

func TestLoadTableRejectsNegative(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	doc := `
milestones:
  - year: 2025
    capacity_gw: {Solar: -1}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := LoadTable(path)
	assert.ErrorIs(t, err, model.ErrNegativeCapacity)
}

func TestValidateDuplicateYear(t *testing.T) {
	table := Default()
	table.Milestones = append(table.Milestones, table.Milestones[0])
	assert.Error(t, table.Validate())
}

func TestValidateDoesNotReorder(t *testing.T) {
	table := Default()
	table.Milestones[0], table.Milestones[2] = table.Milestones[2], table.Milestones[0]

	assert.Error(t, table.Validate())
	assert.Equal(t, 2035.0, table.Milestones[0].Year, "Validate must not sort in place")
	assert.Equal(t, 2025.0, table.Milestones[2].Year)
}

func TestInterpolateRejectsNaNYear(t *testing.T) {
	_, err := Interpolate(math.NaN(), model.Dunkelflaute)
	assert.ErrorIs(t, err, model.ErrNotANumber)
}

func TestLoadTableRejectsNaN(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nan.yaml")
	doc := `
milestones:
  - year: 2025
    capacity_gw: {Solar: .nan}
  - year: 2035
    capacity_gw: {Solar: 10}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := LoadTable(path)
	assert.ErrorIs(t, err, model.ErrNotANumber)
}
