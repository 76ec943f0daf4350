package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"grid-balance/internal/model"
	"grid-balance/internal/roadmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndBuild(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scenario.yaml", `
year: 2030
weather: Summer Windy
sources:
  Gas_CCGT: {capacity_gw: 0}
  Nuclear: {load_factor: 1.5}
storage:
  Batteries: {power_gw: 20, energy_gwh: 80}
demand:
  heat_pump: 12
`)
	c, err := Load(path)
	require.NoError(t, err)

	p, err := c.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, model.SummerWindy, p.Weather)
	assert.Equal(t, 0.0, p.Source(model.GasCCGT).CapacityGW, "explicit zero is honoured")
	assert.Equal(t, 1.5, p.Source(model.Nuclear).LoadFactor, "clamping happens in the engine")
	assert.Equal(t, 45.0, p.Source(model.Solar).CapacityGW)

	b := p.StorageUnit(model.Batteries)
	require.NotNil(t, b)
	assert.Equal(t, 20.0, b.PowerCapacityGW)
	assert.Equal(t, 80.0, b.EnergyCapacityGWh)
	assert.Equal(t, 80.0, b.SoCGWh)
	assert.Equal(t, 12.0, p.Component(model.HeatPump).PeakGW)
}

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yaml", "sources: {}\n")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultYear, c.Year)
	assert.Equal(t, string(model.Dunkelflaute), c.Weather)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]struct {
		cfg  Config
		want error
	}{
		"negative capacity": {
			cfg:  Config{Weather: "Dunkelflaute", Sources: map[string]SourceConfig{"Solar": {CapacityGW: Float(-1)}}},
			want: model.ErrNegativeCapacity,
		},
		"bad efficiency": {
			cfg:  Config{Weather: "Dunkelflaute", Storage: map[string]StorageConfig{"Batteries": {Efficiency: Float(1.1)}}},
			want: model.ErrInvalidEfficiency,
		},
		"negative demand": {
			cfg:  Config{Weather: "Dunkelflaute", Demand: map[string]float64{"baseload": -3}},
			want: model.ErrNegativeCapacity,
		},
		"unknown weather": {
			cfg:  Config{Weather: "Drizzle"},
			want: model.ErrUnknownWeather,
		},
		"NaN year": {
			cfg:  Config{Year: math.NaN(), Weather: "Dunkelflaute"},
			want: model.ErrNotANumber,
		},
		"NaN capacity": {
			cfg:  Config{Weather: "Dunkelflaute", Sources: map[string]SourceConfig{"Solar": {CapacityGW: Float(math.NaN())}}},
			want: model.ErrNotANumber,
		},
		"NaN load factor": {
			cfg:  Config{Weather: "Dunkelflaute", Sources: map[string]SourceConfig{"Solar": {LoadFactor: Float(math.NaN())}}},
			want: model.ErrNotANumber,
		},
		"NaN storage energy": {
			cfg:  Config{Weather: "Dunkelflaute", Storage: map[string]StorageConfig{"Batteries": {EnergyGWh: Float(math.NaN())}}},
			want: model.ErrNotANumber,
		},
		"NaN demand": {
			cfg:  Config{Weather: "Dunkelflaute", Demand: map[string]float64{"baseload": math.NaN()}},
			want: model.ErrNotANumber,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, tc.cfg.Validate(), tc.want)
		})
	}

	c := Config{Weather: "Dunkelflaute", Sources: map[string]SourceConfig{"Coal": {}}}
	assert.Error(t, c.Validate())
}

func TestBuildInitialSoC(t *testing.T) {
	c := Config{
		Year:    2025,
		Weather: "Dunkelflaute",
		Storage: map[string]StorageConfig{"Pumped_Hydro": {InitialSoCGWh: Float(0)}},
	}
	p, err := c.Build(roadmap.Default())
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.StorageUnit(model.PumpedHydro).SoCGWh)
}

func TestBuildRejectsSoCAboveCapacity(t *testing.T) {
	c := Config{
		Weather: "Dunkelflaute",
		Storage: map[string]StorageConfig{"Batteries": {EnergyGWh: Float(5), InitialSoCGWh: Float(6)}},
	}
	_, err := c.Build(nil)
	assert.ErrorIs(t, err, model.ErrInvalidStorage)
}

func TestMilestonesFileRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fleet.yaml", `
milestones:
  - year: 2025
    capacity_gw: {Nuclear: 1}
  - year: 2035
    capacity_gw: {Nuclear: 3}
`)
	path := writeFile(t, dir, "scenario.yaml", "milestones_file: fleet.yaml\nyear: 2030\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fleet.yaml"), c.MilestonesFile)

	p, err := c.Build(nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p.Source(model.Nuclear).CapacityGW, 1e-9)
}

func TestMerge(t *testing.T) {
	base := Config{
		Year:    2030,
		Weather: "Dunkelflaute",
		Sources: map[string]SourceConfig{"Nuclear": {CapacityGW: Float(6), LoadFactor: Float(0.9)}},
		Demand:  map[string]float64{"baseload": 40},
	}
	override := Config{
		Weather: "Summer Windy",
		Sources: map[string]SourceConfig{"Nuclear": {CapacityGW: Float(12)}},
		Demand:  map[string]float64{"heat_pump": 0},
	}
	out := Merge(base, override)

	assert.Equal(t, 2030.0, out.Year)
	assert.Equal(t, "Summer Windy", out.Weather)
	assert.Equal(t, 12.0, *out.Sources["Nuclear"].CapacityGW)
	assert.Equal(t, 0.9, *out.Sources["Nuclear"].LoadFactor)
	assert.Equal(t, 40.0, out.Demand["baseload"])
	assert.Contains(t, out.Demand, "heat_pump")
	assert.Equal(t, 6.0, *base.Sources["Nuclear"].CapacityGW, "base is not modified")
}

func TestLoadRejectsYAMLNaN(t *testing.T) {
	path := writeFile(t, t.TempDir(), "nan.yaml", `
weather: Dunkelflaute
sources:
  Nuclear: {capacity_gw: .nan}
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, model.ErrNotANumber)
}

func TestMilestonesFileNotSettableFromJSON(t *testing.T) {
	var c Config
	require.NoError(t, json.Unmarshal([]byte(`{"year":2030,"milestones_file":"/etc/passwd"}`), &c))
	assert.Empty(t, c.MilestonesFile)
	assert.Equal(t, 2030.0, c.Year)

	out, err := json.Marshal(Config{MilestonesFile: "fleet.yaml"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "fleet.yaml")
}
