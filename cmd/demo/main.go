package main

import (
	"flag"
	"fmt"

	"grid-balance/internal/config"
	"grid-balance/internal/model"
	"grid-balance/internal/simulation"
)

// Demo:
// - Interpolate the roadmap for one year and weather scenario
// - Run the hourly simulation
// - Print the first hours to show how dispatch, storage and curtailment fit together
func main() {
	cfgPath := flag.String("config", "", "Path to YAML scenario (optional)")
	year := flag.Float64("year", 2030, "Year (fractional allowed)")
	weather := flag.String("weather", string(model.Dunkelflaute), "Weather scenario")
	n := flag.Int("n", 24, "Number of hours to print")
	outCSV := flag.String("out", "", "Optional path to write hourly CSV (e.g. results/hours.csv)")
	flag.Parse()

	cfg := config.Config{Year: *year, Weather: *weather}
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = *loaded
	}

	params, err := cfg.Build(nil)
	if err != nil {
		panic(err)
	}

	result, err := simulation.New().Run(params)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Simulated %d hours for %.2f (%s)\n", len(result.Hours), params.Year, params.Weather)
	for _, u := range params.Storage {
		fmt.Printf("Storage %-13s %.1f GW / %.1f GWh, eff=%.2f, start SoC=%.1f GWh\n",
			u.Name, u.PowerCapacityGW, u.EnergyCapacityGWh, u.Efficiency, u.SoCGWh)
	}
	fmt.Println()

	for i := 0; i < min(*n, len(result.Hours)); i++ {
		h := result.Hours[i]
		fmt.Printf(
			"d%d %02d:00 demand=%6.2f  gen=%6.2f  mode=%-11s  net=%+6.2f  curtail=%6.2f  unmet=%6.2f  cum_unmet=%7.2f\n",
			h.Day,
			h.HourOfDay,
			h.DemandGW,
			h.GeneratedGW(),
			string(h.StorageMode),
			h.StorageNetFlowGW,
			h.CurtailedGWh,
			h.UnmetGWh,
			h.CumUnmetGWh,
		)
	}

	if *outCSV != "" {
		if err := simulation.WriteHoursCSV(*outCSV, result); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Unmet=%.1f GWh  Curtailed=%.1f GWh\n", result.TotalUnmetGWh, result.TotalCurtailedGWh)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
