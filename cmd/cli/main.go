package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"grid-balance/internal/analysis"
	"grid-balance/internal/config"
	"grid-balance/internal/data"
	"grid-balance/internal/model"
	"grid-balance/internal/roadmap"
	"grid-balance/internal/simulation"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	case "roadmap":
		cmdRoadmap(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/scenarios/dunkelflaute_2030.yaml --out results/hours.csv [--json results/run.json]")
	fmt.Println("  cli simulate --year 2032.5 --weather \"Summer Windy\" --out results/hours.csv")
	fmt.Println("  cli sweep --weather Dunkelflaute --from 2025 --to 2035 --step 1 [--config f.yaml]")
	fmt.Println("  cli roadmap --year 2030 [--weather \"Summer Windy\"] [--milestones f.yaml]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate outputs CSV with one row per hour (96 rows)")
	fmt.Println("  - sweep ranks roadmap years by unmet energy, then curtailment")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario (optional)")
	year := fs.Float64("year", 0, "Override scenario year (fractional allowed)")
	weather := fs.String("weather", "", "Override weather: Dunkelflaute | \"Summer Windy\"")
	outPath := fs.String("out", "results/hours.csv", "Output CSV path")
	jsonPath := fs.String("json", "", "Optional: also write the full result as JSON")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	cfg = config.Merge(cfg, config.Config{Year: *year, Weather: *weather})

	params, err := cfg.Build(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scenario invalid: %v\n", err)
		os.Exit(2)
	}

	res, err := simulation.New().Run(params)
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := simulation.WriteHoursCSV(*outPath, res); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(res.Hours), *outPath)

	if *jsonPath != "" {
		if err := os.MkdirAll(filepath.Dir(*jsonPath), 0o755); err != nil {
			panic(err)
		}
		if err := data.WriteResultJSON(*jsonPath, res); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote JSON: %s\n", *jsonPath)
	}

	printSummary(analysis.Summarize(res), res)
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario applied to every year (optional)")
	weather := fs.String("weather", string(model.Dunkelflaute), "Weather scenario")
	from := fs.Float64("from", model.MinYear, "First year")
	to := fs.Float64("to", model.MaxYear, "Last year")
	step := fs.Float64("step", 1, "Year step")
	_ = fs.Parse(args)

	if !(*step > 0) || !(*to >= *from) {
		fmt.Println("--step must be > 0 and --to >= --from")
		os.Exit(2)
	}

	base := loadConfig(*cfgPath)
	var years []float64
	for y := *from; y <= *to+1e-9; y += *step {
		years = append(years, y)
	}

	runs := make([]*simulation.Result, len(years))
	var g errgroup.Group
	g.SetLimit(4)
	for i, y := range years {
		i, y := i, y
		g.Go(func() error {
			cfg := config.Merge(base, config.Config{Year: y, Weather: *weather})
			params, err := cfg.Build(nil)
			if err != nil {
				return fmt.Errorf("year %g: %w", y, err)
			}
			res, err := simulation.New().Run(params)
			if err != nil {
				return fmt.Errorf("year %g: %w", y, err)
			}
			runs[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ranked := analysis.RankRuns(runs)
	fmt.Printf("weather=%s\n", *weather)
	fmt.Printf("%-4s %-8s %-12s %-12s %-10s %-12s %-8s\n", "rank", "year", "unmet_gwh", "curtail_gwh", "unmet_hrs", "peak_unmet", "ren%")
	for _, r := range ranked {
		fmt.Printf(
			"%-4d %-8.2f %-12.1f %-12.1f %-10d %-12.2f %-8.1f\n",
			r.Rank,
			r.Year,
			r.TotalUnmetGWh,
			r.TotalCurtailedGWh,
			r.HoursWithUnmet,
			r.PeakUnmetGW,
			100*r.RenewableShare,
		)
	}
}

func cmdRoadmap(args []string) {
	fs := flag.NewFlagSet("roadmap", flag.ExitOnError)
	year := fs.Float64("year", 2030, "Year (fractional allowed, clamped to 2025..2035)")
	weather := fs.String("weather", string(model.Dunkelflaute), "Weather scenario")
	milestones := fs.String("milestones", "", "Optional milestone table YAML")
	_ = fs.Parse(args)

	table := roadmap.Default()
	if *milestones != "" {
		t, err := roadmap.LoadTable(*milestones)
		if err != nil {
			panic(err)
		}
		table = t
	}
	params, err := table.Interpolate(*year, model.WeatherScenario(*weather))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	out, err := yaml.Marshal(params)
	if err != nil {
		panic(err)
	}
	fmt.Print(string(out))
}

func loadConfig(path string) config.Config {
	if path == "" {
		return config.Config{}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config %s: %v\n", path, err)
		os.Exit(2)
	}
	return *cfg
}

func printSummary(a analysis.Adequacy, res *simulation.Result) {
	fmt.Printf("Scenario: year=%.2f weather=%s\n", a.Year, a.Weather)
	fmt.Printf("Demand: total=%.1f GWh peak=%.2f GW mean=%.2f GW\n", a.TotalDemandGWh, a.PeakDemandGW, a.MeanDemandGW)
	fmt.Printf("Unmet: total=%.1f GWh peak=%.2f GW hours=%d\n", a.TotalUnmetGWh, a.PeakUnmetGW, a.HoursWithUnmet)
	fmt.Printf("Curtailed=%.1f GWh Headroom=%.1f GWh Renewable share=%.1f%%\n", a.TotalCurtailedGWh, a.TotalHeadroomGWh, 100*a.RenewableShare)
	fmt.Printf("Storage: charged=%.1f GWh discharged=%.1f GWh cycles=%.2f\n", res.TotalChargedGWh, res.TotalDischargedGWh, a.StorageCycles)

	names := make([]string, 0, len(res.FinalSoC))
	for n := range res.FinalSoC {
		names = append(names, string(n))
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  final SoC %-13s %.1f GWh\n", n, res.FinalSoC[model.StorageName(n)])
	}
}
