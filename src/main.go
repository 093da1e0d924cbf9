// Integration benchmark reporter entrypoint.
//
// Two modes:
//  1. Render-only mode (default): load an existing integration_comparison.csv,
//     clean it, and render the four report charts under the output directory.
//  2. Benchmark mode (enable with --render-only=false): run every integration
//     method over the test integrands at each interval count, export the CSV,
//     then render the charts from it.
//
// Design notes:
//   - Benchmark cases are seeded per case, so --seed makes Monte Carlo runs
//     reproducible even with --parallel > 1.
//   - Render-only mode never touches the integrators, so historical CSVs can
//     be re-plotted without re-running a long benchmark.
//   - Dependency direction: main -> report for ingest and charts for
//     rendering; bench is used for collection only.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/HaydenA0/Integration-methods/src/bench"
	"github.com/HaydenA0/Integration-methods/src/charts"
	"github.com/HaydenA0/Integration-methods/src/report"
)

func main() {
	csvPath := flag.String("csv", bench.DefaultResultsFile, "Path to the benchmark CSV (read in render-only mode, written otherwise)")
	outDir := flag.String("out-dir", "plots", "Directory for rendered chart PNGs")
	renderOnly := flag.Bool("render-only", true, "Only render charts from an existing CSV; set to false to run the benchmark first")
	parallel := flag.Int("parallel", 1, "Maximum concurrent benchmark cases")
	seed := flag.Int64("seed", 0, "Seed for Monte Carlo sampling (0 = time-based)")
	intervals := flag.String("intervals", "", "Comma-separated interval counts overriding the defaults (e.g. 100,1000,10000)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	bench.SetLogLevel(*logLevel)

	counts, err := parseIntervals(*intervals)
	if err != nil {
		bench.Errorf("invalid -intervals: %v", err)
		os.Exit(2)
	}

	if !*renderOnly {
		results := bench.Run(bench.DefaultProblems(), bench.DefaultMethods(), bench.Options{
			Parallel:       *parallel,
			Seed:           *seed,
			IntervalCounts: counts,
		})
		if err := bench.ExportCSV(*csvPath, results); err != nil {
			bench.Errorf("export benchmark results: %v", err)
			os.Exit(1)
		}
	}

	ds, dropped, err := report.Load(*csvPath)
	if err != nil {
		bench.Errorf("load %s: %v", *csvPath, err)
		if *renderOnly {
			bench.Infof("run with --render-only=false to generate the benchmark CSV first")
		}
		os.Exit(1)
	}
	if dropped > 0 {
		bench.Warnf("dropped %d row(s) with non-numeric columns while cleaning %s", dropped, *csvPath)
	}
	bench.Infof("loaded %d rows: %d functions, %d methods, max N=%d",
		len(ds.Rows), len(ds.Functions()), len(ds.Methods()), ds.MaxIntervals())
	if bench.GetLogLevel() <= bench.LevelDebug {
		for m, med := range ds.MedianTimeByMethod() {
			bench.Debugf("median time for %s: %.4fms", m, med)
		}
	}

	if err := charts.RenderAll(ds, *outDir); err != nil {
		bench.Errorf("render charts: %v", err)
		os.Exit(1)
	}
	bench.Infof("all charts saved to %s/", *outDir)
}

// parseIntervals parses the -intervals override. An empty value selects the
// built-in defaults.
func parseIntervals(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("interval count must be positive, got %d", n)
		}
		out = append(out, n)
	}
	return out, nil
}
