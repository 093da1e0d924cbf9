// Package charts renders the four benchmark report charts as PNG files:
// per-function convergence lines, per-function accuracy-vs-time scatters,
// the final accuracy ranking bars, and the execution time heatmap.
package charts

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/HaydenA0/Integration-methods/src/bench"
	"github.com/HaydenA0/Integration-methods/src/report"
)

const (
	chartWidth  = 1200
	chartHeight = 800

	// timeFloorMs keeps zero execution times plottable on a log axis; the
	// exporter rounds to 0.1 microsecond so this is below any real value.
	timeFloorMs = 1e-4
)

// seriesColors is the fixed per-method palette for the go-chart renders.
var seriesColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
	drawing.ColorFromHex("9467bd"),
	chart.ColorAlternateGray,
}

func seriesColor(i int) drawing.Color { return seriesColors[i%len(seriesColors)] }

// lineStyle renders a connected line with markers at each point.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
		DotWidth:    4,
		DotColor:    col,
	}
}

// pointStyle renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    5,
		DotColor:    col,
	}
}

// RenderAll writes every chart for the dataset under outDir, creating it if
// needed. Charts with no usable rows are skipped with a warning.
func RenderAll(ds report.Dataset, outDir string) error {
	defer bench.TimeTrack(time.Now(), "render charts")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	for _, fn := range ds.Functions() {
		path := filepath.Join(outDir, fmt.Sprintf("1_convergence_%s.png", safeName(fn)))
		if err := renderConvergence(ds, fn, path); err != nil {
			return err
		}
		path = filepath.Join(outDir, fmt.Sprintf("2_efficiency_%s.png", safeName(fn)))
		if err := renderEfficiency(ds, fn, path); err != nil {
			return err
		}
	}
	if err := renderFinalAccuracy(ds, filepath.Join(outDir, "3_final_accuracy_ranking.png")); err != nil {
		return err
	}
	if err := renderTimeHeatmap(ds.PivotMeanTime(), filepath.Join(outDir, "4_execution_time_heatmap.png")); err != nil {
		return err
	}
	return nil
}

// safeName makes a function name usable as a filename; the caret is dropped
// for readability ("x^2" -> "x2") and path separators cannot leak through.
func safeName(fn string) string {
	return strings.NewReplacer("^", "", "/", "_", string(os.PathSeparator), "_").Replace(fn)
}

// renderConvergence draws the log-log absolute error vs interval count lines
// for one integrand, one series per method.
func renderConvergence(ds report.Dataset, fn, path string) error {
	sub := ds.ForFunction(fn)
	series := []chart.Series{}
	for i, m := range sub.Methods() {
		ns, errs := sub.SeriesFor(fn, m)
		if len(ns) == 0 {
			continue
		}
		xs := make([]float64, len(ns))
		for j, n := range ns {
			xs[j] = float64(n)
		}
		// go-chart needs at least two points per series
		if len(xs) == 1 {
			xs = append(xs, xs[0]*1.1)
			errs = append(errs, errs[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    m,
			XValues: xs,
			YValues: errs,
			Style:   lineStyle(seriesColor(i)),
		})
	}
	if len(series) == 0 {
		bench.Warnf("no convergence data for %s; skipping chart", fn)
		return nil
	}
	ch := chart.Chart{
		Title:      fmt.Sprintf("Convergence of Integration Methods for f(x) = %s", fn),
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "Number of Intervals (log scale)", Range: &chart.LogarithmicRange{}},
		YAxis:      chart.YAxis{Name: "Absolute Error (log scale)", Range: &chart.LogarithmicRange{}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return writePNG(&ch, path)
}

// renderEfficiency draws the accuracy vs execution time scatter for one
// integrand. Dot size grows with the interval count so the reader can tell
// cheap coarse runs from expensive fine ones.
func renderEfficiency(ds report.Dataset, fn, path string) error {
	sub := ds.ForFunction(fn)
	minN, maxN := intervalSpan(sub)
	series := []chart.Series{}
	for i, m := range sub.Methods() {
		var xs, ys []float64
		var ns []int64
		for _, r := range sub.Rows {
			if r.Method != m {
				continue
			}
			t := r.ElapsedMs
			if t <= 0 {
				t = timeFloorMs
			}
			xs = append(xs, t)
			ys = append(ys, r.AbsError)
			ns = append(ns, r.Intervals)
		}
		if len(xs) == 0 {
			continue
		}
		if len(xs) == 1 {
			xs = append(xs, xs[0]*1.1)
			ys = append(ys, ys[0])
			ns = append(ns, ns[0])
		}
		st := pointStyle(seriesColor(i))
		st.DotWidthProvider = dotSizeByIntervals(ns, minN, maxN)
		series = append(series, chart.ContinuousSeries{
			Name:    m,
			XValues: xs,
			YValues: ys,
			Style:   st,
		})
	}
	if len(series) == 0 {
		bench.Warnf("no efficiency data for %s; skipping chart", fn)
		return nil
	}
	ch := chart.Chart{
		Title:      fmt.Sprintf("Accuracy vs. Execution Time for f(x) = %s", fn),
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "Execution Time in milliseconds (log scale)", Range: &chart.LogarithmicRange{}},
		YAxis:      chart.YAxis{Name: "Absolute Error (log scale)", Range: &chart.LogarithmicRange{}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return writePNG(&ch, path)
}

// dotSizeByIntervals maps an interval count onto a dot radius between 3 and
// 10 pixels on a log scale across the counts present in the dataset.
func dotSizeByIntervals(ns []int64, minN, maxN int64) chart.SizeProvider {
	logMin := math.Log10(float64(minN))
	logMax := math.Log10(float64(maxN))
	return func(_, _ chart.Range, index int, _, _ float64) float64 {
		if index >= len(ns) || logMax <= logMin {
			return 5
		}
		frac := (math.Log10(float64(ns[index])) - logMin) / (logMax - logMin)
		return 3 + 7*frac
	}
}

func intervalSpan(ds report.Dataset) (int64, int64) {
	minN, maxN := int64(math.MaxInt64), int64(0)
	for _, r := range ds.Rows {
		if r.Intervals < minN {
			minN = r.Intervals
		}
		if r.Intervals > maxN {
			maxN = r.Intervals
		}
	}
	return minN, maxN
}

func writePNG(ch *chart.Chart, path string) error {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	bench.Infof("wrote %s", path)
	return nil
}
