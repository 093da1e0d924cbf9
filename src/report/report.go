// Package report loads a benchmark CSV and shapes it for charting: rows
// with unparseable numeric columns are dropped, method labels lose their
// ordering prefix, and zero errors are floored so log-scale charts stay
// finite.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/HaydenA0/Integration-methods/src/bench"
)

// ZeroErrorFloor replaces an absolute error of exactly zero (Monte Carlo can
// land on the true value by chance) so log-scale axes keep a finite point.
const ZeroErrorFloor = 1e-16

var expectedHeader = []string{"FunctionName", "Method", "NumIntervals", "Result", "AbsoluteError", "ExecutionTime_ms"}

// Row is one cleaned benchmark observation. Method holds the label without
// its "<n>. " ordering prefix.
type Row struct {
	Function  string
	Method    string
	Intervals int64
	Value     float64
	AbsError  float64
	ElapsedMs float64
}

// Dataset is a cleaned benchmark result set.
type Dataset struct {
	Rows []Row
}

// Pivot is a method-by-interval-count matrix. Cells[i][j] belongs to
// Methods[i] and Intervals[j]; combinations absent from the data are NaN.
type Pivot struct {
	Methods   []string
	Intervals []int64
	Cells     [][]float64
}

// CleanMethodLabel strips the "<n>. " ordering prefix the exporter adds,
// e.g. "5. Simpson's 1/3 Rule" -> "Simpson's 1/3 Rule". Labels without a
// numeric prefix pass through unchanged.
func CleanMethodLabel(label string) string {
	before, after, found := strings.Cut(label, ". ")
	if !found || before == "" {
		return label
	}
	if _, err := strconv.Atoi(before); err != nil {
		return label
	}
	return after
}

// Load reads and cleans the CSV at path. The second return value counts
// rows dropped during cleaning.
func Load(path string) (Dataset, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	ds, dropped, err := Read(f)
	if err != nil {
		return Dataset{}, dropped, fmt.Errorf("read %s: %w", path, err)
	}
	return ds, dropped, nil
}

// Read parses and cleans benchmark CSV data.
func Read(r io.Reader) (Dataset, int, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return Dataset{}, 0, errors.New("empty csv")
	}
	if err != nil {
		return Dataset{}, 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeader) {
		return Dataset{}, 0, fmt.Errorf("header has %d columns, want %d", len(header), len(expectedHeader))
	}
	for i, want := range expectedHeader {
		if strings.TrimSpace(header[i]) != want {
			return Dataset{}, 0, fmt.Errorf("unexpected column %d: %q (want %q)", i, header[i], want)
		}
	}

	var ds Dataset
	dropped := 0
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return Dataset{}, dropped, fmt.Errorf("line %d: %w", line, err)
		}
		row, ok := cleanRecord(rec)
		if !ok {
			bench.Debugf("dropping line %d: non-numeric columns (%s)", line, strings.Join(rec, ","))
			dropped++
			continue
		}
		ds.Rows = append(ds.Rows, row)
	}
	if len(ds.Rows) == 0 {
		return Dataset{}, dropped, errors.New("no usable rows after cleaning")
	}
	return ds, dropped, nil
}

// cleanRecord coerces one CSV record. Records whose numeric columns fail to
// parse (the exporter writes INVALID_N for rejected cases) report ok=false.
func cleanRecord(rec []string) (Row, bool) {
	intervals, err := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
	if err != nil {
		return Row{}, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
	if err != nil || math.IsNaN(value) {
		return Row{}, false
	}
	absErr, err := strconv.ParseFloat(strings.TrimSpace(rec[4]), 64)
	if err != nil || math.IsNaN(absErr) {
		return Row{}, false
	}
	elapsed, err := strconv.ParseFloat(strings.TrimSpace(rec[5]), 64)
	if err != nil || math.IsNaN(elapsed) {
		return Row{}, false
	}
	if absErr == 0 {
		absErr = ZeroErrorFloor
	}
	return Row{
		Function:  strings.TrimSpace(rec[0]),
		Method:    CleanMethodLabel(strings.TrimSpace(rec[1])),
		Intervals: intervals,
		Value:     value,
		AbsError:  absErr,
		ElapsedMs: elapsed,
	}, true
}

// Functions returns unique function names in first-seen order.
func (d Dataset) Functions() []string {
	return uniqueStrings(d.Rows, func(r Row) string { return r.Function })
}

// Methods returns unique cleaned method names in first-seen order. The
// exporter emits methods in their canonical 1..7 numbering, so first-seen
// order preserves it.
func (d Dataset) Methods() []string {
	return uniqueStrings(d.Rows, func(r Row) string { return r.Method })
}

func uniqueStrings(rows []Row, key func(Row) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range rows {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// ForFunction returns the subset of rows for one integrand.
func (d Dataset) ForFunction(name string) Dataset {
	var sub Dataset
	for _, r := range d.Rows {
		if r.Function == name {
			sub.Rows = append(sub.Rows, r)
		}
	}
	return sub
}

// MaxIntervals returns the largest interval count present.
func (d Dataset) MaxIntervals() int64 {
	var maxN int64
	for _, r := range d.Rows {
		if r.Intervals > maxN {
			maxN = r.Intervals
		}
	}
	return maxN
}

// FinalAccuracy returns, for every function/method pair, the row at that
// pair's own maximum interval count. Per-pair selection matters because the
// Simpson rules run at slightly adjusted counts (e.g. 1000002 instead of
// 1000000), so filtering on the global maximum would keep a single method.
func (d Dataset) FinalAccuracy() Dataset {
	type key struct {
		fn, m string
	}
	best := map[key]Row{}
	for _, r := range d.Rows {
		k := key{r.Function, r.Method}
		if prev, ok := best[k]; !ok || r.Intervals > prev.Intervals {
			best[k] = r
		}
	}
	var sub Dataset
	for _, r := range d.Rows {
		k := key{r.Function, r.Method}
		if best[k].Intervals == r.Intervals {
			sub.Rows = append(sub.Rows, r)
		}
	}
	return sub
}

// SeriesFor returns the (intervals, errors) pairs for one function/method
// combination, sorted by interval count.
func (d Dataset) SeriesFor(function, method string) ([]int64, []float64) {
	type pt struct {
		n int64
		e float64
	}
	var pts []pt
	for _, r := range d.Rows {
		if r.Function == function && r.Method == method {
			pts = append(pts, pt{r.Intervals, r.AbsError})
		}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].n < pts[j].n })
	ns := make([]int64, len(pts))
	errs := make([]float64, len(pts))
	for i, p := range pts {
		ns[i] = p.n
		errs[i] = p.e
	}
	return ns, errs
}

// PivotMeanTime builds the method x interval-count matrix of execution time
// averaged across functions, feeding the heatmap.
func (d Dataset) PivotMeanTime() Pivot {
	methods := d.Methods()
	intervals := d.intervalCounts()

	methodIdx := map[string]int{}
	for i, m := range methods {
		methodIdx[m] = i
	}
	intervalIdx := map[int64]int{}
	for j, n := range intervals {
		intervalIdx[n] = j
	}

	buckets := make([][][]float64, len(methods))
	for i := range buckets {
		buckets[i] = make([][]float64, len(intervals))
	}
	for _, r := range d.Rows {
		i, j := methodIdx[r.Method], intervalIdx[r.Intervals]
		buckets[i][j] = append(buckets[i][j], r.ElapsedMs)
	}

	cells := make([][]float64, len(methods))
	for i := range cells {
		cells[i] = make([]float64, len(intervals))
		for j := range cells[i] {
			mean, err := stats.Mean(buckets[i][j])
			if err != nil {
				// empty bucket
				mean = math.NaN()
			}
			cells[i][j] = mean
		}
	}
	return Pivot{Methods: methods, Intervals: intervals, Cells: cells}
}

// MedianTimeByMethod summarizes per-method execution time across all rows.
func (d Dataset) MedianTimeByMethod() map[string]float64 {
	byMethod := map[string][]float64{}
	for _, r := range d.Rows {
		byMethod[r.Method] = append(byMethod[r.Method], r.ElapsedMs)
	}
	out := make(map[string]float64, len(byMethod))
	for m, times := range byMethod {
		med, err := stats.Median(times)
		if err != nil {
			continue
		}
		out[m] = med
	}
	return out
}

func (d Dataset) intervalCounts() []int64 {
	seen := map[int64]bool{}
	var out []int64
	for _, r := range d.Rows {
		if !seen[r.Intervals] {
			seen[r.Intervals] = true
			out = append(out, r.Intervals)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
