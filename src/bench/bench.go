// Package bench runs the integration method comparison: every (problem,
// interval count, method) combination is timed and scored against the known
// exact integral, and the outcome is exported as a CSV consumed by the
// report and charts packages.
package bench

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HaydenA0/Integration-methods/src/integrate"
)

// DefaultResultsFile is where a benchmark run lands unless overridden.
const DefaultResultsFile = "integration_comparison.csv"

// DefaultIntervalCounts are the interval counts exercised per method.
var DefaultIntervalCounts = []int64{100, 1_000, 10_000, 100_000, 1_000_000}

// Problem is one test integrand with its analytically known integral.
type Problem struct {
	Name  string
	F     integrate.Func
	Lower float64
	Upper float64
	Exact float64
}

// Method is a numbered integration rule. Stride is the divisibility the rule
// imposes on the interval count (1 = any, 2 = even, 3 = multiple of three);
// the runner rounds counts up to the next valid value before dispatch.
type Method struct {
	Index  int
	Name   string
	Rule   integrate.Rule
	Stride int64
}

// Label is the method name as written to the CSV, e.g. "5. Simpson's 1/3 Rule".
// The report package strips the number prefix again when loading.
func (m Method) Label() string { return fmt.Sprintf("%d. %s", m.Index, m.Name) }

// Result is one benchmark case outcome. Value and AbsError are NaN when the
// rule rejected its input.
type Result struct {
	FunctionName string
	MethodName   string
	NumIntervals int64
	Value        float64
	AbsError     float64
	ElapsedMs    float64
}

// Options controls a benchmark run.
type Options struct {
	Parallel       int
	Seed           int64
	IntervalCounts []int64
}

// DefaultProblems returns the three test integrands.
func DefaultProblems() []Problem {
	return []Problem{
		{Name: "x^2", F: func(x float64) float64 { return x * x }, Lower: 0, Upper: 1, Exact: 1.0 / 3.0},
		{Name: "sin(x)", F: math.Sin, Lower: 0, Upper: math.Pi, Exact: 2.0},
		// Integral of exp(-x^2) over [0,1] is sqrt(pi)/2 * erf(1).
		{Name: "exp(-x^2)", F: func(x float64) float64 { return math.Exp(-x * x) }, Lower: 0, Upper: 1, Exact: 0.746824132812},
	}
}

// DefaultMethods returns the seven rules in their canonical numbering.
func DefaultMethods() []Method {
	return []Method{
		{Index: 1, Name: "Left Rectangle", Rule: integrate.LeftRectangle, Stride: 1},
		{Index: 2, Name: "Right Rectangle", Rule: integrate.RightRectangle, Stride: 1},
		{Index: 3, Name: "Midpoint Rule", Rule: integrate.Midpoint, Stride: 1},
		{Index: 4, Name: "Trapezoidal Rule", Rule: integrate.Trapezoidal, Stride: 1},
		{Index: 5, Name: "Simpson's 1/3 Rule", Rule: integrate.Simpson13, Stride: 2},
		{Index: 6, Name: "Simpson's 3/8 Rule", Rule: integrate.Simpson38, Stride: 3},
		{Index: 7, Name: "Monte Carlo", Rule: integrate.MonteCarlo, Stride: 1},
	}
}

// alignIntervals rounds n up to the method's stride so Simpson variants keep
// their divisibility requirement instead of producing an INVALID_N row.
func alignIntervals(m Method, n int64) int64 {
	if m.Stride <= 1 {
		return n
	}
	if rem := n % m.Stride; rem != 0 {
		n += m.Stride - rem
	}
	return n
}

type benchCase struct {
	problem Problem
	method  Method
	n       int64
	// position in the result slice; fixed up front so worker interleaving
	// cannot change output order
	slot int
	// index of the owning problem, for completion accounting
	pIdx int
}

// Run executes every combination and returns results in problem-major,
// interval-count, method order regardless of Parallel.
func Run(problems []Problem, methods []Method, opts Options) []Result {
	counts := opts.IntervalCounts
	if len(counts) == 0 {
		counts = DefaultIntervalCounts
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cases := make([]benchCase, 0, len(problems)*len(counts)*len(methods))
	for pIdx, p := range problems {
		for _, n := range counts {
			for _, m := range methods {
				cases = append(cases, benchCase{
					problem: p,
					method:  m,
					n:       alignIntervals(m, n),
					slot:    len(cases),
					pIdx:    pIdx,
				})
			}
		}
	}
	Infof("running %d benchmark cases (%d problems x %d counts x %d methods)",
		len(cases), len(problems), len(counts), len(methods))

	workerCount := opts.Parallel
	if workerCount < 1 {
		workerCount = 1
	}

	results := make([]Result, len(cases))
	remaining := make([]int32, len(problems))
	for _, c := range cases {
		remaining[c.pIdx]++
	}

	workCh := make(chan benchCase)
	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range workCh {
				// Per-case source keyed by slot keeps Monte Carlo output
				// independent of worker scheduling.
				rng := rand.New(rand.NewSource(seed + int64(c.slot)))
				start := time.Now()
				value := c.method.Rule(integrate.Params{
					F:     c.problem.F,
					Lower: c.problem.Lower,
					Upper: c.problem.Upper,
					N:     c.n,
					Rand:  rng,
				})
				elapsed := time.Since(start)
				results[c.slot] = Result{
					FunctionName: c.problem.Name,
					MethodName:   c.method.Label(),
					NumIntervals: c.n,
					Value:        value,
					AbsError:     math.Abs(value - c.problem.Exact),
					ElapsedMs:    float64(elapsed) / float64(time.Millisecond),
				}
				Debugf("case %s / %s n=%d took %s", c.problem.Name, c.method.Label(), c.n, elapsed)
				if atomic.AddInt32(&remaining[c.pIdx], -1) == 0 {
					Infof("completed benchmarks for function: %s", c.problem.Name)
				}
			}
		}()
	}
	for _, c := range cases {
		workCh <- c
	}
	close(workCh)
	wg.Wait()
	return results
}

// WriteCSV emits results in the fixed benchmark schema. Cases the rule
// rejected are written with INVALID_N in the value and error columns so the
// failure stays visible in the artifact; the report loader drops them.
func WriteCSV(w *csv.Writer, results []Result) error {
	header := []string{"FunctionName", "Method", "NumIntervals", "Result", "AbsoluteError", "ExecutionTime_ms"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		rec := []string{
			r.FunctionName,
			r.MethodName,
			strconv.FormatInt(r.NumIntervals, 10),
			fmt.Sprintf("%.12f", r.Value),
			fmt.Sprintf("%.12e", r.AbsError),
			fmt.Sprintf("%.4f", r.ElapsedMs),
		}
		if math.IsNaN(r.Value) {
			rec[3] = "INVALID_N"
			rec[4] = "INVALID_N"
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ExportCSV writes results to path, replacing any previous file.
func ExportCSV(path string, results []Result) error {
	defer TimeTrack(time.Now(), "export csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(csv.NewWriter(f), results); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	Infof("exported %d rows to %s", len(results), path)
	return nil
}
