package report

import (
	"math"
	"testing"
)

func TestPivotMeanTimeAveragesAcrossFunctions(t *testing.T) {
	ds, _ := loadSample(t)
	pv := ds.PivotMeanTime()

	if len(pv.Methods) != 3 {
		t.Fatalf("pivot methods: %v", pv.Methods)
	}
	if len(pv.Intervals) != 2 || pv.Intervals[0] != 100 || pv.Intervals[1] != 1000 {
		t.Fatalf("pivot intervals: %v", pv.Intervals)
	}
	if len(pv.Cells) != 3 || len(pv.Cells[0]) != 2 {
		t.Fatalf("pivot shape: %dx%d", len(pv.Cells), len(pv.Cells[0]))
	}

	// Left Rectangle at n=100: mean of 0.0021 (x^2) and 0.0034 (sin).
	got := pv.Cells[0][0]
	want := (0.0021 + 0.0034) / 2
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("cell[0][0] = %v, want %v", got, want)
	}
	// Simpson at n=1000: mean of 0.0260 and 0.0392.
	got = pv.Cells[2][1]
	want = (0.0260 + 0.0392) / 2
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("cell[2][1] = %v, want %v", got, want)
	}
}

func TestPivotMarksMissingCombinations(t *testing.T) {
	ds := Dataset{Rows: []Row{
		{Function: "x^2", Method: "Left Rectangle", Intervals: 100, Value: 1, AbsError: 1, ElapsedMs: 0.5},
		{Function: "x^2", Method: "Midpoint Rule", Intervals: 1000, Value: 1, AbsError: 1, ElapsedMs: 0.7},
	}}
	pv := ds.PivotMeanTime()
	if !math.IsNaN(pv.Cells[0][1]) || !math.IsNaN(pv.Cells[1][0]) {
		t.Fatalf("missing combinations should be NaN: %v", pv.Cells)
	}
	if pv.Cells[0][0] != 0.5 || pv.Cells[1][1] != 0.7 {
		t.Fatalf("present combinations wrong: %v", pv.Cells)
	}
}

func TestMedianTimeByMethod(t *testing.T) {
	ds := Dataset{Rows: []Row{
		{Function: "x^2", Method: "Left Rectangle", Intervals: 100, Value: 1, AbsError: 1, ElapsedMs: 1},
		{Function: "x^2", Method: "Left Rectangle", Intervals: 1000, Value: 1, AbsError: 1, ElapsedMs: 3},
		{Function: "x^2", Method: "Left Rectangle", Intervals: 10000, Value: 1, AbsError: 1, ElapsedMs: 100},
	}}
	med := ds.MedianTimeByMethod()
	if got := med["Left Rectangle"]; got != 3 {
		t.Fatalf("median: got %v want 3", got)
	}
}
