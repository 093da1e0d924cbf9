package integrate

import (
	"math"
	"math/rand"
	"testing"
)

func quadratic(x float64) float64 { return x * x }

// Exact integral of x^2 over [0,1].
const quadraticExact = 1.0 / 3.0

func TestRulesConvergeOnQuadratic(t *testing.T) {
	cases := []struct {
		name string
		rule Rule
		n    int64
		tol  float64
	}{
		{"left rectangle", LeftRectangle, 10000, 1e-3},
		{"right rectangle", RightRectangle, 10000, 1e-3},
		{"midpoint", Midpoint, 10000, 1e-6},
		{"trapezoidal", Trapezoidal, 10000, 1e-6},
		{"simpson 1/3", Simpson13, 10000, 1e-10},
		{"simpson 3/8", Simpson38, 9999, 1e-10},
	}
	for _, tc := range cases {
		got := tc.rule(Params{F: quadratic, Lower: 0, Upper: 1, N: tc.n})
		if math.IsNaN(got) {
			t.Fatalf("%s: got NaN", tc.name)
		}
		if diff := math.Abs(got - quadraticExact); diff > tc.tol {
			t.Fatalf("%s: error %.3e exceeds tolerance %.1e (got %.12f)", tc.name, diff, tc.tol, got)
		}
	}
}

func TestRuleOrderingOnQuadratic(t *testing.T) {
	// At the same N, Simpson should beat trapezoidal, which beats the
	// one-sided rectangle rules.
	p := Params{F: quadratic, Lower: 0, Upper: 1, N: 1000}
	left := math.Abs(LeftRectangle(p) - quadraticExact)
	trap := math.Abs(Trapezoidal(p) - quadraticExact)
	simp := math.Abs(Simpson13(p) - quadraticExact)
	if trap >= left {
		t.Fatalf("trapezoidal error %.3e not better than left rectangle %.3e", trap, left)
	}
	if simp >= trap {
		t.Fatalf("simpson error %.3e not better than trapezoidal %.3e", simp, trap)
	}
}

func TestSinOverHalfPeriod(t *testing.T) {
	// Integral of sin over [0, pi] is exactly 2.
	p := Params{F: math.Sin, Lower: 0, Upper: math.Pi, N: 100000}
	got := Trapezoidal(p)
	if math.Abs(got-2.0) > 1e-6 {
		t.Fatalf("trapezoidal on sin: got %.12f want 2", got)
	}
}

func TestInvalidParamsYieldNaN(t *testing.T) {
	rules := map[string]Rule{
		"left":      LeftRectangle,
		"right":     RightRectangle,
		"midpoint":  Midpoint,
		"trap":      Trapezoidal,
		"simpson13": Simpson13,
		"simpson38": Simpson38,
		"mc":        MonteCarlo,
	}
	bad := []Params{
		{F: nil, Lower: 0, Upper: 1, N: 10},
		{F: quadratic, Lower: 0, Upper: 1, N: 0},
		{F: quadratic, Lower: 0, Upper: 1, N: -5},
		{F: quadratic, Lower: 1, Upper: 1, N: 10},
		{F: quadratic, Lower: 2, Upper: 1, N: 10},
	}
	for name, rule := range rules {
		for i, p := range bad {
			if got := rule(p); !math.IsNaN(got) {
				t.Fatalf("%s: bad params #%d: expected NaN got %v", name, i, got)
			}
		}
	}
}

func TestSimpsonDivisibilityRequirements(t *testing.T) {
	p := Params{F: quadratic, Lower: 0, Upper: 1, N: 101}
	if got := Simpson13(p); !math.IsNaN(got) {
		t.Fatalf("simpson 1/3 with odd n: expected NaN got %v", got)
	}
	p.N = 100 // even but not a multiple of 3
	if got := Simpson38(p); !math.IsNaN(got) {
		t.Fatalf("simpson 3/8 with n%%3 != 0: expected NaN got %v", got)
	}
}

func TestMonteCarloDeterministicUnderSeed(t *testing.T) {
	mk := func() Params {
		return Params{F: quadratic, Lower: 0, Upper: 1, N: 5000, Rand: rand.New(rand.NewSource(42))}
	}
	a := MonteCarlo(mk())
	b := MonteCarlo(mk())
	if a != b {
		t.Fatalf("same seed produced different results: %v vs %v", a, b)
	}
	if math.Abs(a-quadraticExact) > 0.05 {
		t.Fatalf("monte carlo estimate %.6f too far from %.6f", a, quadraticExact)
	}
	if got := MonteCarlo(Params{F: quadratic, Lower: 0, Upper: 1, N: 100}); !math.IsNaN(got) {
		t.Fatalf("monte carlo without rand source: expected NaN got %v", got)
	}
}
