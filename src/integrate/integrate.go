// Package integrate implements the numerical integration rules compared by
// the benchmark suite. Every rule shares the same signature so the runner
// can treat them uniformly; invalid parameters yield NaN rather than an
// error so that a failed case still produces a CSV row.
package integrate

import (
	"math"
	"math/rand"
)

// Func is the integrand f(x).
type Func func(x float64) float64

// Params bundles one integration task. Rand is consumed by MonteCarlo only;
// the deterministic rules ignore it.
type Params struct {
	F     Func
	Lower float64
	Upper float64
	N     int64
	Rand  *rand.Rand
}

// Rule computes the approximate integral for the given parameters.
// Rules return NaN for invalid input and never panic.
type Rule func(p Params) float64

func invalid(p Params) bool {
	return p.F == nil || p.N <= 0 || p.Upper <= p.Lower
}

// LeftRectangle sums rectangles whose height is f at the left endpoint of
// each subinterval.
func LeftRectangle(p Params) float64 {
	if invalid(p) {
		return math.NaN()
	}
	dx := (p.Upper - p.Lower) / float64(p.N)
	sum := 0.0
	for i := int64(0); i < p.N; i++ {
		sum += p.F(p.Lower + float64(i)*dx)
	}
	return sum * dx
}

// RightRectangle sums rectangles whose height is f at the right endpoint of
// each subinterval.
func RightRectangle(p Params) float64 {
	if invalid(p) {
		return math.NaN()
	}
	dx := (p.Upper - p.Lower) / float64(p.N)
	sum := 0.0
	for i := int64(1); i <= p.N; i++ {
		sum += p.F(p.Lower + float64(i)*dx)
	}
	return sum * dx
}

// Midpoint evaluates f at the midpoint of each subinterval.
func Midpoint(p Params) float64 {
	if invalid(p) {
		return math.NaN()
	}
	dx := (p.Upper - p.Lower) / float64(p.N)
	sum := 0.0
	for i := int64(0); i < p.N; i++ {
		sum += p.F(p.Lower + (float64(i)+0.5)*dx)
	}
	return sum * dx
}

// Trapezoidal averages the left and right endpoint methods by weighting the
// interval endpoints at one half.
func Trapezoidal(p Params) float64 {
	if invalid(p) {
		return math.NaN()
	}
	dx := (p.Upper - p.Lower) / float64(p.N)
	sum := 0.5 * (p.F(p.Lower) + p.F(p.Upper))
	for i := int64(1); i < p.N; i++ {
		sum += p.F(p.Lower + float64(i)*dx)
	}
	return sum * dx
}

// Simpson13 fits a parabola over each pair of subintervals. N must be even;
// odd N yields NaN.
func Simpson13(p Params) float64 {
	if invalid(p) || p.N%2 != 0 {
		return math.NaN()
	}
	dx := (p.Upper - p.Lower) / float64(p.N)
	sum := p.F(p.Lower) + p.F(p.Upper)
	for i := int64(1); i < p.N; i += 2 {
		sum += 4.0 * p.F(p.Lower+float64(i)*dx)
	}
	for i := int64(2); i < p.N-1; i += 2 {
		sum += 2.0 * p.F(p.Lower+float64(i)*dx)
	}
	return sum * dx / 3.0
}

// Simpson38 fits a cubic over each triple of subintervals. N must be a
// multiple of 3; anything else yields NaN.
func Simpson38(p Params) float64 {
	if invalid(p) || p.N%3 != 0 {
		return math.NaN()
	}
	dx := (p.Upper - p.Lower) / float64(p.N)
	sum := p.F(p.Lower) + p.F(p.Upper)
	for i := int64(1); i < p.N; i++ {
		if i%3 == 0 {
			sum += 2.0 * p.F(p.Lower+float64(i)*dx)
		} else {
			sum += 3.0 * p.F(p.Lower+float64(i)*dx)
		}
	}
	return sum * dx * 3.0 / 8.0
}

// MonteCarlo averages f over N uniform samples in [Lower, Upper] and scales
// by the interval width. The sample source comes from Params.Rand so runs
// are reproducible; a nil Rand is treated as invalid input.
func MonteCarlo(p Params) float64 {
	if invalid(p) || p.Rand == nil {
		return math.NaN()
	}
	width := p.Upper - p.Lower
	sum := 0.0
	for i := int64(0); i < p.N; i++ {
		sum += p.F(p.Lower + p.Rand.Float64()*width)
	}
	return (sum / float64(p.N)) * width
}
