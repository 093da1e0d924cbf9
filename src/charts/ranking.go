package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/HaydenA0/Integration-methods/src/bench"
	"github.com/HaydenA0/Integration-methods/src/report"
)

// renderFinalAccuracy draws the grouped bar chart ranking every method by
// absolute error at the highest interval count, one bar group per integrand.
func renderFinalAccuracy(ds report.Dataset, path string) error {
	final := ds.FinalAccuracy()
	if len(final.Rows) == 0 {
		bench.Warnf("no rows at the maximum interval count; skipping accuracy ranking")
		return nil
	}
	funcs := ds.Functions()
	methods := ds.Methods()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Final Accuracy Ranking at N = %d", ds.MaxIntervals())
	p.X.Label.Text = "Mathematical Function"
	p.Y.Label.Text = "Absolute Error (log scale)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	colors := methodColors(len(methods))
	barWidth := vg.Points(14)
	barSpacing := vg.Points(3)
	groupWidth := (barWidth + barSpacing) * vg.Length(len(methods)-1)

	heights := make([]plotter.Values, len(methods))
	minErr := math.MaxFloat64
	for i, m := range methods {
		vals := make(plotter.Values, len(funcs))
		for j, fn := range funcs {
			v := errorAt(final, fn, m)
			vals[j] = v
			if v < minErr {
				minErr = v
			}
		}
		heights[i] = vals
	}

	// An unstacked BarChart draws every bar from zero, which a log axis
	// cannot represent. Each method's bars stack on an undrawn base chart
	// sitting a decade below the smallest error, so bar bottoms stay
	// positive and that floor becomes the axis minimum.
	floor := minErr / 10
	baseVals := make(plotter.Values, len(funcs))
	for j := range baseVals {
		baseVals[j] = floor
	}
	for i, m := range methods {
		base, err := plotter.NewBarChart(baseVals, barWidth)
		if err != nil {
			return fmt.Errorf("bar chart base for %s: %w", m, err)
		}
		base.Offset = (barWidth+barSpacing)*vg.Length(i) - groupWidth/2
		bars, err := plotter.NewBarChart(heights[i], barWidth)
		if err != nil {
			return fmt.Errorf("bar chart for %s: %w", m, err)
		}
		bars.StackOn(base)
		bars.Color = colors[i]
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add(m, bars)
	}
	p.NominalX(funcs...)
	p.Legend.Top = true

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	bench.Infof("wrote %s", path)
	return nil
}

// errorAt returns the absolute error for one function/method pair, falling
// back to the zero-error floor when the pair is absent so a bar never gets a
// NaN height.
func errorAt(ds report.Dataset, fn, method string) float64 {
	for _, r := range ds.Rows {
		if r.Function == fn && r.Method == method {
			return r.AbsError
		}
	}
	return report.ZeroErrorFloor
}

// methodColors picks a qualitative palette sized for the method count.
// Brewer qualitative palettes exist for 3..12 classes; outside that span the
// palette wraps.
func methodColors(n int) []color.Color {
	k := n
	if k < 3 {
		k = 3
	}
	if k > 12 {
		k = 12
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", k)
	if err != nil {
		// Paired supports every k in [3,12], so this only guards API drift.
		fallback := make([]color.Color, n)
		for i := range fallback {
			fallback[i] = color.Gray{Y: uint8(40 + i*25)}
		}
		return fallback
	}
	cs := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = cs[i%len(cs)]
	}
	return out
}
