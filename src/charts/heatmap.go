package charts

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/HaydenA0/Integration-methods/src/bench"
	"github.com/HaydenA0/Integration-methods/src/report"
)

// timeGrid adapts a report.Pivot to gonum's GridXYZ. Columns are interval
// counts and rows are methods, both addressed by index; missing cells map to
// zero so the palette normalization stays finite.
type timeGrid struct {
	pv report.Pivot
}

func (g timeGrid) Dims() (c, r int) { return len(g.pv.Intervals), len(g.pv.Methods) }
func (g timeGrid) X(c int) float64  { return float64(c) }
func (g timeGrid) Y(r int) float64  { return float64(r) }

func (g timeGrid) Z(c, r int) float64 {
	v := g.pv.Cells[r][c]
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// reversedPalette flips a palette so the darkest color lands on the highest
// value, matching the "darker is slower" reading of the heatmap.
type reversedPalette struct {
	pal palette.Palette
}

func (r reversedPalette) Colors() []color.Color {
	cs := r.pal.Colors()
	out := make([]color.Color, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}
	return out
}

// renderTimeHeatmap draws mean execution time per method and interval count,
// annotated with the cell values.
func renderTimeHeatmap(pv report.Pivot, path string) error {
	if len(pv.Methods) == 0 || len(pv.Intervals) == 0 {
		bench.Warnf("empty pivot; skipping execution time heatmap")
		return nil
	}

	p := plot.New()
	p.Title.Text = "Average Execution Time (ms) Heatmap"
	p.X.Label.Text = "Number of Intervals"
	p.Y.Label.Text = "Integration Method"

	hm := plotter.NewHeatMap(timeGrid{pv: pv}, reversedPalette{pal: palette.Heat(12, 1)})
	p.Add(hm)

	xticks := make([]plot.Tick, len(pv.Intervals))
	for j, n := range pv.Intervals {
		xticks[j] = plot.Tick{Value: float64(j), Label: strconv.FormatInt(n, 10)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)

	yticks := make([]plot.Tick, len(pv.Methods))
	for i, m := range pv.Methods {
		yticks[i] = plot.Tick{Value: float64(i), Label: m}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)

	labels, err := cellLabels(pv)
	if err != nil {
		return fmt.Errorf("heatmap labels: %w", err)
	}
	p.Add(labels)

	if err := p.Save(12*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	bench.Infof("wrote %s", path)
	return nil
}

func cellLabels(pv report.Pivot) (*plotter.Labels, error) {
	var xys plotter.XYs
	var texts []string
	for i, row := range pv.Cells {
		for j, v := range row {
			if math.IsNaN(v) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(j), Y: float64(i)})
			texts = append(texts, formatCell(v))
		}
	}
	return plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
}

// formatCell keeps annotations readable across the wide spread between a
// 100-interval rectangle rule and a million-interval Simpson run.
func formatCell(v float64) string {
	switch {
	case v >= 100:
		return fmt.Sprintf("%.0f", v)
	case v >= 1:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}
