package viz

import (
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/integrators"
)

// MaxPlots caps how many state components TimeSeries draws.
const MaxPlots = 6

var ErrNonFinite = errors.New("viz: trajectory has non-finite values")

var componentNames = map[string][]string{
	"pendulum":    {"theta (angle)", "omega (angular velocity)"},
	"spring_mass": {"position", "velocity"},
	"duffing":     {"position", "velocity"},
	"vanderpol":   {"x", "dx/dt"},
	"lorenz":      {"x", "y", "z"},
	"decay":       {"u"},
}

// ComponentName labels state component i of a model's trajectory.
func ComponentName(model string, i int) string {
	if names, ok := componentNames[model]; ok && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("x%d", i)
}

// TimeSeries plots up to MaxPlots components of sol against step index,
// one asciigraph chart per component. Components with non-finite values
// are skipped with a note in place of the chart.
func TimeSeries(model string, sol *integrators.Solution, width, height int) []string {
	n := min(sol.Dim, MaxPlots)
	graphs := make([]string, 0, n)

	for i := 0; i < n; i++ {
		col, err := sol.Column(i)
		if err != nil {
			break
		}
		caption := ComponentName(model, i)
		if !dynamo.State(col).IsValid() {
			graphs = append(graphs, Warning.Render(caption+": not plotted, trajectory diverged"))
			continue
		}
		graphs = append(graphs, asciigraph.Plot(col,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(caption),
		))
	}
	return graphs
}

// Phase draws component yi against component xi on a braille canvas of
// width by height cells, joining successive points with line segments.
func Phase(sol *integrators.Solution, xi, yi, width, height int) (*Canvas, error) {
	xs, err := sol.Column(xi)
	if err != nil {
		return nil, err
	}
	ys, err := sol.Column(yi)
	if err != nil {
		return nil, err
	}
	if !dynamo.State(xs).IsValid() || !dynamo.State(ys).IsValid() {
		return nil, ErrNonFinite
	}

	c := NewCanvas(width, height)
	if len(xs) == 0 {
		return c, nil
	}
	w, h := c.Dots()

	xLo, xHi := bounds(xs)
	yLo, yHi := bounds(ys)
	toDot := func(x, y float64) (int, int) {
		px := scaleDot(x, xLo, xHi, w)
		py := scaleDot(y, yLo, yHi, h)
		return px, h - 1 - py
	}

	px, py := toDot(xs[0], ys[0])
	c.Set(px, py)
	for n := 1; n < len(xs); n++ {
		qx, qy := toDot(xs[n], ys[n])
		c.Line(px, py, qx, qy)
		px, py = qx, qy
	}
	return c, nil
}

// scaleDot maps v in [lo, hi] onto a dot index in [0, n). Halving keeps
// hi-lo finite for ranges wider than MaxFloat64.
func scaleDot(v, lo, hi float64, n int) int {
	span := hi/2 - lo/2
	if span == 0 {
		return (n - 1) / 2
	}
	d := int(math.Round(float64(n-1) * ((v/2 - lo/2) / span)))
	return min(max(d, 0), n-1)
}

// bounds returns min and max of vs, widened to a unit span when flat.
func bounds(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi
}
