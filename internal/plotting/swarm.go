package plotting

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
	"github.com/tectonic-data/mandyoc.report/internal/units"
)

// SwarmPlot renders the tracer particles of one step as an (x, z) scatter,
// one colour per material flag.
func SwarmPlot(swarm *mandyoc.Swarm) (*plot.Plot, error) {
	if swarm.Len() == 0 {
		return nil, fmt.Errorf("swarm for step %d has no particles", swarm.Step)
	}

	// Group particle indices by flag for per-colour scatters.
	byFlag := make(map[int][]int)
	for n := 0; n < swarm.Len(); n++ {
		flag := int(math.Round(swarm.Flag[n]))
		byFlag[flag] = append(byFlag[flag], n)
	}
	flags := make([]int, 0, len(byFlag))
	for flag := range byFlag {
		flags = append(flags, flag)
	}
	sort.Ints(flags)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("swarm - Time: %8.2f Ma", swarm.Time)
	p.X.Label.Text = "x (km)"
	p.Y.Label.Text = "z (km)"

	colors := Colors(len(flags))
	for ci, flag := range flags {
		indices := byFlag[flag]
		xys := make(plotter.XYs, len(indices))
		for i, n := range indices {
			xys[i].X = units.MetersToKilometers(swarm.X[n])
			xys[i].Y = units.MetersToKilometers(swarm.Z[n])
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("swarm scatter for flag %d: %w", flag, err)
		}
		scatter.GlyphStyle.Color = colors[ci]
		scatter.GlyphStyle.Radius = vg.Points(1)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("flag %d", flag), scatter)
	}
	p.Legend.Top = true
	return p, nil
}
