// Package plotting renders MANDYOC fields to PNG figures with gonum/plot.
//
// All figures show (x, z) profiles with coordinates in km; 3D fields are
// sliced at a y index first. Scalar fields render as heatmaps, the
// velocity field as an arrow overlay.
package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/tectonic-data/mandyoc.report/internal/config"
	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
	"github.com/tectonic-data/mandyoc.report/internal/units"
)

// profileGrid adapts one (x, z) profile to the plotter.GridXYZ interface.
// Coordinates are in km; values stay in their native units.
type profileGrid struct {
	x, z []float64 // km
	vals []float64 // flat, x fastest
}

func (g profileGrid) Dims() (c, r int)   { return len(g.x), len(g.z) }
func (g profileGrid) X(c int) float64    { return g.x[c] }
func (g profileGrid) Y(r int) float64    { return g.z[r] }
func (g profileGrid) Z(c, r int) float64 { return g.vals[c+len(g.x)*r] }

// newProfileGrid builds the heatmap grid for one step of a field, slicing
// 3D fields at yIndex. Element-centred fields use the element-centre
// coordinates.
func newProfileGrid(ds *mandyoc.Dataset, field *mandyoc.Field, stepIndex, yIndex int) (profileGrid, error) {
	vals, err := field.Profile(stepIndex, yIndex)
	if err != nil {
		return profileGrid{}, err
	}
	x, z := ds.Grid.X, ds.Grid.Z
	if field.OnCenters {
		x, z = mandyoc.CellCenters(x), mandyoc.CellCenters(z)
	}
	return profileGrid{
		x:    kilometers(x),
		z:    kilometers(z),
		vals: vals,
	}, nil
}

func kilometers(meters []float64) []float64 {
	km := make([]float64, len(meters))
	for i, m := range meters {
		km[i] = units.MetersToKilometers(m)
	}
	return km
}

// ScalarPlot renders a heatmap of one scalar field profile.
func ScalarPlot(ds *mandyoc.Dataset, quantity string, stepIndex int, cfg *config.PlotConfig) (*plot.Plot, error) {
	if cfg == nil {
		cfg = &config.PlotConfig{}
	}
	field, err := ds.Field(quantity)
	if err != nil {
		return nil, err
	}
	grid, err := newProfileGrid(ds, field, stepIndex, cfg.GetYIndex())
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s [%s] - Time: %8.2f Ma", quantity, field.Units, ds.Times[stepIndex])
	p.X.Label.Text = "x (km)"
	p.Y.Label.Text = "z (km)"

	heatmap := plotter.NewHeatMap(grid, palette.Heat(cfg.GetPaletteColors(), 1))
	// Hold the colour scale fixed across the whole run so a series of
	// frames is comparable.
	heatmap.Min, heatmap.Max = field.MinMax()
	if heatmap.Min == heatmap.Max {
		heatmap.Max = heatmap.Min + 1
	}
	p.Add(heatmap)
	return p, nil
}
