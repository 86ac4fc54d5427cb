package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
)

// InterfaceSet holds lithological interfaces interpolated onto the model
// x axis. Interfaces are depth profiles: one value per x node per
// interface, ordered top to bottom.
type InterfaceSet struct {
	X      []float64
	Names  []string
	Depths [][]float64
}

// Len returns the number of interfaces in the set.
func (s *InterfaceSet) Len() int { return len(s.Names) }

// Interfaces interpolates interface vertices onto the x axis of a 2D
// grid. Each vertex list describes one interface as (x, depth) pairs with
// strictly increasing x; the first and last vertices must sit on the grid
// boundaries. When names is nil the interfaces are numbered.
func Interfaces(g *mandyoc.Grid, vertices [][]Point, names []string) (*InterfaceSet, error) {
	if g.Dimension != 2 {
		return nil, fmt.Errorf("invalid grid dimension %d: interfaces are built on 2D grids only", g.Dimension)
	}
	if names == nil {
		names = make([]string, len(vertices))
		for i := range names {
			names[i] = fmt.Sprintf("interface_%d", i)
		}
	}
	if len(names) != len(vertices) {
		return nil, fmt.Errorf("got %d interface names for %d interfaces: counts must match", len(names), len(vertices))
	}

	set := &InterfaceSet{
		X:     append([]float64(nil), g.X...),
		Names: append([]string(nil), names...),
	}
	xMin, xMax := g.X[0], g.X[len(g.X)-1]
	for i, verts := range vertices {
		if len(verts) < 2 {
			return nil, fmt.Errorf("interface %q needs at least 2 vertices, got %d", names[i], len(verts))
		}
		if err := checkBoundaryVertices(verts, xMin, xMax); err != nil {
			return nil, fmt.Errorf("interface %q: %w", names[i], err)
		}
		xs := make([]float64, len(verts))
		zs := make([]float64, len(verts))
		for v, p := range verts {
			// interp.PiecewiseLinear.Fit panics on unsorted input, so
			// the ordering is checked here.
			if v > 0 && p.X <= xs[v-1] {
				return nil, fmt.Errorf("interface %q: vertex x values must be strictly increasing, got %g after %g", names[i], p.X, xs[v-1])
			}
			xs[v] = p.X
			zs[v] = p.Z
		}
		var pl interp.PiecewiseLinear
		if err := pl.Fit(xs, zs); err != nil {
			return nil, fmt.Errorf("interface %q: %w", names[i], err)
		}
		depth := make([]float64, len(g.X))
		for n, x := range g.X {
			depth[n] = pl.Predict(x)
		}
		set.Depths = append(set.Depths, depth)
	}
	return set, nil
}

// checkBoundaryVertices requires the vertex list to span the x axis
// exactly so the interpolation never extrapolates.
func checkBoundaryVertices(verts []Point, xMin, xMax float64) error {
	first, last := verts[0].X, verts[len(verts)-1].X
	if !almostEqual(first, xMin) || !almostEqual(last, xMax) {
		return fmt.Errorf("boundary vertices (%g, %g) do not match the coordinate boundaries (%g, %g)", first, last, xMin, xMax)
	}
	return nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
