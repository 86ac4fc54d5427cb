package mandyoc

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid holds the node coordinates of a MANDYOC run in meters.
// Coordinates follow the MANDYOC layout: x in [0, x_max], y in [-y_max, 0]
// and z in [-z_max, 0]. For 2D runs Y is nil.
type Grid struct {
	Dimension int
	Shape     []int
	X, Y, Z   []float64
}

// NewGrid builds the node coordinate axes for the given parameters.
func NewGrid(params *Parameters) *Grid {
	g := &Grid{
		Dimension: params.Dimension,
		Shape:     append([]int(nil), params.Shape...),
	}
	region := params.Region()
	g.X = axis(region[0], region[1], params.Shape[0])
	if params.Dimension == 3 {
		g.Y = axis(region[2], region[3], params.Shape[1])
		g.Z = axis(region[4], region[5], params.Shape[2])
	} else {
		g.Z = axis(region[2], region[3], params.Shape[1])
	}
	return g
}

func axis(min, max float64, n int) []float64 {
	ax := make([]float64, n)
	floats.Span(ax, min, max)
	return ax
}

// Size returns the total number of grid nodes.
func (g *Grid) Size() int {
	n := 1
	for _, s := range g.Shape {
		n *= s
	}
	return n
}

// Nx, Ny and Nz return the node counts per axis. Ny is 1 for 2D grids so
// the flat index arithmetic works unchanged in both dimensions.
func (g *Grid) Nx() int { return g.Shape[0] }

func (g *Grid) Ny() int {
	if g.Dimension == 3 {
		return g.Shape[1]
	}
	return 1
}

func (g *Grid) Nz() int { return g.Shape[len(g.Shape)-1] }

// FlatIndex maps node indices to the position of the node value inside the
// flat data slice. MANDYOC writes values in Fortran (column-major) order:
// the x index varies fastest, then y, then z.
func (g *Grid) FlatIndex(i, j, k int) int {
	return i + g.Nx()*(j+g.Ny()*k)
}

// CellCenters returns the element-centre coordinates for one node axis.
// MANDYOC reports viscosity on the centres of the finite elements, which
// sit midway between consecutive nodes.
func CellCenters(nodes []float64) []float64 {
	centers := make([]float64, len(nodes)-1)
	for i := range centers {
		centers[i] = (nodes[i] + nodes[i+1]) / 2
	}
	return centers
}

// CenterShape returns the element grid shape: one fewer element than nodes
// along every axis.
func (g *Grid) CenterShape() []int {
	shape := make([]int, len(g.Shape))
	for i, s := range g.Shape {
		shape[i] = s - 1
	}
	return shape
}

// checkCount validates that a data file carried exactly the expected
// number of values for this grid.
func (g *Grid) checkCount(got, want int, path string) error {
	if got != want {
		return fmt.Errorf("%s: expected %d values for grid shape %v, got %d", path, want, g.Shape, got)
	}
	return nil
}
