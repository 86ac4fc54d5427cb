package model

import (
	"fmt"

	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
)

// BoundaryVelocity builds a boundary velocity condition on the two
// lateral (x) boundaries of the grid. Velocities are zero above zStart
// and grow linearly below it, reaching the bottom values at the bottom of
// the grid. bottom holds one value per component (vx, vz for 2D; vx, vy,
// vz for 3D) in m/s. Interior nodes stay zero.
//
// The returned components are flat slices over the grid nodes in Fortran
// order, in the same component order the simulation uses.
func BoundaryVelocity(g *mandyoc.Grid, zStart float64, bottom []float64) ([][]float64, error) {
	if len(bottom) != g.Dimension {
		return nil, fmt.Errorf("got %d bottom velocity components for a %dD grid", len(bottom), g.Dimension)
	}
	zMin := g.Z[0]
	if zStart <= zMin {
		return nil, fmt.Errorf("invalid start depth %g: must be above the grid bottom %g", zStart, zMin)
	}

	components := make([][]float64, g.Dimension)
	for c := range components {
		components[c] = make([]float64, g.Size())
	}
	nx := g.Nx()
	for k, z := range g.Z {
		if z >= zStart {
			continue
		}
		frac := (z - zStart) / (zMin - zStart)
		for j := 0; j < g.Ny(); j++ {
			for _, i := range []int{0, nx - 1} {
				n := g.FlatIndex(i, j, k)
				for c := range components {
					components[c][n] = bottom[c] * frac
				}
			}
		}
	}
	return components, nil
}
