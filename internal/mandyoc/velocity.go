package mandyoc

import (
	"fmt"
	"path/filepath"
)

// ReadVelocity reads the velocity vector for one saved step. The file
// interleaves the components node by node (vx vz in 2D, vx vy vz in 3D),
// so component c occupies positions c, c+dim, c+2*dim... of the flat data.
// Each returned component is a flat slice in the same Fortran order as the
// scalar files.
func ReadVelocity(path string, step int, g *Grid) ([][]float64, error) {
	filename := filepath.Join(path, fmt.Sprintf("%s_%d.txt", Basenames["velocity"], step))
	values, err := readValues(filename)
	if err != nil {
		return nil, err
	}
	dim := g.Dimension
	if err := g.checkCount(len(values), dim*g.Size(), filename); err != nil {
		return nil, err
	}
	components := make([][]float64, dim)
	for c := range components {
		component := make([]float64, g.Size())
		for n := range component {
			component[n] = values[n*dim+c]
		}
		components[c] = component
	}
	return components, nil
}

// VelocityComponentNames returns the dataset keys for the velocity
// components in file order: (x, z) in 2D and (x, y, z) in 3D.
func VelocityComponentNames(dimension int) []string {
	if dimension == 3 {
		return []string{"velocity_x", "velocity_y", "velocity_z"}
	}
	return []string{"velocity_x", "velocity_z"}
}
