// Package model builds MANDYOC input files: initial temperature
// distributions, boundary velocities and lithological interfaces, written
// in the ASCII formats the simulation reads at startup.
package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
)

// GridCoordinates builds grid axes for an arbitrary model region. The
// region holds min/max pairs per axis: x_min, x_max, [y_min, y_max,]
// z_min, z_max. Unlike reading an existing run, the model region is not
// tied to the standard MANDYOC origin so any ordered bounds are accepted.
func GridCoordinates(region []float64, shape []int) (*mandyoc.Grid, error) {
	if len(shape) != 2 && len(shape) != 3 {
		return nil, fmt.Errorf("invalid shape %v: must have 2 or 3 axes", shape)
	}
	if len(region) != 2*len(shape) {
		return nil, fmt.Errorf("invalid region %v for shape %v: region must have twice the elements of shape", region, shape)
	}
	for a := 0; a < len(shape); a++ {
		if region[2*a] > region[2*a+1] {
			return nil, fmt.Errorf("invalid region %v: axis %d has min > max", region, a)
		}
		if shape[a] < 2 {
			return nil, fmt.Errorf("invalid shape %v: axis %d needs at least 2 nodes", shape, a)
		}
	}

	g := &mandyoc.Grid{
		Dimension: len(shape),
		Shape:     append([]int(nil), shape...),
	}
	g.X = span(region[0], region[1], shape[0])
	if g.Dimension == 3 {
		g.Y = span(region[2], region[3], shape[1])
		g.Z = span(region[4], region[5], shape[2])
	} else {
		g.Z = span(region[2], region[3], shape[1])
	}
	return g, nil
}

func span(min, max float64, n int) []float64 {
	ax := make([]float64, n)
	floats.Span(ax, min, max)
	return ax
}
