// Package mandyoc reads the raw output files written by the MANDYOC
// geodynamics code into coordinate-labelled, unit-aware fields.
//
// A MANDYOC run directory contains a parameters file describing the grid,
// one time file per saved step, and per-step data files for each scalar
// quantity, the velocity vector and the element-centred viscosity. This
// package parses those fixed layouts; it performs no simulation of its own.
package mandyoc

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultParametersFile is the parameters filename written by MANDYOC.
const DefaultParametersFile = "param_1.5.3.txt"

// Parameters holds the run configuration read from the parameters file.
// The first line of the file carries the node counts per axis (two values
// for a 2D run, three for 3D), the second line the physical extent of the
// domain in meters, and every following non-blank line a "key value" pair.
type Parameters struct {
	// Dimension is 2 or 3, inferred from the node-count line.
	Dimension int

	// Shape holds the number of grid nodes per axis: (nx, nz) in 2D or
	// (nx, ny, nz) in 3D.
	Shape []int

	// Extent holds the physical size of the domain per axis in meters, in
	// the same order as Shape.
	Extent []float64

	// PrintStep is the step interval at which MANDYOC writes output files.
	PrintStep int

	// StepMax bounds the number of steps. The run may stop earlier if the
	// maximum simulation time is reached first.
	StepMax int

	// TimeMax is the maximum simulation time in years, if present.
	TimeMax float64

	// Extra keeps every key-value pair that is not interpreted above,
	// verbatim, so callers can surface the full run configuration.
	Extra map[string]string
}

// Size returns the total number of grid nodes.
func (p *Parameters) Size() int {
	n := 1
	for _, s := range p.Shape {
		n *= s
	}
	return n
}

// Region returns the coordinate bounds per axis as (min, max) pairs in
// meters, following the MANDYOC convention: x grows from zero, while the
// y and z axes are negative with zero at the surface (z points down and y
// is inverted to keep the system right handed).
func (p *Parameters) Region() []float64 {
	region := make([]float64, 0, 2*p.Dimension)
	for axis, max := range p.Extent {
		if axis == 0 {
			region = append(region, 0, max)
		} else {
			region = append(region, -max, 0)
		}
	}
	return region
}

// ReadParameters parses a MANDYOC parameters file.
func ReadParameters(path string) (*Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parameters file: %w", err)
	}
	defer f.Close()

	params := &Parameters{Extra: make(map[string]string)}
	readShape, readExtent := false, false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch {
		case !readShape:
			if len(fields) != 2 && len(fields) != 3 {
				return nil, fmt.Errorf("parameters %s: node-count line must have 2 or 3 values, got %d", path, len(fields))
			}
			for _, tok := range fields {
				n, err := strconv.Atoi(tok)
				if err != nil {
					return nil, fmt.Errorf("parameters %s: invalid node count %q: %w", path, tok, err)
				}
				if n < 2 {
					return nil, fmt.Errorf("parameters %s: need at least 2 nodes per axis, got %d", path, n)
				}
				params.Shape = append(params.Shape, n)
			}
			params.Dimension = len(params.Shape)
			readShape = true
		case !readExtent:
			if len(fields) != params.Dimension {
				return nil, fmt.Errorf("parameters %s: extent line must have %d values, got %d", path, params.Dimension, len(fields))
			}
			for _, tok := range fields {
				v, err := strconv.ParseFloat(tok, 64)
				if err != nil {
					return nil, fmt.Errorf("parameters %s: invalid extent %q: %w", path, tok, err)
				}
				params.Extent = append(params.Extent, v)
			}
			readExtent = true
		default:
			if len(fields) < 2 {
				return nil, fmt.Errorf("parameters %s: malformed line %q", path, scanner.Text())
			}
			key, value := fields[0], fields[1]
			switch key {
			case "print_step":
				if params.PrintStep, err = strconv.Atoi(value); err != nil {
					return nil, fmt.Errorf("parameters %s: invalid print_step %q: %w", path, value, err)
				}
			case "stepMAX":
				if params.StepMax, err = strconv.Atoi(value); err != nil {
					return nil, fmt.Errorf("parameters %s: invalid stepMAX %q: %w", path, value, err)
				}
			case "timeMAX":
				if params.TimeMax, err = strconv.ParseFloat(value, 64); err != nil {
					return nil, fmt.Errorf("parameters %s: invalid timeMAX %q: %w", path, value, err)
				}
			default:
				params.Extra[key] = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read parameters file: %w", err)
	}
	if !readShape || !readExtent {
		return nil, fmt.Errorf("parameters %s: missing grid shape or extent header", path)
	}
	if params.PrintStep <= 0 {
		return nil, fmt.Errorf("parameters %s: print_step must be positive, got %d", path, params.PrintStep)
	}
	return params, nil
}
