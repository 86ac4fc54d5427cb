package model

import (
	"fmt"
	"math"

	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
)

// Default thermal parameters for temperature distributions, after
// Blom (2016).
const (
	DefaultSurfaceTemperature   = 273.0   // K
	DefaultLidTemperature       = 1300.0  // K
	DefaultPotentialTemperature = 1262.0  // K, asthenosphere expanded to the surface
	DefaultThermalExpansion     = 3.28e-5 // 1/K
	DefaultSpecificHeat         = 1250.0  // J/K/kg
	DefaultGravity              = 9.8     // m/s^2
)

// ThermalOptions overrides the default thermal parameters. Zero fields
// keep their defaults.
type ThermalOptions struct {
	SurfaceTemperature   float64
	LidTemperature       float64
	PotentialTemperature float64
	ThermalExpansion     float64
	SpecificHeat         float64
	Gravity              float64
}

func (o ThermalOptions) withDefaults() ThermalOptions {
	if o.SurfaceTemperature == 0 {
		o.SurfaceTemperature = DefaultSurfaceTemperature
	}
	if o.LidTemperature == 0 {
		o.LidTemperature = DefaultLidTemperature
	}
	if o.PotentialTemperature == 0 {
		o.PotentialTemperature = DefaultPotentialTemperature
	}
	if o.ThermalExpansion == 0 {
		o.ThermalExpansion = DefaultThermalExpansion
	}
	if o.SpecificHeat == 0 {
		o.SpecificHeat = DefaultSpecificHeat
	}
	if o.Gravity == 0 {
		o.Gravity = DefaultGravity
	}
	return o
}

// LithoAsthenoTemperature builds a temperature distribution with a linear
// lithosphere above an adiabatic asthenosphere. The lithosphere warms
// linearly from the surface temperature down to the lid temperature at
// lidDepth; the asthenosphere follows the adiabat of the potential
// temperature. Continuity comes from taking the pointwise minimum of the
// two profiles. lidDepth must be negative (depths point down).
//
// The result is a flat slice over the grid nodes in the same Fortran
// order the simulation output uses.
func LithoAsthenoTemperature(g *mandyoc.Grid, lidDepth float64, opts ThermalOptions) ([]float64, error) {
	if lidDepth >= 0 {
		return nil, fmt.Errorf("invalid lid depth %g: must be negative for the lid to sit below the surface", lidDepth)
	}
	o := opts.withDefaults()

	temps := make([]float64, g.Size())
	for k, z := range g.Z {
		litho := (o.LidTemperature-o.SurfaceTemperature)/lidDepth*z + o.SurfaceTemperature
		astheno := o.PotentialTemperature * math.Exp(-o.ThermalExpansion*o.Gravity/o.SpecificHeat*z)
		t := math.Min(litho, astheno)
		for j := 0; j < g.Ny(); j++ {
			for i := 0; i < g.Nx(); i++ {
				temps[g.FlatIndex(i, j, k)] = t
			}
		}
	}
	return temps, nil
}

// SubductingSlabTemperature overwrites a temperature distribution inside
// a subducting slab. The slab top is the line dipping with the given
// slope (degrees) anchored at (hMin, 0); the slab extends a constant
// thickness below it between the horizontal bounds hMin and hMax. Points
// inside the slab get
//
//	0.5 * (T + (bottomT-topT)*(top-z)/thickness + topT)
//
// blending the background temperature with the slab's own linear profile.
// temps is modified in place.
func SubductingSlabTemperature(g *mandyoc.Grid, temps []float64, slope, thickness, hMin, hMax, topT, bottomT float64) error {
	if thickness <= 0 {
		return fmt.Errorf("invalid slab thickness %g: must be positive", thickness)
	}
	if len(temps) != g.Size() {
		return fmt.Errorf("temperature slice has %d values for a grid of %d nodes", len(temps), g.Size())
	}
	for i, x := range g.X {
		if x <= hMin || x >= hMax {
			continue
		}
		top := LinearDepth(x, slope, Point{X: hMin, Z: 0})
		bottom := top - thickness
		for k, z := range g.Z {
			if z >= top || z <= bottom {
				continue
			}
			for j := 0; j < g.Ny(); j++ {
				n := g.FlatIndex(i, j, k)
				temps[n] = 0.5 * (temps[n] + (bottomT-topT)*(top-z)/thickness + topT)
			}
		}
	}
	return nil
}
