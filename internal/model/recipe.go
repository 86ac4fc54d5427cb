package model

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tectonic-data/mandyoc.report/internal/fsutil"
	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
)

// Recipe describes a complete initial model in one YAML file: the grid,
// the lithological interfaces with their layer parameters, and the
// temperature and boundary velocity settings. Optional sections are
// skipped when absent.
type Recipe struct {
	Region      []float64        `yaml:"region"`
	Shape       []int            `yaml:"shape"`
	Interfaces  []InterfaceSpec  `yaml:"interfaces"`
	Layers      *LayerParameters `yaml:"layers"`
	Temperature *TemperatureSpec `yaml:"temperature"`
	Velocity    *VelocitySpec    `yaml:"velocity"`
}

// InterfaceSpec is one named interface given by its (x, depth) vertices.
type InterfaceSpec struct {
	Name     string       `yaml:"name"`
	Vertices [][2]float64 `yaml:"vertices"`
}

// TemperatureSpec configures the litho/astheno temperature build and an
// optional subducting slab.
type TemperatureSpec struct {
	LidDepth             float64   `yaml:"lid_depth"`
	SurfaceTemperature   float64   `yaml:"surface_temperature"`
	LidTemperature       float64   `yaml:"lid_temperature"`
	PotentialTemperature float64   `yaml:"potential_temperature"`
	Slab                 *SlabSpec `yaml:"slab"`
}

// SlabSpec configures a subducting slab temperature overwrite.
type SlabSpec struct {
	Slope             float64 `yaml:"slope"`
	Thickness         float64 `yaml:"thickness"`
	HMin              float64 `yaml:"h_min"`
	HMax              float64 `yaml:"h_max"`
	TopTemperature    float64 `yaml:"top_temperature"`
	BottomTemperature float64 `yaml:"bottom_temperature"`
}

// VelocitySpec configures the lateral boundary velocity.
type VelocitySpec struct {
	ZStart float64   `yaml:"z_start"`
	Bottom []float64 `yaml:"bottom"`
}

// LoadRecipe reads and validates a recipe file.
func LoadRecipe(fs fsutil.FileSystem, path string) (*Recipe, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe %s: %w", path, err)
	}
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse recipe %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recipe %s: %w", path, err)
	}
	return &r, nil
}

// Validate checks the recipe for the errors a grid build would not catch.
func (r *Recipe) Validate() error {
	if len(r.Shape) == 0 {
		return fmt.Errorf("shape is required")
	}
	if _, err := GridCoordinates(r.Region, r.Shape); err != nil {
		return err
	}
	if len(r.Interfaces) > 0 && r.Layers == nil {
		return fmt.Errorf("interfaces are set but layers are missing")
	}
	for _, spec := range r.Interfaces {
		if spec.Name == "" {
			return fmt.Errorf("every interface needs a name")
		}
	}
	if r.Velocity != nil && len(r.Velocity.Bottom) != len(r.Shape) {
		return fmt.Errorf("velocity bottom has %d components for a %dD grid", len(r.Velocity.Bottom), len(r.Shape))
	}
	return nil
}

// Build generates all the input files the recipe describes into dir.
func (r *Recipe) Build(fs fsutil.FileSystem, dir string) error {
	g, err := GridCoordinates(r.Region, r.Shape)
	if err != nil {
		return err
	}

	var temps []float64
	if r.Temperature != nil {
		temps, err = r.buildTemperature(g)
		if err != nil {
			return err
		}
	}

	var velocity [][]float64
	if r.Velocity != nil {
		velocity, err = BoundaryVelocity(g, r.Velocity.ZStart, r.Velocity.Bottom)
		if err != nil {
			return err
		}
	}

	var set *InterfaceSet
	if len(r.Interfaces) > 0 {
		vertices := make([][]Point, len(r.Interfaces))
		names := make([]string, len(r.Interfaces))
		for i, spec := range r.Interfaces {
			names[i] = spec.Name
			verts := make([]Point, len(spec.Vertices))
			for v, pair := range spec.Vertices {
				verts[v] = Point{X: pair[0], Z: pair[1]}
			}
			vertices[i] = verts
		}
		set, err = Interfaces(g, vertices, names)
		if err != nil {
			return err
		}
	}

	return WriteAll(fs, dir, g, temps, velocity, set, r.Layers)
}

func (r *Recipe) buildTemperature(g *mandyoc.Grid) ([]float64, error) {
	spec := r.Temperature
	opts := ThermalOptions{
		SurfaceTemperature:   spec.SurfaceTemperature,
		LidTemperature:       spec.LidTemperature,
		PotentialTemperature: spec.PotentialTemperature,
	}
	temps, err := LithoAsthenoTemperature(g, spec.LidDepth, opts)
	if err != nil {
		return nil, err
	}
	if slab := spec.Slab; slab != nil {
		topT, bottomT := slab.TopTemperature, slab.BottomTemperature
		if topT == 0 {
			topT = opts.withDefaults().SurfaceTemperature
		}
		if bottomT == 0 {
			bottomT = opts.withDefaults().LidTemperature
		}
		if err := SubductingSlabTemperature(g, temps, slab.Slope, slab.Thickness, slab.HMin, slab.HMax, topT, bottomT); err != nil {
			return nil, err
		}
	}
	return temps, nil
}
