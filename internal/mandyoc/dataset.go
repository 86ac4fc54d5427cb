package mandyoc

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/tectonic-data/mandyoc.report/internal/units"
)

// Field is one quantity across every saved step: a name, units, the grid
// shape it lives on and per-step flat value slices in Fortran order.
type Field struct {
	Name  string
	Units string

	// OnCenters is true for quantities defined on the element centres
	// (viscosity) rather than the grid nodes.
	OnCenters bool

	// Shape is the per-axis value count: node counts for nodal fields,
	// element counts for centred fields.
	Shape []int

	// Data holds one flat slice per saved step, indexed like
	// Dataset.Steps. Values are in Fortran order: x fastest, then y,
	// then z.
	Data [][]float64
}

// At returns the value at one node (or element) for one step index.
// Indices are (i, k) for 2D fields and (i, j, k) for 3D fields.
func (f *Field) At(stepIndex int, indices ...int) float64 {
	if len(indices) != len(f.Shape) {
		panic(fmt.Sprintf("field %s: got %d indices for %d dimensions", f.Name, len(indices), len(f.Shape)))
	}
	flat := 0
	stride := 1
	for axis, idx := range indices {
		flat += idx * stride
		stride *= f.Shape[axis]
	}
	return f.Data[stepIndex][flat]
}

// Profile returns the (x, z) values of one step as a flat nx*nz slice in
// Fortran order. For 3D fields the grid is sliced at the given y index;
// for 2D fields yIndex is ignored.
func (f *Field) Profile(stepIndex, yIndex int) ([]float64, error) {
	if stepIndex < 0 || stepIndex >= len(f.Data) {
		return nil, fmt.Errorf("field %s: step index %d out of range (have %d steps)", f.Name, stepIndex, len(f.Data))
	}
	if len(f.Shape) == 2 {
		return f.Data[stepIndex], nil
	}
	nx, ny, nz := f.Shape[0], f.Shape[1], f.Shape[2]
	if yIndex < 0 || yIndex >= ny {
		return nil, fmt.Errorf("field %s: y index %d out of range [0, %d)", f.Name, yIndex, ny)
	}
	out := make([]float64, nx*nz)
	src := f.Data[stepIndex]
	for k := 0; k < nz; k++ {
		for i := 0; i < nx; i++ {
			out[i+nx*k] = src[i+nx*(yIndex+ny*k)]
		}
	}
	return out, nil
}

// MinMax returns the smallest and largest value of the field across all
// saved steps. Useful for holding a colour scale fixed over a series.
func (f *Field) MinMax() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, step := range f.Data {
		for _, v := range step {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

// Dataset is the assembled output of a MANDYOC run: the parsed parameters,
// grid coordinates, the saved steps with their times in Ma, and every
// requested quantity as a Field.
type Dataset struct {
	Path   string
	Params *Parameters
	Grid   *Grid
	Steps  []int
	Times  []float64 // Ma, aligned with Steps
	Fields map[string]*Field
}

// ReadOptions controls which parts of a run directory are loaded.
type ReadOptions struct {
	// ParametersFile overrides the parameters filename inside the run
	// directory. Empty means DefaultParametersFile.
	ParametersFile string

	// Quantities selects which quantities to load. Valid entries are the
	// ScalarQuantities plus "velocity" and "viscosity". Empty means every
	// quantity whose files are present.
	Quantities []string
}

// AllQuantities lists every loadable quantity.
func AllQuantities() []string {
	qs := append([]string(nil), ScalarQuantities...)
	return append(qs, "velocity", "viscosity")
}

// ReadDataset reads a MANDYOC run directory into a Dataset.
//
// Quantities explicitly requested in opts must be present: a missing file
// is an error. When no quantities are requested, quantities whose files
// are absent for the first step are silently skipped, so datasets from
// runs configured to write fewer outputs still load.
func ReadDataset(path string, opts *ReadOptions) (*Dataset, error) {
	if opts == nil {
		opts = &ReadOptions{}
	}
	paramsFile := opts.ParametersFile
	if paramsFile == "" {
		paramsFile = DefaultParametersFile
	}

	params, err := ReadParameters(filepath.Join(path, paramsFile))
	if err != nil {
		return nil, err
	}
	grid := NewGrid(params)
	steps, times, err := ReadSteps(path, params)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Path:   path,
		Params: params,
		Grid:   grid,
		Steps:  steps,
		Times:  times,
		Fields: make(map[string]*Field),
	}

	quantities := opts.Quantities
	explicit := len(quantities) > 0
	if !explicit {
		quantities = AllQuantities()
	}
	for _, quantity := range quantities {
		if !slices.Contains(AllQuantities(), quantity) {
			return nil, fmt.Errorf("unknown quantity %q (valid: %v)", quantity, AllQuantities())
		}
		if !explicit && !quantityPresent(path, quantity, steps[0]) {
			continue
		}
		if err := ds.readQuantity(quantity); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func quantityPresent(path, quantity string, firstStep int) bool {
	var name string
	switch quantity {
	case "viscosity":
		name = fmt.Sprintf("%s%d_0.txt", Basenames[quantity], firstStep)
	default:
		name = fmt.Sprintf("%s_%d.txt", Basenames[quantity], firstStep)
	}
	_, err := os.Stat(filepath.Join(path, name))
	return err == nil
}

func (ds *Dataset) readQuantity(quantity string) error {
	switch quantity {
	case "velocity":
		return ds.readVelocity()
	case "viscosity":
		return ds.readViscosity()
	default:
		return ds.readScalar(quantity)
	}
}

func (ds *Dataset) readScalar(quantity string) error {
	field := &Field{
		Name:  quantity,
		Units: units.ForQuantity(quantity),
		Shape: append([]int(nil), ds.Grid.Shape...),
		Data:  make([][]float64, len(ds.Steps)),
	}
	for stepIndex, step := range ds.Steps {
		values, err := ReadScalar(ds.Path, quantity, step, ds.Grid)
		if err != nil {
			return err
		}
		field.Data[stepIndex] = values
	}
	ds.Fields[quantity] = field
	return nil
}

func (ds *Dataset) readVelocity() error {
	names := VelocityComponentNames(ds.Grid.Dimension)
	fields := make([]*Field, len(names))
	for c, name := range names {
		fields[c] = &Field{
			Name:  name,
			Units: units.ForQuantity(name),
			Shape: append([]int(nil), ds.Grid.Shape...),
			Data:  make([][]float64, len(ds.Steps)),
		}
	}
	for stepIndex, step := range ds.Steps {
		components, err := ReadVelocity(ds.Path, step, ds.Grid)
		if err != nil {
			return err
		}
		for c := range components {
			fields[c].Data[stepIndex] = components[c]
		}
	}
	for c, name := range names {
		ds.Fields[name] = fields[c]
	}
	return nil
}

func (ds *Dataset) readViscosity() error {
	data, err := ReadViscosity(ds.Path, ds.Steps, ds.Grid)
	if err != nil {
		return err
	}
	ds.Fields["viscosity"] = &Field{
		Name:      "viscosity",
		Units:     units.ForQuantity("viscosity"),
		OnCenters: true,
		Shape:     ds.Grid.CenterShape(),
		Data:      data,
	}
	return nil
}

// Field returns the named field or an error naming what is loaded.
func (ds *Dataset) Field(name string) (*Field, error) {
	f, ok := ds.Fields[name]
	if !ok {
		loaded := make([]string, 0, len(ds.Fields))
		for n := range ds.Fields {
			loaded = append(loaded, n)
		}
		slices.Sort(loaded)
		return nil, fmt.Errorf("field %q not loaded (have %v)", name, loaded)
	}
	return f, nil
}

// StepIndex returns the position of a saved step inside Steps.
func (ds *Dataset) StepIndex(step int) (int, error) {
	for i, s := range ds.Steps {
		if s == step {
			return i, nil
		}
	}
	return 0, fmt.Errorf("step %d was not saved (saved steps: %v)", step, ds.Steps)
}

// VelocityMagnitude computes |v| per node for one step index from the
// loaded velocity components.
func (ds *Dataset) VelocityMagnitude(stepIndex int) ([]float64, error) {
	names := VelocityComponentNames(ds.Grid.Dimension)
	components := make([][]float64, len(names))
	for c, name := range names {
		f, err := ds.Field(name)
		if err != nil {
			return nil, err
		}
		components[c] = f.Data[stepIndex]
	}
	out := make([]float64, ds.Grid.Size())
	for n := range out {
		sum := 0.0
		for _, comp := range components {
			sum += comp[n] * comp[n]
		}
		out[n] = math.Sqrt(sum)
	}
	return out, nil
}
