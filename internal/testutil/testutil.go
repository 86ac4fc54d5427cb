// Package testutil provides shared test helpers and fixtures.
//
// The fixture builder writes a synthetic MANDYOC run directory whose
// values are a known function of the node index and step, so reader tests
// can assert exact values after reshaping.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// RunSpec describes the synthetic run directory to generate.
type RunSpec struct {
	Shape     []int     // nodes per axis, 2 or 3 entries
	Extent    []float64 // meters per axis, same length as Shape
	PrintStep int
	StepMax   int
	Steps     []int // steps to actually write files for
	// Quantities to write scalar files for; nil means temperature only.
	Scalars []string
	// Velocity and Viscosity toggle writing those files.
	Velocity  bool
	Viscosity bool
	// SwarmRanks writes that many swarm rank files per step with
	// SwarmParticles particles each.
	SwarmRanks     int
	SwarmParticles int
}

// ScalarValue is the value the fixture writes for a node: a function of
// the flat Fortran index and the step, so tests can predict any cell.
func ScalarValue(flat, step int) float64 {
	return float64(flat) + float64(step)/10.0
}

// VelocityValue is the value written for one velocity component.
func VelocityValue(flat, component, step int) float64 {
	return float64(flat) + 100.0*float64(component) + float64(step)/10.0
}

// TimeYears is the simulation time the fixture records for a step.
func TimeYears(step int) float64 {
	return float64(step) * 1.0e5
}

// WriteRunDir generates a MANDYOC run directory under t.TempDir() and
// returns its path.
func WriteRunDir(t *testing.T, spec RunSpec) string {
	t.Helper()
	dir := t.TempDir()

	dim := len(spec.Shape)
	if dim != 2 && dim != 3 {
		t.Fatalf("RunSpec.Shape must have 2 or 3 entries, got %d", dim)
	}
	size := 1
	for _, s := range spec.Shape {
		size *= s
	}

	// Parameters file.
	var b strings.Builder
	for i, n := range spec.Shape {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", n)
	}
	b.WriteByte('\n')
	for i, e := range spec.Extent {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g", e)
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "print_step %d\n", spec.PrintStep)
	fmt.Fprintf(&b, "stepMAX %d\n", spec.StepMax)
	fmt.Fprintf(&b, "timeMAX 1.0e6\n")
	fmt.Fprintf(&b, "solver direct\n")
	writeFile(t, filepath.Join(dir, "param_1.5.3.txt"), b.String())

	scalars := spec.Scalars
	if scalars == nil {
		scalars = []string{"temperature"}
	}
	basenames := map[string]string{
		"temperature":      "Temper",
		"density":          "Rho",
		"radiogenic_heat":  "H",
		"viscosity_factor": "Geoq",
		"strain":           "strain",
		"pressure":         "Pressure",
	}

	for _, step := range spec.Steps {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("Tempo_%d.txt", step)),
			fmt.Sprintf("Tempo %g\n", TimeYears(step)))

		for _, quantity := range scalars {
			basename, ok := basenames[quantity]
			if !ok {
				t.Fatalf("unknown scalar quantity %q", quantity)
			}
			var sb strings.Builder
			sb.WriteString("header line 1\nheader line 2\n")
			for flat := 0; flat < size; flat++ {
				fmt.Fprintf(&sb, "%.6e\n", ScalarValue(flat, step))
			}
			writeFile(t, filepath.Join(dir, fmt.Sprintf("%s_%d.txt", basename, step)), sb.String())
		}

		if spec.Velocity {
			var sb strings.Builder
			sb.WriteString("header line 1\nheader line 2\n")
			for flat := 0; flat < size; flat++ {
				for c := 0; c < dim; c++ {
					fmt.Fprintf(&sb, "%.6e\n", VelocityValue(flat, c, step))
				}
			}
			writeFile(t, filepath.Join(dir, fmt.Sprintf("Veloc_fut_%d.txt", step)), sb.String())
		}

		if spec.Viscosity {
			writeViscosity(t, dir, spec, step)
		}

		for rank := 0; rank < spec.SwarmRanks; rank++ {
			var sb strings.Builder
			for p := 0; p < spec.SwarmParticles; p++ {
				id := rank*spec.SwarmParticles + p
				fmt.Fprintf(&sb, "%g %g %g %d\n",
					float64(id)*10.0, -float64(id), -float64(id)*100.0, id%4)
			}
			writeFile(t, filepath.Join(dir, fmt.Sprintf("step_%d-rank%d.txt", step, rank)), sb.String())
		}
	}
	return dir
}

// writeViscosity writes element-centred values split across two rank files
// (or one, for tiny grids): value = flat element index + step/10.
func writeViscosity(t *testing.T, dir string, spec RunSpec, step int) {
	t.Helper()
	dim := len(spec.Shape)
	nx, nz := spec.Shape[0]-1, spec.Shape[dim-1]-1
	ny := 1
	if dim == 3 {
		ny = spec.Shape[1] - 1
	}
	size := nx * ny * nz

	ranks := 2
	if size < 2 {
		ranks = 1
	}
	builders := make([]strings.Builder, ranks)
	for flat := 0; flat < size; flat++ {
		i := flat % nx
		j := (flat / nx) % ny
		k := flat / (nx * ny)
		sb := &builders[flat%ranks]
		if dim == 3 {
			fmt.Fprintf(sb, "%d %d %d %.6e\n", i, j, k, ScalarValue(flat, step))
		} else {
			fmt.Fprintf(sb, "%d %d %.6e\n", i, k, ScalarValue(flat, step))
		}
	}
	for rank := range builders {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("visc_%d_%d.txt", step, rank)), builders[rank].String())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}
