package mandyoc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadViscosity reads the element-centred viscosity for every saved step.
// MANDYOC writes one file per MPI rank and step, visc_<step>_<rank>.txt,
// where each row carries the element indices followed by the value
// ("i k value" in 2D, "i j k value" in 3D). The element grid has one fewer
// cell than nodes along every axis.
//
// The rank count observed on the first step must hold for every following
// step; rank files that appeared or vanished mid-run indicate a broken or
// mixed-up output directory.
func ReadViscosity(path string, steps []int, g *Grid) ([][]float64, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list run directory: %w", err)
	}

	shape := g.CenterShape()
	nx := shape[0]
	ny := 1
	if g.Dimension == 3 {
		ny = shape[1]
	}
	size := 1
	for _, s := range shape {
		size *= s
	}

	data := make([][]float64, len(steps))
	nRank := 0
	for stepIndex, step := range steps {
		prefix := fmt.Sprintf("%s%d_", Basenames["viscosity"], step)
		ranks := 0
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), prefix) {
				ranks++
			}
		}
		if stepIndex == 0 {
			nRank = ranks
		} else if ranks != nRank {
			return nil, fmt.Errorf("invalid number of ranks %d for step %d (first step had %d)", ranks, step, nRank)
		}

		values := make([]float64, size)
		for rank := 0; rank < nRank; rank++ {
			filename := filepath.Join(path, fmt.Sprintf("%s%d_%d.txt", Basenames["viscosity"], step, rank))
			if err := readViscosityRank(filename, g.Dimension, nx, ny, values); err != nil {
				return nil, err
			}
		}
		data[stepIndex] = values
	}
	return data, nil
}

func readViscosityRank(path string, dimension, nx, ny int, out []float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open viscosity file: %w", err)
	}
	defer f.Close()

	want := dimension + 1
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != want {
			return fmt.Errorf("%s:%d: expected %d columns, got %d", path, line, want, len(fields))
		}
		indices := make([]int, dimension)
		for c := 0; c < dimension; c++ {
			// Index columns are printed as floats by some MANDYOC builds.
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return fmt.Errorf("%s:%d: invalid element index %q: %w", path, line, fields[c], err)
			}
			indices[c] = int(v)
		}
		value, err := strconv.ParseFloat(fields[dimension], 64)
		if err != nil {
			return fmt.Errorf("%s:%d: invalid viscosity %q: %w", path, line, fields[dimension], err)
		}

		i, j, k := indices[0], 0, indices[dimension-1]
		if dimension == 3 {
			j = indices[1]
		}
		flat := i + nx*(j+ny*k)
		if flat < 0 || flat >= len(out) {
			return fmt.Errorf("%s:%d: element index %v out of range for element grid", path, line, indices)
		}
		out[flat] = value
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read viscosity file %s: %w", path, err)
	}
	return nil
}
