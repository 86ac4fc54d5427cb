package mandyoc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Swarm holds the Lagrangian tracer particles of one saved step. Each
// particle carries its position in meters and an integer material flag.
// Particles from every MPI rank file of the step are concatenated.
type Swarm struct {
	Step    int
	Time    float64 // Ma
	X, Y, Z []float64
	Flag    []float64
}

// Len returns the particle count.
func (s *Swarm) Len() int { return len(s.X) }

// ReadSwarms reads the particle swarm for every saved step of a run.
// MANDYOC writes one file per rank and step, step_<step>-rank<rank>.txt,
// with whitespace-separated columns x y z flag (further columns, present
// in some builds, are ignored). Rank files are discovered by listing the
// directory, so runs from any processor count load without configuration.
func ReadSwarms(path string, params *Parameters) ([]*Swarm, error) {
	steps, times, err := ReadSteps(path, params)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list run directory: %w", err)
	}

	swarms := make([]*Swarm, 0, len(steps))
	for stepIndex, step := range steps {
		prefix := fmt.Sprintf("step_%d-rank", step)
		nRank := 0
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), prefix) {
				nRank++
			}
		}
		if nRank == 0 {
			return nil, fmt.Errorf("no swarm files %s*.txt in %s", prefix, path)
		}

		swarm := &Swarm{Step: step, Time: times[stepIndex]}
		for rank := 0; rank < nRank; rank++ {
			filename := filepath.Join(path, fmt.Sprintf("step_%d-rank%d.txt", step, rank))
			if err := readSwarmRank(filename, swarm); err != nil {
				return nil, err
			}
		}
		swarms = append(swarms, swarm)
	}
	return swarms, nil
}

func readSwarmRank(path string, swarm *Swarm) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open swarm file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return fmt.Errorf("%s:%d: expected at least 4 columns, got %d", path, line, len(fields))
		}
		row := make([]float64, 4)
		for c := 0; c < 4; c++ {
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return fmt.Errorf("%s:%d: invalid value %q: %w", path, line, fields[c], err)
			}
			row[c] = v
		}
		swarm.X = append(swarm.X, row[0])
		swarm.Y = append(swarm.Y, row[1])
		swarm.Z = append(swarm.Z, row[2])
		swarm.Flag = append(swarm.Flag, row[3])
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read swarm file %s: %w", path, err)
	}
	return nil
}
