package mandyoc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tectonic-data/mandyoc.report/internal/units"
)

// TimesBasename is the prefix of the per-step time files.
const TimesBasename = "Tempo_"

// ReadSteps discovers the saved steps of a run and the simulation time of
// each one. MANDYOC writes a Tempo_<step>.txt file for every saved step;
// steps are multiples of print_step up to stepMAX, but the run may stop
// early, so discovery ends at the first missing file.
//
// Times are returned in Ma.
func ReadSteps(path string, params *Parameters) (steps []int, times []float64, err error) {
	for step := 0; step <= params.StepMax; step += params.PrintStep {
		filename := filepath.Join(path, fmt.Sprintf("%s%d.txt", TimesBasename, step))
		years, err := readTimeFile(filename)
		if os.IsNotExist(err) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		steps = append(steps, step)
		times = append(times, units.YearsToMa(years))
	}
	if len(steps) == 0 {
		return nil, nil, fmt.Errorf("no %s<step>.txt files found in %s", TimesBasename, path)
	}
	return steps, times, nil
}

// readTimeFile returns the simulation time in years recorded on the first
// line of a Tempo file. The line layout is "<label> <value>".
func readTimeFile(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, err
		}
		return 0, fmt.Errorf("open time file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return 0, fmt.Errorf("time file %s: empty", path)
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < 2 {
		return 0, fmt.Errorf("time file %s: malformed first line %q", path, scanner.Text())
	}
	years, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, fmt.Errorf("time file %s: invalid time %q: %w", path, fields[1], err)
	}
	return years, nil
}
