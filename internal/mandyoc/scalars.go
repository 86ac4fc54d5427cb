package mandyoc

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Basenames maps canonical quantity names to the file prefixes MANDYOC
// uses when writing output.
var Basenames = map[string]string{
	"temperature":      "Temper",
	"density":          "Rho",
	"radiogenic_heat":  "H",
	"viscosity_factor": "Geoq",
	"strain":           "strain",
	"pressure":         "Pressure",
	"viscosity":        "visc_",
	"velocity":         "Veloc_fut",
}

// ScalarQuantities lists the quantities stored as one value per grid node,
// in the order they are assembled into a dataset. Velocity is a vector and
// viscosity lives on element centres, so neither appears here.
var ScalarQuantities = []string{
	"temperature",
	"density",
	"radiogenic_heat",
	"viscosity_factor",
	"strain",
	"pressure",
}

// denormalFloor is the magnitude below which values are clamped to zero.
// The Fortran writer prints denormals such as 1.2e-310 for cells that were
// never touched; they carry no information and break downstream math.
const denormalFloor = 1.0e-200

// ReadScalar reads one scalar quantity for one saved step and returns its
// values as a flat slice in Fortran order (x fastest, then y, then z),
// exactly as laid out in the file.
func ReadScalar(path string, quantity string, step int, g *Grid) ([]float64, error) {
	basename, ok := Basenames[quantity]
	if !ok {
		return nil, fmt.Errorf("unknown quantity %q", quantity)
	}
	filename := filepath.Join(path, fmt.Sprintf("%s_%d.txt", basename, step))
	values, err := readValues(filename)
	if err != nil {
		return nil, err
	}
	if err := g.checkCount(len(values), g.Size(), filename); err != nil {
		return nil, err
	}
	return values, nil
}

// readValues parses a MANDYOC data file into a flat float slice. The first
// two lines are header rows and any line starting with "P" is a PETSc
// marker; both are skipped. Values below the denormal floor clamp to zero.
func readValues(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	var values []float64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if line <= 2 || text == "" || strings.HasPrefix(text, "P") {
			continue
		}
		for _, tok := range strings.Fields(text) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: invalid value %q: %w", path, line, tok, err)
			}
			if math.Abs(v) < denormalFloor {
				v = 0
			}
			values = append(values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read data file %s: %w", path, err)
	}
	return values, nil
}
