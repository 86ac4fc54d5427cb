package model

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/tectonic-data/mandyoc.report/internal/fsutil"
	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
)

// Default file names for the generated MANDYOC input files.
const (
	TemperatureFile = "input_temperature_0.txt"
	VelocityFile    = "input_velocity_0.txt"
	InterfacesFile  = "interfaces.txt"
)

const (
	temperatureHeader = "T1\nT2\nT3\nT4\n"
	velocityHeader    = "V1\nV2\nV3\nV4\n"
)

// LayerParameters holds the rheological parameters per layer, one value
// per layer from top to bottom. Layers are the regions between
// interfaces, so a set of n interfaces needs n+1 values per parameter.
type LayerParameters struct {
	ViscosityFactor   []float64 `yaml:"viscosity_factor"`
	Density           []float64 `yaml:"density"`
	RadiogenicHeat    []float64 `yaml:"radiogenic_heat"`
	PreFactor         []float64 `yaml:"pre_factor"`
	ExponentialFactor []float64 `yaml:"exponential_factor"`
	ActivationEnergy  []float64 `yaml:"activation_energy"`
	ActivationVolume  []float64 `yaml:"activation_volume"`
}

// flagged returns the parameters with their single-letter file flags, in
// the order the simulation expects them in the interfaces file header.
func (p *LayerParameters) flagged() []struct {
	Flag   string
	Values []float64
} {
	return []struct {
		Flag   string
		Values []float64
	}{
		{"C", p.ViscosityFactor},
		{"rho", p.Density},
		{"H", p.RadiogenicHeat},
		{"A", p.PreFactor},
		{"n", p.ExponentialFactor},
		{"Q", p.ActivationEnergy},
		{"V", p.ActivationVolume},
	}
}

// WriteTemperature writes a temperature distribution as a single column
// in Fortran order, the format the simulation reads at startup.
func WriteTemperature(fs fsutil.FileSystem, path string, g *mandyoc.Grid, temps []float64) error {
	if len(temps) != g.Size() {
		return fmt.Errorf("temperature slice has %d values for a grid of %d nodes", len(temps), g.Size())
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString(temperatureHeader); err != nil {
		f.Close()
		return err
	}
	for _, v := range temps {
		if _, err := w.WriteString(formatValue(v) + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteVelocity writes velocity components interleaved per node, one
// value per line: vx vz for 2D, vx vy vz for 3D.
func WriteVelocity(fs fsutil.FileSystem, path string, g *mandyoc.Grid, components [][]float64) error {
	if len(components) != g.Dimension {
		return fmt.Errorf("got %d velocity components for a %dD grid", len(components), g.Dimension)
	}
	for c, comp := range components {
		if len(comp) != g.Size() {
			return fmt.Errorf("velocity component %d has %d values for a grid of %d nodes", c, len(comp), g.Size())
		}
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString(velocityHeader); err != nil {
		f.Close()
		return err
	}
	for n := 0; n < g.Size(); n++ {
		for _, comp := range components {
			if _, err := w.WriteString(formatValue(comp[n]) + "\n"); err != nil {
				f.Close()
				return err
			}
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteInterfaces writes the interface depths with the layer parameters
// as header lines. Each header line is a parameter flag followed by one
// value per layer; each data row holds the depth of every interface at
// one x node.
func WriteInterfaces(fs fsutil.FileSystem, path string, set *InterfaceSet, params *LayerParameters) error {
	flagged := params.flagged()
	wantLayers := set.Len() + 1
	for _, p := range flagged {
		if p.Values == nil {
			return fmt.Errorf("layer parameter %q is missing: all of C, rho, H, A, n, Q and V must be set", p.Flag)
		}
		if len(p.Values) != wantLayers {
			return fmt.Errorf("layer parameter %q has %d values for %d interfaces: the number of layers must be one more than the number of interfaces", p.Flag, len(p.Values), set.Len())
		}
	}

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, p := range flagged {
		line := p.Flag
		for _, v := range p.Values {
			line += " " + strconv.FormatFloat(v, 'g', -1, 64)
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	for n := range set.X {
		line := ""
		for i, depth := range set.Depths {
			if i > 0 {
				line += " "
			}
			line += formatValue(depth[n])
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteAll writes temperature, velocity and interfaces files into dir.
// Nil pieces are skipped.
func WriteAll(fs fsutil.FileSystem, dir string, g *mandyoc.Grid, temps []float64, velocity [][]float64, set *InterfaceSet, params *LayerParameters) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	if temps != nil {
		if err := WriteTemperature(fs, filepath.Join(dir, TemperatureFile), g, temps); err != nil {
			return err
		}
	}
	if velocity != nil {
		if err := WriteVelocity(fs, filepath.Join(dir, VelocityFile), g, velocity); err != nil {
			return err
		}
	}
	if set != nil {
		if err := WriteInterfaces(fs, filepath.Join(dir, InterfacesFile), set, params); err != nil {
			return err
		}
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'e', 8, 64)
}
