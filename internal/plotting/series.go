package plotting

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/tectonic-data/mandyoc.report/internal/config"
	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
)

// FormatTimestamp generates a timestamp string for directory naming.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// MakeOutputDir creates a timestamped output directory for a plot series:
// <base>/<run name>/<timestamp>.
func MakeOutputDir(baseDir, runPath string) (string, error) {
	dir := filepath.Join(baseDir, filepath.Base(filepath.Clean(runPath)), FormatTimestamp(time.Now()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	return dir, nil
}

// SaveScalarSeries writes one heatmap PNG per saved step of a quantity,
// named <quantity><step>.png with the step zero-padded to five digits.
// Returns the number of files written.
func SaveScalarSeries(ds *mandyoc.Dataset, quantity, outDir string, cfg *config.PlotConfig) (int, error) {
	if cfg == nil {
		cfg = &config.PlotConfig{}
	}
	for stepIndex, step := range ds.Steps {
		p, err := ScalarPlot(ds, quantity, stepIndex, cfg)
		if err != nil {
			return stepIndex, err
		}
		filename := filepath.Join(outDir, fmt.Sprintf("%s%05d.png", quantity, step))
		if err := SavePlot(p, filename, cfg); err != nil {
			return stepIndex, err
		}
	}
	log.Printf("%s plots saved in %s", quantity, outDir)
	return len(ds.Steps), nil
}

// SaveVelocitySeries writes one arrow-field PNG per saved step, arrows
// over the background scalar when one is loaded.
func SaveVelocitySeries(ds *mandyoc.Dataset, background, outDir string, cfg *config.PlotConfig) (int, error) {
	if cfg == nil {
		cfg = &config.PlotConfig{}
	}
	for stepIndex, step := range ds.Steps {
		p, err := VelocityPlot(ds, background, stepIndex, cfg)
		if err != nil {
			return stepIndex, err
		}
		filename := filepath.Join(outDir, fmt.Sprintf("velocity%05d.png", step))
		if err := SavePlot(p, filename, cfg); err != nil {
			return stepIndex, err
		}
	}
	log.Printf("velocity plots saved in %s", outDir)
	return len(ds.Steps), nil
}

// SavePlot writes a plot as PNG using the configured figure size.
func SavePlot(p *plot.Plot, filename string, cfg *config.PlotConfig) error {
	w := vg.Length(cfg.GetFigureWidth()) * vg.Inch
	h := vg.Length(cfg.GetFigureHeight()) * vg.Inch
	if err := p.Save(w, h, filename); err != nil {
		return fmt.Errorf("save plot %s: %w", filename, err)
	}
	return nil
}
