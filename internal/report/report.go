// Package report renders an HTML report for a MANDYOC run with go-echarts:
// a scalar heatmap, bulk time-series charts and run metadata on one page.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
	"github.com/tectonic-data/mandyoc.report/internal/units"
)

// viridis is the colour ramp used for heatmap visual maps.
var viridis = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// maxHeatmapCells caps the number of cells sent to the browser; larger
// profiles are downsampled by stride.
const maxHeatmapCells = 20000

// Report builds the charts for one run.
type Report struct {
	ID string
	ds *mandyoc.Dataset
	// Quantity drawn on the heatmap.
	Quantity string
	// StepIndex of the heatmap snapshot; defaults to the last saved step.
	StepIndex int
	// YIndex slices 3D runs for the heatmap.
	YIndex int
}

// New creates a report for a dataset. quantity empty means temperature.
func New(ds *mandyoc.Dataset, quantity string) *Report {
	if quantity == "" {
		quantity = "temperature"
	}
	return &Report{
		ID:        uuid.NewString(),
		ds:        ds,
		Quantity:  quantity,
		StepIndex: len(ds.Steps) - 1,
	}
}

// WriteHTML renders the full report page.
func (r *Report) WriteHTML(w io.Writer) error {
	heatmap, err := r.HeatmapChart()
	if err != nil {
		return err
	}
	series, err := r.TimeSeriesChart()
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("MANDYOC run %s", r.ds.Path)
	page.AddCharts(heatmap, series)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// HeatmapChart renders the configured quantity profile as a heatmap.
func (r *Report) HeatmapChart() (*charts.HeatMap, error) {
	field, err := r.ds.Field(r.Quantity)
	if err != nil {
		return nil, err
	}
	if r.StepIndex < 0 || r.StepIndex >= len(r.ds.Steps) {
		return nil, fmt.Errorf("step index %d out of range (have %d steps)", r.StepIndex, len(r.ds.Steps))
	}
	values, err := field.Profile(r.StepIndex, r.YIndex)
	if err != nil {
		return nil, err
	}
	x, z := r.ds.Grid.X, r.ds.Grid.Z
	if field.OnCenters {
		x, z = mandyoc.CellCenters(x), mandyoc.CellCenters(z)
	}

	// Downsample by stride to keep the page responsive.
	stride := 1
	if len(values) > maxHeatmapCells {
		stride = int(math.Ceil(math.Sqrt(float64(len(values)) / float64(maxHeatmapCells))))
	}

	var xLabels []string
	for i := 0; i < len(x); i += stride {
		xLabels = append(xLabels, fmt.Sprintf("%.0f", units.MetersToKilometers(x[i])))
	}
	var zLabels []string
	for k := 0; k < len(z); k += stride {
		zLabels = append(zLabels, fmt.Sprintf("%.0f", units.MetersToKilometers(z[k])))
	}

	data := make([]opts.HeatMapData, 0, len(xLabels)*len(zLabels))
	min, max := math.Inf(1), math.Inf(-1)
	for ki, k := 0, 0; k < len(z); ki, k = ki+1, k+stride {
		for xi, i := 0, 0; i < len(x); xi, i = xi+1, i+stride {
			v := values[i+len(x)*k]
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{xi, ki, v}})
		}
	}
	if min == max {
		max = min + 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s [%s] - Time: %8.2f Ma", r.Quantity, field.Units, r.ds.Times[r.StepIndex]),
			Subtitle: fmt.Sprintf("report=%s step=%d stride=%d", r.ID, r.ds.Steps[r.StepIndex], stride),
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "x (km)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "z (km)", Data: zLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(min),
			Max:        float32(max),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.SetXAxis(xLabels).AddSeries(r.Quantity, data)
	return hm, nil
}

// TimeSeriesChart renders the bulk evolution of the run: mean of the
// heatmap quantity plus the RMS velocity (in cm/yr) when loaded.
func (r *Report) TimeSeriesChart() (*charts.Line, error) {
	field, err := r.ds.Field(r.Quantity)
	if err != nil {
		return nil, err
	}

	times := make([]string, len(r.ds.Times))
	for i, t := range r.ds.Times {
		times[i] = fmt.Sprintf("%.2f", t)
	}

	means := make([]opts.LineData, len(r.ds.Steps))
	for stepIndex := range r.ds.Steps {
		means[stepIndex] = opts.LineData{Value: stat.Mean(field.Data[stepIndex], nil)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "350px"}),
		charts.WithTitleOpts(opts.Title{Title: "bulk evolution", Subtitle: "report=" + r.ID}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time (Ma)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(times).AddSeries(fmt.Sprintf("mean %s", r.Quantity), means)

	if rms, ok := r.rmsVelocity(); ok {
		line.AddSeries("rms velocity (cm/yr)", rms)
	}
	return line, nil
}

// rmsVelocity computes the RMS velocity per step in cm/yr; ok is false
// when velocity was not loaded.
func (r *Report) rmsVelocity() ([]opts.LineData, bool) {
	if _, err := r.ds.Field("velocity_x"); err != nil {
		return nil, false
	}
	out := make([]opts.LineData, len(r.ds.Steps))
	for stepIndex := range r.ds.Steps {
		mag, err := r.ds.VelocityMagnitude(stepIndex)
		if err != nil {
			return nil, false
		}
		sum := 0.0
		for _, v := range mag {
			sum += v * v
		}
		rms := math.Sqrt(sum / float64(len(mag)))
		out[stepIndex] = opts.LineData{Value: units.MetersPerSecondToCmPerYear(rms)}
	}
	return out, true
}
