package plotting

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/tectonic-data/mandyoc.report/internal/config"
	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
)

// VectorField draws a velocity arrow at every stride-th grid node of an
// (x, z) profile. gonum/plot has no quiver plotter, so this implements
// plot.Plotter and strokes the shafts and heads itself.
type VectorField struct {
	// X and Z are the node coordinates in km.
	X, Z []float64

	// U and W are the velocity components per node, flat with x fastest.
	U, W []float64

	// Stride keeps one arrow every Stride nodes per axis.
	Stride int

	// Scale converts velocity into arrow length in km. Zero picks a scale
	// that makes the largest arrow span Stride grid cells.
	Scale float64

	LineStyle draw.LineStyle
}

// NewVectorField builds the arrow overlay for one step of a dataset's
// velocity field, slicing 3D runs at yIndex.
func NewVectorField(ds *mandyoc.Dataset, stepIndex, yIndex, stride int) (*VectorField, error) {
	if stride < 1 {
		return nil, fmt.Errorf("stride must be at least 1, got %d", stride)
	}
	names := mandyoc.VelocityComponentNames(ds.Grid.Dimension)
	vx, err := ds.Field(names[0])
	if err != nil {
		return nil, err
	}
	vz, err := ds.Field(names[len(names)-1])
	if err != nil {
		return nil, err
	}
	u, err := vx.Profile(stepIndex, yIndex)
	if err != nil {
		return nil, err
	}
	w, err := vz.Profile(stepIndex, yIndex)
	if err != nil {
		return nil, err
	}
	return &VectorField{
		X:      kilometers(ds.Grid.X),
		Z:      kilometers(ds.Grid.Z),
		U:      u,
		W:      w,
		Stride: stride,
		LineStyle: draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(1),
		},
	}, nil
}

// scale returns the velocity-to-km factor for drawing.
func (vf *VectorField) scale() float64 {
	if vf.Scale > 0 {
		return vf.Scale
	}
	maxMag := 0.0
	for n := range vf.U {
		if mag := math.Hypot(vf.U[n], vf.W[n]); mag > maxMag {
			maxMag = mag
		}
	}
	if maxMag == 0 {
		return 1
	}
	spacing := 0.0
	if len(vf.X) > 1 {
		spacing = vf.X[1] - vf.X[0]
	}
	return float64(vf.Stride) * spacing / maxMag
}

// Plot implements plot.Plotter.
func (vf *VectorField) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	scale := vf.scale()
	nx := len(vf.X)

	for k := 0; k < len(vf.Z); k += vf.Stride {
		for i := 0; i < nx; i += vf.Stride {
			flat := i + nx*k
			u, w := vf.U[flat]*scale, vf.W[flat]*scale
			if u == 0 && w == 0 {
				continue
			}

			x0, y0 := trX(vf.X[i]), trY(vf.Z[k])
			x1, y1 := trX(vf.X[i]+u), trY(vf.Z[k]+w)
			c.StrokeLine2(vf.LineStyle, x0, y0, x1, y1)

			// Arrow head: two short strokes swept back from the tip.
			angle := math.Atan2(float64(y1-y0), float64(x1-x0))
			shaft := math.Hypot(float64(x1-x0), float64(y1-y0))
			head := math.Min(shaft*0.3, float64(vg.Points(4)))
			for _, sweep := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
				hx := x1 + vg.Length(head*math.Cos(angle+sweep))
				hy := y1 + vg.Length(head*math.Sin(angle+sweep))
				c.StrokeLine2(vf.LineStyle, x1, y1, hx, hy)
			}
		}
	}
}

// DataRange implements plot.DataRanger.
func (vf *VectorField) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, x := range vf.X {
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
	}
	for _, z := range vf.Z {
		ymin, ymax = math.Min(ymin, z), math.Max(ymax, z)
	}
	return xmin, xmax, ymin, ymax
}

// VelocityPlot renders velocity arrows, optionally over the heatmap of a
// background scalar (temperature, by convention).
func VelocityPlot(ds *mandyoc.Dataset, background string, stepIndex int, cfg *config.PlotConfig) (*plot.Plot, error) {
	if cfg == nil {
		cfg = &config.PlotConfig{}
	}

	var p *plot.Plot
	if background != "" {
		var err error
		if p, err = ScalarPlot(ds, background, stepIndex, cfg); err != nil {
			return nil, err
		}
		p.Title.Text = fmt.Sprintf("velocity over %s - Time: %8.2f Ma", background, ds.Times[stepIndex])
	} else {
		p = plot.New()
		p.Title.Text = fmt.Sprintf("velocity - Time: %8.2f Ma", ds.Times[stepIndex])
		p.X.Label.Text = "x (km)"
		p.Y.Label.Text = "z (km)"
	}

	vectors, err := NewVectorField(ds, stepIndex, cfg.GetYIndex(), cfg.GetStride())
	if err != nil {
		return nil, err
	}
	p.Add(vectors)
	return p, nil
}
