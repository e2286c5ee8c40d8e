package report

import (
	"bytes"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/user/polar_plotter/internal/parser"
	"github.com/user/polar_plotter/internal/style"
)

const heatmapScaleSteps = 6

// momentGrid exposes the moment curves as a plotter.GridXYZ.
// Columns are samples (by row position), rows are chord stations.
type momentGrid struct {
	curves []MomentCurve
	rows   int
}

func (g momentGrid) Dims() (c, r int)   { return g.rows, len(g.curves) }
func (g momentGrid) Z(c, r int) float64 { return g.curves[r].Values[c] }
func (g momentGrid) X(c int) float64    { return float64(c) }
func (g momentGrid) Y(r int) float64    { return float64(r) }

// CreateMomentHeatmap renders Cm over angle of attack and chord station as
// a PNG heatmap.
func CreateMomentHeatmap(t *parser.PolarTable, curves []MomentCurve) ([]byte, error) {
	if t == nil || t.Rows() == 0 {
		return nil, fmt.Errorf("no polar data to plot heatmap")
	}
	if len(curves) == 0 {
		return nil, fmt.Errorf("no moment stations found for heatmap")
	}

	grid := momentGrid{curves: curves, rows: t.Rows()}
	var values []float64 // finite only; missing cells stay blank
	for _, c := range curves {
		for _, v := range c.Values {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no moment values to plot heatmap")
	}

	params := style.Current()
	p := plot.New()
	p.Title.Text = "Coeficiente de momento por estación"
	p.Title.TextStyle.Font = style.Font(params.TitleSize)
	p.X.Label.Text = angleAxisLabel
	p.X.Label.TextStyle.Font = style.Font(params.LabelSize)
	p.Y.Label.Text = "x/c"
	p.Y.Label.TextStyle.Font = style.Font(params.LabelSize)

	yTicks := make([]plot.Tick, len(curves))
	for i, c := range curves {
		yTicks[i] = plot.Tick{Value: float64(i), Label: fmt.Sprintf("%.2f", c.Position)}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.Y.Min = -0.5
	p.Y.Max = float64(len(curves)) - 0.5

	// X ticks follow the panel A/B annotation cadence, labelled with the angle.
	var xTicks []plot.Tick
	for _, i := range LabelEveryNth(t.Rows(), LabelStride) {
		if math.IsNaN(t.AoA[i]) {
			continue
		}
		xTicks = append(xTicks, plot.Tick{Value: float64(i), Label: angleLabel(t.AoA[i])})
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.X.Min = -0.5
	p.X.Max = float64(t.Rows()) - 0.5

	cm, err := Viridis()
	if err != nil {
		return nil, err
	}
	hm := plotter.NewHeatMap(grid, cm.Palette(64))
	hm.Min = floats.Min(values)
	hm.Max = floats.Max(values)
	if hm.Min == hm.Max {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	lines := plotter.NewGrid()
	lines.Vertical.Color = style.GridColor(0)
	lines.Horizontal.Color = style.GridColor(0)
	p.Add(lines)

	scale := heatmapScale(cm, hm.Min, hm.Max, params.LegendSize)

	img := vgimg.New(vg.Points(800), vg.Points(400))
	dc := draw.New(img)
	r := scale.Rectangle(dc)
	scale.Draw(dc)
	p.Draw(draw.Crop(dc, 0, -(r.Max.X-r.Min.X)-vg.Millimeter, 0, 0))

	buf := new(bytes.Buffer)
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write heatmap to buffer: %v", err)
	}
	return buf.Bytes(), nil
}

// heatmapScale is the color key of the heatmap: heatmapScaleSteps swatches
// from max at the top down to min.
func heatmapScale(cm palette.ColorMap, lo, hi, size float64) plot.Legend {
	cm.SetMin(lo)
	cm.SetMax(hi)
	thumbs := plotter.PaletteThumbnailers(cm.Palette(heatmapScaleSteps))

	l := plot.NewLegend()
	l.Top = true
	l.TextStyle.Font = style.Font(size)
	for i := len(thumbs) - 1; i >= 0; i-- {
		v := lo + float64(i)*(hi-lo)/float64(len(thumbs)-1)
		l.Add(fmt.Sprintf("%.3g", v), thumbs[i])
	}
	return l
}
