package report

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/user/polar_plotter/internal/parser"
	"github.com/user/polar_plotter/internal/style"
)

const (
	angleAxisLabel   = "Ángulo de ataque [°]"
	annotationSize   = 8.0
	markerRadius     = 2.5 // 5pt marker diameter
	momentLineWidth  = 1.2
	momentLegendSize = 7.0
	panelGridAlpha   = 0.5
)

var (
	blue      = color.RGBA{B: 255, A: 255}
	red       = color.RGBA{R: 255, A: 255}
	black     = color.RGBA{A: 255}
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	refColor  = color.NRGBA{A: 128} // black at 0.5 opacity
	refStroke = vg.Points(0.8)
)

// marker pairs the white face of a glyph with its colored outline.
type marker struct {
	face, edge draw.GlyphDrawer
}

var (
	circleMarker   = marker{face: draw.CircleGlyph{}, edge: draw.RingGlyph{}}
	squareMarker   = marker{face: draw.BoxGlyph{}, edge: draw.SquareGlyph{}}
	triangleMarker = marker{face: draw.PyramidGlyph{}, edge: draw.TriangleGlyph{}}
)

// Panel is one subplot of the figure along with the annotations and
// reference lines drawn on it.
type Panel struct {
	*plot.Plot

	labels *plotter.Labels // nil when no point is annotated
	refs   []*refLine
}

// addRefs adds zero reference lines to the panel.
func (p *Panel) addRefs(refs ...*refLine) {
	for _, r := range refs {
		p.Add(r)
		p.refs = append(p.refs, r)
	}
}

// newPanel returns an empty panel with titles, fonts and a dotted grid.
func newPanel(title, xLabel, yLabel string, params style.Params) *Panel {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font = style.Font(params.TitleSize)
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font = style.Font(params.LabelSize)
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font = style.Font(params.LabelSize)
	p.X.Tick.Label.Font = style.Font(params.XTickSize)
	p.Y.Tick.Label.Font = style.Font(params.YTickSize)
	p.X.LineStyle.Width = vg.Points(params.AxesLineWidth)
	p.Y.LineStyle.Width = vg.Points(params.AxesLineWidth)

	grid := plotter.NewGrid()
	dotted := draw.LineStyle{
		Color:  style.GridColor(panelGridAlpha),
		Width:  vg.Points(0.5),
		Dashes: []vg.Length{vg.Points(1), vg.Points(2)},
	}
	grid.Vertical = dotted
	grid.Horizontal = dotted
	p.Add(grid)
	return &Panel{Plot: p}
}

func finite(pt plotter.XY) bool {
	return !math.IsNaN(pt.X) && !math.IsNaN(pt.Y) && !math.IsInf(pt.X, 0) && !math.IsInf(pt.Y, 0)
}

// finiteRuns splits xys into the runs between missing points, so a line
// shows a gap where a value is NaN.
func finiteRuns(xys plotter.XYs) []plotter.XYs {
	var runs []plotter.XYs
	var cur plotter.XYs
	for _, pt := range xys {
		if finite(pt) {
			cur = append(cur, pt)
			continue
		}
		if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// addLine adds one line per finite run of xys and returns the first one,
// or an empty line when nothing is finite, for use as legend thumbnail.
func addLine(p *Panel, xys plotter.XYs, sty draw.LineStyle) (*plotter.Line, error) {
	var first *plotter.Line
	for _, run := range finiteRuns(xys) {
		line, err := plotter.NewLine(run)
		if err != nil {
			return nil, fmt.Errorf("failed to create line: %w", err)
		}
		line.LineStyle = sty
		p.Add(line)
		if first == nil {
			first = line
		}
	}
	if first == nil {
		first = &plotter.Line{LineStyle: sty}
	}
	return first, nil
}

// addMarkedLine adds a solid line through xys with white-faced markers.
func addMarkedLine(p *Panel, xys plotter.XYs, c color.Color, m marker, width float64) error {
	if _, err := addLine(p, xys, draw.LineStyle{Color: c, Width: vg.Points(width)}); err != nil {
		return err
	}

	var pts plotter.XYs
	for _, pt := range xys {
		if finite(pt) {
			pts = append(pts, pt)
		}
	}
	if len(pts) == 0 {
		return nil
	}
	face, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("failed to create markers: %w", err)
	}
	face.GlyphStyle = draw.GlyphStyle{Color: white, Radius: vg.Points(markerRadius), Shape: m.face}

	edge, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("failed to create markers: %w", err)
	}
	edge.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(markerRadius), Shape: m.edge}

	p.Add(face, edge)
	return nil
}

// addAnnotations labels the points at idx with their angle of attack.
// Points with a missing coordinate are not labelled.
func addAnnotations(p *Panel, xys plotter.XYs, aoa []float64, idx []int) error {
	var pts plotter.XYs
	var labels []string
	for _, k := range idx {
		if !finite(xys[k]) {
			continue
		}
		pts = append(pts, xys[k])
		labels = append(labels, angleLabel(aoa[k]))
	}
	if len(pts) == 0 {
		return nil
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return fmt.Errorf("failed to create annotations: %w", err)
	}
	l.Offset = vg.Point{X: vg.Points(3), Y: vg.Points(3)}
	for i := range l.TextStyle {
		l.TextStyle[i].Font = style.Font(annotationSize)
	}
	p.Add(l)
	p.labels = l
	return nil
}

// refLine is a reference line across the data area at a fixed coordinate,
// like a zero axis. The coordinate is always inside the axis range.
type refLine struct {
	Vertical bool
	At       float64
	draw.LineStyle
}

func newRefLine(vertical bool, at float64) *refLine {
	return &refLine{
		Vertical:  vertical,
		At:        at,
		LineStyle: draw.LineStyle{Color: refColor, Width: refStroke},
	}
}

// Plot implements plot.Plotter.
func (r *refLine) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	if r.Vertical {
		x := trX(r.At)
		c.StrokeLine2(r.LineStyle, x, c.Min.Y, x, c.Max.Y)
		return
	}
	y := trY(r.At)
	c.StrokeLine2(r.LineStyle, c.Min.X, y, c.Max.X, y)
}

// DataRange implements plot.DataRanger. Only the line's own axis is
// constrained; the infinite bounds leave the other axis to the data.
func (r *refLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	if r.Vertical {
		return r.At, r.At, math.Inf(1), math.Inf(-1)
	}
	return math.Inf(1), math.Inf(-1), r.At, r.At
}

func xyPairs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}

// liftPanel is panel A: angle of attack against Cl.
func liftPanel(t *parser.PolarTable, params style.Params) (*Panel, error) {
	p := newPanel("Coeficiente de sustentación vs ángulo", angleAxisLabel, "Cl", params)
	xys := xyPairs(t.AoA, t.Cl)
	if err := addMarkedLine(p, xys, blue, circleMarker, params.LineWidth); err != nil {
		return nil, fmt.Errorf("lift panel: %w", err)
	}
	if err := addAnnotations(p, xys, t.AoA, LabelEveryNth(t.Rows(), LabelStride)); err != nil {
		return nil, fmt.Errorf("lift panel: %w", err)
	}
	p.addRefs(newRefLine(false, 0))
	return p, nil
}

// dragPanel is panel B: angle of attack against Cd.
func dragPanel(t *parser.PolarTable, params style.Params) (*Panel, error) {
	p := newPanel("Coeficiente de arrastre vs ángulo", angleAxisLabel, "Cd", params)
	xys := xyPairs(t.AoA, t.Cd)
	if err := addMarkedLine(p, xys, red, squareMarker, params.LineWidth); err != nil {
		return nil, fmt.Errorf("drag panel: %w", err)
	}
	if err := addAnnotations(p, xys, t.AoA, LabelEveryNth(t.Rows(), LabelStride)); err != nil {
		return nil, fmt.Errorf("drag panel: %w", err)
	}
	return p, nil
}

// polarPanel is panel C: the drag polar, Cd against Cl.
func polarPanel(t *parser.PolarTable, params style.Params) (*Panel, error) {
	p := newPanel("Polar aerodinámica", "Cd", "Cl", params)
	xys := xyPairs(t.Cd, t.Cl)
	if err := addMarkedLine(p, xys, black, triangleMarker, params.LineWidth); err != nil {
		return nil, fmt.Errorf("polar panel: %w", err)
	}
	if err := addAnnotations(p, xys, t.AoA, LabelMultiplesOf(t.AoA, LabelAngleStep)); err != nil {
		return nil, fmt.Errorf("polar panel: %w", err)
	}
	p.addRefs(newRefLine(false, 0), newRefLine(true, 0))
	return p, nil
}

// momentPanel is panel D: one Cm curve per chord station, with a two
// column legend.
func momentPanel(t *parser.PolarTable, curves []MomentCurve, params style.Params) (*Panel, *columnLegend, error) {
	p := newPanel("Coeficiente de momento", angleAxisLabel, "Cm", params)
	legend := newColumnLegend(2, text.Style{
		Color:   black,
		Font:    style.Font(momentLegendSize),
		XAlign:  text.XLeft,
		YAlign:  text.YCenter,
		Handler: plot.DefaultTextHandler,
	})
	for _, c := range curves {
		thumb, err := addLine(p, xyPairs(t.AoA, c.Values), draw.LineStyle{Color: c.Color, Width: vg.Points(momentLineWidth)})
		if err != nil {
			return nil, nil, fmt.Errorf("moment panel %s: %w", c.Column, err)
		}
		legend.Add(c.Label, thumb)
	}
	p.addRefs(newRefLine(false, 0))
	p.Add(legend)
	return p, legend, nil
}
