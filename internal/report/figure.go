package report

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/user/polar_plotter/internal/layout"
	"github.com/user/polar_plotter/internal/parser"
	"github.com/user/polar_plotter/internal/style"
)

// FigureTitle is drawn above the four panels.
const FigureTitle = "Análisis de Polar Aerodinámica"

const figureTitleSize = 14.0

// Figure is the 2x2 diagnostic figure of one polar table.
//
//	A: Cl vs AoA    B: Cd vs AoA
//	C: Cl vs Cd     D: Cm vs AoA
type Figure struct {
	Title  string
	Panels [2][2]*Panel
	Curves []MomentCurve

	legend *columnLegend
}

// NewFigure builds the four panels of t. Style must already be configured;
// params is normally style.Current(). A table without rows gives empty axes.
func NewFigure(t *parser.PolarTable, params style.Params) (*Figure, error) {
	if t == nil {
		return nil, fmt.Errorf("no polar table to plot")
	}
	curves, err := MomentCurves(t)
	if err != nil {
		return nil, err
	}

	f := &Figure{Title: FigureTitle, Curves: curves}
	if f.Panels[0][0], err = liftPanel(t, params); err != nil {
		return nil, err
	}
	if f.Panels[0][1], err = dragPanel(t, params); err != nil {
		return nil, err
	}
	if f.Panels[1][0], err = polarPanel(t, params); err != nil {
		return nil, err
	}
	if f.Panels[1][1], f.legend, err = momentPanel(t, curves, params); err != nil {
		return nil, err
	}
	return f, nil
}

// LegendLabels returns the moment panel legend entries in order.
func (f *Figure) LegendLabels() []string {
	labels := make([]string, 0, f.legend.Len())
	for _, e := range f.legend.entries {
		labels = append(labels, e.label)
	}
	return labels
}

// Draw draws the title and the panel grid onto dc.
func (f *Figure) Draw(dc draw.Canvas) {
	titleFont := style.Font(figureTitleSize)
	titleFont.Weight = xfont.WeightBold
	titleStyle := text.Style{
		Color:   black,
		Font:    titleFont,
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
	pad := vg.Points(6)
	titleBand := titleStyle.Height(f.Title) + 2*pad

	dc.FillText(titleStyle, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - pad}, f.Title)

	body := draw.Crop(dc, 0, 0, 0, -titleBand)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Points(24),
		PadY:      vg.Points(24),
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(8),
	}
	plots := [][]*plot.Plot{
		{f.Panels[0][0].Plot, f.Panels[0][1].Plot},
		{f.Panels[1][0].Plot, f.Panels[1][1].Plot},
	}
	canvases := plot.Align(plots, tiles, body)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}
}

// Render draws the figure onto a raster canvas of the given size and dpi.
func (f *Figure) Render(size layout.Size, dpi int) *vgimg.Canvas {
	w, h := size.Lengths()
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	f.Draw(draw.New(c))
	return c
}

// Image renders the figure to an image.
func (f *Figure) Image(size layout.Size, dpi int) image.Image {
	return f.Render(size, dpi).Image()
}

// WritePNG encodes the figure as PNG to w.
func (f *Figure) WritePNG(w io.Writer, size layout.Size, dpi int) error {
	png := vgimg.PngCanvas{Canvas: f.Render(size, dpi)}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write figure PNG: %w", err)
	}
	return nil
}

// PNG returns the figure encoded as PNG.
func (f *Figure) PNG(size layout.Size, dpi int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := f.WritePNG(buf, size, dpi); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePNG writes the figure to path.
func (f *Figure) SavePNG(path string, size layout.Size, dpi int) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := f.WritePNG(out, size, dpi); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
