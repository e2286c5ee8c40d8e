package report

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type legendEntry struct {
	label string
	thumb plot.Thumbnailer
}

// columnLegend draws legend entries in the top right corner of the data
// area, filled column by column. gonum's plot.Legend only stacks entries
// vertically, so each column is its own plot.Legend.
type columnLegend struct {
	Columns    int
	TextStyle  text.Style
	Background color.Color // drawn behind the entries when not nil
	Gap        vg.Length

	entries []legendEntry
}

func newColumnLegend(columns int, sty text.Style) *columnLegend {
	return &columnLegend{
		Columns:    columns,
		TextStyle:  sty,
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 204}, // 0.8 opacity
		Gap:        vg.Points(6),
	}
}

func (l *columnLegend) Add(label string, thumb plot.Thumbnailer) {
	l.entries = append(l.entries, legendEntry{label: label, thumb: thumb})
}

// Len returns the number of entries.
func (l *columnLegend) Len() int {
	return len(l.entries)
}

// split returns the per-column legends, first column leftmost.
func (l *columnLegend) split() []plot.Legend {
	cols := l.Columns
	if cols < 1 {
		cols = 1
	}
	perCol := (len(l.entries) + cols - 1) / cols
	var out []plot.Legend
	for start := 0; start < len(l.entries); start += perCol {
		end := start + perCol
		if end > len(l.entries) {
			end = len(l.entries)
		}
		leg := plot.NewLegend()
		leg.TextStyle = l.TextStyle
		leg.Top = true
		leg.Left = false
		leg.ThumbnailWidth = vg.Points(16)
		for _, e := range l.entries[start:end] {
			leg.Add(e.label, e.thumb)
		}
		out = append(out, leg)
	}
	return out
}

// Plot implements plot.Plotter.
func (l *columnLegend) Plot(c draw.Canvas, _ *plot.Plot) {
	if len(l.entries) == 0 {
		return
	}
	legends := l.split()

	// Lay the columns out right to left so the last column touches the
	// right edge of the axes.
	inset := vg.Points(4)
	offset := -inset
	right := c.Max.X - inset
	top := c.Max.Y - inset
	var left, bottom vg.Length = right, top
	for i := len(legends) - 1; i >= 0; i-- {
		legends[i].XOffs = offset
		legends[i].YOffs = -inset
		size := legends[i].Rectangle(c).Size()
		left = c.Max.X + offset - size.X
		if y := top - size.Y; y < bottom {
			bottom = y
		}
		offset -= size.X + l.Gap
	}
	bounds := vg.Rectangle{Min: vg.Point{X: left, Y: bottom}, Max: vg.Point{X: right, Y: top}}

	if l.Background != nil {
		pad := vg.Points(2)
		c.FillPolygon(l.Background, []vg.Point{
			{X: bounds.Min.X - pad, Y: bounds.Min.Y - pad},
			{X: bounds.Max.X + pad, Y: bounds.Min.Y - pad},
			{X: bounds.Max.X + pad, Y: bounds.Max.Y + pad},
			{X: bounds.Min.X - pad, Y: bounds.Max.Y + pad},
		})
	}
	for i := range legends {
		legends[i].Draw(c)
	}
}
