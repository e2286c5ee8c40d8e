package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/user/polar_plotter/internal/parser"
)

// viridisControls are anchor colors of the viridis map, dark to light.
var viridisControls = []color.Color{
	color.NRGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	color.NRGBA{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	color.NRGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	color.NRGBA{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	color.NRGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

// Viridis returns the viridis color map over [0, 1].
func Viridis() (palette.ColorMap, error) {
	cm, err := moreland.NewLuminance(viridisControls)
	if err != nil {
		return nil, fmt.Errorf("failed to build viridis map: %w", err)
	}
	cm.SetMin(0)
	cm.SetMax(1)
	return cm, nil
}

// MomentCurve is one moment coefficient series of panel D.
type MomentCurve struct {
	Position float64
	Column   string
	Label    string
	Color    color.Color
	Values   []float64
}

// MomentCurves returns one curve per canonical chord station present in t,
// in station order. Colors are spread over all canonical stations so a
// station keeps its color whichever other stations are missing.
func MomentCurves(t *parser.PolarTable) ([]MomentCurve, error) {
	cm, err := Viridis()
	if err != nil {
		return nil, err
	}
	stops := floats.Span(make([]float64, len(parser.ChordPositions)), 0, 1)

	var curves []MomentCurve
	for i, pos := range parser.ChordPositions {
		vals, ok := t.Moment(pos)
		if !ok {
			continue
		}
		c, err := cm.At(stops[i])
		if err != nil {
			return nil, fmt.Errorf("color for x/c=%.2f: %w", pos, err)
		}
		curves = append(curves, MomentCurve{
			Position: pos,
			Column:   parser.MomentColumn(pos),
			Label:    fmt.Sprintf("x/c=%.2f", pos),
			Color:    c,
			Values:   vals,
		})
	}
	return curves, nil
}
