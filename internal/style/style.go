package style

import (
	"image/color"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Preferred serif faces, in order.
var PreferredSerif = []string{"Times New Roman", "Computer Modern Roman"}

// Params are the global plotting parameters. Sizes are in points.
type Params struct {
	LabelSize     float64 `yaml:"label_size"`
	TitleSize     float64 `yaml:"title_size"`
	LegendSize    float64 `yaml:"legend_size"`
	XTickSize     float64 `yaml:"xtick_size"`
	YTickSize     float64 `yaml:"ytick_size"`
	AxesLineWidth float64 `yaml:"axes_line_width"`
	LineWidth     float64 `yaml:"line_width"`
	GridAlpha     float64 `yaml:"grid_alpha"`
	FigureDPI     int     `yaml:"figure_dpi"`
	SaveDPI       int     `yaml:"save_dpi"`
	FontFamily    string  `yaml:"font_family"`
	SerifFont     string  `yaml:"serif_font"`
}

// DefaultParams returns the parameter table applied before any figure is built.
func DefaultParams() Params {
	return Params{
		LabelSize:     11,
		TitleSize:     12,
		LegendSize:    9,
		XTickSize:     9,
		YTickSize:     9,
		AxesLineWidth: 0.8,
		LineWidth:     1.5,
		GridAlpha:     0.3,
		FigureDPI:     100,
		SaveDPI:       300,
		FontFamily:    "sans-serif",
	}
}

var (
	mu      sync.RWMutex
	current = DefaultParams()
	face    = font.Font{Typeface: "Liberation", Variant: "Sans"}
)

// Current returns the parameters in effect.
func Current() Params {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Font returns the font descriptor selected by the last Configure call,
// sized to size points.
func Font(size float64) font.Font {
	mu.RLock()
	defer mu.RUnlock()
	f := face
	f.Size = vg.Points(size)
	return f
}

// SerifMatches returns the catalog names containing "serif", case-insensitively.
func SerifMatches(names []string) []string {
	var out []string
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), "serif") {
			out = append(out, n)
		}
	}
	return out
}

// PickSerif chooses the serif face among matches.
func PickSerif(matches []string) (string, bool) {
	if len(matches) == 0 {
		return "", false
	}
	for _, want := range PreferredSerif {
		for _, m := range matches {
			if m == want {
				return m, true
			}
		}
	}
	return matches[0], true
}

// Configure applies params process-wide. The serif face is picked from cat
// unless params already names one that cat provides. Configure must run
// before any figure is built; a later call replaces the earlier settings.
func Configure(cat Catalog, params Params, logger *zap.Logger) Params {
	matches := SerifMatches(cat.Names())

	selected := font.Font{Typeface: "Liberation", Variant: "Sans"}
	if len(matches) == 0 {
		logger.Warn("no serif fonts found, using default fonts")
	} else {
		name, _ := PickSerif(matches)
		if params.SerifFont != "" && len(cat.FacesNamed(params.SerifFont)) > 0 {
			name = params.SerifFont
		}
		faces := cat.FacesNamed(name)
		font.DefaultCache.Add(faces)
		selected = faces[0].Font
		selected.Style, selected.Weight = 0, 0
		params.FontFamily = "serif"
		params.SerifFont = name
		logger.Debug("serif font selected", zap.String("font", name), zap.Int("candidates", len(matches)))
	}

	mu.Lock()
	current = params
	face = selected
	mu.Unlock()

	plot.DefaultFont = selected
	plot.DefaultTextHandler = text.Plain{Fonts: font.DefaultCache}
	plotter.DefaultLineStyle.Width = vg.Points(params.LineWidth)
	plotter.DefaultGlyphStyle.Radius = vg.Points(2.5)

	return params
}

// GridColor is the grid line color at opacity alpha. A zero alpha uses
// the configured GridAlpha.
func GridColor(alpha float64) color.Color {
	if alpha <= 0 {
		alpha = Current().GridAlpha
	}
	return color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: uint8(alpha * 255)}
}
