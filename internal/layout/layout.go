// Package layout sizes the figure so it fits on the screen it is shown on.
package layout

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot/vg"
)

// PixelsPerInch converts screen pixels to figure inches.
const PixelsPerInch = 100

// ErrNoScreen is returned by probers that cannot reach a display.
var ErrNoScreen = errors.New("no screen available")

// ScreenProber reports the display size in pixels.
type ScreenProber interface {
	ScreenSize() (width, height int, err error)
}

// Limits caps the figure size, in inches.
type Limits struct {
	MaxWidth  float64 `yaml:"max_width"`
	MaxHeight float64 `yaml:"max_height"`
}

// DefaultLimits is 10x8 inches.
func DefaultLimits() Limits {
	return Limits{MaxWidth: 10, MaxHeight: 8}
}

// Size is a figure size in inches.
type Size struct {
	Width  float64
	Height float64
}

// Lengths returns the size as vg lengths.
func (s Size) Lengths() (vg.Length, vg.Length) {
	return vg.Length(s.Width) * vg.Inch, vg.Length(s.Height) * vg.Inch
}

func (s Size) String() string {
	return fmt.Sprintf("%.2fx%.2fin", s.Width, s.Height)
}

// FigureSize converts the probed screen size to inches and clamps it to
// limits. When probing fails the limits are returned along with the error
// so headless callers can carry on.
func FigureSize(p ScreenProber, limits Limits) (Size, error) {
	fallback := Size{Width: limits.MaxWidth, Height: limits.MaxHeight}
	if p == nil {
		return fallback, ErrNoScreen
	}
	w, h, err := p.ScreenSize()
	if err != nil {
		return fallback, fmt.Errorf("failed to probe screen: %w", err)
	}
	if w <= 0 || h <= 0 {
		return fallback, fmt.Errorf("%w: reported %dx%d pixels", ErrNoScreen, w, h)
	}
	return Size{
		Width:  math.Min(limits.MaxWidth, float64(w)/PixelsPerInch),
		Height: math.Min(limits.MaxHeight, float64(h)/PixelsPerInch),
	}, nil
}

// Fixed is a ScreenProber reporting a constant size.
type Fixed struct {
	Width, Height int
}

func (f Fixed) ScreenSize() (int, int, error) {
	return f.Width, f.Height, nil
}
