package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

type failingProber struct{}

func (failingProber) ScreenSize() (int, int, error) {
	return 0, 0, errors.New("cannot open display")
}

func TestFigureSize(t *testing.T) {
	tests := []struct {
		name   string
		screen Fixed
		want   Size
	}{
		{"large screen clamps", Fixed{1920, 1080}, Size{10, 8}},
		{"small screen", Fixed{800, 600}, Size{8, 6}},
		{"wide but short", Fixed{2560, 700}, Size{10, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FigureSize(tt.screen, DefaultLimits())
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Width, got.Width, 1e-9)
			assert.InDelta(t, tt.want.Height, got.Height, 1e-9)
		})
	}
}

func TestFigureSizeFallsBackOnProbeFailure(t *testing.T) {
	got, err := FigureSize(failingProber{}, DefaultLimits())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open display")
	assert.Equal(t, Size{10, 8}, got)

	got, err = FigureSize(nil, DefaultLimits())
	assert.ErrorIs(t, err, ErrNoScreen)
	assert.Equal(t, Size{10, 8}, got)

	_, err = FigureSize(Fixed{0, 0}, DefaultLimits())
	assert.ErrorIs(t, err, ErrNoScreen)
}

func TestSizeLengths(t *testing.T) {
	w, h := Size{10, 8}.Lengths()
	assert.Equal(t, vg.Points(720), w)
	assert.Equal(t, vg.Points(576), h)
}
