package viewer

import (
	"context"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Window shows the figure in a desktop window drawn with ebiten. It also
// reports the monitor size, so it doubles as the layout screen prober.
type Window struct {
	logger *zap.Logger
}

// NewWindow returns the ebiten window viewer.
func NewWindow(logger *zap.Logger) *Window {
	return &Window{logger: logger}
}

// ScreenSize returns the size of the current monitor in pixels.
func (w *Window) ScreenSize() (width, height int, err error) {
	if !hasDisplay() {
		return 0, 0, ErrNoDisplay
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("monitor query failed: %v", r)
		}
	}()
	m := ebiten.Monitor()
	if m == nil {
		return 0, 0, ErrNoDisplay
	}
	width, height = m.Size()
	return width, height, nil
}

// Show opens a window sized to img and blocks until it is closed or ctx is done.
// ebiten allows a single game loop per process, so Show can only run once.
func (w *Window) Show(ctx context.Context, img image.Image, title string) (err error) {
	if !hasDisplay() {
		return ErrNoDisplay
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("window viewer failed: %v", r)
		}
	}()

	b := img.Bounds()
	g := &figureGame{ctx: ctx, src: img, width: b.Dx(), height: b.Dy()}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	w.logger.Debug("opening figure window", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window viewer: %w", err)
	}
	return nil
}

type figureGame struct {
	ctx           context.Context
	src           image.Image
	img           *ebiten.Image
	width, height int
}

func (g *figureGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

func (g *figureGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImageFromImage(g.src)
	}
	screen.DrawImage(g.img, nil)
}

func (g *figureGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
