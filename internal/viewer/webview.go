package viewer

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"
)

//go:embed all:frontend/dist
var assets embed.FS

// WebView shows the figure in a Wails webview window. Binaries must be
// built with the Wails build tags (desktop,production) for it to open.
type WebView struct {
	logger *zap.Logger
}

// NewWebView returns the Wails webview viewer.
func NewWebView(logger *zap.Logger) *WebView {
	return &WebView{logger: logger}
}

// FigureBridge is bound to the frontend, which reads the figure from it.
type FigureBridge struct {
	ctx     context.Context
	parent  context.Context
	title   string
	dataURL string
}

func (b *FigureBridge) startup(ctx context.Context) {
	b.ctx = ctx
	runtime.WindowSetTitle(b.ctx, b.title)
	go func() {
		select {
		case <-b.parent.Done():
			runtime.Quit(b.ctx)
		case <-ctx.Done():
		}
	}()
}

// Figure returns the figure as a PNG data URL.
func (b *FigureBridge) Figure() string {
	return b.dataURL
}

// Title returns the window title.
func (b *FigureBridge) Title() string {
	return b.title
}

// Show runs the Wails app until its window is closed.
func (v *WebView) Show(ctx context.Context, img image.Image, title string) error {
	if !hasDisplay() {
		return ErrNoDisplay
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return fmt.Errorf("failed to encode figure: %w", err)
	}
	bridge := &FigureBridge{
		parent:  ctx,
		title:   title,
		dataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}

	b := img.Bounds()
	v.logger.Debug("opening figure webview", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	err := wails.Run(&options.App{
		Title:  title,
		Width:  b.Dx(),
		Height: b.Dy(),
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 255},
		OnStartup:        bridge.startup,
		Bind: []interface{}{
			bridge,
		},
	})
	if err != nil {
		return fmt.Errorf("webview viewer: %w", err)
	}
	return nil
}
