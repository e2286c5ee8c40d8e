// Package viewer shows a rendered figure on screen and blocks until the
// user dismisses it.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// Viewer kinds.
const (
	KindWindow  = "window"  // ebiten window
	KindWebView = "webview" // Wails webview
	KindNone    = "none"    // no display, e.g. CI
)

// ErrNoDisplay is returned when no graphical session is available.
var ErrNoDisplay = errors.New("no display available")

// Viewer displays img and returns once the viewer is closed.
type Viewer interface {
	Show(ctx context.Context, img image.Image, title string) error
}

// New returns the viewer of the given kind.
func New(kind string, logger *zap.Logger) (Viewer, error) {
	switch strings.ToLower(kind) {
	case KindWindow, "":
		return NewWindow(logger), nil
	case KindWebView:
		return NewWebView(logger), nil
	case KindNone:
		return None{Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown viewer %q (want %s, %s or %s)", kind, KindWindow, KindWebView, KindNone)
	}
}

// None skips the display step.
type None struct {
	Logger *zap.Logger
}

// Show logs the figure size and returns at once.
func (n None) Show(_ context.Context, img image.Image, title string) error {
	n.Logger.Info("display disabled, not showing figure",
		zap.String("title", title),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return nil
}

// hasDisplay reports whether a graphical session looks reachable.
// Only X11/Wayland platforms can be checked up front.
func hasDisplay() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return true
}
