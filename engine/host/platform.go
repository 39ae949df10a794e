package host

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/document"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// Default canvas size used when the <canvas> element has no usable width or height attribute.
const (
	DefaultCanvasWidth  = 1280
	DefaultCanvasHeight = 720
)

// Platform turns a canvas element into a window and a window into a rendering context.
type Platform interface {
	// OpenCanvas creates the window that stands in for the canvas element.
	//
	// Parameters:
	//   - canvas: the <canvas> element from the host document
	//   - title: the host document title
	//
	// Returns:
	//   - window.Window: the opened window
	//   - error: error if the window cannot be created
	OpenCanvas(canvas document.Element, title string) (window.Window, error)

	// AcquireContext creates a GPU backend bound to the window surface.
	//
	// Parameters:
	//   - w: a window returned by OpenCanvas
	//
	// Returns:
	//   - renderer.RendererBackend: the backend
	//   - error: error if no context can be created
	AcquireContext(w window.Window) (renderer.RendererBackend, error)
}

// CanvasWindowOptions translates a canvas element into window options: size from the
// width and height attributes and the document title.
//
// Parameters:
//   - canvas: the <canvas> element
//   - title: the window title; empty keeps the window default
//
// Returns:
//   - []window.WindowBuilderOption: options for window.NewWindow
func CanvasWindowOptions(canvas document.Element, title string) []window.WindowBuilderOption {
	opts := []window.WindowBuilderOption{
		window.WithWidth(canvas.IntAttr("width", DefaultCanvasWidth)),
		window.WithHeight(canvas.IntAttr("height", DefaultCanvasHeight)),
	}
	if title != "" {
		opts = append(opts, window.WithTitle(title))
	}
	return opts
}
