package host

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/bridge"
	"github.com/Carmen-Shannon/oxy-viewer/engine/document"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
)

// HostBuilderOption is a functional option for configuring a RenderHost.
type HostBuilderOption func(h *renderHost)

// WithDocument sets the host document holding the canvas and the mount element. Required.
//
// Parameters:
//   - doc: the parsed host document
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithDocument(doc document.Document) HostBuilderOption {
	return func(h *renderHost) {
		h.doc = doc
	}
}

// WithCanvasID sets the ID of the <canvas> element to render into. Defaults to "renderCanvas".
//
// Parameters:
//   - id: the canvas element ID
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithCanvasID(id string) HostBuilderOption {
	return func(h *renderHost) {
		h.canvasID = id
	}
}

// WithMountID sets the ID of the element the UI is mounted on. Defaults to "app".
//
// Parameters:
//   - id: the mount element ID
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithMountID(id string) HostBuilderOption {
	return func(h *renderHost) {
		h.mountID = id
	}
}

// WithPlatform sets the platform that opens the canvas window and acquires the GPU context.
// Defaults to a HeadlessPlatform.
//
// Parameters:
//   - p: the platform
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithPlatform(p Platform) HostBuilderOption {
	return func(h *renderHost) {
		h.platform = p
	}
}

// WithUI sets the UI mounted on the mount element. Without a UI the mount element is still required.
//
// Parameters:
//   - ui: the UI to mount
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithUI(ui bridge.UI) HostBuilderOption {
	return func(h *renderHost) {
		h.ui = ui
	}
}

// WithClearColor sets the scene background color. Defaults to (0.1, 0.1, 0.15) with alpha 1.
//
// Parameters:
//   - color: the RGBA clear color
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithClearColor(color common.Color4) HostBuilderOption {
	return func(h *renderHost) {
		h.clearColor = color
	}
}

// WithPresentMode sets the presentation mode of the renderer. Defaults to VSync.
//
// Parameters:
//   - mode: the present mode
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithPresentMode(mode renderer.PresentMode) HostBuilderOption {
	return func(h *renderHost) {
		h.presentMode = mode
	}
}

// WithProfiling enables or disables per-second FPS and memory logging.
//
// Parameters:
//   - enabled: if true, profiling output is logged
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithProfiling(enabled bool) HostBuilderOption {
	return func(h *renderHost) {
		h.profiling = enabled
	}
}

// WithResizeCoalescing applies only the latest resize at the start of each frame.
//
// Parameters:
//   - enabled: if true, resizes are coalesced per frame
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithResizeCoalescing(enabled bool) HostBuilderOption {
	return func(h *renderHost) {
		h.coalesceResize = enabled
	}
}
