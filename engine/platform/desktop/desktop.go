// Package desktop opens the canvas as a GLFW window and renders into it with WebGPU.
package desktop

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/document"
	"github.com/Carmen-Shannon/oxy-viewer/engine/host"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/wgpubackend"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window/glfwplatform"
)

// Platform implements host.Platform on GLFW and WebGPU.
// OpenCanvas and AcquireContext must be called from the main OS thread.
type Platform struct {
	backendOpts []wgpubackend.BackendBuilderOption
}

var _ host.Platform = &Platform{}

// PlatformOption configures a desktop Platform.
type PlatformOption func(p *Platform)

// WithBackendOptions passes options to the WebGPU backend, such as the MSAA sample count.
func WithBackendOptions(options ...wgpubackend.BackendBuilderOption) PlatformOption {
	return func(p *Platform) {
		p.backendOpts = append(p.backendOpts, options...)
	}
}

// New creates a desktop Platform. The WebGPU backend renders with 4x MSAA unless overridden.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Platform: the platform
func New(options ...PlatformOption) *Platform {
	p := &Platform{
		backendOpts: []wgpubackend.BackendBuilderOption{wgpubackend.WithMSAA(renderer.MSAA4x)},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *Platform) OpenCanvas(canvas document.Element, title string) (window.Window, error) {
	opts := append(host.CanvasWindowOptions(canvas, title), window.WithPlatform(glfwplatform.New()))
	w, err := window.NewWindow(opts...)
	if err != nil {
		return nil, fmt.Errorf("desktop: open #%s: %w", canvas.ID, err)
	}
	return w, nil
}

func (p *Platform) AcquireContext(w window.Window) (renderer.RendererBackend, error) {
	return wgpubackend.New(w, p.backendOpts...)
}
