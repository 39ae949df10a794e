package host

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/document"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// HeadlessPlatform opens headless windows and hands out headless backends.
// It is the default Platform and what tests run the host against.
type HeadlessPlatform struct {
	mu *sync.Mutex

	windowOpts  []window.HeadlessOption
	backendOpts []renderer.HeadlessBackendOption
	contextErr  error

	window  *window.HeadlessPlatform
	backend *renderer.HeadlessBackend
}

var _ Platform = &HeadlessPlatform{}

// HeadlessPlatformOption configures a HeadlessPlatform.
type HeadlessPlatformOption func(p *HeadlessPlatform)

// WithWindowOptions passes options to the headless window platform created by OpenCanvas.
func WithWindowOptions(options ...window.HeadlessOption) HeadlessPlatformOption {
	return func(p *HeadlessPlatform) {
		p.windowOpts = append(p.windowOpts, options...)
	}
}

// WithBackendOptions passes options to the headless backend created by AcquireContext.
func WithBackendOptions(options ...renderer.HeadlessBackendOption) HeadlessPlatformOption {
	return func(p *HeadlessPlatform) {
		p.backendOpts = append(p.backendOpts, options...)
	}
}

// WithContextError makes AcquireContext fail with err.
func WithContextError(err error) HeadlessPlatformOption {
	return func(p *HeadlessPlatform) {
		p.contextErr = err
	}
}

// NewHeadlessPlatform creates a HeadlessPlatform.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *HeadlessPlatform: the platform
func NewHeadlessPlatform(options ...HeadlessPlatformOption) *HeadlessPlatform {
	p := &HeadlessPlatform{mu: &sync.Mutex{}}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *HeadlessPlatform) OpenCanvas(canvas document.Element, title string) (window.Window, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.window != nil {
		return nil, errors.New("headless host platform already opened a canvas")
	}

	wp := window.NewHeadlessPlatform(p.windowOpts...)
	w, err := window.NewWindow(append(CanvasWindowOptions(canvas, title), window.WithPlatform(wp))...)
	if err != nil {
		return nil, err
	}
	p.window = wp
	return w, nil
}

func (p *HeadlessPlatform) AcquireContext(w window.Window) (renderer.RendererBackend, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.contextErr != nil {
		return nil, p.contextErr
	}
	p.backend = renderer.NewHeadlessBackend(p.backendOpts...)
	return p.backend, nil
}

// Window returns the headless window platform opened by OpenCanvas, or nil.
func (p *HeadlessPlatform) Window() *window.HeadlessPlatform {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window
}

// Backend returns the backend created by AcquireContext, or nil.
func (p *HeadlessPlatform) Backend() *renderer.HeadlessBackend {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.backend
}
