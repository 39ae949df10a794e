package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

var (
	// ErrSurfaceOwned is returned when a window is already bound to another Renderer.
	ErrSurfaceOwned = errors.New("renderer: window surface already owned by another renderer")

	// ErrEmptySurface is returned when asked to configure a zero-area surface.
	ErrEmptySurface = errors.New("renderer: surface size has zero area")

	// ErrReleased is returned by operations on a released Renderer.
	ErrReleased = errors.New("renderer: released")
)

// surfaceOwners maps each bound window to the renderer that owns its surface.
var (
	surfaceOwnersMu sync.Mutex
	surfaceOwners   = map[window.Window]*renderer{}
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	label   string
	window  window.Window
	backend RendererBackend

	presentMode PresentMode
	surface     common.Size
	inFrame     bool
	frames      uint64
	released    bool
}

// Renderer is the rendering Context: the GPU drawing context bound to exactly one window surface.
//
// This is a high-level API over a RendererBackend that tracks the configured surface size,
// frame bracketing and presentation count. One Renderer owns one window; a second Renderer
// for the same window is refused.
type Renderer interface {
	// Window returns the window whose surface this Renderer owns.
	//
	// Returns:
	//   - window.Window: the bound window
	Window() window.Window

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: ErrEmptySurface for a zero-area size, or the backend error
	Resize(width, height int) error

	// SurfaceSize returns the size the surface was last configured with.
	// It is empty until a non-zero size has been applied.
	//
	// Returns:
	//   - common.Size: the configured surface size
	SurfaceSize() common.Size

	// PresentMode returns the present mode in effect.
	//
	// Returns:
	//   - PresentMode: the current mode
	PresentMode() PresentMode

	// SetPresentMode sets the surface present mode and reconfigures the surface at its current size.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	//
	// Returns:
	//   - error: error if reconfiguration fails
	SetPresentMode(mode PresentMode) error

	// UploadMesh marshals geometry and creates GPU vertex and index buffers for it.
	//
	// Parameters:
	//   - label: debug label, usually the mesh name
	//   - vertices: the mesh vertices
	//   - indices: triangle list indices into vertices
	//
	// Returns:
	//   - MeshHandle: the handle to pass to Draw
	//   - error: an error if buffer creation fails
	UploadMesh(label string, vertices []GPUVertex, indices []uint32) (MeshHandle, error)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	// Must be paired with EndFrame after all Draw invocations within a single frame.
	//
	// Parameters:
	//   - clear: the color the render target is cleared to
	//   - frame: camera and light data for this frame
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame(clear common.Color4, frame FrameUniform) error

	// Draw encodes a single draw command within the current render pass.
	//
	// Parameters:
	//   - handle: the mesh to draw
	//   - object: model matrix and material for the draw
	//
	// Returns:
	//   - error: an error if no frame is in progress or the handle is unknown
	Draw(handle MeshHandle, object ObjectUniform) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Frames returns the number of frames presented.
	//
	// Returns:
	//   - uint64: presented frame count
	Frames() uint64

	// Release frees the backend and gives up ownership of the window surface. Releasing twice is a no-op.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer binds a backend to the window surface and configures the surface at the window size.
// A window whose framebuffer is currently zero-area is bound but left unconfigured until Resize.
//
// Parameters:
//   - w: the window whose surface the renderer draws to
//   - backend: the GPU backend acquired for w
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the bound renderer
//   - error: ErrSurfaceOwned if w is already bound, or a surface configuration error
func NewRenderer(w window.Window, backend RendererBackend, options ...RendererBuilderOption) (Renderer, error) {
	if w == nil {
		panic("renderer: NewRenderer requires a non-nil Window")
	}
	if backend == nil {
		panic("renderer: NewRenderer requires a non-nil RendererBackend")
	}

	r := &renderer{
		mu:          &sync.Mutex{},
		label:       "Main Renderer",
		window:      w,
		backend:     backend,
		presentMode: PresentModeVSync,
	}
	for _, opt := range options {
		opt(r)
	}

	surfaceOwnersMu.Lock()
	if _, owned := surfaceOwners[w]; owned {
		surfaceOwnersMu.Unlock()
		return nil, ErrSurfaceOwned
	}
	surfaceOwners[w] = r
	surfaceOwnersMu.Unlock()

	backend.SetPresentMode(r.presentMode)

	size := w.Size()
	if !size.Empty() {
		if err := backend.ConfigureSurface(size.Width, size.Height); err != nil {
			r.disown()
			return nil, fmt.Errorf("renderer: configure surface %dx%d: %w", size.Width, size.Height, err)
		}
		r.surface = size
	}
	return r, nil
}

func (r *renderer) Window() window.Window {
	return r.window
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}
	size := common.Size{Width: width, Height: height}
	if size.Empty() {
		return ErrEmptySurface
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("renderer: configure surface %dx%d: %w", width, height, err)
	}
	r.surface = size
	return nil
}

func (r *renderer) SurfaceSize() common.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surface
}

func (r *renderer) PresentMode() PresentMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presentMode
}

func (r *renderer) SetPresentMode(mode PresentMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	if r.surface.Empty() {
		return nil
	}
	return r.backend.ConfigureSurface(r.surface.Width, r.surface.Height)
}

func (r *renderer) UploadMesh(label string, vertices []GPUVertex, indices []uint32) (MeshHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return 0, ErrReleased
	}
	if len(vertices) == 0 || len(indices) == 0 {
		return 0, fmt.Errorf("renderer: mesh %q has no geometry", label)
	}
	return r.backend.UploadMesh(label, MarshalVertices(vertices), MarshalIndices(indices), len(indices))
}

func (r *renderer) BeginFrame(clear common.Color4, frame FrameUniform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}
	if r.inFrame {
		return fmt.Errorf("renderer: previous frame not ended")
	}
	if r.surface.Empty() {
		return ErrEmptySurface
	}
	if err := r.backend.BeginFrame(clear, frame); err != nil {
		return err
	}
	r.inFrame = true
	return nil
}

func (r *renderer) Draw(handle MeshHandle, object ObjectUniform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}
	if !r.inFrame {
		return fmt.Errorf("renderer: Draw called outside BeginFrame/EndFrame")
	}
	return r.backend.DrawMesh(handle, object)
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return
	}
	r.backend.EndFrame()
	r.inFrame = false
}

func (r *renderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.backend.Present()
	r.frames++
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Release() {
	r.mu.Lock()
	if r.released {
		r.mu.Unlock()
		return
	}
	r.released = true
	r.inFrame = false
	r.backend.Release()
	r.mu.Unlock()

	r.disown()
}

func (r *renderer) disown() {
	surfaceOwnersMu.Lock()
	defer surfaceOwnersMu.Unlock()
	if surfaceOwners[r.window] == r {
		delete(surfaceOwners, r.window)
	}
}
