package engine

import (
	"errors"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// resizeHandler keeps a scene's renderer surface and active camera aspect in step with the viewport.
// Zero-area sizes are recorded but never applied; the surface keeps its last drawable size
// until a non-zero size arrives.
type resizeHandler struct {
	mu *sync.Mutex

	scene    scene.Scene
	coalesce bool

	viewport common.Size
	pending  bool
}

func newResizeHandler(s scene.Scene, initial common.Size, coalesce bool) *resizeHandler {
	return &resizeHandler{
		mu:       &sync.Mutex{},
		scene:    s,
		coalesce: coalesce,
		viewport: initial,
	}
}

// notify is the window resize callback.
func (h *resizeHandler) notify(width, height int) {
	size := common.Size{Width: width, Height: height}

	h.mu.Lock()
	h.viewport = size
	if h.coalesce {
		h.pending = true
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	h.apply(size)
}

// flush applies the latest coalesced size, if any. Called at the start of every frame.
func (h *resizeHandler) flush() {
	h.mu.Lock()
	if !h.pending {
		h.mu.Unlock()
		return
	}
	h.pending = false
	size := h.viewport
	h.mu.Unlock()

	h.apply(size)
}

func (h *resizeHandler) latest() common.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewport
}

func (h *resizeHandler) apply(size common.Size) {
	if h.scene == nil || size.Empty() {
		return
	}

	r := h.scene.Renderer()
	if r.SurfaceSize() != size {
		if err := r.Resize(size.Width, size.Height); err != nil {
			if !errors.Is(err, renderer.ErrReleased) {
				log.Printf("[engine] resize surface to %dx%d: %v", size.Width, size.Height, err)
			}
			return
		}
	}
	if c := h.scene.ActiveCamera(); c != nil {
		c.SetAspect(size.Aspect())
	}
}
