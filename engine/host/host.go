package host

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/bridge"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/document"
	"github.com/Carmen-Shannon/oxy-viewer/engine/factory"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// Default element IDs looked up in the host document.
const (
	DefaultCanvasID = "renderCanvas"
	DefaultMountID  = "app"
)

// RenderHost owns the window, the rendering context and the scene built on them,
// and hands a bridge to the mounted UI.
type RenderHost interface {
	// Window returns the canvas window.
	Window() window.Window

	// Renderer returns the rendering context bound to the canvas window.
	Renderer() renderer.Renderer

	// Scene returns the populated scene.
	Scene() scene.Scene

	// Primitives returns the camera, light, sphere and ground created at startup.
	Primitives() factory.Primitives

	// Bridge returns the bridge handed to the UI.
	Bridge() bridge.Bridge

	// Engine returns the render loop driver.
	Engine() engine.Engine

	// Run starts the render loop and blocks until the window stops running.
	//
	// Returns:
	//   - error: engine.ErrAlreadyRunning if called twice
	Run() error

	// Close detaches input, closes the UI if it is an io.Closer, releases the renderer and
	// closes the window. Safe to call multiple times.
	//
	// Returns:
	//   - error: the UI close error, if any
	Close() error
}

type renderHost struct {
	doc            document.Document
	canvasID       string
	mountID        string
	platform       Platform
	ui             bridge.UI
	clearColor     common.Color4
	presentMode    renderer.PresentMode
	profiling      bool
	coalesceResize bool

	window     window.Window
	renderer   renderer.Renderer
	scene      scene.Scene
	primitives factory.Primitives
	bridge     bridge.Bridge
	engine     engine.Engine

	closeOnce sync.Once
	closeErr  error
}

var _ RenderHost = &renderHost{}

// NewRenderHost binds a rendering context to the canvas element of the host document,
// populates the scene, records the initial camera state, and mounts the UI.
// On any failure everything created so far is released and no host is returned.
//
// Parameters:
//   - options: functional options; WithDocument is required
//
// Returns:
//   - RenderHost: the initialized host with an idle render loop
//   - error: *InitializationError, *MountTargetMissing, a wrapped UI mount error, or ErrNoDocument
func NewRenderHost(options ...HostBuilderOption) (RenderHost, error) {
	h := &renderHost{
		canvasID:    DefaultCanvasID,
		mountID:     DefaultMountID,
		clearColor:  common.NewColor3(0.1, 0.1, 0.15).ToColor4(),
		presentMode: renderer.PresentModeVSync,
	}
	for _, opt := range options {
		opt(h)
	}
	if h.doc == nil {
		return nil, ErrNoDocument
	}
	if h.platform == nil {
		h.platform = NewHeadlessPlatform()
	}

	if err := h.bindContext(); err != nil {
		return nil, err
	}

	h.scene = scene.NewScene(h.renderer, scene.WithName("main"), scene.WithClearColor(h.clearColor))
	prims, err := factory.Populate(h.scene, h.window)
	if err != nil {
		h.release()
		return nil, fmt.Errorf("host: populate scene: %w", err)
	}
	h.primitives = prims

	// Taken after controls are attached and before any frame or UI input can move the camera.
	snapshot := camera.TakeSnapshot(prims.Camera)

	h.engine = engine.NewEngine(h.window,
		engine.WithScene(h.scene),
		engine.WithProfiling(h.profiling),
		engine.WithResizeCoalescing(h.coalesceResize),
	)
	h.engine.RunRenderLoop(h.renderFrame)
	h.bridge = bridge.New(h.scene, prims.Camera, prims.Sphere, snapshot, bridge.WithFrameCounter(h.renderer.Frames))

	if err := h.mountUI(); err != nil {
		h.release()
		return nil, err
	}
	return h, nil
}

// bindContext opens the canvas window and binds a renderer to it.
func (h *renderHost) bindContext() error {
	canvas, ok := h.doc.ElementByID(h.canvasID)
	if !ok {
		return &InitializationError{ElementID: h.canvasID, Err: ErrCanvasNotFound}
	}
	if !strings.EqualFold(canvas.Tag, "canvas") {
		return &InitializationError{ElementID: h.canvasID, Err: fmt.Errorf("%w: <%s>", ErrNotCanvas, canvas.Tag)}
	}

	w, err := h.platform.OpenCanvas(canvas, h.doc.Title())
	if err != nil {
		return &InitializationError{ElementID: h.canvasID, Err: fmt.Errorf("open canvas window: %w", err)}
	}

	backend, err := h.platform.AcquireContext(w)
	if err != nil {
		w.Close()
		return &InitializationError{ElementID: h.canvasID, Err: fmt.Errorf("%w: %w", ErrContextUnavailable, err)}
	}

	r, err := renderer.NewRenderer(w, backend, renderer.WithPresentMode(h.presentMode), renderer.WithLabel("#"+h.canvasID))
	if err != nil {
		backend.Release()
		w.Close()
		return &InitializationError{ElementID: h.canvasID, Err: fmt.Errorf("%w: %w", ErrContextUnavailable, err)}
	}

	h.window = w
	h.renderer = r
	return nil
}

func (h *renderHost) mountUI() error {
	target, ok := h.doc.ElementByID(h.mountID)
	if !ok {
		return &MountTargetMissing{ElementID: h.mountID}
	}
	if h.ui == nil {
		log.Printf("[host] no UI configured for #%s", h.mountID)
		return nil
	}
	if err := h.ui.Mount(target, h.bridge); err != nil {
		return fmt.Errorf("host: mount UI on #%s: %w", h.mountID, err)
	}
	return nil
}

func (h *renderHost) renderFrame() {
	if err := h.scene.Render(); err != nil {
		log.Printf("[host] frame %d: %v", h.renderer.Frames(), err)
	}
}

func (h *renderHost) Window() window.Window {
	return h.window
}

func (h *renderHost) Renderer() renderer.Renderer {
	return h.renderer
}

func (h *renderHost) Scene() scene.Scene {
	return h.scene
}

func (h *renderHost) Primitives() factory.Primitives {
	return h.primitives
}

func (h *renderHost) Bridge() bridge.Bridge {
	return h.bridge
}

func (h *renderHost) Engine() engine.Engine {
	return h.engine
}

func (h *renderHost) Run() error {
	return h.engine.Run()
}

func (h *renderHost) Close() error {
	h.closeOnce.Do(func() {
		if closer, ok := h.ui.(io.Closer); ok {
			h.closeErr = closer.Close()
		}
		h.release()
	})
	return h.closeErr
}

// release frees the GPU and window resources.
func (h *renderHost) release() {
	if h.primitives.Camera != nil {
		h.primitives.Camera.DetachControl()
	}
	if h.renderer != nil {
		h.renderer.Release()
	}
	if h.window != nil {
		if err := h.window.Close(); err != nil && !errors.Is(err, window.ErrClosed) {
			log.Printf("[host] close window: %v", err)
		}
	}
}
