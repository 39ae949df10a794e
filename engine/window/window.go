package window

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// ErrClosed is returned when an operation needs an open window.
var ErrClosed = errors.New("window: closed")

// Window provides platform windowing and input event handling.
// Wraps a Platform implementation (GLFW on desktop, headless in tests) with a common interface.
// A Window stands in for the canvas element of the host document.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetPointerDownCallback sets the callback for primary pointer button press.
	//
	// Parameters:
	//   - callback: function receiving pointer x, y position in pixels
	SetPointerDownCallback(callback func(x, y float32))

	// SetPointerUpCallback sets the callback for primary pointer button release.
	//
	// Parameters:
	//   - callback: function receiving pointer x, y position in pixels
	SetPointerUpCallback(callback func(x, y float32))

	// SetPointerMoveCallback sets the callback for pointer movement.
	//
	// Parameters:
	//   - callback: function receiving pointer x, y position in pixels
	SetPointerMoveCallback(callback func(x, y float32))

	// Platform returns the platform implementation backing this window.
	// Renderer backends type-assert it to reach native handles.
	//
	// Returns:
	//   - Platform: the backing platform
	Platform() Platform

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources. Closing twice is a no-op.
	//
	// Returns:
	//   - error: error if the platform fails to close
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// Size returns the current framebuffer size.
	//
	// Returns:
	//   - common.Size: width and height in pixels
	Size() common.Size

	// Title returns the window title.
	//
	// Returns:
	//   - string: the title text
	Title() string
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, the platform and event callbacks.
type engineWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	platform Platform
	closed   bool

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(delta float32)
	onPointerDown func(x, y float32)
	onPointerUp   func(x, y float32)
	onPointerMove func(x, y float32)
}

var _ Window = &engineWindow{}
var _ Events = &engineWindow{}

// NewWindow creates and opens a new Window with the specified options.
// Applies default values first, then each option in order. Without WithPlatform the window is headless.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: error if the platform fails to open the window
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		mu:     &sync.Mutex{},
		title:  "oxy-viewer",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.platform == nil {
		w.platform = NewHeadlessPlatform()
	}
	if w.width <= 0 || w.height <= 0 {
		return nil, fmt.Errorf("window: invalid size %dx%d", w.width, w.height)
	}

	fbWidth, fbHeight, err := w.platform.Open(w, w.width, w.height, w.title)
	if err != nil {
		return nil, fmt.Errorf("window: open %q: %w", w.title, err)
	}
	// The framebuffer may differ from the requested size on high-DPI displays.
	w.width = fbWidth
	w.height = fbHeight
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onScroll = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(x, y float32)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(x, y float32)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(x, y float32)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onPointerMove = callback
}

func (w *engineWindow) Platform() Platform {
	return w.platform
}

func (w *engineWindow) IsRunning() bool {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	return !closed && w.platform.Running()
}

func (w *engineWindow) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	return w.platform.Close()
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := w.platform.PollEvents(); !succ {
			break
		}

		w.mu.Lock()
		onUpdate := w.onUpdate
		w.mu.Unlock()
		if onUpdate != nil {
			onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *engineWindow) Size() common.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return common.Size{Width: w.width, Height: w.height}
}

func (w *engineWindow) Title() string {
	return w.title
}

// Resized records the new framebuffer size and forwards it to the resize callback.
func (w *engineWindow) Resized(width, height int) {
	w.mu.Lock()
	w.width = width
	w.height = height
	cb := w.onResize
	w.mu.Unlock()
	if cb != nil {
		cb(width, height)
	}
}

func (w *engineWindow) Scrolled(delta float32) {
	w.mu.Lock()
	cb := w.onScroll
	w.mu.Unlock()
	if cb != nil {
		cb(delta)
	}
}

func (w *engineWindow) PointerDown(x, y float32) {
	w.mu.Lock()
	cb := w.onPointerDown
	w.mu.Unlock()
	if cb != nil {
		cb(x, y)
	}
}

func (w *engineWindow) PointerUp(x, y float32) {
	w.mu.Lock()
	cb := w.onPointerUp
	w.mu.Unlock()
	if cb != nil {
		cb(x, y)
	}
}

func (w *engineWindow) PointerMoved(x, y float32) {
	w.mu.Lock()
	cb := w.onPointerMove
	w.mu.Unlock()
	if cb != nil {
		cb(x, y)
	}
}
