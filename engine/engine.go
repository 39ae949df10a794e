package engine

import (
	"errors"
	"log"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// ErrAlreadyRunning is returned by Run when the render loop has already been started.
var ErrAlreadyRunning = errors.New("engine: render loop already running")

// LoopState is the lifecycle state of the render loop.
type LoopState int32

const (
	// LoopIdle means Run has not been called yet.
	LoopIdle LoopState = iota
	// LoopRunning means Run has been called. There is no way back to idle.
	LoopRunning
)

func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "Idle"
	case LoopRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// engine implements the Engine interface.
// The render function runs once per window message-loop iteration on the goroutine that calls Run.
type engine struct {
	window window.Window
	scene  scene.Scene
	resize *resizeHandler

	state  atomic.Int32
	frames atomic.Uint64

	renderFn atomic.Pointer[func()]

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool
	coalesceResize   bool
}

// Engine drives the render loop of one window and keeps its surface sized to the viewport.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// RunRenderLoop registers the function called once per frame.
	// Replaces any previously registered function; takes effect on the next frame.
	//
	// Parameters:
	//   - fn: the per-frame render function
	RunRenderLoop(fn func())

	// Run transitions the loop from Idle to Running and drives one frame per window
	// message-loop iteration. It blocks until the window stops running.
	//
	// Returns:
	//   - error: ErrAlreadyRunning if Run was called before
	Run() error

	// State reports whether the loop has been started.
	//
	// Returns:
	//   - LoopState: LoopIdle or LoopRunning
	State() LoopState

	// Frames returns the number of completed frames.
	//
	// Returns:
	//   - uint64: completed frame count
	Frames() uint64

	// Viewport returns the latest viewport size reported by the window, including zero-area sizes.
	//
	// Returns:
	//   - common.Size: the latest viewport size
	Viewport() common.Size

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()
}

var _ Engine = &engine{}

// NewEngine creates a render loop driver for w and subscribes to its resize notifications.
// Panics if w is nil.
//
// Parameters:
//   - w: the window frames are driven by
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the idle engine
func NewEngine(w window.Window, options ...EngineBuilderOption) Engine {
	if w == nil {
		panic("engine: NewEngine requires a non-nil Window")
	}

	e := &engine{
		window:   w,
		profiler: profiler.NewProfiler(),
	}
	for _, opt := range options {
		opt(e)
	}

	e.resize = newResizeHandler(e.scene, w.Size(), e.coalesceResize)
	w.SetResizeCallback(e.resize.notify)

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) RunRenderLoop(fn func()) {
	if fn == nil {
		e.renderFn.Store(nil)
		return
	}
	e.renderFn.Store(&fn)
}

func (e *engine) Run() error {
	if !e.state.CompareAndSwap(int32(LoopIdle), int32(LoopRunning)) {
		return ErrAlreadyRunning
	}
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
	return nil
}

func (e *engine) State() LoopState {
	return LoopState(e.state.Load())
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

func (e *engine) Viewport() common.Size {
	return e.resize.latest()
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// frame runs one loop iteration: pending resizes first, then the render function.
// A panic in the render function is logged and the loop continues with the next frame.
func (e *engine) frame() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[engine] render loop recovered from panic: %v", r)
		}
	}()

	e.resize.flush()

	if fn := e.renderFn.Load(); fn != nil {
		(*fn)()
	}
	e.frames.Add(1)

	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}
}
