// Package glfwplatform implements window.Platform on GLFW for desktop builds.
// All methods must be called from the OS-locked main goroutine.
package glfwplatform

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Platform is a GLFW-backed window.Platform.
type Platform struct {
	window  *glfw.Window
	running bool
}

var _ window.Platform = &Platform{}

// New creates an unopened GLFW platform.
func New() *Platform {
	return &Platform{}
}

// Open creates the GLFW window with input callbacks.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func (p *Platform) Open(events window.Events, width, height int, title string) (int, int, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return 0, 0, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return 0, 0, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	p.window = win
	p.running = true

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			p.running = false
			win.SetShouldClose(true)
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		events.Scrolled(float32(yoff))
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		xpos, ypos := win.GetCursorPos()
		switch action {
		case glfw.Press:
			events.PointerDown(float32(xpos), float32(ypos))
		case glfw.Release:
			events.PointerUp(float32(xpos), float32(ypos))
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		events.PointerMoved(float32(xpos), float32(ypos))
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		events.Resized(width, height)
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	return fbWidth, fbHeight, nil
}

// SurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func (p *Platform) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if p.window == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(p.window)
}

// PollEvents polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (p *Platform) PollEvents() bool {
	glfw.PollEvents()
	return p.Running()
}

func (p *Platform) Running() bool {
	if p.window == nil {
		return false
	}
	return p.running && !p.window.ShouldClose()
}

// Close destroys the GLFW window and terminates the GLFW library.
func (p *Platform) Close() error {
	if p.window == nil {
		return fmt.Errorf("window is not initialized")
	}
	p.running = false
	p.window.SetShouldClose(true)
	p.window.Destroy()
	p.window = nil
	glfw.Terminate()
	return nil
}
