package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	name     string
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	controller *controllerImpl
}

// State is a consistent copy of every camera parameter taken under one lock.
type State struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fov      float32
	Aspect   float32
	Near     float32
	Far      float32
}

// Camera defines the interface for a free perspective camera looking from a position at a target.
// Orientation is fully determined by position, target and the up vector, so restoring position
// and target restores the view.
//
// All methods are safe to call from any goroutine. Writes made between two frames are observed
// by the next frame.
type Camera interface {
	// Name returns the camera identifier.
	//
	// Returns:
	//   - string: the camera name
	Name() string

	// Position returns the world-space camera position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Target returns the world-space look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// State returns position, target and projection parameters read atomically.
	//
	// Returns:
	//   - State: the camera state
	State() State

	// SetPosition moves the camera without changing its target.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// SetTarget points the camera at a new world-space location.
	//
	// Parameters:
	//   - target: the new look-at point
	SetTarget(target mgl32.Vec3)

	// SetPositionAndTarget writes both vectors under a single lock so no frame observes one without the other.
	//
	// Parameters:
	//   - position: the new position
	//   - target: the new look-at point
	SetPositionAndTarget(position, target mgl32.Vec3)

	// SetFov sets the vertical field of view in radians. Non-positive values are ignored.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio. Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// ViewMatrix returns the look-at view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection with WebGPU [0, 1] depth.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view computed from one consistent state.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// AttachControl binds drag-orbit and wheel-zoom input from the window to this camera,
	// replacing any previous attachment.
	//
	// Parameters:
	//   - w: the window delivering pointer events
	//   - options: controller options
	//
	// Returns:
	//   - CameraController: the attached controller
	AttachControl(w window.Window, options ...CameraControllerOption) CameraController

	// DetachControl unbinds the window input callbacks. A no-op if nothing is attached.
	DetachControl()

	// Controller returns the attached controller, or nil.
	//
	// Returns:
	//   - CameraController: the controller or nil
	Controller() CameraController
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the given position. The target defaults to the origin.
//
// Parameters:
//   - name: the camera identifier
//   - position: initial world-space position
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(name string, position mgl32.Vec3, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		name:     name,
		position: position,
		up:       mgl32.Vec3{0, 1, 0},
		fov:      0.8,
		aspect:   16.0 / 9.0,
		near:     0.1,
		far:      1000,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *cameraImpl) Name() string {
	return c.name
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

func (c *cameraImpl) SetTarget(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
}

func (c *cameraImpl) SetPositionAndTarget(position, target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.target = target
}

func (c *cameraImpl) SetFov(fov float32) {
	if fov <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return viewMatrix(c.stateLocked())
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return projectionMatrix(c.stateLocked())
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.State().ViewProjectionMatrix()
}

func (c *cameraImpl) AttachControl(w window.Window, options ...CameraControllerOption) CameraController {
	c.DetachControl()

	cc := newController(c, w, options...)
	c.mu.Lock()
	c.controller = cc
	c.mu.Unlock()

	cc.bind()
	return cc
}

func (c *cameraImpl) DetachControl() {
	c.mu.Lock()
	cc := c.controller
	c.controller = nil
	c.mu.Unlock()

	if cc != nil {
		cc.unbind()
	}
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return nil
	}
	return c.controller
}

// update applies fn to the position under the lock. fn receives the current position and target.
func (c *cameraImpl) update(fn func(position, target mgl32.Vec3) mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = fn(c.position, c.target)
}

// Caller must hold the mutex.
func (c *cameraImpl) stateLocked() State {
	return State{
		Position: c.position,
		Target:   c.target,
		Up:       c.up,
		Fov:      c.fov,
		Aspect:   c.aspect,
		Near:     c.near,
		Far:      c.far,
	}
}

// viewMatrix returns the identity when position and target coincide, where look-at is undefined.
func viewMatrix(s State) mgl32.Mat4 {
	if s.Position.Sub(s.Target).Len() < 1e-8 {
		return mgl32.Ident4()
	}
	return mgl32.LookAtV(s.Position, s.Target, s.Up)
}

func projectionMatrix(s State) mgl32.Mat4 {
	return common.PerspectiveZO(s.Fov, s.Aspect, s.Near, s.Far)
}

// ViewProjectionMatrix returns projection * view for the recorded state.
// Renderers use it with Position from the same State so both come from one lock.
func (s State) ViewProjectionMatrix() mgl32.Mat4 {
	return projectionMatrix(s).Mul4(viewMatrix(s))
}
