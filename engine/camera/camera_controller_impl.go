package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// controllerImpl is the implementation of CameraController.
// It keeps no positional state of its own: every orbit or zoom reads the camera's position
// and target, converts the offset to spherical coordinates and writes the new position back.
type controllerImpl struct {
	mu *sync.Mutex

	camera *cameraImpl
	window window.Window

	attached bool
	dragging bool
	lastX    float32
	lastY    float32

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
}

// Compile-time interface compliance check
var _ CameraController = &controllerImpl{}

func newController(c *cameraImpl, w window.Window, options ...CameraControllerOption) *controllerImpl {
	cc := &controllerImpl{
		mu:     &sync.Mutex{},
		camera: c,
		window: w,

		minRadius:    1.0,
		maxRadius:    100.0,
		minElevation: 0.05,
		maxElevation: float32(math.Pi/2 - 0.1),

		mouseSensitivity: 0.005,
		zoomSpeed:        1.0,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *controllerImpl) bind() {
	cc.mu.Lock()
	cc.attached = true
	cc.mu.Unlock()

	cc.window.SetPointerDownCallback(cc.onPointerDown)
	cc.window.SetPointerMoveCallback(cc.onPointerMove)
	cc.window.SetPointerUpCallback(cc.onPointerUp)
	cc.window.SetScrollCallback(cc.Zoom)
}

func (cc *controllerImpl) unbind() {
	cc.mu.Lock()
	cc.attached = false
	cc.dragging = false
	cc.mu.Unlock()

	cc.window.SetPointerDownCallback(nil)
	cc.window.SetPointerMoveCallback(nil)
	cc.window.SetPointerUpCallback(nil)
	cc.window.SetScrollCallback(nil)
}

func (cc *controllerImpl) onPointerDown(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = true
	cc.lastX = x
	cc.lastY = y
}

func (cc *controllerImpl) onPointerMove(x, y float32) {
	cc.mu.Lock()
	if !cc.dragging {
		cc.mu.Unlock()
		return
	}
	dx := x - cc.lastX
	dy := y - cc.lastY
	cc.lastX = x
	cc.lastY = y
	sensitivity := cc.mouseSensitivity
	cc.mu.Unlock()

	// Dragging right swings the camera left so the scene follows the pointer.
	cc.Orbit(-dx*sensitivity, dy*sensitivity)
}

func (cc *controllerImpl) onPointerUp(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = false
}

func (cc *controllerImpl) Attached() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.attached
}

func (cc *controllerImpl) Dragging() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dragging
}

func (cc *controllerImpl) Orbit(deltaAzimuth, deltaElevation float32) {
	cc.mu.Lock()
	minElev, maxElev := cc.minElevation, cc.maxElevation
	cc.mu.Unlock()

	cc.camera.update(func(position, target mgl32.Vec3) mgl32.Vec3 {
		radius, azimuth, elevation, ok := toSpherical(position.Sub(target))
		if !ok {
			return position
		}
		azimuth += deltaAzimuth
		elevation = common.Clamp(elevation+deltaElevation, minElev, maxElev)
		return target.Add(fromSpherical(radius, azimuth, elevation))
	})
}

func (cc *controllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	minRadius, maxRadius, speed := cc.minRadius, cc.maxRadius, cc.zoomSpeed
	cc.mu.Unlock()

	cc.camera.update(func(position, target mgl32.Vec3) mgl32.Vec3 {
		offset := position.Sub(target)
		radius := offset.Len()
		if radius < 1e-8 {
			return position
		}
		next := common.Clamp(radius-delta*speed, minRadius, maxRadius)
		return target.Add(offset.Mul(next / radius))
	})
}

func (cc *controllerImpl) MinRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius
}

func (cc *controllerImpl) MaxRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxRadius
}

func (cc *controllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *controllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

// toSpherical converts an offset from the target to radius, azimuth around +Y measured from +Z,
// and elevation above the horizontal plane. ok is false for a zero offset.
func toSpherical(offset mgl32.Vec3) (radius, azimuth, elevation float32, ok bool) {
	radius = offset.Len()
	if radius < 1e-8 {
		return 0, 0, 0, false
	}
	elevation = float32(math.Asin(float64(common.Clamp(offset.Y()/radius, -1, 1))))
	azimuth = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	return radius, azimuth, elevation, true
}

func fromSpherical(radius, azimuth, elevation float32) mgl32.Vec3 {
	cosElev := float32(math.Cos(float64(elevation)))
	sinElev := float32(math.Sin(float64(elevation)))
	cosAzim := float32(math.Cos(float64(azimuth)))
	sinAzim := float32(math.Sin(float64(azimuth)))
	return mgl32.Vec3{
		radius * cosElev * sinAzim,
		radius * sinElev,
		radius * cosElev * cosAzim,
	}
}
