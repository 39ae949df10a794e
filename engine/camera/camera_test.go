package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

func approxEqual(a, b, epsilon float32) bool {
	return float32(math.Abs(float64(a-b))) < epsilon
}

func vecApprox(a, b mgl32.Vec3) bool {
	return approxEqual(a.X(), b.X(), 1e-4) && approxEqual(a.Y(), b.Y(), 1e-4) && approxEqual(a.Z(), b.Z(), 1e-4)
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera("cam", mgl32.Vec3{0, 5, -10})
	if c.Name() != "cam" {
		t.Errorf("Name = %q, want %q", c.Name(), "cam")
	}
	if c.Target() != (mgl32.Vec3{}) {
		t.Errorf("Target = %v, want origin", c.Target())
	}
	if c.Up() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up = %v, want (0,1,0)", c.Up())
	}
	if c.Fov() != 0.8 {
		t.Errorf("Fov = %f, want 0.8", c.Fov())
	}
	if c.Near() != 0.1 || c.Far() != 1000 {
		t.Errorf("Near/Far = %f/%f, want 0.1/1000", c.Near(), c.Far())
	}
	if c.Controller() != nil {
		t.Error("new camera should have no controller")
	}
}

func TestCameraOptions(t *testing.T) {
	c := NewCamera("cam", mgl32.Vec3{1, 2, 3},
		WithTarget(mgl32.Vec3{0, 1, 0}),
		WithUp(mgl32.Vec3{0, 2, 0}),
		WithFov(1.2),
		WithAspect(2),
		WithNear(0.5),
		WithFar(50),
	)
	s := c.State()
	if s.Target != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Target = %v, want (0,1,0)", s.Target)
	}
	if !vecApprox(s.Up, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up = %v, want normalized (0,1,0)", s.Up)
	}
	if s.Fov != 1.2 || s.Aspect != 2 || s.Near != 0.5 || s.Far != 50 {
		t.Errorf("State = %+v, want fov 1.2 aspect 2 near 0.5 far 50", s)
	}
}

func TestCameraSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera("cam", mgl32.Vec3{0, 0, -1}, WithAspect(1.5))
	c.SetAspect(0)
	c.SetAspect(-2)
	if c.Aspect() != 1.5 {
		t.Errorf("Aspect = %f, want 1.5", c.Aspect())
	}
	c.SetAspect(4)
	if c.Aspect() != 4 {
		t.Errorf("Aspect = %f, want 4", c.Aspect())
	}
}

func TestCameraViewMatrixLooksAtTarget(t *testing.T) {
	c := NewCamera("cam", mgl32.Vec3{0, 5, -10})
	view := c.ViewMatrix()
	// The target lands on the view-space -Z axis.
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	dist := float32(math.Sqrt(125))
	if !approxEqual(p.X(), 0, 1e-4) || !approxEqual(p.Y(), 0, 1e-4) || !approxEqual(p.Z(), -dist, 1e-4) {
		t.Errorf("target in view space = %v, want (0,0,%f)", p, -dist)
	}
}

func TestCameraViewMatrixDegenerate(t *testing.T) {
	c := NewCamera("cam", mgl32.Vec3{})
	if c.ViewMatrix() != mgl32.Ident4() {
		t.Error("view matrix should be identity when position equals target")
	}
}

func TestCameraProjectionDepthRange(t *testing.T) {
	c := NewCamera("cam", mgl32.Vec3{0, 0, -1}, WithAspect(1))
	proj := c.ProjectionMatrix()
	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -1000, 1})
	if !approxEqual(near.Z()/near.W(), 0, 1e-4) {
		t.Errorf("near depth = %f, want 0", near.Z()/near.W())
	}
	if !approxEqual(far.Z()/far.W(), 1, 1e-4) {
		t.Errorf("far depth = %f, want 1", far.Z()/far.W())
	}
}

func TestCameraSetPositionAndTarget(t *testing.T) {
	c := NewCamera("cam", mgl32.Vec3{0, 5, -10})
	c.SetPositionAndTarget(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 5, 6})
	s := c.State()
	if s.Position != (mgl32.Vec3{1, 2, 3}) || s.Target != (mgl32.Vec3{4, 5, 6}) {
		t.Errorf("State = %v/%v, want (1,2,3)/(4,5,6)", s.Position, s.Target)
	}
}

func newTestWindow(t *testing.T) (window.Window, *window.HeadlessPlatform) {
	t.Helper()
	p := window.NewHeadlessPlatform()
	w, err := window.NewWindow(window.WithPlatform(p))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w, p
}

func TestAttachControlDragOrbits(t *testing.T) {
	w, p := newTestWindow(t)
	c := NewCamera("cam", mgl32.Vec3{0, 5, -10})
	cc := c.AttachControl(w)
	if !cc.Attached() {
		t.Fatal("controller should be attached")
	}
	if c.Controller() != cc {
		t.Error("Controller should return the attached controller")
	}

	radius := c.Position().Len()
	p.SimulateDrag(100, 100, 200, 100)
	p.Dispatch()

	pos := c.Position()
	if vecApprox(pos, mgl32.Vec3{0, 5, -10}) {
		t.Fatal("drag should move the camera")
	}
	if !approxEqual(pos.Len(), radius, 1e-3) {
		t.Errorf("radius after orbit = %f, want %f", pos.Len(), radius)
	}
	if !approxEqual(pos.Y(), 5, 1e-3) {
		t.Errorf("horizontal drag changed height: Y = %f, want 5", pos.Y())
	}
	if cc.Dragging() {
		t.Error("controller should not be dragging after release")
	}
}

func TestAttachControlMoveWithoutPressIsIgnored(t *testing.T) {
	w, _ := newTestWindow(t)
	c := NewCamera("cam", mgl32.Vec3{0, 5, -10})
	c.AttachControl(w)

	events := w.(window.Events)
	events.PointerMoved(50, 50)
	events.PointerMoved(300, 300)
	if c.Position() != (mgl32.Vec3{0, 5, -10}) {
		t.Errorf("Position = %v, want unchanged", c.Position())
	}
}

func TestControllerElevationClamped(t *testing.T) {
	w, _ := newTestWindow(t)
	c := NewCamera("cam", mgl32.Vec3{0, 5, -10})
	cc := c.AttachControl(w, WithElevationBounds(0.1, 1.0))

	cc.Orbit(0, 10)
	_, _, elev, _ := toSpherical(c.Position())
	if !approxEqual(elev, 1.0, 1e-4) {
		t.Errorf("elevation = %f, want 1.0", elev)
	}
	cc.Orbit(0, -10)
	_, _, elev, _ = toSpherical(c.Position())
	if !approxEqual(elev, 0.1, 1e-4) {
		t.Errorf("elevation = %f, want 0.1", elev)
	}
}

func TestControllerZoom(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		want  float32
	}{
		{"zoom in", 2, 8},
		{"zoom out", -5, 15},
		{"clamped min", 100, 2},
		{"clamped max", -100, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, p := newTestWindow(t)
			c := NewCamera("cam", mgl32.Vec3{0, 0, -10})
			c.AttachControl(w, WithRadiusBounds(2, 20))
			p.SimulateScroll(tt.delta)
			p.Dispatch()
			if got := c.Position().Len(); !approxEqual(got, tt.want, 1e-4) {
				t.Errorf("radius = %f, want %f", got, tt.want)
			}
			if c.Target() != (mgl32.Vec3{}) {
				t.Errorf("Target = %v, zoom must not move the target", c.Target())
			}
		})
	}
}

func TestControllerOptions(t *testing.T) {
	w, _ := newTestWindow(t)
	c := NewCamera("cam", mgl32.Vec3{0, 0, -10})
	cc := c.AttachControl(w, WithMouseSensitivity(0.01), WithZoomSpeed(3), WithRadiusBounds(0.5, 40))
	if cc.MouseSensitivity() != 0.01 {
		t.Errorf("MouseSensitivity = %f, want 0.01", cc.MouseSensitivity())
	}
	if cc.ZoomSpeed() != 3 {
		t.Errorf("ZoomSpeed = %f, want 3", cc.ZoomSpeed())
	}
	if cc.MinRadius() != 0.5 || cc.MaxRadius() != 40 {
		t.Errorf("radius bounds = [%f, %f], want [0.5, 40]", cc.MinRadius(), cc.MaxRadius())
	}
}

func TestDetachControlUnbindsInput(t *testing.T) {
	w, p := newTestWindow(t)
	c := NewCamera("cam", mgl32.Vec3{0, 5, -10})
	cc := c.AttachControl(w)
	c.DetachControl()

	if cc.Attached() {
		t.Error("controller should be detached")
	}
	if c.Controller() != nil {
		t.Error("Controller should be nil after DetachControl")
	}
	p.SimulateDrag(0, 0, 300, 300)
	p.SimulateScroll(3)
	p.Dispatch()
	if c.Position() != (mgl32.Vec3{0, 5, -10}) {
		t.Errorf("Position = %v, want unchanged after detach", c.Position())
	}
}

func TestAttachControlReplacesController(t *testing.T) {
	w, _ := newTestWindow(t)
	c := NewCamera("cam", mgl32.Vec3{0, 5, -10})
	first := c.AttachControl(w)
	second := c.AttachControl(w)
	if first.Attached() {
		t.Error("first controller should be detached when a second attaches")
	}
	if !second.Attached() {
		t.Error("second controller should be attached")
	}
}
