package engine

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

func TestResizeImmediate(t *testing.T) {
	rig := newTestRig(t)
	e := NewEngine(rig.window, WithScene(rig.scene))

	rig.platform.SimulateResize(1024, 512)
	rig.platform.Dispatch()

	want := common.Size{Width: 1024, Height: 512}
	if got := rig.renderer.SurfaceSize(); got != want {
		t.Errorf("SurfaceSize = %v, want %v", got, want)
	}
	if got := rig.backend.SurfaceSize(); got != want {
		t.Errorf("backend SurfaceSize = %v, want %v", got, want)
	}
	if got := rig.camera.Aspect(); got != 2 {
		t.Errorf("camera Aspect = %f, want 2", got)
	}
	if got := e.Viewport(); got != want {
		t.Errorf("Viewport = %v, want %v", got, want)
	}
}

func TestResizeZeroAreaRecordedNotApplied(t *testing.T) {
	rig := newTestRig(t)
	e := NewEngine(rig.window, WithScene(rig.scene))
	configures := rig.backend.Configures()

	rig.platform.SimulateResize(0, 0)
	rig.platform.Dispatch()

	if got := e.Viewport(); !got.Empty() {
		t.Errorf("Viewport = %v, want empty", got)
	}
	if got := rig.renderer.SurfaceSize(); got != (common.Size{Width: 1280, Height: 720}) {
		t.Errorf("SurfaceSize = %v, want 1280x720 kept", got)
	}
	if rig.backend.Configures() != configures {
		t.Errorf("Configures = %d, want %d", rig.backend.Configures(), configures)
	}

	rig.platform.SimulateResize(800, 800)
	rig.platform.Dispatch()
	if got := rig.renderer.SurfaceSize(); got != (common.Size{Width: 800, Height: 800}) {
		t.Errorf("SurfaceSize = %v, want 800x800", got)
	}
	if got := rig.camera.Aspect(); got != 1 {
		t.Errorf("camera Aspect = %f, want 1", got)
	}
}

func TestResizeCoalesced(t *testing.T) {
	var rig *testRig
	hook := func(poll int) {
		if poll == 1 {
			rig.platform.SimulateResize(640, 480)
			rig.platform.SimulateResize(900, 300)
			rig.platform.SimulateResize(1000, 500)
		}
	}
	rig = newTestRig(t, window.WithMaxPolls(3), window.WithPollHook(hook))
	e := NewEngine(rig.window, WithScene(rig.scene), WithResizeCoalescing(true))
	configures := rig.backend.Configures()

	var sizes []common.Size
	e.RunRenderLoop(func() {
		sizes = append(sizes, rig.renderer.SurfaceSize())
	})
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := common.Size{Width: 1000, Height: 500}
	if len(sizes) == 0 || sizes[0] != want {
		t.Fatalf("surface sizes seen by frames = %v, want first %v", sizes, want)
	}
	if got := rig.backend.Configures() - configures; got != 1 {
		t.Errorf("surface reconfigured %d times, want 1", got)
	}
	if got := rig.camera.Aspect(); got != 2 {
		t.Errorf("camera Aspect = %f, want 2", got)
	}
}

func TestResizeSameSizeSkipsReconfigure(t *testing.T) {
	rig := newTestRig(t)
	NewEngine(rig.window, WithScene(rig.scene))
	configures := rig.backend.Configures()

	rig.platform.SimulateResize(1280, 720)
	rig.platform.Dispatch()
	if rig.backend.Configures() != configures {
		t.Errorf("Configures = %d, want %d", rig.backend.Configures(), configures)
	}
}

func TestResizeWithoutScene(t *testing.T) {
	rig := newTestRig(t)
	e := NewEngine(rig.window)

	rig.platform.SimulateResize(300, 200)
	rig.platform.Dispatch()
	if got := e.Viewport(); got != (common.Size{Width: 300, Height: 200}) {
		t.Errorf("Viewport = %v, want 300x200", got)
	}
	if got := rig.renderer.SurfaceSize(); got != (common.Size{Width: 1280, Height: 720}) {
		t.Errorf("SurfaceSize = %v, want unchanged without a scene", got)
	}
}
