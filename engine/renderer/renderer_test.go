package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

func readFloat32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func newTestWindow(t *testing.T, width, height int) window.Window {
	t.Helper()
	w, err := window.NewWindow(window.WithWidth(width), window.WithHeight(height))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w
}

var triangle = []GPUVertex{
	{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{0, 0, 1}, Normal: [3]float32{0, 1, 0}},
}

func TestNewRendererConfiguresSurface(t *testing.T) {
	w := newTestWindow(t, 800, 600)
	b := NewHeadlessBackend()
	r, err := NewRenderer(w, b)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	defer r.Release()

	if got := r.SurfaceSize(); got != (common.Size{Width: 800, Height: 600}) {
		t.Errorf("SurfaceSize = %+v, want 800x600", got)
	}
	if b.Configures() != 1 {
		t.Errorf("Configures = %d, want 1", b.Configures())
	}
	if b.PresentMode() != PresentModeVSync {
		t.Errorf("PresentMode = %v, want vsync", b.PresentMode())
	}
	if r.Window() != w {
		t.Error("Window() does not return the bound window")
	}
}

func TestNewRendererRefusesOwnedSurface(t *testing.T) {
	w := newTestWindow(t, 320, 240)
	r, err := NewRenderer(w, NewHeadlessBackend())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if _, err := NewRenderer(w, NewHeadlessBackend()); !errors.Is(err, ErrSurfaceOwned) {
		t.Errorf("second NewRenderer err = %v, want ErrSurfaceOwned", err)
	}

	r.Release()
	r2, err := NewRenderer(w, NewHeadlessBackend())
	if err != nil {
		t.Fatalf("NewRenderer after Release: %v", err)
	}
	r2.Release()
}

func TestNewRendererConfigureFailure(t *testing.T) {
	w := newTestWindow(t, 320, 240)
	boom := errors.New("no adapter")
	if _, err := NewRenderer(w, NewHeadlessBackend(WithConfigureError(boom))); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapping %v", err, boom)
	}
	// A failed bind must not leave the window owned.
	r, err := NewRenderer(w, NewHeadlessBackend())
	if err != nil {
		t.Fatalf("NewRenderer after failure: %v", err)
	}
	r.Release()
}

func TestResize(t *testing.T) {
	w := newTestWindow(t, 320, 240)
	b := NewHeadlessBackend()
	r, err := NewRenderer(w, b)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()

	if err := r.Resize(1024, 768); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if got := b.SurfaceSize(); got != (common.Size{Width: 1024, Height: 768}) {
		t.Errorf("backend surface = %+v, want 1024x768", got)
	}
	if err := r.Resize(0, 768); !errors.Is(err, ErrEmptySurface) {
		t.Errorf("Resize(0, 768) err = %v, want ErrEmptySurface", err)
	}
	if got := r.SurfaceSize(); got != (common.Size{Width: 1024, Height: 768}) {
		t.Errorf("SurfaceSize after zero resize = %+v, want unchanged 1024x768", got)
	}
}

func TestFrameLifecycle(t *testing.T) {
	w := newTestWindow(t, 320, 240)
	var observed []FrameRecord
	b := NewHeadlessBackend(WithFrameObserver(func(rec FrameRecord) {
		observed = append(observed, rec)
	}))
	r, err := NewRenderer(w, b)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()

	h, err := r.UploadMesh("tri", triangle, []uint32{0, 1, 2})
	if err != nil {
		t.Fatalf("UploadMesh: %v", err)
	}

	if err := r.Draw(h, ObjectUniform{}); err == nil {
		t.Error("Draw outside a frame returned nil error")
	}

	clearColor := common.NewColor3(0.1, 0.1, 0.15).ToColor4()
	if err := r.BeginFrame(clearColor, FrameUniform{LightIntensity: 0.7}); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if err := r.BeginFrame(clearColor, FrameUniform{}); err == nil {
		t.Error("nested BeginFrame returned nil error")
	}
	if err := r.Draw(h, ObjectUniform{Alpha: 1}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := r.Draw(MeshHandle(99), ObjectUniform{}); err == nil {
		t.Error("Draw with unknown handle returned nil error")
	}
	r.EndFrame()
	r.Present()

	if r.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", r.Frames())
	}
	if len(observed) != 1 {
		t.Fatalf("observed %d frames, want 1", len(observed))
	}
	rec := observed[0]
	if rec.Clear != clearColor {
		t.Errorf("Clear = %v, want %v", rec.Clear, clearColor)
	}
	if rec.Clear.Alpha() != 1 {
		t.Errorf("clear alpha = %f, want 1", rec.Clear.Alpha())
	}
	if len(rec.Draws) != 1 || rec.Draws[0].Label != "tri" || rec.Draws[0].IndexCount != 3 {
		t.Errorf("Draws = %+v, want one draw of tri with 3 indices", rec.Draws)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	w := newTestWindow(t, 320, 240)
	b := NewHeadlessBackend()
	r, err := NewRenderer(w, b)
	if err != nil {
		t.Fatal(err)
	}
	r.Release()
	r.Release()
	if !b.Released() {
		t.Error("backend not released")
	}
	if err := r.Resize(10, 10); !errors.Is(err, ErrReleased) {
		t.Errorf("Resize after Release err = %v, want ErrReleased", err)
	}
}

func TestDrawAfterReleaseMidFrame(t *testing.T) {
	w := newTestWindow(t, 320, 240)
	b := NewHeadlessBackend()
	r, err := NewRenderer(w, b)
	if err != nil {
		t.Fatal(err)
	}
	h, err := r.UploadMesh("tri", triangle, []uint32{0, 1, 2})
	if err != nil {
		t.Fatalf("UploadMesh: %v", err)
	}
	if err := r.BeginFrame(common.Color4{0, 0, 0, 1}, FrameUniform{}); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}

	r.Release()
	if err := r.Draw(h, ObjectUniform{Alpha: 1}); !errors.Is(err, ErrReleased) {
		t.Errorf("Draw after Release err = %v, want ErrReleased", err)
	}
	r.EndFrame()
	r.Present()
	if r.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", r.Frames())
	}
}

func TestBeginFrameErrorCountsAttempts(t *testing.T) {
	w := newTestWindow(t, 320, 240)
	var attempts []uint64
	b := NewHeadlessBackend(WithBeginFrameError(func(attempt uint64) error {
		attempts = append(attempts, attempt)
		if attempt == 0 {
			return errors.New("device lost")
		}
		return nil
	}))
	r, err := NewRenderer(w, b)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()

	if err := r.BeginFrame(common.Color4{0, 0, 0, 1}, FrameUniform{}); err == nil {
		t.Fatal("first BeginFrame returned nil error")
	}
	if err := r.BeginFrame(common.Color4{0, 0, 0, 1}, FrameUniform{}); err != nil {
		t.Fatalf("second BeginFrame: %v", err)
	}
	r.EndFrame()
	r.Present()

	if len(attempts) != 2 || attempts[0] != 0 || attempts[1] != 1 {
		t.Errorf("attempts = %v, want [0 1]", attempts)
	}
	rec, ok := b.LastFrame()
	if !ok {
		t.Fatal("no frame presented")
	}
	if rec.Index != 0 {
		t.Errorf("presented frame Index = %d, want 0", rec.Index)
	}
}

func TestUniformMarshalLayout(t *testing.T) {
	f := FrameUniform{
		ViewProj:       mgl32.Ident4(),
		CameraPosition: mgl32.Vec3{0, 5, -10},
		LightIntensity: 0.7,
		LightDirection: mgl32.Vec3{0, 1, 0},
		SkyColor:       common.NewColor3(1, 1, 1),
		GroundColor:    common.NewColor3(0, 0, 0),
		LightSpecular:  common.NewColor3(1, 1, 1),
	}
	buf := f.Marshal()
	if len(buf) != FrameUniformSize {
		t.Fatalf("len = %d, want %d", len(buf), FrameUniformSize)
	}
	checks := []struct {
		name string
		off  int
		want float32
	}{
		{"view_proj[0]", 0, 1},
		{"view_proj[15]", 60, 1},
		{"camera_pos.y", 68, 5},
		{"camera_pos.z", 72, -10},
		{"intensity", 76, 0.7},
		{"light_dir.y", 84, 1},
		{"sky.r", 96, 1},
		{"ground.r", 112, 0},
		{"specular.b", 136, 1},
	}
	for _, c := range checks {
		if got := readFloat32(buf, c.off); got != c.want {
			t.Errorf("%s = %f, want %f", c.name, got, c.want)
		}
	}

	o := ObjectUniform{
		Model:         mgl32.Translate3D(0, 1, 0),
		Diffuse:       common.NewColor3(0.4, 0.4, 0.8),
		SpecularPower: 64,
		Specular:      common.NewColor3(0.4, 0.4, 0.4),
		Alpha:         1,
	}
	ob := o.Marshal()
	if len(ob) != ObjectUniformSize {
		t.Fatalf("object len = %d, want %d", len(ob), ObjectUniformSize)
	}
	if got := readFloat32(ob, 13*4); got != 1 {
		t.Errorf("model translation y = %f, want 1", got)
	}
	if got := readFloat32(ob, 72); got != 0.8 {
		t.Errorf("diffuse.b = %f, want 0.8", got)
	}
	if got := readFloat32(ob, 76); got != 64 {
		t.Errorf("specular_power = %f, want 64", got)
	}
	if got := readFloat32(ob, 92); got != 1 {
		t.Errorf("alpha = %f, want 1", got)
	}
}

func TestMarshalGeometry(t *testing.T) {
	vb := MarshalVertices(triangle)
	if len(vb) != 3*VertexStride {
		t.Errorf("vertex bytes = %d, want %d", len(vb), 3*VertexStride)
	}
	if got := readFloat32(vb, VertexStride); got != 1 {
		t.Errorf("second vertex x = %f, want 1", got)
	}
	ib := MarshalIndices([]uint32{0, 1, 2})
	if len(ib) != 12 || binary.LittleEndian.Uint32(ib[8:]) != 2 {
		t.Errorf("index bytes = %v, want little-endian 0,1,2", ib)
	}
}
