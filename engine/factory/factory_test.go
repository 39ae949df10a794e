package factory

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/mesh"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

func newTestScene(t *testing.T) (scene.Scene, window.Window) {
	t.Helper()
	w, err := window.NewWindow(window.WithWidth(800), window.WithHeight(400))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	r, err := renderer.NewRenderer(w, renderer.NewHeadlessBackend())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	t.Cleanup(r.Release)
	return scene.NewScene(r), w
}

func TestPopulateCreatesPrimitives(t *testing.T) {
	s, w := newTestScene(t)
	p, err := Populate(s, w)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}

	cs := p.Camera.State()
	if cs.Position != (mgl32.Vec3{0, 5, -10}) {
		t.Errorf("camera Position = %v, want (0,5,-10)", cs.Position)
	}
	if cs.Target != (mgl32.Vec3{}) {
		t.Errorf("camera Target = %v, want origin", cs.Target)
	}
	if cs.Up != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("camera Up = %v, want (0,1,0)", cs.Up)
	}
	if cs.Fov != 0.8 || cs.Near != 0.1 || cs.Far != 1000 {
		t.Errorf("camera fov/near/far = %f/%f/%f, want 0.8/0.1/1000", cs.Fov, cs.Near, cs.Far)
	}
	if cs.Aspect != 2 {
		t.Errorf("camera Aspect = %f, want 2", cs.Aspect)
	}
	if p.Camera.Controller() == nil || !p.Camera.Controller().Attached() {
		t.Error("camera control should be attached to the window")
	}

	if p.Light.Name() != "light1" {
		t.Errorf("light Name = %q, want light1", p.Light.Name())
	}
	if p.Light.Direction() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("light Direction = %v, want (0,1,0)", p.Light.Direction())
	}
	if p.Light.Intensity() != 0.7 {
		t.Errorf("light Intensity = %f, want 0.7", p.Light.Intensity())
	}

	if p.Sphere.Shape() != mesh.ShapeSphere || p.Sphere.Diameter() != 2 {
		t.Errorf("sphere shape/diameter = %v/%f, want sphere/2", p.Sphere.Shape(), p.Sphere.Diameter())
	}
	if p.Sphere.Position() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("sphere Position = %v, want (0,1,0)", p.Sphere.Position())
	}
	if p.Ground.Shape() != mesh.ShapeGround || p.Ground.Width() != 10 || p.Ground.Height() != 10 {
		t.Errorf("ground = %v %fx%f, want ground 10x10", p.Ground.Shape(), p.Ground.Width(), p.Ground.Height())
	}
	if p.Ground.Position() != (mgl32.Vec3{}) {
		t.Errorf("ground Position = %v, want origin", p.Ground.Position())
	}
}

func TestPopulateMaterials(t *testing.T) {
	s, w := newTestScene(t)
	p, err := Populate(s, w)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}

	tests := []struct {
		name     string
		m        mesh.Mesh
		material string
		diffuse  common.Color3
		specular common.Color3
	}{
		{"sphere", p.Sphere, "sphereMaterial", common.NewColor3(0.4, 0.4, 0.8), common.NewColor3(0.4, 0.4, 0.4)},
		{"ground", p.Ground, "groundMaterial", common.NewColor3(0.2, 0.2, 0.2), common.NewColor3(1, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mat := tt.m.Material()
			if mat.Name() != tt.material {
				t.Errorf("material Name = %q, want %q", mat.Name(), tt.material)
			}
			if mat.DiffuseColor() != tt.diffuse {
				t.Errorf("DiffuseColor = %v, want %v", mat.DiffuseColor(), tt.diffuse)
			}
			if mat.SpecularColor() != tt.specular {
				t.Errorf("SpecularColor = %v, want %v", mat.SpecularColor(), tt.specular)
			}
		})
	}
	if p.Sphere.Material() == p.Ground.Material() {
		t.Error("each mesh should own a distinct material")
	}
}

func TestPopulateInsertionOrder(t *testing.T) {
	s, w := newTestScene(t)
	if _, err := Populate(s, w); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	want := []string{"camera1", "light1", "sphere", "ground"}
	nodes := s.Nodes()
	if len(nodes) != len(want) {
		t.Fatalf("len(Nodes) = %d, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		if n.Name() != want[i] {
			t.Errorf("Nodes[%d] = %q, want %q", i, n.Name(), want[i])
		}
	}
	if s.ActiveCamera().Name() != "camera1" {
		t.Errorf("ActiveCamera = %q, want camera1", s.ActiveCamera().Name())
	}
}

func TestPopulateTwiceFails(t *testing.T) {
	s, w := newTestScene(t)
	if _, err := Populate(s, w); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if _, err := Populate(s, w); !errors.Is(err, ErrScenePopulated) {
		t.Errorf("second Populate = %v, want ErrScenePopulated", err)
	}
	if s.Count() != 4 {
		t.Errorf("Count = %d, want 4", s.Count())
	}
}

func TestPopulatedSceneRenders(t *testing.T) {
	s, w := newTestScene(t)
	if _, err := Populate(s, w); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if s.Renderer().Frames() != 1 {
		t.Errorf("Frames = %d, want 1", s.Renderer().Frames())
	}
}
