package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

func approxEqual(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) < eps
}

func TestSphereGeometry(t *testing.T) {
	g, err := SphereGeometry(2, 32)
	if err != nil {
		t.Fatalf("SphereGeometry: %v", err)
	}
	rings, slices := 34, 68
	if got, want := len(g.Vertices), (rings+1)*(slices+1); got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := len(g.Indices), rings*slices*6; got != want {
		t.Errorf("indices = %d, want %d", got, want)
	}
	for i, v := range g.Vertices {
		p := mgl32.Vec3(v.Position)
		n := mgl32.Vec3(v.Normal)
		if !approxEqual(p.Len(), 1, 1e-5) {
			t.Fatalf("vertex %d radius = %f, want 1", i, p.Len())
		}
		if !approxEqual(n.Len(), 1, 1e-5) {
			t.Fatalf("vertex %d normal length = %f, want 1", i, n.Len())
		}
	}
	for i, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
}

func TestSphereWindingFacesOutward(t *testing.T) {
	g, err := SphereGeometry(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	checked := 0
	for i := 0; i < len(g.Indices); i += 3 {
		a := mgl32.Vec3(g.Vertices[g.Indices[i]].Position)
		b := mgl32.Vec3(g.Vertices[g.Indices[i+1]].Position)
		c := mgl32.Vec3(g.Vertices[g.Indices[i+2]].Position)
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() < 1e-6 {
			continue // degenerate pole triangle
		}
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		if n.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d faces inward", i/3)
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("no triangles checked")
	}
}

func TestGroundGeometry(t *testing.T) {
	g, err := GroundGeometry(10, 10, 1)
	if err != nil {
		t.Fatalf("GroundGeometry: %v", err)
	}
	if len(g.Vertices) != 4 {
		t.Errorf("vertices = %d, want 4", len(g.Vertices))
	}
	if g.TriangleCount() != 2 {
		t.Errorf("triangles = %d, want 2", g.TriangleCount())
	}
	for _, v := range g.Vertices {
		if v.Position[1] != 0 {
			t.Errorf("vertex y = %f, want 0", v.Position[1])
		}
		if math.Abs(float64(v.Position[0])) != 5 || math.Abs(float64(v.Position[2])) != 5 {
			t.Errorf("corner = %v, want (+-5, 0, +-5)", v.Position)
		}
		if v.Normal != [3]float32{0, 1, 0} {
			t.Errorf("normal = %v, want (0, 1, 0)", v.Normal)
		}
	}
	for i := 0; i < len(g.Indices); i += 3 {
		a := mgl32.Vec3(g.Vertices[g.Indices[i]].Position)
		b := mgl32.Vec3(g.Vertices[g.Indices[i+1]].Position)
		c := mgl32.Vec3(g.Vertices[g.Indices[i+2]].Position)
		if n := b.Sub(a).Cross(c.Sub(a)); n.Y() <= 0 {
			t.Errorf("triangle %d normal %v does not face +Y", i/3, n)
		}
	}
}

func TestGeometryInvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"sphere zero diameter", func() error { _, err := SphereGeometry(0, 32); return err }},
		{"sphere zero segments", func() error { _, err := SphereGeometry(2, 0); return err }},
		{"ground negative width", func() error { _, err := GroundGeometry(-1, 10, 1); return err }},
		{"ground zero subdivisions", func() error { _, err := GroundGeometry(10, 10, 0); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("err = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestCreateSphere(t *testing.T) {
	mat := material.NewMaterial(material.WithName("sphereMaterial"))
	s, err := CreateSphere("sphere", 2, 32, WithPosition(mgl32.Vec3{0, 1, 0}), WithMaterial(mat))
	if err != nil {
		t.Fatalf("CreateSphere: %v", err)
	}
	if s.Name() != "sphere" || s.Shape() != ShapeSphere {
		t.Errorf("Name/Shape = %q/%v, want sphere/ShapeSphere", s.Name(), s.Shape())
	}
	if s.Diameter() != 2 {
		t.Errorf("Diameter = %f, want 2", s.Diameter())
	}
	if s.Position() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Position = %v, want (0, 1, 0)", s.Position())
	}
	if s.Scaling() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Scaling = %v, want (1, 1, 1)", s.Scaling())
	}
	if s.Material() != mat {
		t.Error("Material is not the supplied instance")
	}
	if !s.Visible() {
		t.Error("new mesh not visible")
	}
	if _, ok := s.Handle(); ok {
		t.Error("new mesh reports an uploaded handle")
	}
}

func TestCreateGroundDefaultMaterial(t *testing.T) {
	a, err := CreateGround("ground", 10, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := CreateGround("ground2", 10, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Width() != 10 || a.Height() != 10 || a.Diameter() != 0 {
		t.Errorf("Width/Height/Diameter = %f/%f/%f, want 10/10/0", a.Width(), a.Height(), a.Diameter())
	}
	if a.Material() == nil || a.Material() == b.Material() {
		t.Error("meshes without WithMaterial must each get their own material")
	}
	if a.Material().Name() != "groundMaterial" {
		t.Errorf("default material name = %q, want groundMaterial", a.Material().Name())
	}
}

func TestModelMatrixFollowsTransform(t *testing.T) {
	s, err := CreateSphere("sphere", 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	s.SetPosition(mgl32.Vec3{1, 2, 3})
	s.SetScaling(mgl32.Vec3{2, 2, 2})
	m := s.ModelMatrix()
	got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !got.ApproxEqual(mgl32.Vec4{3, 2, 3, 1}) {
		t.Errorf("model * (1,0,0) = %v, want (3, 2, 3)", got)
	}

	s.SetHandle(7)
	if h, ok := s.Handle(); !ok || h != 7 {
		t.Errorf("Handle = %d, %v, want 7, true", h, ok)
	}
}
