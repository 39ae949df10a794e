package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

func TestMaterialDefaults(t *testing.T) {
	m := NewMaterial()
	if m.DiffuseColor() != common.NewColor3(1, 1, 1) {
		t.Errorf("DiffuseColor = %v, want white", m.DiffuseColor())
	}
	if m.SpecularColor() != common.NewColor3(1, 1, 1) {
		t.Errorf("SpecularColor = %v, want white", m.SpecularColor())
	}
	if m.SpecularPower() != 64 {
		t.Errorf("SpecularPower = %f, want 64", m.SpecularPower())
	}
	if m.Alpha() != 1 {
		t.Errorf("Alpha = %f, want 1", m.Alpha())
	}
}

func TestMaterialOptions(t *testing.T) {
	m := NewMaterial(
		WithName("sphereMaterial"),
		WithDiffuseColor(common.NewColor3(0.4, 0.4, 0.8)),
		WithSpecularColor(common.NewColor3(0.4, 0.4, 0.4)),
		WithSpecularPower(32),
		WithAlpha(2),
	)
	if m.Name() != "sphereMaterial" {
		t.Errorf("Name = %q, want sphereMaterial", m.Name())
	}
	if m.DiffuseColor() != common.NewColor3(0.4, 0.4, 0.8) {
		t.Errorf("DiffuseColor = %v, want (0.4, 0.4, 0.8)", m.DiffuseColor())
	}
	if m.SpecularColor() != common.NewColor3(0.4, 0.4, 0.4) {
		t.Errorf("SpecularColor = %v, want (0.4, 0.4, 0.4)", m.SpecularColor())
	}
	if m.SpecularPower() != 32 {
		t.Errorf("SpecularPower = %f, want 32", m.SpecularPower())
	}
	if m.Alpha() != 1 {
		t.Errorf("Alpha = %f, want clamped to 1", m.Alpha())
	}
}

func TestMaterialSetters(t *testing.T) {
	m := NewMaterial()
	m.SetDiffuseColor(common.NewColor3(0.2, 0.2, 0.2))
	m.SetSpecularColor(common.NewColor3(0, 0, 0))
	m.SetSpecularPower(8)
	if m.DiffuseColor() != common.NewColor3(0.2, 0.2, 0.2) {
		t.Errorf("DiffuseColor = %v, want (0.2, 0.2, 0.2)", m.DiffuseColor())
	}
	if m.SpecularColor() != common.NewColor3(0, 0, 0) {
		t.Errorf("SpecularColor = %v, want black", m.SpecularColor())
	}
	if m.SpecularPower() != 8 {
		t.Errorf("SpecularPower = %f, want 8", m.SpecularPower())
	}
}
