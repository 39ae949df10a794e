package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// material is the implementation of the Material interface.
type material struct {
	mu            *sync.Mutex
	name          string
	diffuseColor  common.Color3
	specularColor common.Color3
	specularPower float32
	alpha         float32
}

// Material defines the interface for a standard render material: a Blinn-Phong surface with a
// diffuse color, a specular color and a specular power, lit by the scene's light.
//
// Every mesh owns its own Material; materials are never shared between meshes.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// DiffuseColor retrieves the base diffuse color of the material.
	//
	// Returns:
	//   - common.Color3: the diffuse color
	DiffuseColor() common.Color3

	// SpecularColor retrieves the color of specular highlights.
	//
	// Returns:
	//   - common.Color3: the specular color
	SpecularColor() common.Color3

	// SpecularPower retrieves the specular exponent. Larger values give tighter highlights.
	//
	// Returns:
	//   - float32: the specular power
	SpecularPower() float32

	// Alpha retrieves the material opacity in [0, 1].
	//
	// Returns:
	//   - float32: the alpha value
	Alpha() float32

	// SetDiffuseColor sets the base diffuse color.
	//
	// Parameters:
	//   - color: the new diffuse color
	SetDiffuseColor(color common.Color3)

	// SetSpecularColor sets the specular highlight color.
	//
	// Parameters:
	//   - color: the new specular color
	SetSpecularColor(color common.Color3)

	// SetSpecularPower sets the specular exponent.
	//
	// Parameters:
	//   - power: the new specular power
	SetSpecularPower(power float32)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults match a standard material: white diffuse, white specular, power 64, opaque.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:            &sync.Mutex{},
		diffuseColor:  common.NewColor3(1, 1, 1),
		specularColor: common.NewColor3(1, 1, 1),
		specularPower: 64,
		alpha:         1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) DiffuseColor() common.Color3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.diffuseColor
}

func (m *material) SpecularColor() common.Color3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.specularColor
}

func (m *material) SpecularPower() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.specularPower
}

func (m *material) Alpha() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alpha
}

func (m *material) SetDiffuseColor(color common.Color3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.diffuseColor = color
}

func (m *material) SetSpecularColor(color common.Color3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.specularColor = color
}

func (m *material) SetSpecularPower(power float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.specularPower = power
}
