package material

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuseColor is an option builder that sets the diffuse color of the material.
//
// Parameters:
//   - color: the diffuse color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse color option to a material
func WithDiffuseColor(color common.Color3) MaterialBuilderOption {
	return func(m *material) {
		m.diffuseColor = color
	}
}

// WithSpecularColor is an option builder that sets the specular color of the material.
//
// Parameters:
//   - color: the specular color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular color option to a material
func WithSpecularColor(color common.Color3) MaterialBuilderOption {
	return func(m *material) {
		m.specularColor = color
	}
}

// WithSpecularPower is an option builder that sets the specular exponent of the material.
//
// Parameters:
//   - power: the specular power
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular power option to a material
func WithSpecularPower(power float32) MaterialBuilderOption {
	return func(m *material) {
		m.specularPower = power
	}
}

// WithAlpha is an option builder that sets the opacity of the material, clamped to [0, 1].
//
// Parameters:
//   - alpha: the opacity
//
// Returns:
//   - MaterialBuilderOption: a function that applies the alpha option to a material
func WithAlpha(alpha float32) MaterialBuilderOption {
	return func(m *material) {
		m.alpha = common.Clamp(alpha, 0, 1)
	}
}
