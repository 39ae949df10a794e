package mesh

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshBuilderOption is a functional option for configuring a Mesh during construction.
type MeshBuilderOption func(*mesh)

// WithPosition is an option builder that sets the initial world-space position.
//
// Parameters:
//   - position: the position
//
// Returns:
//   - MeshBuilderOption: a function that applies the position option to a mesh
func WithPosition(position mgl32.Vec3) MeshBuilderOption {
	return func(m *mesh) {
		m.position = position
	}
}

// WithRotation is an option builder that sets the initial Euler rotation in radians.
//
// Parameters:
//   - rotation: rotation around X, Y and Z
//
// Returns:
//   - MeshBuilderOption: a function that applies the rotation option to a mesh
func WithRotation(rotation mgl32.Vec3) MeshBuilderOption {
	return func(m *mesh) {
		m.rotation = rotation
	}
}

// WithScaling is an option builder that sets the initial per-axis scale.
//
// Parameters:
//   - scaling: the scale factors
//
// Returns:
//   - MeshBuilderOption: a function that applies the scaling option to a mesh
func WithScaling(scaling mgl32.Vec3) MeshBuilderOption {
	return func(m *mesh) {
		m.scaling = scaling
	}
}

// WithMaterial is an option builder that assigns the mesh's material.
// The material must not be shared with another mesh.
//
// Parameters:
//   - mat: the material
//
// Returns:
//   - MeshBuilderOption: a function that applies the material option to a mesh
func WithMaterial(mat material.Material) MeshBuilderOption {
	return func(m *mesh) {
		m.material = mat
	}
}
