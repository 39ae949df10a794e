package mesh

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape identifies the builder a Mesh was created by.
type Shape int

const (
	// ShapeCustom is a mesh built from caller-supplied geometry.
	ShapeCustom Shape = iota

	// ShapeSphere is a UV sphere built by CreateSphere.
	ShapeSphere

	// ShapeGround is a flat plane built by CreateGround.
	ShapeGround
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	mu       *sync.RWMutex
	name     string
	shape    Shape
	geometry Geometry
	material material.Material
	visible  atomic.Bool

	position mgl32.Vec3
	rotation mgl32.Vec3
	scaling  mgl32.Vec3

	diameter float32
	width    float32
	height   float32

	handle   renderer.MeshHandle
	uploaded bool
}

// Mesh defines the interface for a renderable primitive: geometry, a transform and one owned material.
//
// Transform accessors are safe to call from any goroutine. A write made between two frames is
// observed by the next frame.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Shape reports which builder produced this mesh.
	//
	// Returns:
	//   - Shape: the mesh shape
	Shape() Shape

	// Geometry retrieves the object-space vertex and index data.
	//
	// Returns:
	//   - Geometry: the mesh geometry
	Geometry() Geometry

	// Material retrieves the material owned by this mesh.
	//
	// Returns:
	//   - material.Material: the mesh material
	Material() material.Material

	// Position retrieves the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation retrieves the Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: rotation around X, Y and Z
	Rotation() mgl32.Vec3

	// Scaling retrieves the per-axis scale factors.
	//
	// Returns:
	//   - mgl32.Vec3: the scaling
	Scaling() mgl32.Vec3

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position mgl32.Vec3)

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - rotation: rotation around X, Y and Z
	SetRotation(rotation mgl32.Vec3)

	// SetScaling sets the per-axis scale factors.
	//
	// Parameters:
	//   - scaling: the new scaling
	SetScaling(scaling mgl32.Vec3)

	// ModelMatrix builds the world matrix from position, rotation and scaling.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// Diameter returns the build diameter of a sphere, or 0 for other shapes.
	//
	// Returns:
	//   - float32: the sphere diameter
	Diameter() float32

	// Width returns the build width of a ground, or 0 for other shapes.
	//
	// Returns:
	//   - float32: the ground width
	Width() float32

	// Height returns the build height (Z extent) of a ground, or 0 for other shapes.
	//
	// Returns:
	//   - float32: the ground height
	Height() float32

	// Visible reports whether the mesh is drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible shows or hides the mesh.
	//
	// Parameters:
	//   - visible: true to draw the mesh
	SetVisible(visible bool)

	// Handle returns the GPU handle once the mesh has been uploaded.
	//
	// Returns:
	//   - renderer.MeshHandle: the handle
	//   - bool: false if not uploaded yet
	Handle() (renderer.MeshHandle, bool)

	// SetHandle records the GPU handle after upload.
	//
	// Parameters:
	//   - handle: the handle returned by Renderer.UploadMesh
	SetHandle(handle renderer.MeshHandle)
}

var _ Mesh = &mesh{}

// NewMesh creates a mesh from caller-supplied geometry.
// Without WithMaterial the mesh gets a fresh default material named after the mesh.
//
// Parameters:
//   - name: the mesh identifier
//   - geometry: object-space geometry
//   - options: variadic list of MeshBuilderOption functions to configure the mesh
//
// Returns:
//   - Mesh: a new Mesh instance
func NewMesh(name string, geometry Geometry, options ...MeshBuilderOption) Mesh {
	return newMesh(name, ShapeCustom, geometry, options...)
}

// CreateSphere builds a sphere mesh.
//
// Parameters:
//   - name: the mesh identifier
//   - diameter: sphere diameter
//   - segments: tessellation level
//   - options: variadic list of MeshBuilderOption functions to configure the mesh
//
// Returns:
//   - Mesh: the sphere
//   - error: ErrInvalidDimensions for bad parameters
func CreateSphere(name string, diameter float32, segments int, options ...MeshBuilderOption) (Mesh, error) {
	g, err := SphereGeometry(diameter, segments)
	if err != nil {
		return nil, err
	}
	m := newMesh(name, ShapeSphere, g, options...)
	m.diameter = diameter
	return m, nil
}

// CreateGround builds a ground plane mesh.
//
// Parameters:
//   - name: the mesh identifier
//   - width: extent along X
//   - height: extent along Z
//   - subdivisions: cells per side
//   - options: variadic list of MeshBuilderOption functions to configure the mesh
//
// Returns:
//   - Mesh: the ground
//   - error: ErrInvalidDimensions for bad parameters
func CreateGround(name string, width, height float32, subdivisions int, options ...MeshBuilderOption) (Mesh, error) {
	g, err := GroundGeometry(width, height, subdivisions)
	if err != nil {
		return nil, err
	}
	m := newMesh(name, ShapeGround, g, options...)
	m.width = width
	m.height = height
	return m, nil
}

func newMesh(name string, shape Shape, geometry Geometry, options ...MeshBuilderOption) *mesh {
	m := &mesh{
		mu:       &sync.RWMutex{},
		name:     name,
		shape:    shape,
		geometry: geometry,
		scaling:  mgl32.Vec3{1, 1, 1},
	}
	m.visible.Store(true)
	for _, opt := range options {
		opt(m)
	}
	if m.material == nil {
		m.material = material.NewMaterial(material.WithName(name + "Material"))
	}
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Shape() Shape {
	return m.shape
}

func (m *mesh) Geometry() Geometry {
	return m.geometry
}

func (m *mesh) Material() material.Material {
	return m.material
}

func (m *mesh) Position() mgl32.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

func (m *mesh) Rotation() mgl32.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rotation
}

func (m *mesh) Scaling() mgl32.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scaling
}

func (m *mesh) SetPosition(position mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = position
}

func (m *mesh) SetRotation(rotation mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotation = rotation
}

func (m *mesh) SetScaling(scaling mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scaling = scaling
}

func (m *mesh) ModelMatrix() mgl32.Mat4 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return common.BuildModelMatrix(m.position, m.rotation, m.scaling)
}

func (m *mesh) Diameter() float32 {
	return m.diameter
}

func (m *mesh) Width() float32 {
	return m.width
}

func (m *mesh) Height() float32 {
	return m.height
}

func (m *mesh) Visible() bool {
	return m.visible.Load()
}

func (m *mesh) SetVisible(visible bool) {
	m.visible.Store(visible)
}

func (m *mesh) Handle() (renderer.MeshHandle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.handle, m.uploaded
}

func (m *mesh) SetHandle(handle renderer.MeshHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handle = handle
	m.uploaded = true
}
