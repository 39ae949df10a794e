package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/mesh"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
)

// ErrNoActiveCamera is returned by Render when the scene has no camera to render from.
var ErrNoActiveCamera = errors.New("scene: no active camera")

// ErrNotInScene is returned when an operation names an object that was never added to the scene.
var ErrNotInScene = errors.New("scene: object not in scene")

// Node is anything a Scene holds: cameras, lights and meshes.
type Node interface {
	Name() string
}

// Scene is an ordered container of cameras, lights and meshes drawn by one Renderer.
// Insertion order is preserved across all node kinds and drives draw order.
// Thread-safe for concurrent access; changes made between frames are seen by the next Render.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Renderer returns the renderer the scene draws with.
	Renderer() renderer.Renderer

	// ClearColor returns the background color used to clear each frame.
	ClearColor() common.Color4

	// SetClearColor sets the background color used to clear each frame.
	//
	// Parameters:
	//   - color: the RGBA clear color
	SetClearColor(color common.Color4)

	// AddCamera adds a camera. The first camera added becomes the active camera.
	//
	// Parameters:
	//   - c: the camera to add
	AddCamera(c camera.Camera)

	// ActiveCamera returns the camera frames are rendered from, or nil.
	ActiveCamera() camera.Camera

	// SetActiveCamera selects the camera frames are rendered from.
	//
	// Parameters:
	//   - c: a camera previously added with AddCamera
	//
	// Returns:
	//   - error: ErrNotInScene if c was never added
	SetActiveCamera(c camera.Camera) error

	// Cameras returns the scene's cameras in insertion order.
	Cameras() []camera.Camera

	// AddLight adds a light source. The first enabled light shades every mesh.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// Lights returns the scene's lights in insertion order.
	Lights() []light.Light

	// AddMesh adds a mesh. Its geometry is uploaded to the GPU on the next Render.
	//
	// Parameters:
	//   - m: the mesh to add
	AddMesh(m mesh.Mesh)

	// Meshes returns the scene's meshes in insertion order.
	Meshes() []mesh.Mesh

	// MeshByName returns the first mesh with the given name.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - mesh.Mesh: the mesh or nil
	//   - bool: whether a mesh was found
	MeshByName(name string) (mesh.Mesh, bool)

	// Nodes returns every camera, light and mesh in the order they were added.
	Nodes() []Node

	// Count returns the total number of nodes in the scene.
	Count() int

	// Render draws one frame: uploads pending meshes, clears to ClearColor, draws every
	// visible mesh from the active camera and presents. A zero-area surface skips the frame.
	//
	// Returns:
	//   - error: an upload or begin-frame error, in which case nothing is presented,
	//     or the joined errors of individual draws that were dropped from a presented frame
	Render() error
}

type scene struct {
	mu *sync.RWMutex

	name       string
	r          renderer.Renderer
	clearColor common.Color4

	nodes   []Node
	cameras []camera.Camera
	lights  []light.Light
	meshes  []mesh.Mesh
	active  camera.Camera
}

var _ Scene = &scene{}

// NewScene creates an empty scene drawn by r.
// Panics if r is nil.
//
// Parameters:
//   - r: the renderer frames are drawn with
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:         &sync.RWMutex{},
		name:       "scene",
		r:          r,
		clearColor: common.NewColor3(0.2, 0.2, 0.3).ToColor4(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) ClearColor() common.Color4 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clearColor
}

func (s *scene) SetClearColor(color common.Color4) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearColor = color
}

func (s *scene) AddCamera(c camera.Camera) {
	if c == nil {
		panic("scene: AddCamera requires a non-nil Camera")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameras = append(s.cameras, c)
	s.nodes = append(s.nodes, c)
	if s.active == nil {
		s.active = c
	}
}

func (s *scene) ActiveCamera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActiveCamera(c camera.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.cameras {
		if existing == c {
			s.active = c
			return nil
		}
	}
	return ErrNotInScene
}

func (s *scene) Cameras() []camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]camera.Camera, len(s.cameras))
	copy(out, s.cameras)
	return out
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		panic("scene: AddLight requires a non-nil Light")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
	s.nodes = append(s.nodes, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) AddMesh(m mesh.Mesh) {
	if m == nil {
		panic("scene: AddMesh requires a non-nil Mesh")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshes = append(s.meshes, m)
	s.nodes = append(s.nodes, m)
}

func (s *scene) Meshes() []mesh.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]mesh.Mesh, len(s.meshes))
	copy(out, s.meshes)
	return out
}

func (s *scene) MeshByName(name string) (mesh.Mesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.meshes {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

func (s *scene) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *scene) Render() error {
	s.mu.RLock()
	cam := s.active
	clearColor := s.clearColor
	lights := s.lights
	meshes := s.meshes
	s.mu.RUnlock()

	if cam == nil {
		return ErrNoActiveCamera
	}
	if s.r.SurfaceSize().Empty() {
		return nil
	}

	for _, m := range meshes {
		if err := s.upload(m); err != nil {
			return err
		}
	}

	if err := s.r.BeginFrame(clearColor, frameUniform(cam.State(), lights)); err != nil {
		return fmt.Errorf("scene: begin frame: %w", err)
	}
	// A failed draw drops only that mesh; the acquired surface must still be presented.
	var drawErrs []error
	for _, m := range meshes {
		if !m.Visible() {
			continue
		}
		handle, _ := m.Handle()
		if err := s.r.Draw(handle, objectUniform(m)); err != nil {
			drawErrs = append(drawErrs, fmt.Errorf("scene: draw %q: %w", m.Name(), err))
		}
	}
	s.r.EndFrame()
	s.r.Present()
	return errors.Join(drawErrs...)
}

// upload sends the mesh geometry to the GPU once.
func (s *scene) upload(m mesh.Mesh) error {
	if _, ok := m.Handle(); ok {
		return nil
	}
	g := m.Geometry()
	handle, err := s.r.UploadMesh(m.Name(), g.Vertices, g.Indices)
	if err != nil {
		return fmt.Errorf("scene: upload %q: %w", m.Name(), err)
	}
	m.SetHandle(handle)
	return nil
}

func frameUniform(cs camera.State, lights []light.Light) renderer.FrameUniform {
	frame := renderer.FrameUniform{
		ViewProj:       cs.ViewProjectionMatrix(),
		CameraPosition: cs.Position,
	}
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		frame.LightDirection = l.Direction()
		frame.LightIntensity = l.Intensity()
		frame.SkyColor = l.Diffuse()
		frame.GroundColor = l.GroundColor()
		frame.LightSpecular = l.Specular()
		break
	}
	return frame
}

func objectUniform(m mesh.Mesh) renderer.ObjectUniform {
	mat := m.Material()
	return renderer.ObjectUniform{
		Model:         m.ModelMatrix(),
		Diffuse:       mat.DiffuseColor(),
		SpecularPower: mat.SpecularPower(),
		Specular:      mat.SpecularColor(),
		Alpha:         mat.Alpha(),
	}
}
