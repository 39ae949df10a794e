package bridge

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/document"
	"github.com/Carmen-Shannon/oxy-viewer/engine/mesh"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Props are the references handed to a UI. Scene, Camera and Sphere are the live objects
// the host renders; the initial vectors are copies taken before the loop started.
type Props struct {
	Scene                 scene.Scene
	Camera                camera.Camera
	Sphere                mesh.Mesh
	InitialCameraPosition mgl32.Vec3
	InitialCameraTarget   mgl32.Vec3
}

// State is a read-only observation of the shared objects, suitable for serialization.
type State struct {
	CameraPosition        mgl32.Vec3    `json:"cameraPosition"`
	CameraTarget          mgl32.Vec3    `json:"cameraTarget"`
	SpherePosition        mgl32.Vec3    `json:"spherePosition"`
	SphereDiameter        float32       `json:"sphereDiameter"`
	InitialCameraPosition mgl32.Vec3    `json:"initialCameraPosition"`
	InitialCameraTarget   mgl32.Vec3    `json:"initialCameraTarget"`
	ClearColor            common.Color4 `json:"clearColor"`
	Frames                uint64        `json:"frames"`
}

// Bridge connects a UI to the scene it controls.
// All methods are safe to call from any goroutine while the render loop runs.
type Bridge interface {
	// Props returns the live references and the initial camera vectors.
	//
	// Returns:
	//   - Props: the props passed to the UI
	Props() Props

	// ResetCamera restores the camera position and target recorded before the loop started.
	// The update is a single atomic write, so the next frame renders the restored view.
	// Calling it repeatedly has the same effect as calling it once.
	ResetCamera()

	// State observes the current camera, sphere and scene values.
	//
	// Returns:
	//   - State: a consistent copy of the camera and the other shared values
	State() State
}

// UI is mounted by the host onto the element named by the mount ID.
type UI interface {
	// Mount attaches the UI to target and hands it the bridge.
	//
	// Parameters:
	//   - target: the mount element from the host document
	//   - b: the bridge to the running scene
	//
	// Returns:
	//   - error: error if the UI cannot be mounted
	Mount(target document.Element, b Bridge) error
}

type bridge struct {
	scene    scene.Scene
	camera   camera.Camera
	sphere   mesh.Mesh
	snapshot camera.Snapshot
	frames   func() uint64
}

var _ Bridge = &bridge{}

// New creates a Bridge over the given objects.
// Panics if the scene, camera or sphere is nil.
//
// Parameters:
//   - s: the rendered scene
//   - c: the scene camera
//   - sphere: the sphere mesh exposed to the UI
//   - snapshot: the camera state restored by ResetCamera
//   - options: functional options
//
// Returns:
//   - Bridge: the new bridge
func New(s scene.Scene, c camera.Camera, sphere mesh.Mesh, snapshot camera.Snapshot, options ...BridgeOption) Bridge {
	if s == nil {
		panic("bridge: New requires a non-nil Scene")
	}
	if c == nil {
		panic("bridge: New requires a non-nil Camera")
	}
	if sphere == nil {
		panic("bridge: New requires a non-nil Sphere")
	}

	b := &bridge{
		scene:    s,
		camera:   c,
		sphere:   sphere,
		snapshot: snapshot,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *bridge) Props() Props {
	return Props{
		Scene:                 b.scene,
		Camera:                b.camera,
		Sphere:                b.sphere,
		InitialCameraPosition: b.snapshot.Position(),
		InitialCameraTarget:   b.snapshot.Target(),
	}
}

func (b *bridge) ResetCamera() {
	b.snapshot.Restore(b.camera)
}

func (b *bridge) State() State {
	cs := b.camera.State()
	st := State{
		CameraPosition:        cs.Position,
		CameraTarget:          cs.Target,
		SpherePosition:        b.sphere.Position(),
		SphereDiameter:        b.sphere.Diameter(),
		InitialCameraPosition: b.snapshot.Position(),
		InitialCameraTarget:   b.snapshot.Target(),
		ClearColor:            b.scene.ClearColor(),
	}
	if b.frames != nil {
		st.Frames = b.frames()
	}
	return st
}
