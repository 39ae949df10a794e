package factory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/mesh"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrScenePopulated is returned by Populate when the scene already holds nodes.
var ErrScenePopulated = errors.New("factory: scene already populated")

// Names of the nodes Populate creates.
const (
	CameraName         = "camera1"
	LightName          = "light1"
	SphereName         = "sphere"
	GroundName         = "ground"
	SphereMaterialName = "sphereMaterial"
	GroundMaterialName = "groundMaterial"
)

// Fixed parameters of the demo scene.
var (
	CameraPosition = mgl32.Vec3{0, 5, -10}
	CameraTarget   = mgl32.Vec3{0, 0, 0}
	LightDirection = mgl32.Vec3{0, 1, 0}
	SpherePosition = mgl32.Vec3{0, 1, 0}
)

const (
	CameraFov          float32 = 0.8
	CameraNear         float32 = 0.1
	CameraFar          float32 = 1000
	LightIntensity     float32 = 0.7
	SphereDiameter     float32 = 2
	SphereSegments     int     = 32
	GroundSize         float32 = 10
	GroundSubdivisions int     = 1
)

// Primitives holds the nodes Populate added, in insertion order.
type Primitives struct {
	Camera camera.Camera
	Light  light.Light
	Sphere mesh.Mesh
	Ground mesh.Mesh
}

// Populate fills an empty scene with the demo camera, hemispheric light, sphere and ground.
// The camera gets drag-orbit and wheel-zoom control on w. Sphere and ground are tessellated
// concurrently; nodes are added in the order camera, light, sphere, ground.
// Panics if s or w is nil.
//
// Parameters:
//   - s: the scene to populate, which must be empty
//   - w: the window camera input is attached to
//
// Returns:
//   - Primitives: the created nodes
//   - error: ErrScenePopulated if s is not empty, or a geometry error
func Populate(s scene.Scene, w window.Window) (Primitives, error) {
	if s == nil {
		panic("factory: Populate requires a non-nil Scene")
	}
	if w == nil {
		panic("factory: Populate requires a non-nil Window")
	}
	if s.Count() > 0 {
		return Primitives{}, ErrScenePopulated
	}

	sphere, ground, err := buildMeshes()
	if err != nil {
		return Primitives{}, err
	}

	cam := camera.NewCamera(CameraName, CameraPosition,
		camera.WithTarget(CameraTarget),
		camera.WithUp(mgl32.Vec3{0, 1, 0}),
		camera.WithFov(CameraFov),
		camera.WithNear(CameraNear),
		camera.WithFar(CameraFar),
		camera.WithAspect(w.Size().Aspect()),
	)
	cam.AttachControl(w)

	l := light.NewHemisphericLight(LightName, LightDirection,
		light.WithIntensity(LightIntensity),
		light.WithDiffuse(common.NewColor3(1, 1, 1)),
		light.WithSpecular(common.NewColor3(1, 1, 1)),
		light.WithGroundColor(common.NewColor3(0, 0, 0)),
	)

	s.AddCamera(cam)
	s.AddLight(l)
	s.AddMesh(sphere)
	s.AddMesh(ground)

	return Primitives{Camera: cam, Light: l, Sphere: sphere, Ground: ground}, nil
}

// buildMeshes tessellates the sphere and the ground on a worker pool and waits for both.
func buildMeshes() (mesh.Mesh, mesh.Mesh, error) {
	pool := worker.NewDynamicWorkerPool(2, 2, 1*time.Second)

	var (
		wg                   sync.WaitGroup
		sphere, ground       mesh.Mesh
		sphereErr, groundErr error
	)
	wg.Add(2)
	pool.SubmitTask(worker.Task{
		ID: 0,
		Do: func() (any, error) {
			defer wg.Done()
			sphere, sphereErr = mesh.CreateSphere(SphereName, SphereDiameter, SphereSegments,
				mesh.WithPosition(SpherePosition),
				mesh.WithMaterial(material.NewMaterial(
					material.WithName(SphereMaterialName),
					material.WithDiffuseColor(common.NewColor3(0.4, 0.4, 0.8)),
					material.WithSpecularColor(common.NewColor3(0.4, 0.4, 0.4)),
				)),
			)
			return sphere, sphereErr
		},
	})
	pool.SubmitTask(worker.Task{
		ID: 1,
		Do: func() (any, error) {
			defer wg.Done()
			ground, groundErr = mesh.CreateGround(GroundName, GroundSize, GroundSize, GroundSubdivisions,
				mesh.WithMaterial(material.NewMaterial(
					material.WithName(GroundMaterialName),
					material.WithDiffuseColor(common.NewColor3(0.2, 0.2, 0.2)),
					material.WithSpecularColor(common.NewColor3(1, 1, 1)),
				)),
			)
			return ground, groundErr
		},
	})
	wg.Wait()

	if err := errors.Join(sphereErr, groundErr); err != nil {
		return nil, nil, fmt.Errorf("factory: build meshes: %w", err)
	}
	return sphere, ground, nil
}
