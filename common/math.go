package common

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// depthRemap converts OpenGL clip-space depth [-1, 1] into the WebGPU range [0, 1].
var depthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// PerspectiveZO creates a right-handed perspective projection matrix whose clip-space depth
// lies in [0, 1] as WebGPU expects. mgl32.Perspective targets the OpenGL [-1, 1] convention.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	return depthRemap.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// BuildModelMatrix constructs a model matrix from position, Euler rotation and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll).
//
// Parameters:
//   - position: translation in world space
//   - rotation: rotation angles in radians around each axis
//   - scaling: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the model matrix (column-major)
func BuildModelMatrix(position, rotation, scaling mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DY(rotation[1]).
		Mul4(mgl32.HomogRotate3DX(rotation[0])).
		Mul4(mgl32.HomogRotate3DZ(rotation[2]))
	return mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(r).
		Mul4(mgl32.Scale3D(scaling[0], scaling[1], scaling[2]))
}

// SameVec3 reports whether two vectors are identical bit-for-bit. Unlike ApproxEqual it
// distinguishes -0 from +0 and treats equal NaN payloads as equal.
func SameVec3(a, b mgl32.Vec3) bool {
	for i := range 3 {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}
	return true
}

// PutFloat32s writes values into buf as consecutive little-endian float32s starting at offset.
// buf must be large enough to hold them.
//
// Parameters:
//   - buf: destination buffer
//   - offset: byte offset of the first value
//   - values: the floats to write
//
// Returns:
//   - int: the byte offset just past the last value written
func PutFloat32s(buf []byte, offset int, values ...float32) int {
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
		offset += 4
	}
	return offset
}
