package renderer

import (
	"encoding/binary"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertex is the vertex layout consumed by the standard shader: position at location 0,
// normal at location 1, both vec3<f32>.
type GPUVertex struct {
	Position [3]float32
	Normal   [3]float32
}

// VertexStride is the byte size of one GPUVertex.
const VertexStride = 24

// FrameUniformSize is the byte size of the group 0 uniform.
const FrameUniformSize = 144

// ObjectUniformSize is the byte size of the group 1 uniform.
const ObjectUniformSize = 96

// FrameUniform holds per-frame data shared by every draw: the camera and the hemispheric light.
//
// WGSL layout (std140-like, 16-byte aligned):
//
//	view_proj    mat4x4<f32>  offset 0
//	camera_pos   vec3<f32>    offset 64, intensity f32 at 76
//	light_dir    vec3<f32>    offset 80
//	sky_color    vec3<f32>    offset 96
//	ground_color vec3<f32>    offset 112
//	specular     vec3<f32>    offset 128
type FrameUniform struct {
	ViewProj       mgl32.Mat4
	CameraPosition mgl32.Vec3
	LightIntensity float32
	LightDirection mgl32.Vec3
	SkyColor       common.Color3
	GroundColor    common.Color3
	LightSpecular  common.Color3
}

// Marshal encodes the uniform in the WGSL layout above.
func (f FrameUniform) Marshal() []byte {
	buf := make([]byte, FrameUniformSize)
	off := common.PutFloat32s(buf, 0, f.ViewProj[:]...)
	off = common.PutFloat32s(buf, off, f.CameraPosition[0], f.CameraPosition[1], f.CameraPosition[2], f.LightIntensity)
	off = common.PutFloat32s(buf, off, f.LightDirection[0], f.LightDirection[1], f.LightDirection[2], 0)
	off = common.PutFloat32s(buf, off, f.SkyColor[0], f.SkyColor[1], f.SkyColor[2], 0)
	off = common.PutFloat32s(buf, off, f.GroundColor[0], f.GroundColor[1], f.GroundColor[2], 0)
	common.PutFloat32s(buf, off, f.LightSpecular[0], f.LightSpecular[1], f.LightSpecular[2], 0)
	return buf
}

// ObjectUniform holds per-mesh data: the model matrix and the standard material.
//
//	model          mat4x4<f32>  offset 0
//	diffuse        vec3<f32>    offset 64, specular_power f32 at 76
//	specular       vec3<f32>    offset 80, alpha f32 at 92
type ObjectUniform struct {
	Model         mgl32.Mat4
	Diffuse       common.Color3
	SpecularPower float32
	Specular      common.Color3
	Alpha         float32
}

// Marshal encodes the uniform in the WGSL layout above.
func (o ObjectUniform) Marshal() []byte {
	buf := make([]byte, ObjectUniformSize)
	off := common.PutFloat32s(buf, 0, o.Model[:]...)
	off = common.PutFloat32s(buf, off, o.Diffuse[0], o.Diffuse[1], o.Diffuse[2], o.SpecularPower)
	common.PutFloat32s(buf, off, o.Specular[0], o.Specular[1], o.Specular[2], o.Alpha)
	return buf
}

// MarshalVertices encodes vertices as tightly packed little-endian float32s.
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	off := 0
	for _, v := range vertices {
		off = common.PutFloat32s(buf, off, v.Position[0], v.Position[1], v.Position[2], v.Normal[0], v.Normal[1], v.Normal[2])
	}
	return buf
}

// MarshalIndices encodes indices as little-endian uint32s.
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
