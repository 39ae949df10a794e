package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidDimensions is returned when a geometry builder receives a non-positive size or segment count.
var ErrInvalidDimensions = errors.New("mesh: invalid dimensions")

// Geometry holds triangle-list vertex and index data in object space.
type Geometry struct {
	Vertices []renderer.GPUVertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the geometry.
func (g Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// SphereGeometry tessellates a UV sphere centered on the origin.
// The sphere has segments+2 latitude bands and twice as many longitude slices,
// so 32 segments yields a smooth sphere at viewer distances.
//
// Parameters:
//   - diameter: sphere diameter, must be > 0
//   - segments: tessellation level, must be >= 1
//
// Returns:
//   - Geometry: the tessellated sphere
//   - error: ErrInvalidDimensions for bad parameters
func SphereGeometry(diameter float32, segments int) (Geometry, error) {
	if diameter <= 0 || segments < 1 {
		return Geometry{}, fmt.Errorf("%w: sphere diameter %g, segments %d", ErrInvalidDimensions, diameter, segments)
	}

	radius := diameter / 2
	rings := segments + 2
	slices := rings * 2

	vertices := make([]renderer.GPUVertex, 0, (rings+1)*(slices+1))
	for ring := 0; ring <= rings; ring++ {
		// theta runs from the north pole (0) to the south pole (pi).
		theta := math.Pi * float64(ring) / float64(rings)
		sinTheta, cosTheta := math.Sincos(theta)
		for slice := 0; slice <= slices; slice++ {
			phi := 2 * math.Pi * float64(slice) / float64(slices)
			sinPhi, cosPhi := math.Sincos(phi)

			n := mgl32.Vec3{
				float32(sinTheta * cosPhi),
				float32(cosTheta),
				float32(sinTheta * sinPhi),
			}
			p := n.Mul(radius)
			vertices = append(vertices, renderer.GPUVertex{
				Position: [3]float32{p[0], p[1], p[2]},
				Normal:   [3]float32{n[0], n[1], n[2]},
			})
		}
	}

	stride := uint32(slices + 1)
	indices := make([]uint32, 0, rings*slices*6)
	for ring := uint32(0); ring < uint32(rings); ring++ {
		for slice := uint32(0); slice < uint32(slices); slice++ {
			a := ring*stride + slice
			b := a + stride
			indices = append(indices, a, a+1, b, b, a+1, b+1)
		}
	}

	return Geometry{Vertices: vertices, Indices: indices}, nil
}

// GroundGeometry tessellates a flat plane on y = 0 centered on the origin, facing +Y.
//
// Parameters:
//   - width: extent along X, must be > 0
//   - height: extent along Z, must be > 0
//   - subdivisions: cells per side, must be >= 1
//
// Returns:
//   - Geometry: the tessellated plane
//   - error: ErrInvalidDimensions for bad parameters
func GroundGeometry(width, height float32, subdivisions int) (Geometry, error) {
	if width <= 0 || height <= 0 || subdivisions < 1 {
		return Geometry{}, fmt.Errorf("%w: ground %gx%g, subdivisions %d", ErrInvalidDimensions, width, height, subdivisions)
	}

	n := subdivisions
	vertices := make([]renderer.GPUVertex, 0, (n+1)*(n+1))
	for row := 0; row <= n; row++ {
		z := height/2 - height*float32(row)/float32(n)
		for col := 0; col <= n; col++ {
			x := -width/2 + width*float32(col)/float32(n)
			vertices = append(vertices, renderer.GPUVertex{
				Position: [3]float32{x, 0, z},
				Normal:   [3]float32{0, 1, 0},
			})
		}
	}

	stride := uint32(n + 1)
	indices := make([]uint32, 0, n*n*6)
	for row := uint32(0); row < uint32(n); row++ {
		for col := uint32(0); col < uint32(n); col++ {
			a := row*stride + col
			b := a + stride
			indices = append(indices, a, a+1, b, a+1, b+1, b)
		}
	}

	return Geometry{Vertices: vertices, Indices: indices}, nil
}
