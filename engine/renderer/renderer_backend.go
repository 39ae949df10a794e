package renderer

import "github.com/Carmen-Shannon/oxy-viewer/common"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// String returns the mode name.
func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return "unknown"
	}
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default, matching an
	// engine created with antialiasing on.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8x multisample anti-aliasing. Adapter-dependent.
	MSAA8x MSAASampleCount = 8
)

// MeshHandle identifies a mesh whose buffers were uploaded to a backend.
type MeshHandle uint32

// RendererBackend is the GPU API implementation behind a Renderer.
// Calls are made from the render loop goroutine.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and per-size attachments.
	//
	// Parameters:
	//   - width: surface width in pixels, non-zero
	//   - height: surface height in pixels, non-zero
	//
	// Returns:
	//   - error: error if the surface cannot be configured
	ConfigureSurface(width, height int) error

	// SetPresentMode selects the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// UploadMesh creates vertex and index buffers.
	//
	// Parameters:
	//   - label: debug label for the buffers
	//   - vertexData: marshalled GPUVertex data
	//   - indexData: little-endian uint32 indices
	//   - indexCount: number of indices to draw
	//
	// Returns:
	//   - MeshHandle: handle for DrawMesh
	//   - error: error if buffer creation fails
	UploadMesh(label string, vertexData, indexData []byte, indexCount int) (MeshHandle, error)

	// BeginFrame acquires the next surface texture, writes the frame uniform and begins the
	// render pass cleared to clear.
	//
	// Returns:
	//   - error: error if the surface texture cannot be acquired
	BeginFrame(clear common.Color4, frame FrameUniform) error

	// DrawMesh encodes a draw of an uploaded mesh with its per-object uniform.
	//
	// Returns:
	//   - error: error if the handle is unknown
	DrawMesh(handle MeshHandle, object ObjectUniform) error

	// EndFrame ends the render pass and submits the command buffer.
	EndFrame()

	// Present presents the surface texture acquired by BeginFrame.
	Present()

	// Release frees every GPU resource held by the backend.
	Release()
}
