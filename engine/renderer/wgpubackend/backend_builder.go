package wgpubackend

import "github.com/Carmen-Shannon/oxy-viewer/engine/renderer"

// BackendBuilderOption is a functional option applied to the WebGPU backend during New.
type BackendBuilderOption func(*backend)

// WithMSAA sets the multisample anti-aliasing sample count.
// When not specified, the default is renderer.MSAA4x. Use renderer.MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - BackendBuilderOption: a function that applies the MSAA option to the backend
func WithMSAA(count renderer.MSAASampleCount) BackendBuilderOption {
	return func(b *backend) {
		b.sampleCount = count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - BackendBuilderOption: a function that applies the option to the backend
func WithForceSoftwareRenderer(force bool) BackendBuilderOption {
	return func(b *backend) {
		b.forceFallbackAdapter = force
	}
}
