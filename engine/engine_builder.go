package engine

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler ticked once per frame while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		if p != nil {
			e.profiler = p
		}
	}
}

// WithScene sets the scene whose renderer surface and active camera follow viewport resizes.
//
// Parameters:
//   - s: the scene to keep sized to the viewport
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithResizeCoalescing defers resizes to the start of the next frame, keeping only the latest size.
// When disabled (default) each resize notification is applied immediately.
//
// Parameters:
//   - enabled: if true, resizes are coalesced per frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithResizeCoalescing(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.coalesceResize = enabled
	}
}
