package scene

import "github.com/Carmen-Shannon/oxy-viewer/common"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithClearColor sets the background color used to clear each frame.
//
// Parameters:
//   - color: the RGBA clear color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClearColor(color common.Color4) SceneBuilderOption {
	return func(s *scene) {
		s.clearColor = color
	}
}
