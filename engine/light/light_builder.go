package light

import "github.com/Carmen-Shannon/oxy-viewer/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithDiffuse is an option builder that sets the sky color of the light.
//
// Parameters:
//   - color: the diffuse color
//
// Returns:
//   - LightBuilderOption: a function that applies the diffuse option to a lightImpl
func WithDiffuse(color common.Color3) LightBuilderOption {
	return func(l *lightImpl) {
		l.diffuse = color
	}
}

// WithSpecular is an option builder that sets the specular color of the light.
//
// Parameters:
//   - color: the specular color
//
// Returns:
//   - LightBuilderOption: a function that applies the specular option to a lightImpl
func WithSpecular(color common.Color3) LightBuilderOption {
	return func(l *lightImpl) {
		l.specular = color
	}
}

// WithGroundColor is an option builder that sets the ground color of the light.
//
// Parameters:
//   - color: the ground color
//
// Returns:
//   - LightBuilderOption: a function that applies the ground color option to a lightImpl
func WithGroundColor(color common.Color3) LightBuilderOption {
	return func(l *lightImpl) {
		l.groundColor = color
	}
}

// WithIntensity is an option builder that sets the brightness multiplier of the light.
//
// Parameters:
//   - intensity: the intensity, negative values clamp to 0
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = max(intensity, 0)
	}
}

// WithEnabled is an option builder that sets whether the light starts enabled.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
