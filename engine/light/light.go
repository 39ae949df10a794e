package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu          *sync.Mutex
	name        string
	direction   mgl32.Vec3
	diffuse     common.Color3
	specular    common.Color3
	groundColor common.Color3
	intensity   float32
	enabled     bool
}

// Light defines the interface for a hemispheric light: an ambient-style light that blends from a
// sky color (the diffuse color) to a ground color depending on how much a surface normal faces
// the light direction. The direction points toward the sky, so (0, 1, 0) lights from above.
//
// Lights are scene-level entities marshaled into the frame uniform each frame.
type Light interface {
	// Name returns the light identifier.
	//
	// Returns:
	//   - string: the light name
	Name() string

	// Direction returns the normalized direction toward the sky hemisphere.
	//
	// Returns:
	//   - mgl32.Vec3: the light direction
	Direction() mgl32.Vec3

	// Diffuse returns the sky color.
	//
	// Returns:
	//   - common.Color3: the diffuse (sky) color
	Diffuse() common.Color3

	// Specular returns the color of specular highlights produced by the light.
	//
	// Returns:
	//   - common.Color3: the specular color
	Specular() common.Color3

	// GroundColor returns the color applied to surfaces facing away from the light direction.
	//
	// Returns:
	//   - common.Color3: the ground color
	GroundColor() common.Color3

	// Intensity returns the brightness multiplier.
	//
	// Returns:
	//   - float32: intensity
	Intensity() float32

	// Enabled reports whether the light contributes to rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetDirection sets the light direction. The direction is normalized before storing;
	// a zero vector is ignored.
	//
	// Parameters:
	//   - direction: the new direction
	SetDirection(direction mgl32.Vec3)

	// SetIntensity sets the brightness multiplier.
	//
	// Parameters:
	//   - intensity: the new intensity, negative values clamp to 0
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewHemisphericLight creates a new hemispheric Light with the given name and direction.
// Defaults: white diffuse and specular, black ground color, intensity 1, enabled.
//
// Parameters:
//   - name: the light identifier
//   - direction: direction toward the sky, normalized on store
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewHemisphericLight(name string, direction mgl32.Vec3, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:          &sync.Mutex{},
		name:        name,
		direction:   mgl32.Vec3{0, 1, 0},
		diffuse:     common.NewColor3(1, 1, 1),
		specular:    common.NewColor3(1, 1, 1),
		groundColor: common.NewColor3(0, 0, 0),
		intensity:   1.0,
		enabled:     true,
	}
	if direction.Len() > 0 {
		l.direction = direction.Normalize()
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.direction
}

func (l *lightImpl) Diffuse() common.Color3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.diffuse
}

func (l *lightImpl) Specular() common.Color3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.specular
}

func (l *lightImpl) GroundColor() common.Color3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetDirection(direction mgl32.Vec3) {
	if direction.Len() == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.direction = direction.Normalize()
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = max(intensity, 0)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}
