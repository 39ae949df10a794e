// package common contains the plain value types shared across this engine. They are not interface-wrapped structs,
// they are copied by value wherever they move.
package common

// Color3 is an RGB color with components in the [0, 1] range.
type Color3 [3]float32

// Color4 is an RGBA color with components in the [0, 1] range.
type Color4 [4]float32

// NewColor3 creates a Color3 from its red, green and blue components.
//
// Parameters:
//   - r, g, b: color components in [0, 1]
//
// Returns:
//   - Color3: the color
func NewColor3(r, g, b float32) Color3 {
	return Color3{r, g, b}
}

// R returns the red component.
func (c Color3) R() float32 { return c[0] }

// G returns the green component.
func (c Color3) G() float32 { return c[1] }

// B returns the blue component.
func (c Color3) B() float32 { return c[2] }

// ToColor4 promotes the color to RGBA with a fully opaque alpha channel.
//
// Returns:
//   - Color4: the color with alpha 1
func (c Color3) ToColor4() Color4 {
	return Color4{c[0], c[1], c[2], 1}
}

// Alpha returns the alpha component.
func (c Color4) Alpha() float32 { return c[3] }

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Empty reports whether the size has no drawable area.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Aspect returns width / height, or 1 when the size is empty.
func (s Size) Aspect() float32 {
	if s.Empty() {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}
