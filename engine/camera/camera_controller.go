package camera

// CameraController binds window pointer input to a camera: dragging with the primary button
// orbits around the target and the scroll wheel zooms toward it. Orbit angles are derived
// from the camera's current position on every event, so external writes (such as a reset)
// are picked up by the next drag.
type CameraController interface {
	// Attached reports whether the controller still receives window input.
	//
	// Returns:
	//   - bool: true until DetachControl is called on the camera
	Attached() bool

	// Dragging reports whether a primary-button drag is in progress.
	//
	// Returns:
	//   - bool: true while the button is held
	Dragging() bool

	// Orbit rotates the camera around its target.
	//
	// Parameters:
	//   - deltaAzimuth: horizontal angle change in radians
	//   - deltaElevation: vertical angle change in radians, the result is clamped to the elevation bounds
	Orbit(deltaAzimuth, deltaElevation float32)

	// Zoom moves the camera along the view direction. Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed; the radius is clamped to the radius bounds
	Zoom(delta float32)

	// MinRadius returns the minimum distance from the target.
	MinRadius() float32

	// MaxRadius returns the maximum distance from the target.
	MaxRadius() float32

	// MouseSensitivity returns the radians of orbit per pixel of drag.
	MouseSensitivity() float32

	// ZoomSpeed returns the radius change per unit of scroll.
	ZoomSpeed() float32
}
