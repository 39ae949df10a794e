package camera

import "github.com/go-gl/mathgl/mgl32"

// Snapshot is an immutable copy of a camera's position and target taken at one instant.
// It is a value type; copies share nothing with the camera or each other.
type Snapshot struct {
	position mgl32.Vec3
	target   mgl32.Vec3
}

// TakeSnapshot copies the camera's position and target, read under a single lock.
//
// Parameters:
//   - c: the camera to copy from
//
// Returns:
//   - Snapshot: the recorded vectors
func TakeSnapshot(c Camera) Snapshot {
	if c == nil {
		panic("camera: TakeSnapshot requires a non-nil Camera")
	}
	s := c.State()
	return Snapshot{position: s.Position, target: s.Target}
}

// Position returns the recorded position.
func (s Snapshot) Position() mgl32.Vec3 {
	return s.position
}

// Target returns the recorded target.
func (s Snapshot) Target() mgl32.Vec3 {
	return s.target
}

// Restore writes the recorded position and target back to c in one atomic update.
// The written values are bit-for-bit the recorded ones.
//
// Parameters:
//   - c: the camera to restore
func (s Snapshot) Restore(c Camera) {
	c.SetPositionAndTarget(s.position, s.target)
}
