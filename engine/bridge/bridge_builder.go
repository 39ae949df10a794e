package bridge

// BridgeOption is a functional option for configuring a Bridge.
type BridgeOption func(b *bridge)

// WithFrameCounter makes State report the value of fn as the frame count.
//
// Parameters:
//   - fn: returns the number of completed frames
//
// Returns:
//   - BridgeOption: option function to apply
func WithFrameCounter(fn func() uint64) BridgeOption {
	return func(b *bridge) {
		b.frames = fn
	}
}
