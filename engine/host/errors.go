package host

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDocument is returned when NewRenderHost is called without WithDocument.
	ErrNoDocument = errors.New("host: no host document")

	// ErrCanvasNotFound means the host document has no element with the canvas ID.
	ErrCanvasNotFound = errors.New("canvas element not found")

	// ErrNotCanvas means the element with the canvas ID is not a <canvas>.
	ErrNotCanvas = errors.New("element is not a canvas")

	// ErrContextUnavailable means the platform could not provide a rendering context for the canvas.
	ErrContextUnavailable = errors.New("rendering context unavailable")
)

// InitializationError reports a failure to bind the rendering context to the canvas.
// No partially initialized host is returned alongside it.
type InitializationError struct {
	ElementID string
	Err       error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("host: initialize #%s: %v", e.ElementID, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// MountTargetMissing reports that the UI mount element does not exist in the host document.
type MountTargetMissing struct {
	ElementID string
}

func (e *MountTargetMissing) Error() string {
	return fmt.Sprintf("host: mount target #%s not found", e.ElementID)
}
