package window

// Events receives window and input notifications from a Platform.
// All methods are called on the goroutine running PollEvents.
type Events interface {
	// Resized reports a new framebuffer size in pixels. Zero sizes are reported when minimised.
	Resized(width, height int)

	// Scrolled reports a scroll wheel delta (positive = up).
	Scrolled(delta float32)

	// PointerDown reports a primary button press at x, y.
	PointerDown(x, y float32)

	// PointerUp reports a primary button release at x, y.
	PointerUp(x, y float32)

	// PointerMoved reports pointer movement to x, y.
	PointerMoved(x, y float32)
}

// Platform abstracts the native window system behind a Window.
type Platform interface {
	// Open creates the native window. Called once by NewWindow.
	//
	// Parameters:
	//   - events: sink for window and input events
	//   - width: requested width in pixels
	//   - height: requested height in pixels
	//   - title: window title
	//
	// Returns:
	//   - int: actual framebuffer width
	//   - int: actual framebuffer height
	//   - error: error if the window cannot be created
	Open(events Events, width, height int, title string) (int, int, error)

	// PollEvents processes pending native events without blocking.
	//
	// Returns:
	//   - bool: false once the window should stop running
	PollEvents() bool

	// Running reports whether the native window is still open.
	//
	// Returns:
	//   - bool: true while open
	Running() bool

	// Close destroys the native window.
	//
	// Returns:
	//   - error: error if the window was never opened
	Close() error
}
