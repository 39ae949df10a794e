package window

import (
	"errors"
	"testing"
)

func TestNewWindowDefaults(t *testing.T) {
	w, err := NewWindow()
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if w.Width() != 1280 || w.Height() != 720 {
		t.Errorf("size = %dx%d, want 1280x720", w.Width(), w.Height())
	}
	if !w.IsRunning() {
		t.Error("new window is not running")
	}
	if _, ok := w.Platform().(*HeadlessPlatform); !ok {
		t.Errorf("default platform = %T, want *HeadlessPlatform", w.Platform())
	}
}

func TestNewWindowOptions(t *testing.T) {
	p := NewHeadlessPlatform()
	w, err := NewWindow(WithPlatform(p), WithTitle("Scene"), WithWidth(640), WithHeight(480))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if got := w.Size(); got.Width != 640 || got.Height != 480 {
		t.Errorf("Size = %+v, want 640x480", got)
	}
	if p.Title() != "Scene" {
		t.Errorf("platform title = %q, want Scene", p.Title())
	}
}

func TestNewWindowErrors(t *testing.T) {
	boom := errors.New("no display")
	if _, err := NewWindow(WithPlatform(NewHeadlessPlatform(WithOpenError(boom)))); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapping %v", err, boom)
	}
	if _, err := NewWindow(WithWidth(0)); err == nil {
		t.Error("zero width accepted")
	}
}

func TestResizeEventUpdatesSizeAndCallback(t *testing.T) {
	p := NewHeadlessPlatform()
	w, err := NewWindow(WithPlatform(p))
	if err != nil {
		t.Fatal(err)
	}
	var gotW, gotH int
	w.SetResizeCallback(func(width, height int) {
		gotW, gotH = width, height
	})
	p.SimulateResize(300, 200)
	p.Dispatch()
	if gotW != 300 || gotH != 200 {
		t.Errorf("callback got %dx%d, want 300x200", gotW, gotH)
	}
	if w.Width() != 300 || w.Height() != 200 {
		t.Errorf("window size = %dx%d, want 300x200", w.Width(), w.Height())
	}
}

func TestPointerCallbacks(t *testing.T) {
	p := NewHeadlessPlatform()
	w, err := NewWindow(WithPlatform(p))
	if err != nil {
		t.Fatal(err)
	}
	var seq []string
	w.SetPointerDownCallback(func(x, y float32) { seq = append(seq, "down") })
	w.SetPointerMoveCallback(func(x, y float32) { seq = append(seq, "move") })
	w.SetPointerUpCallback(func(x, y float32) { seq = append(seq, "up") })
	w.SetScrollCallback(func(delta float32) { seq = append(seq, "scroll") })

	p.SimulateDrag(0, 0, 10, 0)
	p.SimulateScroll(1)
	p.Dispatch()

	want := []string{"down", "move", "up", "scroll"}
	if len(seq) != len(want) {
		t.Fatalf("events = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, seq[i], want[i])
		}
	}
}

func TestProcessMessagesRunsUntilClosed(t *testing.T) {
	p := NewHeadlessPlatform(WithMaxPolls(5))
	w, err := NewWindow(WithPlatform(p))
	if err != nil {
		t.Fatal(err)
	}
	updates := 0
	w.SetUpdateCallback(func() { updates++ })
	w.ProcessMessages()

	// The last poll reports the window stopped, so its update is skipped.
	if updates != 4 {
		t.Errorf("updates = %d, want 4", updates)
	}
	if w.IsRunning() {
		t.Error("window still running after max polls")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	p := NewHeadlessPlatform()
	w, err := NewWindow(WithPlatform(p))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if p.Closed() != 1 {
		t.Errorf("platform closed %d times, want 1", p.Closed())
	}
	if w.IsRunning() {
		t.Error("closed window reports running")
	}
}
