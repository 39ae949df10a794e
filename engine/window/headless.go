package window

import (
	"errors"
	"sync"
)

// HeadlessPlatform is a Platform without a native window. Events are queued by the
// Simulate* methods and delivered on the next PollEvents call, so tests drive the
// same code paths the desktop window does.
type HeadlessPlatform struct {
	mu        *sync.Mutex
	events    Events
	opened    bool
	running   bool
	failOpen  error
	width     int
	height    int
	title     string
	polls     int
	maxPolls  int
	pending   []func(Events)
	onPoll    func(poll int)
	closeHits int
}

var _ Platform = &HeadlessPlatform{}

// HeadlessOption configures a HeadlessPlatform.
type HeadlessOption func(p *HeadlessPlatform)

// WithMaxPolls stops the platform after n calls to PollEvents. Zero means unlimited.
func WithMaxPolls(n int) HeadlessOption {
	return func(p *HeadlessPlatform) {
		p.maxPolls = n
	}
}

// WithPollHook registers fn to run at the start of every PollEvents call with the 1-based poll count.
func WithPollHook(fn func(poll int)) HeadlessOption {
	return func(p *HeadlessPlatform) {
		p.onPoll = fn
	}
}

// WithOpenError makes Open fail with err.
func WithOpenError(err error) HeadlessOption {
	return func(p *HeadlessPlatform) {
		p.failOpen = err
	}
}

// NewHeadlessPlatform creates a headless platform.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *HeadlessPlatform: the platform, not yet opened
func NewHeadlessPlatform(options ...HeadlessOption) *HeadlessPlatform {
	p := &HeadlessPlatform{mu: &sync.Mutex{}}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *HeadlessPlatform) Open(events Events, width, height int, title string) (int, int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failOpen != nil {
		return 0, 0, p.failOpen
	}
	if p.opened {
		return 0, 0, errors.New("headless platform already opened")
	}
	p.events = events
	p.opened = true
	p.running = true
	p.width = width
	p.height = height
	p.title = title
	return width, height, nil
}

func (p *HeadlessPlatform) PollEvents() bool {
	p.mu.Lock()
	p.polls++
	poll := p.polls
	hook := p.onPoll
	p.mu.Unlock()

	if hook != nil {
		hook(poll)
	}

	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	events := p.events
	p.mu.Unlock()

	if events != nil {
		for _, ev := range pending {
			ev(events)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxPolls > 0 && p.polls >= p.maxPolls {
		p.running = false
	}
	return p.running
}

func (p *HeadlessPlatform) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *HeadlessPlatform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return errors.New("headless platform is not opened")
	}
	p.running = false
	p.closeHits++
	return nil
}

// Closed reports how many times Close was called.
func (p *HeadlessPlatform) Closed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeHits
}

// Polls reports how many times PollEvents was called.
func (p *HeadlessPlatform) Polls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.polls
}

// Title returns the title passed to Open.
func (p *HeadlessPlatform) Title() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title
}

// RequestClose stops the platform as if the user closed the window.
func (p *HeadlessPlatform) RequestClose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
}

// SimulateResize queues a framebuffer resize.
func (p *HeadlessPlatform) SimulateResize(width, height int) {
	p.enqueue(func(e Events) {
		e.Resized(width, height)
	})
}

// SimulateScroll queues a scroll wheel event.
func (p *HeadlessPlatform) SimulateScroll(delta float32) {
	p.enqueue(func(e Events) {
		e.Scrolled(delta)
	})
}

// SimulateDrag queues a primary button press at (fromX, fromY), a move to (toX, toY) and a release there.
func (p *HeadlessPlatform) SimulateDrag(fromX, fromY, toX, toY float32) {
	p.enqueue(func(e Events) {
		e.PointerDown(fromX, fromY)
		e.PointerMoved(toX, toY)
		e.PointerUp(toX, toY)
	})
}

// Dispatch delivers queued events immediately on the calling goroutine.
func (p *HeadlessPlatform) Dispatch() {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	events := p.events
	p.mu.Unlock()
	if events != nil {
		for _, ev := range pending {
			ev(events)
		}
	}
}

func (p *HeadlessPlatform) enqueue(ev func(Events)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, ev)
}
