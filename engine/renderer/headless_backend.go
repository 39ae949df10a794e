package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// DrawRecord captures one DrawMesh call on a HeadlessBackend.
type DrawRecord struct {
	Label      string
	Handle     MeshHandle
	IndexCount int
	Object     ObjectUniform
}

// FrameRecord captures everything submitted between BeginFrame and Present on a HeadlessBackend.
type FrameRecord struct {
	Index   uint64
	Surface common.Size
	Clear   common.Color4
	Frame   FrameUniform
	Draws   []DrawRecord
}

type headlessMesh struct {
	label       string
	vertexBytes int
	indexCount  int
}

// HeadlessBackend is a RendererBackend that draws nothing and records what it was asked to do.
// It stands in for the GPU where no adapter is available, such as in tests and CI.
type HeadlessBackend struct {
	mu *sync.Mutex

	surface     common.Size
	configures  int
	presentMode PresentMode
	meshes      map[MeshHandle]headlessMesh
	nextHandle  MeshHandle

	current  *FrameRecord
	last     *FrameRecord
	frames   uint64
	attempts uint64
	released bool

	configureErr error
	beginErr     func(attempt uint64) error
	onFrame      func(FrameRecord)
}

var _ RendererBackend = &HeadlessBackend{}

// HeadlessBackendOption configures a HeadlessBackend.
type HeadlessBackendOption func(b *HeadlessBackend)

// WithConfigureError makes every ConfigureSurface call fail with err.
func WithConfigureError(err error) HeadlessBackendOption {
	return func(b *HeadlessBackend) {
		b.configureErr = err
	}
}

// WithBeginFrameError consults fn on every BeginFrame with the 0-based attempt index.
// Attempts count every BeginFrame call, including failed ones; a non-nil result fails that frame.
func WithBeginFrameError(fn func(attempt uint64) error) HeadlessBackendOption {
	return func(b *HeadlessBackend) {
		b.beginErr = fn
	}
}

// WithFrameObserver calls fn with the record of every presented frame.
func WithFrameObserver(fn func(FrameRecord)) HeadlessBackendOption {
	return func(b *HeadlessBackend) {
		b.onFrame = fn
	}
}

// NewHeadlessBackend creates a HeadlessBackend.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *HeadlessBackend: the backend
func NewHeadlessBackend(options ...HeadlessBackendOption) *HeadlessBackend {
	b := &HeadlessBackend{
		mu:         &sync.Mutex{},
		meshes:     make(map[MeshHandle]headlessMesh),
		nextHandle: 1,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *HeadlessBackend) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.configureErr != nil {
		return b.configureErr
	}
	if width <= 0 || height <= 0 {
		return ErrEmptySurface
	}
	b.surface = common.Size{Width: width, Height: height}
	b.configures++
	return nil
}

func (b *HeadlessBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *HeadlessBackend) UploadMesh(label string, vertexData, indexData []byte, indexCount int) (MeshHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(vertexData)%VertexStride != 0 {
		return 0, fmt.Errorf("mesh %q: vertex data is not a multiple of %d bytes", label, VertexStride)
	}
	if len(indexData) != indexCount*4 {
		return 0, fmt.Errorf("mesh %q: index data holds %d bytes, want %d", label, len(indexData), indexCount*4)
	}
	h := b.nextHandle
	b.nextHandle++
	b.meshes[h] = headlessMesh{label: label, vertexBytes: len(vertexData), indexCount: indexCount}
	return h, nil
}

func (b *HeadlessBackend) BeginFrame(clear common.Color4, frame FrameUniform) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}
	attempt := b.attempts
	b.attempts++
	if b.beginErr != nil {
		if err := b.beginErr(attempt); err != nil {
			return err
		}
	}
	b.current = &FrameRecord{
		Index:   b.frames,
		Surface: b.surface,
		Clear:   clear,
		Frame:   frame,
	}
	return nil
}

func (b *HeadlessBackend) DrawMesh(handle MeshHandle, object ObjectUniform) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return fmt.Errorf("no frame in progress")
	}
	m, ok := b.meshes[handle]
	if !ok {
		return fmt.Errorf("unknown mesh handle %d", handle)
	}
	b.current.Draws = append(b.current.Draws, DrawRecord{
		Label:      m.label,
		Handle:     handle,
		IndexCount: m.indexCount,
		Object:     object,
	})
	return nil
}

func (b *HeadlessBackend) EndFrame() {}

func (b *HeadlessBackend) Present() {
	b.mu.Lock()
	if b.current == nil {
		b.mu.Unlock()
		return
	}
	rec := *b.current
	b.last = &rec
	b.current = nil
	b.frames++
	observer := b.onFrame
	b.mu.Unlock()

	if observer != nil {
		observer(rec)
	}
}

func (b *HeadlessBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.released = true
	b.meshes = make(map[MeshHandle]headlessMesh)
}

// SurfaceSize returns the last configured surface size.
func (b *HeadlessBackend) SurfaceSize() common.Size {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface
}

// Configures returns how many times the surface was successfully configured.
func (b *HeadlessBackend) Configures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.configures
}

// PresentMode returns the last present mode set.
func (b *HeadlessBackend) PresentMode() PresentMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presentMode
}

// Meshes returns the number of uploaded meshes.
func (b *HeadlessBackend) Meshes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.meshes)
}

// Frames returns the number of presented frames.
func (b *HeadlessBackend) Frames() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// LastFrame returns the record of the most recently presented frame.
func (b *HeadlessBackend) LastFrame() (FrameRecord, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		return FrameRecord{}, false
	}
	return *b.last, true
}

// Released reports whether Release was called.
func (b *HeadlessBackend) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}
