// Package wgpubackend implements renderer.RendererBackend on WebGPU through cogentcore/webgpu.
// It draws every mesh with one standard-material pipeline lit by a hemispheric light.
package wgpubackend

import (
	_ "embed"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/standard.wgsl
var standardShaderSource string

// ErrNoSurface is returned when the window's platform cannot provide a WebGPU surface.
var ErrNoSurface = errors.New("wgpubackend: window platform does not provide a WebGPU surface")

// SurfaceSource is implemented by window platforms that can describe a native WebGPU surface.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

type gpuMesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
	objectBuffer *wgpu.Buffer
	bindGroup    *wgpu.BindGroup
}

type backend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode          wgpu.PresentMode
	sampleCount          renderer.MSAASampleCount
	forceFallbackAdapter bool

	// Standard pipeline, created on first surface configuration once the surface format is known.
	pipeline          *wgpu.RenderPipeline
	frameLayout       *wgpu.BindGroupLayout
	objectLayout      *wgpu.BindGroupLayout
	frameBuffer       *wgpu.Buffer
	frameBindGroup    *wgpu.BindGroup
	pipelineSamples   renderer.MSAASampleCount
	pipelineFormat    wgpu.TextureFormat
	pipelineAvailable bool

	meshes     map[renderer.MeshHandle]*gpuMesh
	nextHandle renderer.MeshHandle

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ renderer.RendererBackend = &backend{}

// New creates a WebGPU backend for the window's surface. The window must be backed by a platform
// implementing SurfaceSource and must be used from the OS-locked main goroutine.
//
// Parameters:
//   - w: the window whose surface will be rendered to
//   - options: functional options
//
// Returns:
//   - renderer.RendererBackend: the backend
//   - error: ErrNoSurface, or an adapter/device request failure
func New(w window.Window, options ...BackendBuilderOption) (renderer.RendererBackend, error) {
	source, ok := w.Platform().(SurfaceSource)
	if !ok {
		return nil, ErrNoSurface
	}
	descriptor := source.SurfaceDescriptor()
	if descriptor == nil {
		return nil, ErrNoSurface
	}

	runtime.LockOSThread()
	b := &backend{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		sampleCount: renderer.MSAA4x,
		meshes:      make(map[renderer.MeshHandle]*gpuMesh),
		nextHandle:  1,
	}
	for _, opt := range options {
		opt(b)
	}

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(descriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.releaseInstance()
		return nil, fmt.Errorf("wgpubackend: request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		b.releaseInstance()
		return nil, fmt.Errorf("wgpubackend: request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b, nil
}

func (b *backend) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return renderer.ErrEmptySurface
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		return errors.New("wgpubackend: surface reports no supported formats")
	}
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// Create the MSAA texture that the render pass draws into; the resolved
		// result is written to the swapchain view as the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("wgpubackend: create msaa texture: %w", err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			return fmt.Errorf("wgpubackend: create msaa view: %w", err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("wgpubackend: create depth texture: %w", err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("wgpubackend: create depth view: %w", err)
	}

	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is
	// set per-frame to the swapchain view. When disabled, View is set
	// per-frame to the swapchain view and ResolveTarget remains nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          b.msaaTextureView,
				ResolveTarget: nil,
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if !b.pipelineAvailable || b.pipelineFormat != *b.surfaceFormat || b.pipelineSamples != b.sampleCount {
		if err := b.createPipeline(); err != nil {
			return err
		}
	}
	return nil
}

func (b *backend) SetPresentMode(mode renderer.PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case renderer.PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case renderer.PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *backend) UploadMesh(label string, vertexData, indexData []byte, indexCount int) (renderer.MeshHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.pipelineAvailable {
		return 0, errors.New("wgpubackend: surface must be configured before uploading meshes")
	}

	m := &gpuMesh{indexCount: indexCount}
	var err error
	m.vertexBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return 0, err
	}
	b.queue.WriteBuffer(m.vertexBuffer, 0, vertexData)

	m.indexBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Index Buffer",
		Size:             uint64(len(indexData)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		m.release()
		return 0, err
	}
	b.queue.WriteBuffer(m.indexBuffer, 0, indexData)

	m.objectBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Object Buffer",
		Size:  renderer.ObjectUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		m.release()
		return 0, err
	}

	m.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: b.objectLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  m.objectBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		m.release()
		return 0, err
	}

	h := b.nextHandle
	b.nextHandle++
	b.meshes[h] = m
	return h, nil
}

func (b *backend) BeginFrame(clear common.Color4, frame renderer.FrameUniform) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}
	if b.renderPassDescriptor == nil {
		return renderer.ErrEmptySurface
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.queue.WriteBuffer(b.frameBuffer, 0, frame.Marshal())

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	attachment.ClearValue = wgpu.Color{
		R: float64(clear[0]),
		G: float64(clear[1]),
		B: float64(clear[2]),
		A: float64(clear[3]),
	}
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetPipeline(b.pipeline)
	pass.SetBindGroup(0, b.frameBindGroup, nil)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *backend) DrawMesh(handle renderer.MeshHandle, object renderer.ObjectUniform) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return errors.New("wgpubackend: no frame in progress")
	}
	m, ok := b.meshes[handle]
	if !ok {
		return fmt.Errorf("wgpubackend: unknown mesh handle %d", handle)
	}

	// Each mesh is drawn once per frame, so its uniform buffer can be rewritten before submission.
	b.queue.WriteBuffer(m.objectBuffer, 0, object.Marshal())

	b.framePass.SetBindGroup(1, m.bindGroup, nil)
	b.framePass.SetVertexBuffer(0, m.vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(m.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(m.indexCount), 1, 0, 0, 0)
	return nil
}

func (b *backend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *backend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for h, m := range b.meshes {
		m.release()
		delete(b.meshes, h)
	}
	b.releasePipeline()
	b.releaseAttachments()
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	b.releaseInstance()
}

func (b *backend) releaseInstance() {
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func (b *backend) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (m *gpuMesh) release() {
	if m.bindGroup != nil {
		m.bindGroup.Release()
	}
	if m.objectBuffer != nil {
		m.objectBuffer.Release()
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
	}
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
	}
}
