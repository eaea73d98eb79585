package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/infinigrid/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/infinigrid/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
// It owns the GPU backend and a cache of registered pipelines keyed by name.
type renderer struct {
	backend       RendererBackend
	pipelineCache map[string]pipeline.Pipeline

	// forceFallbackAdapter requests a CPU/software adapter from the backend during Init.
	forceFallbackAdapter bool

	// pendingPresentMode and pendingMSAA hold builder options applied during Init,
	// since the backend does not exist until then.
	pendingPresentMode *PresentMode
	pendingMSAA        *MSAASampleCount
}

// Renderer is the high-level interface over the GPU backend. It manages pipeline
// registration, GPU resource initialization for components, per-frame buffer
// writes, and frame encoding (BeginFrame, DrawCall, EndFrame, Present).
type Renderer interface {
	// Init creates the GPU backend for the given surface and registers all cached pipelines.
	// Must be called once before any other renderer method, from the thread that owns the window.
	//
	// Parameters:
	//   - backendType: the GPU backend to use (currently only BackendTypeWGPU)
	//   - surfaceDescriptor: the platform surface descriptor from the window layer
	//   - width: the initial surface width in pixels
	//   - height: the initial surface height in pixels
	//
	// Returns:
	//   - error: an error if the backend could not be created or a pipeline failed to register
	Init(backendType RendererBackendType, surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int) error

	// Pipeline retrieves a cached pipeline by key.
	//
	// Parameters:
	//   - key: the unique identifier for the pipeline
	//
	// Returns:
	//   - pipeline.Pipeline: the cached pipeline, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipeline adds a pipeline to the cache and, if the backend is initialized,
	// creates its GPU pipeline object immediately.
	//
	// Parameters:
	//   - key: the unique identifier for the pipeline
	//   - p: the pipeline to register
	//
	// Returns:
	//   - error: an error if GPU pipeline creation failed
	RegisterPipeline(key string, p pipeline.Pipeline) error

	// Resize reconfigures the surface and its depth/MSAA attachments for a new size.
	// Call when the window framebuffer size changes.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers creates vertex and index buffers on the provider from raw geometry bytes.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the buffers on
	//   - vertexData: the raw vertex bytes
	//   - indexData: the raw index bytes
	//   - indexCount: the number of indices for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation failed
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the buffers and bind group described by the layout descriptor
	// and stores them on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider describing the storage for the bind group
	//   - descriptor: the BindGroupLayoutDescriptor describing the layout
	//   - bufferUsageOverrides: optional per-binding buffer usage flags
	//   - bufferSizeOverrides: optional per-binding buffer sizes
	//
	// Returns:
	//   - error: an error if resource creation failed
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// UpdateInstanceBuffer uploads per-instance attribute data to the provider's instance
	// buffer, creating or growing the buffer as needed. Call whenever the instance set changes.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the instance buffer on
	//   - data: the raw per-instance attribute bytes
	//   - instanceCount: the number of instances represented in data
	//
	// Returns:
	//   - error: an error if buffer creation failed
	UpdateInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte, instanceCount int) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: the staged writes to flush
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain texture and begins the main render pass.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall encodes one instanced draw within the current frame's render pass.
	//
	// Parameters:
	//   - pipelineKey: the key of the registered pipeline to draw with
	//   - meshProvider: the provider holding vertex, index, and instance buffers
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: providers whose bind groups are set at group indices 0..n in order
	//
	// Returns:
	//   - error: an error if the pipeline key is unknown or not registered
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the frame's command buffer.
	EndFrame()

	// Present presents the rendered frame to the display.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the provided options. The renderer is
// inert until Init is called with a surface descriptor from the window layer.
//
// Parameters:
//   - opts: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: a new Renderer instance
func NewRenderer(opts ...RendererBuilderOption) Renderer {
	r := &renderer{
		pipelineCache: make(map[string]pipeline.Pipeline),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *renderer) Init(backendType RendererBackendType, surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int) error {
	switch backendType {
	case BackendTypeWGPU:
		sampleCount := MSAA4x
		if r.pendingMSAA != nil {
			sampleCount = *r.pendingMSAA
		}
		r.backend = newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, sampleCount)
	default:
		return fmt.Errorf("unsupported renderer backend type: %d", backendType)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(width, height)

	for key, p := range r.pipelineCache {
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %q: %w", key, err)
		}
	}

	return nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipeline(key string, p pipeline.Pipeline) error {
	r.pipelineCache[key] = p
	if r.backend == nil {
		return nil
	}
	return r.backend.RegisterRenderPipeline(p)
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	if r.backend == nil {
		r.pendingPresentMode = &mode
		return
	}
	r.backend.SetPresentMode(mode)
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferUsageOverrides, bufferSizeOverrides)
}

func (r *renderer) UpdateInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte, instanceCount int) error {
	return r.backend.UpdateInstanceBuffer(provider, data, instanceCount)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p, ok := r.pipelineCache[pipelineKey]
	if !ok {
		return fmt.Errorf("unknown pipeline %q", pipelineKey)
	}
	if p.Pipeline() == nil {
		return fmt.Errorf("pipeline %q has not been registered with the backend", pipelineKey)
	}
	r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}
