package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/sirupsen/logrus"
)

// resourceState tracks a resource group through its lifecycle. A failed
// group stays failed until the next successful re-creation, so draw calls
// can cheaply refuse to touch half-built state.
type resourceState int

const (
	stateUninitialized resourceState = iota
	stateReady
	stateFailed
)

// transformUniformSize is the byte size of the optional transform uniform
// (one mat4x4<f32>).
const transformUniformSize = 64

// gpuTimeout bounds every fence wait.
const gpuTimeout = 5 * time.Second

// Presenter displays processed frames as a fullscreen textured quad on an
// offscreen render target. The lifecycle mirrors a classic GL renderer:
// InitializeContext once, CompileAndLink, AllocateTexture per frame size,
// then UploadFrame + Draw per frame.
//
// The presenter is not safe for concurrent use. One goroutine owns the
// frame loop; that matches how the capture pipeline drives it.
type Presenter struct {
	logger *logrus.Logger
	device Device
	queue  Queue

	viewportWidth  int
	viewportHeight int
	clearColor     gputypes.Color

	// Quad geometry and the offscreen target, created once in
	// InitializeContext.
	vertexBuf     Buffer
	indexBuf      Buffer
	targetTex     Texture
	targetView    TextureView
	targetWidth   uint32
	targetHeight  uint32
	geometryState resourceState

	// Pipeline objects, created in CompileAndLink.
	vertexModule   ShaderModule
	fragmentModule ShaderModule
	bindLayout     BindGroupLayout
	pipeLayout     PipelineLayout
	pipeline       RenderPipeline
	sampler        Sampler
	uniformBuf     Buffer
	hasTransform   bool
	pipelineState  resourceState

	// Frame texture, re-created by AllocateTexture when the camera
	// resolution changes.
	frameTex     Texture
	frameView    TextureView
	frameBind    BindGroup
	frameWidth   uint32
	frameHeight  uint32
	textureState resourceState
}

// NewPresenter creates a presenter on the given device and queue. No GPU
// resources are allocated until InitializeContext.
func NewPresenter(logger *logrus.Logger, device Device, queue Queue) *Presenter {
	return &Presenter{
		logger:     logger,
		device:     device,
		queue:      queue,
		clearColor: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
	}
}

// InitializeContext creates the quad geometry and the offscreen render
// target at the given surface size, and sets the initial viewport.
//
// Calling it twice without Teardown leaks the first generation of
// resources; the surrounding loop initializes exactly once.
func (p *Presenter) InitializeContext(width, height int) error {
	if width <= 0 || height <= 0 {
		p.geometryState = stateFailed
		return fmt.Errorf("%w: surface size %dx%d", ErrResourceInvalid, width, height)
	}
	p.viewportWidth = width
	p.viewportHeight = height

	vertexData := quadVertexData()
	vertexBuf, err := p.device.CreateBuffer(&BufferDescriptor{
		Label: "quad_vertices",
		Size:  uint64(len(vertexData)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		p.geometryState = stateFailed
		return fmt.Errorf("%w: create vertex buffer: %v", ErrResourceInvalid, err)
	}
	p.queue.WriteBuffer(vertexBuf, 0, vertexData)
	p.vertexBuf = vertexBuf

	indexData := quadIndexData()
	indexBuf, err := p.device.CreateBuffer(&BufferDescriptor{
		Label: "quad_indices",
		Size:  uint64(len(indexData)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		p.device.DestroyBuffer(p.vertexBuf)
		p.vertexBuf = nil
		p.geometryState = stateFailed
		return fmt.Errorf("%w: create index buffer: %v", ErrResourceInvalid, err)
	}
	p.queue.WriteBuffer(indexBuf, 0, indexData)
	p.indexBuf = indexBuf

	targetTex, err := p.device.CreateTexture(&TextureDescriptor{
		Label:         "present_target",
		Width:         uint32(width),
		Height:        uint32(height),
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		p.releaseGeometry()
		p.geometryState = stateFailed
		return fmt.Errorf("%w: create render target: %v", ErrResourceInvalid, err)
	}
	p.targetTex = targetTex

	targetView, err := p.device.CreateTextureView(targetTex, &TextureViewDescriptor{
		Label:         "present_target_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.device.DestroyTexture(p.targetTex)
		p.targetTex = nil
		p.releaseGeometry()
		p.geometryState = stateFailed
		return fmt.Errorf("%w: create render target view: %v", ErrResourceInvalid, err)
	}
	p.targetView = targetView
	p.targetWidth = uint32(width)
	p.targetHeight = uint32(height)
	p.geometryState = stateReady

	p.logger.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
	}).Debug("presentation context initialized")
	return nil
}

// SetClearColor sets the color the target is cleared to before each draw.
func (p *Presenter) SetClearColor(r, g, b, a float64) {
	p.clearColor = gputypes.Color{R: r, G: g, B: b, A: a}
}

// CompileAndLink builds the render pipeline from per-stage WGSL sources.
// A stage failure reports ErrShaderCompile with the backend diagnostic; a
// failure combining the stages reports ErrShaderLink. Either way no
// partial pipeline survives.
//
// If the vertex source declares a uniform block, a transform uniform is
// bound at binding 2 and initialized to identity. A vertex shader without
// one skips that binding entirely.
func (p *Presenter) CompileAndLink(vertexSrc, fragmentSrc string) error {
	p.releasePipeline()

	vertexModule, err := p.device.CreateShaderModule(&ShaderModuleDescriptor{
		Label: "quad_vertex",
		WGSL:  vertexSrc,
	})
	if err != nil {
		p.pipelineState = stateFailed
		return fmt.Errorf("%w: vertex stage: %v", ErrShaderCompile, err)
	}
	p.vertexModule = vertexModule

	fragmentModule, err := p.device.CreateShaderModule(&ShaderModuleDescriptor{
		Label: "quad_fragment",
		WGSL:  fragmentSrc,
	})
	if err != nil {
		p.device.DestroyShaderModule(p.vertexModule)
		p.vertexModule = nil
		p.pipelineState = stateFailed
		return fmt.Errorf("%w: fragment stage: %v", ErrShaderCompile, err)
	}
	p.fragmentModule = fragmentModule

	p.hasTransform = strings.Contains(vertexSrc, "var<uniform>")

	if err := p.linkPipeline(); err != nil {
		p.releasePipeline()
		p.pipelineState = stateFailed
		return err
	}
	p.pipelineState = stateReady

	// A frame texture allocated before a recompile needs its bind group
	// rebuilt against the new layout.
	if p.textureState == stateReady {
		if err := p.rebuildFrameBindGroup(); err != nil {
			p.textureState = stateFailed
			return err
		}
	}

	p.logger.WithField("transform_uniform", p.hasTransform).Debug("quad pipeline linked")
	return nil
}

// linkPipeline creates the layouts, sampler, and render pipeline from the
// already-compiled shader modules.
func (p *Presenter) linkPipeline() error {
	// Bind group layout:
	//   Binding 0: frame texture (texture_2d, fragment)
	//   Binding 1: sampler (fragment)
	//   Binding 2: transform uniform (vertex, only when declared)
	entries := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
	if p.hasTransform {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    2,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		})
	}

	bindLayout, err := p.device.CreateBindGroupLayout(&BindGroupLayoutDescriptor{
		Label:   "quad_bind_layout",
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("%w: create bind group layout: %v", ErrShaderLink, err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&PipelineLayoutDescriptor{
		Label:            "quad_pipe_layout",
		BindGroupLayouts: []BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("%w: create pipeline layout: %v", ErrShaderLink, err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&SamplerDescriptor{
		Label:        "frame_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("%w: create sampler: %v", ErrShaderLink, err)
	}
	p.sampler = sampler

	if p.hasTransform {
		uniformBuf, err := p.device.CreateBuffer(&BufferDescriptor{
			Label: "quad_transform",
			Size:  transformUniformSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("%w: create transform uniform: %v", ErrShaderLink, err)
		}
		p.queue.WriteBuffer(uniformBuf, 0, identityTransform())
		p.uniformBuf = uniformBuf
	}

	blend := gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
	pipeline, err := p.device.CreateRenderPipeline(&RenderPipelineDescriptor{
		Label:  "quad_pipeline",
		Layout: p.pipeLayout,
		Vertex: VertexState{
			Module:     p.vertexModule,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayout(),
		},
		Fragment: &FragmentState{
			Module:     p.fragmentModule,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatRGBA8Unorm,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: create render pipeline: %v", ErrShaderLink, err)
	}
	p.pipeline = pipeline
	return nil
}

// quadVertexLayout returns the vertex buffer layout matching VertexInput
// in quad_vert.wgsl:
//
//	location 0: position (vec2<f32>)
//	location 1: tex_coord (vec2<f32>)
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		},
	}
}

// AllocateTexture creates (or re-creates) the frame texture at the given
// dimensions. Call it once per camera resolution, not per frame; uploads
// go through UploadFrame.
func (p *Presenter) AllocateTexture(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: texture size %dx%d", ErrResourceInvalid, width, height)
	}
	p.releaseFrameTexture()

	tex, err := p.device.CreateTexture(&TextureDescriptor{
		Label:         "frame_texture",
		Width:         uint32(width),
		Height:        uint32(height),
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		p.textureState = stateFailed
		return fmt.Errorf("%w: create frame texture: %v", ErrResourceInvalid, err)
	}
	p.frameTex = tex

	view, err := p.device.CreateTextureView(tex, &TextureViewDescriptor{
		Label:         "frame_texture_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.device.DestroyTexture(p.frameTex)
		p.frameTex = nil
		p.textureState = stateFailed
		return fmt.Errorf("%w: create frame texture view: %v", ErrResourceInvalid, err)
	}
	p.frameView = view
	p.frameWidth = uint32(width)
	p.frameHeight = uint32(height)
	p.textureState = stateReady

	if p.pipelineState == stateReady {
		if err := p.rebuildFrameBindGroup(); err != nil {
			p.textureState = stateFailed
			return err
		}
	}

	p.logger.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
	}).Debug("frame texture allocated")
	return nil
}

// rebuildFrameBindGroup binds the current frame texture, sampler, and
// optional transform uniform against the current pipeline layout.
func (p *Presenter) rebuildFrameBindGroup() error {
	if p.frameBind != nil {
		p.device.DestroyBindGroup(p.frameBind)
		p.frameBind = nil
	}

	entries := []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.TextureViewBinding{
			TextureView: p.frameView.NativeHandle(),
		}},
		{Binding: 1, Resource: gputypes.SamplerBinding{
			Sampler: p.sampler.NativeHandle(),
		}},
	}
	if p.hasTransform {
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: 2,
			Resource: gputypes.BufferBinding{
				Buffer: p.uniformBuf.NativeHandle(),
				Offset: 0,
				Size:   transformUniformSize,
			},
		})
	}

	bind, err := p.device.CreateBindGroup(&BindGroupDescriptor{
		Label:   "frame_bind",
		Layout:  p.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("%w: create frame bind group: %v", ErrResourceInvalid, err)
	}
	p.frameBind = bind
	return nil
}

// UploadFrame copies one RGBA frame into the allocated texture. A frame
// that does not match the allocated dimensions is logged and dropped
// rather than failing the loop; the next valid frame recovers the
// display.
func (p *Presenter) UploadFrame(data []byte, width, height int) {
	if p.textureState != stateReady {
		p.logger.Warn("frame upload skipped, no texture allocated")
		return
	}
	if uint32(width) != p.frameWidth || uint32(height) != p.frameHeight {
		p.logger.WithFields(logrus.Fields{
			"got_width":  width,
			"got_height": height,
			"want_width": p.frameWidth,
		}).Warn("frame upload skipped, dimension mismatch")
		return
	}
	if len(data) != width*height*4 {
		p.logger.WithField("bytes", len(data)).Warn("frame upload skipped, short buffer")
		return
	}

	p.queue.WriteTexture(p.frameTex, data, ImageDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(width) * 4,
		RowsPerImage: uint32(height),
	}, uint32(width), uint32(height))
}

// Draw clears the target and renders the quad with the latest uploaded
// frame, then blocks until the GPU finishes. With no pipeline or no frame
// texture it refuses without touching the device.
func (p *Presenter) Draw() error {
	if p.geometryState != stateReady || p.pipelineState != stateReady || p.textureState != stateReady {
		p.logger.Warn("draw skipped, presenter resources not ready")
		return fmt.Errorf("%w: presenter not ready (geometry=%d pipeline=%d texture=%d)",
			ErrResourceInvalid, p.geometryState, p.pipelineState, p.textureState)
	}

	encoder, err := p.device.CreateCommandEncoder("present_encoder")
	if err != nil {
		return fmt.Errorf("%w: create command encoder: %v", ErrResourceInvalid, err)
	}
	if err := encoder.BeginEncoding("present_frame"); err != nil {
		return fmt.Errorf("%w: begin encoding: %v", ErrResourceInvalid, err)
	}

	rp := encoder.BeginRenderPass(&RenderPassDescriptor{
		Label: "present_pass",
		ColorAttachments: []RenderPassColorAttachment{{
			View:       p.targetView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: p.clearColor,
		}},
	})
	rp.SetViewport(0, 0, float32(p.viewportWidth), float32(p.viewportHeight), 0, 1)
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.frameBind, nil)
	rp.SetVertexBuffer(0, p.vertexBuf, 0)
	rp.SetIndexBuffer(p.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(quadIndexCount, 1, 0, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("%w: end encoding: %v", ErrResourceInvalid, err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	fence, err := p.device.CreateFence()
	if err != nil {
		return fmt.Errorf("%w: create fence: %v", ErrResourceInvalid, err)
	}
	defer p.device.DestroyFence(fence)

	if err := p.queue.Submit([]CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("%w: submit: %v", ErrResourceInvalid, err)
	}
	ok, err := p.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !ok {
		return fmt.Errorf("%w: wait for GPU (ok=%v): %v", ErrResourceInvalid, ok, err)
	}
	return nil
}

// OnResize updates the viewport. The render target keeps its size; the
// quad stretches into the new viewport on the next draw.
func (p *Presenter) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.viewportWidth = width
	p.viewportHeight = height
	p.logger.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
	}).Debug("viewport resized")
}

// ReadPixels copies the render target back to the CPU as tightly packed
// RGBA rows. Copy pitch is aligned to 256 bytes for the transfer and the
// padding is stripped before returning.
func (p *Presenter) ReadPixels() ([]byte, error) {
	if p.geometryState != stateReady {
		return nil, fmt.Errorf("%w: no render target", ErrResourceInvalid)
	}

	bytesPerRow := p.targetWidth * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(p.targetHeight)

	staging, err := p.device.CreateBuffer(&BufferDescriptor{
		Label: "present_readback",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create staging buffer: %v", ErrResourceInvalid, err)
	}
	defer p.device.DestroyBuffer(staging)

	encoder, err := p.device.CreateCommandEncoder("readback_encoder")
	if err != nil {
		return nil, fmt.Errorf("%w: create command encoder: %v", ErrResourceInvalid, err)
	}
	if err := encoder.BeginEncoding("readback"); err != nil {
		return nil, fmt.Errorf("%w: begin encoding: %v", ErrResourceInvalid, err)
	}

	encoder.TransitionTexture(p.targetTex,
		gputypes.TextureUsageRenderAttachment, gputypes.TextureUsageCopySrc)
	encoder.CopyTextureToBuffer(p.targetTex, staging, ImageDataLayout{
		Offset:       0,
		BytesPerRow:  alignedBytesPerRow,
		RowsPerImage: p.targetHeight,
	}, p.targetWidth, p.targetHeight)
	encoder.TransitionTexture(p.targetTex,
		gputypes.TextureUsageCopySrc, gputypes.TextureUsageRenderAttachment)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("%w: end encoding: %v", ErrResourceInvalid, err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	fence, err := p.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("%w: create fence: %v", ErrResourceInvalid, err)
	}
	defer p.device.DestroyFence(fence)

	if err := p.queue.Submit([]CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("%w: submit: %v", ErrResourceInvalid, err)
	}
	ok, err := p.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !ok {
		return nil, fmt.Errorf("%w: wait for GPU (ok=%v): %v", ErrResourceInvalid, ok, err)
	}

	readback := make([]byte, stagingSize)
	if err := p.queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("%w: read staging buffer: %v", ErrResourceInvalid, err)
	}

	if alignedBytesPerRow == bytesPerRow {
		return readback[:uint64(bytesPerRow)*uint64(p.targetHeight)], nil
	}
	tight := make([]byte, uint64(bytesPerRow)*uint64(p.targetHeight))
	for row := uint32(0); row < p.targetHeight; row++ {
		srcOff := uint64(row) * uint64(alignedBytesPerRow)
		dstOff := uint64(row) * uint64(bytesPerRow)
		copy(tight[dstOff:dstOff+uint64(bytesPerRow)], readback[srcOff:srcOff+uint64(bytesPerRow)])
	}
	return tight, nil
}

// Teardown releases every GPU resource the presenter holds. Safe to call
// multiple times and from any partial initialization state.
func (p *Presenter) Teardown() {
	p.releaseFrameTexture()
	p.releasePipeline()
	if p.targetView != nil {
		p.device.DestroyTextureView(p.targetView)
		p.targetView = nil
	}
	if p.targetTex != nil {
		p.device.DestroyTexture(p.targetTex)
		p.targetTex = nil
	}
	p.releaseGeometry()
	p.geometryState = stateUninitialized
	p.logger.Debug("presenter resources released")
}

func (p *Presenter) releaseGeometry() {
	if p.indexBuf != nil {
		p.device.DestroyBuffer(p.indexBuf)
		p.indexBuf = nil
	}
	if p.vertexBuf != nil {
		p.device.DestroyBuffer(p.vertexBuf)
		p.vertexBuf = nil
	}
}

// releasePipeline destroys pipeline resources in reverse creation order.
func (p *Presenter) releasePipeline() {
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.fragmentModule != nil {
		p.device.DestroyShaderModule(p.fragmentModule)
		p.fragmentModule = nil
	}
	if p.vertexModule != nil {
		p.device.DestroyShaderModule(p.vertexModule)
		p.vertexModule = nil
	}
	p.pipelineState = stateUninitialized
}

func (p *Presenter) releaseFrameTexture() {
	if p.frameBind != nil {
		p.device.DestroyBindGroup(p.frameBind)
		p.frameBind = nil
	}
	if p.frameView != nil {
		p.device.DestroyTextureView(p.frameView)
		p.frameView = nil
	}
	if p.frameTex != nil {
		p.device.DestroyTexture(p.frameTex)
		p.frameTex = nil
	}
	p.frameWidth = 0
	p.frameHeight = 0
	p.textureState = stateUninitialized
}
