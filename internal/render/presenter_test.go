package render

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/sirupsen/logrus"
)

// ---- test doubles for the device interfaces ----

type mockBuffer struct{ label string }

func (m *mockBuffer) NativeHandle() uintptr { return 1 }

type mockTexture struct{ desc TextureDescriptor }

func (m *mockTexture) NativeHandle() uintptr { return 2 }

type mockTextureView struct{ label string }

func (m *mockTextureView) NativeHandle() uintptr { return 3 }

type mockSampler struct{}

func (m *mockSampler) NativeHandle() uintptr { return 4 }

type mockDevice struct {
	buffersCreated    int
	buffersDestroyed  int
	texturesCreated   int
	texturesDestroyed int
	viewsCreated      int
	viewsDestroyed    int
	samplersCreated   int
	samplersDestroyed int
	shadersCreated    int
	shadersDestroyed  int
	bindLayouts       int
	bindLayoutsFreed  int
	bindGroups        int
	bindGroupsFreed   int
	pipeLayouts       int
	pipeLayoutsFreed  int
	pipelines         int
	pipelinesFreed    int
	encoders          []*mockEncoder

	lastTextureDesc    *TextureDescriptor
	lastLayoutEntries  int
	failShaderLabel    string
	shaderErr          error
	renderPipelineErr  error
	createBindGroupErr error
}

func (d *mockDevice) CreateBuffer(desc *BufferDescriptor) (Buffer, error) {
	d.buffersCreated++
	return &mockBuffer{label: desc.Label}, nil
}
func (d *mockDevice) DestroyBuffer(Buffer) { d.buffersDestroyed++ }

func (d *mockDevice) CreateTexture(desc *TextureDescriptor) (Texture, error) {
	d.texturesCreated++
	d.lastTextureDesc = desc
	return &mockTexture{desc: *desc}, nil
}
func (d *mockDevice) DestroyTexture(Texture) { d.texturesDestroyed++ }

func (d *mockDevice) CreateTextureView(_ Texture, desc *TextureViewDescriptor) (TextureView, error) {
	d.viewsCreated++
	return &mockTextureView{label: desc.Label}, nil
}
func (d *mockDevice) DestroyTextureView(TextureView) { d.viewsDestroyed++ }

func (d *mockDevice) CreateSampler(*SamplerDescriptor) (Sampler, error) {
	d.samplersCreated++
	return &mockSampler{}, nil
}
func (d *mockDevice) DestroySampler(Sampler) { d.samplersDestroyed++ }

func (d *mockDevice) CreateShaderModule(desc *ShaderModuleDescriptor) (ShaderModule, error) {
	if d.shaderErr != nil && desc.Label == d.failShaderLabel {
		return nil, d.shaderErr
	}
	d.shadersCreated++
	return desc.Label, nil
}
func (d *mockDevice) DestroyShaderModule(ShaderModule) { d.shadersDestroyed++ }

func (d *mockDevice) CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) (BindGroupLayout, error) {
	d.bindLayouts++
	d.lastLayoutEntries = len(desc.Entries)
	return desc.Label, nil
}
func (d *mockDevice) DestroyBindGroupLayout(BindGroupLayout) { d.bindLayoutsFreed++ }

func (d *mockDevice) CreateBindGroup(desc *BindGroupDescriptor) (BindGroup, error) {
	if d.createBindGroupErr != nil {
		return nil, d.createBindGroupErr
	}
	d.bindGroups++
	return desc.Label, nil
}
func (d *mockDevice) DestroyBindGroup(BindGroup) { d.bindGroupsFreed++ }

func (d *mockDevice) CreatePipelineLayout(desc *PipelineLayoutDescriptor) (PipelineLayout, error) {
	d.pipeLayouts++
	return desc.Label, nil
}
func (d *mockDevice) DestroyPipelineLayout(PipelineLayout) { d.pipeLayoutsFreed++ }

func (d *mockDevice) CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error) {
	if d.renderPipelineErr != nil {
		return nil, d.renderPipelineErr
	}
	d.pipelines++
	return desc.Label, nil
}
func (d *mockDevice) DestroyRenderPipeline(RenderPipeline) { d.pipelinesFreed++ }

func (d *mockDevice) CreateCommandEncoder(label string) (CommandEncoder, error) {
	enc := &mockEncoder{label: label}
	d.encoders = append(d.encoders, enc)
	return enc, nil
}
func (d *mockDevice) FreeCommandBuffer(CommandBuffer) {}

func (d *mockDevice) CreateFence() (Fence, error) { return "fence", nil }
func (d *mockDevice) DestroyFence(Fence)          {}
func (d *mockDevice) Wait(Fence, uint64, time.Duration) (bool, error) {
	return true, nil
}

type textureWrite struct {
	bytes         int
	width, height uint32
}

type mockQueue struct {
	bufferWrites  []int
	textureWrites []textureWrite
	submits       int
	readFunc      func(dst []byte)
}

func (q *mockQueue) WriteBuffer(_ Buffer, _ uint64, data []byte) {
	q.bufferWrites = append(q.bufferWrites, len(data))
}

func (q *mockQueue) WriteTexture(_ Texture, data []byte, _ ImageDataLayout, width, height uint32) {
	q.textureWrites = append(q.textureWrites, textureWrite{bytes: len(data), width: width, height: height})
}

func (q *mockQueue) Submit([]CommandBuffer, Fence, uint64) error {
	q.submits++
	return nil
}

func (q *mockQueue) ReadBuffer(_ Buffer, _ uint64, dst []byte) error {
	if q.readFunc != nil {
		q.readFunc(dst)
	}
	return nil
}

type mockEncoder struct {
	label       string
	began       bool
	passes      []*mockPass
	transitions int
	copies      int
	ended       bool
	discarded   bool
}

func (e *mockEncoder) BeginEncoding(string) error { e.began = true; return nil }

func (e *mockEncoder) BeginRenderPass(desc *RenderPassDescriptor) RenderPass {
	pass := &mockPass{clear: desc.ColorAttachments[0].ClearValue}
	e.passes = append(e.passes, pass)
	return pass
}

func (e *mockEncoder) TransitionTexture(Texture, gputypes.TextureUsage, gputypes.TextureUsage) {
	e.transitions++
}

func (e *mockEncoder) CopyTextureToBuffer(Texture, Buffer, ImageDataLayout, uint32, uint32) {
	e.copies++
}

func (e *mockEncoder) EndEncoding() (CommandBuffer, error) {
	e.ended = true
	return "cmd", nil
}

func (e *mockEncoder) DiscardEncoding() { e.discarded = true }

type mockPass struct {
	clear          gputypes.Color
	viewportW      float32
	viewportH      float32
	pipelineSet    bool
	bindGroupSet   bool
	vertexBufSet   bool
	indexFormat    gputypes.IndexFormat
	indexBufSet    bool
	drawIndexCount uint32
	drawInstances  uint32
	ended          bool
}

func (p *mockPass) SetViewport(_, _, w, h, _, _ float32) { p.viewportW, p.viewportH = w, h }
func (p *mockPass) SetPipeline(RenderPipeline)           { p.pipelineSet = true }
func (p *mockPass) SetBindGroup(uint32, BindGroup, []uint32) {
	p.bindGroupSet = true
}
func (p *mockPass) SetVertexBuffer(uint32, Buffer, uint64) { p.vertexBufSet = true }
func (p *mockPass) SetIndexBuffer(_ Buffer, format gputypes.IndexFormat, _ uint64) {
	p.indexBufSet = true
	p.indexFormat = format
}
func (p *mockPass) DrawIndexed(indexCount, instanceCount, _ uint32, _ int32, _ uint32) {
	p.drawIndexCount = indexCount
	p.drawInstances = instanceCount
}
func (p *mockPass) End() { p.ended = true }

func newTestPresenter() (*Presenter, *mockDevice, *mockQueue) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	device := &mockDevice{}
	queue := &mockQueue{}
	return NewPresenter(logger, device, queue), device, queue
}

// uniformVertexShader declares a transform uniform at binding 2.
const uniformVertexShader = `
@group(0) @binding(2) var<uniform> transform: mat4x4<f32>;

struct VertexInput {
    @location(0) position: vec2<f32>,
    @location(1) tex_coord: vec2<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) tex_coord: vec2<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = transform * vec4<f32>(in.position, 0.0, 1.0);
    out.tex_coord = in.tex_coord;
    return out;
}
`

// ---- tests ----

func TestInitializeContext_CreatesGeometryAndTarget(t *testing.T) {
	p, device, queue := newTestPresenter()

	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}
	if device.buffersCreated != 2 {
		t.Errorf("buffersCreated = %d, want 2 (vertex + index)", device.buffersCreated)
	}
	if len(queue.bufferWrites) != 2 {
		t.Fatalf("bufferWrites = %d, want 2", len(queue.bufferWrites))
	}
	if queue.bufferWrites[0] != 4*quadVertexStride {
		t.Errorf("vertex upload = %d bytes, want %d", queue.bufferWrites[0], 4*quadVertexStride)
	}
	if queue.bufferWrites[1] != quadIndexCount*2 {
		t.Errorf("index upload = %d bytes, want %d", queue.bufferWrites[1], quadIndexCount*2)
	}
	if device.texturesCreated != 1 || device.viewsCreated != 1 {
		t.Errorf("target textures/views = %d/%d, want 1/1", device.texturesCreated, device.viewsCreated)
	}
	if device.lastTextureDesc.Width != 640 || device.lastTextureDesc.Height != 480 {
		t.Errorf("target size = %dx%d, want 640x480",
			device.lastTextureDesc.Width, device.lastTextureDesc.Height)
	}
}

func TestInitializeContext_RejectsBadSize(t *testing.T) {
	p, device, _ := newTestPresenter()

	if err := p.InitializeContext(0, 480); !errors.Is(err, ErrResourceInvalid) {
		t.Fatalf("error = %v, want ErrResourceInvalid", err)
	}
	if device.buffersCreated != 0 {
		t.Errorf("buffersCreated = %d before failing validation, want 0", device.buffersCreated)
	}
}

func TestCompileAndLink_DefaultShaders(t *testing.T) {
	p, device, _ := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}

	if err := p.CompileAndLink(DefaultVertexShader(), DefaultFragmentShader()); err != nil {
		t.Fatalf("CompileAndLink: %v", err)
	}
	if device.shadersCreated != 2 {
		t.Errorf("shadersCreated = %d, want 2", device.shadersCreated)
	}
	if device.lastLayoutEntries != 2 {
		t.Errorf("bind layout entries = %d, want 2 (texture + sampler)", device.lastLayoutEntries)
	}
	if device.pipelines != 1 {
		t.Errorf("pipelines = %d, want 1", device.pipelines)
	}
	if device.samplersCreated != 1 {
		t.Errorf("samplersCreated = %d, want 1", device.samplersCreated)
	}
}

func TestCompileAndLink_TransformUniformIsOptional(t *testing.T) {
	p, device, queue := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}

	if err := p.CompileAndLink(uniformVertexShader, DefaultFragmentShader()); err != nil {
		t.Fatalf("CompileAndLink: %v", err)
	}
	if device.lastLayoutEntries != 3 {
		t.Errorf("bind layout entries = %d, want 3 (texture + sampler + transform)", device.lastLayoutEntries)
	}
	// Geometry writes plus the identity transform upload.
	if len(queue.bufferWrites) != 3 || queue.bufferWrites[2] != transformUniformSize {
		t.Errorf("bufferWrites = %v, want identity transform of %d bytes last",
			queue.bufferWrites, transformUniformSize)
	}
}

func TestCompileAndLink_VertexStageFailure(t *testing.T) {
	p, device, _ := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}
	device.failShaderLabel = "quad_vertex"
	device.shaderErr = errors.New("syntax error at line 3")

	err := p.CompileAndLink(DefaultVertexShader(), DefaultFragmentShader())
	if !errors.Is(err, ErrShaderCompile) {
		t.Fatalf("error = %v, want ErrShaderCompile", err)
	}
	if device.pipelines != 0 {
		t.Errorf("pipelines = %d after compile failure, want 0", device.pipelines)
	}
}

func TestCompileAndLink_FragmentFailureReleasesVertexStage(t *testing.T) {
	p, device, _ := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}
	device.failShaderLabel = "quad_fragment"
	device.shaderErr = errors.New("unknown identifier")

	err := p.CompileAndLink(DefaultVertexShader(), DefaultFragmentShader())
	if !errors.Is(err, ErrShaderCompile) {
		t.Fatalf("error = %v, want ErrShaderCompile", err)
	}
	if device.shadersDestroyed != device.shadersCreated {
		t.Errorf("shaders destroyed = %d, created = %d, compile failure must not leak",
			device.shadersDestroyed, device.shadersCreated)
	}
}

func TestCompileAndLink_LinkFailureReleasesStages(t *testing.T) {
	p, device, _ := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}
	device.renderPipelineErr = errors.New("incompatible vertex output")

	err := p.CompileAndLink(DefaultVertexShader(), DefaultFragmentShader())
	if !errors.Is(err, ErrShaderLink) {
		t.Fatalf("error = %v, want ErrShaderLink", err)
	}
	if device.shadersDestroyed != 2 {
		t.Errorf("shadersDestroyed = %d after link failure, want 2", device.shadersDestroyed)
	}
	if device.bindLayoutsFreed != device.bindLayouts {
		t.Errorf("bind layouts leaked: created %d, freed %d", device.bindLayouts, device.bindLayoutsFreed)
	}
}

func TestAllocateTexture_RebuildsOnResolutionChange(t *testing.T) {
	p, device, _ := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}
	if err := p.CompileAndLink(DefaultVertexShader(), DefaultFragmentShader()); err != nil {
		t.Fatalf("CompileAndLink: %v", err)
	}

	if err := p.AllocateTexture(1280, 720); err != nil {
		t.Fatalf("AllocateTexture: %v", err)
	}
	if device.bindGroups != 1 {
		t.Errorf("bindGroups = %d, want 1", device.bindGroups)
	}
	texturesAfterFirst := device.texturesCreated

	if err := p.AllocateTexture(1920, 1080); err != nil {
		t.Fatalf("AllocateTexture (resize): %v", err)
	}
	if device.texturesCreated != texturesAfterFirst+1 {
		t.Errorf("texturesCreated = %d, want %d", device.texturesCreated, texturesAfterFirst+1)
	}
	if device.texturesDestroyed != 1 {
		t.Errorf("texturesDestroyed = %d, previous frame texture must be released", device.texturesDestroyed)
	}
	if device.lastTextureDesc.Width != 1920 || device.lastTextureDesc.Height != 1080 {
		t.Errorf("frame texture size = %dx%d, want 1920x1080",
			device.lastTextureDesc.Width, device.lastTextureDesc.Height)
	}
}

func TestAllocateTexture_RejectsBadSize(t *testing.T) {
	p, _, _ := newTestPresenter()
	if err := p.AllocateTexture(0, 10); !errors.Is(err, ErrResourceInvalid) {
		t.Fatalf("error = %v, want ErrResourceInvalid", err)
	}
}

func TestUploadFrame(t *testing.T) {
	p, _, queue := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}
	if err := p.CompileAndLink(DefaultVertexShader(), DefaultFragmentShader()); err != nil {
		t.Fatalf("CompileAndLink: %v", err)
	}
	if err := p.AllocateTexture(16, 8); err != nil {
		t.Fatalf("AllocateTexture: %v", err)
	}

	p.UploadFrame(make([]byte, 16*8*4), 16, 8)
	if len(queue.textureWrites) != 1 {
		t.Fatalf("textureWrites = %d, want 1", len(queue.textureWrites))
	}
	w := queue.textureWrites[0]
	if w.bytes != 16*8*4 || w.width != 16 || w.height != 8 {
		t.Errorf("upload = %+v, want 512 bytes at 16x8", w)
	}

	// Mismatched dimensions and short buffers are dropped, not uploaded.
	p.UploadFrame(make([]byte, 32*8*4), 32, 8)
	p.UploadFrame(make([]byte, 10), 16, 8)
	if len(queue.textureWrites) != 1 {
		t.Errorf("textureWrites = %d after invalid uploads, want 1", len(queue.textureWrites))
	}
}

func TestUploadFrame_WithoutTextureIsDropped(t *testing.T) {
	p, _, queue := newTestPresenter()
	p.UploadFrame(make([]byte, 64), 4, 4)
	if len(queue.textureWrites) != 0 {
		t.Errorf("textureWrites = %d with no texture, want 0", len(queue.textureWrites))
	}
}

func TestDraw_RecordsFullPass(t *testing.T) {
	p, device, queue := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}
	if err := p.CompileAndLink(DefaultVertexShader(), DefaultFragmentShader()); err != nil {
		t.Fatalf("CompileAndLink: %v", err)
	}
	if err := p.AllocateTexture(16, 8); err != nil {
		t.Fatalf("AllocateTexture: %v", err)
	}

	if err := p.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(device.encoders) != 1 {
		t.Fatalf("encoders = %d, want 1", len(device.encoders))
	}
	enc := device.encoders[0]
	if !enc.began || !enc.ended {
		t.Errorf("encoder began/ended = %v/%v, want true/true", enc.began, enc.ended)
	}
	if len(enc.passes) != 1 {
		t.Fatalf("render passes = %d, want 1", len(enc.passes))
	}
	pass := enc.passes[0]
	if !pass.pipelineSet || !pass.bindGroupSet || !pass.vertexBufSet || !pass.indexBufSet {
		t.Errorf("pass bindings = %+v, want pipeline, bind group, vertex and index buffers set", pass)
	}
	if pass.indexFormat != gputypes.IndexFormatUint16 {
		t.Errorf("index format = %v, want uint16", pass.indexFormat)
	}
	if pass.drawIndexCount != quadIndexCount || pass.drawInstances != 1 {
		t.Errorf("DrawIndexed(%d, %d), want (%d, 1)", pass.drawIndexCount, pass.drawInstances, quadIndexCount)
	}
	if pass.viewportW != 640 || pass.viewportH != 480 {
		t.Errorf("viewport = %gx%g, want 640x480", pass.viewportW, pass.viewportH)
	}
	if !pass.ended {
		t.Error("render pass not ended")
	}
	if queue.submits != 1 {
		t.Errorf("submits = %d, want 1", queue.submits)
	}
}

func TestDraw_WithoutTextureRefusesBeforeEncoding(t *testing.T) {
	p, device, _ := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}
	if err := p.CompileAndLink(DefaultVertexShader(), DefaultFragmentShader()); err != nil {
		t.Fatalf("CompileAndLink: %v", err)
	}

	if err := p.Draw(); !errors.Is(err, ErrResourceInvalid) {
		t.Fatalf("error = %v, want ErrResourceInvalid", err)
	}
	if len(device.encoders) != 0 {
		t.Errorf("encoders = %d for refused draw, want 0", len(device.encoders))
	}
}

func TestOnResize_ChangesViewportOnly(t *testing.T) {
	p, device, _ := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}
	if err := p.CompileAndLink(DefaultVertexShader(), DefaultFragmentShader()); err != nil {
		t.Fatalf("CompileAndLink: %v", err)
	}
	if err := p.AllocateTexture(16, 8); err != nil {
		t.Fatalf("AllocateTexture: %v", err)
	}
	texturesBefore := device.texturesCreated

	p.OnResize(800, 600)
	if device.texturesCreated != texturesBefore {
		t.Errorf("resize recreated textures: %d -> %d", texturesBefore, device.texturesCreated)
	}

	if err := p.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	pass := device.encoders[len(device.encoders)-1].passes[0]
	if pass.viewportW != 800 || pass.viewportH != 600 {
		t.Errorf("viewport after resize = %gx%g, want 800x600", pass.viewportW, pass.viewportH)
	}
}

func TestReadPixels_StripsRowPadding(t *testing.T) {
	p, device, queue := newTestPresenter()
	// 10 pixels per row = 40 bytes, padded to 256 per row for the copy.
	if err := p.InitializeContext(10, 4); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}

	const alignedRow = 256
	queue.readFunc = func(dst []byte) {
		for row := 0; row < 4; row++ {
			for i := 0; i < alignedRow; i++ {
				dst[row*alignedRow+i] = byte(row + 1)
			}
		}
	}

	pixels, err := p.ReadPixels()
	if err != nil {
		t.Fatalf("ReadPixels: %v", err)
	}
	if len(pixels) != 10*4*4 {
		t.Fatalf("len(pixels) = %d, want %d", len(pixels), 10*4*4)
	}
	for row := 0; row < 4; row++ {
		for i := 0; i < 40; i++ {
			if got := pixels[row*40+i]; got != byte(row+1) {
				t.Fatalf("pixels[%d] = %d, want %d", row*40+i, got, row+1)
			}
		}
	}

	enc := device.encoders[len(device.encoders)-1]
	if enc.copies != 1 {
		t.Errorf("texture copies = %d, want 1", enc.copies)
	}
	if enc.transitions != 2 {
		t.Errorf("layout transitions = %d, want 2 (to copy source and back)", enc.transitions)
	}
}

func TestReadPixels_WithoutTargetFails(t *testing.T) {
	p, _, _ := newTestPresenter()
	if _, err := p.ReadPixels(); !errors.Is(err, ErrResourceInvalid) {
		t.Fatalf("error = %v, want ErrResourceInvalid", err)
	}
}

func TestTeardown_ReleasesEverythingOnce(t *testing.T) {
	p, device, _ := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}
	if err := p.CompileAndLink(uniformVertexShader, DefaultFragmentShader()); err != nil {
		t.Fatalf("CompileAndLink: %v", err)
	}
	if err := p.AllocateTexture(16, 8); err != nil {
		t.Fatalf("AllocateTexture: %v", err)
	}

	p.Teardown()
	if device.buffersDestroyed != device.buffersCreated {
		t.Errorf("buffers: created %d, destroyed %d", device.buffersCreated, device.buffersDestroyed)
	}
	if device.texturesDestroyed != device.texturesCreated {
		t.Errorf("textures: created %d, destroyed %d", device.texturesCreated, device.texturesDestroyed)
	}
	if device.viewsDestroyed != device.viewsCreated {
		t.Errorf("views: created %d, destroyed %d", device.viewsCreated, device.viewsDestroyed)
	}
	if device.samplersDestroyed != device.samplersCreated {
		t.Errorf("samplers: created %d, destroyed %d", device.samplersCreated, device.samplersDestroyed)
	}
	if device.shadersDestroyed != device.shadersCreated {
		t.Errorf("shaders: created %d, destroyed %d", device.shadersCreated, device.shadersDestroyed)
	}
	if device.pipelinesFreed != device.pipelines {
		t.Errorf("pipelines: created %d, destroyed %d", device.pipelines, device.pipelinesFreed)
	}
	if device.bindGroupsFreed != device.bindGroups {
		t.Errorf("bind groups: created %d, destroyed %d", device.bindGroups, device.bindGroupsFreed)
	}

	// Second teardown must be a no-op, not a double free.
	destroyed := device.buffersDestroyed
	p.Teardown()
	if device.buffersDestroyed != destroyed {
		t.Errorf("second Teardown destroyed %d more buffers", device.buffersDestroyed-destroyed)
	}
}

func TestTeardown_FromPartialInitialization(t *testing.T) {
	p, device, _ := newTestPresenter()
	if err := p.InitializeContext(640, 480); err != nil {
		t.Fatalf("InitializeContext: %v", err)
	}

	p.Teardown()
	if device.buffersDestroyed != 2 {
		t.Errorf("buffersDestroyed = %d, want 2", device.buffersDestroyed)
	}
	if device.texturesDestroyed != 1 || device.viewsDestroyed != 1 {
		t.Errorf("target destroyed = %d/%d, want 1/1", device.texturesDestroyed, device.viewsDestroyed)
	}
}
