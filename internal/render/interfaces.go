// Package render presents processed frames as a GPU textured quad.
package render

import (
	"time"

	"github.com/gogpu/gputypes"
)

// Buffer is a GPU buffer handle.
type Buffer interface {
	NativeHandle() uintptr
}

// Texture is a GPU texture handle.
type Texture interface {
	NativeHandle() uintptr
}

// TextureView is a view onto a texture, bindable in a shader.
type TextureView interface {
	NativeHandle() uintptr
}

// Sampler is a texture sampler handle.
type Sampler interface {
	NativeHandle() uintptr
}

// Opaque handles the presenter passes back to the device unchanged.
type (
	ShaderModule    any
	BindGroupLayout any
	BindGroup       any
	PipelineLayout  any
	RenderPipeline  any
	CommandBuffer   any
	Fence           any
)

// BufferDescriptor describes a buffer allocation.
type BufferDescriptor struct {
	Label string
	Size  uint64
	Usage gputypes.BufferUsage
}

// TextureDescriptor describes a 2D texture allocation.
type TextureDescriptor struct {
	Label         string
	Width, Height uint32
	MipLevelCount uint32
	SampleCount   uint32
	Format        gputypes.TextureFormat
	Usage         gputypes.TextureUsage
}

// TextureViewDescriptor describes a view onto a texture.
type TextureViewDescriptor struct {
	Label         string
	Format        gputypes.TextureFormat
	Dimension     gputypes.TextureViewDimension
	Aspect        gputypes.TextureAspect
	MipLevelCount uint32
}

// SamplerDescriptor describes sampler filtering and addressing.
type SamplerDescriptor struct {
	Label        string
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
}

// ShaderModuleDescriptor carries WGSL source for one shader stage.
type ShaderModuleDescriptor struct {
	Label string
	WGSL  string
}

// BindGroupLayoutDescriptor describes the shape of a bind group.
type BindGroupLayoutDescriptor struct {
	Label   string
	Entries []gputypes.BindGroupLayoutEntry
}

// BindGroupDescriptor binds concrete resources to a layout.
type BindGroupDescriptor struct {
	Label   string
	Layout  BindGroupLayout
	Entries []gputypes.BindGroupEntry
}

// PipelineLayoutDescriptor lists the bind group layouts of a pipeline.
type PipelineLayoutDescriptor struct {
	Label            string
	BindGroupLayouts []BindGroupLayout
}

// VertexState is the vertex stage of a render pipeline.
type VertexState struct {
	Module     ShaderModule
	EntryPoint string
	Buffers    []gputypes.VertexBufferLayout
}

// FragmentState is the fragment stage of a render pipeline.
type FragmentState struct {
	Module     ShaderModule
	EntryPoint string
	Targets    []gputypes.ColorTargetState
}

// RenderPipelineDescriptor describes a complete render pipeline.
type RenderPipelineDescriptor struct {
	Label       string
	Layout      PipelineLayout
	Vertex      VertexState
	Fragment    *FragmentState
	Primitive   gputypes.PrimitiveState
	Multisample gputypes.MultisampleState
}

// RenderPassColorAttachment is a color target of a render pass.
type RenderPassColorAttachment struct {
	View       TextureView
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color
}

// RenderPassDescriptor describes one render pass.
type RenderPassDescriptor struct {
	Label            string
	ColorAttachments []RenderPassColorAttachment
}

// ImageDataLayout describes the memory layout of texture data in a linear
// buffer.
type ImageDataLayout struct {
	Offset       uint64
	BytesPerRow  uint32
	RowsPerImage uint32
}

// Device creates and destroys GPU resources. It is the narrow surface the
// presenter needs; the production implementation wraps a WebGPU hal device
// and tests substitute an in-memory double.
type Device interface {
	CreateBuffer(desc *BufferDescriptor) (Buffer, error)
	DestroyBuffer(buf Buffer)

	CreateTexture(desc *TextureDescriptor) (Texture, error)
	DestroyTexture(tex Texture)
	CreateTextureView(tex Texture, desc *TextureViewDescriptor) (TextureView, error)
	DestroyTextureView(view TextureView)

	CreateSampler(desc *SamplerDescriptor) (Sampler, error)
	DestroySampler(s Sampler)

	CreateShaderModule(desc *ShaderModuleDescriptor) (ShaderModule, error)
	DestroyShaderModule(m ShaderModule)

	CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) (BindGroupLayout, error)
	DestroyBindGroupLayout(l BindGroupLayout)
	CreateBindGroup(desc *BindGroupDescriptor) (BindGroup, error)
	DestroyBindGroup(g BindGroup)

	CreatePipelineLayout(desc *PipelineLayoutDescriptor) (PipelineLayout, error)
	DestroyPipelineLayout(l PipelineLayout)
	CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error)
	DestroyRenderPipeline(p RenderPipeline)

	CreateCommandEncoder(label string) (CommandEncoder, error)
	FreeCommandBuffer(buf CommandBuffer)

	CreateFence() (Fence, error)
	DestroyFence(f Fence)
	Wait(f Fence, value uint64, timeout time.Duration) (bool, error)
}

// Queue uploads data and submits command buffers.
type Queue interface {
	WriteBuffer(buf Buffer, offset uint64, data []byte)
	WriteTexture(dst Texture, data []byte, layout ImageDataLayout, width, height uint32)
	Submit(buffers []CommandBuffer, fence Fence, value uint64) error
	ReadBuffer(buf Buffer, offset uint64, dst []byte) error
}

// CommandEncoder records one frame's GPU commands.
type CommandEncoder interface {
	BeginEncoding(label string) error
	BeginRenderPass(desc *RenderPassDescriptor) RenderPass
	TransitionTexture(tex Texture, oldUsage, newUsage gputypes.TextureUsage)
	CopyTextureToBuffer(src Texture, dst Buffer, layout ImageDataLayout, width, height uint32)
	EndEncoding() (CommandBuffer, error)
	DiscardEncoding()
}

// RenderPass records draw commands within an open render pass.
type RenderPass interface {
	SetViewport(x, y, width, height, minDepth, maxDepth float32)
	SetPipeline(p RenderPipeline)
	SetBindGroup(index uint32, group BindGroup, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buf Buffer, offset uint64)
	SetIndexBuffer(buf Buffer, format gputypes.IndexFormat, offset uint64)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
	End()
}
