package render

import (
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// WrapHALDevice adapts a WebGPU hal device to the presenter's Device
// interface.
func WrapHALDevice(dev hal.Device) Device {
	return &halDevice{dev: dev}
}

// WrapHALQueue adapts a WebGPU hal queue to the presenter's Queue
// interface.
func WrapHALQueue(q hal.Queue) Queue {
	return &halQueue{q: q}
}

// Unwrap helpers. The adapter hands out raw hal handles, so a nil check
// plus type assertion recovers them.

func unwrapBuffer(b Buffer) hal.Buffer {
	if b == nil {
		return nil
	}
	hb, _ := b.(hal.Buffer)
	return hb
}

func unwrapTexture(t Texture) hal.Texture {
	if t == nil {
		return nil
	}
	ht, _ := t.(hal.Texture)
	return ht
}

func unwrapTextureView(v TextureView) hal.TextureView {
	if v == nil {
		return nil
	}
	hv, _ := v.(hal.TextureView)
	return hv
}

func unwrapSampler(s Sampler) hal.Sampler {
	if s == nil {
		return nil
	}
	hs, _ := s.(hal.Sampler)
	return hs
}

func unwrapShaderModule(m ShaderModule) hal.ShaderModule {
	if m == nil {
		return nil
	}
	hm, _ := m.(hal.ShaderModule)
	return hm
}

func unwrapBindGroupLayout(l BindGroupLayout) hal.BindGroupLayout {
	if l == nil {
		return nil
	}
	hl, _ := l.(hal.BindGroupLayout)
	return hl
}

func unwrapBindGroup(g BindGroup) hal.BindGroup {
	if g == nil {
		return nil
	}
	hg, _ := g.(hal.BindGroup)
	return hg
}

func unwrapPipelineLayout(l PipelineLayout) hal.PipelineLayout {
	if l == nil {
		return nil
	}
	hl, _ := l.(hal.PipelineLayout)
	return hl
}

func unwrapRenderPipeline(p RenderPipeline) hal.RenderPipeline {
	if p == nil {
		return nil
	}
	hp, _ := p.(hal.RenderPipeline)
	return hp
}

func unwrapCommandBuffer(b CommandBuffer) hal.CommandBuffer {
	if b == nil {
		return nil
	}
	hb, _ := b.(hal.CommandBuffer)
	return hb
}

func unwrapFence(f Fence) hal.Fence {
	if f == nil {
		return nil
	}
	hf, _ := f.(hal.Fence)
	return hf
}

type halDevice struct {
	dev hal.Device
}

func (d *halDevice) CreateBuffer(desc *BufferDescriptor) (Buffer, error) {
	return d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: desc.Usage,
	})
}

func (d *halDevice) DestroyBuffer(buf Buffer) {
	d.dev.DestroyBuffer(unwrapBuffer(buf))
}

func (d *halDevice) CreateTexture(desc *TextureDescriptor) (Texture, error) {
	return d.dev.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: desc.MipLevelCount,
		SampleCount:   desc.SampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
}

func (d *halDevice) DestroyTexture(tex Texture) {
	d.dev.DestroyTexture(unwrapTexture(tex))
}

func (d *halDevice) CreateTextureView(tex Texture, desc *TextureViewDescriptor) (TextureView, error) {
	return d.dev.CreateTextureView(unwrapTexture(tex), &hal.TextureViewDescriptor{
		Label:         desc.Label,
		Format:        desc.Format,
		Dimension:     desc.Dimension,
		Aspect:        desc.Aspect,
		MipLevelCount: desc.MipLevelCount,
	})
}

func (d *halDevice) DestroyTextureView(view TextureView) {
	d.dev.DestroyTextureView(unwrapTextureView(view))
}

func (d *halDevice) CreateSampler(desc *SamplerDescriptor) (Sampler, error) {
	return d.dev.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: desc.AddressModeU,
		AddressModeV: desc.AddressModeV,
		AddressModeW: desc.AddressModeW,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: desc.MipmapFilter,
	})
}

func (d *halDevice) DestroySampler(s Sampler) {
	d.dev.DestroySampler(unwrapSampler(s))
}

func (d *halDevice) CreateShaderModule(desc *ShaderModuleDescriptor) (ShaderModule, error) {
	return d.dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{WGSL: desc.WGSL},
	})
}

func (d *halDevice) DestroyShaderModule(m ShaderModule) {
	d.dev.DestroyShaderModule(unwrapShaderModule(m))
}

func (d *halDevice) CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) (BindGroupLayout, error) {
	return d.dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: desc.Entries,
	})
}

func (d *halDevice) DestroyBindGroupLayout(l BindGroupLayout) {
	d.dev.DestroyBindGroupLayout(unwrapBindGroupLayout(l))
}

func (d *halDevice) CreateBindGroup(desc *BindGroupDescriptor) (BindGroup, error) {
	return d.dev.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  unwrapBindGroupLayout(desc.Layout),
		Entries: desc.Entries,
	})
}

func (d *halDevice) DestroyBindGroup(g BindGroup) {
	d.dev.DestroyBindGroup(unwrapBindGroup(g))
}

func (d *halDevice) CreatePipelineLayout(desc *PipelineLayoutDescriptor) (PipelineLayout, error) {
	layouts := make([]hal.BindGroupLayout, len(desc.BindGroupLayouts))
	for i, l := range desc.BindGroupLayouts {
		layouts[i] = unwrapBindGroupLayout(l)
	}
	return d.dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: layouts,
	})
}

func (d *halDevice) DestroyPipelineLayout(l PipelineLayout) {
	d.dev.DestroyPipelineLayout(unwrapPipelineLayout(l))
}

func (d *halDevice) CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error) {
	halDesc := &hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: unwrapPipelineLayout(desc.Layout),
		Vertex: hal.VertexState{
			Module:     unwrapShaderModule(desc.Vertex.Module),
			EntryPoint: desc.Vertex.EntryPoint,
			Buffers:    desc.Vertex.Buffers,
		},
		Primitive:   desc.Primitive,
		Multisample: desc.Multisample,
	}
	if desc.Fragment != nil {
		halDesc.Fragment = &hal.FragmentState{
			Module:     unwrapShaderModule(desc.Fragment.Module),
			EntryPoint: desc.Fragment.EntryPoint,
			Targets:    desc.Fragment.Targets,
		}
	}
	return d.dev.CreateRenderPipeline(halDesc)
}

func (d *halDevice) DestroyRenderPipeline(p RenderPipeline) {
	d.dev.DestroyRenderPipeline(unwrapRenderPipeline(p))
}

func (d *halDevice) CreateCommandEncoder(label string) (CommandEncoder, error) {
	enc, err := d.dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &halEncoder{enc: enc}, nil
}

func (d *halDevice) FreeCommandBuffer(buf CommandBuffer) {
	d.dev.FreeCommandBuffer(unwrapCommandBuffer(buf))
}

func (d *halDevice) CreateFence() (Fence, error) {
	return d.dev.CreateFence()
}

func (d *halDevice) DestroyFence(f Fence) {
	d.dev.DestroyFence(unwrapFence(f))
}

func (d *halDevice) Wait(f Fence, value uint64, timeout time.Duration) (bool, error) {
	return d.dev.Wait(unwrapFence(f), value, timeout)
}

type halQueue struct {
	q hal.Queue
}

func (q *halQueue) WriteBuffer(buf Buffer, offset uint64, data []byte) {
	q.q.WriteBuffer(unwrapBuffer(buf), offset, data)
}

func (q *halQueue) WriteTexture(dst Texture, data []byte, layout ImageDataLayout, width, height uint32) {
	q.q.WriteTexture(
		&hal.ImageCopyTexture{Texture: unwrapTexture(dst), MipLevel: 0},
		data,
		&hal.ImageDataLayout{
			Offset:       layout.Offset,
			BytesPerRow:  layout.BytesPerRow,
			RowsPerImage: layout.RowsPerImage,
		},
		&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)
}

func (q *halQueue) Submit(buffers []CommandBuffer, fence Fence, value uint64) error {
	halBufs := make([]hal.CommandBuffer, len(buffers))
	for i, b := range buffers {
		halBufs[i] = unwrapCommandBuffer(b)
	}
	return q.q.Submit(halBufs, unwrapFence(fence), value)
}

func (q *halQueue) ReadBuffer(buf Buffer, offset uint64, dst []byte) error {
	return q.q.ReadBuffer(unwrapBuffer(buf), offset, dst)
}

type halEncoder struct {
	enc hal.CommandEncoder
}

func (e *halEncoder) BeginEncoding(label string) error {
	return e.enc.BeginEncoding(label)
}

func (e *halEncoder) BeginRenderPass(desc *RenderPassDescriptor) RenderPass {
	attachments := make([]hal.RenderPassColorAttachment, len(desc.ColorAttachments))
	for i, att := range desc.ColorAttachments {
		attachments[i] = hal.RenderPassColorAttachment{
			View:       unwrapTextureView(att.View),
			LoadOp:     att.LoadOp,
			StoreOp:    att.StoreOp,
			ClearValue: att.ClearValue,
		}
	}
	rp := e.enc.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            desc.Label,
		ColorAttachments: attachments,
	})
	return &halPass{rp: rp}
}

func (e *halEncoder) TransitionTexture(tex Texture, oldUsage, newUsage gputypes.TextureUsage) {
	e.enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: unwrapTexture(tex),
		Usage: hal.TextureUsageTransition{
			OldUsage: oldUsage,
			NewUsage: newUsage,
		},
	}})
}

func (e *halEncoder) CopyTextureToBuffer(src Texture, dst Buffer, layout ImageDataLayout, width, height uint32) {
	halSrc := unwrapTexture(src)
	e.enc.CopyTextureToBuffer(halSrc, unwrapBuffer(dst), []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       layout.Offset,
			BytesPerRow:  layout.BytesPerRow,
			RowsPerImage: layout.RowsPerImage,
		},
		TextureBase: hal.ImageCopyTexture{Texture: halSrc, MipLevel: 0},
		Size:        hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	}})
}

func (e *halEncoder) EndEncoding() (CommandBuffer, error) {
	return e.enc.EndEncoding()
}

func (e *halEncoder) DiscardEncoding() {
	e.enc.DiscardEncoding()
}

type halPass struct {
	rp hal.RenderPassEncoder
}

func (p *halPass) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	p.rp.SetViewport(x, y, width, height, minDepth, maxDepth)
}

func (p *halPass) SetPipeline(pipe RenderPipeline) {
	p.rp.SetPipeline(unwrapRenderPipeline(pipe))
}

func (p *halPass) SetBindGroup(index uint32, group BindGroup, dynamicOffsets []uint32) {
	p.rp.SetBindGroup(index, unwrapBindGroup(group), dynamicOffsets)
}

func (p *halPass) SetVertexBuffer(slot uint32, buf Buffer, offset uint64) {
	p.rp.SetVertexBuffer(slot, unwrapBuffer(buf), offset)
}

func (p *halPass) SetIndexBuffer(buf Buffer, format gputypes.IndexFormat, offset uint64) {
	p.rp.SetIndexBuffer(unwrapBuffer(buf), format, offset)
}

func (p *halPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.rp.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *halPass) End() {
	p.rp.End()
}
