package wgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	"honnef.co/go/safeish"

	"github.com/gogpu/dlist"
)

//go:embed shaders/drawlist.wgsl
var drawListShaderSource string

// vertexStride is the byte stride per vertex on the GPU.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes  (location 1)
//	color    (vec4<f32>) = 16 bytes (location 2)
//
// Total = 32 bytes per vertex. The packed 4-byte vertex color is
// expanded to floats at upload so the vertex layout only uses formats
// every HAL backend supports.
const vertexStride = 32

// uniformSize is the byte size of the viewport uniform buffer.
const uniformSize = 16

// pipelineResources holds the long-lived GPU objects of the renderer.
type pipelineResources struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler
	uniformBuf hal.Buffer
}

// create compiles the shader and builds the bind group layout,
// pipeline and sampler. With spirv set, the WGSL is pre-compiled to
// SPIR-V through naga instead of handing WGSL source to the HAL.
func (p *pipelineResources) create(device hal.Device, spirv bool) error {
	if drawListShaderSource == "" {
		return fmt.Errorf("wgpu: draw-list shader source is empty")
	}

	source := hal.ShaderSource{WGSL: drawListShaderSource}
	if spirv {
		words, err := compileToSPIRV(drawListShaderSource)
		if err != nil {
			return err
		}
		source = hal.ShaderSource{SPIRV: words}
	}
	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "dlist_shader",
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("wgpu: compile draw-list shader: %w", err)
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: viewport uniforms (vertex)
	//   Binding 1: texture (fragment)
	//   Binding 2: sampler (fragment)
	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "dlist_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		p.destroy(device)
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "dlist_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.destroy(device)
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "dlist_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		p.destroy(device)
		return fmt.Errorf("wgpu: create sampler: %w", err)
	}
	p.sampler = sampler

	uniformBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "dlist_uniform",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		p.destroy(device)
		return fmt.Errorf("wgpu: create uniform buffer: %w", err)
	}
	p.uniformBuf = uniformBuf

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "dlist_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    drawListVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					Blend:     &premulBlend,
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
		p.destroy(device)
		return fmt.Errorf("wgpu: create render pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// destroy releases pipeline resources in reverse creation order.
// Safe on partially constructed resources.
func (p *pipelineResources) destroy(device hal.Device) {
	if device == nil {
		return
	}
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.uniformBuf != nil {
		device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.sampler != nil {
		device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// drawListVertexLayout returns the vertex buffer layout matching
// VertexInput in drawlist.wgsl.
func drawListVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// compileToSPIRV compiles WGSL source to SPIR-V words through naga.
func compileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("wgpu: naga compile: %w", err)
	}
	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// frameResources holds the per-frame vertex and index buffers.
type frameResources struct {
	vertBuf hal.Buffer
	idxBuf  hal.Buffer
}

func (f *frameResources) destroy(device hal.Device) {
	if f.idxBuf != nil {
		device.DestroyBuffer(f.idxBuf)
	}
	if f.vertBuf != nil {
		device.DestroyBuffer(f.vertBuf)
	}
}

// uploadFrame serializes the frame's vertices, uploads vertex, index
// and uniform data, and returns the per-frame buffers.
func (r *Renderer) uploadFrame(dd *dlist.DrawData) (*frameResources, error) {
	vertexData := buildVertexData(dd.Vertices)
	indexData := safeish.SliceCast[[]byte](dd.Indices)

	vertBuf, err := r.createAndUpload("dlist_verts", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("wgpu: create vertex buffer: %w", err)
	}
	idxBuf, err := r.createAndUpload("dlist_indices", indexData,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		r.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("wgpu: create index buffer: %w", err)
	}

	r.queue.WriteBuffer(r.pipe.uniformBuf, 0, makeViewportUniform(dd.DisplaySize, r.width, r.height))

	return &frameResources{vertBuf: vertBuf, idxBuf: idxBuf}, nil
}

// createAndUpload creates a buffer and writes data into it.
func (r *Renderer) createAndUpload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, err
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// buildVertexData serializes vertices into the GPU layout, expanding
// the packed color to straight-alpha floats (the shader premultiplies).
func buildVertexData(vts []dlist.Vertex) []byte {
	data := make([]byte, len(vts)*vertexStride)
	off := 0
	for i := range vts {
		v := &vts[i]
		c := v.Color.Float4()
		putF32(data[off+0:], v.Pos.X)
		putF32(data[off+4:], v.Pos.Y)
		putF32(data[off+8:], v.UV.X)
		putF32(data[off+12:], v.UV.Y)
		putF32(data[off+16:], c[0])
		putF32(data[off+20:], c[1])
		putF32(data[off+24:], c[2])
		putF32(data[off+28:], c[3])
		off += vertexStride
	}
	return data
}

// makeViewportUniform builds the 16-byte viewport uniform. The display
// size recorded on the draw list wins; the target size is the
// fallback when the list never set one.
func makeViewportUniform(display dlist.Point, width, height int) []byte {
	w, h := display.X, display.Y
	if w <= 0 || h <= 0 {
		w, h = float32(width), float32(height)
	}
	buf := make([]byte, uniformSize)
	putF32(buf[0:], w)
	putF32(buf[4:], h)
	return buf
}

func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}
