// Package wgpu provides a GPU renderer for draw lists built on the
// gogpu/wgpu HAL.
//
// The renderer owns an offscreen BGRA8 render target: each Render call
// uploads the frame's vertex/index buffers, replays the command stream
// as scissored indexed draws with premultiplied alpha blending, and
// reads the result back into a dlist.Pixmap. A GPU device is either
// acquired standalone through the Vulkan HAL backend or shared via a
// device provider exposing HalDevice()/HalQueue().
package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/dlist"
	"github.com/gogpu/dlist/backend"
	"github.com/gogpu/dlist/handle"
)

func init() {
	backend.Register(backend.BackendWGPU, func(width, height int) backend.Renderer {
		return New(width, height)
	})
}

// fenceTimeout bounds how long Render waits for the GPU.
const fenceTimeout = 5 * time.Second

// Option configures a Renderer during creation.
type Option func(*rendererOptions)

type rendererOptions struct {
	provider gpucontext.DeviceProvider
	spirv    bool
}

// WithDeviceProvider shares a GPU device from a host application
// instead of opening one. The provider must additionally implement
// HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue for direct HAL access.
func WithDeviceProvider(provider gpucontext.DeviceProvider) Option {
	return func(o *rendererOptions) {
		o.provider = provider
	}
}

// WithSPIRV pre-compiles the WGSL shader to SPIR-V through naga at
// Init instead of handing WGSL to the HAL. Useful on backends whose
// in-driver WGSL path is less mature than their SPIR-V path.
func WithSPIRV(enable bool) Option {
	return func(o *rendererOptions) {
		o.spirv = enable
	}
}

// Renderer renders draw lists through the wgpu HAL.
type Renderer struct {
	width  int
	height int
	opts   rendererOptions

	instance       hal.Instance
	device         hal.Device
	queue          hal.Queue
	externalDevice bool

	pipe pipelineResources

	// Offscreen render target and CPU-side copy of the last frame.
	targetTex  hal.Texture
	targetView hal.TextureView
	target     *dlist.Pixmap

	textures *handle.Table[*texture]
	white    *texture

	initialized bool
}

// New creates a wgpu renderer for an offscreen target of the given
// size. Init must be called before rendering; it fails when no GPU is
// available, letting callers fall back to the software backend.
func New(width, height int, opts ...Option) *Renderer {
	r := &Renderer{
		width:  width,
		height: height,
	}
	for _, opt := range opts {
		opt(&r.opts)
	}
	r.textures = handle.NewTableWithRelease(func(t *texture) {
		t.destroy(r.device)
	})
	return r
}

// Name returns the backend identifier.
func (r *Renderer) Name() string { return backend.BackendWGPU }

// Init acquires a device, builds the render pipeline, and allocates
// the render target and the built-in white texture.
func (r *Renderer) Init() error {
	if r.initialized {
		return nil
	}
	if err := r.acquireDevice(); err != nil {
		return err
	}
	if err := r.pipe.create(r.device, r.opts.spirv); err != nil {
		r.releaseDevice()
		return err
	}
	if err := r.createTarget(); err != nil {
		r.pipe.destroy(r.device)
		r.releaseDevice()
		return err
	}
	white, err := r.newTexture(1, 1, []byte{255, 255, 255, 255})
	if err != nil {
		r.destroyTarget()
		r.pipe.destroy(r.device)
		r.releaseDevice()
		return fmt.Errorf("wgpu: create white texture: %w", err)
	}
	r.white = white
	r.target = dlist.NewPixmap(r.width, r.height)
	r.initialized = true
	dlist.Logger().Info("wgpu backend initialized",
		"width", r.width, "height", r.height, "shared_device", r.externalDevice)
	return nil
}

// Close releases all GPU resources. Safe to call more than once.
func (r *Renderer) Close() {
	if r.device != nil {
		r.textures.Clear()
		if r.white != nil {
			r.white.destroy(r.device)
			r.white = nil
		}
		r.destroyTarget()
		r.pipe.destroy(r.device)
	}
	r.releaseDevice()
	r.target = nil
	r.initialized = false
}

// Target returns the CPU-side pixels of the last rendered frame.
func (r *Renderer) Target() *dlist.Pixmap {
	return r.target
}

// acquireDevice opens a GPU device, or adopts one from the configured
// provider.
func (r *Renderer) acquireDevice() error {
	if r.opts.provider != nil {
		return r.adoptProviderDevice()
	}

	hb, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: %w: vulkan backend not compiled in", backend.ErrBackendNotAvailable)
	}
	instance, err := hb.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("wgpu: %w: no GPU adapters found", backend.ErrBackendNotAvailable)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("wgpu: open device: %w", err)
	}
	r.instance = instance
	r.device = openDev.Device
	r.queue = openDev.Queue
	r.externalDevice = false
	dlist.Logger().Info("wgpu adapter opened", "adapter", selected.Info.Name)
	return nil
}

// adoptProviderDevice pulls the HAL device and queue out of a shared
// device provider.
func (r *Renderer) adoptProviderDevice() error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := r.opts.provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	r.device = device
	r.queue = queue
	r.externalDevice = true
	return nil
}

// releaseDevice destroys the device and instance unless they are
// shared with a provider.
func (r *Renderer) releaseDevice() {
	if !r.externalDevice {
		if r.device != nil {
			r.device.Destroy()
		}
		if r.instance != nil {
			r.instance.Destroy()
		}
	}
	r.device = nil
	r.queue = nil
	r.instance = nil
	r.externalDevice = false
}

// createTarget allocates the offscreen BGRA8 color target.
func (r *Renderer) createTarget() error {
	w := uint32(r.width)  //nolint:gosec // target sizes are small positive ints
	h := uint32(r.height) //nolint:gosec // target sizes are small positive ints
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "dlist_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create render target: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "dlist_target_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create render target view: %w", err)
	}
	r.targetTex = tex
	r.targetView = view
	return nil
}

func (r *Renderer) destroyTarget() {
	if r.targetView != nil {
		r.device.DestroyTextureView(r.targetView)
		r.targetView = nil
	}
	if r.targetTex != nil {
		r.device.DestroyTexture(r.targetTex)
		r.targetTex = nil
	}
}

// Render uploads one frame of draw data, replays its commands on the
// GPU, and reads the target back into Target().
func (r *Renderer) Render(dd *dlist.DrawData) error {
	if !r.initialized {
		return backend.ErrNotInitialized
	}
	if len(dd.Commands) == 0 {
		return nil
	}

	frame, err := r.uploadFrame(dd)
	if err != nil {
		return err
	}
	defer frame.destroy(r.device)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "dlist_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("dlist_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "dlist_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.targetView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	rp.SetPipeline(r.pipe.pipeline)
	rp.SetVertexBuffer(0, frame.vertBuf, 0)
	rp.SetIndexBuffer(frame.idxBuf, gputypes.IndexFormatUint32, 0)

	for i := range dd.Commands {
		cmd := &dd.Commands[i]
		x, y, w, h := r.scissor(cmd.ClipRect)
		if w == 0 || h == 0 {
			continue
		}
		tex := r.white
		if !cmd.Texture.IsZero() {
			t, ok := r.textures.Get(cmd.Texture)
			if !ok {
				rp.End()
				encoder.DiscardEncoding()
				return backend.ErrTextureNotFound
			}
			tex = t
		}
		rp.SetScissorRect(x, y, w, h)
		rp.SetBindGroup(0, tex.bindGroup, nil)
		rp.DrawIndexed(cmd.ElemCount, 1, cmd.IdxOffset, 0, 0)
	}
	rp.End()

	return r.readback(encoder)
}

// scissor clamps a clip rectangle to the target and converts it to
// integer scissor coordinates.
func (r *Renderer) scissor(clip dlist.Rect) (x, y, w, h uint32) {
	c := clip.Intersect(dlist.R(0, 0, float32(r.width), float32(r.height)))
	if c.Empty() {
		return 0, 0, 0, 0
	}
	x = uint32(c.Min.X)
	y = uint32(c.Min.Y)
	w = uint32(c.W() + 0.5)
	h = uint32(c.H() + 0.5)
	return x, y, w, h
}

// readback copies the render target into a staging buffer, submits,
// waits, and unpacks the BGRA rows into the target pixmap.
func (r *Renderer) readback(encoder hal.CommandEncoder) error {
	w := uint32(r.width)  //nolint:gosec // target sizes are small positive ints
	h := uint32(r.height) //nolint:gosec // target sizes are small positive ints

	// After the render pass the target is an attachment; the copy
	// needs it in transfer-source state.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.targetTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// Copy row pitch must be 256-byte aligned.
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "dlist_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(r.targetTex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.targetTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	// Return the target to attachment state for the next frame.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.targetTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(staging, 0, readback); err != nil {
		return fmt.Errorf("wgpu: readback: %w", err)
	}

	// Strip row padding and swizzle BGRA into the RGBA pixmap.
	dst := r.target.Data()
	for row := uint32(0); row < h; row++ {
		src := readback[row*alignedBytesPerRow:]
		out := dst[row*bytesPerRow:]
		for x := uint32(0); x < w; x++ {
			i := x * 4
			out[i+0] = src[i+2]
			out[i+1] = src[i+1]
			out[i+2] = src[i+0]
			out[i+3] = src[i+3]
		}
	}
	return nil
}
