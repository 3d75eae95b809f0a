package wgpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/dlist"
	"github.com/gogpu/dlist/backend"
)

// texture is one GPU texture plus its per-texture bind group. The
// bind group is baked at creation because the pipeline binds uniform,
// texture and sampler as one group.
type texture struct {
	width  int
	height int

	tex       hal.Texture
	view      hal.TextureView
	bindGroup hal.BindGroup
}

// destroy releases the texture's GPU objects. Used as the handle
// table's release hook so removal always tears the resource down.
func (t *texture) destroy(device hal.Device) {
	if device == nil {
		return
	}
	if t.bindGroup != nil {
		device.DestroyBindGroup(t.bindGroup)
		t.bindGroup = nil
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// CreateTexture uploads an image and returns its handle.
func (r *Renderer) CreateTexture(img image.Image) (dlist.TextureID, error) {
	if !r.initialized {
		return dlist.TextureID{}, backend.ErrNotInitialized
	}
	pm := dlist.FromImage(img)
	t, err := r.newTexture(pm.Width(), pm.Height(), pm.Data())
	if err != nil {
		return dlist.TextureID{}, err
	}
	return r.textures.Add(t), nil
}

// UpdateTexture replaces the contents of an existing texture. The new
// image must match the texture's dimensions.
func (r *Renderer) UpdateTexture(id dlist.TextureID, img image.Image) error {
	t, ok := r.textures.Get(id)
	if !ok {
		return backend.ErrTextureNotFound
	}
	b := img.Bounds()
	if b.Dx() != t.width || b.Dy() != t.height {
		return fmt.Errorf("wgpu: texture size mismatch: have %dx%d, got %dx%d",
			t.width, t.height, b.Dx(), b.Dy())
	}
	r.writeTexture(t, dlist.FromImage(img).Data())
	return nil
}

// DestroyTexture releases a texture. Stale handles fail closed. The
// table's release hook performs the GPU teardown.
func (r *Renderer) DestroyTexture(id dlist.TextureID) error {
	if !r.textures.Remove(id) {
		return backend.ErrTextureNotFound
	}
	return nil
}

// newTexture creates an RGBA8 texture, uploads pixels, and bakes the
// bind group.
func (r *Renderer) newTexture(width, height int, pixels []byte) (*texture, error) {
	w := uint32(width)  //nolint:gosec // image sizes are small positive ints
	h := uint32(height) //nolint:gosec // image sizes are small positive ints

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "dlist_texture",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "dlist_texture_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "dlist_texture_bind",
		Layout: r.pipe.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.pipe.uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: r.pipe.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		r.device.DestroyTextureView(view)
		r.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture bind group: %w", err)
	}

	t := &texture{
		width:     width,
		height:    height,
		tex:       tex,
		view:      view,
		bindGroup: bindGroup,
	}
	r.writeTexture(t, pixels)
	return t, nil
}

// writeTexture uploads RGBA8 pixels into the whole texture.
func (r *Renderer) writeTexture(t *texture, pixels []byte) {
	w := uint32(t.width)  //nolint:gosec // image sizes are small positive ints
	h := uint32(t.height) //nolint:gosec // image sizes are small positive ints
	r.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
		},
		pixels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
}
