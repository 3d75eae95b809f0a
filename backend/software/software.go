// Package software provides a pure-Go CPU renderer for draw lists.
//
// It executes commands in painter's order: each triangle is filled
// with barycentric interpolation of UV and vertex color, textures are
// sampled bilinearly and modulated by the vertex color, and the result
// is source-over blended into a dlist.Pixmap. No GPU or cgo required.
package software

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"

	"github.com/gogpu/dlist"
	"github.com/gogpu/dlist/backend"
	"github.com/gogpu/dlist/handle"
)

func init() {
	backend.Register(backend.BackendSoftware, func(width, height int) backend.Renderer {
		return New(width, height)
	})
}

// texture is a CPU-resident RGBA8 image.
type texture struct {
	width  int
	height int
	pix    []uint8
}

// Renderer rasterizes draw lists into a Pixmap.
type Renderer struct {
	width  int
	height int
	target *dlist.Pixmap

	textures    *handle.Table[*texture]
	initialized bool
}

// New creates a software renderer with a target of the given size.
func New(width, height int) *Renderer {
	return &Renderer{
		width:    width,
		height:   height,
		textures: handle.NewTable[*texture](),
	}
}

// Name returns the backend identifier.
func (r *Renderer) Name() string { return backend.BackendSoftware }

// Init allocates the render target. Always succeeds.
func (r *Renderer) Init() error {
	r.target = dlist.NewPixmap(r.width, r.height)
	r.initialized = true
	dlist.Logger().Debug("software backend initialized",
		"width", r.width, "height", r.height)
	return nil
}

// Close releases all textures and the render target.
func (r *Renderer) Close() {
	r.textures.Clear()
	r.target = nil
	r.initialized = false
}

// Target returns the render target pixmap. The caller clears it
// between frames and reads the rasterized result from it.
func (r *Renderer) Target() *dlist.Pixmap {
	return r.target
}

// Resize replaces the render target with one of the given size.
// Texture handles stay valid across a resize.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	if r.initialized {
		r.target = dlist.NewPixmap(width, height)
	}
}

// CreateTexture uploads an image and returns its handle.
func (r *Renderer) CreateTexture(img image.Image) (dlist.TextureID, error) {
	if !r.initialized {
		return dlist.TextureID{}, backend.ErrNotInitialized
	}
	pm := dlist.FromImage(img)
	t := &texture{
		width:  pm.Width(),
		height: pm.Height(),
		pix:    pm.Data(),
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
		return fmt.Errorf("software: texture size mismatch: have %dx%d, got %dx%d",
			t.width, t.height, b.Dx(), b.Dy())
	}
	copy(t.pix, dlist.FromImage(img).Data())
	return nil
}

// DestroyTexture releases a texture. Stale handles fail closed.
func (r *Renderer) DestroyTexture(id dlist.TextureID) error {
	if !r.textures.Remove(id) {
		return backend.ErrTextureNotFound
	}
	return nil
}

// Render rasterizes one frame of commands into the target.
func (r *Renderer) Render(dd *dlist.DrawData) error {
	if !r.initialized {
		return backend.ErrNotInitialized
	}
	for _, cmd := range dd.Commands {
		sc := r.scissor(cmd.ClipRect)
		if sc.Empty() {
			continue
		}
		var tex *texture
		if !cmd.Texture.IsZero() {
			t, ok := r.textures.Get(cmd.Texture)
			if !ok {
				return backend.ErrTextureNotFound
			}
			tex = t
		}
		idx := dd.Indices[cmd.IdxOffset : cmd.IdxOffset+cmd.ElemCount]
		for i := 0; i+2 < len(idx); i += 3 {
			r.fillTriangle(
				dd.Vertices[idx[i]],
				dd.Vertices[idx[i+1]],
				dd.Vertices[idx[i+2]],
				tex, sc,
			)
		}
	}
	return nil
}

// scissor converts a clip rectangle to integer pixel bounds within
// the target.
func (r *Renderer) scissor(clip dlist.Rect) image.Rectangle {
	x0 := int(math32.Floor(clip.Min.X))
	y0 := int(math32.Floor(clip.Min.Y))
	x1 := int(math32.Ceil(clip.Max.X))
	y1 := int(math32.Ceil(clip.Max.Y))
	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, r.width, r.height))
}

// edgeFn is the signed doubled area of triangle (a, b, p); its sign
// tells which side of a->b the point p lies on.
func edgeFn(a, b, p dlist.Point) float32 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// fillTriangle rasterizes one triangle with barycentric interpolation,
// sampling at pixel centers. Either winding is accepted.
func (r *Renderer) fillTriangle(v0, v1, v2 dlist.Vertex, tex *texture, sc image.Rectangle) {
	area := edgeFn(v0.Pos, v1.Pos, v2.Pos)
	if area == 0 {
		return
	}
	sign := float32(1)
	if area < 0 {
		sign = -1
		area = -area
	}

	minX := int(math32.Floor(min3(v0.Pos.X, v1.Pos.X, v2.Pos.X)))
	minY := int(math32.Floor(min3(v0.Pos.Y, v1.Pos.Y, v2.Pos.Y)))
	maxX := int(math32.Ceil(max3(v0.Pos.X, v1.Pos.X, v2.Pos.X)))
	maxY := int(math32.Ceil(max3(v0.Pos.Y, v1.Pos.Y, v2.Pos.Y)))
	box := image.Rect(minX, minY, maxX, maxY).Intersect(sc)

	c0 := v0.Color.Float4()
	c1 := v1.Color.Float4()
	c2 := v2.Color.Float4()

	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			p := dlist.Pt(float32(x)+0.5, float32(y)+0.5)
			w0 := sign * edgeFn(v1.Pos, v2.Pos, p)
			w1 := sign * edgeFn(v2.Pos, v0.Pos, p)
			w2 := sign * edgeFn(v0.Pos, v1.Pos, p)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			b0, b1, b2 := w0/area, w1/area, w2/area

			cr := c0[0]*b0 + c1[0]*b1 + c2[0]*b2
			cg := c0[1]*b0 + c1[1]*b1 + c2[1]*b2
			cb := c0[2]*b0 + c1[2]*b1 + c2[2]*b2
			ca := c0[3]*b0 + c1[3]*b1 + c2[3]*b2

			if tex != nil {
				u := v0.UV.X*b0 + v1.UV.X*b1 + v2.UV.X*b2
				v := v0.UV.Y*b0 + v1.UV.Y*b1 + v2.UV.Y*b2
				tr, tg, tb, ta := tex.sample(u, v)
				cr *= tr
				cg *= tg
				cb *= tb
				ca *= ta
			}
			if ca <= 0 {
				continue
			}
			r.blendPixel(x, y, cr, cg, cb, ca)
		}
	}
}

// blendPixel source-over composites a straight-alpha color onto the
// target pixel.
func (r *Renderer) blendPixel(x, y int, sr, sg, sb, sa float32) {
	dst := r.target.GetPixel(x, y)
	dr := float32(dst.R()) / 255
	dg := float32(dst.G()) / 255
	db := float32(dst.B()) / 255
	da := float32(dst.A()) / 255

	outA := sa + da*(1-sa)
	if outA <= 0 {
		r.target.SetPixel(x, y, dlist.TransparentBlack)
		return
	}
	outR := (sr*sa + dr*da*(1-sa)) / outA
	outG := (sg*sa + dg*da*(1-sa)) / outA
	outB := (sb*sa + db*da*(1-sa)) / outA

	r.target.SetPixel(x, y, dlist.RGBA8(
		clamp8(outR), clamp8(outG), clamp8(outB), clamp8(outA),
	))
}

// sample bilinearly reads the texture at normalized UV, clamping to
// the edge.
func (t *texture) sample(u, v float32) (float32, float32, float32, float32) {
	fx := u*float32(t.width) - 0.5
	fy := v*float32(t.height) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	r00, g00, b00, a00 := t.texel(x0, y0)
	r10, g10, b10, a10 := t.texel(x0+1, y0)
	r01, g01, b01, a01 := t.texel(x0, y0+1)
	r11, g11, b11, a11 := t.texel(x0+1, y0+1)

	lerp := func(a, b, t float32) float32 { return a + (b-a)*t }
	return lerp(lerp(r00, r10, ax), lerp(r01, r11, ax), ay),
		lerp(lerp(g00, g10, ax), lerp(g01, g11, ax), ay),
		lerp(lerp(b00, b10, ax), lerp(b01, b11, ax), ay),
		lerp(lerp(a00, a10, ax), lerp(a01, a11, ax), ay)
}

// texel reads one texel with clamp-to-edge addressing.
func (t *texture) texel(x, y int) (float32, float32, float32, float32) {
	if x < 0 {
		x = 0
	} else if x >= t.width {
		x = t.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.height {
		y = t.height - 1
	}
	i := (y*t.width + x) * 4
	return float32(t.pix[i]) / 255,
		float32(t.pix[i+1]) / 255,
		float32(t.pix[i+2]) / 255,
		float32(t.pix[i+3]) / 255
}

func clamp8(v float32) uint8 {
	v *= 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
