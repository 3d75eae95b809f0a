// Package font bakes TTF glyphs into a texture atlas and emits them
// as textured quads on a draw list. It covers ASCII and Latin-1 with
// per-pair kerning; complex shaping is out of scope.
package font

import (
	"fmt"
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/dlist"
	"github.com/gogpu/dlist/backend"
)

// maxAtlasSize bounds the packing retry loop. A 4096 atlas holds the
// Latin-1 set at any sane pixel size.
const maxAtlasSize = 4096

// Glyph describes one baked glyph: its placement metrics in pixels
// and its UV rectangle in the atlas texture.
type Glyph struct {
	Advance  float32
	BearingX float32
	BearingY float32 // pixels above the baseline
	W, H     int

	U0, V0 float32
	U1, V1 float32
}

// Atlas is a baked glyph atlas for a single face at a single pixel
// size. Bake once, upload once, draw every frame.
type Atlas struct {
	sizePx  float32
	ascent  float32
	descent float32
	lineH   float32

	glyphs map[rune]Glyph
	kern   map[[2]rune]float32

	img     *image.RGBA
	texture dlist.TextureID
}

// Option configures atlas baking.
type Option func(*atlasOptions)

type atlasOptions struct {
	runes   []rune
	padding int
}

// WithRunes bakes the given runes instead of the default ASCII and
// Latin-1 set.
func WithRunes(runes []rune) Option {
	return func(o *atlasOptions) {
		o.runes = runes
	}
}

// WithPadding sets the pixel gap between packed glyphs. The default
// of 1 prevents bilinear sampling from bleeding across neighbors.
func WithPadding(px int) Option {
	return func(o *atlasOptions) {
		if px >= 0 {
			o.padding = px
		}
	}
}

func defaultRunes() []rune {
	runes := make([]rune, 0, 224)
	for r := rune(32); r <= 126; r++ {
		runes = append(runes, r)
	}
	for r := rune(160); r <= 255; r++ {
		runes = append(runes, r)
	}
	return runes
}

// NewAtlas parses TTF data and bakes the glyph set at the given pixel
// size into a white-on-transparent RGBA image. The glyphs tint by
// vertex color when drawn.
func NewAtlas(ttf []byte, sizePx float32, opts ...Option) (*Atlas, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("font: invalid pixel size %g", sizePx)
	}
	o := atlasOptions{padding: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.runes) == 0 {
		o.runes = defaultRunes()
	}

	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("font: parse: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font: create face: %w", err)
	}
	defer face.Close()

	m := face.Metrics()
	a := &Atlas{
		sizePx:  sizePx,
		ascent:  float32(m.Ascent.Round()),
		descent: float32(m.Descent.Round()),
		lineH:   float32(m.Height.Round()),
		glyphs:  make(map[rune]Glyph, len(o.runes)),
		kern:    make(map[[2]rune]float32),
	}

	type slot struct {
		r       rune
		g       Glyph
		dotOffX fixed.Int26_6
		dotOffY fixed.Int26_6
	}
	slots := make([]slot, 0, len(o.runes))
	for _, r := range o.runes {
		br, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		// Snap the box outward so hinted pixels never land outside
		// the packed rectangle.
		x0 := br.Min.X.Floor()
		y0 := br.Min.Y.Floor()
		w := br.Max.X.Ceil() - x0
		h := br.Max.Y.Ceil() - y0
		slots = append(slots, slot{
			r: r,
			g: Glyph{
				Advance:  float32(adv) / 64,
				BearingX: float32(x0),
				BearingY: float32(-y0),
				W:        w,
				H:        h,
			},
			dotOffX: -fixed.I(x0),
			dotOffY: -fixed.I(y0),
		})
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("font: face covers none of the requested runes")
	}

	// Pack, doubling the atlas until everything fits.
	size := 128
	packer := newShelfPacker(size, size, o.padding)
	var positions []image.Point
	for {
		positions = positions[:0]
		fits := true
		for _, s := range slots {
			x, y, ok := packer.allocate(s.g.W, s.g.H)
			if !ok && s.g.W > 0 && s.g.H > 0 {
				fits = false
				break
			}
			positions = append(positions, image.Pt(x, y))
		}
		if fits {
			break
		}
		size *= 2
		if size > maxAtlasSize {
			return nil, fmt.Errorf("font: glyph set exceeds %dx%d atlas", maxAtlasSize, maxAtlasSize)
		}
		packer.width, packer.height = size, size
		packer.reset()
	}

	a.img = image.NewRGBA(image.Rect(0, 0, size, size))
	drawer := xfont.Drawer{
		Dst:  a.img,
		Src:  image.White,
		Face: face,
	}
	scale := 1 / float32(size)
	for i, s := range slots {
		p := positions[i]
		if s.g.W > 0 && s.g.H > 0 {
			drawer.Dot = fixed.Point26_6{
				X: fixed.I(p.X) + s.dotOffX,
				Y: fixed.I(p.Y) + s.dotOffY,
			}
			drawer.DrawString(string(s.r))
		}
		g := s.g
		g.U0 = float32(p.X) * scale
		g.V0 = float32(p.Y) * scale
		g.U1 = float32(p.X+g.W) * scale
		g.V1 = float32(p.Y+g.H) * scale
		a.glyphs[s.r] = g
	}

	// Kerning table, nonzero pairs only. Most Latin pairs kern to
	// zero so the map stays small.
	for _, p := range slots {
		for _, q := range slots {
			if k := face.Kern(p.r, q.r); k != 0 {
				a.kern[[2]rune{p.r, q.r}] = float32(k) / 64
			}
		}
	}

	dlist.Logger().Debug("font atlas baked",
		"glyphs", len(a.glyphs), "kern_pairs", len(a.kern), "atlas_size", size)
	return a, nil
}

// SizePx returns the pixel size the atlas was baked at.
func (a *Atlas) SizePx() float32 { return a.sizePx }

// Ascent returns the baseline-to-top distance in pixels.
func (a *Atlas) Ascent() float32 { return a.ascent }

// Descent returns the baseline-to-bottom distance in pixels.
func (a *Atlas) Descent() float32 { return a.descent }

// LineHeight returns the recommended baseline-to-baseline distance.
func (a *Atlas) LineHeight() float32 { return a.lineH }

// Image returns the baked atlas image, white glyphs on transparent.
func (a *Atlas) Image() *image.RGBA { return a.img }

// Glyph returns the baked glyph for a rune.
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// Kern returns the kerning adjustment between two runes in pixels.
func (a *Atlas) Kern(prev, next rune) float32 {
	return a.kern[[2]rune{prev, next}]
}

// Upload creates the atlas texture on a renderer. Must be called once
// before Draw; the texture belongs to the renderer afterwards.
func (a *Atlas) Upload(r backend.Renderer) error {
	id, err := r.CreateTexture(a.img)
	if err != nil {
		return fmt.Errorf("font: upload atlas: %w", err)
	}
	a.texture = id
	return nil
}

// Texture returns the uploaded atlas texture. Zero until Upload.
func (a *Atlas) Texture() dlist.TextureID { return a.texture }

// Draw emits text as textured quads. pos is the top-left corner of
// the first line; newlines advance by LineHeight. Runes the atlas does
// not cover are skipped.
func (a *Atlas) Draw(dl *dlist.DrawList, pos dlist.Point, text string, col dlist.Color) {
	if col.IsTransparent() || text == "" {
		return
	}
	dl.PushTexture(a.texture)
	defer dl.PopTexture()

	penX := pos.X
	baseline := pos.Y + a.ascent
	prev := rune(-1)
	for _, r := range text {
		if r == '\n' {
			penX = pos.X
			baseline += a.lineH
			prev = -1
			continue
		}
		g, ok := a.glyphs[r]
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 {
			penX += a.Kern(prev, r)
		}
		if g.W > 0 && g.H > 0 {
			x0 := penX + g.BearingX
			y0 := baseline - g.BearingY
			dl.PrimRectUV(
				dlist.Pt(x0, y0),
				dlist.Pt(x0+float32(g.W), y0+float32(g.H)),
				dlist.Pt(g.U0, g.V0),
				dlist.Pt(g.U1, g.V1),
				col,
			)
		}
		penX += g.Advance
		prev = r
	}
}

// Measure returns the pixel extent of text as laid out by Draw: the
// widest line by total advance, and the line count times LineHeight.
func (a *Atlas) Measure(text string) dlist.Point {
	if text == "" {
		return dlist.Point{}
	}
	var maxW, lineW float32
	lines := 1
	prev := rune(-1)
	for _, r := range text {
		if r == '\n' {
			if lineW > maxW {
				maxW = lineW
			}
			lineW = 0
			lines++
			prev = -1
			continue
		}
		g, ok := a.glyphs[r]
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 {
			lineW += a.Kern(prev, r)
		}
		lineW += g.Advance
		prev = r
	}
	if lineW > maxW {
		maxW = lineW
	}
	return dlist.Pt(maxW, float32(lines)*a.lineH)
}
