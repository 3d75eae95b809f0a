package dlist

// fullClipRect is the clip rectangle in effect when no clip has been
// pushed. It is large enough to never clip practical screen geometry.
var fullClipRect = R(-16384, -16384, 16384, 16384)

// DrawList accumulates one frame of 2D geometry: high-level draw calls
// are tessellated into flat vertex/index buffers and an ordered command
// stream, with no GPU work on this side. A backend consumes the result
// of DrawData once per frame; Reset starts the next frame reusing the
// same storage.
//
// A DrawList is not safe for concurrent use. The intended model is one
// list owned by the thread that drives the frame.
type DrawList struct {
	vtx  []Vertex
	idx  []uint32
	cmds []DrawCmd

	// path is the ephemeral point accumulator for PathLineTo/PathArcTo,
	// consumed and cleared by PathStroke or PathFillConvex.
	path []Point

	clipStack []Rect
	texStack  []TextureID

	displaySize Point
	opts        listOptions

	// fringe is the anti-aliasing feather width in pixels.
	fringe float32
}

// New creates an empty draw list.
func New(opts ...Option) *DrawList {
	o := defaultListOptions()
	for _, opt := range opts {
		opt(&o)
	}
	dl := &DrawList{
		opts:   o,
		fringe: 1.0,
	}
	if o.vtxCapacity > 0 {
		dl.vtx = make([]Vertex, 0, o.vtxCapacity)
	}
	if o.idxCapacity > 0 {
		dl.idx = make([]uint32, 0, o.idxCapacity)
	}
	dl.startFrame()
	return dl
}

// startFrame seeds the command stream with one open command carrying
// the current effective clip/texture state.
func (dl *DrawList) startFrame() {
	dl.cmds = append(dl.cmds, DrawCmd{
		ClipRect: dl.currentClipRect(),
		Texture:  dl.currentTexture(),
	})
}

// SetDisplaySize records the framebuffer size the frame is built for.
// It is carried through to DrawData; the list itself does not clip to
// it.
func (dl *DrawList) SetDisplaySize(w, h float32) {
	dl.displaySize = Pt(w, h)
}

// Reset truncates the frame's buffers, retaining their capacity, and
// clears the clip, texture and path state. Handles previously returned
// by DrawData alias freed content after Reset.
func (dl *DrawList) Reset() {
	dl.vtx = dl.vtx[:0]
	dl.idx = dl.idx[:0]
	dl.cmds = dl.cmds[:0]
	dl.path = dl.path[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.texStack = dl.texStack[:0]
	dl.startFrame()
}

// DrawData finalizes the frame and returns its flat buffers. Commands
// with no geometry are dropped. The returned slices alias the list's
// storage and stay valid until the next Reset.
func (dl *DrawList) DrawData() *DrawData {
	cmds := make([]DrawCmd, 0, len(dl.cmds))
	for _, c := range dl.cmds {
		if c.ElemCount > 0 {
			cmds = append(cmds, c)
		}
	}
	return &DrawData{
		Vertices:    dl.vtx,
		Indices:     dl.idx,
		Commands:    cmds,
		DisplaySize: dl.displaySize,
	}
}

// Stats summarizes the geometry accumulated so far this frame.
func (dl *DrawList) Stats() Statistics {
	n := 0
	for _, c := range dl.cmds {
		if c.ElemCount > 0 {
			n++
		}
	}
	return Statistics{
		VertexCount:   len(dl.vtx),
		IndexCount:    len(dl.idx),
		CommandCount:  n,
		TriangleCount: len(dl.idx) / 3,
	}
}

// currentCmd returns the open command at the tail of the stream.
func (dl *DrawList) currentCmd() *DrawCmd {
	return &dl.cmds[len(dl.cmds)-1]
}

func (dl *DrawList) currentClipRect() Rect {
	if n := len(dl.clipStack); n > 0 {
		return dl.clipStack[n-1]
	}
	return fullClipRect
}

func (dl *DrawList) currentTexture() TextureID {
	if n := len(dl.texStack); n > 0 {
		return dl.texStack[n-1]
	}
	return TextureID{}
}

// onStateChanged makes the tail command match the current effective
// clip/texture state. The open command is updated in place while it is
// still empty; once it holds geometry, a new command is started so the
// already-emitted draws keep their state.
func (dl *DrawList) onStateChanged() {
	clip := dl.currentClipRect()
	tex := dl.currentTexture()
	cur := dl.currentCmd()
	if cur.ClipRect == clip && cur.Texture == tex {
		return
	}
	if cur.ElemCount == 0 {
		cur.ClipRect = clip
		cur.Texture = tex
		return
	}
	dl.cmds = append(dl.cmds, DrawCmd{
		ClipRect:  clip,
		Texture:   tex,
		VtxOffset: uint32(len(dl.vtx)),
		IdxOffset: uint32(len(dl.idx)),
	})
}

// PushClipRect pushes a clip rectangle. With intersect set, the
// rectangle is intersected with the current clip instead of replacing
// it. Subsequent commands are scissored to the result.
func (dl *DrawList) PushClipRect(r Rect, intersect bool) {
	if intersect {
		r = r.Intersect(dl.currentClipRect())
	}
	dl.clipStack = append(dl.clipStack, r)
	dl.onStateChanged()
}

// PopClipRect restores the clip rectangle in effect before the
// matching PushClipRect. Popping an empty stack is a no-op.
func (dl *DrawList) PopClipRect() {
	if n := len(dl.clipStack); n > 0 {
		dl.clipStack = dl.clipStack[:n-1]
		dl.onStateChanged()
	}
}

// PushTexture makes subsequent draws sample the given texture.
func (dl *DrawList) PushTexture(id TextureID) {
	dl.texStack = append(dl.texStack, id)
	dl.onStateChanged()
}

// PopTexture restores the texture in effect before the matching
// PushTexture. Popping an empty stack is a no-op.
func (dl *DrawList) PopTexture() {
	if n := len(dl.texStack); n > 0 {
		dl.texStack = dl.texStack[:n-1]
		dl.onStateChanged()
	}
}

// addVertex appends one vertex and returns its absolute index.
func (dl *DrawList) addVertex(pos, uv Point, col Color) uint32 {
	i := uint32(len(dl.vtx))
	dl.vtx = append(dl.vtx, Vertex{Pos: pos, UV: uv, Color: col})
	return i
}

// addTriangle appends one triangle's indices and grows the open
// command. The vertices referenced must already be in the buffer.
func (dl *DrawList) addTriangle(a, b, c uint32) {
	dl.idx = append(dl.idx, a, b, c)
	dl.currentCmd().ElemCount += 3
}

// whiteUV is the texture coordinate untextured geometry carries. The
// backends keep an opaque white pixel at (0,0) of their default
// texture so untextured and textured draws share one shader.
var whiteUV = Pt(0, 0)

// PrimQuadUV emits a textured quad with per-corner UVs. Corners are
// given clockwise starting at the top-left. This is the raw primitive
// under AddImage and the font atlas glyph emitter.
func (dl *DrawList) PrimQuadUV(a, b, c, d, uvA, uvB, uvC, uvD Point, col Color) {
	if col.IsTransparent() {
		return
	}
	ia := dl.addVertex(a, uvA, col)
	ib := dl.addVertex(b, uvB, col)
	ic := dl.addVertex(c, uvC, col)
	id := dl.addVertex(d, uvD, col)
	dl.addTriangle(ia, ib, ic)
	dl.addTriangle(ia, ic, id)
}

// PrimRectUV emits an axis-aligned textured rectangle mapping the UV
// rectangle (uvMin, uvMax) across it.
func (dl *DrawList) PrimRectUV(min, max, uvMin, uvMax Point, col Color) {
	dl.PrimQuadUV(
		min, Pt(max.X, min.Y), max, Pt(min.X, max.Y),
		uvMin, Pt(uvMax.X, uvMin.Y), uvMax, Pt(uvMin.X, uvMax.Y),
		col,
	)
}
