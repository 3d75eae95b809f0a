package dlist

import "github.com/chewxy/math32"

// Shape layer: convenience draw calls built on the path API and the
// raw quad primitives.

// AddLine strokes a single segment from a to b.
func (dl *DrawList) AddLine(a, b Point, col Color, thickness float32) {
	if col.IsTransparent() {
		return
	}
	dl.PathLineTo(a)
	dl.PathLineTo(b)
	dl.PathStroke(col, false, thickness)
}

// AddRect strokes an axis-aligned rectangle outline. rounding > 0
// rounds the corners with that radius. The path is displaced half a
// pixel inwards so a 1px stroke lands crisply on the pixel grid.
func (dl *DrawList) AddRect(min, max Point, col Color, rounding, thickness float32) {
	if col.IsTransparent() {
		return
	}
	dl.pathRectRounded(min.Add(Pt(0.5, 0.5)), max.Sub(Pt(0.5, 0.5)), rounding)
	dl.PathStroke(col, true, thickness)
}

// AddRectFilled fills an axis-aligned rectangle. rounding > 0 rounds
// the corners with that radius.
func (dl *DrawList) AddRectFilled(min, max Point, col Color, rounding float32) {
	if col.IsTransparent() {
		return
	}
	if rounding <= 0 {
		// Plain rectangles skip the path machinery.
		dl.PrimRectUV(min, max, whiteUV, whiteUV, col)
		return
	}
	dl.pathRectRounded(min, max, rounding)
	dl.PathFillConvex(col)
}

// pathRectRounded appends a rectangle outline, with quarter-circle
// corners from the fast arc table when rounding is positive.
func (dl *DrawList) pathRectRounded(min, max Point, rounding float32) {
	r := rounding
	if half := (max.X - min.X) * 0.5; r > half {
		r = half
	}
	if half := (max.Y - min.Y) * 0.5; r > half {
		r = half
	}
	if r <= 0 {
		dl.PathRect(min, max)
		return
	}
	// Quarter turns are 12 samples of the 48-entry table.
	const q = arcFastTableSize / 4
	dl.PathArcToFast(Pt(min.X+r, min.Y+r), r, 2*q, 3*q) // top-left
	dl.PathArcToFast(Pt(max.X-r, min.Y+r), r, 3*q, 4*q) // top-right
	dl.PathArcToFast(Pt(max.X-r, max.Y-r), r, 0, q)     // bottom-right
	dl.PathArcToFast(Pt(min.X+r, max.Y-r), r, q, 2*q)   // bottom-left
}

// AddTriangle strokes a triangle outline.
func (dl *DrawList) AddTriangle(a, b, c Point, col Color, thickness float32) {
	if col.IsTransparent() {
		return
	}
	dl.PathLineTo(a)
	dl.PathLineTo(b)
	dl.PathLineTo(c)
	dl.PathStroke(col, true, thickness)
}

// AddTriangleFilled fills a triangle.
func (dl *DrawList) AddTriangleFilled(a, b, c Point, col Color) {
	if col.IsTransparent() {
		return
	}
	dl.PathLineTo(a)
	dl.PathLineTo(b)
	dl.PathLineTo(c)
	dl.PathFillConvex(col)
}

// pathCircle appends a full circle outline without duplicating the
// closing point. segments <= 0 selects the count automatically; small
// radii then use the fast table.
func (dl *DrawList) pathCircle(center Point, radius float32, segments int) {
	if segments <= 0 {
		if radius <= arcFastRadiusCutoff(dl.opts.tessTol) {
			dl.PathArcToFast(center, radius, 0, arcFastTableSize-1)
			return
		}
		segments = autoCircleSegments(radius, dl.opts.tessTol)
	}
	for i := 0; i < segments; i++ {
		a := float32(i) / float32(segments) * 2 * math32.Pi
		dl.PathLineTo(Pt(
			center.X+math32.Cos(a)*radius,
			center.Y+math32.Sin(a)*radius,
		))
	}
}

// AddCircle strokes a circle outline. segments <= 0 picks the count
// automatically from the radius and tessellation tolerance. Radii
// under half a pixel are a no-op.
func (dl *DrawList) AddCircle(center Point, radius float32, col Color, segments int, thickness float32) {
	if col.IsTransparent() || radius < 0.5 {
		return
	}
	dl.pathCircle(center, radius, segments)
	dl.PathStroke(col, true, thickness)
}

// AddCircleFilled fills a circle. segments <= 0 picks the count
// automatically. Radii under half a pixel are a no-op.
func (dl *DrawList) AddCircleFilled(center Point, radius float32, col Color, segments int) {
	if col.IsTransparent() || radius < 0.5 {
		return
	}
	dl.pathCircle(center, radius, segments)
	dl.PathFillConvex(col)
}

// AddNgon strokes a regular polygon with the given number of sides.
func (dl *DrawList) AddNgon(center Point, radius float32, col Color, sides int, thickness float32) {
	if col.IsTransparent() || radius < 0.5 || sides < 3 {
		return
	}
	dl.pathCircle(center, radius, sides)
	dl.PathStroke(col, true, thickness)
}

// AddNgonFilled fills a regular polygon with the given number of
// sides.
func (dl *DrawList) AddNgonFilled(center Point, radius float32, col Color, sides int) {
	if col.IsTransparent() || radius < 0.5 || sides < 3 {
		return
	}
	dl.pathCircle(center, radius, sides)
	dl.PathFillConvex(col)
}

// AddImage draws a textured axis-aligned rectangle. The UV rectangle
// (uvMin, uvMax) selects the texture region; col modulates it, with
// White passing the texture through unchanged.
func (dl *DrawList) AddImage(tex TextureID, min, max, uvMin, uvMax Point, col Color) {
	if col.IsTransparent() {
		return
	}
	dl.PushTexture(tex)
	dl.PrimRectUV(min, max, uvMin, uvMax, col)
	dl.PopTexture()
}

// AddImageQuad draws a texture mapped onto an arbitrary quad, corners
// given clockwise.
func (dl *DrawList) AddImageQuad(tex TextureID, a, b, c, d, uvA, uvB, uvC, uvD Point, col Color) {
	if col.IsTransparent() {
		return
	}
	dl.PushTexture(tex)
	dl.PrimQuadUV(a, b, c, d, uvA, uvB, uvC, uvD, col)
	dl.PopTexture()
}
