package dlist

// fixupMiter rescales the averaged normal of two adjacent unit edge
// normals so the joint sits on the miter line. The averaged normal has
// length cos(half-angle); dividing by its squared length yields a
// vector of length 1/cos(half-angle) along the same direction. The
// scale is clamped so near-folded joints cannot shoot vertices off to
// infinity.
func fixupMiter(m Point) Point {
	d2 := m.LengthSquared()
	if d2 < 1e-6 {
		return m
	}
	inv2 := 1 / d2
	if inv2 > 100 {
		inv2 = 100
	}
	return m.Mul(inv2)
}

// segmentNormal returns the unit normal of the segment a->b, pointing
// to its left in screen space (y down).
func segmentNormal(a, b Point) Point {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return Point{}
	}
	return Pt(d.Y/l, -d.X/l)
}

// AddPolyline strokes the open or closed polyline through points with
// the given thickness. With anti-aliasing enabled the stroke carries a
// 1px feathered edge; thin strokes (at most 1px) expand each point
// into an opaque center plus two transparent feather vertices, thick
// strokes into an opaque inner pair plus a transparent outer pair,
// both positioned along the averaged normals of the point's adjacent
// segments. Fewer than 2 points or a transparent color is a no-op.
func (dl *DrawList) AddPolyline(points []Point, col Color, closed bool, thickness float32) {
	n := len(points)
	if n < 2 || col.IsTransparent() {
		return
	}
	if thickness <= 0 {
		thickness = 1
	}

	segs := n - 1
	if closed {
		segs = n
	}

	if !dl.opts.aaLines {
		dl.addPolylinePlain(points, col, segs, thickness)
		return
	}

	// Per-segment unit normals, then per-point miter normals averaging
	// the two adjacent segments. Open endpoints keep their single
	// segment's normal.
	normals := make([]Point, segs)
	for i := 0; i < segs; i++ {
		normals[i] = segmentNormal(points[i], points[(i+1)%n])
	}
	miters := make([]Point, n)
	for i := 0; i < n; i++ {
		switch {
		case !closed && i == 0:
			miters[i] = normals[0]
		case !closed && i == n-1:
			miters[i] = normals[n-2]
		default:
			prev := normals[(i+segs-1)%segs]
			miters[i] = fixupMiter(prev.Add(normals[i]).Mul(0.5))
		}
	}

	if thickness <= 1 {
		dl.addPolylineThinAA(points, miters, col, segs)
	} else {
		dl.addPolylineThickAA(points, miters, col, segs, thickness)
	}
}

// addPolylinePlain emits one hard-edged quad per segment. Vertices are
// not shared between segments, so joints simply overlap.
func (dl *DrawList) addPolylinePlain(points []Point, col Color, segs int, thickness float32) {
	n := len(points)
	half := thickness * 0.5
	for i := 0; i < segs; i++ {
		p1, p2 := points[i], points[(i+1)%n]
		nrm := segmentNormal(p1, p2).Mul(half)
		ia := dl.addVertex(p1.Add(nrm), whiteUV, col)
		ib := dl.addVertex(p2.Add(nrm), whiteUV, col)
		ic := dl.addVertex(p2.Sub(nrm), whiteUV, col)
		id := dl.addVertex(p1.Sub(nrm), whiteUV, col)
		dl.addTriangle(ia, ib, ic)
		dl.addTriangle(ia, ic, id)
	}
}

// addPolylineThinAA strokes a hairline: 3 vertices per point (opaque
// center, transparent feather on each side), 4 triangles per segment.
func (dl *DrawList) addPolylineThinAA(points []Point, miters []Point, col Color, segs int) {
	n := len(points)
	trans := col.Transparent()

	base := uint32(len(dl.vtx))
	for i := 0; i < n; i++ {
		f := miters[i].Mul(dl.fringe)
		dl.addVertex(points[i], whiteUV, col)
		dl.addVertex(points[i].Add(f), whiteUV, trans)
		dl.addVertex(points[i].Sub(f), whiteUV, trans)
	}

	for i := 0; i < segs; i++ {
		a := base + uint32(i)*3
		b := base + uint32((i+1)%n)*3
		dl.addTriangle(a, b, b+1)
		dl.addTriangle(a, b+1, a+1)
		dl.addTriangle(a, b, b+2)
		dl.addTriangle(a, b+2, a+2)
	}
}

// addPolylineThickAA strokes a wide line: 4 vertices per point (opaque
// inner pair, transparent outer pair a fringe further out), 6
// triangles per segment.
func (dl *DrawList) addPolylineThickAA(points []Point, miters []Point, col Color, segs int, thickness float32) {
	n := len(points)
	trans := col.Transparent()

	halfInner := (thickness - dl.fringe) * 0.5
	if halfInner < 0 {
		halfInner = 0
	}
	halfOuter := halfInner + dl.fringe

	// Per-point vertex order: outer+, inner+, inner-, outer-.
	base := uint32(len(dl.vtx))
	for i := 0; i < n; i++ {
		m := miters[i]
		dl.addVertex(points[i].Add(m.Mul(halfOuter)), whiteUV, trans)
		dl.addVertex(points[i].Add(m.Mul(halfInner)), whiteUV, col)
		dl.addVertex(points[i].Sub(m.Mul(halfInner)), whiteUV, col)
		dl.addVertex(points[i].Sub(m.Mul(halfOuter)), whiteUV, trans)
	}

	for i := 0; i < segs; i++ {
		a := base + uint32(i)*4
		b := base + uint32((i+1)%n)*4
		dl.addTriangle(a+1, b+1, b+2) // opaque core
		dl.addTriangle(a+1, b+2, a+2)
		dl.addTriangle(a, b, b+1) // feather +
		dl.addTriangle(a, b+1, a+1)
		dl.addTriangle(a+2, b+2, b+3) // feather -
		dl.addTriangle(a+2, b+3, a+3)
	}
}
