package dlist

// AddConvexPolyFilled fills the convex polygon given by points.
// Convexity is the caller's contract; no check is performed, and a
// concave input produces overdraw artifacts rather than an error.
// Fewer than 3 points or a transparent color is a no-op.
//
// With anti-aliasing enabled, each input point becomes an inner
// (opaque) vertex pulled half a fringe inwards and an outer
// (transparent) vertex pushed half a fringe outwards along the
// averaged edge normal; the inner ring is fanned from its first
// vertex and each edge is bridged with a feather quad. Without
// anti-aliasing the fill is a plain fan of exactly (n-2) triangles.
func (dl *DrawList) AddConvexPolyFilled(points []Point, col Color) {
	n := len(points)
	if n < 3 || col.IsTransparent() {
		return
	}

	if !dl.opts.aaFill {
		base := uint32(len(dl.vtx))
		for _, p := range points {
			dl.addVertex(p, whiteUV, col)
		}
		for i := 2; i < n; i++ {
			dl.addTriangle(base, base+uint32(i-1), base+uint32(i))
		}
		return
	}

	trans := col.Transparent()
	halfFringe := dl.fringe * 0.5

	// Averaged outward edge normals per point. For a clockwise polygon
	// in screen space the left-hand segment normal points out of the
	// polygon.
	miters := make([]Point, n)
	for i := 0; i < n; i++ {
		prev := segmentNormal(points[(i+n-1)%n], points[i])
		next := segmentNormal(points[i], points[(i+1)%n])
		miters[i] = fixupMiter(prev.Add(next).Mul(0.5))
	}

	// Per-point vertex order: inner (opaque), outer (transparent).
	base := uint32(len(dl.vtx))
	for i := 0; i < n; i++ {
		d := miters[i].Mul(halfFringe)
		dl.addVertex(points[i].Sub(d), whiteUV, col)
		dl.addVertex(points[i].Add(d), whiteUV, trans)
	}

	// Inner fan.
	for i := 2; i < n; i++ {
		dl.addTriangle(base, base+uint32(i-1)*2, base+uint32(i)*2)
	}

	// Feather ring bridging inner and outer vertices per edge.
	for i := 0; i < n; i++ {
		a := base + uint32(i)*2
		b := base + uint32((i+1)%n)*2
		dl.addTriangle(a, b, b+1)
		dl.addTriangle(a, b+1, a+1)
	}
}
