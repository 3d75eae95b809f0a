package dlist

import "github.com/chewxy/math32"

// Path building. The DrawList keeps one ephemeral point accumulator;
// PathLineTo and the arc helpers append to it, and PathStroke or
// PathFillConvex consume and clear it. Paths never outlive the call
// that terminates them.

// PathClear drops any accumulated path points.
func (dl *DrawList) PathClear() {
	dl.path = dl.path[:0]
}

// PathLineTo appends a point to the current path.
func (dl *DrawList) PathLineTo(p Point) {
	dl.path = append(dl.path, p)
}

// PathLineToMergeDuplicate appends a point unless it equals the
// current last path point, avoiding zero-length segments at arc and
// line joins.
func (dl *DrawList) PathLineToMergeDuplicate(p Point) {
	if n := len(dl.path); n > 0 && dl.path[n-1] == p {
		return
	}
	dl.path = append(dl.path, p)
}

// PathArcTo appends an arc around center from angle a0 to a1
// (radians, clockwise in screen space). With segments <= 0 the count
// is chosen automatically from the radius and the list's tessellation
// tolerance, and small radii sample the fast table instead of calling
// trigonometric functions per vertex. A zero radius degenerates to
// the center point.
func (dl *DrawList) PathArcTo(center Point, radius, a0, a1 float32, segments int) {
	if radius <= 0 {
		dl.PathLineToMergeDuplicate(center)
		return
	}

	if segments <= 0 {
		if radius <= arcFastRadiusCutoff(dl.opts.tessTol) {
			dl.pathArcToFastRadians(center, radius, a0, a1)
			return
		}
		full := autoCircleSegments(radius, dl.opts.tessTol)
		segments = int(math32.Ceil(float32(full) * math32.Abs(a1-a0) / (2 * math32.Pi)))
		if segments < 1 {
			segments = 1
		}
	}

	for i := 0; i <= segments; i++ {
		a := a0 + (a1-a0)*float32(i)/float32(segments)
		dl.PathLineToMergeDuplicate(Pt(
			center.X+math32.Cos(a)*radius,
			center.Y+math32.Sin(a)*radius,
		))
	}
}

// PathArcToFast appends an arc using the precomputed sample table.
// s0 and s1 are sample positions in 48ths of a full clockwise turn
// (0 = angle 0, 12 = a quarter turn); positions outside the table wrap
// around the circle. Samples are emitted from s0 to s1 inclusive, in
// decreasing order when s0 > s1, so the arguments choose the winding.
// The fast path trades the table's fixed angular resolution for
// avoiding per-vertex trigonometry.
func (dl *DrawList) PathArcToFast(center Point, radius float32, s0, s1 int) {
	if radius <= 0 {
		dl.PathLineToMergeDuplicate(center)
		return
	}
	step := 1
	if s0 > s1 {
		step = -1
	}
	for s := s0; ; s += step {
		c := arcFastVtx[((s%arcFastTableSize)+arcFastTableSize)%arcFastTableSize]
		dl.PathLineToMergeDuplicate(Pt(
			center.X+c.X*radius,
			center.Y+c.Y*radius,
		))
		if s == s1 {
			break
		}
	}
}

// pathArcToFastRadians maps a radian range onto the nearest fast-table
// samples, preserving the range's direction. Endpoints are snapped
// outward so the arc always covers the requested range.
func (dl *DrawList) pathArcToFastRadians(center Point, radius, a0, a1 float32) {
	const perTurn = arcFastTableSize
	t0 := a0 / (2 * math32.Pi) * perTurn
	t1 := a1 / (2 * math32.Pi) * perTurn
	if a0 <= a1 {
		dl.PathArcToFast(center, radius, int(math32.Floor(t0)), int(math32.Ceil(t1)))
	} else {
		dl.PathArcToFast(center, radius, int(math32.Ceil(t0)), int(math32.Floor(t1)))
	}
}

// PathRect appends the four corners of an axis-aligned rectangle.
func (dl *DrawList) PathRect(min, max Point) {
	dl.PathLineTo(min)
	dl.PathLineTo(Pt(max.X, min.Y))
	dl.PathLineTo(max)
	dl.PathLineTo(Pt(min.X, max.Y))
}

// PathStroke strokes the accumulated path and clears it.
func (dl *DrawList) PathStroke(col Color, closed bool, thickness float32) {
	dl.AddPolyline(dl.path, col, closed, thickness)
	dl.path = dl.path[:0]
}

// PathFillConvex fills the accumulated path as a convex polygon and
// clears it. Convexity is the caller's contract.
func (dl *DrawList) PathFillConvex(col Color) {
	dl.AddConvexPolyFilled(dl.path, col)
	dl.path = dl.path[:0]
}
