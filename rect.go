package dlist

// Rect is an axis-aligned rectangle given by its min (top-left) and
// max (bottom-right) corners. Used for clip rectangles and bounds.
type Rect struct {
	Min, Max Point
}

// R is a convenience function to create a Rect from coordinates.
func R(x0, y0, x1, y1 float32) Rect {
	return Rect{Min: Pt(x0, y0), Max: Pt(x1, y1)}
}

// W returns the width of the rectangle.
func (r Rect) W() float32 { return r.Max.X - r.Min.X }

// H returns the height of the rectangle.
func (r Rect) H() float32 { return r.Max.Y - r.Min.Y }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains reports whether p lies inside the rectangle.
// The max edges are exclusive, matching pixel-coverage convention.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the overlap of two rectangles. If they do not
// overlap, the result is empty (but not normalized to zero).
func (r Rect) Intersect(s Rect) Rect {
	out := r
	if s.Min.X > out.Min.X {
		out.Min.X = s.Min.X
	}
	if s.Min.Y > out.Min.Y {
		out.Min.Y = s.Min.Y
	}
	if s.Max.X < out.Max.X {
		out.Max.X = s.Max.X
	}
	if s.Max.Y < out.Max.Y {
		out.Max.Y = s.Max.Y
	}
	return out
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	out := r
	if s.Min.X < out.Min.X {
		out.Min.X = s.Min.X
	}
	if s.Min.Y < out.Min.Y {
		out.Min.Y = s.Min.Y
	}
	if s.Max.X > out.Max.X {
		out.Max.X = s.Max.X
	}
	if s.Max.Y > out.Max.Y {
		out.Max.Y = s.Max.Y
	}
	return out
}

// Expand returns the rectangle grown by d on every side.
func (r Rect) Expand(d float32) Rect {
	return Rect{
		Min: Pt(r.Min.X-d, r.Min.Y-d),
		Max: Pt(r.Max.X+d, r.Max.Y+d),
	}
}
