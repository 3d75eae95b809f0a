package dlist

import "github.com/chewxy/math32"

// Tessellation limits and defaults.
const (
	// DefaultTessellationTolerance is the maximum sagitta, in pixels,
	// allowed between a tessellated chord and the true arc.
	DefaultTessellationTolerance = 0.30

	// MinCircleSegments and MaxCircleSegments clamp the automatic
	// segment count.
	MinCircleSegments = 12
	MaxCircleSegments = 512

	// arcFastTableSize is the number of precomputed samples around
	// the unit circle used for small radii.
	arcFastTableSize = 48
)

// arcFastVtx holds arcFastTableSize points evenly spaced around the
// unit circle, starting at angle 0 and winding clockwise in screen
// space (y down). Small circles sample this table instead of calling
// Sin/Cos per vertex.
var arcFastVtx [arcFastTableSize]Point

func init() {
	for i := range arcFastVtx {
		a := float32(i) / arcFastTableSize * 2 * math32.Pi
		arcFastVtx[i] = Pt(math32.Cos(a), math32.Sin(a))
	}
}

// autoCircleSegments returns the minimum even segment count n such
// that the sagitta r*(1-cos(pi/n)) stays at or below tol, clamped to
// [MinCircleSegments, MaxCircleSegments].
func autoCircleSegments(radius, tol float32) int {
	if radius <= 0 {
		return MinCircleSegments
	}
	e := tol
	if e > radius {
		e = radius
	}
	n := int(math32.Ceil(math32.Pi / math32.Acos(1-e/radius)))
	n += n & 1 // round up to even
	if n < MinCircleSegments {
		return MinCircleSegments
	}
	if n > MaxCircleSegments {
		return MaxCircleSegments
	}
	return n
}

// arcFastRadiusCutoff returns the largest radius at which the
// 48-sample fast table still meets tol: beyond it the table's fixed
// angular step would exceed the allowed sagitta and the per-vertex
// trigonometric path is used instead.
func arcFastRadiusCutoff(tol float32) float32 {
	return tol / (1 - math32.Cos(math32.Pi/arcFastTableSize))
}
