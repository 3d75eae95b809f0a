package dlist

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestAutoCircleSegments_EvenAndClamped(t *testing.T) {
	radii := []float32{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 500, 1000, 5000, 100000}
	for _, r := range radii {
		n := autoCircleSegments(r, DefaultTessellationTolerance)
		if n%2 != 0 {
			t.Errorf("radius %g: segment count %d is odd", r, n)
		}
		if n < MinCircleSegments || n > MaxCircleSegments {
			t.Errorf("radius %g: segment count %d outside [%d, %d]",
				r, n, MinCircleSegments, MaxCircleSegments)
		}
	}
}

// The sagitta of each chord must stay within the tolerance whenever
// the count is not pinned at the clamp limits.
func TestAutoCircleSegments_MeetsTolerance(t *testing.T) {
	const tol = DefaultTessellationTolerance
	for r := float32(1); r < 2000; r *= 1.37 {
		n := autoCircleSegments(r, tol)
		if n == MaxCircleSegments {
			continue
		}
		sagitta := r * (1 - math32.Cos(math32.Pi/float32(n)))
		if sagitta > tol+1e-4 {
			t.Errorf("radius %g: %d segments give deviation %g > %g", r, n, sagitta, tol)
		}
	}
}

// The automatic count must be minimal: two fewer segments (staying
// even) would violate the tolerance.
func TestAutoCircleSegments_Minimal(t *testing.T) {
	const tol = DefaultTessellationTolerance
	for r := float32(10); r < 2000; r *= 1.61 {
		n := autoCircleSegments(r, tol)
		if n == MinCircleSegments || n == MaxCircleSegments {
			continue
		}
		smaller := float32(n - 2)
		sagitta := r * (1 - math32.Cos(math32.Pi/smaller))
		if sagitta <= tol {
			t.Errorf("radius %g: %d segments not minimal, %d would satisfy tolerance", r, n, n-2)
		}
	}
}

func TestArcFastTable(t *testing.T) {
	if arcFastVtx[0] != Pt(1, 0) {
		t.Errorf("sample 0 = %v, want (1,0)", arcFastVtx[0])
	}
	for i, p := range arcFastVtx {
		if l := p.Length(); math32.Abs(l-1) > 1e-5 {
			t.Errorf("sample %d has length %g, want 1", i, l)
		}
	}
	// Quarter turn lands on (0,1): screen-space clockwise winding.
	q := arcFastVtx[arcFastTableSize/4]
	if math32.Abs(q.X) > 1e-5 || math32.Abs(q.Y-1) > 1e-5 {
		t.Errorf("quarter-turn sample = %v, want (0,1)", q)
	}
}

// At the cutoff radius the table's fixed step exactly meets the
// tolerance; above it the per-vertex trigonometric path must take
// over.
func TestArcFastRadiusCutoff(t *testing.T) {
	const tol = DefaultTessellationTolerance
	cutoff := arcFastRadiusCutoff(tol)
	if cutoff <= 0 {
		t.Fatalf("cutoff = %g, want > 0", cutoff)
	}

	sagitta := cutoff * (1 - math32.Cos(math32.Pi/arcFastTableSize))
	if math32.Abs(sagitta-tol) > 1e-4 {
		t.Errorf("sagitta at cutoff = %g, want %g", sagitta, tol)
	}

	over := (cutoff + 1) * (1 - math32.Cos(math32.Pi/arcFastTableSize))
	if over <= tol {
		t.Errorf("sagitta just above cutoff = %g, should exceed %g", over, tol)
	}
}
