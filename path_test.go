package dlist

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestPathArcToFast_Winding(t *testing.T) {
	c := Pt(100, 100)

	up := New()
	up.PathArcToFast(c, 10, 0, 12)
	down := New()
	down.PathArcToFast(c, 10, 12, 0)

	if len(up.path) != 13 || len(down.path) != 13 {
		t.Fatalf("sample counts = %d and %d, want 13 each", len(up.path), len(down.path))
	}
	// Reversing the arguments must reverse the samples, not reorder
	// them: the winding belongs to the caller.
	for i := range up.path {
		if got, want := down.path[i], up.path[len(up.path)-1-i]; got != want {
			t.Errorf("sample %d = %v, want %v", i, got, want)
		}
	}
	want := Pt(c.X+arcFastVtx[12].X*10, c.Y+arcFastVtx[12].Y*10)
	if down.path[0] != want {
		t.Errorf("decreasing arc starts at %v, want %v", down.path[0], want)
	}
}

func TestPathArcToFast_WrapsNegative(t *testing.T) {
	dl := New()
	dl.PathArcToFast(Pt(0, 0), 1, -12, 0)
	if len(dl.path) != 13 {
		t.Fatalf("%d samples, want 13", len(dl.path))
	}
	if dl.path[0] != arcFastVtx[36] {
		t.Errorf("sample -12 = %v, want table entry 36 %v", dl.path[0], arcFastVtx[36])
	}
	if dl.path[12] != arcFastVtx[0] {
		t.Errorf("sample 0 = %v, want table entry 0 %v", dl.path[12], arcFastVtx[0])
	}
}

func TestPathArcTo_ReversedRange(t *testing.T) {
	// A small radius takes the fast-table path; the reversed radian
	// range must still run from a0 to a1.
	dl := New()
	dl.PathArcTo(Pt(0, 0), 2, math32.Pi/2, 0, 0)
	if n := len(dl.path); n < 2 {
		t.Fatalf("%d samples, want at least 2", n)
	}
	first, last := dl.path[0], dl.path[len(dl.path)-1]
	if !(first.Y > last.Y) {
		t.Errorf("arc runs %v -> %v, want it to start at the bottom sample", first, last)
	}
	if last != Pt(2, 0) {
		t.Errorf("arc ends at %v, want (2,0)", last)
	}
}
