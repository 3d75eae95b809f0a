package dlist

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestPoint_Arithmetic(t *testing.T) {
	a, b := Pt(3, 4), Pt(1, 2)
	if got := a.Add(b); got != Pt(4, 6) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != Pt(2, 2) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(2); got != Pt(6, 8) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot = %g", got)
	}
	if got := a.Cross(b); got != 2 {
		t.Errorf("Cross = %g", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length = %g", got)
	}
}

func TestPoint_Normalize(t *testing.T) {
	n := Pt(3, 4).Normalize()
	if math32.Abs(n.Length()-1) > 1e-6 {
		t.Errorf("normalized length = %g", n.Length())
	}
	if got := (Point{}).Normalize(); got != (Point{}) {
		t.Errorf("zero vector normalized to %v", got)
	}
}

func TestPoint_Lerp(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 20)
	if got := a.Lerp(b, 0.5); got != Pt(5, 10) {
		t.Errorf("Lerp = %v", got)
	}
}

func TestRect_Basics(t *testing.T) {
	r := R(10, 20, 30, 60)
	if r.W() != 20 || r.H() != 40 {
		t.Errorf("size = %g x %g", r.W(), r.H())
	}
	if r.Empty() {
		t.Error("non-degenerate rect reported empty")
	}
	if !r.Contains(Pt(10, 20)) || r.Contains(Pt(30, 60)) {
		t.Error("Contains: min inclusive, max exclusive")
	}
	if got := r.Intersect(R(20, 0, 50, 40)); got != R(20, 20, 30, 40) {
		t.Errorf("Intersect = %v", got)
	}
	if got := r.Union(R(0, 0, 5, 5)); got != R(0, 0, 30, 60) {
		t.Errorf("Union = %v", got)
	}
	if !R(0, 0, 10, 10).Intersect(R(20, 20, 30, 30)).Empty() {
		t.Error("disjoint intersection should be empty")
	}
}
