package font

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/dlist"
)

func TestShelfPacker_Basic(t *testing.T) {
	p := newShelfPacker(64, 64, 1)

	x, y, ok := p.allocate(10, 10)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("first allocation = (%d,%d,%v), want (0,0,true)", x, y, ok)
	}
	x, y, ok = p.allocate(10, 10)
	if !ok || x != 11 || y != 0 {
		t.Fatalf("second allocation = (%d,%d,%v), want (11,0,true)", x, y, ok)
	}

	// Too wide for the remaining shelf space opens a new shelf.
	x, y, ok = p.allocate(50, 8)
	if !ok || x != 0 || y != 11 {
		t.Fatalf("new shelf allocation = (%d,%d,%v), want (0,11,true)", x, y, ok)
	}
}

func TestShelfPacker_LastShelfGrows(t *testing.T) {
	p := newShelfPacker(64, 64, 0)
	if _, _, ok := p.allocate(10, 4); !ok {
		t.Fatal("first allocation failed")
	}
	// Taller than the open shelf, but the shelf can still grow.
	x, y, ok := p.allocate(10, 12)
	if !ok || x != 10 || y != 0 {
		t.Fatalf("growing allocation = (%d,%d,%v), want (10,0,true)", x, y, ok)
	}
}

func TestShelfPacker_Full(t *testing.T) {
	p := newShelfPacker(16, 16, 0)
	if _, _, ok := p.allocate(16, 16); !ok {
		t.Fatal("exact-fit allocation failed")
	}
	if _, _, ok := p.allocate(1, 1); ok {
		t.Error("allocation in a full atlas succeeded")
	}
	if _, _, ok := p.allocate(32, 1); ok {
		t.Error("wider-than-atlas allocation succeeded")
	}

	p.reset()
	if _, _, ok := p.allocate(16, 16); !ok {
		t.Error("allocation after reset failed")
	}
}

func TestShelfPacker_ResetAfterGrow(t *testing.T) {
	// The atlas bake reuses one packer across size doublings: grow the
	// bounds, reset, repack.
	p := newShelfPacker(16, 16, 0)
	if _, _, ok := p.allocate(12, 12); !ok {
		t.Fatal("first allocation failed")
	}
	if _, _, ok := p.allocate(12, 12); ok {
		t.Fatal("two 12x12 fit a 16x16 atlas")
	}

	p.width, p.height = 32, 32
	p.reset()
	for i := 0; i < 2; i++ {
		if _, _, ok := p.allocate(12, 12); !ok {
			t.Fatalf("allocation %d after grow failed", i)
		}
	}
}

func TestShelfPacker_NoOverlap(t *testing.T) {
	p := newShelfPacker(128, 128, 1)
	type rect struct{ x, y, w, h int }
	var placed []rect
	sizes := []rect{{w: 20, h: 10}, {w: 8, h: 14}, {w: 30, h: 9}, {w: 5, h: 5}, {w: 40, h: 12}, {w: 12, h: 12}}
	for _, s := range sizes {
		x, y, ok := p.allocate(s.w, s.h)
		if !ok {
			t.Fatalf("allocation %dx%d failed", s.w, s.h)
		}
		for _, o := range placed {
			if x < o.x+o.w && o.x < x+s.w && y < o.y+o.h && o.y < y+s.h {
				t.Fatalf("%dx%d at (%d,%d) overlaps (%d,%d,%d,%d)", s.w, s.h, x, y, o.x, o.y, o.w, o.h)
			}
		}
		placed = append(placed, rect{x, y, s.w, s.h})
	}
}

func mustAtlas(t *testing.T) *Atlas {
	t.Helper()
	a, err := NewAtlas(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	return a
}

func TestNewAtlas_Metrics(t *testing.T) {
	a := mustAtlas(t)
	if a.Ascent() <= 0 || a.Descent() <= 0 || a.LineHeight() <= 0 {
		t.Errorf("metrics = ascent %g, descent %g, line %g, want all positive",
			a.Ascent(), a.Descent(), a.LineHeight())
	}
	if a.SizePx() != 16 {
		t.Errorf("SizePx = %g, want 16", a.SizePx())
	}
}

func TestNewAtlas_GlyphCoverage(t *testing.T) {
	a := mustAtlas(t)
	for _, r := range "AZaz09 !~éü" {
		g, ok := a.Glyph(r)
		if !ok {
			t.Errorf("glyph %q missing", r)
			continue
		}
		if g.Advance <= 0 {
			t.Errorf("glyph %q advance = %g, want > 0", r, g.Advance)
		}
		if g.U0 < 0 || g.V0 < 0 || g.U1 > 1 || g.V1 > 1 || g.U1 < g.U0 || g.V1 < g.V0 {
			t.Errorf("glyph %q UV rect = (%g,%g)-(%g,%g)", r, g.U0, g.V0, g.U1, g.V1)
		}
	}
	if _, ok := a.Glyph('世'); ok {
		t.Error("unbaked rune reported as present")
	}
}

func TestNewAtlas_ImageHasCoverage(t *testing.T) {
	a := mustAtlas(t)
	img := a.Image()
	if img == nil {
		t.Fatal("nil atlas image")
	}
	opaque := 0
	for _, px := range img.Pix {
		if px != 0 {
			opaque++
		}
	}
	if opaque == 0 {
		t.Error("atlas image is fully transparent")
	}
}

func TestNewAtlas_InvalidInput(t *testing.T) {
	if _, err := NewAtlas([]byte("not a font"), 16); err == nil {
		t.Error("garbage TTF data did not error")
	}
	if _, err := NewAtlas(goregular.TTF, 0); err == nil {
		t.Error("zero pixel size did not error")
	}
	if _, err := NewAtlas(goregular.TTF, 16, WithRunes([]rune{'世'})); err == nil {
		t.Error("fully uncovered rune set did not error")
	}
}

func TestAtlas_Measure(t *testing.T) {
	a := mustAtlas(t)

	if m := a.Measure(""); m != (dlist.Point{}) {
		t.Errorf("Measure(\"\") = %v, want zero", m)
	}

	gA, _ := a.Glyph('A')
	gV, _ := a.Glyph('V')
	want := gA.Advance + a.Kern('A', 'V') + gV.Advance
	if m := a.Measure("AV"); m.X != want {
		t.Errorf("Measure(AV).X = %g, want %g", m.X, want)
	}

	m := a.Measure("a\nlonger line")
	if m.Y != 2*a.LineHeight() {
		t.Errorf("two-line height = %g, want %g", m.Y, 2*a.LineHeight())
	}
	if m.X != a.Measure("longer line").X {
		t.Errorf("width = %g, want widest line %g", m.X, a.Measure("longer line").X)
	}
}

func TestAtlas_DrawEmitsQuads(t *testing.T) {
	a := mustAtlas(t)
	dl := dlist.New()
	dl.SetDisplaySize(200, 100)

	a.Draw(dl, dlist.Pt(10, 10), "Hi", dlist.White)
	st := dl.Stats()
	if st.VertexCount != 8 || st.IndexCount != 12 {
		t.Errorf("two glyphs = %d verts, %d indices, want 8 and 12", st.VertexCount, st.IndexCount)
	}

	// Spaces advance the pen without emitting geometry.
	dl.Reset()
	a.Draw(dl, dlist.Pt(10, 10), " ", dlist.White)
	if st := dl.Stats(); st.VertexCount != 0 {
		t.Errorf("space emitted %d vertices", st.VertexCount)
	}

	// Transparent text and uncovered runes are silent no-ops.
	dl.Reset()
	a.Draw(dl, dlist.Pt(10, 10), "Hi", dlist.White.WithAlpha(0))
	a.Draw(dl, dlist.Pt(10, 10), "世", dlist.White)
	if st := dl.Stats(); st.VertexCount != 0 {
		t.Errorf("degenerate draws emitted %d vertices", st.VertexCount)
	}
}

func TestAtlas_DrawPlacement(t *testing.T) {
	a := mustAtlas(t)
	dl := dlist.New()

	a.Draw(dl, dlist.Pt(0, 0), "A", dlist.Red)
	dd := dl.DrawData()
	if len(dd.Vertices) != 4 {
		t.Fatalf("%d vertices, want 4", len(dd.Vertices))
	}
	g, _ := a.Glyph('A')
	wantX := g.BearingX
	wantY := a.Ascent() - g.BearingY
	v := dd.Vertices[0]
	if v.Pos.X != wantX || v.Pos.Y != wantY {
		t.Errorf("top-left = %v, want (%g,%g)", v.Pos, wantX, wantY)
	}
	if v.UV.X != g.U0 || v.UV.Y != g.V0 {
		t.Errorf("top-left UV = %v, want (%g,%g)", v.UV, g.U0, g.V0)
	}
	if v.Color != dlist.Red {
		t.Errorf("color = %v, want red", v.Color)
	}
}
