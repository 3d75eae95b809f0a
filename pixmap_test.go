package dlist

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImage_TranslucentPremultiplied(t *testing.T) {
	// The same translucent color through the straight-alpha fast path
	// and the premultiplied generic path must decode identically.
	want := RGBA8(255, 0, 0, 128)

	nrgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128})

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Set(0, 0, color.NRGBA{R: 255, A: 128}) // stored premultiplied

	if got := FromImage(nrgba).GetPixel(0, 0); got != want {
		t.Errorf("NRGBA path = %08x, want %08x", uint32(got), uint32(want))
	}
	if got := FromImage(rgba).GetPixel(0, 0); got != want {
		t.Errorf("RGBA path = %08x, want %08x", uint32(got), uint32(want))
	}
}

func TestFromImage_FastPathMatchesGeneric(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 10, B: 20, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 200, B: 0, A: 128})
	src.SetNRGBA(0, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 0})
	src.SetNRGBA(1, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 200})

	fast := FromImage(src)
	// A sub-image keeps the parent's stride, forcing the generic path.
	slow := FromImage(src.SubImage(src.Rect))

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			f, s := fast.GetPixel(x, y), slow.GetPixel(x, y)
			fa, sa := f.A(), s.A()
			if fa != sa {
				t.Errorf("(%d,%d) alpha: fast %d, generic %d", x, y, fa, sa)
			}
			// RGB of fully transparent pixels is not preserved by the
			// premultiplied round trip; compare the rest exactly.
			if fa != 0 && f != s {
				t.Errorf("(%d,%d): fast %08x, generic %08x", x, y, uint32(f), uint32(s))
			}
		}
	}
}

func TestPixmap_SetGetRoundTrip(t *testing.T) {
	pm := NewPixmap(4, 4)
	c := RGBA8(12, 34, 56, 78)
	pm.SetPixel(2, 1, c)
	if got := pm.GetPixel(2, 1); got != c {
		t.Errorf("GetPixel = %08x, want %08x", uint32(got), uint32(c))
	}
	if got := pm.GetPixel(-1, 0); got != TransparentBlack {
		t.Errorf("out-of-bounds read = %08x, want transparent black", uint32(got))
	}
	pm.SetPixel(99, 99, c) // ignored
}
