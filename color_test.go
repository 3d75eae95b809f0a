package dlist

import (
	"image/color"
	"testing"
)

func TestColor_Channels(t *testing.T) {
	c := RGBA8(0x11, 0x22, 0x33, 0x44)
	if c.R() != 0x11 || c.G() != 0x22 || c.B() != 0x33 || c.A() != 0x44 {
		t.Errorf("channels = %02x %02x %02x %02x", c.R(), c.G(), c.B(), c.A())
	}
	if RGB(1, 2, 3).A() != 255 {
		t.Error("RGB should be opaque")
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Red},
		{"ff0000", Red},
		{"#f00", Red},
		{"#00ff00", Green},
		{"#0000ff", Blue},
		{"#ffffff", White},
		{"#fff", White},
		{"#00000000", TransparentBlack},
		{"#ff000080", RGBA8(255, 0, 0, 128)},
		{"#f008", RGBA8(255, 0, 0, 136)},
		{"garbage", Black},
		{"", Black},
	}
	for _, tt := range tests {
		if got := Hex(tt.in); got != tt.want {
			t.Errorf("Hex(%q) = %08x, want %08x", tt.in, uint32(got), uint32(tt.want))
		}
	}
}

func TestColor_Transparency(t *testing.T) {
	if !TransparentBlack.IsTransparent() {
		t.Error("transparent black should report transparent")
	}
	if White.IsTransparent() {
		t.Error("white should not report transparent")
	}
	c := Red.Transparent()
	if c.A() != 0 || c.R() != 255 {
		t.Errorf("Transparent() = %08x, want RGB kept with alpha 0", uint32(c))
	}
	if got := Red.WithAlpha(128).A(); got != 128 {
		t.Errorf("WithAlpha alpha = %d, want 128", got)
	}
}

func TestColor_FromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if got != RGBA8(10, 20, 30, 255) {
		t.Errorf("FromColor = %08x", uint32(got))
	}
	if FromColor(color.NRGBA{}) != 0 {
		t.Error("fully transparent input should map to zero")
	}
}

func TestColor_Premultiplied(t *testing.T) {
	f := RGBA8(255, 0, 0, 128).Premultiplied()
	if f[3] < 0.49 || f[3] > 0.52 {
		t.Errorf("alpha = %g, want ~0.5", f[3])
	}
	if f[0] < 0.49 || f[0] > 0.52 {
		t.Errorf("premultiplied red = %g, want ~0.5", f[0])
	}
	if f[1] != 0 || f[2] != 0 {
		t.Errorf("green/blue = %g, %g, want 0", f[1], f[2])
	}
}
