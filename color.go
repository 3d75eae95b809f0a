package dlist

import "image/color"

// Color is a packed 32-bit RGBA color, one byte per channel with red
// in the least significant byte. This is the format vertices carry:
// it packs to 4 bytes in vertex buffers and compares cheaply.
type Color uint32

// Channel shift amounts within the packed value.
const (
	colorShiftR = 0
	colorShiftG = 8
	colorShiftB = 16
	colorShiftA = 24
)

// RGBA8 creates a color from 8-bit channel values.
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(r)<<colorShiftR |
		uint32(g)<<colorShiftG |
		uint32(b)<<colorShiftB |
		uint32(a)<<colorShiftA)
}

// RGB creates an opaque color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 255)
}

// FromColor converts a standard color.Color to a packed Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	// color.Color returns alpha-premultiplied 16-bit channels.
	if a == 0 {
		return 0
	}
	if a != 0xffff {
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	return RGBA8(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)) //nolint:gosec // channels masked to 8 bits
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA",
// with an optional leading '#'. Invalid input yields opaque black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3: // RGB
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return RGB(0, 0, 0)
	}

	return RGBA8(uint8(r), uint8(g), uint8(b), uint8(a)) //nolint:gosec // parseHex output bounded
}

// parseHex is a helper for hex parsing.
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> colorShiftR) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> colorShiftG) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c >> colorShiftB) }

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> colorShiftA) }

// IsTransparent reports whether the color has zero alpha.
// Drawing with a fully transparent color is a no-op.
func (c Color) IsTransparent() bool { return c.A() == 0 }

// WithAlpha returns the color with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return (c &^ (0xff << colorShiftA)) | Color(uint32(a)<<colorShiftA)
}

// Transparent returns the color with alpha forced to zero, keeping the
// RGB channels. Anti-aliased tessellation uses this for feather-edge
// vertices so the interpolated fringe fades to the stroke color.
func (c Color) Transparent() Color { return c.WithAlpha(0) }

// Float4 returns the color as non-premultiplied float32 channels in
// [0, 1], in RGBA order.
func (c Color) Float4() [4]float32 {
	const inv = 1.0 / 255.0
	return [4]float32{
		float32(c.R()) * inv,
		float32(c.G()) * inv,
		float32(c.B()) * inv,
		float32(c.A()) * inv,
	}
}

// Premultiplied returns the color as alpha-premultiplied float32
// channels in [0, 1], the format GPU blend states expect.
func (c Color) Premultiplied() [4]float32 {
	f := c.Float4()
	return [4]float32{f[0] * f[3], f[1] * f[3], f[2] * f[3], f[3]}
}

// NRGBA converts the packed color to image/color form.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// Common colors.
const (
	Black            Color = 0xff000000
	White            Color = 0xffffffff
	Red              Color = 0xff0000ff
	Green            Color = 0xff00ff00
	Blue             Color = 0xffff0000
	Yellow           Color = 0xff00ffff
	Cyan             Color = 0xffffff00
	Magenta          Color = 0xffff00ff
	TransparentBlack Color = 0x00000000
)
