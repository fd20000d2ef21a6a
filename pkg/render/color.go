package render

import "image/color"

// Color is a packed 32-bit color laid out as 0xAARRGGBB.
// Channels are straight (not premultiplied) alpha.
type Color uint32

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// RGBA creates a color from its four channels.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&0x00FFFFFF | Color(a)<<24
}

// NRGBA converts to the standard library's non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// ColorModel converts arbitrary colors to packed Colors.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})

// FromColor packs any color.Color.
func FromColor(c color.Color) Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// Named colors.
var (
	ColorTransparent = RGBA(0, 0, 0, 0)
	ColorBlack       = RGB(0, 0, 0)
	ColorWhite       = RGB(255, 255, 255)
	ColorRed         = RGB(255, 0, 0)
	ColorGreen       = RGB(0, 255, 0)
	ColorBlue        = RGB(0, 0, 255)
	ColorYellow      = RGB(255, 255, 0)
	ColorCyan        = RGB(0, 255, 255)
	ColorMagenta     = RGB(255, 0, 255)
	ColorGray        = RGB(128, 128, 128)
	ColorOrange      = RGB(255, 140, 0)
)

// DefaultPalette cycles per face in flat-shaded mode.
var DefaultPalette = []Color{
	RGB(231, 76, 60),
	RGB(46, 204, 113),
	RGB(52, 152, 219),
	RGB(241, 196, 15),
	RGB(155, 89, 182),
	RGB(26, 188, 156),
}

// ModulateColor multiplies two colors channel by channel (texel * tint).
func ModulateColor(a, b Color) Color {
	return RGBA(
		uint8(int(a.R())*int(b.R())/255),
		uint8(int(a.G())*int(b.G())/255),
		uint8(int(a.B())*int(b.B())/255),
		uint8(int(a.A())*int(b.A())/255),
	)
}
