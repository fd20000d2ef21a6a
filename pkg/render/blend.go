package render

import (
	"fmt"
	"math"
)

// RGBAf is a color with channels normalized to [0, 1].
type RGBAf struct {
	R, G, B, A float64
}

// ToFloat normalizes each channel to [0, 1].
func (c Color) ToFloat() RGBAf {
	return RGBAf{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
		A: float64(c.A()) / 255,
	}
}

// Color packs the float color, clamping each channel to [0, 1].
func (f RGBAf) Color() Color {
	return RGBA(toByte(f.R), toByte(f.G), toByte(f.B), toByte(f.A))
}

func toByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	return uint8(math.Round(math.Min(1, v) * 255))
}

// BlendMode selects how a source color combines with the destination.
type BlendMode int

const (
	// BlendAlpha is standard source-over with straight alpha.
	BlendAlpha BlendMode = iota
	// BlendPremultiplied expects source channels already scaled by alpha.
	BlendPremultiplied
	// BlendAdditive adds the alpha-weighted source to the destination.
	BlendAdditive
	// BlendMultiply darkens the destination by the source.
	BlendMultiply
)

func (m BlendMode) String() string {
	switch m {
	case BlendAlpha:
		return "alpha"
	case BlendPremultiplied:
		return "premultiplied"
	case BlendAdditive:
		return "additive"
	case BlendMultiply:
		return "multiply"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
}

// Apply blends src over dst.
func (m BlendMode) Apply(src, dst Color) Color {
	s, d := src.ToFloat(), dst.ToFloat()
	var out RGBAf

	switch m {
	case BlendPremultiplied:
		inv := 1 - s.A
		out = RGBAf{
			R: s.R + d.R*inv,
			G: s.G + d.G*inv,
			B: s.B + d.B*inv,
			A: s.A + d.A*inv,
		}
	case BlendAdditive:
		out = RGBAf{
			R: s.R*s.A + d.R,
			G: s.G*s.A + d.G,
			B: s.B*s.A + d.B,
			A: d.A,
		}
	case BlendMultiply:
		inv := 1 - s.A
		out = RGBAf{
			R: s.R*d.R + d.R*inv,
			G: s.G*d.G + d.G*inv,
			B: s.B*d.B + d.B*inv,
			A: d.A,
		}
	default:
		inv := 1 - s.A
		out = RGBAf{
			R: s.R*s.A + d.R*inv,
			G: s.G*s.A + d.G*inv,
			B: s.B*s.A + d.B*inv,
			A: s.A + d.A*inv,
		}
	}

	return out.Color()
}
