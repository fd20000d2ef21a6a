package render

// Texture is a flat array of packed texels with explicit dimensions.
type Texture struct {
	Width  int
	Height int
	Pixels []Color // Row-major texel data
}

// NewTexture creates a transparent texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	width, height = max(width, 0), max(height, 0)
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	checkSize = max(checkSize, 1)
	for y := range tex.Height {
		for x := range tex.Width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// SetPixel sets a texel.
func (t *Texture) SetPixel(x, y int, c Color) {
	if i, ok := t.index(x, y); ok {
		t.Pixels[i] = c
	}
}

// GetPixel returns the texel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) Color {
	if i, ok := t.index(x, y); ok {
		return t.Pixels[i]
	}
	return ColorTransparent
}

// Sample returns the nearest texel for (u, v). Both coordinates are clamped
// to [0, 1] (NaN counts as 0) and mapped to floor(u*(width-1)),
// floor(v*(height-1)). V grows downward like image rows.
// An empty or short texture samples as transparent.
func (t *Texture) Sample(u, v float64) Color {
	if t == nil || t.Width <= 0 || t.Height <= 0 {
		return ColorTransparent
	}
	u, v = clamp01(u), clamp01(v)
	return t.GetPixel(int(u*float64(t.Width-1)), int(v*float64(t.Height-1)))
}

// index maps (x, y) to a slot in Pixels. A Pixels slice shorter than
// Width*Height reports the missing texels as out of range.
func (t *Texture) index(x, y int) (int, bool) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return 0, false
	}
	i := y*t.Width + x
	return i, i < len(t.Pixels)
}

func clamp01(f float64) float64 {
	switch {
	case !(f > 0):
		return 0
	case f > 1:
		return 1
	}
	return f
}
