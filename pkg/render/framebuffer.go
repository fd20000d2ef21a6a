// Package render implements the software vertex pipeline and rasterizer:
// pixel and depth targets, points, Bresenham lines, scanline and
// edge-function triangle fills, texture sampling and mesh renderers.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/taigrr/scanline/pkg/math3d"
)

// maxLineCoord bounds line endpoints; anything farther out is skipped.
const maxLineCoord = 1 << 24

// Framebuffer is a row-major grid of packed colors.
// It implements draw.Image so it can be the target of image/draw and
// x/image/font operations.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer creates a framebuffer. Negative sizes are treated as zero.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// DrawPoint writes c at (x, y). Writes outside the buffer are discarded.
func (fb *Framebuffer) DrawPoint(x, y int, c Color) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.InBounds(x, y) {
		return ColorTransparent
	}
	return fb.Pixels[y*fb.Width+x]
}

// BlendPoint combines c with the pixel at (x, y) using mode.
func (fb *Framebuffer) BlendPoint(x, y int, c Color, mode BlendMode) {
	if !fb.InBounds(x, y) {
		return
	}
	i := y*fb.Width + x
	fb.Pixels[i] = mode.Apply(c, fb.Pixels[i])
}

// DrawRect fills a w×h rectangle with its top-left corner at (x, y).
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, fb.Width), min(y+h, fb.Height)
	for py := y0; py < y1; py++ {
		row := fb.Pixels[py*fb.Width : (py+1)*fb.Width]
		for px := x0; px < x1; px++ {
			row[px] = c
		}
	}
}

// DrawLine draws a one-pixel line between two screen positions with
// Bresenham's algorithm. The segment is first clipped to the framebuffer,
// then coordinates are floored to the pixel grid. Lines with non-finite or
// absurdly distant endpoints are skipped.
func (fb *Framebuffer) DrawLine(p0, p1 math3d.Vec2, c Color) {
	if !lineCoordOK(p0) || !lineCoordOK(p1) {
		return
	}
	if p1.X < p0.X || (p1.X == p0.X && p1.Y < p0.Y) {
		p0, p1 = p1, p0
	}
	p0, p1, ok := fb.clipLine(p0, p1)
	if !ok {
		return
	}
	x0, y0 := int(math.Floor(p0.X)), int(math.Floor(p0.Y))
	x1, y1 := int(math.Floor(p1.X)), int(math.Floor(p1.Y))

	if abs(y1-y0) < abs(x1-x0) {
		if x0 > x1 {
			fb.lineLow(x1, y1, x0, y0, c)
		} else {
			fb.lineLow(x0, y0, x1, y1, c)
		}
		return
	}
	if y0 > y1 {
		fb.lineHigh(x1, y1, x0, y0, c)
	} else {
		fb.lineHigh(x0, y0, x1, y1, c)
	}
}

// clipLine trims the segment to the framebuffer rectangle (Liang-Barsky)
// so the stepping loops never walk off-screen spans. Endpoints already
// inside are returned unchanged.
func (fb *Framebuffer) clipLine(p0, p1 math3d.Vec2) (math3d.Vec2, math3d.Vec2, bool) {
	d := p1.Sub(p0)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, p0.X},
		{d.X, float64(fb.Width) - p0.X},
		{-d.Y, p0.Y},
		{d.Y, float64(fb.Height) - p0.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return p0, p1, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return p0, p1, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return p0, p1, false
			}
			t1 = math.Min(t1, r)
		}
	}

	start, end := p0, p1
	if t0 > 0 {
		start = p0.Lerp(p1, t0)
	}
	if t1 < 1 {
		end = p0.Lerp(p1, t1)
	}
	return start, end, true
}

// lineLow steps x for slopes in [-1, 1]. Requires x0 <= x1.
func (fb *Framebuffer) lineLow(x0, y0, x1, y1 int, c Color) {
	dx := x1 - x0
	dy := y1 - y0
	yi := 1
	if dy < 0 {
		yi = -1
		dy = -dy
	}
	d := 2*dy - dx
	y := y0

	for x := x0; x <= x1; x++ {
		if x >= fb.Width || (yi > 0 && y >= fb.Height) || (yi < 0 && y < 0) {
			return
		}
		fb.DrawPoint(x, y, c)
		if d > 0 {
			y += yi
			d += 2 * (dy - dx)
		} else {
			d += 2 * dy
		}
	}
}

// lineHigh steps y for steep slopes. Requires y0 <= y1.
func (fb *Framebuffer) lineHigh(x0, y0, x1, y1 int, c Color) {
	dx := x1 - x0
	dy := y1 - y0
	xi := 1
	if dx < 0 {
		xi = -1
		dx = -dx
	}
	d := 2*dx - dy
	x := x0

	for y := y0; y <= y1; y++ {
		if y >= fb.Height || (xi > 0 && x >= fb.Width) || (xi < 0 && x < 0) {
			return
		}
		fb.DrawPoint(x, y, c)
		if d > 0 {
			x += xi
			d += 2 * (dx - dy)
		} else {
			d += 2 * dx
		}
	}
}

func lineCoordOK(p math3d.Vec2) bool {
	return math.Abs(p.X) <= maxLineCoord && math.Abs(p.Y) <= maxLineCoord
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return ColorModel }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color { return fb.GetPixel(x, y) }

// Set implements draw.Image. The color replaces the pixel without blending.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.DrawPoint(x, y, FromColor(c))
}

// ToImage converts the framebuffer to a standard Go image.NRGBA.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(fb.Bounds())
	for y := range fb.Height {
		for x := range fb.Width {
			img.SetNRGBA(x, y, fb.Pixels[y*fb.Width+x].NRGBA())
		}
	}
	return img
}

// CopyPremultiplied writes the pixels into dst as premultiplied RGBA bytes,
// four per pixel, which is what GPU-backed images upload. dst must be at
// least 4*Width*Height long.
func (fb *Framebuffer) CopyPremultiplied(dst []byte) {
	for i, c := range fb.Pixels {
		a := uint32(c.A())
		o := i * 4
		dst[o+0] = uint8(uint32(c.R()) * a / 255)
		dst[o+1] = uint8(uint32(c.G()) * a / 255)
		dst[o+2] = uint8(uint32(c.B()) * a / 255)
		dst[o+3] = uint8(a)
	}
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return WritePNG(path, fb.ToImage())
}

// WritePNG encodes img to a new PNG file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
