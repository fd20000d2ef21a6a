package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// DrawFlatTriangle fills a triangle with a single color using scanlines.
//
// Vertices are sorted by y. A triangle with a horizontal edge is filled
// directly as flat-top or flat-bottom; any other triangle is split at the
// middle vertex's y into a flat-bottom half and a flat-top half.
// Rows and columns cover pixel centers under the ceil(v - 0.5) convention,
// so triangles sharing an edge neither overlap nor leave a seam.
//
// Zero-area and non-finite triangles draw nothing. No depth test is done.
func (fb *Framebuffer) DrawFlatTriangle(v0, v1, v2 math3d.Vec2, c Color) {
	area := edge(v0, v1, v2.X, v2.Y)
	if area == 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return
	}

	if v1.Y < v0.Y {
		v0, v1 = v1, v0
	}
	if v2.Y < v1.Y {
		v1, v2 = v2, v1
	}
	if v1.Y < v0.Y {
		v0, v1 = v1, v0
	}

	switch {
	case v0.Y == v1.Y:
		if v1.X < v0.X {
			v0, v1 = v1, v0
		}
		fb.fillFlatTop(v0, v1, v2, c)
	case v1.Y == v2.Y:
		if v2.X < v1.X {
			v1, v2 = v2, v1
		}
		fb.fillFlatBottom(v0, v1, v2, c)
	default:
		// Split the long edge v0-v2 at v1's height
		alpha := (v1.Y - v0.Y) / (v2.Y - v0.Y)
		vi := v0.Add(v2.Sub(v0).Scale(alpha))

		if v1.X < vi.X {
			// Major edge on the right
			fb.fillFlatBottom(v0, v1, vi, c)
			fb.fillFlatTop(v1, vi, v2, c)
		} else {
			fb.fillFlatBottom(v0, vi, v1, c)
			fb.fillFlatTop(vi, v1, v2, c)
		}
	}
}

// fillFlatTop fills a triangle whose top edge v0-v1 is horizontal, with v0
// on the left and v2 below.
func (fb *Framebuffer) fillFlatTop(v0, v1, v2 math3d.Vec2, c Color) {
	m0 := (v2.X - v0.X) / (v2.Y - v0.Y)
	m1 := (v2.X - v1.X) / (v2.Y - v1.Y)
	fb.fillSpans(v0.Y, v2.Y, func(py float64) (float64, float64) {
		return m0*(py-v0.Y) + v0.X, m1*(py-v1.Y) + v1.X
	}, c)
}

// fillFlatBottom fills a triangle whose bottom edge v1-v2 is horizontal,
// with v1 on the left and v0 above.
func (fb *Framebuffer) fillFlatBottom(v0, v1, v2 math3d.Vec2, c Color) {
	m0 := (v1.X - v0.X) / (v1.Y - v0.Y)
	m1 := (v2.X - v0.X) / (v2.Y - v0.Y)
	fb.fillSpans(v0.Y, v2.Y, func(py float64) (float64, float64) {
		return m0*(py-v0.Y) + v0.X, m1*(py-v0.Y) + v0.X
	}, c)
}

// fillSpans walks rows from ceil(top-0.5) up to but excluding
// ceil(bottom-0.5); bounds returns the left and right edge x at a row's
// pixel center.
func (fb *Framebuffer) fillSpans(top, bottom float64, bounds func(py float64) (float64, float64), c Color) {
	yStart, yEnd := pixelSpan(top, bottom, fb.Height)
	for y := yStart; y < yEnd; y++ {
		px0, px1 := bounds(float64(y) + 0.5)
		xStart, xEnd := pixelSpan(px0, px1, fb.Width)
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for x := xStart; x < xEnd; x++ {
			row[x] = c
		}
	}
}

// pixelSpan converts a continuous range to the half-open pixel range
// [ceil(lo-0.5), ceil(hi-0.5)) clamped to [0, limit].
func pixelSpan(lo, hi float64, limit int) (int, int) {
	start := math.Ceil(lo - 0.5)
	end := math.Ceil(hi - 0.5)
	if !(start > 0) {
		start = 0
	}
	if !(end < float64(limit)) {
		end = float64(limit)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || end <= start {
		return 0, 0
	}
	return int(start), int(end)
}
