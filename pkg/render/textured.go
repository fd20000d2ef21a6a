package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// edge is the signed-area edge function of point (x, y) against the
// directed segment a→b. Its sign tells which side of the line the point is on.
func edge(a, b math3d.Vec2, x, y float64) float64 {
	return (x-a.X)*(b.Y-a.Y) - (y-a.Y)*(b.X-a.X)
}

// DrawTexturedTriangle fills a screen-space triangle with depth testing.
//
// Vertex X and Y are pixel positions and Z is the depth compared against
// the depth buffer. Every pixel center in the triangle's bounding box is
// tested against the three edge functions; it is inside when all three
// share the sign of the total signed area, so either winding fills.
// UV and depth are interpolated affinely in screen space.
//
// A fragment is written only when its depth is strictly less than the
// stored value. The sampled texel is modulated by tint; texels with zero
// alpha are skipped and leave both buffers untouched. A nil texture fills
// with tint. Zero-area triangles are skipped, as are targets whose color
// and depth buffers disagree in size.
func (rt *RenderTargets) DrawTexturedTriangle(v0, v1, v2 math3d.Vec3, uv0, uv1, uv2 math3d.Vec2, tex *Texture, tint Color) {
	p0, p1, p2 := v0.XY(), v1.XY(), v2.XY()
	area := edge(p0, p1, p2.X, p2.Y)
	if area == 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return
	}
	if !rt.Matched() {
		Logger().Debug("skipping triangle on mismatched targets")
		return
	}

	width, height := rt.Width(), rt.Height()
	minX, maxX := boxSpan(min(p0.X, p1.X, p2.X), max(p0.X, p1.X, p2.X), width)
	minY, maxY := boxSpan(min(p0.Y, p1.Y, p2.Y), max(p0.Y, p1.Y, p2.Y), height)
	invArea := 1 / area

	pixels := rt.Color.Pixels
	depth := rt.Depth.Values

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5

			w0 := edge(p1, p2, px, py)
			w1 := edge(p2, p0, px, py)
			w2 := edge(p0, p1, px, py)
			if area > 0 {
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
			} else if w0 > 0 || w1 > 0 || w2 > 0 {
				continue
			}

			w0 *= invArea
			w1 *= invArea
			w2 *= invArea

			idx := y*width + x
			z := w0*v0.Z + w1*v1.Z + w2*v2.Z
			if !(z < depth[idx]) {
				continue
			}

			texel := tint
			if tex != nil {
				u := w0*uv0.X + w1*uv1.X + w2*uv2.X
				v := w0*uv0.Y + w1*uv1.Y + w2*uv2.Y
				texel = tex.Sample(u, v)
				if texel.A() == 0 {
					continue
				}
				texel = ModulateColor(texel, tint)
			}

			depth[idx] = z
			pixels[idx] = texel
		}
	}
}

// boxSpan returns the half-open pixel range [floor(lo), ceil(hi)) clamped
// to [0, limit].
func boxSpan(lo, hi float64, limit int) (int, int) {
	start := math.Floor(lo)
	end := math.Ceil(hi)
	if !(start > 0) {
		start = 0
	}
	if !(end < float64(limit)) {
		end = float64(limit)
	}
	if end <= start {
		return 0, 0
	}
	return int(start), int(end)
}
