package frame

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

const (
	markerRadius   = 8
	markerSegments = 24
)

// Orbit marker colors: the compass ring and the dot at the camera heading.
var (
	MarkerRing = render.RGB(90, 90, 120)
	MarkerDot  = render.ColorYellow
)

// DrawOrbitMarker draws a compass ring in the bottom-right corner of fb with
// a dot at the camera's heading around its target.
func DrawOrbitMarker(fb *render.Framebuffer, cam *render.Camera) {
	center := math3d.V2(
		float64(fb.Width-markerRadius-3),
		float64(fb.Height-markerRadius-3),
	)
	ring := math3d.CirclePoints(center, markerRadius, markerSegments)
	for i, p := range ring {
		fb.DrawLine(p, ring[(i+1)%len(ring)], MarkerRing)
	}

	offset := cam.Eye.Sub(cam.At)
	heading := math.Atan2(offset.X, offset.Z)
	// Screen Y grows downward: a camera on -Z puts the dot at the bottom
	dot := center.Add(math3d.V2(math.Sin(heading), -math.Cos(heading)).Scale(markerRadius))
	fb.DrawRect(int(dot.X)-1, int(dot.Y)-1, 3, 3, MarkerDot)
}
