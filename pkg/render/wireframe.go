package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// DrawLine3D projects a world-space segment and draws it. The segment is
// dropped only when both endpoints are behind the eye.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, color Color) {
	r.pipeline.SetModel(math3d.Identity())
	pa, wa := r.pipeline.Project(a)
	pb, wb := r.pipeline.Project(b)
	if wa <= 0 && wb <= 0 {
		return
	}
	r.targets.Color.DrawLine(pa.XY(), pb.XY(), color)
}

// DrawAxes draws the coordinate axes at the origin.
func (r *Rasterizer) DrawAxes(length float64) {
	origin := math3d.Zero3()
	r.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	r.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	r.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawGrid draws a grid on the XZ plane at height y.
func (r *Rasterizer) DrawGrid(size, step, y float64, color Color) {
	if step <= 0 || size <= 0 {
		return
	}
	half := size / 2
	lines := int(size/step) + 1
	for i := range lines {
		off := -half + float64(i)*step
		r.DrawLine3D(math3d.V3(off, y, -half), math3d.V3(off, y, half), color)
		r.DrawLine3D(math3d.V3(-half, y, off), math3d.V3(half, y, off), color)
	}
}
