package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Camera holds the eye/at/up description and projection parameters that
// the pipeline turns into view and projection matrices every frame.
type Camera struct {
	Eye math3d.Vec3 // Position in world space
	At  math3d.Vec3 // Point the camera looks at
	Up  math3d.Vec3 // Reference up vector

	// Projection parameters
	FOV         float64 // Vertical field of view in degrees
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane
}

// NewCamera creates a camera a few units behind the origin looking at it.
func NewCamera() *Camera {
	return &Camera{
		Eye:         math3d.V3(0, 1.5, -4),
		At:          math3d.Zero3(),
		Up:          math3d.Up(),
		FOV:         60,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         100,
	}
}

// SetEye sets the camera position.
func (c *Camera) SetEye(eye math3d.Vec3) {
	c.Eye = eye
}

// LookAt points the camera at a target.
func (c *Camera) LookAt(at math3d.Vec3) {
	c.At = at
}

// SetUp sets the reference up vector.
func (c *Camera) SetUp(up math3d.Vec3) {
	c.Up = up
}

// SetFOV sets the vertical field of view (in degrees).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
}

// Forward returns the unit view direction, or zero when eye equals at.
func (c *Camera) Forward() math3d.Vec3 {
	return c.At.Sub(c.Eye).Normalize()
}

// Distance returns how far the eye is from the target.
func (c *Camera) Distance() float64 {
	return c.Eye.Distance(c.At)
}

// ViewMatrix builds the camera (view) matrix from the current fields. The
// error wraps math3d.ErrDegenerateBasis when eye equals at or up is
// parallel to the view direction.
func (c *Camera) ViewMatrix() (math3d.Mat4, error) {
	return math3d.CameraMatrix(c.Eye, c.At, c.Up)
}

// ProjectionMatrix builds the perspective projection matrix from the
// current fields.
func (c *Camera) ProjectionMatrix() (math3d.Mat4, error) {
	return math3d.PerspectiveMatrix(c.FOV, c.AspectRatio, c.Near, c.Far)
}

// maxPitch keeps orbiting short of the poles where up and forward align.
const maxPitch = math.Pi/2 - 0.01

// Orbit swings the eye around the target by yaw (about world Y) and pitch
// (toward or away from the pole), keeping the distance constant.
func (c *Camera) Orbit(yaw, pitch float64) {
	offset := c.Eye.Sub(c.At)
	r := offset.Len()
	if r == 0 {
		return
	}

	curYaw := math.Atan2(offset.X, offset.Z)
	curPitch := math.Asin(math.Max(-1, math.Min(1, offset.Y/r)))

	newYaw := curYaw + yaw
	newPitch := math.Max(-maxPitch, math.Min(maxPitch, curPitch+pitch))

	cp := math.Cos(newPitch)
	c.Eye = c.At.Add(math3d.V3(
		r*cp*math.Sin(newYaw),
		r*math.Sin(newPitch),
		r*cp*math.Cos(newYaw),
	))
}

// Dolly moves the eye toward the target (positive) or away (negative).
// The eye never passes closer than twice the near plane.
func (c *Camera) Dolly(distance float64) {
	r := c.Distance()
	if r == 0 {
		return
	}
	minDist := 2 * c.Near
	target := math.Max(minDist, r-distance)
	c.Eye = c.At.Lerp(c.Eye, target/r)
}
