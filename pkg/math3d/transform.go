package math3d

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the transform builders.
var (
	ErrZeroLength        = errors.New("math3d: zero-length vector")
	ErrDegenerateBasis   = errors.New("math3d: degenerate camera basis")
	ErrInvalidProjection = errors.New("math3d: invalid projection parameters")
	ErrInvalidViewport   = errors.New("math3d: invalid viewport")
)

// CameraMatrix builds the view matrix for a camera at eye looking at at.
//
// The basis is forward = normalize(at - eye), right = normalize(up × forward),
// and a corrected up = forward × right. The translation row stores
// -dot(axis, eye) for each axis so that eye maps to the origin.
//
// at must differ from eye and up must not be parallel to the view direction;
// both cases return ErrDegenerateBasis.
func CameraMatrix(eye, at, up Vec3) (Mat4, error) {
	forward, err := at.Sub(eye).NormalizeChecked()
	if err != nil {
		return Identity(), fmt.Errorf("camera forward (eye %v, at %v): %w", eye, at, ErrDegenerateBasis)
	}
	right, err := Cross(up, forward).NormalizeChecked()
	if err != nil {
		return Identity(), fmt.Errorf("camera right (up %v, forward %v): %w", up, forward, ErrDegenerateBasis)
	}
	trueUp := Cross(forward, right)

	return Mat4{
		right.X, trueUp.X, forward.X, 0,
		right.Y, trueUp.Y, forward.Y, 0,
		right.Z, trueUp.Z, forward.Z, 0,
		-Dot(right, eye), -Dot(trueUp, eye), -Dot(forward, eye), 1,
	}, nil
}

// PerspectiveMatrix builds a left-handed perspective projection.
// fovYDegrees is the vertical field of view, aspect is width/height.
// Camera-space z=near maps to NDC z=0 and z=far to 1; the outgoing W is the
// camera-space z, so the perspective divide scales X and Y by 1/z.
func PerspectiveMatrix(fovYDegrees, aspect, near, far float64) (Mat4, error) {
	switch {
	case !(fovYDegrees > 0 && fovYDegrees < 180):
		return Identity(), fmt.Errorf("fov %v outside (0, 180): %w", fovYDegrees, ErrInvalidProjection)
	case !(aspect > 0) || math.IsInf(aspect, 0):
		return Identity(), fmt.Errorf("aspect %v: %w", aspect, ErrInvalidProjection)
	case !(near > 0):
		return Identity(), fmt.Errorf("near %v must be positive: %w", near, ErrInvalidProjection)
	case !(far > near) || math.IsInf(far, 0):
		return Identity(), fmt.Errorf("far %v must exceed near %v: %w", far, near, ErrInvalidProjection)
	}

	tanHalfFov := math.Tan(fovYDegrees * math.Pi / 180 / 2)
	sx := 1 / (tanHalfFov * aspect)
	sy := 1 / tanHalfFov
	q := far / (far - near)

	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, q, 1,
		0, 0, -near * q, 0,
	}, nil
}

// ViewportMatrix maps NDC [-1,1]×[-1,1]×[0,1] onto the pixel rectangle
// [x, x+width]×[y, y+height] with depth in [minDepth, maxDepth].
// Y is flipped: NDC +1 lands on row y, NDC -1 on row y+height.
func ViewportMatrix(x, y, width, height, minDepth, maxDepth float64) (Mat4, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Identity(), fmt.Errorf("viewport %vx%v: %w", width, height, ErrInvalidViewport)
	}
	halfW := width / 2
	halfH := height / 2

	return Mat4{
		halfW, 0, 0, 0,
		0, -halfH, 0, 0,
		0, 0, maxDepth - minDepth, 0,
		x + halfW, y + halfH, minDepth, 1,
	}, nil
}
