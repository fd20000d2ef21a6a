package math3d

import "math"

// Vec2 represents a 2D vector (screen position or texture coordinate).
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Magnitude returns the length of the vector.
func (a Vec2) Magnitude() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y)
}

// Normalized returns the unit vector in the same direction.
// The zero vector is returned unchanged.
func (a Vec2) Normalized() Vec2 {
	l := a.Magnitude()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Distance returns the distance between two points.
func (a Vec2) Distance(b Vec2) float64 {
	return a.Sub(b).Magnitude()
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
	}
}

// Equal reports whether both components match exactly.
func (a Vec2) Equal(b Vec2) bool {
	return a.X == b.X && a.Y == b.Y
}

// CirclePoints returns n points evenly spaced on a circle around center.
func CirclePoints(center Vec2, radius float64, n int) []Vec2 {
	if n <= 0 {
		return nil
	}
	points := make([]Vec2, n)
	step := 2 * math.Pi / float64(n)
	for i := range points {
		angle := float64(i) * step
		points[i] = Vec2{
			center.X + math.Cos(angle)*radius,
			center.Y + math.Sin(angle)*radius,
		}
	}
	return points
}
