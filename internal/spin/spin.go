// Package spin keeps a model's rotation with spring-damped angular velocity.
package spin

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Axis tracks angle and angular velocity for one rotation axis. Velocity is
// per frame and decays toward zero through a critically damped spring.
type Axis struct {
	Angle    float64
	Velocity float64
	spring   harmonica.Spring
	accel    float64 // spring velocity of Velocity itself
}

// NewAxis creates a resting axis stepped at fps.
func NewAxis(fps int) Axis {
	return Axis{
		// frequency 4, damping 1: settles in about a second without overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances the angle and decays the velocity by one frame.
func (a *Axis) Update() {
	a.Angle += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

// State is the pitch, yaw and roll of a spinning model.
type State struct {
	Pitch, Yaw, Roll Axis

	// IdleRate is added to yaw every frame, in radians per second.
	IdleRate float64

	fps int
}

// New creates a state stepped at fps with the given idle yaw rate. A
// non-positive fps is treated as 60.
func New(fps int, idleRate float64) *State {
	if fps <= 0 {
		fps = 60
	}
	s := &State{IdleRate: idleRate, fps: fps}
	s.Reset()
	return s
}

// FPS returns the frame rate the springs are tuned for.
func (s *State) FPS() int { return s.fps }

// Update steps every axis by one frame.
func (s *State) Update() {
	s.Yaw.Angle += s.IdleRate / float64(s.fps)
	s.Pitch.Update()
	s.Yaw.Update()
	s.Roll.Update()
}

// ApplyImpulse adds per-frame angular velocity to each axis.
func (s *State) ApplyImpulse(pitch, yaw, roll float64) {
	s.Pitch.Velocity += pitch
	s.Yaw.Velocity += yaw
	s.Roll.Velocity += roll
}

// Reset zeroes all angles and velocities. The idle rate is kept.
func (s *State) Reset() {
	s.Pitch = NewAxis(s.fps)
	s.Yaw = NewAxis(s.fps)
	s.Roll = NewAxis(s.fps)
}

// Matrix returns the model rotation: pitch first, then yaw, then roll.
func (s *State) Matrix() math3d.Mat4 {
	return math3d.RotateX(s.Pitch.Angle).
		Mul(math3d.RotateY(s.Yaw.Angle)).
		Mul(math3d.RotateZ(s.Roll.Angle))
}
