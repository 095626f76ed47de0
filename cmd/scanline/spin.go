package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/scanline/pkg/math3d"
)

// spinAxis is the user-applied angular velocity around one axis, in radians
// per frame.
type spinAxis struct {
	velocity float64
	accel    float64 // spring velocity of velocity
	spring   harmonica.Spring
}

func newSpinAxis(fps int) spinAxis {
	return spinAxis{
		// Critically damped: the spin slows down without reversing
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// step returns this frame's rotation and eases the velocity toward zero.
func (a *spinAxis) step() float64 {
	d := a.velocity
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	return d
}

// spin is a damped rotation applied on top of the scene's own animation.
type spin struct {
	x, y, z spinAxis
	fps     int
	total   math3d.Vec3
}

func newSpin(fps int) *spin {
	return &spin{
		x:   newSpinAxis(fps),
		y:   newSpinAxis(fps),
		z:   newSpinAxis(fps),
		fps: fps,
	}
}

// impulse adds angular velocity in radians per frame.
func (s *spin) impulse(v math3d.Vec3) {
	s.x.velocity += v.X
	s.y.velocity += v.Y
	s.z.velocity += v.Z
}

// step advances one frame and returns the rotation to apply.
func (s *spin) step() math3d.Vec3 {
	d := math3d.V3(s.x.step(), s.y.step(), s.z.step())
	s.total = s.total.Add(d)
	return d
}

// moving reports whether any axis still turns visibly.
func (s *spin) moving() bool {
	const eps = 1e-6
	return math.Abs(s.x.velocity) > eps || math.Abs(s.y.velocity) > eps || math.Abs(s.z.velocity) > eps
}

// reset stops the spin and returns the rotation that undoes everything it
// applied so far.
func (s *spin) reset() math3d.Vec3 {
	undo := s.total.Scale(-1)
	*s = *newSpin(s.fps)
	return undo
}
