package scene

// Motion is the set of camera movement keys held during a frame.
type Motion struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool
}

// Moving reports whether any movement key is held.
func (m Motion) Moving() bool {
	return m.Forward || m.Back || m.Left || m.Right || m.Up || m.Down
}

// MoveCamera moves the camera by dist along each held direction. Opposite
// keys cancel.
func (s *Scene) MoveCamera(m Motion, dist float64) {
	cam := s.Camera
	cam = cam.MoveForward(axis(m.Forward, m.Back) * dist)
	cam = cam.MoveRight(axis(m.Right, m.Left) * dist)
	cam = cam.MoveUp(axis(m.Up, m.Down) * dist)
	s.Camera = cam
}

func axis(pos, neg bool) float64 {
	var v float64
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}
