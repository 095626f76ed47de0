package scene

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// frameFOV is the vertical field of view used by Frame, in radians.
const frameFOV = math.Pi / 3

// Frame points the camera at the scene so that every vertex is in view,
// looking from the same side and elevation as render.DefaultCamera.
func (s *Scene) Frame(aspect float64) error {
	lo, hi, err := s.Bounds()
	if err != nil {
		return err
	}

	center := lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius == 0 {
		radius = 1
	}

	fov := frameFOV
	if aspect < 1 {
		// Fit the narrower horizontal extent
		fov = 2 * math.Atan(math.Tan(fov/2)*aspect)
	}
	dist := radius / math.Sin(fov/2)

	view := render.DefaultCamera().Direction.Normalize()
	eye := center.Sub(view.Scale(dist))
	s.Camera = render.LookAt(eye, center, math3d.V3(0, 0, 1), frameFOV, aspect)
	return nil
}
