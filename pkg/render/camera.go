package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Camera is an oblique perspective camera. The view plane sits one
// Direction away from Center and is spanned by Span1 (screen right) and
// Span2 (screen down). None of the vectors need to be orthogonal or
// normalized; they only need to be linearly independent.
//
// Camera is a value: callers replace it each frame rather than mutate it.
type Camera struct {
	Center    math3d.Vec3
	Direction math3d.Vec3
	Span1     math3d.Vec3
	Span2     math3d.Vec3
}

// NewCamera creates a camera from its four defining vectors.
func NewCamera(center, direction, span1, span2 math3d.Vec3) Camera {
	return Camera{
		Center:    center,
		Direction: direction,
		Span1:     span1,
		Span2:     span2,
	}
}

// DefaultCamera returns the camera used by the bundled scenes: above and
// behind the origin on -X, looking down toward +X with Z up.
func DefaultCamera() Camera {
	sqrt13 := math.Sqrt(13)
	return Camera{
		Center:    math3d.V3(-30, 0, 20),
		Direction: math3d.V3(35, 0, -20),
		Span1:     math3d.V3(0, 20, 0),
		Span2:     math3d.V3(-40/sqrt13, 0, -60/sqrt13),
	}
}

// LookAt builds a camera at eye looking at target with a vertical field of
// view fovY (radians) and the given width/height aspect ratio.
// Span1 is up × forward, the handedness used by DefaultCamera. If up is
// parallel to the view direction a different up axis is chosen.
func LookAt(eye, target, up math3d.Vec3, fovY, aspect float64) Camera {
	forward := target.Sub(eye).Normalize()

	right := up.Cross(forward)
	if right.Len() < 1e-9 {
		alt := math3d.V3(1, 0, 0)
		if math.Abs(forward.X) > 0.9 {
			alt = math3d.V3(0, 1, 0)
		}
		right = alt.Cross(forward)
	}
	right = right.Normalize()
	trueUp := forward.Cross(right)

	halfHeight := math.Tan(fovY / 2)
	halfWidth := halfHeight * aspect

	return Camera{
		Center:    eye,
		Direction: forward,
		Span1:     right.Scale(halfWidth),
		Span2:     trueUp.Scale(-halfHeight),
	}
}

// Degenerate reports whether the defining vectors are linearly dependent.
// A degenerate camera sees nothing.
func (c Camera) Degenerate() bool {
	return math3d.Det3(c.Direction, c.Span1, c.Span2) == 0
}

// Project maps a world point onto the normalized view plane.
//
// The offset p - Center is solved as a·Direction + b·Span1 + c·Span2. The
// point is visible only if the system has a solution and a > 0; its view
// coordinate is ((b/a+1)/2, (c/a+1)/2), which lies in [0,1]² when the point
// is inside the view rectangle. Points outside that range are still
// reported as visible.
func (c Camera) Project(p math3d.Vec3) (math3d.Vec2, bool) {
	a, b, cc, ok := math3d.Solve3(c.Direction, c.Span1, c.Span2, p.Sub(c.Center))
	if !ok || a <= 0 {
		return math3d.Vec2{}, false
	}
	v := math3d.V2((b/a+1)/2, (cc/a+1)/2)
	if !v.IsFinite() {
		return math3d.Vec2{}, false
	}
	return v, true
}

// Distance returns the Euclidean distance from the camera center to p.
func (c Camera) Distance(p math3d.Vec3) float64 {
	return c.Center.Distance(p)
}

// Moved returns the camera translated by offset.
func (c Camera) Moved(offset math3d.Vec3) Camera {
	c.Center = c.Center.Add(offset)
	return c
}

// MoveForward returns the camera moved along its view direction.
func (c Camera) MoveForward(distance float64) Camera {
	return c.Moved(c.Direction.Normalize().Scale(distance))
}

// MoveRight returns the camera moved toward screen right.
func (c Camera) MoveRight(distance float64) Camera {
	return c.Moved(c.Span1.Normalize().Scale(distance))
}

// MoveUp returns the camera moved toward screen up.
func (c Camera) MoveUp(distance float64) Camera {
	return c.Moved(c.Span2.Normalize().Scale(-distance))
}
