package render

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrVertexIndex is returned when an object's triangle references a vertex
// that the object does not have.
var ErrVertexIndex = errors.New("vertex index out of range")

// emptyDepth marks a depth buffer entry that no pixel has been written to.
const emptyDepth = -1

// maxCoord bounds pixel coordinates before integer conversion. Points just
// in front of the camera project very far off screen.
const maxCoord = 1 << 24

// Object is anything the rasterizer can draw: a list of world-space points
// and flat-colored triangles indexing into it.
type Object interface {
	WorldPoints() []math3d.Vec3
	TriangleCount() int
	GetFace(i int) ([3]int, color.RGBA)
}

// Stats counts the work done by the last Render call.
type Stats struct {
	Objects    int // Objects rendered (invalid objects are not counted)
	Triangles  int // Triangles considered
	Drawn      int // Triangles scan converted
	Hidden     int // Triangles with a vertex behind the camera
	Degenerate int // Triangles with zero screen area
	Pixels     int // Pixels written (including overdraw)
}

// Rasterizer draws objects with a scanline fill and a per-pixel depth test.
// It keeps no per-frame state besides Stats; the depth buffer lives for a
// single Render call.
type Rasterizer struct {
	Stats Stats

	log *zap.Logger
}

// NewRasterizer creates a rasterizer. A nil logger disables logging.
func NewRasterizer(log *zap.Logger) *Rasterizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rasterizer{log: log}
}

// Render draws objects onto target as seen by cam. Pixels not covered by any
// triangle are left untouched, so callers clear the surface first.
//
// Objects whose triangles reference missing vertices are skipped; the
// remaining objects are still drawn and the errors are joined.
func (r *Rasterizer) Render(objects []Object, cam Camera, target Surface) error {
	r.Stats = Stats{}
	if r.log == nil {
		r.log = zap.NewNop()
	}

	width, height := target.Size()
	if width <= 0 || height <= 0 {
		return nil
	}

	depth := make([]float64, width*height)
	for i := range depth {
		depth[i] = emptyDepth
	}

	var errs []error
	for i, obj := range objects {
		if err := r.renderObject(obj, cam, target, depth, width, height); err != nil {
			r.log.Warn("object skipped", zap.Int("object", i), zap.Error(err))
			errs = append(errs, fmt.Errorf("object %d: %w", i, err))
		}
	}

	if ce := r.log.Check(zap.DebugLevel, "frame rendered"); ce != nil {
		ce.Write(
			zap.Int("objects", r.Stats.Objects),
			zap.Int("triangles", r.Stats.Triangles),
			zap.Int("drawn", r.Stats.Drawn),
			zap.Int("hidden", r.Stats.Hidden),
			zap.Int("degenerate", r.Stats.Degenerate),
			zap.Int("pixels", r.Stats.Pixels),
		)
	}
	return errors.Join(errs...)
}

func (r *Rasterizer) renderObject(obj Object, cam Camera, target Surface, depth []float64, width, height int) error {
	points := obj.WorldPoints()
	count := obj.TriangleCount()

	for i := range count {
		idx, _ := obj.GetFace(i)
		for _, v := range idx {
			if v < 0 || v >= len(points) {
				return fmt.Errorf("triangle %d: index %d of %d points: %w", i, v, len(points), ErrVertexIndex)
			}
		}
	}

	// Every vertex is projected once, however many triangles share it.
	screen := make([]math3d.Vec2, len(points))
	visible := make([]bool, len(points))
	for i, p := range points {
		v, ok := cam.Project(p)
		screen[i] = v.Scale(float64(width), float64(height))
		visible[i] = ok
	}

	r.Stats.Objects++
	for i := range count {
		idx, c := obj.GetFace(i)
		r.Stats.Triangles++

		if !visible[idx[0]] || !visible[idx[1]] || !visible[idx[2]] {
			r.Stats.Hidden++
			continue
		}

		f := fill{
			target: target,
			depth:  depth,
			width:  width,
			height: height,
			cam:    cam,
			color:  c,
		}
		if !f.triangle(
			[3]math3d.Vec2{screen[idx[0]], screen[idx[1]], screen[idx[2]]},
			[3]math3d.Vec3{points[idx[0]], points[idx[1]], points[idx[2]]},
		) {
			r.Stats.Degenerate++
			continue
		}
		r.Stats.Drawn++
		r.Stats.Pixels += f.pixels
	}
	return nil
}

// sortByY orders three pixel heights top to bottom. Ties always resolve the
// same way, so a triangle fills identically whatever else is drawn.
func sortByY(y [3]float64) (top, mid, bot int) {
	switch {
	case y[0] <= y[1] && y[0] <= y[2]:
		if y[1] <= y[2] {
			return 0, 1, 2
		}
		return 0, 2, 1
	case y[1] <= y[0] && y[1] <= y[2]:
		if y[0] <= y[2] {
			return 1, 0, 2
		}
		return 1, 2, 0
	default:
		if y[1] <= y[0] {
			return 2, 1, 0
		}
		return 2, 0, 1
	}
}

// toPixel truncates a pixel coordinate toward zero.
func toPixel(f float64) int {
	switch {
	case f < -maxCoord:
		return -maxCoord
	case f > maxCoord:
		return maxCoord
	}
	return int(f)
}

// fill scan converts one triangle.
type fill struct {
	target        Surface
	depth         []float64
	width, height int
	cam           Camera
	color         color.RGBA

	// Top vertex in pixels and the integer edge vectors top→mid and mid→bottom
	ax, ay float64
	u, v   math3d.Vec2
	det    float64

	// World-space top vertex and the matching world edges
	origin, edge1, edge2 math3d.Vec3

	pixels int
}

// triangle fills the triangle with screen vertices s and world vertices w.
// It reports false if the triangle has no screen area.
func (f *fill) triangle(s [3]math3d.Vec2, w [3]math3d.Vec3) bool {
	top, mid, bot := sortByY([3]float64{s[0].Y, s[1].Y, s[2].Y})

	ax, ay := toPixel(s[top].X), toPixel(s[top].Y)
	bx, by := toPixel(s[mid].X), toPixel(s[mid].Y)
	cx, cy := toPixel(s[bot].X), toPixel(s[bot].Y)

	f.ax, f.ay = float64(ax), float64(ay)
	f.u = math3d.V2(float64(bx-ax), float64(by-ay))
	f.v = math3d.V2(float64(cx-bx), float64(cy-by))
	f.det = f.u.Cross(f.v)
	if f.det == 0 {
		return false
	}

	f.origin = w[top]
	f.edge1 = w[mid].Sub(w[top])
	f.edge2 = w[bot].Sub(w[mid])

	// Inverse slope of the long edge. A nonzero det implies ay < cy.
	d := float64(ax-cx) / float64(ay-cy)

	// Top half: rows ay..by inclusive, walking down from the top vertex.
	if by > ay {
		d1 := float64(ax-bx) / float64(ay-by)
		left, right := d, d1
		if d1 < d {
			left, right = d1, d
		}

		// Rows above the surface still advance the trackers one row at a
		// time so visible rows get the same x values.
		x1, x2 := float64(ax), float64(ax)
		y := ay
		for ; y < 0 && y <= by; y++ {
			x1 += left
			x2 += right
		}
		for ; y <= by && y < f.height; y++ {
			f.row(y, x1, x2)
			x1 += left
			x2 += right
		}
	}

	// Bottom half: rows cy down to by exclusive, walking up from the bottom
	// vertex.
	if cy > by {
		d2 := float64(bx-cx) / float64(by-cy)
		left, right := d2, d
		if d2 < d {
			left, right = d, d2
		}

		x1, x2 := float64(cx), float64(cx)
		y := cy
		for ; y >= f.height && y > by; y-- {
			x1 -= left
			x2 -= right
		}
		for ; y > by && y >= 0; y-- {
			f.row(y, x1, x2)
			x1 -= left
			x2 -= right
		}
	}
	return true
}

// row depth tests and writes pixels int(x1)..int(x2) of row y.
func (f *fill) row(y int, x1, x2 float64) {
	if y < 0 || y >= f.height {
		return
	}

	start := max(toPixel(x1), 0)
	end := min(toPixel(x2), f.width-1)

	dy := float64(y) - f.ay
	for x := start; x <= end; x++ {
		dx := float64(x) - f.ax

		// Position within the triangle along the two screen edges, reused
		// on the world edges.
		k := (dx*f.v.Y - f.v.X*dy) / f.det
		l := (f.u.X*dy - dx*f.u.Y) / f.det
		p := f.origin.Add(f.edge1.Scale(k)).Add(f.edge2.Scale(l))
		dist := f.cam.Distance(p)

		i := y*f.width + x
		if f.depth[i] == emptyDepth || f.depth[i] > dist {
			f.target.SetPixel(x, y, f.color)
			f.depth[i] = dist
			f.pixels++
		}
	}
}
