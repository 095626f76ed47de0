package render

import (
	"image/color"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Wireframe draws 3D lines over a surface. It ignores the depth buffer and
// is meant as a debugging overlay on top of a rendered frame.
type Wireframe struct {
	camera Camera
	target Surface
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera Camera, target Surface) *Wireframe {
	return &Wireframe{
		camera: camera,
		target: target,
	}
}

// project returns the pixel position of p and whether it is visible.
func (w *Wireframe) project(p math3d.Vec3) (int, int, bool) {
	v, ok := w.camera.Project(p)
	if !ok {
		return 0, 0, false
	}
	width, height := w.target.Size()
	v = v.Scale(float64(width), float64(height))
	return toPixel(v.X), toPixel(v.Y), true
}

// DrawLine3D draws a line in 3D space. Lines with an endpoint behind the
// camera are not drawn.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, c color.RGBA) {
	x1, y1, vis1 := w.project(p1)
	x2, y2, vis2 := w.project(p2)
	if !vis1 || !vis2 {
		return
	}
	drawLine(w.target, x1, y1, x2, y2, c)
}

// DrawObject draws the edges of every triangle of obj. Triangles with
// invalid indices are skipped.
func (w *Wireframe) DrawObject(obj Object, c color.RGBA) {
	points := obj.WorldPoints()
	for i := range obj.TriangleCount() {
		idx, _ := obj.GetFace(i)
		valid := true
		for _, v := range idx {
			if v < 0 || v >= len(points) {
				valid = false
			}
		}
		if !valid {
			continue
		}
		w.DrawLine3D(points[idx[0]], points[idx[1]], c)
		w.DrawLine3D(points[idx[1]], points[idx[2]], c)
		w.DrawLine3D(points[idx[2]], points[idx[0]], c)
	}
}

// DrawBox draws an axis-aligned box between min and max.
func (w *Wireframe) DrawBox(min, max math3d.Vec3, c color.RGBA) {
	vertices := [8]math3d.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}

	edges := [12][2]int{
		// Bottom
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		// Top
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		// Verticals
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	for _, edge := range edges {
		w.DrawLine3D(vertices[edge[0]], vertices[edge[1]], c)
	}
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawGrid draws a grid on the ground plane z=0.
func (w *Wireframe) DrawGrid(size, step float64, c color.RGBA) {
	if step <= 0 {
		return
	}
	half := size / 2
	for x := -half; x <= half; x += step {
		w.DrawLine3D(math3d.V3(x, -half, 0), math3d.V3(x, half, 0), c)
	}
	for y := -half; y <= half; y += step {
		w.DrawLine3D(math3d.V3(-half, y, 0), math3d.V3(half, y, 0), c)
	}
}
