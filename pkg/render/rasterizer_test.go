package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

// testObject is a minimal Object backed by slices.
type testObject struct {
	points []math3d.Vec3
	faces  [][3]int
	colors []color.RGBA
}

func (o *testObject) WorldPoints() []math3d.Vec3 { return o.points }
func (o *testObject) TriangleCount() int         { return len(o.faces) }
func (o *testObject) GetFace(i int) ([3]int, color.RGBA) {
	return o.faces[i], o.colors[i]
}

func singleTriangle(a, b, c math3d.Vec3, col color.RGBA) *testObject {
	return &testObject{
		points: []math3d.Vec3{a, b, c},
		faces:  [][3]int{{0, 1, 2}},
		colors: []color.RGBA{col},
	}
}

// frontCamera looks down +Z from the origin; each span covers a quarter of
// the distance travelled along the view direction.
func frontCamera() Camera {
	return NewCamera(
		math3d.Zero3(),
		math3d.V3(0, 0, 1),
		math3d.V3(0.25, 0, 0),
		math3d.V3(0, 0.25, 0),
	)
}

var clearColor = color.RGBA{10, 20, 30, 255}

func TestRenderSingleTriangle(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(clearColor)

	// Projects to pixels (4,4), (7.2,4), (4,7.2)
	obj := singleTriangle(
		math3d.V3(0, 0, 5),
		math3d.V3(1, 0, 5),
		math3d.V3(0, 1, 5),
		ColorRed,
	)

	r := NewRasterizer(nil)
	if err := r.Render([]Object{obj}, frontCamera(), fb); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := map[[2]int]bool{
		{4, 7}: true,
		{4, 6}: true, {5, 6}: true,
		{4, 5}: true, {5, 5}: true, {6, 5}: true,
	}
	for y := range 8 {
		for x := range 8 {
			got := fb.GetPixel(x, y)
			if want[[2]int{x, y}] {
				if got != ColorRed {
					t.Errorf("pixel (%d,%d): expected red, got %v", x, y, got)
				}
			} else if got != clearColor {
				t.Errorf("pixel (%d,%d): expected clear color, got %v", x, y, got)
			}
		}
	}

	if r.Stats.Pixels != len(want) {
		t.Errorf("expected %d pixels written, got %d", len(want), r.Stats.Pixels)
	}
	if r.Stats.Drawn != 1 || r.Stats.Triangles != 1 || r.Stats.Objects != 1 {
		t.Errorf("unexpected stats: %+v", r.Stats)
	}
}

func TestRenderDepthOrder(t *testing.T) {
	near := singleTriangle(
		math3d.V3(-1, -1, 5),
		math3d.V3(1, -1, 5),
		math3d.V3(-1, 1, 5),
		ColorRed,
	)
	// Twice as far and twice as large: same screen footprint
	far := singleTriangle(
		math3d.V3(-2, -2, 10),
		math3d.V3(2, -2, 10),
		math3d.V3(-2, 2, 10),
		ColorBlue,
	)

	tests := []struct {
		name    string
		objects []Object
	}{
		{"near first", []Object{near, far}},
		{"far first", []Object{far, near}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(16, 16)
			fb.Clear(clearColor)

			r := NewRasterizer(nil)
			if err := r.Render(tt.objects, frontCamera(), fb); err != nil {
				t.Fatalf("Render failed: %v", err)
			}

			painted := 0
			for i, p := range fb.Pixels {
				switch p {
				case clearColor:
				case ColorRed:
					painted++
				default:
					t.Fatalf("pixel %d: expected red or clear, got %v", i, p)
				}
			}
			if painted == 0 {
				t.Error("nothing was drawn")
			}
		})
	}
}

func TestRenderIdempotent(t *testing.T) {
	objects := []Object{
		singleTriangle(math3d.V3(-1, -1, 4), math3d.V3(2, -0.5, 6), math3d.V3(0, 1.5, 5), ColorRed),
		singleTriangle(math3d.V3(-2, 0, 7), math3d.V3(1, -1, 3), math3d.V3(0.5, 2, 6), ColorGreen),
	}

	render := func() []color.RGBA {
		fb := NewFramebuffer(32, 24)
		fb.Clear(clearColor)
		if err := NewRasterizer(nil).Render(objects, frontCamera(), fb); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return fb.Pixels
	}

	first := render()
	second := render()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pixel %d differs between renders: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRenderHiddenTriangle(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(clearColor)

	// One vertex behind the camera
	obj := singleTriangle(math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), math3d.V3(0, 1, -1), ColorRed)

	r := NewRasterizer(nil)
	if err := r.Render([]Object{obj}, frontCamera(), fb); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if r.Stats.Hidden != 1 || r.Stats.Drawn != 0 {
		t.Errorf("unexpected stats: %+v", r.Stats)
	}
	for i, p := range fb.Pixels {
		if p != clearColor {
			t.Fatalf("pixel %d was written", i)
		}
	}
}

func TestRenderDegenerateTriangle(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(clearColor)

	// All three vertices on one screen row
	obj := singleTriangle(math3d.V3(-1, 0, 5), math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), ColorRed)

	r := NewRasterizer(nil)
	if err := r.Render([]Object{obj}, frontCamera(), fb); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if r.Stats.Degenerate != 1 || r.Stats.Pixels != 0 {
		t.Errorf("unexpected stats: %+v", r.Stats)
	}
}

func TestRenderInvalidIndex(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(clearColor)

	bad := &testObject{
		points: []math3d.Vec3{math3d.V3(0, 0, 5)},
		faces:  [][3]int{{0, 1, 2}},
		colors: []color.RGBA{ColorBlue},
	}
	good := singleTriangle(math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), math3d.V3(0, 1, 5), ColorRed)

	r := NewRasterizer(nil)
	err := r.Render([]Object{bad, good}, frontCamera(), fb)
	if !errors.Is(err, ErrVertexIndex) {
		t.Fatalf("expected ErrVertexIndex, got %v", err)
	}
	if fb.GetPixel(4, 6) != ColorRed {
		t.Error("valid object was not drawn")
	}
	if r.Stats.Objects != 1 {
		t.Errorf("expected 1 object rendered, got %d", r.Stats.Objects)
	}
}

func TestRenderCoversScreen(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(clearColor)

	// Projects to (-28,-28), (100,-28), (-28,100)
	obj := singleTriangle(
		math3d.V3(-10, -10, 5),
		math3d.V3(30, -10, 5),
		math3d.V3(-10, 30, 5),
		ColorGreen,
	)

	r := NewRasterizer(nil)
	if err := r.Render([]Object{obj}, frontCamera(), fb); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, p := range fb.Pixels {
		if p != ColorGreen {
			t.Fatalf("pixel %d: expected green, got %v", i, p)
		}
	}
}

func TestRenderNearCameraPlane(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	fb.Clear(clearColor)

	// The first vertex projects absurdly far off screen
	obj := singleTriangle(math3d.V3(-1, -1, 1e-12), math3d.V3(1, -1, 5), math3d.V3(-1, 1, 5), ColorRed)

	r := NewRasterizer(nil)
	if err := r.Render([]Object{obj}, frontCamera(), fb); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
}

func TestRenderEmptySurface(t *testing.T) {
	obj := singleTriangle(math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), math3d.V3(0, 1, 5), ColorRed)
	if err := NewRasterizer(nil).Render([]Object{obj}, frontCamera(), NewFramebuffer(0, 0)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// rowWalk fills the triangle with integer screen vertices a (top), b and
// c (bottom) by stepping the edge trackers through every row, on and off
// the surface.
func rowWalk(ax, ay, bx, by, cx, cy, w, h int) map[[2]int]bool {
	px := map[[2]int]bool{}
	span := func(y int, x1, x2 float64) {
		if y < 0 || y >= h {
			return
		}
		for x := max(int(x1), 0); x <= min(int(x2), w-1); x++ {
			px[[2]int{x, y}] = true
		}
	}

	d := float64(ax-cx) / float64(ay-cy)
	if by > ay {
		d1 := float64(ax-bx) / float64(ay-by)
		left, right := d, d1
		if d1 < d {
			left, right = d1, d
		}
		x1, x2 := float64(ax), float64(ax)
		for y := ay; y <= by; y++ {
			span(y, x1, x2)
			x1 += left
			x2 += right
		}
	}
	if cy > by {
		d2 := float64(bx-cx) / float64(by-cy)
		left, right := d2, d
		if d2 < d {
			left, right = d, d2
		}
		x1, x2 := float64(cx), float64(cx)
		for y := cy; y > by; y-- {
			span(y, x1, x2)
			x1 -= left
			x2 -= right
		}
	}
	return px
}

func TestRenderClippedRows(t *testing.T) {
	const size = 16
	fb := NewFramebuffer(size, size)
	fb.Clear(clearColor)

	// With z=4 and a 16 pixel surface, world (x, y) lands on pixel
	// (8x+8, 8y+8) exactly: (3,-7), (14,5) and (1,27), clipped at the top
	// and the bottom.
	pixel := func(x, y int) math3d.Vec3 {
		return math3d.V3(float64(x)/8-1, float64(y)/8-1, 4)
	}
	obj := singleTriangle(pixel(3, -7), pixel(14, 5), pixel(1, 27), ColorRed)

	r := NewRasterizer(nil)
	if err := r.Render([]Object{obj}, frontCamera(), fb); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := rowWalk(3, -7, 14, 5, 1, 27, size, size)
	if len(want) == 0 {
		t.Fatal("reference walk drew nothing")
	}
	for y := range size {
		for x := range size {
			got := fb.GetPixel(x, y) == ColorRed
			if got != want[[2]int{x, y}] {
				t.Errorf("pixel (%d,%d): drawn=%v, want %v", x, y, got, want[[2]int{x, y}])
			}
		}
	}
}

func TestSortByY(t *testing.T) {
	tests := []struct {
		name          string
		y             [3]float64
		top, mid, bot int
	}{
		{"already sorted", [3]float64{1, 2, 3}, 0, 1, 2},
		{"reversed", [3]float64{3, 2, 1}, 2, 1, 0},
		{"first lowest, swapped", [3]float64{1, 3, 2}, 0, 2, 1},
		{"second lowest", [3]float64{2, 1, 3}, 1, 0, 2},
		{"second lowest, swapped", [3]float64{3, 1, 2}, 1, 2, 0},
		{"third lowest", [3]float64{3, 2, 1}, 2, 1, 0},
		{"third lowest, swapped", [3]float64{2, 3, 1}, 2, 0, 1},
		{"tie for top", [3]float64{2, 1, 1}, 1, 2, 0},
		{"all equal", [3]float64{1, 1, 1}, 0, 1, 2},
		{"tie for bottom", [3]float64{0, 5, 5}, 0, 1, 2},
		{"tie first and third", [3]float64{1, 2, 1}, 0, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, mid, bot := sortByY(tt.y)
			if top != tt.top || mid != tt.mid || bot != tt.bot {
				t.Errorf("sortByY(%v) = %d,%d,%d, expected %d,%d,%d",
					tt.y, top, mid, bot, tt.top, tt.mid, tt.bot)
			}
		})
	}
}

func BenchmarkRender(b *testing.B) {
	obj := singleTriangle(math3d.V3(-1, -1, 4), math3d.V3(2, -0.5, 6), math3d.V3(0, 1.5, 5), ColorRed)
	objects := []Object{obj}
	fb := NewFramebuffer(160, 90)
	r := NewRasterizer(nil)
	cam := frontCamera()

	for b.Loop() {
		_ = r.Render(objects, cam, fb)
	}
}
