package render

import (
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestWireframe(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(ColorBlack)
	w := NewWireframe(frontCamera(), fb)

	// Projects to (4,4) and (7.2,4)
	w.DrawLine3D(math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), ColorWhite)
	for x := 4; x <= 7; x++ {
		if fb.GetPixel(x, 4) != ColorWhite {
			t.Errorf("pixel (%d,4) not drawn", x)
		}
	}

	fb.Clear(ColorBlack)
	w.DrawLine3D(math3d.V3(0, 0, 5), math3d.V3(0, 0, -5), ColorWhite)
	for i, p := range fb.Pixels {
		if p != ColorBlack {
			t.Fatalf("pixel %d drawn for line behind camera", i)
		}
	}

	obj := singleTriangle(math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), math3d.V3(0, 1, 5), ColorRed)
	w.DrawObject(obj, ColorWhite)
	for _, p := range [][2]int{{4, 4}, {7, 4}, {4, 7}} {
		if fb.GetPixel(p[0], p[1]) != ColorWhite {
			t.Errorf("corner %v not drawn", p)
		}
	}
}

func TestWireframeHelpers(t *testing.T) {
	fb := NewFramebuffer(32, 32)
	fb.Clear(ColorBlack)
	cam := LookAt(math3d.V3(-10, -10, 10), math3d.Zero3(), math3d.V3(0, 0, 1), 1, 1)
	w := NewWireframe(cam, fb)

	count := func() int {
		n := 0
		for _, p := range fb.Pixels {
			if p != ColorBlack {
				n++
			}
		}
		return n
	}

	w.DrawBox(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1), ColorWhite)
	if count() == 0 {
		t.Error("DrawBox drew nothing")
	}

	fb.Clear(ColorBlack)
	w.DrawAxes(2)
	center := false
	for _, p := range [][2]int{{15, 15}, {15, 16}, {16, 15}, {16, 16}} {
		if fb.GetPixel(p[0], p[1]) != ColorBlack {
			center = true
		}
	}
	if !center {
		t.Error("axes should start at the screen center")
	}

	fb.Clear(ColorBlack)
	w.DrawGrid(4, 0, ColorGray)
	if count() != 0 {
		t.Error("grid with zero step should draw nothing")
	}
	w.DrawGrid(4, 1, ColorGray)
	if count() == 0 {
		t.Error("DrawGrid drew nothing")
	}
}
