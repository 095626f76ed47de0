package render

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProject(t *testing.T) {
	cam := frontCamera()

	tests := []struct {
		name    string
		p       math3d.Vec3
		want    math3d.Vec2
		visible bool
	}{
		{"along direction", math3d.V3(0, 0, 1), math3d.V2(0.5, 0.5), true},
		{"far along direction", math3d.V3(0, 0, 100), math3d.V2(0.5, 0.5), true},
		{"right edge", math3d.V3(0.25, 0, 1), math3d.V2(1, 0.5), true},
		{"bottom edge", math3d.V3(0, 0.5, 2), math3d.V2(0.5, 1), true},
		{"outside view still visible", math3d.V3(-1, 0, 1), math3d.V2(-1.5, 0.5), true},
		{"behind", math3d.V3(0, 0, -1), math3d.Vec2{}, false},
		{"in camera plane", math3d.V3(1, 1, 0), math3d.Vec2{}, false},
		{"at center", math3d.Zero3(), math3d.Vec2{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cam.Project(tt.p)
			if ok != tt.visible {
				t.Fatalf("expected visible=%v, got %v", tt.visible, ok)
			}
			if !ok {
				return
			}
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestProjectOffsetCenter(t *testing.T) {
	cam := frontCamera().Moved(math3d.V3(10, -3, 2))
	got, ok := cam.Project(math3d.V3(10, -3, 7))
	if !ok || !near(got.X, 0.5) || !near(got.Y, 0.5) {
		t.Errorf("expected (0.5, 0.5) visible, got %v %v", got, ok)
	}
}

func TestProjectDegenerateCamera(t *testing.T) {
	cam := NewCamera(
		math3d.Zero3(),
		math3d.V3(0, 0, 1),
		math3d.V3(1, 0, 0),
		math3d.V3(2, 0, 0),
	)
	if !cam.Degenerate() {
		t.Error("expected degenerate camera")
	}
	if _, ok := cam.Project(math3d.V3(0, 0, 5)); ok {
		t.Error("degenerate camera should see nothing")
	}
	if frontCamera().Degenerate() {
		t.Error("front camera should not be degenerate")
	}
}

func TestDistance(t *testing.T) {
	cam := frontCamera().Moved(math3d.V3(1, 2, 3))
	if d := cam.Distance(math3d.V3(4, 6, 3)); !near(d, 5) {
		t.Errorf("expected 5, got %v", d)
	}
}

func TestLookAt(t *testing.T) {
	cam := LookAt(math3d.V3(-10, 0, 0), math3d.Zero3(), math3d.V3(0, 0, 1), math.Pi/2, 1)

	tests := []struct {
		name string
		p    math3d.Vec3
		want math3d.Vec2
	}{
		{"target", math3d.Zero3(), math3d.V2(0.5, 0.5)},
		{"right of target", math3d.V3(0, 5, 0), math3d.V2(0.75, 0.5)},
		{"above target", math3d.V3(0, 0, 5), math3d.V2(0.5, 0.25)},
		{"corner", math3d.V3(0, 10, -10), math3d.V2(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cam.Project(tt.p)
			if !ok {
				t.Fatal("expected visible")
			}
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLookAtParallelUp(t *testing.T) {
	cam := LookAt(math3d.V3(0, 0, 10), math3d.Zero3(), math3d.V3(0, 0, 1), math.Pi/3, 1.5)
	if cam.Degenerate() {
		t.Fatal("expected a usable camera when looking along up")
	}
	got, ok := cam.Project(math3d.Zero3())
	if !ok || !near(got.X, 0.5) || !near(got.Y, 0.5) {
		t.Errorf("expected target at center, got %v %v", got, ok)
	}
}

func TestDefaultCamera(t *testing.T) {
	cam := DefaultCamera()
	if cam.Degenerate() {
		t.Fatal("default camera is degenerate")
	}
	if _, ok := cam.Project(math3d.Zero3()); !ok {
		t.Error("origin should be in front of the default camera")
	}
}

func TestCameraMoves(t *testing.T) {
	cam := frontCamera()

	tests := []struct {
		name string
		cam  Camera
		want math3d.Vec3
	}{
		{"moved", cam.Moved(math3d.V3(1, 2, 3)), math3d.V3(1, 2, 3)},
		{"forward", cam.MoveForward(2), math3d.V3(0, 0, 2)},
		{"right", cam.MoveRight(3), math3d.V3(3, 0, 0)},
		{"up", cam.MoveUp(1), math3d.V3(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cam.Center
			if !near(c.X, tt.want.X) || !near(c.Y, tt.want.Y) || !near(c.Z, tt.want.Z) {
				t.Errorf("expected center %v, got %v", tt.want, c)
			}
			if tt.cam.Direction != cam.Direction || tt.cam.Span1 != cam.Span1 || tt.cam.Span2 != cam.Span2 {
				t.Error("moving changed the orientation")
			}
		})
	}

	if cam.Center != math3d.Zero3() {
		t.Error("moves modified the original camera")
	}
}
