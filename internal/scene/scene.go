// Package scene assembles configured assets into a renderable scene and
// advances it over time.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"go.uber.org/zap"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Object is one placed mesh.
type Object struct {
	Name string
	Mesh *models.Mesh
	Spin math3d.Vec3 // Radians per second added to the mesh rotation
}

// Scene holds the objects, camera and clear color of one configuration.
type Scene struct {
	Camera render.Camera
	Clear  color.RGBA

	objects []*Object
	assets  int
	log     *zap.Logger
}

// Build loads every configured asset once and places a copy of it for each
// object that references it.
func Build(cfg *config.Config, loader *models.Loader, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}

	clear, err := cfg.Surface.ClearColor()
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Camera: cfg.Camera.RenderCamera(cfg.Surface.Aspect()),
		Clear:  clear,
		log:    log,
	}

	cache := make(map[string]*models.Mesh)
	for i, oc := range cfg.Objects {
		key := oc.AssetFormat() + ":" + oc.Path
		mesh, ok := cache[key]
		if !ok {
			mesh, err = LoadAsset(loader, oc)
			if err != nil {
				return nil, fmt.Errorf("object %d: %w", i, err)
			}
			cache[key] = mesh
		}

		mode, err := models.ParseRotationMode(oc.Mode)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		placed := mesh.Clone()
		placed.SetPosition(oc.Position.Vec())
		placed.SetRotation(oc.Rotation.Radians())
		placed.SetScale(oc.ScaleVec())
		placed.RotationMode = mode

		name := oc.Name
		if name == "" {
			name = mesh.Name
		}
		s.objects = append(s.objects, &Object{
			Name: name,
			Mesh: placed,
			Spin: oc.Spin.Radians(),
		})
	}
	s.assets = len(cache)

	log.Info("scene built",
		zap.Int("objects", len(s.objects)),
		zap.Int("assets", s.assets),
	)
	return s, nil
}

// LoadAsset loads the mesh an object refers to, picking the loader from
// the object's format.
func LoadAsset(loader *models.Loader, oc config.ObjectConfig) (*models.Mesh, error) {
	switch oc.AssetFormat() {
	case config.FormatGLB:
		return loader.LoadGLB(oc.Path)
	case config.FormatFolder:
		return loader.LoadFolder(oc.Path)
	default:
		return nil, fmt.Errorf("unknown format %q", oc.Format)
	}
}

// Objects returns the placed objects.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// AssetCount returns the number of distinct assets loaded.
func (s *Scene) AssetCount() int {
	return s.assets
}

// Renderables returns the meshes in draw order.
func (s *Scene) Renderables() []render.Object {
	out := make([]render.Object, len(s.objects))
	for i, o := range s.objects {
		out[i] = o.Mesh
	}
	return out
}

// Update advances every object's spin by dt seconds.
func (s *Scene) Update(dt float64) {
	for _, o := range s.objects {
		if o.Spin == (math3d.Vec3{}) {
			continue
		}
		o.Mesh.SetRotation(o.Mesh.Rotation.Add(o.Spin.Scale(dt)))
	}
}

// Draw clears fb and renders one frame. Objects that fail validation are
// skipped and reported; the rest of the frame is still drawn.
func (s *Scene) Draw(fb *render.Framebuffer, r *render.Rasterizer) error {
	fb.Clear(s.Clear)
	return r.Render(s.Renderables(), s.Camera, fb)
}

// Overlay colors for the scene guides drawn under the triangle edges.
var (
	GridColor   = render.RGB(64, 64, 64)
	BoundsColor = render.ColorGray
)

// gridCells is the number of grid cells along each side of the ground grid.
const gridCells = 10

// DrawWireframe overlays triangle edges in c on target, over a ground grid,
// the scene's bounding box and the origin axes.
func (s *Scene) DrawWireframe(target render.Surface, c color.RGBA) {
	w := render.NewWireframe(s.Camera, target)

	if lo, hi, err := s.Bounds(); err == nil {
		extent := maxAbs(lo, hi)
		if extent == 0 {
			extent = 1
		}
		size := 2 * extent
		w.DrawGrid(size, size/gridCells, GridColor)
		w.DrawBox(lo, hi, BoundsColor)
		w.DrawAxes(extent)
	}

	for _, o := range s.objects {
		w.DrawObject(o.Mesh, c)
	}
}

// ErrEmpty is returned by Bounds for a scene without vertices.
var ErrEmpty = errors.New("scene has no vertices")

// Bounds returns the world-space bounding box of every object.
func (s *Scene) Bounds() (lo, hi math3d.Vec3, err error) {
	first := true
	for _, o := range s.objects {
		for _, p := range o.Mesh.WorldPoints() {
			if first {
				lo, hi = p, p
				first = false
				continue
			}
			lo = lo.Min(p)
			hi = hi.Max(p)
		}
	}
	if first {
		return lo, hi, ErrEmpty
	}
	return lo, hi, nil
}

// Rotate adds delta to every object's rotation.
func (s *Scene) Rotate(delta math3d.Vec3) {
	for _, o := range s.objects {
		o.Mesh.SetRotation(o.Mesh.Rotation.Add(delta))
	}
}

// maxAbs returns the largest absolute component of vs.
func maxAbs(vs ...math3d.Vec3) float64 {
	var m float64
	for _, v := range vs {
		m = math.Max(m, math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z))))
	}
	return m
}
