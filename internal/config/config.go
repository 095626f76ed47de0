// Package config handles scene and application configuration.
package config

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Asset formats accepted in ObjectConfig.Format.
const (
	FormatFolder = "folder"
	FormatGLB    = "glb"
)

// Config holds the scene and application settings.
type Config struct {
	Surface SurfaceConfig  `yaml:"surface"`
	Camera  CameraConfig   `yaml:"camera"`
	Objects []ObjectConfig `yaml:"objects"`
	Viewer  ViewerConfig   `yaml:"viewer"`
	Output  OutputConfig   `yaml:"output"`
	Logging LoggingConfig  `yaml:"logging"`
}

// Vec3 is a vector written as a three element YAML sequence.
type Vec3 [3]float64

// Vec converts to a math3d vector.
func (v Vec3) Vec() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// Radians converts a vector of degrees to radians.
func (v Vec3) Radians() math3d.Vec3 {
	return v.Vec().Scale(math.Pi / 180)
}

// FromVec converts a math3d vector.
func FromVec(v math3d.Vec3) Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// SurfaceConfig holds the pixel surface settings.
type SurfaceConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Clear  string `yaml:"clear"` // Hex color, e.g. "#87ceeb"
}

// CameraConfig defines the camera either by its four vectors or, when
// LookAt is set, by an eye/target pair.
type CameraConfig struct {
	Center    Vec3          `yaml:"center"`
	Direction Vec3          `yaml:"direction"`
	Span1     Vec3          `yaml:"span1"`
	Span2     Vec3          `yaml:"span2"`
	LookAt    *LookAtConfig `yaml:"look_at,omitempty"`
}

// LookAtConfig places a camera at Eye looking at Target.
type LookAtConfig struct {
	Eye    Vec3    `yaml:"eye"`
	Target Vec3    `yaml:"target"`
	Up     Vec3    `yaml:"up"`
	FOV    float64 `yaml:"fov"` // Vertical field of view in degrees
}

// ObjectConfig places one asset in the scene.
type ObjectConfig struct {
	Name     string `yaml:"name,omitempty"`
	Path     string `yaml:"path"`
	Format   string `yaml:"format,omitempty"` // folder or glb; inferred when empty
	Position Vec3   `yaml:"position"`
	Rotation Vec3   `yaml:"rotation"`        // Degrees
	Scale    Vec3   `yaml:"scale,omitempty"` // All zero means 1
	Spin     Vec3   `yaml:"spin,omitempty"`  // Degrees per second
	Mode     string `yaml:"rotation_mode,omitempty"`
}

// AssetFormat returns the configured format, inferring it from the path
// extension when unset.
func (o ObjectConfig) AssetFormat() string {
	if o.Format != "" {
		return o.Format
	}
	switch strings.ToLower(filepath.Ext(o.Path)) {
	case ".glb", ".gltf":
		return FormatGLB
	default:
		return FormatFolder
	}
}

// ScaleVec returns the scale, treating an all-zero scale as unset.
func (o ObjectConfig) ScaleVec() math3d.Vec3 {
	if o.Scale == (Vec3{}) {
		return math3d.One3()
	}
	return o.Scale.Vec()
}

// ViewerConfig holds interactive viewer settings.
type ViewerConfig struct {
	FPS       int     `yaml:"fps"`
	MoveSpeed float64 `yaml:"move_speed"` // World units per second
	Wireframe bool    `yaml:"wireframe"`
	Scale     int     `yaml:"scale"` // Window pixels per surface pixel
}

// OutputConfig holds still image settings.
type OutputConfig struct {
	Path  string  `yaml:"path"`
	Scale int     `yaml:"scale"` // Integer upscale factor
	Time  float64 `yaml:"time"`  // Seconds of spin applied before rendering
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	cam := render.DefaultCamera()
	return &Config{
		Surface: SurfaceConfig{
			Width:  320,
			Height: 180,
			Clear:  "#87ceeb",
		},
		Camera: CameraConfig{
			Center:    FromVec(cam.Center),
			Direction: FromVec(cam.Direction),
			Span1:     FromVec(cam.Span1),
			Span2:     FromVec(cam.Span2),
		},
		Viewer: ViewerConfig{
			FPS:       30,
			MoveSpeed: 10,
			Scale:     3,
		},
		Output: OutputConfig{
			Path:  "frame.png",
			Scale: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// RenderCamera resolves the camera for a surface of the given aspect ratio.
// The aspect only matters for look_at cameras.
func (c CameraConfig) RenderCamera(aspect float64) render.Camera {
	if c.LookAt != nil {
		up := c.LookAt.Up.Vec()
		if up == math3d.Zero3() {
			up = math3d.V3(0, 0, 1)
		}
		return render.LookAt(
			c.LookAt.Eye.Vec(),
			c.LookAt.Target.Vec(),
			up,
			c.LookAt.FOV*math.Pi/180,
			aspect,
		)
	}
	return render.NewCamera(c.Center.Vec(), c.Direction.Vec(), c.Span1.Vec(), c.Span2.Vec())
}

// Aspect returns the surface width divided by its height.
func (s SurfaceConfig) Aspect() float64 {
	if s.Height == 0 {
		return 1
	}
	return float64(s.Width) / float64(s.Height)
}
