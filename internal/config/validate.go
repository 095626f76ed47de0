package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/scanline/internal/logger"
	"github.com/taigrr/scanline/pkg/models"
)

// maxSurface bounds each surface dimension.
const maxSurface = 8192

// ClearColor parses the surface clear color.
func (s SurfaceConfig) ClearColor() (color.RGBA, error) {
	c, err := colorful.Hex(s.Clear)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("clear color %q: %w", s.Clear, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Surface.Width <= 0 || c.Surface.Height <= 0 ||
		c.Surface.Width > maxSurface || c.Surface.Height > maxSurface {
		errs = append(errs, fmt.Errorf("surface size %dx%d out of range", c.Surface.Width, c.Surface.Height))
	}
	if _, err := c.Surface.ClearColor(); err != nil {
		errs = append(errs, err)
	}

	if c.Camera.LookAt != nil {
		if c.Camera.LookAt.Eye == c.Camera.LookAt.Target {
			errs = append(errs, errors.New("camera look_at eye equals target"))
		}
		if c.Camera.LookAt.FOV <= 0 || c.Camera.LookAt.FOV >= 180 {
			errs = append(errs, fmt.Errorf("camera fov %v out of range", c.Camera.LookAt.FOV))
		}
	} else if c.Camera.RenderCamera(c.Surface.Aspect()).Degenerate() {
		errs = append(errs, errors.New("camera direction and spans are linearly dependent"))
	}

	for i, o := range c.Objects {
		if o.Path == "" {
			errs = append(errs, fmt.Errorf("object %d: missing path", i))
		}
		switch o.AssetFormat() {
		case FormatFolder, FormatGLB:
		default:
			errs = append(errs, fmt.Errorf("object %d: unknown format %q", i, o.Format))
		}
		if _, err := models.ParseRotationMode(o.Mode); err != nil {
			errs = append(errs, fmt.Errorf("object %d: %w", i, err))
		}
	}

	if c.Viewer.FPS <= 0 {
		errs = append(errs, fmt.Errorf("viewer fps %d must be positive", c.Viewer.FPS))
	}
	if c.Viewer.Scale < 1 {
		errs = append(errs, fmt.Errorf("viewer scale %d must be at least 1", c.Viewer.Scale))
	}
	if c.Output.Scale < 1 {
		errs = append(errs, fmt.Errorf("output scale %d must be at least 1", c.Output.Scale))
	}
	if c.Output.Time < 0 {
		errs = append(errs, fmt.Errorf("output time %v must not be negative", c.Output.Time))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
