// Package render draws flat-colored triangle meshes onto pixel surfaces with
// an oblique perspective camera and a scanline rasterizer.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Surface is a writable grid of pixels. Origin is top-left.
type Surface interface {
	Size() (width, height int)
	SetPixel(x, y int, c color.RGBA)
}

// Framebuffer is an in-memory Surface. In the terminal it is drawn with
// half-block characters, two pixel rows per terminal row.
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Resize changes the dimensions, reallocating only when the pixel count
// grows. Contents are undefined afterwards.
func (fb *Framebuffer) Resize(width, height int) {
	n := width * height
	if n > cap(fb.Pixels) {
		fb.Pixels = make([]color.RGBA, n)
	}
	fb.Pixels = fb.Pixels[:n]
	fb.Width = width
	fb.Height = height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	drawLine(fb, x0, y0, x1, y1, c)
}

func drawLine(s Surface, x0, y0, x1, y1 int, c color.RGBA) {
	w, h := s.Size()
	if !inside(x0, y0, w, h) || !inside(x1, y1, w, h) {
		var ok bool
		x0, y0, x1, y1, ok = clipLine(x0, y0, x1, y1, w, h)
		if !ok {
			return
		}
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 >= 0 && x0 < w && y0 >= 0 && y0 < h {
			s.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func inside(x, y, w, h int) bool {
	return x >= 0 && x < w && y >= 0 && y < h
}

// clipLine clips a segment to the pixel rectangle of a w x h surface
// (Liang-Barsky). ok is false when no part of it is on the surface.
func clipLine(x0, y0, x1, y1, w, h int) (cx0, cy0, cx1, cy1 int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	fx, fy := float64(x0), float64(y0)
	dx, dy := float64(x1-x0), float64(y1-y0)

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, fx},
		{dx, float64(w-1) - fx},
		{-dy, fy},
		{dy, float64(h-1) - fy},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}

	return int(math.Round(fx + t0*dx)), int(math.Round(fy + t0*dy)),
		int(math.Round(fx + t1*dx)), int(math.Round(fy + t1*dy)), true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// Upscale returns the framebuffer enlarged by an integer factor with
// nearest-neighbour sampling, keeping pixel edges hard.
func (fb *Framebuffer) Upscale(factor int) *image.RGBA {
	src := fb.ToImage()
	if factor <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, fb.Width*factor, fb.Height*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// SavePNG saves the framebuffer as a PNG file, upscaled by scale.
func (fb *Framebuffer) SavePNG(path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, fb.Upscale(scale)); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
